package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Freeeeeet/room_booking/internal/repository/base"
	"github.com/joho/godotenv"
)

const (
	defaultEnvironment     = "development"
	defaultLogLevel        = "info"
	defaultDSN             = "bookings.db"
	defaultHTTPAddr        = ":8080"
	defaultCacheTTL        = 30 * time.Second
	defaultAMQPExchange    = "room_booking"
	defaultConferenceTypes = "I-HUB 1st floor,I-HUB 5th floor,Mendeleev"
	defaultAffiliations    = "I-HUB,AIC"
)

type Config struct {
	Environment     string
	LogLevel        string
	DBDriver        base.Driver
	DBDSN           string
	HTTPAddr        string
	TelegramToken   string
	RedisAddr       string
	CacheTTL        time.Duration
	AMQPURL         string
	AMQPExchange    string
	ConferenceTypes []string
	Affiliations    []string
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv собирает конфиг из произвольного источника переменных
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok {
			return strings.TrimSpace(v)
		}
		return def
	}

	driver, err := base.ParseDriver(get("DB_DRIVER", string(base.DriverSQLite)))
	if err != nil {
		return nil, fmt.Errorf("DB_DRIVER: %w", err)
	}

	ttl := defaultCacheTTL
	if raw := get("CACHE_TTL", ""); raw != "" {
		ttl, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("CACHE_TTL: %w", err)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("CACHE_TTL must be positive, got %s", raw)
		}
	}

	cfg := &Config{
		Environment:     get("ENV", defaultEnvironment),
		LogLevel:        get("LOG_LEVEL", defaultLogLevel),
		DBDriver:        driver,
		DBDSN:           get("DB_DSN", defaultDSN),
		HTTPAddr:        get("HTTP_ADDR", defaultHTTPAddr),
		TelegramToken:   get("TELEGRAM_TOKEN", ""),
		RedisAddr:       get("REDIS_ADDR", ""),
		CacheTTL:        ttl,
		AMQPURL:         get("AMQP_URL", ""),
		AMQPExchange:    get("AMQP_EXCHANGE", defaultAMQPExchange),
		ConferenceTypes: splitList(get("CONFERENCE_TYPES", defaultConferenceTypes)),
		Affiliations:    splitList(get("AFFILIATIONS", defaultAffiliations)),
	}

	if cfg.Environment == "" {
		cfg.Environment = defaultEnvironment
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
