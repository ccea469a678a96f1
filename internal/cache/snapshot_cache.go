package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/room_booking/internal/model"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultTTL - сколько живёт закешированный снимок
const DefaultTTL = 30 * time.Second

// NewRedisClient подключается к Redis. Возвращает nil, если сервер недоступен:
// тогда приложение работает без кеша.
func NewRedisClient(ctx context.Context, addr, password string, db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}

// SnapshotCache хранит снимок бронирований в Redis на короткое время
type SnapshotCache struct {
	rdb    *redis.Client
	key    string
	ttl    time.Duration
	logger *zap.Logger
}

// NewSnapshotCache создаёт кеш снимка с ключом "<prefix>:bookings:snapshot"
func NewSnapshotCache(rdb *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *SnapshotCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SnapshotCache{
		rdb:    rdb,
		key:    snapshotKey(prefix),
		ttl:    ttl,
		logger: logger,
	}
}

// Get возвращает снимок из кеша
func (c *SnapshotCache) Get(ctx context.Context) (*model.Snapshot, bool) {
	bs, err := c.rdb.Get(ctx, c.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Failed to read bookings cache", zap.Error(err))
		}
		return nil, false
	}

	snap, err := decodeSnapshot(bs)
	if err != nil {
		c.logger.Warn("Dropping corrupted bookings cache entry", zap.Error(err))
		_ = c.rdb.Del(ctx, c.key).Err()
		return nil, false
	}
	return snap, true
}

// Put кладёт снимок в кеш. Ошибки только логируются.
func (c *SnapshotCache) Put(ctx context.Context, snap *model.Snapshot) {
	bs, err := encodeSnapshot(snap)
	if err != nil {
		c.logger.Warn("Failed to encode bookings snapshot", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, c.key, bs, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to write bookings cache", zap.Error(err))
	}
}

// Invalidate удаляет снимок из кеша
func (c *SnapshotCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("delete cache key: %w", err)
	}
	return nil
}

func snapshotKey(prefix string) string {
	if prefix == "" {
		prefix = "room_booking"
	}
	return prefix + ":bookings:snapshot"
}

func encodeSnapshot(snap *model.Snapshot) ([]byte, error) {
	return json.Marshal(snap)
}

func decodeSnapshot(bs []byte) (*model.Snapshot, error) {
	var snap model.Snapshot
	if err := json.Unmarshal(bs, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Columns == nil {
		return nil, fmt.Errorf("decode snapshot: no columns")
	}
	return &snap, nil
}
