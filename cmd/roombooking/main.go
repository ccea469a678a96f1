package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/room_booking/internal/app"
	"github.com/Freeeeeet/room_booking/internal/cache"
	"github.com/Freeeeeet/room_booking/internal/config"
	"github.com/Freeeeeet/room_booking/internal/controller/httpapi"
	"github.com/Freeeeeet/room_booking/internal/controller/telegram"
	"github.com/Freeeeeet/room_booking/internal/export"
	"github.com/Freeeeeet/room_booking/internal/model"
	"github.com/Freeeeeet/room_booking/internal/queue"
	"github.com/Freeeeeet/room_booking/internal/render"
	"github.com/Freeeeeet/room_booking/internal/repository"
	"github.com/Freeeeeet/room_booking/internal/repository/base"
	"github.com/Freeeeeet/room_booking/internal/service"
	"github.com/Freeeeeet/room_booking/internal/timeline"
	"github.com/go-telegram/bot"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	cliApp := &cli.App{
		Name:  "roombooking",
		Usage: "Conference room booking service with a timeline view.",
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			renderCommand(),
			exportCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "roombooking:", err)
		os.Exit(1)
	}
}

// env - общие зависимости всех команд
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	base   *base.Repository
	schema *repository.SchemaManager
	store  *repository.BookingRepository
}

func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogLevel)

	b, err := base.NewRepository(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("init repository: %w", err)
	}

	return &env{
		cfg:    cfg,
		logger: logger,
		base:   b,
		schema: repository.NewSchemaManager(b, logger),
		store:  repository.NewBookingRepository(b),
	}, nil
}

func (e *env) migrate(ctx context.Context) error {
	return app.NewMigrator(e.base, e.schema, e.logger).Run(ctx)
}

func (e *env) formOptions() model.FormOptions {
	return model.FormOptions{
		ConferenceTypes: e.cfg.ConferenceTypes,
		Affiliations:    e.cfg.Affiliations,
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create or upgrade the bookings table and exit.",
		Action: func(c *cli.Context) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			mg := app.NewMigrator(e.base, e.schema, e.logger)
			if err := mg.Run(c.Context); err != nil {
				return err
			}
			version, err := mg.Version(c.Context)
			if err != nil {
				return err
			}
			e.logger.Info("Database is up to date", zap.Int64("version", version))
			return nil
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API and, when configured, the telegram bot.",
		Action: func(c *cli.Context) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := e.migrate(ctx); err != nil {
				return err
			}

			var snapshotCache service.SnapshotCache
			if e.cfg.RedisAddr != "" {
				if rdb := cache.NewRedisClient(ctx, e.cfg.RedisAddr, "", 0); rdb != nil {
					defer rdb.Close()
					snapshotCache = cache.NewSnapshotCache(rdb, "", e.cfg.CacheTTL, e.logger)
					e.logger.Info("✅ Snapshot cache enabled", zap.String("addr", e.cfg.RedisAddr))
				} else {
					e.logger.Warn("Redis is unreachable, running without cache", zap.String("addr", e.cfg.RedisAddr))
				}
			}

			var events service.EventPublisher
			if e.cfg.AMQPURL != "" {
				publisher, err := queue.NewPublisher(e.cfg.AMQPURL, e.cfg.AMQPExchange)
				if err != nil {
					e.logger.Warn("RabbitMQ is unreachable, booking events disabled", zap.Error(err))
				} else {
					defer publisher.Close()
					events = publisher
					e.logger.Info("✅ Booking events enabled", zap.String("exchange", e.cfg.AMQPExchange))
				}
			}

			bookings := service.NewBookingService(e.store, snapshotCache, events, e.logger)

			if snapshotCache != nil {
				scheduler := app.NewScheduler(bookings, e.cfg.CacheTTL/2, e.logger)
				scheduler.Start(ctx)
				defer scheduler.Stop()
			}

			errCh := make(chan error, 2)

			if e.cfg.HTTPAddr != "" {
				server := httpapi.NewServer(httpapi.NewHandler(bookings, e.formOptions(), e.logger), e.logger)
				go func() {
					e.logger.Info("Starting HTTP server", zap.String("addr", e.cfg.HTTPAddr))
					if err := server.Start(e.cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
						errCh <- fmt.Errorf("http server: %w", err)
					}
				}()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					if err := server.Shutdown(shutdownCtx); err != nil {
						e.logger.Warn("HTTP server shutdown failed", zap.Error(err))
					}
				}()
			}

			if e.cfg.TelegramToken != "" {
				botInstance, err := bot.New(e.cfg.TelegramToken)
				if err != nil {
					return fmt.Errorf("create telegram bot: %w", err)
				}
				controller := telegram.NewBotController(botInstance, bookings, e.formOptions(), e.logger)
				if err := controller.RegisterHandlers(ctx); err != nil {
					e.logger.Warn("Failed to register bot commands menu", zap.Error(err))
				}
				go func() {
					_ = controller.Start(ctx)
				}()
			}

			if e.cfg.HTTPAddr == "" && e.cfg.TelegramToken == "" {
				return errors.New("nothing to serve: set HTTP_ADDR or TELEGRAM_TOKEN")
			}

			select {
			case <-ctx.Done():
				e.logger.Info("Shutting down")
				return nil
			case err := <-errCh:
				return err
			}
		},
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render the bookings timeline of the current window to a PNG file.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "timeline.png", Usage: "PNG file to write"},
			&cli.TimestampFlag{Name: "today", Layout: model.DateLayout, Usage: "Pretend today is this date (YYYY-MM-DD)"},
		},
		Action: func(c *cli.Context) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			now := time.Now()
			if ts := c.Timestamp("today"); ts != nil {
				now = *ts
			}

			snap, err := e.store.GetAll(c.Context)
			if err != nil {
				return err
			}

			res := timeline.NewProjector().Project(snap, timeline.DefaultWindow(now))
			if banner, ok := render.BannerFor(res); ok {
				fmt.Fprintf(os.Stderr, "[%s] %s\n", banner.Level, banner.Text)
			}

			plotted, ok := res.(timeline.Plotted)
			if !ok {
				return cli.Exit("nothing to plot: "+string(res.Reason()), 2)
			}

			imageData, err := render.TimelineImage(plotted, now)
			if err != nil {
				return fmt.Errorf("render timeline: %w", err)
			}
			if err := os.WriteFile(c.String("output"), imageData, 0o644); err != nil {
				return fmt.Errorf("write image: %w", err)
			}

			e.logger.Info("Timeline rendered",
				zap.String("file", c.String("output")),
				zap.Int("bars", len(plotted.Bars)))
			return nil
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export all bookings to an iCalendar file.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "bookings.ics", Usage: "ICS file to write"},
		},
		Action: func(c *cli.Context) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			snap, err := e.store.GetAll(c.Context)
			if err != nil {
				return err
			}

			f, err := os.Create(c.String("output"))
			if err != nil {
				return fmt.Errorf("create file: %w", err)
			}
			defer f.Close()

			n, err := export.WriteICS(f, snap.Bookings(), time.Now())
			if err != nil {
				return err
			}
			e.logger.Info("Bookings exported", zap.String("file", c.String("output")), zap.Int("events", n))
			return nil
		},
	}
}
