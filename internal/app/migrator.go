package app

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/Freeeeeet/room_booking/internal/repository"
	"github.com/Freeeeeet/room_booking/internal/repository/base"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// Migrator приводит таблицу к каноничной схеме и накатывает goose-миграции
type Migrator struct {
	base   *base.Repository
	schema *repository.SchemaManager
	logger *zap.Logger
}

// NewMigrator создаёт новый мигратор
func NewMigrator(b *base.Repository, schema *repository.SchemaManager, logger *zap.Logger) *Migrator {
	return &Migrator{base: b, schema: schema, logger: logger}
}

// Run применяет все pending миграции
func (mg *Migrator) Run(ctx context.Context) error {
	mg.logger.Info("🔄 Applying database migrations...")

	// goose-миграции ссылаются на таблицу, поэтому она должна существовать
	if err := mg.schema.Ensure(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	err := mg.base.WithConn(ctx, "apply migrations", func(db *sql.DB) error {
		if err := mg.prepare(); err != nil {
			return err
		}
		return goose.UpContext(ctx, db, migrationsDir)
	})
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	mg.logger.Info("✅ Migrations applied successfully")
	return nil
}

// Version показывает текущую версию миграций
func (mg *Migrator) Version(ctx context.Context) (int64, error) {
	var version int64
	err := mg.base.WithConn(ctx, "migration version", func(db *sql.DB) error {
		if err := mg.prepare(); err != nil {
			return err
		}
		v, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return err
		}
		version = v
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("get version: %w", err)
	}
	return version, nil
}

func (mg *Migrator) prepare() error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{mg.logger.Sugar()})
	if err := goose.SetDialect(mg.base.GooseDialect()); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return nil
}

// gooseLogger пишет вывод goose в zap
type gooseLogger struct {
	sugar *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.sugar.Infof(format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.sugar.Fatalf(format, v...)
}
