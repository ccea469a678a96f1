package app

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Freeeeeet/room_booking/internal/repository"
	"github.com/Freeeeeet/room_booking/internal/repository/base"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigratorRun(t *testing.T) {
	ctx := context.Background()
	b, err := base.NewRepository(base.DriverSQLite, filepath.Join(t.TempDir(), "bookings.db"))
	require.NoError(t, err)

	logger := zap.NewNop()
	mg := NewMigrator(b, repository.NewSchemaManager(b, logger), logger)

	require.NoError(t, mg.Run(ctx))
	// повторный запуск ничего не ломает
	require.NoError(t, mg.Run(ctx))

	version, err := mg.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	cols, err := repository.NewSchemaManager(b, logger).Columns(ctx)
	require.NoError(t, err)
	assert.Contains(t, cols, "booking_date")
}

type countingRefresher struct {
	calls atomic.Int32
}

func (c *countingRefresher) RefreshCache(context.Context) error {
	c.calls.Add(1)
	return nil
}

func TestSchedulerRefreshesCache(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	refresher := &countingRefresher{}
	s := NewScheduler(refresher, 10*time.Millisecond, zap.NewNop())
	s.Start(ctx)
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return refresher.calls.Load() >= 3
	}, time.Second, 5*time.Millisecond)
}

func TestNewLoggerLevel(t *testing.T) {
	logger := NewLogger("development", "warn")
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))

	// неизвестный уровень не роняет сборку логгера
	assert.NotNil(t, NewLogger("production", "loud"))
}
