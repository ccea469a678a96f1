package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// CacheRefresher перечитывает хранилище в кеш
type CacheRefresher interface {
	RefreshCache(ctx context.Context) error
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	refresher CacheRefresher
	interval  time.Duration
	logger    *zap.Logger
	stopChan  chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(refresher CacheRefresher, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Scheduler{
		refresher: refresher,
		interval:  interval,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))

	go s.runCacheRefreshTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runCacheRefreshTask периодически прогревает кеш снимка бронирований
func (s *Scheduler) runCacheRefreshTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refresh(ctx)
		case <-s.stopChan:
			s.logger.Info("Cache refresh task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Cache refresh task cancelled")
			return
		}
	}
}

func (s *Scheduler) refresh(ctx context.Context) {
	if err := s.refresher.RefreshCache(ctx); err != nil {
		s.logger.Warn("Failed to refresh bookings cache", zap.Error(err))
		return
	}
	s.logger.Debug("Bookings cache refreshed")
}
