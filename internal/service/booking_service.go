package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/room_booking/internal/model"
	"go.uber.org/zap"
)

// BookingStore - хранилище бронирований
type BookingStore interface {
	BookingReader
	Create(ctx context.Context, candidate model.Candidate) (int64, error)
}

// SnapshotCache кеширует снимок бронирований для отрисовки
type SnapshotCache interface {
	Get(ctx context.Context) (*model.Snapshot, bool)
	Put(ctx context.Context, snap *model.Snapshot)
	Invalidate(ctx context.Context) error
}

// EventPublisher публикует события о новых бронированиях
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, booking model.Booking) error
}

type BookingService struct {
	store    BookingStore
	detector *ConflictDetector
	cache    SnapshotCache
	events   EventPublisher
	logger   *zap.Logger
}

// NewBookingService создаёт сервис бронирований. cache и events могут быть nil.
func NewBookingService(
	store BookingStore,
	cache SnapshotCache,
	events EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		store:    store,
		detector: NewConflictDetector(store),
		cache:    cache,
		events:   events,
		logger:   logger,
	}
}

// Submit проверяет заявку и сохраняет её, если она ни с чем не пересекается.
// Ожидаемые отказы - *ValidationError и *ConflictError.
func (s *BookingService) Submit(ctx context.Context, candidate model.Candidate) (*model.Booking, error) {
	if missing := MissingFields(candidate); len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	normalized, err := NormalizeCandidate(candidate)
	if err != nil {
		return nil, err
	}

	conflict, detail, err := s.detector.Check(ctx, normalized.BookingDate, normalized.StartTime, normalized.EndTime)
	if err != nil {
		// заявка уже нормализована, значит неразборчива сохранённая строка
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("check conflict: %w: %w", ErrStoredBooking, err)
		}
		return nil, fmt.Errorf("check conflict: %w", err)
	}
	if conflict {
		s.logger.Info("Booking rejected due to conflict",
			zap.String("date", normalized.BookingDate),
			zap.String("start", normalized.StartTime),
			zap.String("end", normalized.EndTime),
			zap.String("detail", detail),
		)
		return nil, &ConflictError{Detail: detail}
	}

	id, err := s.store.Create(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	booking := &model.Booking{ID: id, Candidate: normalized}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("Failed to invalidate bookings cache", zap.Error(err))
		}
	}

	if s.events != nil {
		if err := s.events.PublishBookingCreated(ctx, *booking); err != nil {
			s.logger.Warn("Failed to publish booking event",
				zap.Int64("booking_id", id),
				zap.Error(err))
		}
	}

	s.logger.Info("Booking created",
		zap.Int64("booking_id", id),
		zap.String("date", normalized.BookingDate),
		zap.String("start", normalized.StartTime),
		zap.String("end", normalized.EndTime),
		zap.String("conference_type", normalized.ConferenceType),
		zap.String("company", normalized.CompanyName),
	)

	return booking, nil
}

// Snapshot возвращает все бронирования, по возможности из кеша
func (s *BookingService) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	if s.cache != nil {
		if snap, ok := s.cache.Get(ctx); ok {
			return snap, nil
		}
	}

	snap, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	if s.cache != nil {
		s.cache.Put(ctx, snap)
	}
	return snap, nil
}

// RefreshCache перечитывает хранилище и обновляет кеш снимка
func (s *BookingService) RefreshCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	snap, err := s.store.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("get bookings: %w", err)
	}
	s.cache.Put(ctx, snap)
	return nil
}
