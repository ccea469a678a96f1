package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/room_booking/internal/model"
)

// BookingReader отдаёт снимок всех бронирований
type BookingReader interface {
	GetAll(ctx context.Context) (*model.Snapshot, error)
}

// Interval - полуоткрытый интервал времени [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps проверяет пересечение интервалов. Касание концами пересечением не считается.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// ConflictDetector ищет бронирования, пересекающиеся с заявкой в тот же день
type ConflictDetector struct {
	reader BookingReader
}

func NewConflictDetector(reader BookingReader) *ConflictDetector {
	return &ConflictDetector{reader: reader}
}

// Check возвращает первое (в порядке хранения) пересечение с заявкой.
// date в формате YYYY-MM-DD, start/end в формате HH:MM:SS.
func (d *ConflictDetector) Check(ctx context.Context, date, start, end string) (bool, string, error) {
	snap, err := d.reader.GetAll(ctx)
	if err != nil {
		return false, "", fmt.Errorf("load bookings: %w", err)
	}
	if snap.Empty() {
		return false, "", nil
	}

	var sameDay []model.Row
	for _, row := range snap.Rows {
		if row.Get(model.FieldBookingDate) == date {
			sameDay = append(sameDay, row)
		}
	}
	if len(sameDay) == 0 {
		return false, "", nil
	}

	candidate, err := parseInterval(date, start, end)
	if err != nil {
		return false, "", err
	}

	for _, row := range sameDay {
		existing, err := parseInterval(date, row.Get(model.FieldStartTime), row.Get(model.FieldEndTime))
		if err != nil {
			return false, "", err
		}
		if Overlaps(candidate, existing) {
			return true, conflictDetail(row), nil
		}
	}

	return false, "", nil
}

func parseInterval(date, start, end string) (Interval, error) {
	s, err := parseDateTime(date, start)
	if err != nil {
		return Interval{}, err
	}
	e, err := parseDateTime(date, end)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: s, End: e}, nil
}

func parseDateTime(date, clock string) (time.Time, error) {
	value := date + " " + clock
	t, err := time.Parse(model.DateTimeLayout, value)
	if err != nil {
		return time.Time{}, &ParseError{Value: value, Layout: model.DateTimeLayout, Err: err}
	}
	return t, nil
}

func conflictDetail(row model.Row) string {
	return fmt.Sprintf("Existing booking by %s (%s) from %s to %s",
		row.Get(model.FieldPersonName),
		row.Get(model.FieldCompanyName),
		row.Get(model.FieldStartTime),
		row.Get(model.FieldEndTime),
	)
}
