package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/room_booking/internal/repository/base"
)

// ErrStoredBooking - в хранилище лежит бронирование с неразборчивыми датой или временем.
// Заявка тут ни при чём, чинить нужно данные.
var ErrStoredBooking = errors.New("stored booking has malformed date or time")

// ParseError - дата или время заявки не разбираются.
// До детектора конфликтов доходят только заполненные поля, поэтому это ошибка логики выше по стеку.
type ParseError struct {
	Value  string
	Layout string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q as %q: %v", e.Value, e.Layout, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError - в заявке не заполнены обязательные поля
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// ConflictError - заявка пересекается с существующим бронированием
type ConflictError struct {
	Detail string
}

func (e *ConflictError) Error() string {
	return "time conflict: " + e.Detail
}

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	var (
		validationErr *ValidationError
		conflictErr   *ConflictError
		parseErr      *ParseError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &validationErr):
		return fmt.Sprintf("Please fill all required fields: %s.", strings.Join(validationErr.Missing, ", "))
	case errors.As(err, &conflictErr):
		return "❌ Time conflict! " + conflictErr.Detail
	case errors.Is(err, ErrStoredBooking):
		return "❌ An existing booking has a malformed date or time. Please contact the administrator."
	case errors.As(err, &parseErr):
		return fmt.Sprintf("❌ Could not read %q as a date or time.", parseErr.Value)
	case base.IsStorageError(err):
		return "❌ The booking store is unavailable. Please try again later."
	default:
		return "❌ Something went wrong"
	}
}
