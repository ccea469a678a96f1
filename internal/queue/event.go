package queue

import (
	"time"

	"github.com/Freeeeeet/room_booking/internal/model"
	"github.com/google/uuid"
)

// RoutingKeyBookingCreated - ключ маршрутизации события о новом бронировании
const RoutingKeyBookingCreated = "booking.created"

// BookingCreatedEvent публикуется после успешного сохранения бронирования
type BookingCreatedEvent struct {
	EventID        string    `json:"event_id"`
	BookingID      int64     `json:"booking_id"`
	BookingDate    string    `json:"booking_date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	ConferenceType string    `json:"conference_type"`
	PersonName     string    `json:"person_name"`
	CompanyName    string    `json:"company_name"`
	Affiliation    string    `json:"affiliation"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewBookingCreatedEvent собирает событие из бронирования
func NewBookingCreatedEvent(b model.Booking, now time.Time) BookingCreatedEvent {
	return BookingCreatedEvent{
		EventID:        uuid.NewString(),
		BookingID:      b.ID,
		BookingDate:    b.BookingDate,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		ConferenceType: b.ConferenceType,
		PersonName:     b.PersonName,
		CompanyName:    b.CompanyName,
		Affiliation:    b.Affiliation,
		Email:          b.Email,
		CreatedAt:      now.UTC(),
	}
}
