package state

import "github.com/Freeeeeet/room_booking/internal/model"

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Шаги диалога бронирования, в порядке полей формы
	StateBookingDate        UserState = "booking_date"
	StateBookingStartTime   UserState = "booking_start_time"
	StateBookingEndTime     UserState = "booking_end_time"
	StateBookingConference  UserState = "booking_conference_type"
	StateBookingPersonName  UserState = "booking_person_name"
	StateBookingCompanyName UserState = "booking_company_name"
	StateBookingAffiliation UserState = "booking_affiliation"
	StateBookingEmail       UserState = "booking_email"
)

// Step - один шаг диалога: состояние и поле формы, которое оно заполняет
type Step struct {
	State UserState
	Field string
}

// BookingSteps - шаги диалога /book
var BookingSteps = []Step{
	{StateBookingDate, model.FieldBookingDate},
	{StateBookingStartTime, model.FieldStartTime},
	{StateBookingEndTime, model.FieldEndTime},
	{StateBookingConference, model.FieldConferenceType},
	{StateBookingPersonName, model.FieldPersonName},
	{StateBookingCompanyName, model.FieldCompanyName},
	{StateBookingAffiliation, model.FieldAffiliation},
	{StateBookingEmail, model.FieldEmail},
}

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Form  model.Candidate
}
