package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Freeeeeet/room_booking/internal/model"
	"github.com/Freeeeeet/room_booking/internal/timeline"
	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

const (
	productID      = "-//room_booking//Conference Room Bookings//EN"
	floatingLayout = "20060102T150405"
)

var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("room-booking"))

// WriteICS выгружает бронирования в календарь iCalendar.
// Время пишется "плавающим" (без TZID), как оно хранится в базе.
// Строки с нераспознаваемой датой или временем пропускаются.
func WriteICS(w io.Writer, bookings []model.Booking, now time.Time) (int, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	written := 0
	for _, b := range bookings {
		ev, ok := toEvent(b, now)
		if !ok {
			continue
		}
		cal.Children = append(cal.Children, ev)
		written++
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return 0, fmt.Errorf("encode calendar: %w", err)
	}
	return written, nil
}

// BookingUID - стабильный UID события для бронирования
func BookingUID(id int64) string {
	return uuid.NewSHA1(uidNamespace, []byte(strconv.FormatInt(id, 10))).String() + "@room-booking"
}

func toEvent(b model.Booking, now time.Time) (*ical.Component, bool) {
	day, ok := timeline.ParseDate(b.BookingDate)
	if !ok {
		return nil, false
	}
	startH, ok := timeline.ParseClockHours(b.StartTime)
	if !ok {
		return nil, false
	}
	endH, ok := timeline.ParseClockHours(b.EndTime)
	if !ok {
		return nil, false
	}
	start := atHours(day, startH)
	end := atHours(day, endH)

	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, BookingUID(b.ID))
	ve.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	ve.Props.Set(floatingProp(ical.PropDateTimeStart, start))
	// событие без DTEND считается мгновенным
	if end.After(start) {
		ve.Props.Set(floatingProp(ical.PropDateTimeEnd, end))
	}
	ve.Props.SetText(ical.PropSummary, summary(b))
	ve.Props.SetText(ical.PropDescription, description(b, end.After(start)))
	if b.Email != "" {
		p := ical.NewProp(ical.PropOrganizer)
		p.Value = "mailto:" + b.Email
		p.Params.Set(ical.ParamCommonName, b.PersonName)
		ve.Props.Set(p)
	}
	return ve, true
}

func floatingProp(name string, t time.Time) *ical.Prop {
	p := ical.NewProp(name)
	p.Value = t.Format(floatingLayout)
	return p
}

func atHours(day time.Time, hours float64) time.Time {
	return day.Add(time.Duration(hours * float64(time.Hour))).Round(time.Second)
}

func summary(b model.Booking) string {
	if b.ConferenceType != "" {
		return fmt.Sprintf("%s: %s", b.ConferenceType, b.CompanyName)
	}
	return b.CompanyName
}

func description(b model.Booking, validDuration bool) string {
	text := fmt.Sprintf("%s\n%s\n%s", b.PersonName, b.Affiliation, b.Email)
	if !validDuration {
		text += "\n[invalid end time]"
	}
	return text
}
