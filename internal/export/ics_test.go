package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/Freeeeeet/room_booking/internal/model"
	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func booking(id int64, date, start, end string) model.Booking {
	return model.Booking{ID: id, Candidate: model.Candidate{
		BookingDate:    date,
		StartTime:      start,
		EndTime:        end,
		ConferenceType: "Mendeleev",
		PersonName:     "Ravi",
		CompanyName:    "Quantech",
		Affiliation:    "AIC",
		Email:          "ravi@example.org",
	}}
}

func TestWriteICS(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	bookings := []model.Booking{
		booking(1, "2025-03-10", "09:00:00", "10:30:00"),
		booking(2, "??", "09:00:00", "10:00:00"),
		booking(3, "2025-03-11", "11:00:00", "10:00:00"),
	}

	var buf bytes.Buffer
	n, err := WriteICS(&buf, bookings, now)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	cal, err := ical.NewDecoder(&buf).Decode()
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, BookingUID(1), first.Props.Get(ical.PropUID).Value)
	assert.Equal(t, "20250310T090000", first.Props.Get(ical.PropDateTimeStart).Value)
	assert.Equal(t, "20250310T103000", first.Props.Get(ical.PropDateTimeEnd).Value)
	assert.Equal(t, "Mendeleev: Quantech", first.Props.Get(ical.PropSummary).Value)

	second := events[1]
	assert.Nil(t, second.Props.Get(ical.PropDateTimeEnd))
	desc, err := second.Props.Get(ical.PropDescription).Text()
	require.NoError(t, err)
	assert.Contains(t, desc, "[invalid end time]")
}

func TestBookingUIDStable(t *testing.T) {
	assert.Equal(t, BookingUID(7), BookingUID(7))
	assert.NotEqual(t, BookingUID(7), BookingUID(8))
}

func TestWriteICSLegacyDate(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	n, err := WriteICS(&buf, []model.Booking{booking(9, "March 12, 2025", "14:00:00", "15:00:00")}, now)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	cal, err := ical.NewDecoder(&buf).Decode()
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "20250312T140000", events[0].Props.Get(ical.PropDateTimeStart).Value)
}
