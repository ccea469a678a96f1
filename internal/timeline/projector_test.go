package timeline

import (
	"testing"
	"time"

	"github.com/Freeeeeet/room_booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2025, time.March, 18, 0, 0, 0, 0, time.UTC)

func row(id int64, date, start, end string) model.Booking {
	return model.Booking{ID: id, Candidate: model.Candidate{
		BookingDate:    date,
		StartTime:      start,
		EndTime:        end,
		ConferenceType: "I-HUB 5th floor",
		PersonName:     "Person",
		CompanyName:    "Company",
		Affiliation:    "I-HUB",
		Email:          "p@example.org",
	}}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDefaultWindow(t *testing.T) {
	w := DefaultWindow(today)
	assert.Equal(t, day(2025, time.February, 1), w.Start)
	assert.Equal(t, day(2025, time.May, 1), w.End)
	assert.Equal(t, 89, w.Days())

	jan := DefaultWindow(day(2025, time.January, 31))
	assert.Equal(t, day(2024, time.December, 1), jan.Start)
	assert.Equal(t, day(2025, time.March, 1), jan.End)

	assert.True(t, w.Contains(w.Start))
	assert.False(t, w.Contains(w.End))
}

func TestProjectEmpty(t *testing.T) {
	p := NewProjector()
	assert.Equal(t, Empty{}, p.Project(&model.Snapshot{Columns: []string{"id"}}, DefaultWindow(today)))
	assert.Equal(t, ReasonNoData, p.Project(nil, DefaultWindow(today)).Reason())
}

func TestProjectMissingColumns(t *testing.T) {
	snap := model.NewSnapshot(row(1, "2025-03-10", "09:00:00", "10:00:00"))
	snap.Columns = []string{"id", "booking_date", "start_time", "end_time", "conference_type", "person_name", "company_name", "affiliation"}

	res := NewProjector().Project(snap, DefaultWindow(today))
	assert.Equal(t, SchemaError{Missing: []string{"email"}}, res)
}

func TestProjectConferenceTypeOptional(t *testing.T) {
	snap := model.NewSnapshot(row(1, "2025-03-10", "09:00:00", "10:00:00"))
	snap.Columns = []string{"id", "booking_date", "start_time", "end_time", "person_name", "company_name", "affiliation", "email"}

	res := NewProjector().Project(snap, DefaultWindow(today))
	assert.Equal(t, ReasonOK, res.Reason())
}

func TestProjectAllRowsUnparsable(t *testing.T) {
	snap := model.NewSnapshot(
		row(1, "??", "09:00:00", "10:00:00"),
		row(2, "2025-03-10", "9 o'clock", "10:00:00"),
		row(3, "2025-03-10", "09:00:00", ""),
	)

	res := NewProjector().Project(snap, DefaultWindow(today))
	assert.Equal(t, Unplottable{Kind: ReasonAllRowsUnparsable, BadCount: 3}, res)
	assert.Equal(t, ReasonAllRowsUnparsable, res.Reason())
}

func TestProjectNegativeDurationIsClamped(t *testing.T) {
	snap := model.NewSnapshot(row(7, "2025-03-10", "14:00:00", "13:00:00"))

	res := NewProjector().Project(snap, DefaultWindow(today))
	plotted, ok := res.(Plotted)
	require.True(t, ok, "got %#v", res)
	require.Len(t, plotted.Bars, 1)
	assert.Equal(t, 1, plotted.InvalidDurationCount)

	bar := plotted.Bars[0]
	assert.Equal(t, int64(7), bar.BookingID)
	assert.Equal(t, 14.0, bar.StartHour)
	assert.Equal(t, 14.25, bar.EndHour)
	assert.Equal(t, -1.0, bar.Meta.RawDurationHours)
	assert.True(t, bar.Meta.Invalid())
	assert.Equal(t, "13:00:00", bar.Meta.EndTime)
}

func TestProjectZeroDurationWithoutClamp(t *testing.T) {
	snap := model.NewSnapshot(
		row(1, "2025-03-10", "10:00:00", "10:00:00"),
		row(2, "2025-03-11", "12:00", "11:00"),
	)

	p := &Projector{MinBarHours: 0}
	assert.Equal(t, Unplottable{Kind: ReasonZeroDuration}, p.Project(snap, DefaultWindow(today)))
}

func TestProjectOutOfWindow(t *testing.T) {
	snap := model.NewSnapshot(
		row(1, "2025-08-20", "09:00:00", "10:00:00"),
		row(2, "2024-11-02", "09:00:00", "10:00:00"),
		row(3, "garbage", "09:00:00", "10:00:00"),
	)
	w := DefaultWindow(today)

	res := NewProjector().Project(snap, w)
	assert.Equal(t, OutOfWindow{
		Window:  w,
		MinDate: day(2024, time.November, 2),
		MaxDate: day(2025, time.August, 20),
	}, res)
}

func TestProjectPlotted(t *testing.T) {
	snap := model.NewSnapshot(
		row(1, "2025-03-10", "09:30", "11:15:36"),
		row(2, "2025-08-20", "09:00:00", "10:00:00"), // пять месяцев вперёд
		row(3, "bad", "09:00:00", "10:00:00"),
		row(4, "2025-02-01 00:00:00", "23:00:00", "23:30:00"),
		row(5, "2025-03-12", "10:00:00", "09:00:00"),
	)

	res := NewProjector().Project(snap, DefaultWindow(today))
	plotted, ok := res.(Plotted)
	require.True(t, ok, "got %#v", res)

	require.Len(t, plotted.Bars, 3)
	assert.Equal(t, []int64{1, 4, 5}, []int64{plotted.Bars[0].BookingID, plotted.Bars[1].BookingID, plotted.Bars[2].BookingID})
	assert.Equal(t, 1, plotted.InvalidDurationCount)
	assert.Equal(t, 1, plotted.BadCount)

	first := plotted.Bars[0]
	assert.Equal(t, day(2025, time.March, 10), first.Date)
	assert.InDelta(t, 9.5, first.StartHour, 1e-9)
	assert.InDelta(t, 11.26, first.EndHour, 1e-9)
	assert.Equal(t, "09:30", first.Meta.StartTime)
	assert.False(t, first.Meta.Invalid())
}

func TestParseDate(t *testing.T) {
	for _, v := range []string{"2025-03-10", "2025-03-10 08:00:00", "2025-03-10T08:00:00Z", "2025/03/10", "10.03.2025", "03/10/2025", "Mar 10, 2025", "20250310"} {
		got, ok := ParseDate(v)
		require.True(t, ok, v)
		assert.Equal(t, day(2025, time.March, 10), got, v)
	}
	_, ok := ParseDate("")
	assert.False(t, ok)
}

func TestParseDateLenient(t *testing.T) {
	for _, v := range []string{
		"2025-3-10",
		"March 10, 2025",
		"10 March 2025",
		"2025-03-10 08:00",
		"Mon, 10 Mar 2025",
		"2025.03.10",
		"3/10/2025",
	} {
		got, ok := ParseDate(v)
		require.True(t, ok, v)
		assert.Equal(t, day(2025, time.March, 10), got, v)
	}

	for _, v := range []string{"??", "   ", "--"} {
		_, ok := ParseDate(v)
		assert.False(t, ok, v)
	}
}

func TestProjectPlotsLegacyDateFormats(t *testing.T) {
	snap := model.NewSnapshot(
		row(1, "March 10, 2025", "09:00:00", "10:00:00"),
		row(2, "2025.03.11", "11:00:00", "12:00:00"),
	)

	res := NewProjector().Project(snap, DefaultWindow(day(2025, time.March, 18)))
	plotted, ok := res.(Plotted)
	require.True(t, ok, "got %T", res)
	require.Len(t, plotted.Bars, 2)
	assert.Equal(t, day(2025, time.March, 10), plotted.Bars[0].Date)
	assert.Equal(t, day(2025, time.March, 11), plotted.Bars[1].Date)
	assert.Zero(t, plotted.BadCount)
}

func TestParseClockHours(t *testing.T) {
	h, ok := ParseClockHours("13:45")
	require.True(t, ok)
	assert.Equal(t, 13.75, h)

	h, ok = ParseClockHours("00:00:36")
	require.True(t, ok)
	assert.InDelta(t, 0.01, h, 1e-9)

	for _, v := range []string{"", "24:00:00", "noon", "12"} {
		_, ok := ParseClockHours(v)
		assert.False(t, ok, v)
	}
}
