package render

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/Freeeeeet/room_booking/internal/model"
	"github.com/Freeeeeet/room_booking/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBannerFor(t *testing.T) {
	window := timeline.DefaultWindow(time.Date(2025, time.March, 18, 0, 0, 0, 0, time.UTC))

	cases := []struct {
		name  string
		res   timeline.Result
		level Level
		text  string
	}{
		{"empty", timeline.Empty{}, LevelInfo, "No bookings in the database yet."},
		{"schema", timeline.SchemaError{Missing: []string{"email", "person_name"}}, LevelError, "Missing columns: email, person_name"},
		{"unparsable", timeline.Unplottable{Kind: timeline.ReasonAllRowsUnparsable, BadCount: 4}, LevelError, "All rows failed to parse times/dates (bad rows: 4)."},
		{"zero", timeline.Unplottable{Kind: timeline.ReasonZeroDuration}, LevelWarning, "All rows have zero or negative duration (start_time == end_time)."},
		{"window", timeline.OutOfWindow{
			Window:  window,
			MinDate: time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
			MaxDate: time.Date(2025, time.August, 20, 0, 0, 0, 0, time.UTC),
		}, LevelWarning, "No bookings in the 3-month window [2025-02-01 → 2025-05-01]. Data spans 2025-08-01 → 2025-08-20."},
		{"invalid durations", timeline.Plotted{InvalidDurationCount: 2}, LevelError, "2 booking(s) has end_time ≤ start_time (displayed as dots). Admin to correct these entries."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, ok := BannerFor(tc.res)
			require.True(t, ok)
			assert.Equal(t, tc.level, b.Level)
			assert.Equal(t, tc.text, b.Text)
		})
	}

	_, ok := BannerFor(timeline.Plotted{})
	assert.False(t, ok)
}

func TestSortedTable(t *testing.T) {
	mk := func(id int64, date, start string) model.Booking {
		return model.Booking{ID: id, Candidate: model.Candidate{BookingDate: date, StartTime: start}}
	}
	snap := model.NewSnapshot(
		mk(1, "2025-03-11", "09:00:00"),
		mk(2, "2025-03-10", "14:00:00"),
		mk(3, "2025-03-10", "08:00:00"),
		mk(4, "2025-03-10", "14:00:00"),
	)

	got := SortedTable(snap)
	ids := make([]int64, len(got))
	for i, b := range got {
		ids[i] = b.ID
	}
	assert.Equal(t, []int64{3, 2, 4, 1}, ids)
}

func TestFormatTable(t *testing.T) {
	assert.Equal(t, "No bookings to show in the table yet.", FormatTable(nil))

	text := FormatTable([]model.Booking{{ID: 1, Candidate: model.Candidate{
		BookingDate:    "2025-03-10",
		StartTime:      "09:00:00",
		EndTime:        "10:30:15",
		ConferenceType: "Mendeleev",
		PersonName:     "Ravi",
		CompanyName:    "Quantech",
		Affiliation:    "AIC",
		Email:          "ravi@example.org",
	}}})
	assert.Contains(t, text, "📅 2025-03-10")
	assert.Contains(t, text, "• 09:00–10:30:15 Mendeleev: Ravi (Quantech, AIC) ravi@example.org")
}

func TestTimelineImage(t *testing.T) {
	now := time.Date(2025, time.March, 18, 15, 30, 0, 0, time.UTC)
	window := timeline.DefaultWindow(now)
	plotted := timeline.Plotted{
		Window: window,
		Bars: []timeline.Bar{
			{BookingID: 1, Date: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), StartHour: 9, EndHour: 10.5},
			{BookingID: 2, Date: window.Start, StartHour: 23.5, EndHour: 23.75},
		},
	}

	data, err := TimelineImage(plotted, now)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, imageWidth, img.Bounds().Dx())
	assert.Equal(t, imageHeight, img.Bounds().Dy())

	area := newPlotArea(window)
	r, g, b, _ := img.At(int(area.xFor(plotted.Bars[0].Date)), int(area.yFor(9.75))).RGBA()
	assert.Equal(t, [3]uint32{229, 57, 53}, [3]uint32{r >> 8, g >> 8, b >> 8})
}

func TestFormatHourLabel(t *testing.T) {
	assert.Equal(t, "08:00", formatHourLabel(8))
	assert.Equal(t, "24:00", formatHourLabel(24))
}
