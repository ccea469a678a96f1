package render

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/room_booking/internal/model"
	"github.com/Freeeeeet/room_booking/internal/timeline"
)

// Level - уровень важности баннера
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Banner - сообщение пользователю над графиком
type Banner struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// BannerFor возвращает сообщение для результата проекции.
// Для Plotted без битых длительностей сообщения нет.
func BannerFor(res timeline.Result) (Banner, bool) {
	switch r := res.(type) {
	case timeline.Empty:
		return Banner{LevelInfo, "No bookings in the database yet."}, true
	case timeline.SchemaError:
		return Banner{LevelError, fmt.Sprintf("Missing columns: %s", strings.Join(r.Missing, ", "))}, true
	case timeline.Unplottable:
		if r.Kind == timeline.ReasonZeroDuration {
			return Banner{LevelWarning, "All rows have zero or negative duration (start_time == end_time)."}, true
		}
		return Banner{LevelError, fmt.Sprintf("All rows failed to parse times/dates (bad rows: %d).", r.BadCount)}, true
	case timeline.OutOfWindow:
		return Banner{LevelWarning, fmt.Sprintf(
			"No bookings in the 3-month window [%s → %s]. Data spans %s → %s.",
			r.Window.Start.Format(model.DateLayout),
			r.Window.End.Format(model.DateLayout),
			r.MinDate.Format(model.DateLayout),
			r.MaxDate.Format(model.DateLayout),
		)}, true
	case timeline.Plotted:
		if r.InvalidDurationCount > 0 {
			return Banner{LevelError, fmt.Sprintf(
				"%d booking(s) has end_time ≤ start_time (displayed as dots). Admin to correct these entries.",
				r.InvalidDurationCount,
			)}, true
		}
		return Banner{}, false
	default:
		return Banner{LevelInfo, "No data to plot."}, true
	}
}
