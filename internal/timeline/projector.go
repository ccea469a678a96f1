package timeline

import (
	"sort"
	"strings"
	"time"

	"github.com/Freeeeeet/room_booking/internal/model"
	"github.com/araddon/dateparse"
)

// DefaultMinBarHours - минимальная видимая высота столбика (15 минут)
const DefaultMinBarHours = 0.25

// RequiredColumns - колонки, без которых проекция невозможна.
// conference_type не обязателен: в старых базах его нет, и он читается как "".
var RequiredColumns = []string{
	model.FieldBookingDate,
	model.FieldStartTime,
	model.FieldEndTime,
	model.FieldPersonName,
	model.FieldCompanyName,
	model.FieldAffiliation,
	model.FieldEmail,
}

var (
	dateLayouts = []string{
		model.DateLayout,
		model.DateTimeLayout,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006/01/02",
		"02.01.2006",
		"01/02/2006",
		"Jan 2, 2006",
		"January 2, 2006",
		"2 Jan 2006",
		"2 January 2006",
		"Mon, 2 Jan 2006",
		"20060102",
	}
	clockLayouts = []string{model.TimeLayout, "15:04"}
)

// Projector переводит снимок бронирований в столбики таймлайна
type Projector struct {
	// MinBarHours - высота, до которой растягиваются столбики с длительностью <= 0
	MinBarHours float64
}

func NewProjector() *Projector {
	return &Projector{MinBarHours: DefaultMinBarHours}
}

type parsedRow struct {
	row       model.Row
	date      time.Time
	startHour float64
	endHour   float64
}

// Project строит результат для окна window. Функция чистая: текущее время не читается.
func (p *Projector) Project(snap *model.Snapshot, window Window) Result {
	if snap.Empty() {
		return Empty{}
	}

	if missing := missingColumns(snap); len(missing) > 0 {
		return SchemaError{Missing: missing}
	}

	parsed := make([]parsedRow, 0, len(snap.Rows))
	bad := 0
	for _, row := range snap.Rows {
		pr, ok := parseRow(row)
		if !ok {
			bad++
			continue
		}
		parsed = append(parsed, pr)
	}
	if len(parsed) == 0 {
		return Unplottable{Kind: ReasonAllRowsUnparsable, BadCount: bad}
	}

	invalid := 0
	visible := false
	bars := make([]Bar, 0, len(parsed))
	for _, pr := range parsed {
		raw := pr.endHour - pr.startHour
		height := raw
		if raw <= 0 {
			invalid++
			height = p.MinBarHours
		}
		if height > 0 {
			visible = true
		}
		bars = append(bars, Bar{
			BookingID: pr.row.ID,
			Date:      pr.date,
			StartHour: pr.startHour,
			EndHour:   pr.startHour + height,
			Meta: BarMeta{
				PersonName:       pr.row.Get(model.FieldPersonName),
				CompanyName:      pr.row.Get(model.FieldCompanyName),
				StartTime:        pr.row.Get(model.FieldStartTime),
				EndTime:          pr.row.Get(model.FieldEndTime),
				ConferenceType:   pr.row.Get(model.FieldConferenceType),
				Email:            pr.row.Get(model.FieldEmail),
				RawDurationHours: raw,
			},
		})
	}
	// после растяжения; при MinBarHours > 0 сюда не попасть
	if !visible {
		return Unplottable{Kind: ReasonZeroDuration, BadCount: bad}
	}

	inWindow := make([]Bar, 0, len(bars))
	minDate, maxDate := bars[0].Date, bars[0].Date
	for _, bar := range bars {
		if bar.Date.Before(minDate) {
			minDate = bar.Date
		}
		if bar.Date.After(maxDate) {
			maxDate = bar.Date
		}
		if window.Contains(bar.Date) {
			inWindow = append(inWindow, bar)
		}
	}
	if len(inWindow) == 0 {
		return OutOfWindow{Window: window, MinDate: minDate, MaxDate: maxDate}
	}

	return Plotted{
		Window:               window,
		Bars:                 inWindow,
		InvalidDurationCount: invalid,
		BadCount:             bad,
	}
}

func missingColumns(snap *model.Snapshot) []string {
	var missing []string
	for _, col := range RequiredColumns {
		if !snap.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	sort.Strings(missing)
	return missing
}

func parseRow(row model.Row) (parsedRow, bool) {
	date, ok := ParseDate(row.Get(model.FieldBookingDate))
	if !ok {
		return parsedRow{}, false
	}
	start, ok := ParseClockHours(row.Get(model.FieldStartTime))
	if !ok {
		return parsedRow{}, false
	}
	end, ok := ParseClockHours(row.Get(model.FieldEndTime))
	if !ok {
		return parsedRow{}, false
	}
	return parsedRow{row: row, date: date, startHour: start, endHour: end}, true
}

// ParseDate разбирает дату и отбрасывает время.
// Сначала пробуются точные форматы, затем свободный разбор dateparse.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return truncateToDay(t), true
		}
	}
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return truncateToDay(t), true
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseClockHours переводит "HH:MM:SS" или "HH:MM" в дробные часы [0, 24)
func ParseClockHours(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return float64(t.Hour()) + float64(t.Minute())/60.0 + float64(t.Second())/3600.0, true
		}
	}
	return 0, false
}
