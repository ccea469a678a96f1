package service

import (
	"strings"
	"time"

	"github.com/Freeeeeet/room_booking/internal/model"
)

var (
	dateLayouts = []string{model.DateLayout, "2006/01/02", "02.01.2006", model.DateTimeLayout}
	timeLayouts = []string{model.TimeLayout, "15:04", "3:04 PM", "3:04PM"}
)

// MissingFields возвращает подписи незаполненных полей в порядке формы.
// Строка из одних пробелов считается пустой.
func MissingFields(c model.Candidate) []string {
	var missing []string
	for i, v := range c.Values() {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, model.Fields[i].Label)
		}
	}
	return missing
}

// NormalizeCandidate обрезает пробелы и приводит дату к YYYY-MM-DD, время к HH:MM:SS
func NormalizeCandidate(c model.Candidate) (model.Candidate, error) {
	out := model.Candidate{
		ConferenceType: strings.TrimSpace(c.ConferenceType),
		PersonName:     strings.TrimSpace(c.PersonName),
		CompanyName:    strings.TrimSpace(c.CompanyName),
		Affiliation:    strings.TrimSpace(c.Affiliation),
		Email:          strings.TrimSpace(c.Email),
	}

	date, err := parseFirst(strings.TrimSpace(c.BookingDate), dateLayouts)
	if err != nil {
		return model.Candidate{}, err
	}
	out.BookingDate = date.Format(model.DateLayout)

	start, err := parseFirst(strings.TrimSpace(c.StartTime), timeLayouts)
	if err != nil {
		return model.Candidate{}, err
	}
	out.StartTime = start.Format(model.TimeLayout)

	end, err := parseFirst(strings.TrimSpace(c.EndTime), timeLayouts)
	if err != nil {
		return model.Candidate{}, err
	}
	out.EndTime = end.Format(model.TimeLayout)

	return out, nil
}

// NormalizeDate приводит дату к YYYY-MM-DD
func NormalizeDate(value string) (string, error) {
	t, err := parseFirst(strings.TrimSpace(value), dateLayouts)
	if err != nil {
		return "", err
	}
	return t.Format(model.DateLayout), nil
}

// NormalizeTime приводит время к HH:MM:SS
func NormalizeTime(value string) (string, error) {
	t, err := parseFirst(strings.TrimSpace(value), timeLayouts)
	if err != nil {
		return "", err
	}
	return t.Format(model.TimeLayout), nil
}

func parseFirst(value string, layouts []string) (time.Time, error) {
	var firstErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, &ParseError{Value: value, Layout: layouts[0], Err: firstErr}
}
