package timeline

import "time"

// Window - полуоткрытый диапазон дат [Start, End), который показывает таймлайн
type Window struct {
	Start time.Time
	End   time.Time
}

// DefaultWindow возвращает три календарных месяца вокруг today:
// с первого числа прошлого месяца до первого числа через два месяца (не включая).
func DefaultWindow(today time.Time) Window {
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Window{
		Start: first.AddDate(0, -1, 0),
		End:   first.AddDate(0, 2, 0),
	}
}

// Contains проверяет, что дата попадает в окно
func (w Window) Contains(date time.Time) bool {
	return !date.Before(w.Start) && date.Before(w.End)
}

// Days возвращает количество дней в окне
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours() / 24)
}
