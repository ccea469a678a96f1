package timeline

import "time"

// Reason - код причины результата проекции
type Reason string

const (
	ReasonNoData            Reason = "no_data"
	ReasonMissingColumns    Reason = "missing_columns"
	ReasonAllRowsUnparsable Reason = "all_rows_unparsable"
	ReasonZeroDuration      Reason = "zero_duration"
	ReasonOutOfWindow       Reason = "out_of_window"
	ReasonOK                Reason = "ok"
)

// Result - результат проекции; конкретный тип определяет, что показывать
type Result interface {
	Reason() Reason
}

// Empty - в снимке нет ни одной строки
type Empty struct{}

// SchemaError - в снимке нет обязательных колонок
type SchemaError struct {
	Missing []string
}

// Unplottable - нечего рисовать: все строки битые или все длительности нулевые
type Unplottable struct {
	Kind     Reason
	BadCount int
}

// OutOfWindow - все разобранные строки вне окна
type OutOfWindow struct {
	Window  Window
	MinDate time.Time
	MaxDate time.Time
}

// Plotted - набор столбиков для отрисовки
type Plotted struct {
	Window               Window
	Bars                 []Bar
	InvalidDurationCount int
	BadCount             int
}

func (Empty) Reason() Reason         { return ReasonNoData }
func (SchemaError) Reason() Reason   { return ReasonMissingColumns }
func (u Unplottable) Reason() Reason { return u.Kind }
func (OutOfWindow) Reason() Reason   { return ReasonOutOfWindow }
func (Plotted) Reason() Reason       { return ReasonOK }

// Bar - одно бронирование на таймлайне.
// Геометрия (Date, StartHour, EndHour) отделена от метаданных:
// EndHour может быть растянут до минимальной ширины, Meta хранит исходный текст.
type Bar struct {
	BookingID int64
	Date      time.Time
	StartHour float64
	EndHour   float64
	Meta      BarMeta
}

// BarMeta - данные для подсказки
type BarMeta struct {
	PersonName     string
	CompanyName    string
	StartTime      string
	EndTime        string
	ConferenceType string
	Email          string
	// RawDurationHours - исходная длительность до растяжения, может быть <= 0
	RawDurationHours float64
}

// Invalid сообщает, что у бронирования end_time <= start_time
func (m BarMeta) Invalid() bool {
	return m.RawDurationHours <= 0
}
