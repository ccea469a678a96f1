package model

// Row - одна строка снимка таблицы bookings.
// NULL в БД читается как пустая строка.
type Row struct {
	ID     int64             `json:"id"`
	Values map[string]string `json:"values"`
}

// Get возвращает значение колонки или "" если её нет
func (r Row) Get(column string) string {
	return r.Values[column]
}

// Snapshot - полная копия таблицы bookings на момент чтения.
// Columns содержит все колонки таблицы в порядке БД, включая неизвестные.
type Snapshot struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Empty сообщает, что в снимке нет строк
func (s *Snapshot) Empty() bool {
	return s == nil || len(s.Rows) == 0
}

// HasColumn проверяет наличие колонки в снимке
func (s *Snapshot) HasColumn(name string) bool {
	if s == nil {
		return false
	}
	for _, c := range s.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Bookings преобразует строки снимка в бронирования в порядке хранения
func (s *Snapshot) Bookings() []Booking {
	if s == nil {
		return nil
	}
	bookings := make([]Booking, 0, len(s.Rows))
	for _, row := range s.Rows {
		bookings = append(bookings, BookingFromRow(row))
	}
	return bookings
}

// NewSnapshot строит снимок из бронирований с полным набором колонок
func NewSnapshot(bookings ...Booking) *Snapshot {
	snap := &Snapshot{Columns: append([]string{FieldID}, FieldNames()...)}
	for _, b := range bookings {
		values := make(map[string]string, len(Fields))
		for i, v := range b.Values() {
			values[Fields[i].Name] = v
		}
		snap.Rows = append(snap.Rows, Row{ID: b.ID, Values: values})
	}
	return snap
}
