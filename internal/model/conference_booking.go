package model

// Имена полей таблицы bookings
const (
	FieldID             = "id"
	FieldBookingDate    = "booking_date"
	FieldStartTime      = "start_time"
	FieldEndTime        = "end_time"
	FieldConferenceType = "conference_type"
	FieldPersonName     = "person_name"
	FieldCompanyName    = "company_name"
	FieldAffiliation    = "affiliation"
	FieldEmail          = "email"
)

// Форматы, в которых бронирования хранятся в БД
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = DateLayout + " " + TimeLayout
)

// Field описывает колонку таблицы bookings: имя, SQL-тип и значение по умолчанию.
// Default == nil означает колонку без DEFAULT.
type Field struct {
	Name    string
	Type    string
	Default any
	Label   string // подпись поля в форме
}

// Fields - каноничный упорядоченный список полей бронирования (без id).
// Используется при создании таблицы, миграции, вставке и отображении.
var Fields = []Field{
	{Name: FieldBookingDate, Type: "TEXT", Label: "Booking Date"},
	{Name: FieldStartTime, Type: "TEXT", Label: "Start Time"},
	{Name: FieldEndTime, Type: "TEXT", Label: "End Time"},
	{Name: FieldConferenceType, Type: "TEXT", Default: "", Label: "Conference Type"},
	{Name: FieldPersonName, Type: "TEXT", Label: "Person Name"},
	{Name: FieldCompanyName, Type: "TEXT", Label: "Company/Organization"},
	{Name: FieldAffiliation, Type: "TEXT", Label: "Affiliation/Department"},
	{Name: FieldEmail, Type: "TEXT", Label: "Email"},
}

// FieldNames возвращает имена каноничных полей в порядке объявления
func FieldNames() []string {
	names := make([]string, len(Fields))
	for i, f := range Fields {
		names[i] = f.Name
	}
	return names
}

// FormOptions - подсказки для полей формы. Значения хранятся как свободный текст.
type FormOptions struct {
	ConferenceTypes []string `json:"conference_types"`
	Affiliations    []string `json:"affiliations"`
}

// Candidate - заявка на бронирование, ещё не сохранённая в БД
type Candidate struct {
	BookingDate    string `json:"booking_date" form:"booking_date"`
	StartTime      string `json:"start_time" form:"start_time"`
	EndTime        string `json:"end_time" form:"end_time"`
	ConferenceType string `json:"conference_type" form:"conference_type"`
	PersonName     string `json:"person_name" form:"person_name"`
	CompanyName    string `json:"company_name" form:"company_name"`
	Affiliation    string `json:"affiliation" form:"affiliation"`
	Email          string `json:"email" form:"email"`
}

// Values возвращает значения заявки в порядке Fields
func (c Candidate) Values() []string {
	return []string{
		c.BookingDate,
		c.StartTime,
		c.EndTime,
		c.ConferenceType,
		c.PersonName,
		c.CompanyName,
		c.Affiliation,
		c.Email,
	}
}

// Set записывает значение поля по имени колонки. false, если поле неизвестно.
func (c *Candidate) Set(field, value string) bool {
	switch field {
	case FieldBookingDate:
		c.BookingDate = value
	case FieldStartTime:
		c.StartTime = value
	case FieldEndTime:
		c.EndTime = value
	case FieldConferenceType:
		c.ConferenceType = value
	case FieldPersonName:
		c.PersonName = value
	case FieldCompanyName:
		c.CompanyName = value
	case FieldAffiliation:
		c.Affiliation = value
	case FieldEmail:
		c.Email = value
	default:
		return false
	}
	return true
}

// Booking - сохранённое бронирование переговорной
type Booking struct {
	ID int64 `json:"id"`
	Candidate
}

// BookingFromRow собирает Booking из строки снимка.
// Отсутствующие колонки дают пустые строки.
func BookingFromRow(row Row) Booking {
	return Booking{
		ID: row.ID,
		Candidate: Candidate{
			BookingDate:    row.Get(FieldBookingDate),
			StartTime:      row.Get(FieldStartTime),
			EndTime:        row.Get(FieldEndTime),
			ConferenceType: row.Get(FieldConferenceType),
			PersonName:     row.Get(FieldPersonName),
			CompanyName:    row.Get(FieldCompanyName),
			Affiliation:    row.Get(FieldAffiliation),
			Email:          row.Get(FieldEmail),
		},
	}
}
