package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Freeeeeet/room_booking/internal/model"
)

// SortedTable возвращает бронирования, отсортированные по дате и времени начала
func SortedTable(snap *model.Snapshot) []model.Booking {
	bookings := snap.Bookings()
	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].BookingDate != bookings[j].BookingDate {
			return bookings[i].BookingDate < bookings[j].BookingDate
		}
		return bookings[i].StartTime < bookings[j].StartTime
	})
	return bookings
}

// FormatTable форматирует бронирования для текстового сообщения
func FormatTable(bookings []model.Booking) string {
	if len(bookings) == 0 {
		return "No bookings to show in the table yet."
	}

	var sb strings.Builder
	sb.WriteString("📌 All Existing Bookings\n")
	currentDate := ""
	for _, b := range bookings {
		if b.BookingDate != currentDate {
			currentDate = b.BookingDate
			fmt.Fprintf(&sb, "\n📅 %s\n", currentDate)
		}
		fmt.Fprintf(&sb, "• %s–%s %s: %s (%s, %s) %s\n",
			shortClock(b.StartTime),
			shortClock(b.EndTime),
			b.ConferenceType,
			b.PersonName,
			b.CompanyName,
			b.Affiliation,
			b.Email,
		)
	}
	return sb.String()
}

// shortClock отрезает секунды у "HH:MM:SS"
func shortClock(s string) string {
	if len(s) == len(model.TimeLayout) && strings.HasSuffix(s, ":00") {
		return s[:5]
	}
	return s
}
