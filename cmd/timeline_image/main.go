package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/room_booking/internal/model"
	"github.com/Freeeeeet/room_booking/internal/render"
	"github.com/Freeeeeet/room_booking/internal/timeline"
)

func main() {
	// Создаем тестовые данные вокруг сегодняшней даты
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	day := func(offset int) string {
		return today.AddDate(0, 0, offset).Format(model.DateLayout)
	}

	bookings := []model.Booking{
		fixture(1, day(-20), "09:00:00", "10:30:00", "Mendeleev", "Asha Rao", "Quantech"),
		fixture(2, day(-3), "14:00:00", "15:00:00", "I-HUB 1st floor", "Ravi Kumar", "AIC"),
		fixture(3, day(0), "11:00:00", "12:00:00", "I-HUB 5th floor", "Meera Iyer", "Acme"),
		fixture(4, day(0), "16:00:00", "18:30:00", "Mendeleev", "John Doe", "Acme"),
		// end_time <= start_time: рисуется точкой
		fixture(5, day(5), "13:00:00", "12:00:00", "Mendeleev", "Broken Row", "Legacy"),
		fixture(6, day(21), "08:00:00", "09:00:00", "I-HUB 1st floor", "Asha Rao", "Quantech"),
	}

	res := timeline.NewProjector().Project(model.NewSnapshot(bookings...), timeline.DefaultWindow(now))
	if banner, ok := render.BannerFor(res); ok {
		fmt.Printf("[%s] %s\n", banner.Level, banner.Text)
	}

	plotted, ok := res.(timeline.Plotted)
	if !ok {
		fmt.Printf("Nothing to plot: %s\n", res.Reason())
		os.Exit(1)
	}

	imageData, err := render.TimelineImage(plotted, now)
	if err != nil {
		fmt.Printf("Error generating image: %v\n", err)
		os.Exit(1)
	}

	filename := "test_timeline.png"
	if err := os.WriteFile(filename, imageData, 0o644); err != nil {
		fmt.Printf("Error saving image: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Image saved to %s (%d bars)\n", filename, len(plotted.Bars))
}

func fixture(id int64, date, start, end, room, person, company string) model.Booking {
	return model.Booking{ID: id, Candidate: model.Candidate{
		BookingDate:    date,
		StartTime:      start,
		EndTime:        end,
		ConferenceType: room,
		PersonName:     person,
		CompanyName:    company,
		Affiliation:    "I-HUB",
		Email:          "bookings@example.org",
	}}
}
