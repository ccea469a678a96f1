package render

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/Freeeeeet/room_booking/internal/timeline"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontStyle определяет стиль шрифта
type FontStyle string

const (
	FontStyleDefault FontStyle = ""
	FontStyleBold    FontStyle = "bold"
)

// Константы размеров и отступов
const (
	imageWidth      = 1400
	imageHeight     = 600
	headerHeight    = 60
	footerHeight    = 50
	leftLabelsWidth = 70
	rightPadding    = 20
	hoursInDay      = 24
	hourTickStep    = 2
	barDayFraction  = 0.5 // столбик занимает половину колонки дня
	minBarPixels    = 3.0
)

// Константы шрифтов
const (
	titleFontSize     = 22.0
	axisLabelFontSize = 14.0
	todayFontSize     = 13.0
)

// Цветовая схема
var (
	bgColor        = color.RGBA{255, 255, 255, 255}
	plotBgColor    = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 230}
	hourLineColor  = color.NRGBA{200, 200, 200, 255}
	monthLineColor = color.NRGBA{150, 150, 150, 255}
	barColor       = color.RGBA{229, 57, 53, 255} // #E53935
	todayColor     = color.RGBA{128, 128, 128, 255}
)

var (
	fontMu      sync.Mutex
	cachedFonts = make(map[FontStyle]*opentype.Font)
)

// loadFont выставляет шрифт Go нужного размера или basicfont как fallback
func loadFont(dc *gg.Context, size float64, style ...FontStyle) {
	fontStyle := FontStyleDefault
	if len(style) > 0 {
		fontStyle = style[0]
	}

	fontMu.Lock()
	parsed, ok := cachedFonts[fontStyle]
	if !ok {
		data := goregular.TTF
		if fontStyle == FontStyleBold {
			data = gobold.TTF
		}
		var err error
		parsed, err = opentype.Parse(data)
		if err != nil {
			parsed = nil
		}
		cachedFonts[fontStyle] = parsed
	}
	fontMu.Unlock()

	if parsed != nil {
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// plotArea - прямоугольник области графика и масштаб осей
type plotArea struct {
	x, y, w, h float64
	window     timeline.Window
	dayWidth   float64
}

func newPlotArea(window timeline.Window) plotArea {
	area := plotArea{
		x:      leftLabelsWidth,
		y:      headerHeight,
		w:      imageWidth - leftLabelsWidth - rightPadding,
		h:      imageHeight - headerHeight - footerHeight,
		window: window,
	}
	days := window.Days()
	if days < 1 {
		days = 1
	}
	area.dayWidth = area.w / float64(days)
	return area
}

// xFor возвращает x центра колонки дня
func (a plotArea) xFor(date time.Time) float64 {
	days := date.Sub(a.window.Start).Hours() / 24
	return a.x + (days+0.5)*a.dayWidth
}

// yFor возвращает y для времени суток в часах (0 сверху)
func (a plotArea) yFor(hour float64) float64 {
	return a.y + hour/hoursInDay*a.h
}

// TimelineImage рисует таймлайн "дата × время суток" в PNG.
// now задаёт положение линии "Today".
func TimelineImage(p timeline.Plotted, now time.Time) ([]byte, error) {
	area := newPlotArea(p.Window)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()

	drawTitle(dc, p.Window)
	drawPlotBackground(dc, area)
	drawHourGrid(dc, area)
	drawMonthGrid(dc, area)
	drawBars(dc, area, p.Bars)
	drawTodayLine(dc, area, now)

	return encodeImage(dc)
}

func drawTitle(dc *gg.Context, window timeline.Window) {
	title := "Current Bookings Timeline (Day vs Time) " +
		window.Start.Format("Jan 2006") + " – " + window.End.AddDate(0, 0, -1).Format("Jan 2006")

	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, imageWidth/2, float64(headerHeight)/2, 0.5, 0.5)
}

func drawPlotBackground(dc *gg.Context, area plotArea) {
	dc.SetColor(plotBgColor)
	dc.DrawRectangle(area.x, area.y, area.w, area.h)
	dc.Fill()
}

// drawHourGrid рисует горизонтальные линии и подписи часов
func drawHourGrid(dc *gg.Context, area plotArea) {
	loadFont(dc, axisLabelFontSize)
	dc.SetLineWidth(0.5)

	for h := 0; h <= hoursInDay; h += hourTickStep {
		y := area.yFor(float64(h))
		dc.SetColor(hourLineColor)
		dc.DrawLine(area.x, y, area.x+area.w, y)
		dc.Stroke()

		dc.SetColor(textColor)
		dc.DrawStringAnchored(formatHourLabel(h), area.x-8, y, 1, 0.5)
	}
}

// drawMonthGrid рисует границы и названия месяцев по оси дат
func drawMonthGrid(dc *gg.Context, area plotArea) {
	loadFont(dc, axisLabelFontSize, FontStyleBold)
	dc.SetLineWidth(1)

	for month := area.window.Start; month.Before(area.window.End); month = month.AddDate(0, 1, 0) {
		x := area.x + month.Sub(area.window.Start).Hours()/24*area.dayWidth
		dc.SetColor(monthLineColor)
		dc.DrawLine(x, area.y, x, area.y+area.h)
		dc.Stroke()

		next := month.AddDate(0, 1, 0)
		if next.After(area.window.End) {
			next = area.window.End
		}
		mid := x + next.Sub(month).Hours()/24*area.dayWidth/2
		dc.SetColor(textColor)
		dc.DrawStringAnchored(month.Format("January 2006"), mid, area.y+area.h+18, 0.5, 0.5)
	}
}

func drawBars(dc *gg.Context, area plotArea, bars []timeline.Bar) {
	barWidth := area.dayWidth * barDayFraction
	if barWidth < 2 {
		barWidth = 2
	}

	dc.SetColor(barColor)
	for _, bar := range bars {
		top := area.yFor(bar.StartHour)
		height := area.yFor(bar.EndHour) - top
		if height < minBarPixels {
			height = minBarPixels
		}
		dc.DrawRectangle(area.xFor(bar.Date)-barWidth/2, top, barWidth, height)
		dc.Fill()
	}
}

// drawTodayLine рисует пунктирную вертикальную линию текущего момента
func drawTodayLine(dc *gg.Context, area plotArea, now time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !area.window.Contains(today) {
		return
	}

	dayFraction := (float64(now.Hour()) + float64(now.Minute())/60.0) / hoursInDay
	x := area.x + (today.Sub(area.window.Start).Hours()/24+dayFraction)*area.dayWidth

	dc.SetColor(todayColor)
	dc.SetLineWidth(1)
	dc.SetDash(2, 3)
	dc.DrawLine(x, area.y, x, area.y+area.h)
	dc.Stroke()
	dc.SetDash()

	loadFont(dc, todayFontSize)
	dc.DrawStringAnchored("Today", x, area.y-4, 0.5, 0)
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatHourLabel(h int) string {
	return fmt.Sprintf("%02d:00", h)
}
