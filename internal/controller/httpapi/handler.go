package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Freeeeeet/room_booking/internal/export"
	"github.com/Freeeeeet/room_booking/internal/model"
	"github.com/Freeeeeet/room_booking/internal/render"
	"github.com/Freeeeeet/room_booking/internal/repository/base"
	"github.com/Freeeeeet/room_booking/internal/service"
	"github.com/Freeeeeet/room_booking/internal/timeline"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HeaderTimelineReason - заголовок с причиной, по которой картинки нет
const HeaderTimelineReason = "X-Timeline-Reason"

// Handler обслуживает HTTP-интерфейс бронирований
type Handler struct {
	bookings  *service.BookingService
	projector *timeline.Projector
	options   model.FormOptions
	now       func() time.Time
	logger    *zap.Logger
}

// NewHandler создаёт обработчик HTTP-запросов
func NewHandler(bookings *service.BookingService, options model.FormOptions, logger *zap.Logger) *Handler {
	return &Handler{
		bookings:  bookings,
		projector: timeline.NewProjector(),
		options:   options,
		now:       time.Now,
		logger:    logger,
	}
}

// Health отвечает "ok" для проверок живости
func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// GetOptions отдаёт списки переговорных и подразделений
func (h *Handler) GetOptions(c echo.Context) error {
	return c.JSON(http.StatusOK, h.options)
}

// CreateBooking принимает заявку в JSON или form-encoded виде
func (h *Handler) CreateBooking(c echo.Context) error {
	candidate, err := bindCandidate(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	booking, err := h.bookings.Submit(c.Request().Context(), candidate)
	if err != nil {
		return h.submitError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"id":      booking.ID,
		"booking": booking,
		"message": "✅ Booking confirmed!",
	})
}

// bindCandidate читает заявку из JSON или формы.
// Значения любого примитивного типа приводятся к строке, null даёт "".
func bindCandidate(c echo.Context) (model.Candidate, error) {
	var candidate model.Candidate
	req := c.Request()

	if !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		if err := c.Bind(&candidate); err != nil {
			return model.Candidate{}, err
		}
		return candidate, nil
	}

	raw := make(map[string]any)
	dec := json.NewDecoder(req.Body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return model.Candidate{}, fmt.Errorf("decode candidate: %w", err)
	}

	for _, f := range model.Fields {
		v, ok := raw[f.Name]
		if !ok || v == nil {
			continue
		}
		switch v.(type) {
		case map[string]any, []any:
			return model.Candidate{}, fmt.Errorf("field %s: expected a primitive value", f.Name)
		}
		candidate.Set(f.Name, fmt.Sprint(v))
	}
	return candidate, nil
}

func (h *Handler) submitError(c echo.Context, err error) error {
	msg := service.ErrorMessage(err)

	var validationErr *service.ValidationError
	var conflictErr *service.ConflictError
	var parseErr *service.ParseError
	switch {
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{
			"error":   msg,
			"missing": validationErr.Missing,
		})
	case errors.As(err, &conflictErr):
		return c.JSON(http.StatusConflict, map[string]any{
			"error":  msg,
			"detail": conflictErr.Detail,
		})
	case errors.Is(err, service.ErrStoredBooking):
		h.logger.Error("Stored booking is malformed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": msg})
	case errors.As(err, &parseErr):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	case base.IsStorageError(err):
		h.logger.Error("Booking store unavailable", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": msg})
	default:
		h.logger.Error("Failed to submit booking", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": msg})
	}
}

// ListBookings отдаёт все бронирования, отсортированные по дате и началу
func (h *Handler) ListBookings(c echo.Context) error {
	snap, err := h.bookings.Snapshot(c.Request().Context())
	if err != nil {
		return h.readError(c, err)
	}
	rows := render.SortedTable(snap)
	if rows == nil {
		rows = []model.Booking{}
	}
	return c.JSON(http.StatusOK, rows)
}

type windowJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type barJSON struct {
	BookingID      int64   `json:"booking_id"`
	Date           string  `json:"date"`
	StartHour      float64 `json:"start_hour"`
	EndHour        float64 `json:"end_hour"`
	PersonName     string  `json:"person_name"`
	CompanyName    string  `json:"company_name"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	ConferenceType string  `json:"conference_type"`
	Email          string  `json:"email"`
	InvalidEnd     bool    `json:"invalid_end"`
}

type timelineJSON struct {
	Reason               timeline.Reason `json:"reason"`
	Banner               *render.Banner  `json:"banner,omitempty"`
	Window               windowJSON      `json:"window"`
	Bars                 []barJSON       `json:"bars,omitempty"`
	Missing              []string        `json:"missing,omitempty"`
	BadCount             int             `json:"bad_count,omitempty"`
	InvalidDurationCount int             `json:"invalid_duration_count,omitempty"`
}

// GetTimeline отдаёт результат проекции в JSON
func (h *Handler) GetTimeline(c echo.Context) error {
	res, window, err := h.project(c)
	if err != nil {
		return h.readError(c, err)
	}

	out := timelineJSON{
		Reason: res.Reason(),
		Window: windowJSON{
			Start: window.Start.Format(model.DateLayout),
			End:   window.End.Format(model.DateLayout),
		},
	}
	if banner, ok := render.BannerFor(res); ok {
		out.Banner = &banner
	}

	switch r := res.(type) {
	case timeline.SchemaError:
		out.Missing = r.Missing
	case timeline.Unplottable:
		out.BadCount = r.BadCount
	case timeline.Plotted:
		out.BadCount = r.BadCount
		out.InvalidDurationCount = r.InvalidDurationCount
		out.Bars = make([]barJSON, 0, len(r.Bars))
		for _, bar := range r.Bars {
			out.Bars = append(out.Bars, barJSON{
				BookingID:      bar.BookingID,
				Date:           bar.Date.Format(model.DateLayout),
				StartHour:      bar.StartHour,
				EndHour:        bar.EndHour,
				PersonName:     bar.Meta.PersonName,
				CompanyName:    bar.Meta.CompanyName,
				StartTime:      bar.Meta.StartTime,
				EndTime:        bar.Meta.EndTime,
				ConferenceType: bar.Meta.ConferenceType,
				Email:          bar.Meta.Email,
				InvalidEnd:     bar.Meta.Invalid(),
			})
		}
	}

	return c.JSON(http.StatusOK, out)
}

// GetTimelinePNG отдаёт картинку таймлайна или 204 с причиной в заголовке
func (h *Handler) GetTimelinePNG(c echo.Context) error {
	res, _, err := h.project(c)
	if err != nil {
		return h.readError(c, err)
	}

	plotted, ok := res.(timeline.Plotted)
	if !ok {
		c.Response().Header().Set(HeaderTimelineReason, string(res.Reason()))
		return c.NoContent(http.StatusNoContent)
	}

	img, err := render.TimelineImage(plotted, h.now())
	if err != nil {
		h.logger.Error("Failed to render timeline", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to render timeline"})
	}
	return c.Blob(http.StatusOK, "image/png", img)
}

// ExportICS отдаёт все бронирования в формате iCalendar
func (h *Handler) ExportICS(c echo.Context) error {
	snap, err := h.bookings.Snapshot(c.Request().Context())
	if err != nil {
		return h.readError(c, err)
	}

	var buf bytes.Buffer
	if _, err := export.WriteICS(&buf, snap.Bookings(), h.now()); err != nil {
		h.logger.Error("Failed to export calendar", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to export calendar"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="bookings.ics"`)
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

func (h *Handler) project(c echo.Context) (timeline.Result, timeline.Window, error) {
	window := timeline.DefaultWindow(h.now())
	snap, err := h.bookings.Snapshot(c.Request().Context())
	if err != nil {
		return nil, window, err
	}
	return h.projector.Project(snap, window), window, nil
}

func (h *Handler) readError(c echo.Context, err error) error {
	h.logger.Error("Failed to read bookings", zap.Error(err))
	status := http.StatusInternalServerError
	if base.IsStorageError(err) {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]string{"error": service.ErrorMessage(err)})
}
