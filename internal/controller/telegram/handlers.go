package telegram

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Freeeeeet/room_booking/internal/controller/state"
	"github.com/Freeeeeet/room_booking/internal/model"
	"github.com/Freeeeeet/room_booking/internal/render"
	"github.com/Freeeeeet/room_booking/internal/service"
	"github.com/Freeeeeet/room_booking/internal/timeline"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const helpText = "📚 Commands:\n\n" +
	"/book - Book the conference room\n" +
	"/bookings - All bookings sorted by date\n" +
	"/timeline - Bookings chart for the current 3-month window\n" +
	"/cancel - Abort the current booking\n" +
	"/help - Show this help"

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	bookings     *service.BookingService
	projector    *timeline.Projector
	options      model.FormOptions
	stateManager *state.Manager
	now          func() time.Time
	logger       *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	bookings *service.BookingService,
	options model.FormOptions,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		bookings:     bookings,
		projector:    timeline.NewProjector(),
		options:      options,
		stateManager: stateManager,
		now:          time.Now,
		logger:       logger,
	}
}

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	name := "there"
	if update.Message.From != nil && update.Message.From.FirstName != "" {
		name = update.Message.From.FirstName
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"👋 Hi, "+name+"!\n\nThis bot books the conference room.\n\n"+helpText, nil)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleBookings показывает все бронирования таблицей
func (h *Handlers) HandleBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	snap, err := h.bookings.Snapshot(ctx)
	if err != nil {
		h.logger.Error("Failed to load bookings", zap.Error(err))
		h.sendError(ctx, b, chatID, service.ErrorMessage(err))
		return
	}

	rows := render.SortedTable(snap)
	if len(rows) == 0 {
		h.sendMessage(ctx, b, chatID, "No bookings in the database yet.", nil)
		return
	}
	h.sendLong(ctx, b, chatID, render.FormatTable(rows))
}

// HandleTimeline отправляет график бронирований или сообщение, почему его нет
func (h *Handlers) HandleTimeline(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	snap, err := h.bookings.Snapshot(ctx)
	if err != nil {
		h.logger.Error("Failed to load bookings", zap.Error(err))
		h.sendError(ctx, b, chatID, service.ErrorMessage(err))
		return
	}

	now := h.now()
	res := h.projector.Project(snap, timeline.DefaultWindow(now))
	banner, hasBanner := render.BannerFor(res)

	plotted, ok := res.(timeline.Plotted)
	if !ok {
		h.sendMessage(ctx, b, chatID, bannerText(banner), nil)
		return
	}

	imageData, err := render.TimelineImage(plotted, now)
	if err != nil {
		h.logger.Error("Failed to render timeline", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Failed to draw the timeline")
		return
	}

	caption := "📊 Conference room bookings"
	if hasBanner {
		caption += "\n\n" + bannerText(banner)
	}
	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileUpload{Filename: "timeline.png", Data: bytes.NewReader(imageData)},
		Caption: caption,
	})
	if err != nil {
		h.logger.Error("Failed to send timeline", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// HandleBook начинает диалог бронирования
func (h *Handlers) HandleBook(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	telegramID := update.Message.From.ID

	step := h.stateManager.StartBooking(telegramID)
	h.logger.Info("Starting booking dialog", zap.Int64("telegram_id", telegramID))

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"📝 New booking\n\n"+stepPrompt(step, 0), stepKeyboard(step, h.options))
}

// HandleCancel отменяет текущий диалог
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	telegramID := update.Message.From.ID

	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Nothing to cancel.", nil)
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Booking cancelled.",
		&models.ReplyKeyboardRemove{RemoveKeyboard: true})
}

// HandleTextMessage обрабатывает ответы на шаги диалога
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	step, _, ok := h.stateManager.CurrentStep(telegramID)
	if !ok {
		h.logger.Debug("No active state, ignoring message", zap.Int64("telegram_id", telegramID))
		return
	}

	value, problem := validateStepInput(step.Field, update.Message.Text)
	if problem != "" {
		h.sendError(ctx, b, chatID, problem)
		return
	}

	next, done, ok := h.stateManager.Advance(telegramID, value)
	if !ok {
		return
	}
	if !done {
		_, idx, _ := h.stateManager.CurrentStep(telegramID)
		h.sendMessage(ctx, b, chatID, "✅ "+fieldLabel(step.Field)+": "+value+"\n\n"+stepPrompt(next, idx),
			stepKeyboard(next, h.options))
		return
	}

	h.submit(ctx, b, telegramID, chatID)
}

func (h *Handlers) submit(ctx context.Context, b *bot.Bot, telegramID, chatID int64) {
	form := h.stateManager.Form(telegramID)
	h.stateManager.ClearState(telegramID)

	booking, err := h.bookings.Submit(ctx, form)
	if err != nil {
		var conflictErr *service.ConflictError
		if errors.As(err, &conflictErr) {
			h.sendMessage(ctx, b, chatID, service.ErrorMessage(err)+"\n\nUse /book to pick another time.",
				&models.ReplyKeyboardRemove{RemoveKeyboard: true})
			return
		}
		h.logger.Warn("Booking submission failed", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendMessage(ctx, b, chatID, service.ErrorMessage(err),
			&models.ReplyKeyboardRemove{RemoveKeyboard: true})
		return
	}

	h.sendMessage(ctx, b, chatID, "✅ Booking confirmed!\n\n"+formatCandidate(booking.Candidate),
		&models.ReplyKeyboardRemove{RemoveKeyboard: true})
}

func bannerText(banner render.Banner) string {
	switch banner.Level {
	case render.LevelError:
		return "❌ " + banner.Text
	case render.LevelWarning:
		return "⚠️ " + banner.Text
	default:
		return "ℹ️ " + banner.Text
	}
}
