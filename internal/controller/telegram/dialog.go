package telegram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Freeeeeet/room_booking/internal/controller/state"
	"github.com/Freeeeeet/room_booking/internal/model"
	"github.com/Freeeeeet/room_booking/internal/service"
	"github.com/go-telegram/bot/models"
)

// maxMessageLength - ограничение Telegram на длину текста сообщения
const maxMessageLength = 4096

var stepHints = map[string]string{
	model.FieldBookingDate:    "Format: YYYY-MM-DD, e.g. 2025-03-10",
	model.FieldStartTime:      "Format: HH:MM, e.g. 09:30",
	model.FieldEndTime:        "Format: HH:MM, e.g. 10:30",
	model.FieldConferenceType: "Pick a room below or type its name",
	model.FieldPersonName:     "Who is booking the room?",
	model.FieldCompanyName:    "Company or organization name",
	model.FieldAffiliation:    "Pick a department below or type it",
	model.FieldEmail:          "Contact email",
}

// stepPrompt формирует вопрос для шага диалога
func stepPrompt(step state.Step, idx int) string {
	label := fieldLabel(step.Field)
	return fmt.Sprintf("Step %d of %d: %s\n\n%s\n\nUse /cancel to abort",
		idx+1, len(state.BookingSteps), label, stepHints[step.Field])
}

// stepKeyboard возвращает клавиатуру с вариантами для шага, если они есть
func stepKeyboard(step state.Step, options model.FormOptions) models.ReplyMarkup {
	var choices []string
	switch step.Field {
	case model.FieldConferenceType:
		choices = options.ConferenceTypes
	case model.FieldAffiliation:
		choices = options.Affiliations
	}

	if len(choices) == 0 {
		return &models.ReplyKeyboardRemove{RemoveKeyboard: true}
	}

	rows := make([][]models.KeyboardButton, 0, len(choices))
	for _, choice := range choices {
		rows = append(rows, []models.KeyboardButton{{Text: choice}})
	}
	return &models.ReplyKeyboardMarkup{
		Keyboard:        rows,
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
	}
}

// validateStepInput проверяет ответ на шаг диалога.
// Возвращает нормализованное значение или текст ошибки для пользователя.
func validateStepInput(field, input string) (string, string) {
	value := strings.TrimSpace(input)
	if value == "" {
		return "", fmt.Sprintf("❌ %s is required. Please try again:", fieldLabel(field))
	}

	switch field {
	case model.FieldBookingDate:
		normalized, err := service.NormalizeDate(value)
		if err != nil {
			return "", "❌ Invalid date. Use YYYY-MM-DD, e.g. 2025-03-10:"
		}
		return normalized, ""
	case model.FieldStartTime, model.FieldEndTime:
		normalized, err := service.NormalizeTime(value)
		if err != nil {
			return "", "❌ Invalid time. Use HH:MM, e.g. 09:30:"
		}
		return normalized, ""
	}
	return value, ""
}

func fieldLabel(field string) string {
	for _, f := range model.Fields {
		if f.Name == field {
			return f.Label
		}
	}
	return field
}

// formatCandidate показывает заявку перед отправкой
func formatCandidate(c model.Candidate) string {
	var sb strings.Builder
	for i, v := range c.Values() {
		fmt.Fprintf(&sb, "%s: %s\n", model.Fields[i].Label, v)
	}
	return sb.String()
}

// splitMessage режет длинный текст по строкам на части не длиннее limit символов
func splitMessage(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var parts []string
	var current strings.Builder
	currentLen := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		lineLen := utf8.RuneCountInString(line)
		if currentLen > 0 && currentLen+lineLen > limit {
			parts = append(parts, current.String())
			current.Reset()
			currentLen = 0
		}
		for lineLen > limit {
			runes := []rune(line)
			parts = append(parts, string(runes[:limit]))
			line = string(runes[limit:])
			lineLen -= limit
		}
		current.WriteString(line)
		currentLen += lineLen
	}
	if currentLen > 0 {
		parts = append(parts, current.String())
	}
	return parts
}
