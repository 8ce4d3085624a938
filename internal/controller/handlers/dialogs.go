package handlers

import (
	"context"
	"strings"

	"github.com/Freeeeeet/psy_practice_bot/internal/controller/state"
	"github.com/Freeeeeet/psy_practice_bot/internal/repository"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleTextMessage обрабатывает текст в зависимости от шага диалога
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Команды обрабатываются своими handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	chatID, userID := sender(update.Message)
	text := update.Message.Text
	currentState := h.StateManager.GetState(userID)

	h.Logger.Debug("HandleTextMessage called",
		zap.Int64("telegram_id", userID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateNone:
		h.SendMessage(ctx, b, chatID, "🤔 Не понимаю. Выберите действие в меню или /help", nil)

	case state.StateNewAppointmentPatient:
		h.SendMessage(ctx, b, chatID, "👆 Выберите пациента кнопкой выше или /cancel", nil)
	case state.StateNewAppointmentDate:
		h.AcceptAppointmentDate(ctx, b, chatID, userID, text)
	case state.StateNewAppointmentTime:
		h.AcceptAppointmentTime(ctx, b, chatID, userID, text)
	case state.StateNewAppointmentDuration:
		h.AcceptAppointmentDuration(ctx, b, chatID, userID, text)
	case state.StateNewAppointmentNotes:
		h.FinishAppointment(ctx, b, chatID, userID, text)

	case state.StateNewPatientFirstName:
		h.AcceptPatientFirstName(ctx, b, chatID, userID, text)
	case state.StateNewPatientLastName:
		h.AcceptPatientLastName(ctx, b, chatID, userID, text)
	case state.StateNewPatientAge:
		h.AcceptPatientAge(ctx, b, chatID, userID, text)
	case state.StateNewPatientGender:
		h.AcceptPatientGender(ctx, b, chatID, userID, text)
	case state.StateNewPatientNotes:
		h.FinishPatient(ctx, b, chatID, userID, text)

	case state.StatePatientSearch:
		h.StateManager.ClearState(userID)
		h.SendPatients(ctx, b, chatID, strings.TrimSpace(text), repository.SortByCode, true)
	case state.StatePatientNotes:
		h.AcceptPatientNotes(ctx, b, chatID, userID, text)

	case state.StateTranscriptionInput:
		h.AcceptTranscription(ctx, b, chatID, userID, text)
	case state.StateStoryTitle:
		h.AcceptStoryTitle(ctx, b, chatID, userID, text)

	default:
		h.Logger.Warn("Unknown state", zap.String("state", string(currentState)))
		h.StateManager.ClearState(userID)
	}
}
