package handlers

import (
	"context"

	"github.com/Freeeeeet/psy_practice_bot/internal/controller/state"
	"github.com/Freeeeeet/psy_practice_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// IsVoice совпадает с голосовыми сообщениями и аудиофайлами
func IsVoice(update *models.Update) bool {
	return update.Message != nil && (update.Message.Voice != nil || update.Message.Audio != nil)
}

// HandleVoice отправляет запись на транскрипцию; файл не скачивается
func (h *Handlers) HandleVoice(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !IsVoice(update) {
		return
	}
	chatID, userID := sender(update.Message)

	fileID, duration := "", 0
	if v := update.Message.Voice; v != nil {
		fileID, duration = v.FileID, v.Duration
	} else {
		fileID, duration = update.Message.Audio.FileID, update.Message.Audio.Duration
	}

	h.Logger.Info("Voice message received",
		zap.Int64("telegram_id", userID),
		zap.Int("duration", duration))

	err := h.Analysis.Transcribe(ctx, userID, fileID, h.NotifyGeneration(b, chatID))
	if err != nil {
		if service.IsBusy(err) {
			h.SendMessage(ctx, b, chatID, "⏳ Предыдущая запись ещё транскрибируется", nil)
			return
		}
		h.SendError(ctx, b, chatID, err)
		return
	}

	// Голос заменяет ручной ввод транскрипции
	if h.StateManager.GetState(userID) == state.StateTranscriptionInput {
		h.StateManager.ClearState(userID)
	}
	h.SendMessage(ctx, b, chatID, "⏳ Транскрибирую запись...", nil)
}
