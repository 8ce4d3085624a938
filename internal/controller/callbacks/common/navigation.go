package common

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Common Navigation Handlers
// ========================

// HandleMainMenu возвращает к главному меню и сбрасывает диалог
func HandleMainMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	chatID, userID := CallbackChat(callback)
	h.StateManager.ClearState(userID)

	AnswerCallback(ctx, b, callback.ID, "")
	DeleteMessage(ctx, b, GetMessageFromCallback(callback))
	h.SendMainMenu(ctx, b, chatID)
}

// HandleSkipNotes кнопка «Пропустить» в шаге заметок
func HandleSkipNotes(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	chatID, userID := CallbackChat(callback)
	AnswerCallback(ctx, b, callback.ID, "")
	h.SkipNotes(ctx, b, chatID, userID)
}

// HandleCancelDialog прерывает текущий диалог; генерации не трогает
func HandleCancelDialog(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	chatID, userID := CallbackChat(callback)
	h.StateManager.ClearState(userID)

	AnswerCallback(ctx, b, callback.ID, "🚫 Отменено")
	DeleteMessage(ctx, b, GetMessageFromCallback(callback))
	h.SendMainMenu(ctx, b, chatID)
}

// EditPage отвечает на кнопку страницы и заменяет сообщение новой страницей
func EditPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler, screen Screen, err error) {
	if err != nil {
		if !IsUserError(err) {
			h.Logger.Error("Failed to build page", zap.String("data", callback.Data), zap.Error(err))
		}
		AnswerCallbackAlert(ctx, b, callback.ID, ErrorMessage(err))
		return
	}
	AnswerCallback(ctx, b, callback.ID, "")
	h.EditScreen(ctx, b, callback, screen)
}
