package common

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query всплывающим окном
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback сообщение с кнопкой; nil, если оно недоступно
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// DeleteMessage удаляет сообщение, ошибки игнорируются
func DeleteMessage(ctx context.Context, b *bot.Bot, msg *models.Message) {
	if msg == nil {
		return
	}
	b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	})
}

// CallbackChat чат, в который отвечать, и владелец состояния.
// Если исходное сообщение недоступно, отвечаем в личку.
func CallbackChat(callback *models.CallbackQuery) (chatID, userID int64) {
	userID = callback.From.ID
	if msg := GetMessageFromCallback(callback); msg != nil {
		return msg.Chat.ID, userID
	}
	return userID, userID
}
