package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// UpdateKind тип апдейта для метрик и логов
func UpdateKind(update *models.Update) string {
	switch {
	case update.CallbackQuery != nil:
		return "callback"
	case update.Message == nil:
		return "other"
	case update.Message.Voice != nil || update.Message.Audio != nil:
		return "voice"
	case len(update.Message.Text) > 0 && update.Message.Text[0] == '/':
		return "command"
	case update.Message.Text != "":
		return "text"
	default:
		return "other"
	}
}

// Observe считает апдейты и перехватывает паники обработчиков
func (h *Handlers) Observe(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		kind := UpdateKind(update)
		h.Metrics.ObserveUpdate(kind)

		defer func() {
			if r := recover(); r != nil {
				h.Logger.Error("Handler panic",
					zap.String("kind", kind),
					zap.Int64("update_id", update.ID),
					zap.Any("panic", r))
			}
		}()

		next(ctx, b, update)
	}
}
