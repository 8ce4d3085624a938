package analysis

import (
	"context"

	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/psy_practice_bot/internal/export"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ========================
// Направления и справки
// ========================

func HandleLeads(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	patientID, ok := keyboard.Arg(callback.Data, keyboard.LeadsPrefix)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}
	chatID, userID := common.CallbackChat(callback)
	common.AnswerCallback(ctx, b, callback.ID, "")
	h.SendLeads(ctx, b, chatID, userID, patientID)
}

// HandleNewLeads подбирает направления заново
func HandleNewLeads(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	patientID, ok := keyboard.Arg(callback.Data, keyboard.NewLeadsPrefix)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}
	p, err := h.Patients.Get(ctx, patientID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	chatID, userID := common.CallbackChat(callback)
	err = h.Analysis.GenerateLeads(ctx, userID, p.ID, h.NotifyGeneration(b, chatID))
	if !started(ctx, b, callback, err) {
		return
	}
	h.SendMessage(ctx, b, chatID, "⏳ Подбираю направления работы...", nil)
}

func HandleHistories(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	patientID, ok := keyboard.Arg(callback.Data, keyboard.HistoriesPrefix)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}
	chatID, userID := common.CallbackChat(callback)
	common.AnswerCallback(ctx, b, callback.ID, "")
	h.SendHistories(ctx, b, chatID, userID, patientID)
}

func HandleNewHistory(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	patientID, ok := keyboard.Arg(callback.Data, keyboard.NewHistoryPrefix)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}
	p, err := h.Patients.Get(ctx, patientID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	chatID, userID := common.CallbackChat(callback)
	err = h.Analysis.GenerateHistory(ctx, userID, p.ID, h.NotifyGeneration(b, chatID))
	if !started(ctx, b, callback, err) {
		return
	}
	h.SendMessage(ctx, b, chatID, "⏳ Составляю справку...", nil)
}

// HandleHistory показывает справку и отправляет её файлом
func HandleHistory(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	historyID, _ := keyboard.Arg(callback.Data, keyboard.HistoryPrefix)
	history, ok := h.Analysis.FindHistory(historyID)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Справка не найдена")
		return
	}

	chatID, _ := common.CallbackChat(callback)
	common.AnswerCallback(ctx, b, callback.ID, "")
	h.SendMessage(ctx, b, chatID, formatting.FormatHistory(history),
		keyboard.NewBuilder().Row(keyboard.Button("⬅️ К справкам", keyboard.HistoriesPrefix+history.PatientID)).Build())
	h.SendDocument(ctx, b, chatID, export.Background(&history.Summary), "📄 "+history.Title)
}
