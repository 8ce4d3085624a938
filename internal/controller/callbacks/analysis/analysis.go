package analysis

import (
	"context"

	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/psy_practice_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Анализ сеанса
// ========================

func HandleAnalysis(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	chatID, userID := common.CallbackChat(callback)
	common.AnswerCallback(ctx, b, callback.ID, "")
	h.SendAnalysis(ctx, b, chatID, userID)
}

// HandleBindPatient привязывает анализ к пациенту из карточки
func HandleBindPatient(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	patientID, ok := keyboard.Arg(callback.Data, keyboard.AnalysisPrefix)
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
	if err := h.Analysis.BindPatient(ctx, userID, p); err != nil {
		h.Logger.Error("Failed to bind patient", zap.String("patient_id", p.ID), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось выбрать пациента")
		return
	}
	common.AnswerCallback(ctx, b, callback.ID, "👤 "+p.Code)
	h.SendAnalysis(ctx, b, chatID, userID)
}

// HandleRun запускает карту отношений и биографическую справку
func HandleRun(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	chatID, userID := common.CallbackChat(callback)
	err := h.Analysis.Analyze(ctx, userID, h.NotifyGeneration(b, chatID))
	if !started(ctx, b, callback, err) {
		return
	}
	h.SendMessage(ctx, b, chatID, "⏳ Анализирую транскрипцию. Карта отношений и справка придут отдельными сообщениями.", nil)
}

func HandleSessionSummary(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	chatID, userID := common.CallbackChat(callback)
	err := h.Analysis.SessionSummary(ctx, userID, h.NotifyGeneration(b, chatID))
	if !started(ctx, b, callback, err) {
		return
	}
	h.SendMessage(ctx, b, chatID, "⏳ Готовлю резюме сеанса...", nil)
}

func HandleEditTranscription(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	chatID, userID := common.CallbackChat(callback)
	common.AnswerCallback(ctx, b, callback.ID, "")
	h.StartTranscriptionInput(ctx, b, chatID, userID)
}

func HandleClearTranscription(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	chatID, userID := common.CallbackChat(callback)
	if err := h.Analysis.ClearTranscription(ctx, userID); err != nil {
		h.Logger.Error("Failed to clear transcription", zap.Int64("telegram_id", userID), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось очистить")
		return
	}
	common.AnswerCallback(ctx, b, callback.ID, "🧹 Очищено")
	common.DeleteMessage(ctx, b, common.GetMessageFromCallback(callback))
	h.SendAnalysis(ctx, b, chatID, userID)
}

// HandleExport выгрузка файлом: export:<вид>
func HandleExport(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	kind, _ := keyboard.Arg(callback.Data, keyboard.ExportPrefix)
	chatID, userID := common.CallbackChat(callback)
	if err := h.Export(ctx, b, chatID, userID, kind); err != nil {
		if !common.IsUserError(err) {
			h.Logger.Error("Export failed", zap.String("kind", kind), zap.Error(err))
		}
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}
	common.AnswerCallback(ctx, b, callback.ID, "")
}

// started отвечает на callback по результату запуска генерации
func started(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, err error) bool {
	switch {
	case err == nil:
		common.AnswerCallback(ctx, b, callback.ID, "⏳ Запущено")
		return true
	case service.IsBusy(err):
		common.AnswerCallbackAlert(ctx, b, callback.ID, "⏳ Уже выполняется, дождитесь результата")
	default:
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
	}
	return false
}
