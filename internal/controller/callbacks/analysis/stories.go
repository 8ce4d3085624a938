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
// Сказки и генограммы
// ========================

func HandleStories(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	patientID, ok := keyboard.Arg(callback.Data, keyboard.StoriesPrefix)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}
	chatID, userID := common.CallbackChat(callback)
	common.AnswerCallback(ctx, b, callback.ID, "")
	h.SendStories(ctx, b, chatID, userID, patientID)
}

// HandleNewStory ждёт название новой сказки
func HandleNewStory(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	patientID, ok := keyboard.Arg(callback.Data, keyboard.NewStoryPrefix)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}
	chatID, userID := common.CallbackChat(callback)
	common.AnswerCallback(ctx, b, callback.ID, "")
	h.StartStoryTitle(ctx, b, chatID, userID, patientID)
}

// HandleExportStory отправляет сказку файлом
func HandleExportStory(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	storyID, _ := keyboard.Arg(callback.Data, keyboard.ExportStoryPrefix)
	story, ok := h.Analysis.FindStory(storyID)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Сказка не найдена")
		return
	}

	chatID, _ := common.CallbackChat(callback)
	common.AnswerCallback(ctx, b, callback.ID, "")
	h.SendDocument(ctx, b, chatID, export.Story(story), "📄 "+story.Title)
}

// HandleGenogram запрашивает новую версию и показывает уже готовые
func HandleGenogram(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	patientID, ok := keyboard.Arg(callback.Data, keyboard.GenogramPrefix)
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
	err = h.Analysis.GenerateGenogram(ctx, userID, p.ID, h.NotifyGeneration(b, chatID))
	if !started(ctx, b, callback, err) {
		return
	}
	text := formatting.FormatGenograms(p, h.Analysis.Genograms(p.ID)) + "\n\n⏳ Новая версия создаётся..."
	h.SendMessage(ctx, b, chatID, text, keyboard.NewBuilder().Row(keyboard.Button("👤 Карточка", keyboard.PatientPrefix+p.ID)).Build())
}
