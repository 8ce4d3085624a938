package patients

import (
	"context"

	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func HandleNewPatient(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	chatID, userID := common.CallbackChat(callback)
	common.AnswerCallback(ctx, b, callback.ID, "")
	h.StartPatientDialog(ctx, b, chatID, userID)
}

// HandleGender пол кнопкой: gender:M, gender:F, gender:Autre
func HandleGender(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	gender, ok := keyboard.Arg(callback.Data, keyboard.GenderPrefix)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	chatID, userID := common.CallbackChat(callback)
	if h.StateManager.GetState(userID) != state.StateNewPatientGender {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "⌛ Диалог устарел, начните заново")
		return
	}
	common.AnswerCallback(ctx, b, callback.ID, "")
	h.AcceptPatientGender(ctx, b, chatID, userID, gender)
}
