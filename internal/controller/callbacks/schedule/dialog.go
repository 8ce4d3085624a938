package schedule

import (
	"context"
	"strconv"

	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ========================
// Диалог нового приёма
// ========================

func HandleNewAppointment(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	chatID, userID := common.CallbackChat(callback)
	common.AnswerCallback(ctx, b, callback.ID, "")
	h.StartAppointmentDialog(ctx, b, chatID, userID)
}

// HandlePickPatient выбор пациента на первом шаге
func HandlePickPatient(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	patientID, ok := keyboard.Arg(callback.Data, keyboard.PickPatientPrefix)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	chatID, userID := common.CallbackChat(callback)
	common.AnswerCallback(ctx, b, callback.ID, "")
	h.AcceptAppointmentPatient(ctx, b, chatID, userID, patientID)
}

// HandlePickPatientPage листает список выбора пациента
func HandlePickPatientPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	arg, _ := keyboard.Arg(callback.Data, keyboard.PickPatientPagePrefix)
	page, err := strconv.Atoi(arg)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	_, userID := common.CallbackChat(callback)
	if h.StateManager.GetState(userID) != state.StateNewAppointmentPatient {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "⌛ Диалог устарел, начните заново")
		return
	}

	screen, _, err := h.PatientPickerScreen(ctx, page)
	common.EditPage(ctx, b, callback, h, screen, err)
}

// HandleDuration длительность кнопкой; работает только на шаге длительности
func HandleDuration(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	minutes, ok := keyboard.Arg(callback.Data, keyboard.DurationPrefix)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	chatID, userID := common.CallbackChat(callback)
	if h.StateManager.GetState(userID) != state.StateNewAppointmentDuration {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "⌛ Диалог устарел, начните заново")
		return
	}
	common.AnswerCallback(ctx, b, callback.ID, "")
	h.AcceptAppointmentDuration(ctx, b, chatID, userID, minutes)
}
