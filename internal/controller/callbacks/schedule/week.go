package schedule

import (
	"context"
	"strings"

	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Неделя
// ========================

// HandleWeek листает неделю: week:today или week:<дата понедельника>.
// Старая картинка удаляется, новая отправляется на её место.
func HandleWeek(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	arg, ok := keyboard.Arg(callback.Data, keyboard.WeekPrefix)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	anchor := h.Appointments.Now()
	if arg != keyboard.WeekToday {
		day, err := keyboard.ParseDay(arg, h.Appointments.Location())
		if err != nil {
			h.Logger.Warn("Bad week callback", zap.String("data", callback.Data), zap.Error(err))
			common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
			return
		}
		anchor = day
	}

	chatID, _ := common.CallbackChat(callback)
	common.AnswerCallback(ctx, b, callback.ID, "")
	common.DeleteMessage(ctx, b, common.GetMessageFromCallback(callback))
	h.SendWeek(ctx, b, chatID, anchor)
}

// HandleDay список приёмов дня: day:<дата> из-под картинки недели
// новым сообщением, day:<дата>:<page> листает уже показанный список
func HandleDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	arg, _ := keyboard.Arg(callback.Data, keyboard.DayPrefix)
	date, page := keyboard.SplitPage(arg)
	day, err := keyboard.ParseDay(date, h.Appointments.Location())
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	if date != arg {
		screen, err := h.DayScreen(ctx, day, page)
		common.EditPage(ctx, b, callback, h, screen, err)
		return
	}

	chatID, _ := common.CallbackChat(callback)
	common.AnswerCallback(ctx, b, callback.ID, "")
	h.SendDay(ctx, b, chatID, day)
}

// HandleAppointments все приёмы по дате
func HandleAppointments(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	chatID, _ := common.CallbackChat(callback)
	common.AnswerCallback(ctx, b, callback.ID, "")
	h.SendAppointments(ctx, b, chatID, "")
}

// HandleAppointmentsPage листает общий список: appointments_page:<поиск>:<page>
func HandleAppointmentsPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	arg, _ := strings.CutPrefix(callback.Data, keyboard.AppointmentsPagePrefix)
	term, page := keyboard.SplitPage(arg)

	screen, err := h.AppointmentsScreen(ctx, term, page)
	common.EditPage(ctx, b, callback, h, screen, err)
}

// HandleClose закрывает приём и показывает обновлённый список его дня
func HandleClose(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	id, ok := keyboard.Arg(callback.Data, keyboard.ClosePrefix)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	closed, err := h.Appointments.Close(ctx, id)
	if err != nil {
		h.Logger.Error("Failed to close appointment", zap.String("appointment_id", id), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось закрыть приём")
		return
	}
	if !closed {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "Приём уже закрыт или удалён")
		return
	}

	common.AnswerCallback(ctx, b, callback.ID, "✔️ Приём закрыт")

	apt, err := h.Appointments.Get(ctx, id)
	if err != nil {
		return
	}
	chatID, _ := common.CallbackChat(callback)
	common.DeleteMessage(ctx, b, common.GetMessageFromCallback(callback))
	h.SendDay(ctx, b, chatID, apt.Date)
}
