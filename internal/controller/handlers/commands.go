package handlers

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/state"
	"github.com/Freeeeeet/psy_practice_bot/internal/repository"
	"github.com/Freeeeeet/psy_practice_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const helpText = "❓ Справка\n\n" +
	"📅 Неделя показывает приёмы с 08:00 до 19:00, цвет зависит от кода пациента.\n" +
	"Пересекающиеся приёмы рисуются поверх друг друга.\n\n" +
	"➕ Новый приём: пациент, дата ДД.ММ.ГГГГ, время ЧЧ:ММ, длительность 15-120 минут.\n" +
	"В шагах с подсказкой «.» берёт значение по умолчанию.\n\n" +
	"🎙 Голосовое сообщение превращается в транскрипцию, по ней строятся\n" +
	"карта отношений и биографическая справка.\n\n" +
	"/cancel прерывает диалог и все генерации."

func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID, userID := sender(update.Message)
	h.StateManager.ClearState(userID)

	h.Logger.Info("Start command", zap.Int64("telegram_id", userID))

	h.SendMessage(ctx, b, chatID, "👋 Добро пожаловать в кабинет!", nil)
	h.SendMainMenu(ctx, b, chatID)
}

func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.SendMessage(ctx, b, update.Message.Chat.ID, helpText, keyboard.Main())
}

// HandleWeek /week [ДД.ММ.ГГГГ]
func (h *Handlers) HandleWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	anchor := h.Appointments.Now()
	if arg := commandArg(update.Message.Text); arg != "" {
		day, err := service.ParseDate(arg, h.Appointments.Location())
		if err != nil {
			h.SendError(ctx, b, chatID, err)
			return
		}
		anchor = day
	}
	h.SendWeek(ctx, b, chatID, anchor)
}

// HandleAppointments /appointments [подстрока кода]
func (h *Handlers) HandleAppointments(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.SendAppointments(ctx, b, update.Message.Chat.ID, commandArg(update.Message.Text))
}

// HandleDay /day [ДД.ММ.ГГГГ], по умолчанию сегодня
func (h *Handlers) HandleDay(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	day := h.Appointments.Now()
	if arg := commandArg(update.Message.Text); arg != "" {
		parsed, err := service.ParseDate(arg, h.Appointments.Location())
		if err != nil {
			h.SendError(ctx, b, chatID, err)
			return
		}
		day = parsed
	}
	h.SendDay(ctx, b, chatID, day)
}

func (h *Handlers) HandleNewAppointment(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID, userID := sender(update.Message)
	h.StartAppointmentDialog(ctx, b, chatID, userID)
}

// HandlePatients /patients [поиск]
func (h *Handlers) HandlePatients(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.SendPatients(ctx, b, update.Message.Chat.ID, commandArg(update.Message.Text), repository.SortByCode, true)
}

func (h *Handlers) HandleNewPatient(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID, userID := sender(update.Message)
	h.StartPatientDialog(ctx, b, chatID, userID)
}

// HandleExport /export [appointments|patients|transcription]
func (h *Handlers) HandleExport(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID, userID := sender(update.Message)

	kind := commandArg(update.Message.Text)
	if kind == "" {
		kind = keyboard.ExportAppointments
	}
	if err := h.Export(ctx, b, chatID, userID, kind); err != nil {
		h.SendError(ctx, b, chatID, err)
	}
}

func (h *Handlers) HandleTranscript(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID, userID := sender(update.Message)
	h.StartTranscriptionInput(ctx, b, chatID, userID)
}

func (h *Handlers) HandleAnalysis(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID, userID := sender(update.Message)
	h.SendAnalysis(ctx, b, chatID, userID)
}

// HandleCancel прерывает диалог и генерации пользователя
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID, userID := sender(update.Message)

	hadDialog := h.StateManager.GetState(userID) != state.StateNone
	h.StateManager.ClearState(userID)
	cancelled := h.Analysis.Cancel(userID)

	switch {
	case cancelled > 0:
		h.SendMessage(ctx, b, chatID, fmt.Sprintf("🚫 Отменено генераций: %d", cancelled), keyboard.Main())
	case hadDialog:
		h.SendMessage(ctx, b, chatID, "🚫 Действие отменено", keyboard.Main())
	default:
		h.SendMessage(ctx, b, chatID, "Нечего отменять", keyboard.Main())
	}
}
