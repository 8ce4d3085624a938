package common

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/state"
	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"github.com/Freeeeeet/psy_practice_bot/internal/service"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

// UseDefault ответ, принимающий значение по умолчанию в шаге диалога
const UseDefault = "."

// ========================
// Новый приём
// ========================

// StartAppointmentDialog начинает диалог нового приёма с выбора пациента
func (h *Handler) StartAppointmentDialog(ctx context.Context, b *bot.Bot, chatID, userID int64) {
	h.StateManager.Start(userID, state.StateNewAppointmentPatient)
	if !h.SendPatientPicker(ctx, b, chatID) {
		h.StateManager.ClearState(userID)
	}
}

// AcceptAppointmentPatient пациент выбран кнопкой
func (h *Handler) AcceptAppointmentPatient(ctx context.Context, b *bot.Bot, chatID, userID int64, patientID string) {
	if h.StateManager.GetState(userID) != state.StateNewAppointmentPatient {
		h.SendError(ctx, b, chatID, ErrDialogExpired)
		return
	}
	p, err := h.Patients.Get(ctx, patientID)
	if err != nil {
		h.SendError(ctx, b, chatID, err)
		return
	}

	h.StateManager.Advance(userID, state.KeyPatientID, p.ID, state.StateNewAppointmentDate)
	def := h.Appointments.DefaultStart()
	h.SendMessage(ctx, b, chatID, fmt.Sprintf(
		"👤 Пациент: %s\n\nШаг 2/5. Дата приёма в формате ДД.ММ.ГГГГ\n(«%s» - %s)",
		p.Code, UseDefault, formatting.FormatDate(def)), keyboard.CancelOnly())
}

func (h *Handler) AcceptAppointmentDate(ctx context.Context, b *bot.Bot, chatID, userID int64, text string) {
	text = strings.TrimSpace(text)
	if text == UseDefault {
		text = formatting.FormatDate(h.Appointments.DefaultStart())
	}
	if _, err := service.ParseDate(text, h.Appointments.Location()); err != nil {
		h.SendError(ctx, b, chatID, err)
		return
	}

	h.StateManager.Advance(userID, state.KeyDate, text, state.StateNewAppointmentTime)
	h.SendMessage(ctx, b, chatID, fmt.Sprintf(
		"Шаг 3/5. Время начала ЧЧ:ММ\n(«%s» - %s)",
		UseDefault, formatting.FormatTime(h.Appointments.DefaultStart())), keyboard.CancelOnly())
}

func (h *Handler) AcceptAppointmentTime(ctx context.Context, b *bot.Bot, chatID, userID int64, text string) {
	text = strings.TrimSpace(text)
	if text == UseDefault {
		text = formatting.FormatTime(h.Appointments.DefaultStart())
	}
	if _, _, err := service.ParseTime(text); err != nil {
		h.SendError(ctx, b, chatID, err)
		return
	}

	h.StateManager.Advance(userID, state.KeyTime, text, state.StateNewAppointmentDuration)
	h.SendMessage(ctx, b, chatID, fmt.Sprintf(
		"Шаг 4/5. Длительность в минутах (%d-%d, «%s» - %d)",
		model.AppointmentMinDuration, model.AppointmentMaxDuration, UseDefault, model.AppointmentDefaultDuration), keyboard.Durations())
}

func (h *Handler) AcceptAppointmentDuration(ctx context.Context, b *bot.Bot, chatID, userID int64, text string) {
	text = strings.TrimSpace(text)
	if text == UseDefault {
		text = strconv.Itoa(model.AppointmentDefaultDuration)
	}
	minutes, err := service.ParseDuration(text)
	if err != nil {
		h.SendError(ctx, b, chatID, err)
		return
	}

	h.StateManager.Advance(userID, state.KeyDuration, strconv.Itoa(minutes), state.StateNewAppointmentNotes)
	h.SendMessage(ctx, b, chatID, "Шаг 5/5. Заметки к приёму или «Пропустить»", keyboard.SkipOrCancel())
}

// FinishAppointment создаёт приём из собранных данных
func (h *Handler) FinishAppointment(ctx context.Context, b *bot.Bot, chatID, userID int64, notes string) {
	data := h.StateManager.GetAllData(userID)
	duration, err := strconv.Atoi(data[state.KeyDuration])
	if err != nil {
		h.StateManager.ClearState(userID)
		h.SendError(ctx, b, chatID, ErrDialogExpired)
		return
	}

	apt, err := h.Appointments.Create(ctx, service.AppointmentForm{
		PatientID: data[state.KeyPatientID],
		Date:      data[state.KeyDate],
		Time:      data[state.KeyTime],
		Duration:  duration,
		Notes:     notes,
	})
	if err != nil {
		if _, ok := service.AsValidation(err); !ok {
			h.StateManager.ClearState(userID)
		}
		h.SendError(ctx, b, chatID, err)
		return
	}

	h.StateManager.ClearState(userID)
	h.Logger.Info("Appointment created via dialog",
		zap.Int64("telegram_id", userID),
		zap.String("appointment_id", apt.ID))

	h.SendMessage(ctx, b, chatID, formatting.FormatAppointmentCreated(apt, h.Appointments.Location()), nil)
	h.SendWeek(ctx, b, chatID, apt.Date)
}

// ========================
// Новый пациент
// ========================

func (h *Handler) StartPatientDialog(ctx context.Context, b *bot.Bot, chatID, userID int64) {
	h.StateManager.Start(userID, state.StateNewPatientFirstName)
	h.SendMessage(ctx, b, chatID, "➕ Новый пациент\n\nШаг 1/5. Имя:", keyboard.CancelOnly())
}

func (h *Handler) AcceptPatientFirstName(ctx context.Context, b *bot.Bot, chatID, userID int64, text string) {
	name := strings.TrimSpace(text)
	if name == "" {
		h.SendMessage(ctx, b, chatID, "⚠️ Имя обязательно", nil)
		return
	}
	h.StateManager.Advance(userID, state.KeyFirstName, name, state.StateNewPatientLastName)
	h.SendMessage(ctx, b, chatID, "Шаг 2/5. Фамилия:", keyboard.CancelOnly())
}

func (h *Handler) AcceptPatientLastName(ctx context.Context, b *bot.Bot, chatID, userID int64, text string) {
	name := strings.TrimSpace(text)
	if name == "" {
		h.SendMessage(ctx, b, chatID, "⚠️ Фамилия обязательна", nil)
		return
	}
	h.StateManager.Advance(userID, state.KeyLastName, name, state.StateNewPatientAge)
	h.SendMessage(ctx, b, chatID, "Шаг 3/5. Возраст:", keyboard.CancelOnly())
}

func (h *Handler) AcceptPatientAge(ctx context.Context, b *bot.Bot, chatID, userID int64, text string) {
	age, err := service.ParseAge(text)
	if err != nil {
		h.SendError(ctx, b, chatID, err)
		return
	}
	h.StateManager.Advance(userID, state.KeyAge, strconv.Itoa(age), state.StateNewPatientGender)
	h.SendMessage(ctx, b, chatID, "Шаг 4/5. Пол:", keyboard.Genders())
}

func (h *Handler) AcceptPatientGender(ctx context.Context, b *bot.Bot, chatID, userID int64, text string) {
	gender, err := service.ParseGender(text)
	if err != nil {
		h.SendError(ctx, b, chatID, err)
		return
	}
	h.StateManager.Advance(userID, state.KeyGender, string(gender), state.StateNewPatientNotes)
	h.SendMessage(ctx, b, chatID, "Шаг 5/5. Заметки или «Пропустить»", keyboard.SkipOrCancel())
}

// FinishPatient создаёт карточку пациента
func (h *Handler) FinishPatient(ctx context.Context, b *bot.Bot, chatID, userID int64, notes string) {
	data := h.StateManager.GetAllData(userID)
	age, err := strconv.Atoi(data[state.KeyAge])
	if err != nil {
		h.StateManager.ClearState(userID)
		h.SendError(ctx, b, chatID, ErrDialogExpired)
		return
	}

	p, err := h.Patients.Create(ctx, model.PatientCreate{
		FirstName: data[state.KeyFirstName],
		LastName:  data[state.KeyLastName],
		Age:       age,
		Gender:    model.Gender(data[state.KeyGender]),
		Notes:     strings.TrimSpace(notes),
	})
	h.StateManager.ClearState(userID)
	if err != nil {
		h.SendError(ctx, b, chatID, err)
		return
	}

	h.Logger.Info("Patient created via dialog",
		zap.Int64("telegram_id", userID),
		zap.String("patient_code", p.Code))

	h.SendMessage(ctx, b, chatID, "✅ Пациент добавлен", nil)
	h.SendPatientCard(ctx, b, chatID, p.ID)
}

// SkipNotes завершает тот диалог, который ждёт заметки
func (h *Handler) SkipNotes(ctx context.Context, b *bot.Bot, chatID, userID int64) {
	switch h.StateManager.GetState(userID) {
	case state.StateNewAppointmentNotes:
		h.FinishAppointment(ctx, b, chatID, userID, "")
	case state.StateNewPatientNotes:
		h.FinishPatient(ctx, b, chatID, userID, "")
	default:
		h.SendError(ctx, b, chatID, ErrDialogExpired)
	}
}

// ========================
// Однострочные вводы
// ========================

func (h *Handler) StartPatientNotes(ctx context.Context, b *bot.Bot, chatID, userID int64, patientID string) {
	p, err := h.Patients.Get(ctx, patientID)
	if err != nil {
		h.SendError(ctx, b, chatID, err)
		return
	}
	h.StateManager.Start(userID, state.StatePatientNotes)
	h.StateManager.SetData(userID, state.KeyPatientID, p.ID)

	current := p.Notes
	if current == "" {
		current = "нет"
	}
	h.SendMessage(ctx, b, chatID, fmt.Sprintf("📝 Заметки %s (%s)\nСейчас: %s\n\nОтправьте новый текст:", p.FullName(), p.Code, current), keyboard.CancelOnly())
}

func (h *Handler) AcceptPatientNotes(ctx context.Context, b *bot.Bot, chatID, userID int64, text string) {
	patientID, ok := h.StateManager.GetData(userID, state.KeyPatientID)
	h.StateManager.ClearState(userID)
	if !ok {
		h.SendError(ctx, b, chatID, ErrDialogExpired)
		return
	}
	if _, err := h.Patients.UpdateNotes(ctx, patientID, text); err != nil {
		h.SendError(ctx, b, chatID, err)
		return
	}
	h.SendPatientCard(ctx, b, chatID, patientID)
}

func (h *Handler) StartTranscriptionInput(ctx context.Context, b *bot.Bot, chatID, userID int64) {
	h.StateManager.Start(userID, state.StateTranscriptionInput)
	h.SendMessage(ctx, b, chatID, "✏️ Вставьте текст транскрипции одним сообщением\nили отправьте голосовое сообщение.", keyboard.CancelOnly())
}

func (h *Handler) AcceptTranscription(ctx context.Context, b *bot.Bot, chatID, userID int64, text string) {
	if err := h.Analysis.SaveTranscription(ctx, userID, text); err != nil {
		h.SendError(ctx, b, chatID, err)
		return
	}
	h.StateManager.ClearState(userID)
	h.SendAnalysis(ctx, b, chatID, userID)
}

func (h *Handler) StartStoryTitle(ctx context.Context, b *bot.Bot, chatID, userID int64, patientID string) {
	p, err := h.Patients.Get(ctx, patientID)
	if err != nil {
		h.SendError(ctx, b, chatID, err)
		return
	}
	h.StateManager.Start(userID, state.StateStoryTitle)
	h.StateManager.SetData(userID, state.KeyPatientID, p.ID)
	h.SendMessage(ctx, b, chatID, fmt.Sprintf("📖 Новая сказка для %s\n\nНазвание сказки:", p.Code), keyboard.CancelOnly())
}

func (h *Handler) AcceptStoryTitle(ctx context.Context, b *bot.Bot, chatID, userID int64, text string) {
	patientID, ok := h.StateManager.GetData(userID, state.KeyPatientID)
	if !ok {
		h.StateManager.ClearState(userID)
		h.SendError(ctx, b, chatID, ErrDialogExpired)
		return
	}

	err := h.Analysis.GenerateStory(ctx, userID, patientID, text, h.NotifyGeneration(b, chatID))
	if _, invalid := service.AsValidation(err); invalid {
		h.SendError(ctx, b, chatID, err)
		return
	}
	h.StateManager.ClearState(userID)
	if err != nil {
		h.SendError(ctx, b, chatID, err)
		return
	}
	h.SendMessage(ctx, b, chatID, "⏳ Сказка создаётся, пришлю её, когда будет готова", nil)
}

// StartPatientSearch ждёт строку поиска пациента
func (h *Handler) StartPatientSearch(ctx context.Context, b *bot.Bot, chatID, userID int64) {
	h.StateManager.Start(userID, state.StatePatientSearch)
	h.SendMessage(ctx, b, chatID, "🔍 Введите код, имя или фамилию:", keyboard.CancelOnly())
}
