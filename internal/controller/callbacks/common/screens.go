package common

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/psy_practice_bot/internal/export"
	"github.com/Freeeeeet/psy_practice_bot/internal/generation"
	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"github.com/Freeeeeet/psy_practice_bot/internal/render"
	"github.com/Freeeeeet/psy_practice_bot/internal/repository"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Screens
// ========================
// Экраны, которые открываются и командой, и кнопкой

const MainMenuText = "📋 Главное меню\n\n" +
	"/week - Неделя\n" +
	"/appointments - Приёмы (можно с кодом: /appointments 426)\n" +
	"/day - Приёмы дня (/day 10.06.2024)\n" +
	"/newappointment - Новый приём\n" +
	"/patients - Пациенты (можно с поиском: /patients Dupont)\n" +
	"/newpatient - Новый пациент\n" +
	"/transcript - Ввести транскрипцию\n" +
	"/analysis - Анализ сеанса\n" +
	"/export - Экспорт приёмов\n" +
	"/cancel - Отменить действие\n" +
	"/help - Справка"

// SendMainMenu главное меню с кнопками
func (h *Handler) SendMainMenu(ctx context.Context, b *bot.Bot, chatID int64) {
	h.SendMessage(ctx, b, chatID, MainMenuText, keyboard.Main())
}

// SendWeek картинка недели, содержащей anchor, с навигацией
func (h *Handler) SendWeek(ctx context.Context, b *bot.Bot, chatID int64, anchor time.Time) {
	view, err := h.Appointments.Week(ctx, anchor)
	if err != nil {
		h.SendError(ctx, b, chatID, err)
		return
	}

	caption := formatting.FormatWeekCaption(view.Grid, view.Counts)
	kb := keyboard.Week(view.Grid.Week, view.Counts, view.Today)

	started := time.Now()
	png, err := render.WeekImage(view.Grid, h.Appointments.Now())
	h.Metrics.ObserveRender(time.Since(started).Seconds())
	if err != nil {
		// Без картинки показываем неделю списком
		h.Logger.Error("Failed to render week image", zap.Error(err))
		list := make([]string, 0, len(view.Grid.Placements))
		now := h.Appointments.Now()
		for _, p := range view.Grid.Placements {
			list = append(list, formatting.FormatAppointmentLine(p.Appointment, now))
		}
		h.SendMessage(ctx, b, chatID, caption+"\n\n"+strings.Join(list, "\n"), kb)
		return
	}

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:      chatID,
		Photo:       &models.InputFileUpload{Filename: "week.png", Data: bytes.NewReader(png)},
		Caption:     caption,
		ReplyMarkup: kb,
	})
	if err != nil {
		h.Logger.Error("Failed to send week image", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// Screen текст сообщения вместе с клавиатурой
type Screen struct {
	Text     string
	Keyboard *models.InlineKeyboardMarkup
}

// SendScreen отправляет экран новым сообщением
func (h *Handler) SendScreen(ctx context.Context, b *bot.Bot, chatID int64, s Screen) {
	h.SendMessage(ctx, b, chatID, s.Text, s.Keyboard)
}

// EditScreen заменяет сообщение кнопки экраном; недоступное сообщение заменяется новым
func (h *Handler) EditScreen(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, s Screen) {
	msg := GetMessageFromCallback(callback)
	if msg == nil {
		chatID, _ := CallbackChat(callback)
		h.SendScreen(ctx, b, chatID, s)
		return
	}
	params := &bot.EditMessageTextParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text:      s.Text,
	}
	if s.Keyboard != nil {
		params.ReplyMarkup = s.Keyboard
	}
	if _, err := b.EditMessageText(ctx, params); err != nil {
		// Тот же текст Telegram считает ошибкой "message is not modified"
		h.Logger.Debug("Screen not edited", zap.Int("message_id", msg.ID), zap.Error(err))
	}
}

// appointmentPage страница списка приёмов с кнопками закрытия
func (h *Handler) appointmentPage(title string, list []*model.Appointment, pagePrefix string, page int) Screen {
	items, page, pages := keyboard.Paginate(list, page)
	text := formatting.FormatAppointmentList(title, items, len(list), h.Appointments.Now())
	return Screen{
		Text:     formatting.Truncate(text, formatting.MessageLimit),
		Keyboard: keyboard.Close(items, h.Appointments.Location(), pagePrefix, page, pages),
	}
}

// AppointmentsScreen все приёмы с поиском по коду
func (h *Handler) AppointmentsScreen(ctx context.Context, term string, page int) (Screen, error) {
	list, err := h.Appointments.Search(ctx, term)
	if err != nil {
		return Screen{}, err
	}

	title := "📋 Все приёмы"
	if term != "" {
		title = fmt.Sprintf("🔍 Приёмы с кодом «%s»", term)
	}
	return h.appointmentPage(title, list, keyboard.AppointmentsPageData(term), page), nil
}

// DayScreen приёмы одного дня
func (h *Handler) DayScreen(ctx context.Context, day time.Time, page int) (Screen, error) {
	list, err := h.Appointments.Day(ctx, day)
	if err != nil {
		return Screen{}, err
	}

	local := day.In(h.Appointments.Location())
	title := fmt.Sprintf("📅 %s, %s", formatting.GetWeekdayName(local.Weekday()), formatting.FormatDate(local))
	return h.appointmentPage(title, list, keyboard.DayPageData(local.Format(keyboard.DateLayout)), page), nil
}

// PatientAppointmentsScreen приёмы одного пациента
func (h *Handler) PatientAppointmentsScreen(ctx context.Context, patientID string, page int) (Screen, error) {
	p, err := h.Patients.Get(ctx, patientID)
	if err != nil {
		return Screen{}, err
	}
	list, err := h.Appointments.ByPatient(ctx, patientID)
	if err != nil {
		return Screen{}, err
	}

	title := fmt.Sprintf("📅 Приёмы %s (%s)", p.FullName(), p.Code)
	return h.appointmentPage(title, list, keyboard.PatientAppointmentsPageData(p.ID), page), nil
}

// PatientsScreen список пациентов с поиском и сортировкой
func (h *Handler) PatientsScreen(ctx context.Context, term string, field repository.PatientSortField, ascending bool, page int) (Screen, error) {
	list, err := h.Patients.List(ctx, term, field, ascending)
	if err != nil {
		return Screen{}, err
	}

	items, page, pages := keyboard.Paginate(list, page)
	return Screen{
		Text:     formatting.FormatPatientsHeader(len(list), term),
		Keyboard: keyboard.PatientList(items, keyboard.PatientPrefix, keyboard.PatientsPageData(string(field), ascending, term), page, pages),
	}, nil
}

// PatientPickerScreen выбор пациента для нового приёма; ok=false, если выбирать не из кого
func (h *Handler) PatientPickerScreen(ctx context.Context, page int) (Screen, bool, error) {
	list, err := h.Patients.List(ctx, "", repository.SortByCode, true)
	if err != nil {
		return Screen{}, false, err
	}
	if len(list) == 0 {
		return Screen{Text: "👥 Пациентов пока нет.\n\nСначала добавьте пациента: /newpatient"}, false, nil
	}

	items, page, pages := keyboard.Paginate(list, page)
	return Screen{
		Text:     "➕ Новый приём\n\nШаг 1/4. Выберите пациента:",
		Keyboard: keyboard.PatientList(items, keyboard.PickPatientPrefix, keyboard.PickPatientPagePrefix, page, pages),
	}, true, nil
}

// SendAppointments первая страница списка приёмов
func (h *Handler) SendAppointments(ctx context.Context, b *bot.Bot, chatID int64, term string) {
	screen, err := h.AppointmentsScreen(ctx, term, 0)
	if err != nil {
		h.SendError(ctx, b, chatID, err)
		return
	}
	h.SendScreen(ctx, b, chatID, screen)
}

func (h *Handler) SendDay(ctx context.Context, b *bot.Bot, chatID int64, day time.Time) {
	screen, err := h.DayScreen(ctx, day, 0)
	if err != nil {
		h.SendError(ctx, b, chatID, err)
		return
	}
	h.SendScreen(ctx, b, chatID, screen)
}

func (h *Handler) SendPatientAppointments(ctx context.Context, b *bot.Bot, chatID int64, patientID string) {
	screen, err := h.PatientAppointmentsScreen(ctx, patientID, 0)
	if err != nil {
		h.SendError(ctx, b, chatID, err)
		return
	}
	h.SendScreen(ctx, b, chatID, screen)
}

// SendPatients первая страница списка пациентов
func (h *Handler) SendPatients(ctx context.Context, b *bot.Bot, chatID int64, term string, field repository.PatientSortField, ascending bool) {
	screen, err := h.PatientsScreen(ctx, term, field, ascending, 0)
	if err != nil {
		h.SendError(ctx, b, chatID, err)
		return
	}
	h.SendScreen(ctx, b, chatID, screen)
}

// SendPatientCard карточка пациента
func (h *Handler) SendPatientCard(ctx context.Context, b *bot.Bot, chatID int64, patientID string) {
	p, err := h.Patients.Get(ctx, patientID)
	if err != nil {
		h.SendError(ctx, b, chatID, err)
		return
	}
	list, err := h.Appointments.ByPatient(ctx, patientID)
	if err != nil {
		h.SendError(ctx, b, chatID, err)
		return
	}
	h.SendMessage(ctx, b, chatID, formatting.FormatPatientCard(p, len(list)), keyboard.PatientCard(p))
}

// SendPatientPicker выбор пациента для нового приёма
func (h *Handler) SendPatientPicker(ctx context.Context, b *bot.Bot, chatID int64) bool {
	screen, ok, err := h.PatientPickerScreen(ctx, 0)
	if err != nil {
		h.SendError(ctx, b, chatID, err)
		return false
	}
	h.SendScreen(ctx, b, chatID, screen)
	return ok
}

// SendAnalysis экран анализа: выбранный пациент и текущая транскрипция
func (h *Handler) SendAnalysis(ctx context.Context, b *bot.Bot, chatID, owner int64) {
	patientID, code, err := h.Analysis.BoundPatient(ctx, owner)
	if err != nil {
		h.SendError(ctx, b, chatID, err)
		return
	}

	text, err := h.Analysis.Transcription(ctx, owner)
	if err != nil && !IsUserError(err) {
		h.SendError(ctx, b, chatID, err)
		return
	}

	busy := h.Analysis.Busy(owner, generation.KindRelationshipMap) ||
		h.Analysis.Busy(owner, generation.KindBackgroundSummary) ||
		h.Analysis.Busy(owner, generation.KindTranscription)

	h.SendMessage(ctx, b, chatID,
		formatting.FormatAnalysisScreen(code, text),
		keyboard.AnalysisMenu(patientID, text != "", busy))
}

// SendStories сказки пациента
func (h *Handler) SendStories(ctx context.Context, b *bot.Bot, chatID, owner int64, patientID string) {
	p, err := h.Patients.Get(ctx, patientID)
	if err != nil {
		h.SendError(ctx, b, chatID, err)
		return
	}
	stories := h.Analysis.Stories(patientID)
	h.SendMessage(ctx, b, chatID,
		formatting.FormatStoriesHeader(p, len(stories)),
		keyboard.Stories(patientID, stories, h.Analysis.Busy(owner, generation.KindStory)))
}

func (h *Handler) SendLeads(ctx context.Context, b *bot.Bot, chatID, owner int64, patientID string) {
	p, err := h.Patients.Get(ctx, patientID)
	if err != nil {
		h.SendError(ctx, b, chatID, err)
		return
	}
	h.SendMessage(ctx, b, chatID,
		formatting.FormatLeads(p, h.Analysis.Leads(patientID)),
		keyboard.Leads(patientID, h.Analysis.Busy(owner, generation.KindTherapyLeads)))
}

// SendHistories справки пациента
func (h *Handler) SendHistories(ctx context.Context, b *bot.Bot, chatID, owner int64, patientID string) {
	p, err := h.Patients.Get(ctx, patientID)
	if err != nil {
		h.SendError(ctx, b, chatID, err)
		return
	}
	list := h.Analysis.Histories(patientID)
	h.SendMessage(ctx, b, chatID,
		formatting.FormatHistoriesHeader(p, len(list)),
		keyboard.Histories(patientID, list, h.Analysis.Busy(owner, generation.KindPatientHistory)))
}

// SendDocument отправляет текстовый файл
func (h *Handler) SendDocument(ctx context.Context, b *bot.Bot, chatID int64, doc export.Document, caption string) {
	_, err := b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:   chatID,
		Document: &models.InputFileUpload{Filename: doc.Filename, Data: bytes.NewReader(doc.Content)},
		Caption:  caption,
	})
	if err != nil {
		h.Logger.Error("Failed to send document",
			zap.Int64("chat_id", chatID),
			zap.String("filename", doc.Filename),
			zap.Error(err))
	}
}

// Export отправляет выгрузку по её имени из callback data
func (h *Handler) Export(ctx context.Context, b *bot.Bot, chatID, owner int64, kind string) error {
	switch kind {
	case keyboard.ExportAppointments:
		list, err := h.Appointments.Search(ctx, "")
		if err != nil {
			return err
		}
		h.SendDocument(ctx, b, chatID, export.Appointments(list, h.Appointments.Location()),
			fmt.Sprintf("📄 %d %s", len(list), formatting.PluralizeAppointments(len(list))))
	case keyboard.ExportPatients:
		list, err := h.Patients.List(ctx, "", repository.SortByCode, true)
		if err != nil {
			return err
		}
		h.SendDocument(ctx, b, chatID, export.Patients(list),
			fmt.Sprintf("📄 %d %s", len(list), formatting.PluralizePatients(len(list))))
	case keyboard.ExportTranscription:
		text, err := h.Analysis.Transcription(ctx, owner)
		if err != nil {
			return err
		}
		h.SendDocument(ctx, b, chatID, export.Transcription(text), "📄 Транскрипция")
	default:
		return ErrInvalidFormat
	}
	return nil
}
