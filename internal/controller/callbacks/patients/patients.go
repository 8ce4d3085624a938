package patients

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/psy_practice_bot/internal/repository"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandlePatients список пациентов по коду
func HandlePatients(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	chatID, userID := common.CallbackChat(callback)
	h.StateManager.ClearState(userID)

	common.AnswerCallback(ctx, b, callback.ID, "")
	h.SendPatients(ctx, b, chatID, "", repository.SortByCode, true)
}

// HandleSort пересортировывает список на месте: sort:<поле>:<asc|desc>
func HandleSort(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	arg, _ := keyboard.Arg(callback.Data, keyboard.SortPrefix)
	name, dir, _ := strings.Cut(arg, ":")
	field, ascending, ok := parseSort(name, dir)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	screen, err := h.PatientsScreen(ctx, "", field, ascending, 0)
	common.EditPage(ctx, b, callback, h, screen, err)
}

// HandlePatientsPage листает список: patients_page:<поле>:<asc|desc>:<поиск>:<page>
func HandlePatientsPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	arg, _ := keyboard.Arg(callback.Data, keyboard.PatientsPagePrefix)
	rest, page := keyboard.SplitPage(arg)
	parts := strings.SplitN(rest, ":", 3)
	if len(parts) != 3 {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}
	field, ascending, ok := parseSort(parts[0], parts[1])
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	screen, err := h.PatientsScreen(ctx, parts[2], field, ascending, page)
	common.EditPage(ctx, b, callback, h, screen, err)
}

func parseSort(name, dir string) (repository.PatientSortField, bool, bool) {
	field := repository.PatientSortField(name)
	if !field.Valid() || (dir != "asc" && dir != "desc") {
		return "", false, false
	}
	return field, dir == "asc", true
}

// HandlePatient карточка пациента
func HandlePatient(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	patientID, ok := keyboard.Arg(callback.Data, keyboard.PatientPrefix)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}
	chatID, _ := common.CallbackChat(callback)
	common.AnswerCallback(ctx, b, callback.ID, "")
	h.SendPatientCard(ctx, b, chatID, patientID)
}

// HandlePatientAppointments приёмы пациента: patient_appointments:<id> из
// карточки, patient_appointments:<id>:<page> листает список
func HandlePatientAppointments(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	arg, ok := keyboard.Arg(callback.Data, keyboard.PatientAppointmentsPrefix)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}

	patientID, page := keyboard.SplitPage(arg)
	if patientID != arg {
		screen, err := h.PatientAppointmentsScreen(ctx, patientID, page)
		common.EditPage(ctx, b, callback, h, screen, err)
		return
	}

	chatID, _ := common.CallbackChat(callback)
	common.AnswerCallback(ctx, b, callback.ID, "")
	h.SendPatientAppointments(ctx, b, chatID, patientID)
}

// HandleNotes ждёт новый текст заметок
func HandleNotes(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	patientID, ok := keyboard.Arg(callback.Data, keyboard.PatientNotesPrefix)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}
	chatID, userID := common.CallbackChat(callback)
	common.AnswerCallback(ctx, b, callback.ID, "")
	h.StartPatientNotes(ctx, b, chatID, userID, patientID)
}

// HandleDelete спрашивает подтверждение удаления
func HandleDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	patientID, ok := keyboard.Arg(callback.Data, keyboard.DeletePatientPrefix)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}
	p, err := h.Patients.Get(ctx, patientID)
	if err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	chatID, _ := common.CallbackChat(callback)
	common.AnswerCallback(ctx, b, callback.ID, "")
	h.SendMessage(ctx, b, chatID,
		fmt.Sprintf("🗑 Удалить карточку %s (%s)?\n\nПриёмы пациента останутся в истории.", p.FullName(), p.Code),
		keyboard.ConfirmDeletePatient(p.ID))
}

func HandleConfirmDelete(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	patientID, ok := keyboard.Arg(callback.Data, keyboard.ConfirmDeletePatientPrefix)
	if !ok {
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат")
		return
	}
	if err := h.Patients.Delete(ctx, patientID); err != nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	chatID, _ := common.CallbackChat(callback)
	common.AnswerCallback(ctx, b, callback.ID, "✅ Пациент удалён")
	common.DeleteMessage(ctx, b, common.GetMessageFromCallback(callback))
	h.SendPatients(ctx, b, chatID, "", repository.SortByCode, true)
}

func HandleSearch(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	chatID, userID := common.CallbackChat(callback)
	common.AnswerCallback(ctx, b, callback.ID, "")
	h.StartPatientSearch(ctx, b, chatID, userID)
}
