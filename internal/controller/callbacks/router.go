package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/analysis"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/patients"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/schedule"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Main Callback Router
// ========================
// Форматы callback data описаны в keyboard/data.go

// Route распределяет callback query по обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *common.Handler) {
	data := callback.Data

	switch {
	// ===== Навигация =====
	case data == keyboard.MainMenu:
		common.HandleMainMenu(ctx, b, callback, h)
	case data == keyboard.Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Неделя и приёмы =====
	case strings.HasPrefix(data, keyboard.WeekPrefix):
		schedule.HandleWeek(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.DayPrefix):
		schedule.HandleDay(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.ClosePrefix):
		schedule.HandleClose(ctx, b, callback, h)
	case data == keyboard.Appointments:
		schedule.HandleAppointments(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.AppointmentsPagePrefix):
		schedule.HandleAppointmentsPage(ctx, b, callback, h)

	// ===== Диалог нового приёма =====
	case data == keyboard.NewAppointment:
		schedule.HandleNewAppointment(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.PickPatientPrefix):
		schedule.HandlePickPatient(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.PickPatientPagePrefix):
		schedule.HandlePickPatientPage(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.DurationPrefix):
		schedule.HandleDuration(ctx, b, callback, h)
	case data == keyboard.SkipNotes:
		common.HandleSkipNotes(ctx, b, callback, h)
	case data == keyboard.CancelDialog:
		common.HandleCancelDialog(ctx, b, callback, h)

	// ===== Пациенты =====
	case data == keyboard.Patients:
		patients.HandlePatients(ctx, b, callback, h)
	case data == keyboard.NewPatient:
		patients.HandleNewPatient(ctx, b, callback, h)
	case data == keyboard.PatientSearch:
		patients.HandleSearch(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.SortPrefix):
		patients.HandleSort(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.PatientsPagePrefix):
		patients.HandlePatientsPage(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.GenderPrefix):
		patients.HandleGender(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.PatientAppointmentsPrefix):
		patients.HandlePatientAppointments(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.PatientNotesPrefix):
		patients.HandleNotes(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.DeletePatientPrefix):
		patients.HandleDelete(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.ConfirmDeletePatientPrefix):
		patients.HandleConfirmDelete(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.PatientPrefix):
		patients.HandlePatient(ctx, b, callback, h)

	// ===== Анализ сеанса =====
	case data == keyboard.Analysis:
		analysis.HandleAnalysis(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.AnalysisPrefix):
		analysis.HandleBindPatient(ctx, b, callback, h)
	case data == keyboard.RunAnalysis:
		analysis.HandleRun(ctx, b, callback, h)
	case data == keyboard.SessionSummary:
		analysis.HandleSessionSummary(ctx, b, callback, h)
	case data == keyboard.EditTranscription:
		analysis.HandleEditTranscription(ctx, b, callback, h)
	case data == keyboard.ClearTranscription:
		analysis.HandleClearTranscription(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.StoriesPrefix):
		analysis.HandleStories(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.NewStoryPrefix):
		analysis.HandleNewStory(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.ExportStoryPrefix):
		analysis.HandleExportStory(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.GenogramPrefix):
		analysis.HandleGenogram(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.LeadsPrefix):
		analysis.HandleLeads(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.NewLeadsPrefix):
		analysis.HandleNewLeads(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.HistoriesPrefix):
		analysis.HandleHistories(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.NewHistoryPrefix):
		analysis.HandleNewHistory(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.HistoryPrefix):
		analysis.HandleHistory(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.ExportPrefix):
		analysis.HandleExport(ctx, b, callback, h)

	// ===== Unknown Callback =====
	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неизвестная команда")
		chatID, _ := common.CallbackChat(callback)
		h.SendMainMenu(ctx, b, chatID)
	}
}
