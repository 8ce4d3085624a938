package keyboard

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/calendar"
	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"github.com/go-telegram/bot/models"
)

var weekdayShort = [calendar.DaysInWeek]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

// DurationChoices быстрые варианты длительности приёма
var DurationChoices = []int{30, 45, 60, 90}

func BackToMainButton() models.InlineKeyboardButton {
	return Button("🏠 В главное меню", MainMenu)
}

func CancelButton() models.InlineKeyboardButton {
	return Button("❌ Отмена", CancelDialog)
}

func (b *Builder) AddBackToMainButton() *Builder {
	return b.Row(BackToMainButton())
}

// Main главное меню
func Main() *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(Button("📅 Неделя", WeekPrefix+WeekToday), Button("📋 Приёмы", Appointments)).
		Row(Button("👥 Пациенты", Patients), Button("🎙 Анализ", Analysis)).
		Row(Button("➕ Новый приём", NewAppointment), Button("➕ Новый пациент", NewPatient)).
		Build()
}

// Week навигация по неделе. Дни с приёмами отмечены точкой.
func Week(week calendar.Week, counts [calendar.DaysInWeek]int, today int) *models.InlineKeyboardMarkup {
	days := make([]models.InlineKeyboardButton, 0, calendar.DaysInWeek)
	for i, day := range week.Days {
		label := weekdayShort[i] + " " + strconv.Itoa(day.Day())
		if counts[i] > 0 {
			label += "•"
		}
		if i == today {
			label = "[" + label + "]"
		}
		days = append(days, Button(label, DayData(day)))
	}

	return NewBuilder().
		Columns(4, days...).
		Row(
			Button("◀️", WeekData(week.Prev().Start)),
			Button("Сегодня", WeekPrefix+WeekToday),
			Button("▶️", WeekData(week.Next().Start)),
		).
		Row(Button("➕ Новый приём", NewAppointment), Button("📋 Список", Appointments)).
		AddBackToMainButton().
		Build()
}

// Close кнопки закрытия для ещё не закрытых приёмов страницы list.
// pagePrefix ведёт на соседние страницы того же списка.
func Close(list []*model.Appointment, loc *time.Location, pagePrefix string, page, pages int) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	for _, a := range list {
		if !a.IsPending() {
			continue
		}
		label := fmt.Sprintf("✅ Закрыть %s %s", a.Date.In(loc).Format("02.01 15:04"), calendar.DisplayCode(a.PatientCode))
		b.Row(Button(label, ClosePrefix+a.ID))
	}
	return b.
		AddPagination(pagePrefix, page, pages).
		Row(Button("📄 Экспорт", ExportPrefix+ExportAppointments), Button("📅 Неделя", WeekPrefix+WeekToday)).
		AddBackToMainButton().
		Build()
}

// PatientList страница списка пациентов; prefix задаёт действие кнопки пациента
func PatientList(patients []*model.Patient, prefix, pagePrefix string, page, pages int) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	for _, p := range patients {
		b.Row(Button(fmt.Sprintf("%s · %s", p.Code, p.FullName()), prefix+p.ID))
	}
	b.AddPagination(pagePrefix, page, pages)
	if prefix != PatientPrefix {
		return b.Row(CancelButton()).Build()
	}
	return b.
		Row(
			Button("🔢 Код", SortPrefix+"code:asc"),
			Button("🆕 Новые", SortPrefix+"created:desc"),
			Button("✏️ Изменённые", SortPrefix+"updated:desc"),
		).
		Row(Button("🔍 Поиск", PatientSearch), Button("➕ Новый", NewPatient)).
		Row(Button("📄 Экспорт", ExportPrefix+ExportPatients)).
		AddBackToMainButton().
		Build()
}

// PatientCard действия с карточкой пациента
func PatientCard(p *model.Patient) *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(Button("📅 Приёмы", PatientAppointmentsPrefix+p.ID), Button("🎙 Анализ", AnalysisPrefix+p.ID)).
		Row(Button("📖 Сказки", StoriesPrefix+p.ID), Button("🧬 Генограмма", GenogramPrefix+p.ID)).
		Row(Button("💡 Направления", LeadsPrefix+p.ID), Button("📜 Справки", HistoriesPrefix+p.ID)).
		Row(Button("📝 Заметки", PatientNotesPrefix+p.ID), Button("🗑 Удалить", DeletePatientPrefix+p.ID)).
		Row(Button("⬅️ К пациентам", Patients)).
		Build()
}

func ConfirmDeletePatient(id string) *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(Button("✅ Удалить", ConfirmDeletePatientPrefix+id), Button("❌ Отмена", PatientPrefix+id)).
		Build()
}

func Durations() *models.InlineKeyboardMarkup {
	buttons := make([]models.InlineKeyboardButton, 0, len(DurationChoices))
	for _, d := range DurationChoices {
		buttons = append(buttons, Button(fmt.Sprintf("%d мин", d), DurationPrefix+strconv.Itoa(d)))
	}
	return NewBuilder().Columns(len(buttons), buttons...).Row(CancelButton()).Build()
}

func Genders() *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(
			Button("M", GenderPrefix+string(model.GenderMale)),
			Button("F", GenderPrefix+string(model.GenderFemale)),
			Button("Autre", GenderPrefix+string(model.GenderOther)),
		).
		Row(CancelButton()).
		Build()
}

func SkipOrCancel() *models.InlineKeyboardMarkup {
	return NewBuilder().Row(Button("⏭ Пропустить", SkipNotes), CancelButton()).Build()
}

func CancelOnly() *models.InlineKeyboardMarkup {
	return NewBuilder().Row(CancelButton()).Build()
}

// AnalysisMenu экран анализа; пациент может быть не выбран
func AnalysisMenu(patientID string, hasTranscription, busy bool) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	if hasTranscription {
		if busy {
			b.Row(Button("⏳ Анализ выполняется...", Noop))
		} else {
			b.Row(Button("▶️ Анализировать", RunAnalysis), Button("📝 Резюме сеанса", SessionSummary))
		}
		b.Row(Button("✏️ Изменить текст", EditTranscription), Button("📄 Экспорт", ExportPrefix+ExportTranscription))
		b.Row(Button("🧹 Очистить", ClearTranscription))
	} else {
		b.Row(Button("✏️ Вставить текст", EditTranscription))
	}
	if patientID != "" {
		b.Row(Button("📖 Сказки", StoriesPrefix+patientID), Button("🧬 Генограмма", GenogramPrefix+patientID))
		b.Row(Button("👤 Карточка", PatientPrefix+patientID))
	}
	return b.AddBackToMainButton().Build()
}

// Stories последние PageSize сказок пациента и кнопка новой
func Stories(patientID string, stories []*model.Story, busy bool) *models.InlineKeyboardMarkup {
	if len(stories) > PageSize {
		stories = stories[len(stories)-PageSize:]
	}
	b := NewBuilder()
	for _, st := range stories {
		b.Row(Button("📄 "+st.Title, ExportStoryPrefix+st.ID))
	}
	if busy {
		b.Row(Button("⏳ Сказка создаётся...", Noop))
	} else {
		b.Row(Button("➕ Новая сказка", NewStoryPrefix+patientID))
	}
	return b.Row(Button("👤 Карточка", PatientPrefix+patientID)).Build()
}

func Leads(patientID string, busy bool) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	if busy {
		b.Row(Button("⏳ Подбираю направления...", Noop))
	} else {
		b.Row(Button("🔄 Подобрать заново", NewLeadsPrefix+patientID))
	}
	return b.Row(Button("👤 Карточка", PatientPrefix+patientID)).Build()
}

// Histories последние справки пациента, новые внизу
func Histories(patientID string, list []*model.PatientHistory, busy bool) *models.InlineKeyboardMarkup {
	if len(list) > PageSize {
		list = list[len(list)-PageSize:]
	}
	b := NewBuilder()
	for _, h := range list {
		b.Row(Button("📜 "+h.CreatedAt.Format("02.01.2006 15:04"), HistoryPrefix+h.ID))
	}
	if busy {
		b.Row(Button("⏳ Справка создаётся...", Noop))
	} else {
		b.Row(Button("➕ Новая справка", NewHistoryPrefix+patientID))
	}
	return b.Row(Button("👤 Карточка", PatientPrefix+patientID)).Build()
}
