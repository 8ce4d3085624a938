package formatting

import "github.com/Freeeeeet/psy_practice_bot/internal/model"

// StatusDisplay представляет отображение статуса приёма
type StatusDisplay struct {
	Emoji string
	Text  string
}

// GetAppointmentStatusDisplay возвращает emoji и текст для статуса приёма
func GetAppointmentStatusDisplay(status model.AppointmentStatus) StatusDisplay {
	displays := map[model.AppointmentStatus]StatusDisplay{
		model.AppointmentStatusScheduled: {"🕒", "Запланирован"},
		model.AppointmentStatusCompleted: {"✔️", "Закрыт"},
		model.AppointmentStatusCancelled: {"❌", "Отменён"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Неизвестно"}
}

func GenderLabel(g model.Gender) string {
	switch g {
	case model.GenderMale:
		return "мужской"
	case model.GenderFemale:
		return "женский"
	case model.GenderOther:
		return "другой"
	}
	return "не указан"
}
