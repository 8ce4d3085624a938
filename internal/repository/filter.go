package repository

import (
	"sort"
	"strings"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/model"
)

// FilterByCodeSubstring оставляет приёмы, код пациента которых содержит term.
// Сравнение с учётом регистра, пустой term совпадает со всеми.
func FilterByCodeSubstring(appointments []*model.Appointment, term string) []*model.Appointment {
	result := make([]*model.Appointment, 0, len(appointments))
	for _, apt := range appointments {
		if term == "" || strings.Contains(apt.PatientCode, term) {
			result = append(result, apt)
		}
	}
	return result
}

// FilterByDateRange оставляет приёмы с датой в полуинтервале [start, end)
func FilterByDateRange(appointments []*model.Appointment, start, end time.Time) []*model.Appointment {
	result := make([]*model.Appointment, 0, len(appointments))
	for _, apt := range appointments {
		if !apt.Date.Before(start) && apt.Date.Before(end) {
			result = append(result, apt)
		}
	}
	return result
}

// FilterPending оставляет только незакрытые приёмы
func FilterPending(appointments []*model.Appointment) []*model.Appointment {
	result := make([]*model.Appointment, 0, len(appointments))
	for _, apt := range appointments {
		if apt.IsPending() {
			result = append(result, apt)
		}
	}
	return result
}

// SortChronological возвращает копию, устойчиво отсортированную по дате
func SortChronological(appointments []*model.Appointment) []*model.Appointment {
	sorted := make([]*model.Appointment, len(appointments))
	copy(sorted, appointments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// DayRange возвращает полуинтервал [начало дня, начало следующего дня)
func DayRange(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}
