package repository

import (
	"sort"
	"strings"

	"github.com/Freeeeeet/psy_practice_bot/internal/model"
)

// PatientSortField поле сортировки списка пациентов
type PatientSortField string

const (
	SortByCode      PatientSortField = "code"
	SortByCreatedAt PatientSortField = "created"
	SortByUpdatedAt PatientSortField = "updated"
)

// Valid проверяет поле сортировки
func (f PatientSortField) Valid() bool {
	switch f {
	case SortByCode, SortByCreatedAt, SortByUpdatedAt:
		return true
	}
	return false
}

// SearchPatients ищет по подстроке кода или по имени/фамилии без учёта регистра
func SearchPatients(patients []*model.Patient, term string) []*model.Patient {
	result := make([]*model.Patient, 0, len(patients))
	lowered := strings.ToLower(term)
	for _, p := range patients {
		if strings.Contains(p.Code, term) ||
			strings.Contains(strings.ToLower(p.FirstName), lowered) ||
			strings.Contains(strings.ToLower(p.LastName), lowered) {
			result = append(result, p)
		}
	}
	return result
}

// SortPatients возвращает отсортированную копию списка
func SortPatients(patients []*model.Patient, field PatientSortField, ascending bool) []*model.Patient {
	sorted := make([]*model.Patient, len(patients))
	copy(sorted, patients)

	less := func(a, b *model.Patient) bool {
		switch field {
		case SortByCreatedAt:
			return a.CreatedAt.Before(b.CreatedAt)
		case SortByUpdatedAt:
			return a.UpdatedAt.Before(b.UpdatedAt)
		default:
			return a.Code < b.Code
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if ascending {
			return less(sorted[i], sorted[j])
		}
		return less(sorted[j], sorted[i])
	})
	return sorted
}
