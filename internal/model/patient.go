package model

import "time"

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "Autre"
)

// Valid проверяет, что значение входит в перечисление
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type Patient struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"` // шестизначный код для псевдонимизированного отображения
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Age       int       `json:"age"`
	Gender    Gender    `json:"gender"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PatientCreate данные формы создания пациента
type PatientCreate struct {
	FirstName string
	LastName  string
	Age       int
	Gender    Gender
	Notes     string
}

// FullName возвращает имя и фамилию через пробел
func (p *Patient) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
