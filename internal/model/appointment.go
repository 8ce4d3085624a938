package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled" // Запланирован
	AppointmentStatusCompleted AppointmentStatus = "completed" // Закрыт после сеанса
	AppointmentStatusCancelled AppointmentStatus = "cancelled" // Есть в типе, но ни одно действие сюда не ведёт
)

// Допустимая длительность приёма в минутах (проверяется формой создания)
const (
	AppointmentMinDuration     = 15
	AppointmentMaxDuration     = 120
	AppointmentDefaultDuration = 45
)

type Appointment struct {
	ID          string            `json:"id"`
	PatientID   string            `json:"patient_id"`
	PatientCode string            `json:"patient_code"` // дублируется для отображения без join
	Date        time.Time         `json:"date"`
	Duration    int               `json:"duration"` // в минутах
	Notes       string            `json:"notes,omitempty"`
	Status      AppointmentStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}

// AppointmentCreate данные формы создания приёма
type AppointmentCreate struct {
	PatientID   string
	PatientCode string
	Date        time.Time
	Duration    int
	Notes       string
}

// End возвращает время окончания приёма
func (a *Appointment) End() time.Time {
	return a.Date.Add(time.Duration(a.Duration) * time.Minute)
}

// IsPending показывает, что приём ещё не закрыт
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusScheduled
}
