package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"github.com/google/uuid"
)

// PatientRepository хранит пациентов в памяти процесса
type PatientRepository struct {
	mu    sync.RWMutex
	items []*model.Patient
	now   func() time.Time
}

func NewPatientRepository() *PatientRepository {
	return &PatientRepository{now: time.Now}
}

// WithClock подменяет источник времени для CreatedAt/UpdatedAt
func (r *PatientRepository) WithClock(now func() time.Time) *PatientRepository {
	r.now = now
	return r
}

func (r *PatientRepository) Create(_ context.Context, code string, data model.PatientCreate) (*model.Patient, error) {
	now := r.now()
	p := &model.Patient{
		ID:        uuid.NewString(),
		Code:      code,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Age:       data.Age,
		Gender:    data.Gender,
		Notes:     data.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.mu.Lock()
	r.items = append(r.items, p)
	r.mu.Unlock()

	return copyPatient(p), nil
}

func (r *PatientRepository) GetByID(_ context.Context, id string) (*model.Patient, error) {
	return r.find(func(p *model.Patient) bool { return p.ID == id }), nil
}

func (r *PatientRepository) GetByCode(_ context.Context, code string) (*model.Patient, error) {
	return r.find(func(p *model.Patient) bool { return p.Code == code }), nil
}

func (r *PatientRepository) List(_ context.Context) ([]*model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Patient, 0, len(r.items))
	for _, p := range r.items {
		result = append(result, copyPatient(p))
	}
	return result, nil
}

func (r *PatientRepository) Update(_ context.Context, patient *model.Patient) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.items {
		if p.ID == patient.ID {
			p.FirstName = patient.FirstName
			p.LastName = patient.LastName
			p.Age = patient.Age
			p.Gender = patient.Gender
			p.Notes = patient.Notes
			p.UpdatedAt = r.now()
			return true, nil
		}
	}
	return false, nil
}

// Delete удаляет пациента, приёмы пациента не трогает
func (r *PatientRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.items {
		if p.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *PatientRepository) find(match func(*model.Patient) bool) *model.Patient {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.items {
		if match(p) {
			return copyPatient(p)
		}
	}
	return nil
}

func copyPatient(p *model.Patient) *model.Patient {
	c := *p
	return &c
}
