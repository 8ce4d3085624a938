package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"github.com/Freeeeeet/psy_practice_bot/internal/repository"
	"github.com/google/uuid"
)

// AppointmentRepository хранит приёмы в памяти процесса в порядке добавления
type AppointmentRepository struct {
	mu    sync.RWMutex
	items []*model.Appointment
	index map[string]int
	now   func() time.Time
}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{
		index: make(map[string]int),
		now:   time.Now,
	}
}

// WithClock подменяет источник времени для CreatedAt
func (r *AppointmentRepository) WithClock(now func() time.Time) *AppointmentRepository {
	r.now = now
	return r
}

// Add добавляет приём со статусом scheduled. Пересечения не проверяются.
func (r *AppointmentRepository) Add(_ context.Context, data model.AppointmentCreate) (*model.Appointment, error) {
	apt := &model.Appointment{
		ID:          uuid.NewString(),
		PatientID:   data.PatientID,
		PatientCode: data.PatientCode,
		Date:        data.Date,
		Duration:    data.Duration,
		Notes:       data.Notes,
		Status:      model.AppointmentStatusScheduled,
		CreatedAt:   r.now(),
	}

	r.mu.Lock()
	r.index[apt.ID] = len(r.items)
	r.items = append(r.items, apt)
	r.mu.Unlock()

	return copyAppointment(apt), nil
}

// Close переводит запланированный приём в completed. false, если закрывать
// нечего: id неизвестен или приём уже не в статусе scheduled.
func (r *AppointmentRepository) Close(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok || r.items[i].Status != model.AppointmentStatusScheduled {
		return false, nil
	}
	r.items[i].Status = model.AppointmentStatusCompleted
	return true, nil
}

func (r *AppointmentRepository) Get(_ context.Context, id string) (*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, nil
	}
	return copyAppointment(r.items[i]), nil
}

func (r *AppointmentRepository) List(_ context.Context) ([]*model.Appointment, error) {
	return r.snapshot(), nil
}

func (r *AppointmentRepository) ListByDateRange(_ context.Context, start, end time.Time) ([]*model.Appointment, error) {
	return repository.FilterByDateRange(r.snapshot(), start, end), nil
}

func (r *AppointmentRepository) SearchByCode(_ context.Context, term string) ([]*model.Appointment, error) {
	return repository.FilterByCodeSubstring(r.snapshot(), term), nil
}

func (r *AppointmentRepository) snapshot() []*model.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Appointment, 0, len(r.items))
	for _, apt := range r.items {
		result = append(result, copyAppointment(apt))
	}
	return result
}

func copyAppointment(apt *model.Appointment) *model.Appointment {
	c := *apt
	return &c
}
