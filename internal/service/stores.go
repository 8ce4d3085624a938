package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/model"
)

// AppointmentStore хранилище приёмов (память или PostgreSQL)
type AppointmentStore interface {
	Add(ctx context.Context, data model.AppointmentCreate) (*model.Appointment, error)
	Close(ctx context.Context, id string) (bool, error)
	Get(ctx context.Context, id string) (*model.Appointment, error)
	List(ctx context.Context) ([]*model.Appointment, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*model.Appointment, error)
	SearchByCode(ctx context.Context, term string) ([]*model.Appointment, error)
}

// PatientStore хранилище карточек пациентов
type PatientStore interface {
	Create(ctx context.Context, code string, data model.PatientCreate) (*model.Patient, error)
	GetByID(ctx context.Context, id string) (*model.Patient, error)
	GetByCode(ctx context.Context, code string) (*model.Patient, error)
	List(ctx context.Context) ([]*model.Patient, error)
	Update(ctx context.Context, p *model.Patient) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Observer метрики операций
type Observer interface {
	ObserveAppointment(op string, err error)
	ObservePatient(op string, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveAppointment(string, error) {}
func (nopObserver) ObservePatient(string, error)     {}

func observerOrNop(o Observer) Observer {
	if o == nil {
		return nopObserver{}
	}
	return o
}
