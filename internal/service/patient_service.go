package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"github.com/Freeeeeet/psy_practice_bot/internal/repository"
	"go.uber.org/zap"
)

const codeAttempts = 20

type PatientService struct {
	patients PatientStore
	metrics  Observer
	logger   *zap.Logger
	codeGen  func() string
}

func NewPatientService(patients PatientStore, metrics Observer, logger *zap.Logger) *PatientService {
	return &PatientService{
		patients: patients,
		metrics:  observerOrNop(metrics),
		logger:   logger,
		codeGen:  randomCode,
	}
}

// randomCode шестизначный код 100000..999999
func randomCode() string {
	return strconv.Itoa(100000 + rand.IntN(900000))
}

// Create проверяет форму и создаёт пациента со свободным случайным кодом
func (s *PatientService) Create(ctx context.Context, data model.PatientCreate) (*model.Patient, error) {
	data.FirstName = strings.TrimSpace(data.FirstName)
	data.LastName = strings.TrimSpace(data.LastName)
	data.Notes = strings.TrimSpace(data.Notes)
	if err := ValidatePatient(data); err != nil {
		return nil, err
	}

	code, err := s.freeCode(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.patients.Create(ctx, code, data)
	s.metrics.ObservePatient("create", err)
	if err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}

	s.logger.Info("Patient created", zap.String("patient_id", p.ID), zap.String("code", p.Code))
	return p, nil
}

func (s *PatientService) freeCode(ctx context.Context) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code := s.codeGen()
		existing, err := s.patients.GetByCode(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check patient code: %w", err)
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}

func (s *PatientService) Get(ctx context.Context, id string) (*model.Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get patient: %w", err)
	}
	if p == nil {
		return nil, ErrPatientNotFound
	}
	return p, nil
}

// List ищет по коду или имени и сортирует по выбранному полю
func (s *PatientService) List(ctx context.Context, term string, field repository.PatientSortField, ascending bool) ([]*model.Patient, error) {
	all, err := s.patients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	if !field.Valid() {
		field = repository.SortByCode
	}
	return repository.SortPatients(repository.SearchPatients(all, strings.TrimSpace(term)), field, ascending), nil
}

// UpdateNotes заменяет заметки в карточке
func (s *PatientService) UpdateNotes(ctx context.Context, id, notes string) (*model.Patient, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Notes = strings.TrimSpace(notes)

	ok, err := s.patients.Update(ctx, p)
	s.metrics.ObservePatient("update", err)
	if err != nil {
		return nil, fmt.Errorf("update patient: %w", err)
	}
	if !ok {
		return nil, ErrPatientNotFound
	}
	return s.Get(ctx, id)
}

// Delete удаляет карточку; приёмы пациента остаются в истории
func (s *PatientService) Delete(ctx context.Context, id string) error {
	ok, err := s.patients.Delete(ctx, id)
	s.metrics.ObservePatient("delete", err)
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	if !ok {
		return ErrPatientNotFound
	}

	s.logger.Info("Patient deleted", zap.String("patient_id", id))
	return nil
}
