package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"github.com/Freeeeeet/psy_practice_bot/internal/repository/base"
	"github.com/google/uuid"
)

const patientColumns = `id, code, first_name, last_name, age, gender, notes, created_at, updated_at`

type PatientRepository struct {
	*base.Repository
}

func NewPatientRepository(db base.DB) *PatientRepository {
	return &PatientRepository{Repository: base.NewRepository(db)}
}

// Create создаёт пациента с заранее выбранным кодом
func (r *PatientRepository) Create(ctx context.Context, code string, data model.PatientCreate) (*model.Patient, error) {
	query := `
		INSERT INTO patients (id, code, first_name, last_name, age, gender, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	p := &model.Patient{
		ID:        uuid.NewString(),
		Code:      code,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Age:       data.Age,
		Gender:    data.Gender,
		Notes:     data.Notes,
	}

	err := r.QueryRow(
		ctx, query,
		p.ID,
		p.Code,
		p.FirstName,
		p.LastName,
		p.Age,
		p.Gender,
		p.Notes,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}

	return p, nil
}

// GetByID получает пациента по ID
func (r *PatientRepository) GetByID(ctx context.Context, id string) (*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1`

	p, err := scanPatient(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get patient by id: %w", err)
	}

	return p, nil
}

// GetByCode получает пациента по коду
func (r *PatientRepository) GetByCode(ctx context.Context, code string) (*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE code = $1`

	p, err := scanPatient(r.QueryRow(ctx, query, code))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get patient by code: %w", err)
	}

	return p, nil
}

// List возвращает всех пациентов в порядке создания
func (r *PatientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients ORDER BY created_at, code`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	patients := make([]*model.Patient, 0)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		patients = append(patients, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}

	return patients, nil
}

// Update обновляет карточку пациента. false - пациент не найден.
func (r *PatientRepository) Update(ctx context.Context, p *model.Patient) (bool, error) {
	query := `
		UPDATE patients
		SET first_name = $1, last_name = $2, age = $3, gender = $4, notes = $5, updated_at = NOW()
		WHERE id = $6
	`

	affected, err := r.ExecAffected(ctx, query, p.FirstName, p.LastName, p.Age, p.Gender, p.Notes, p.ID)
	if err != nil {
		return false, fmt.Errorf("update patient: %w", err)
	}

	return affected > 0, nil
}

// Delete удаляет пациента. Приёмы пациента остаются.
func (r *PatientRepository) Delete(ctx context.Context, id string) (bool, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete patient: %w", err)
	}

	return affected > 0, nil
}

func scanPatient(row base.Scanner) (*model.Patient, error) {
	var p model.Patient
	err := row.Scan(
		&p.ID,
		&p.Code,
		&p.FirstName,
		&p.LastName,
		&p.Age,
		&p.Gender,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
