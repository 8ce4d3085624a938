package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"github.com/Freeeeeet/psy_practice_bot/internal/repository/base"
	"github.com/google/uuid"
)

const appointmentColumns = `id, patient_id, patient_code, date, duration, notes, status, created_at`

// AppointmentRepository хранит приёмы в PostgreSQL
type AppointmentRepository struct {
	*base.Repository
}

func NewAppointmentRepository(db base.DB) *AppointmentRepository {
	return &AppointmentRepository{Repository: base.NewRepository(db)}
}

// Add создаёт приём со статусом scheduled. Пересечения не проверяются.
func (r *AppointmentRepository) Add(ctx context.Context, data model.AppointmentCreate) (*model.Appointment, error) {
	query := `
		INSERT INTO appointments (id, patient_id, patient_code, date, duration, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	apt := &model.Appointment{
		ID:          uuid.NewString(),
		PatientID:   data.PatientID,
		PatientCode: data.PatientCode,
		Date:        data.Date,
		Duration:    data.Duration,
		Notes:       data.Notes,
		Status:      model.AppointmentStatusScheduled,
	}

	err := r.QueryRow(
		ctx, query,
		apt.ID,
		apt.PatientID,
		apt.PatientCode,
		apt.Date,
		apt.Duration,
		apt.Notes,
		apt.Status,
	).Scan(&apt.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	return apt, nil
}

// Close закрывает запланированный приём. false - приёма нет или он уже не scheduled.
func (r *AppointmentRepository) Close(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE appointments
		SET status = $1
		WHERE id = $2 AND status = $3
	`

	affected, err := r.ExecAffected(ctx, query, model.AppointmentStatusCompleted, id, model.AppointmentStatusScheduled)
	if err != nil {
		return false, fmt.Errorf("close appointment: %w", err)
	}

	return affected > 0, nil
}

// Get получает приём по ID
func (r *AppointmentRepository) Get(ctx context.Context, id string) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`

	apt, err := scanAppointment(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment by id: %w", err)
	}

	return apt, nil
}

// List возвращает все приёмы в порядке создания
func (r *AppointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments ORDER BY seq`

	return r.queryAppointments(ctx, "list appointments", query)
}

// ListByDateRange возвращает приёмы с датой в [start, end)
func (r *AppointmentRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE date >= $1 AND date < $2
		ORDER BY seq
	`

	return r.queryAppointments(ctx, "list appointments by date range", query, start, end)
}

// SearchByCode ищет по подстроке кода пациента с учётом регистра
func (r *AppointmentRepository) SearchByCode(ctx context.Context, term string) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE $1 = '' OR strpos(patient_code, $1) > 0
		ORDER BY seq
	`

	return r.queryAppointments(ctx, "search appointments by code", query, term)
}

func (r *AppointmentRepository) queryAppointments(ctx context.Context, op, query string, args ...any) ([]*model.Appointment, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	appointments := make([]*model.Appointment, 0)
	for rows.Next() {
		apt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointments = append(appointments, apt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return appointments, nil
}

func scanAppointment(row base.Scanner) (*model.Appointment, error) {
	var apt model.Appointment
	err := row.Scan(
		&apt.ID,
		&apt.PatientID,
		&apt.PatientCode,
		&apt.Date,
		&apt.Duration,
		&apt.Notes,
		&apt.Status,
		&apt.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &apt, nil
}
