package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var appointmentRowColumns = []string{"id", "patient_id", "patient_code", "date", "duration", "notes", "status", "created_at"}

func newAppointmentMock(t *testing.T) (pgxmock.PgxPoolIface, *AppointmentRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewAppointmentRepository(mock)
}

func TestAppointmentRepository_Add(t *testing.T) {
	mock, repo := newAppointmentMock(t)
	ctx := context.Background()

	date := time.Date(2024, 6, 10, 9, 15, 0, 0, time.UTC)
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(pgxmock.AnyArg(), "p-1", "782523", date, 30, "", model.AppointmentStatusScheduled).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(created))

	apt, err := repo.Add(ctx, model.AppointmentCreate{
		PatientID:   "p-1",
		PatientCode: "782523",
		Date:        date,
		Duration:    30,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, apt.ID)
	assert.Equal(t, model.AppointmentStatusScheduled, apt.Status)
	assert.Equal(t, created, apt.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepository_AddError(t *testing.T) {
	mock, repo := newAppointmentMock(t)

	mock.ExpectQuery("INSERT INTO appointments").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Add(context.Background(), model.AppointmentCreate{PatientID: "p-1", Duration: 45})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create appointment")
}

func TestAppointmentRepository_Close(t *testing.T) {
	mock, repo := newAppointmentMock(t)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE appointments\s+SET status = \$1\s+WHERE id = \$2 AND status = \$3`).
		WithArgs(model.AppointmentStatusCompleted, "a-1", model.AppointmentStatusScheduled).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	// Уже закрытый приём под условие status не попадает
	mock.ExpectExec("UPDATE appointments").
		WithArgs(model.AppointmentStatusCompleted, "a-1", model.AppointmentStatusScheduled).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec("UPDATE appointments").
		WithArgs(model.AppointmentStatusCompleted, "missing", model.AppointmentStatusScheduled).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	closed, err := repo.Close(ctx, "a-1")
	require.NoError(t, err)
	assert.True(t, closed)

	closed, err = repo.Close(ctx, "a-1")
	require.NoError(t, err)
	assert.False(t, closed)

	closed, err = repo.Close(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, closed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepository_GetNotFound(t *testing.T) {
	mock, repo := newAppointmentMock(t)

	mock.ExpectQuery("SELECT (.+) FROM appointments WHERE id").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	apt, err := repo.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, apt)
}

func TestAppointmentRepository_Get(t *testing.T) {
	mock, repo := newAppointmentMock(t)
	date := time.Date(2024, 6, 12, 10, 30, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM appointments WHERE id").
		WithArgs("a-1").
		WillReturnRows(pgxmock.NewRows(appointmentRowColumns).
			AddRow("a-1", "p-1", "426247", date, 45, "first", model.AppointmentStatusScheduled, date))

	apt, err := repo.Get(context.Background(), "a-1")
	require.NoError(t, err)
	require.NotNil(t, apt)
	assert.Equal(t, "426247", apt.PatientCode)
	assert.Equal(t, 45, apt.Duration)
	assert.True(t, apt.IsPending())
}

func TestAppointmentRepository_SearchByCode(t *testing.T) {
	mock, repo := newAppointmentMock(t)
	date := time.Date(2024, 6, 12, 10, 30, 0, 0, time.UTC)

	mock.ExpectQuery("FROM appointments").
		WithArgs("426").
		WillReturnRows(pgxmock.NewRows(appointmentRowColumns).
			AddRow("a-1", "p-1", "426247", date, 45, "", model.AppointmentStatusScheduled, date))

	list, err := repo.SearchByCode(context.Background(), "426")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "426247", list[0].PatientCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepository_ListByDateRange(t *testing.T) {
	mock, repo := newAppointmentMock(t)
	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	mock.ExpectQuery("FROM appointments").
		WithArgs(start, end).
		WillReturnRows(pgxmock.NewRows(appointmentRowColumns).
			AddRow("a-1", "p-1", "782523", start.Add(9*time.Hour+15*time.Minute), 30, "", model.AppointmentStatusCompleted, start).
			AddRow("a-2", "p-2", "934721", start.Add(30*time.Hour), 60, "", model.AppointmentStatusScheduled, start))

	list, err := repo.ListByDateRange(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a-1", list[0].ID)
	assert.False(t, list[0].IsPending())
	assert.Equal(t, "a-2", list[1].ID)
}

func TestAppointmentRepository_ListEmpty(t *testing.T) {
	mock, repo := newAppointmentMock(t)

	mock.ExpectQuery("SELECT (.+) FROM appointments ORDER BY seq").
		WillReturnRows(pgxmock.NewRows(appointmentRowColumns))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
