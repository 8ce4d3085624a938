package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var patientRowColumns = []string{"id", "code", "first_name", "last_name", "age", "gender", "notes", "created_at", "updated_at"}

func TestPatientRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPatientRepository(mock)
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO patients").
		WithArgs(pgxmock.AnyArg(), "426247", "Jean", "Dupont", 35, model.GenderMale, "").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	p, err := repo.Create(context.Background(), "426247", model.PatientCreate{
		FirstName: "Jean",
		LastName:  "Dupont",
		Age:       35,
		Gender:    model.GenderMale,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "426247", p.Code)
	assert.Equal(t, now, p.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatientRepository_GetByCode(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPatientRepository(mock)
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM patients WHERE code").
		WithArgs("782523").
		WillReturnRows(pgxmock.NewRows(patientRowColumns).
			AddRow("p-2", "782523", "Marie", "Laurent", 42, model.GenderFemale, "", now, now))
	mock.ExpectQuery("SELECT (.+) FROM patients WHERE code").
		WithArgs("000001").
		WillReturnError(pgx.ErrNoRows)

	p, err := repo.GetByCode(context.Background(), "782523")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Marie Laurent", p.FullName())

	p, err = repo.GetByCode(context.Background(), "000001")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestPatientRepository_UpdateAndDelete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPatientRepository(mock)
	p := &model.Patient{ID: "p-3", FirstName: "Thomas", LastName: "Martin", Age: 28, Gender: model.GenderMale}

	mock.ExpectExec("UPDATE patients").
		WithArgs("Thomas", "Martin", 28, model.GenderMale, "", "p-3").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("DELETE FROM patients").
		WithArgs("p-3").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM patients").
		WithArgs("p-3").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	updated, err := repo.Update(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, updated)

	deleted, err := repo.Delete(context.Background(), "p-3")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), "p-3")
	require.NoError(t, err)
	assert.False(t, deleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}
