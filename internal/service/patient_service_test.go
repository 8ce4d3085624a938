package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"github.com/Freeeeeet/psy_practice_bot/internal/repository"
	"github.com/Freeeeeet/psy_practice_bot/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPatientService_CreateAssignsSixDigitCode(t *testing.T) {
	svc := NewPatientService(memory.NewPatientRepository(), nil, zap.NewNop())

	p, err := svc.Create(context.Background(), model.PatientCreate{
		FirstName: "  Jean ",
		LastName:  "Dupont",
		Age:       45,
		Gender:    model.GenderMale,
	})
	require.NoError(t, err)
	assert.Len(t, p.Code, 6)
	assert.GreaterOrEqual(t, p.Code, "100000")
	assert.Equal(t, "Jean", p.FirstName)
}

func TestPatientService_CodeCollisionRetries(t *testing.T) {
	store := memory.NewPatientRepository()
	svc := NewPatientService(store, nil, zap.NewNop())
	ctx := context.Background()

	_, err := store.Create(ctx, "111111", model.PatientCreate{FirstName: "A", LastName: "B", Gender: model.GenderMale})
	require.NoError(t, err)

	codes := []string{"111111", "111111", "222222"}
	svc.codeGen = func() string {
		c := codes[0]
		codes = codes[1:]
		return c
	}

	p, err := svc.Create(ctx, model.PatientCreate{FirstName: "C", LastName: "D", Gender: model.GenderFemale})
	require.NoError(t, err)
	assert.Equal(t, "222222", p.Code)

	svc.codeGen = func() string { return "111111" }
	_, err = svc.Create(ctx, model.PatientCreate{FirstName: "E", LastName: "F", Gender: model.GenderFemale})
	assert.ErrorIs(t, err, ErrCodeSpaceExhausted)
}

func TestPatientService_Validation(t *testing.T) {
	svc := NewPatientService(memory.NewPatientRepository(), nil, zap.NewNop())

	_, err := svc.Create(context.Background(), model.PatientCreate{FirstName: " ", LastName: "B", Gender: model.GenderMale})
	verr, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "first_name", verr.Field)
}

func TestPatientService_ListUpdateDelete(t *testing.T) {
	store := memory.NewPatientRepository()
	obs := newCountingObserver()
	svc := NewPatientService(store, obs, zap.NewNop())
	ctx := context.Background()

	for code, name := range map[string]string{"426247": "Jean", "782523": "Marie", "934721": "Thomas"} {
		_, err := store.Create(ctx, code, model.PatientCreate{FirstName: name, LastName: "L", Gender: model.GenderOther})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx, "", repository.SortByCode, false)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "934721", list[0].Code)

	list, err = svc.List(ctx, "marie", "bogus", true)
	require.NoError(t, err)
	require.Len(t, list, 1)

	updated, err := svc.UpdateNotes(ctx, list[0].ID, " Suivi ")
	require.NoError(t, err)
	assert.Equal(t, "Suivi", updated.Notes)

	require.NoError(t, svc.Delete(ctx, list[0].ID))
	assert.ErrorIs(t, svc.Delete(ctx, list[0].ID), ErrPatientNotFound)

	_, err = svc.Get(ctx, list[0].ID)
	assert.ErrorIs(t, err, ErrPatientNotFound)

	assert.Equal(t, 2, obs.patients["delete"])
	assert.Equal(t, 1, obs.patients["update"])
}
