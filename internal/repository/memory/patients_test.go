package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatientRepository_Lifecycle(t *testing.T) {
	clock := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	repo := NewPatientRepository().WithClock(func() time.Time { return clock })
	ctx := context.Background()

	p, err := repo.Create(ctx, "426247", model.PatientCreate{
		FirstName: "Jean",
		LastName:  "Dupont",
		Age:       35,
		Gender:    model.GenderMale,
	})
	require.NoError(t, err)
	assert.Equal(t, clock, p.CreatedAt)

	byCode, err := repo.GetByCode(ctx, "426247")
	require.NoError(t, err)
	require.NotNil(t, byCode)
	assert.Equal(t, p.ID, byCode.ID)

	clock = clock.Add(time.Hour)
	p.Notes = "Suivi hebdomadaire"
	updated, err := repo.Update(ctx, p)
	require.NoError(t, err)
	assert.True(t, updated)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Suivi hebdomadaire", got.Notes)
	assert.Equal(t, clock, got.UpdatedAt)

	deleted, err := repo.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	missing, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPatientRepository_UpdateUnknown(t *testing.T) {
	ok, err := NewPatientRepository().Update(context.Background(), &model.Patient{ID: "x"})
	require.NoError(t, err)
	assert.False(t, ok)
}
