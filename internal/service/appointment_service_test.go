package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"github.com/Freeeeeet/psy_practice_bot/internal/repository"
	"github.com/Freeeeeet/psy_practice_bot/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingObserver struct {
	appointments map[string]int
	patients     map[string]int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{appointments: map[string]int{}, patients: map[string]int{}}
}

func (o *countingObserver) ObserveAppointment(op string, _ error) { o.appointments[op]++ }
func (o *countingObserver) ObservePatient(op string, _ error)     { o.patients[op]++ }

type fixture struct {
	appointments *AppointmentService
	patients     *PatientService
	store        *memory.AppointmentRepository
	patientStore *memory.PatientRepository
	observer     *countingObserver
	byCode       map[string]*model.Patient
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewAppointmentRepository()
	patientStore := memory.NewPatientRepository()
	obs := newCountingObserver()

	f := &fixture{
		appointments: NewAppointmentService(store, patientStore, time.UTC, obs, zap.NewNop()).WithClock(func() time.Time { return now }),
		patients:     NewPatientService(patientStore, obs, zap.NewNop()),
		store:        store,
		patientStore: patientStore,
		observer:     obs,
		byCode:       map[string]*model.Patient{},
	}

	for _, code := range []string{"426247", "782523", "934721"} {
		p, err := patientStore.Create(ctx, code, model.PatientCreate{FirstName: "P" + code, LastName: "X", Gender: model.GenderOther})
		require.NoError(t, err)
		f.byCode[code] = p
	}
	return f
}

func TestAppointmentService_CreateEndToEnd(t *testing.T) {
	now := time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	ctx := context.Background()

	apt, err := f.appointments.Create(ctx, AppointmentForm{
		PatientID: f.byCode["782523"].ID,
		Date:      "10.06.2024",
		Time:      "09:15",
		Duration:  30,
	})
	require.NoError(t, err)
	assert.Equal(t, "782523", apt.PatientCode)
	assert.Equal(t, time.Date(2024, 6, 10, 9, 15, 0, 0, time.UTC), apt.Date)

	view, err := f.appointments.Week(ctx, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, view.Grid.Placements, 1)
	p := view.Grid.Placements[0]
	assert.Equal(t, 0, p.DayIndex)
	assert.Equal(t, 75, p.TopOffsetMinutes)
	assert.Equal(t, 30, p.HeightMinutes)
	assert.Equal(t, 1, view.Counts[0])
	assert.Equal(t, 2, view.Today)

	closed, err := f.appointments.Close(ctx, apt.ID)
	require.NoError(t, err)
	assert.True(t, closed)

	got, err := f.appointments.Get(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, got.Status)

	closed, err = f.appointments.Close(ctx, apt.ID)
	require.NoError(t, err)
	assert.False(t, closed, "повторное закрытие ничего не делает")

	pending, err := f.appointments.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	all, err := f.appointments.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	assert.Equal(t, 1, f.observer.appointments["add"])
	assert.Equal(t, 2, f.observer.appointments["close"])
}

func TestAppointmentService_CreateValidation(t *testing.T) {
	f := newFixture(t, time.Now())
	ctx := context.Background()
	pid := f.byCode["426247"].ID

	cases := []struct {
		form  AppointmentForm
		field string
	}{
		{AppointmentForm{Date: "10.06.2024", Time: "10:00", Duration: 45}, "patient"},
		{AppointmentForm{PatientID: pid, Date: "2024-06-10", Time: "10:00", Duration: 45}, "date"},
		{AppointmentForm{PatientID: pid, Date: "10.06.2024", Time: "25:00", Duration: 45}, "time"},
		{AppointmentForm{PatientID: pid, Date: "10.06.2024", Time: "10:00", Duration: 10}, "duration"},
		{AppointmentForm{PatientID: pid, Date: "10.06.2024", Time: "10:00", Duration: 121}, "duration"},
	}
	for _, tc := range cases {
		_, err := f.appointments.Create(ctx, tc.form)
		verr, ok := AsValidation(err)
		require.True(t, ok, tc.field)
		assert.Equal(t, tc.field, verr.Field)
	}

	_, err := f.appointments.Create(ctx, AppointmentForm{PatientID: "ghost", Date: "10.06.2024", Time: "10:00", Duration: 45})
	assert.True(t, errors.Is(err, ErrPatientNotFound))

	all, err := f.appointments.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAppointmentService_CloseUnknown(t *testing.T) {
	f := newFixture(t, time.Now())

	closed, err := f.appointments.Close(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, closed)

	_, err = f.appointments.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestAppointmentService_SearchSortedByDate(t *testing.T) {
	f := newFixture(t, time.Now())
	ctx := context.Background()

	add := func(code, date, clock string) {
		_, err := f.appointments.Create(ctx, AppointmentForm{PatientID: f.byCode[code].ID, Date: date, Time: clock, Duration: 45})
		require.NoError(t, err)
	}
	add("426247", "12.06.2024", "14:00")
	add("782523", "10.06.2024", "09:00")
	add("426247", "11.06.2024", "10:00")
	add("934721", "13.06.2024", "11:00")

	found, err := f.appointments.Search(ctx, "426")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, 11, found[0].Date.Day())
	assert.Equal(t, 12, found[1].Date.Day())

	all, err := f.appointments.Search(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "782523", all[0].PatientCode)

	day, err := f.appointments.Day(ctx, time.Date(2024, 6, 13, 18, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, "934721", day[0].PatientCode)

	mine, err := f.appointments.ByPatient(ctx, f.byCode["426247"].ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestAppointmentService_WeekKeepsOverlapsAndOutOfBand(t *testing.T) {
	f := newFixture(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for _, form := range []AppointmentForm{
		{PatientID: f.byCode["426247"].ID, Date: "13.06.2024", Time: "11:00", Duration: 60},
		{PatientID: f.byCode["782523"].ID, Date: "13.06.2024", Time: "11:30", Duration: 60},
		{PatientID: f.byCode["934721"].ID, Date: "14.06.2024", Time: "7:00", Duration: 30},
		{PatientID: f.byCode["934721"].ID, Date: "17.06.2024", Time: "10:00", Duration: 30},
	} {
		_, err := f.appointments.Create(ctx, form)
		require.NoError(t, err)
	}

	view, err := f.appointments.Week(ctx, time.Date(2024, 6, 16, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, view.Grid.Placements, 3)
	assert.Equal(t, 2, view.Counts[3])
	assert.Equal(t, 1, view.Counts[4])
	assert.Equal(t, -60, view.Grid.Placements[2].TopOffsetMinutes)
	assert.Equal(t, -1, view.Today)
}

func TestAppointmentService_WeekIncludesSunday(t *testing.T) {
	f := newFixture(t, time.Date(2024, 6, 16, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := f.appointments.Create(ctx, AppointmentForm{
		PatientID: f.byCode["426247"].ID, Date: "16.06.2024", Time: "18:00", Duration: 45,
	})
	require.NoError(t, err)

	view, err := f.appointments.Week(ctx, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, view.Grid.Placements, 1)
	assert.Equal(t, 6, view.Grid.Placements[0].DayIndex)
	assert.Equal(t, 1, view.Counts[6])
	assert.Equal(t, 6, view.Today)
}

func TestAppointmentService_DefaultStart(t *testing.T) {
	f := newFixture(t, time.Date(2024, 6, 10, 10, 7, 30, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 6, 10, 10, 15, 0, 0, time.UTC), f.appointments.DefaultStart())

	onQuarter := newFixture(t, time.Date(2024, 6, 10, 10, 0, 30, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC), onQuarter.appointments.DefaultStart())
}

func TestSeedFixtures(t *testing.T) {
	ctx := context.Background()
	patients := memory.NewPatientRepository()
	appointments := memory.NewAppointmentRepository()
	now := time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)

	require.NoError(t, SeedFixtures(ctx, patients, appointments, now, zap.NewNop()))
	require.NoError(t, SeedFixtures(ctx, patients, appointments, now, zap.NewNop()))

	ps, err := patients.List(ctx)
	require.NoError(t, err)
	assert.Len(t, ps, 3)

	list, err := appointments.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, "426247", list[0].PatientCode)
	assert.Equal(t, now.Add(3*time.Hour), list[0].Date)

	found := repository.FilterByCodeSubstring(list, "426")
	assert.Len(t, found, 2)
}
