package calendar

import (
	"testing"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appointmentAt(id string, date time.Time, duration int) *model.Appointment {
	return &model.Appointment{
		ID:          id,
		PatientID:   "p-" + id,
		PatientCode: "426247",
		Date:        date,
		Duration:    duration,
		Status:      model.AppointmentStatusScheduled,
	}
}

func TestBuildGrid_Positioning(t *testing.T) {
	wednesday := time.Date(2024, time.June, 12, 10, 30, 0, 0, time.UTC)

	grid := BuildGrid(wednesday, []*model.Appointment{appointmentAt("1", wednesday, 45)})

	require.Len(t, grid.Placements, 1)
	p := grid.Placements[0]
	assert.Equal(t, 2, p.DayIndex)
	assert.Equal(t, 150, p.TopOffsetMinutes)
	assert.Equal(t, 45, p.HeightMinutes)
	assert.True(t, p.Visible())
	assert.False(t, p.Overflows())
}

func TestBuildGrid_FiltersOtherWeeks(t *testing.T) {
	anchor := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)
	appointments := []*model.Appointment{
		appointmentAt("before", time.Date(2024, time.June, 9, 10, 0, 0, 0, time.UTC), 30),
		appointmentAt("monday", time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC), 30),
		appointmentAt("sunday", time.Date(2024, time.June, 16, 18, 30, 0, 0, time.UTC), 30),
		appointmentAt("after", time.Date(2024, time.June, 17, 8, 0, 0, 0, time.UTC), 30),
		nil,
	}

	grid := BuildGrid(anchor, appointments)

	require.Len(t, grid.Placements, 2)
	assert.Equal(t, "monday", grid.Placements[0].Appointment.ID)
	assert.Equal(t, 0, grid.Placements[0].DayIndex)
	assert.Equal(t, 0, grid.Placements[0].TopOffsetMinutes)
	assert.Equal(t, "sunday", grid.Placements[1].Appointment.ID)
	assert.Equal(t, 6, grid.Placements[1].DayIndex)
	assert.Equal(t, 630, grid.Placements[1].TopOffsetMinutes)
}

func TestBuildGrid_OutOfBandIsNotClamped(t *testing.T) {
	day := time.Date(2024, time.June, 11, 0, 0, 0, 0, time.UTC)
	early := appointmentAt("early", day.Add(7*time.Hour), 30)
	late := appointmentAt("late", day.Add(18*time.Hour+30*time.Minute), 60)
	night := appointmentAt("night", day.Add(20*time.Hour), 30)

	grid := BuildGrid(day, []*model.Appointment{early, late, night})

	require.Len(t, grid.Placements, 3)
	assert.Equal(t, -60, grid.Placements[0].TopOffsetMinutes)
	assert.False(t, grid.Placements[0].Visible())
	assert.True(t, grid.Placements[0].Overflows())

	assert.Equal(t, 630, grid.Placements[1].TopOffsetMinutes)
	assert.Equal(t, 690, grid.Placements[1].TopOffsetMinutes+grid.Placements[1].HeightMinutes)
	assert.True(t, grid.Placements[1].Visible())
	assert.True(t, grid.Placements[1].Overflows())

	assert.Equal(t, 720, grid.Placements[2].TopOffsetMinutes)
	assert.False(t, grid.Placements[2].Visible())
}

func TestBuildGrid_OverlapsKeepInsertionOrder(t *testing.T) {
	day := time.Date(2024, time.June, 13, 0, 0, 0, 0, time.UTC)
	second := appointmentAt("second", day.Add(11*time.Hour), 60)
	first := appointmentAt("first", day.Add(10*time.Hour+30*time.Minute), 60)

	grid := BuildGrid(day, []*model.Appointment{second, first})

	placements := grid.Day(3)
	require.Len(t, placements, 2)
	assert.Equal(t, "second", placements[0].Appointment.ID)
	assert.Equal(t, 180, placements[0].TopOffsetMinutes)
	assert.Equal(t, "first", placements[1].Appointment.ID)
	assert.Equal(t, 150, placements[1].TopOffsetMinutes)
}

func TestBuildGrid_DegenerateDuration(t *testing.T) {
	day := time.Date(2024, time.June, 14, 9, 0, 0, 0, time.UTC)

	grid := BuildGrid(day, []*model.Appointment{
		appointmentAt("zero", day, 0),
		appointmentAt("negative", day, -15),
	})

	require.Len(t, grid.Placements, 2)
	assert.Equal(t, 0, grid.Placements[0].HeightMinutes)
	assert.Equal(t, -15, grid.Placements[1].HeightMinutes)
}

func TestBuildGrid_UsesAnchorLocation(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	anchor := time.Date(2024, time.June, 10, 12, 0, 0, 0, moscow)
	// 22:30 UTC воскресенья = 01:30 понедельника по Москве
	utcSunday := time.Date(2024, time.June, 9, 22, 30, 0, 0, time.UTC)

	grid := BuildGrid(anchor, []*model.Appointment{appointmentAt("1", utcSunday, 30)})

	require.Len(t, grid.Placements, 1)
	assert.Equal(t, 0, grid.Placements[0].DayIndex)
	assert.Equal(t, -390, grid.Placements[0].TopOffsetMinutes)
}

func TestGrid_TodayIndex(t *testing.T) {
	grid := BuildGrid(time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC), nil)

	assert.Equal(t, 4, grid.TodayIndex(time.Date(2024, time.June, 14, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, grid.TodayIndex(time.Date(2024, time.June, 20, 15, 0, 0, 0, time.UTC)))
}

func TestBuildGrid_EndToEndScenario(t *testing.T) {
	apt := &model.Appointment{
		ID:          "e2e",
		PatientID:   "2",
		PatientCode: "782523",
		Date:        time.Date(2024, time.June, 10, 9, 15, 0, 0, time.UTC),
		Duration:    30,
		Status:      model.AppointmentStatusScheduled,
	}

	grid := BuildGrid(time.Date(2024, time.June, 13, 0, 0, 0, 0, time.UTC), []*model.Appointment{apt})

	assert.Equal(t, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), grid.Week.Start)
	require.Len(t, grid.Placements, 1)
	assert.Equal(t, 0, grid.Placements[0].DayIndex)
	assert.Equal(t, 75, grid.Placements[0].TopOffsetMinutes)
	assert.Equal(t, 30, grid.Placements[0].HeightMinutes)
}
