package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/calendar"
	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGrid() calendar.Grid {
	monday := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	return calendar.BuildGrid(monday, []*model.Appointment{
		{PatientCode: "782523", Date: monday.Add(9*time.Hour + 15*time.Minute), Duration: 30, Status: model.AppointmentStatusScheduled},
		{PatientCode: "426247", Date: monday.Add(58 * time.Hour), Duration: 45, Status: model.AppointmentStatusCompleted},
		{PatientCode: "", Date: monday.Add(74 * time.Hour), Duration: 120, Status: model.AppointmentStatusScheduled},
		// За пределами полосы: не рисуется, но не ломает отрисовку
		{PatientCode: "934721", Date: monday.Add(100 * time.Hour), Duration: 30, Status: model.AppointmentStatusScheduled},
	})
}

func TestWeekImage_ProducesPNG(t *testing.T) {
	data, err := WeekImage(sampleGrid(), time.Date(2024, 6, 12, 11, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, imageWidth, img.Bounds().Dx())
	assert.Equal(t, imageHeight, img.Bounds().Dy())
}

func TestWeekImage_EmptyWeekOutsideToday(t *testing.T) {
	grid := calendar.BuildGrid(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil)
	data, err := WeekImage(grid, time.Date(2024, 6, 12, 11, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestLegendCodes(t *testing.T) {
	assert.Equal(t, []string{"000000", "426247", "782523", "934721"}, LegendCodes(sampleGrid()))
}

func TestNames(t *testing.T) {
	assert.Equal(t, "Пн", WeekdayShort(time.Monday))
	assert.Equal(t, "Вс", WeekdayShort(time.Sunday))
	assert.Equal(t, "Январь", MonthName(time.January))
	assert.Equal(t, "Декабрь", MonthName(time.December))
}

func TestSlotFill(t *testing.T) {
	for _, swatch := range calendar.Palette {
		scheduled := slotFill(swatch, model.AppointmentStatusScheduled)
		completed := slotFill(swatch, model.AppointmentStatusCompleted)

		assert.Equal(t, swatch.Background.R, scheduled.R, swatch.Name)
		assert.Equal(t, swatch.Background.B, completed.B, swatch.Name)
		assert.Less(t, scheduled.A, uint8(255), "пересечения должны просвечивать")
		assert.Less(t, completed.A, scheduled.A)

		// Премультиплицированные каналы не превышают альфу
		for _, c := range []color.Color{scheduled, completed} {
			r, g, b, a := c.RGBA()
			assert.LessOrEqual(t, r, a, swatch.Name)
			assert.LessOrEqual(t, g, a, swatch.Name)
			assert.LessOrEqual(t, b, a, swatch.Name)
		}
	}
}
