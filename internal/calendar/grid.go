package calendar

import (
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/model"
)

// Рабочая полоса сетки: 8:00-19:00
const (
	BandStartHour = 8
	BandEndHour   = 19
	BandMinutes   = (BandEndHour - BandStartHour) * 60
)

// Placement прямоугольник приёма в сетке недели.
// Смещение и высота не обрезаются по рабочей полосе.
type Placement struct {
	Appointment      *model.Appointment
	DayIndex         int
	TopOffsetMinutes int
	HeightMinutes    int
}

// Visible показывает, пересекается ли прямоугольник с рабочей полосой
func (p Placement) Visible() bool {
	return p.TopOffsetMinutes < BandMinutes && p.TopOffsetMinutes+p.HeightMinutes > 0
}

// Overflows показывает, выходит ли прямоугольник за пределы полосы
func (p Placement) Overflows() bool {
	return p.TopOffsetMinutes < 0 || p.TopOffsetMinutes+p.HeightMinutes > BandMinutes
}

// Grid разложение приёмов по дням недели
type Grid struct {
	Week       Week
	Placements []Placement // в порядке вставки, без сортировки
}

// TopOffset переводит время начала в минуты от начала полосы
func TopOffset(t time.Time) int {
	return (t.Hour()-BandStartHour)*60 + t.Minute()
}

// BuildGrid раскладывает приёмы недели, в которую попадает anchor.
// Пересечения не разрешаются: каждый приём получает свой прямоугольник.
func BuildGrid(anchor time.Time, appointments []*model.Appointment) Grid {
	week := WeekOf(anchor)
	loc := week.Start.Location()

	grid := Grid{Week: week}
	for _, apt := range appointments {
		if apt == nil {
			continue
		}
		local := apt.Date.In(loc)
		dayIndex := week.DayIndex(local)
		if dayIndex < 0 {
			continue
		}
		grid.Placements = append(grid.Placements, Placement{
			Appointment:      apt,
			DayIndex:         dayIndex,
			TopOffsetMinutes: TopOffset(local),
			HeightMinutes:    apt.Duration,
		})
	}

	return grid
}

// Day возвращает прямоугольники одного дня в порядке вставки
func (g Grid) Day(dayIndex int) []Placement {
	var result []Placement
	for _, p := range g.Placements {
		if p.DayIndex == dayIndex {
			result = append(result, p)
		}
	}
	return result
}

// TodayIndex возвращает индекс сегодняшнего дня в сетке или -1
func (g Grid) TodayIndex(now time.Time) int {
	return g.Week.DayIndex(now)
}
