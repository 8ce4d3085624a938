package calendar

import "time"

const DaysInWeek = 7

// Week содержит границы отображаемой недели (Пн-Вс)
type Week struct {
	Start time.Time // понедельник 00:00
	End   time.Time // воскресенье 00:00
	Days  [DaysInWeek]time.Time
}

// WeekOf возвращает неделю, в которую попадает anchor.
// Первый день всегда понедельник, время обнулено в зоне anchor.
func WeekOf(anchor time.Time) Week {
	normalized := StartOfDay(anchor)

	daysSinceMonday := int(normalized.Weekday()) - 1
	if normalized.Weekday() == time.Sunday {
		daysSinceMonday = 6
	}

	start := normalized.AddDate(0, 0, -daysSinceMonday)

	var week Week
	week.Start = start
	for i := 0; i < DaysInWeek; i++ {
		week.Days[i] = start.AddDate(0, 0, i)
	}
	week.End = week.Days[DaysInWeek-1]

	return week
}

// Contains проверяет, попадает ли момент t в неделю
func (w Week) Contains(t time.Time) bool {
	return w.DayIndex(t) >= 0
}

// DayIndex возвращает индекс дня недели для t или -1
func (w Week) DayIndex(t time.Time) int {
	local := t.In(w.Start.Location())
	for i, day := range w.Days {
		if SameDay(day, local) {
			return i
		}
	}
	return -1
}

// Next возвращает следующую неделю
func (w Week) Next() Week {
	return WeekOf(w.Start.AddDate(0, 0, DaysInWeek))
}

// Prev возвращает предыдущую неделю
func (w Week) Prev() Week {
	return WeekOf(w.Start.AddDate(0, 0, -DaysInWeek))
}

// StartOfDay нормализует время к началу дня
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay проверяет, являются ли две даты одним календарным днём
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() &&
		a.Month() == b.Month() &&
		a.Day() == b.Day()
}
