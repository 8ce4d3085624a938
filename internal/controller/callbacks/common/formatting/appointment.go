package formatting

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/calendar"
	"github.com/Freeeeeet/psy_practice_bot/internal/model"
)

// FormatAppointmentLine одна строка списка приёмов
func FormatAppointmentLine(a *model.Appointment, now time.Time) string {
	display := GetAppointmentStatusDisplay(a.Status)
	start := a.Date.In(now.Location())

	line := fmt.Sprintf("%s %s · %s · %s",
		display.Emoji,
		HumanDate(start, now),
		calendar.DisplayCode(a.PatientCode),
		FormatDuration(a.Duration),
	)
	if a.Notes != "" {
		line += "\n    📝 " + a.Notes
	}
	return line
}

// FormatAppointmentList страница списка приёмов; total - размер всего списка
func FormatAppointmentList(title string, list []*model.Appointment, total int, now time.Time) string {
	if total == 0 {
		return title + "\n\nПриёмов нет."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%d %s\n\n", title, total, PluralizeAppointments(total))
	for _, a := range list {
		b.WriteString(FormatAppointmentLine(a, now))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatAppointmentCreated подтверждение созданного приёма
func FormatAppointmentCreated(a *model.Appointment, loc *time.Location) string {
	start := a.Date.In(loc)
	text := fmt.Sprintf(
		"✅ Приём создан\n\n"+
			"👤 Пациент: %s\n"+
			"📅 %s, %s\n"+
			"🕒 %s (%s)",
		calendar.DisplayCode(a.PatientCode),
		GetWeekdayName(start.Weekday()),
		FormatDate(start),
		FormatTimeRange(start, a.End().In(loc)),
		FormatDuration(a.Duration),
	)
	if a.Notes != "" {
		text += "\n📝 " + a.Notes
	}
	return text
}

// FormatWeekCaption подпись к картинке недели
func FormatWeekCaption(grid calendar.Grid, counts [calendar.DaysInWeek]int) string {
	total := 0
	for _, c := range counts {
		total += c
	}
	hidden := 0
	for _, p := range grid.Placements {
		if !p.Visible() {
			hidden++
		}
	}

	caption := fmt.Sprintf("📅 Неделя %s\n%d %s", WeekTitle(grid.Week), total, PluralizeAppointments(total))
	if hidden > 0 {
		caption += fmt.Sprintf("\n⚠️ Вне сетки %02d:00-%02d:00: %d", calendar.BandStartHour, calendar.BandEndHour, hidden)
	}
	return caption
}
