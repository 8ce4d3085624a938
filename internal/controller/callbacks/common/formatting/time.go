package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/calendar"
)

func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatTimeRange форматирует диапазон времени
func FormatTimeRange(start, end time.Time) string {
	return fmt.Sprintf("%s-%s", start.Format("15:04"), end.Format("15:04"))
}

// FormatDuration форматирует длительность в минутах
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}

// GetWeekdayName название дня недели на русском
func GetWeekdayName(weekday time.Weekday) string {
	names := [...]string{
		"Воскресенье",
		"Понедельник",
		"Вторник",
		"Среда",
		"Четверг",
		"Пятница",
		"Суббота",
	}
	return names[weekday]
}

func GetWeekdayShortName(weekday time.Weekday) string {
	names := [...]string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	return names[weekday]
}

// GetMonthGenitive название месяца в родительном падеже ("10 июня")
func GetMonthGenitive(month time.Month) string {
	names := [...]string{
		"января", "февраля", "марта", "апреля", "мая", "июня",
		"июля", "августа", "сентября", "октября", "ноября", "декабря",
	}
	return names[month-1]
}

// HumanDate "Сегодня в 15:04", "Завтра в 15:04" или "Пн, 10.06.2024 в 15:04".
// t и now должны быть в одном часовом поясе.
func HumanDate(t, now time.Time) string {
	switch {
	case calendar.SameDay(t, now):
		return "Сегодня в " + FormatTime(t)
	case calendar.SameDay(t, now.AddDate(0, 0, 1)):
		return "Завтра в " + FormatTime(t)
	default:
		return fmt.Sprintf("%s, %s в %s", GetWeekdayShortName(t.Weekday()), FormatDate(t), FormatTime(t))
	}
}

// WeekTitle "10 - 16 июня 2024" или "27 мая - 2 июня 2024"
func WeekTitle(week calendar.Week) string {
	start, end := week.Start, week.End
	if start.Month() == end.Month() {
		return fmt.Sprintf("%d - %d %s %d", start.Day(), end.Day(), GetMonthGenitive(end.Month()), end.Year())
	}
	if start.Year() == end.Year() {
		return fmt.Sprintf("%d %s - %d %s %d",
			start.Day(), GetMonthGenitive(start.Month()), end.Day(), GetMonthGenitive(end.Month()), end.Year())
	}
	return fmt.Sprintf("%d %s %d - %d %s %d",
		start.Day(), GetMonthGenitive(start.Month()), start.Year(),
		end.Day(), GetMonthGenitive(end.Month()), end.Year())
}
