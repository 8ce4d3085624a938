package formatting

import (
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/calendar"
	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestHumanDate(t *testing.T) {
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, "Сегодня в 09:15", HumanDate(time.Date(2024, 6, 10, 9, 15, 0, 0, time.UTC), now))
	assert.Equal(t, "Завтра в 18:00", HumanDate(time.Date(2024, 6, 11, 18, 0, 0, 0, time.UTC), now))
	assert.Equal(t, "Ср, 12.06.2024 в 10:30", HumanDate(time.Date(2024, 6, 12, 10, 30, 0, 0, time.UTC), now))
	assert.Equal(t, "Вс, 09.06.2024 в 10:30", HumanDate(time.Date(2024, 6, 9, 10, 30, 0, 0, time.UTC), now))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45 мин", FormatDuration(45))
	assert.Equal(t, "1 ч", FormatDuration(60))
	assert.Equal(t, "1 ч 30 мин", FormatDuration(90))
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "приём", PluralizeAppointments(1))
	assert.Equal(t, "приёма", PluralizeAppointments(3))
	assert.Equal(t, "приёмов", PluralizeAppointments(5))
	assert.Equal(t, "приёмов", PluralizeAppointments(11))
	assert.Equal(t, "приём", PluralizeAppointments(21))
	assert.Equal(t, "приёма", PluralizeAppointments(24))
	assert.Equal(t, "лет", PluralizeYears(45))
	assert.Equal(t, "года", PluralizeYears(32))
}

func TestWeekTitle(t *testing.T) {
	assert.Equal(t, "10 - 16 июня 2024", WeekTitle(calendar.WeekOf(time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC))))
	assert.Equal(t, "27 мая - 2 июня 2024", WeekTitle(calendar.WeekOf(time.Date(2024, 5, 29, 0, 0, 0, 0, time.UTC))))
	assert.Equal(t, "30 декабря 2024 - 5 января 2025", WeekTitle(calendar.WeekOf(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))))
}

func TestFormatAppointmentList(t *testing.T) {
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	list := []*model.Appointment{
		{PatientCode: "782523", Date: time.Date(2024, 6, 10, 9, 15, 0, 0, time.UTC), Duration: 30, Status: model.AppointmentStatusScheduled},
		{PatientCode: "", Date: time.Date(2024, 6, 11, 14, 0, 0, 0, time.UTC), Duration: 60, Notes: "Premier", Status: model.AppointmentStatusCompleted},
	}

	text := FormatAppointmentList("📋 Приёмы", list, 2, now)
	assert.Contains(t, text, "2 приёма")
	assert.Contains(t, text, "🕒 Сегодня в 09:15 · 782523 · 30 мин")
	assert.Contains(t, text, "✔️ Завтра в 14:00 · 000000 · 1 ч")
	assert.Contains(t, text, "📝 Premier")

	assert.Contains(t, FormatAppointmentList("📋 Приёмы", nil, 0, now), "Приёмов нет")

	// На странице часть списка, в заголовке весь
	page := FormatAppointmentList("📋 Приёмы", list[:1], 41, now)
	assert.Contains(t, page, "41 приём")
	assert.NotContains(t, page, "Premier")
}

func TestFormatWeekCaption_HiddenPlacements(t *testing.T) {
	anchor := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	grid := calendar.BuildGrid(anchor, []*model.Appointment{
		{PatientCode: "426247", Date: anchor.Add(10 * time.Hour), Duration: 45},
		{PatientCode: "934721", Date: anchor.Add(20 * time.Hour), Duration: 45},
	})
	counts := [calendar.DaysInWeek]int{2}

	caption := FormatWeekCaption(grid, counts)
	assert.Contains(t, caption, "10 - 16 июня 2024")
	assert.Contains(t, caption, "2 приёма")
	assert.Contains(t, caption, "Вне сетки 08:00-19:00: 1")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "абв", Truncate("абв", 3))
	assert.Equal(t, "аб…", Truncate("абвг", 3))
	long := strings.Repeat("я", MessageLimit+10)
	assert.Equal(t, MessageLimit, len([]rune(Truncate(long, MessageLimit))))
}

func TestFormatPatientCard(t *testing.T) {
	p := &model.Patient{Code: "426247", FirstName: "Jean", LastName: "Dupont", Age: 45, Gender: model.GenderMale, Notes: "Anxiété"}
	card := FormatPatientCard(p, 2)

	assert.Contains(t, card, "Jean Dupont")
	assert.Contains(t, card, "Код: 426247")
	assert.Contains(t, card, "45 лет")
	assert.Contains(t, card, "мужской")
	assert.Contains(t, card, "Anxiété")
}
