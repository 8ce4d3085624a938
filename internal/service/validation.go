package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/model"
)

const (
	DateLayout = "02.01.2006"
	TimeLayout = "15:04"

	PatientMaxAge = 150
)

var timePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ParseTime разбирает время вида H:MM или HH:MM
func ParseTime(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)
	if !timePattern.MatchString(s) {
		return 0, 0, invalid("time", "Формат времени должен быть ЧЧ:ММ")
	}
	parts := strings.SplitN(s, ":", 2)
	hour, _ = strconv.Atoi(parts[0])
	minute, _ = strconv.Atoi(parts[1])
	return hour, minute, nil
}

// ParseDate разбирает дату ДД.ММ.ГГГГ в зоне loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, invalid("date", "Формат даты должен быть ДД.ММ.ГГГГ")
	}
	return d, nil
}

// ParseDuration разбирает длительность в минутах и проверяет диапазон
func ParseDuration(s string) (int, error) {
	d, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, invalid("duration", "Длительность должна быть числом минут")
	}
	if err := ValidateDuration(d); err != nil {
		return 0, err
	}
	return d, nil
}

func ValidateDuration(minutes int) error {
	if minutes < model.AppointmentMinDuration || minutes > model.AppointmentMaxDuration {
		return invalid("duration", "Длительность от 15 до 120 минут")
	}
	return nil
}

// ParseAge разбирает возраст пациента
func ParseAge(s string) (int, error) {
	age, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || age < 0 || age > PatientMaxAge {
		return 0, invalid("age", "Возраст должен быть числом от 0 до 150")
	}
	return age, nil
}

// ParseGender принимает M, F или Autre без учёта регистра
func ParseGender(s string) (model.Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m":
		return model.GenderMale, nil
	case "f":
		return model.GenderFemale, nil
	case "autre":
		return model.GenderOther, nil
	}
	return "", invalid("gender", "Пол: M, F или Autre")
}

// ValidatePatient проверяет форму пациента
func ValidatePatient(data model.PatientCreate) error {
	if strings.TrimSpace(data.FirstName) == "" {
		return invalid("first_name", "Имя обязательно")
	}
	if strings.TrimSpace(data.LastName) == "" {
		return invalid("last_name", "Фамилия обязательна")
	}
	if data.Age < 0 || data.Age > PatientMaxAge {
		return invalid("age", "Возраст должен быть числом от 0 до 150")
	}
	if !data.Gender.Valid() {
		return invalid("gender", "Пол: M, F или Autre")
	}
	return nil
}

// RoundUpToQuarter округляет минуты вверх до кратных 15, секунды отбрасываются:
// 10:00:30 остаётся 10:00, 10:01 становится 10:15
func RoundUpToQuarter(t time.Time) time.Time {
	truncated := t.Truncate(time.Minute)
	rem := truncated.Minute() % 15
	if rem == 0 {
		return truncated
	}
	return truncated.Add(time.Duration(15-rem) * time.Minute)
}
