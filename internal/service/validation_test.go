package service

import (
	"testing"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	valid := map[string][2]int{
		"9:05":  {9, 5},
		"09:05": {9, 5},
		"23:59": {23, 59},
		"0:00":  {0, 0},
		" 14:30 ": {14, 30},
	}
	for in, want := range valid {
		h, m, err := ParseTime(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, [2]int{h, m}, in)
	}

	for _, in := range []string{"24:00", "9:5", "12:60", "1230", "", "ab:cd", "123:00"} {
		_, _, err := ParseTime(in)
		verr, ok := AsValidation(err)
		require.True(t, ok, in)
		assert.Equal(t, "time", verr.Field)
	}
}

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	d, err := ParseDate("10.06.2024", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, loc), d)

	for _, in := range []string{"2024-06-10", "31.02.2024", "10/06/2024", ""} {
		_, err := ParseDate(in, loc)
		verr, ok := AsValidation(err)
		require.True(t, ok, in)
		assert.Equal(t, "date", verr.Field)
	}
}

func TestParseDuration(t *testing.T) {
	d, err := ParseDuration("45")
	require.NoError(t, err)
	assert.Equal(t, 45, d)

	for _, in := range []string{"14", "121", "abc", "-30"} {
		_, err := ParseDuration(in)
		verr, ok := AsValidation(err)
		require.True(t, ok, in)
		assert.Equal(t, "duration", verr.Field)
	}

	assert.NoError(t, ValidateDuration(15))
	assert.NoError(t, ValidateDuration(120))
}

func TestValidatePatient(t *testing.T) {
	ok := model.PatientCreate{FirstName: "Jean", LastName: "Dupont", Age: 45, Gender: model.GenderMale}
	assert.NoError(t, ValidatePatient(ok))

	cases := map[string]model.PatientCreate{
		"first_name": {LastName: "Dupont", Gender: model.GenderMale},
		"last_name":  {FirstName: "Jean", Gender: model.GenderMale},
		"age":        {FirstName: "Jean", LastName: "Dupont", Age: 151, Gender: model.GenderMale},
		"gender":     {FirstName: "Jean", LastName: "Dupont", Gender: "X"},
	}
	for field, data := range cases {
		verr, isValidation := AsValidation(ValidatePatient(data))
		require.True(t, isValidation, field)
		assert.Equal(t, field, verr.Field)
	}
}

func TestParseAgeAndGender(t *testing.T) {
	age, err := ParseAge("32")
	require.NoError(t, err)
	assert.Equal(t, 32, age)
	_, err = ParseAge("-1")
	assert.Error(t, err)

	g, err := ParseGender("autre")
	require.NoError(t, err)
	assert.Equal(t, model.GenderOther, g)
	g, err = ParseGender("f")
	require.NoError(t, err)
	assert.Equal(t, model.GenderFemale, g)
	_, err = ParseGender("x")
	assert.Error(t, err)
}

func TestRoundUpToQuarter(t *testing.T) {
	at := func(h, m, s int) time.Time { return time.Date(2024, 6, 10, h, m, s, 0, time.UTC) }

	assert.Equal(t, at(10, 15, 0), RoundUpToQuarter(at(10, 1, 0)))
	assert.Equal(t, at(10, 15, 0), RoundUpToQuarter(at(10, 15, 0)))
	assert.Equal(t, at(11, 0, 0), RoundUpToQuarter(at(10, 59, 0)))
	assert.Equal(t, at(0, 0, 0).AddDate(0, 0, 1), RoundUpToQuarter(at(23, 50, 0)))

	// Секунды не учитываются
	assert.Equal(t, at(10, 0, 0), RoundUpToQuarter(at(10, 0, 30)))
	assert.Equal(t, at(10, 15, 0), RoundUpToQuarter(at(10, 15, 1)))
	assert.Equal(t, at(10, 15, 0), RoundUpToQuarter(at(10, 14, 59)))
}
