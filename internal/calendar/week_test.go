package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekOf_StartsOnMondayAndContainsAnchor(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	start := time.Date(2024, time.January, 1, 13, 45, 0, 0, loc)

	// Каждый день за два года, включая переход через годы и високосный февраль
	for i := 0; i < 731; i++ {
		anchor := start.AddDate(0, 0, i)
		week := WeekOf(anchor)

		require.Equal(t, time.Monday, week.Days[0].Weekday(), "anchor %s", anchor)
		assert.True(t, week.Contains(anchor), "anchor %s", anchor)
		assert.Equal(t, week.Days[0], week.Start)
		assert.Equal(t, week.Days[6], week.End)

		for d := 1; d < DaysInWeek; d++ {
			assert.Equal(t, week.Days[d-1].AddDate(0, 0, 1), week.Days[d])
			assert.Equal(t, 0, week.Days[d].Hour())
		}
	}
}

func TestWeekOf_Sunday(t *testing.T) {
	sunday := time.Date(2024, time.June, 16, 22, 0, 0, 0, time.UTC)

	week := WeekOf(sunday)

	assert.Equal(t, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), week.Start)
	assert.Equal(t, 6, week.DayIndex(sunday))
}

func TestWeek_DayIndexOutside(t *testing.T) {
	week := WeekOf(time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, -1, week.DayIndex(time.Date(2024, time.June, 9, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, -1, week.DayIndex(time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, week.DayIndex(time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)))
}

func TestWeek_NextPrev(t *testing.T) {
	week := WeekOf(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC), week.Start)
	assert.Equal(t, time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC), week.Next().Start)
	assert.Equal(t, time.Date(2024, time.December, 23, 0, 0, 0, 0, time.UTC), week.Prev().Start)
	assert.Equal(t, week, week.Next().Prev())
}

func TestNavigator_RoundTrip(t *testing.T) {
	anchors := []time.Time{
		time.Date(2024, time.June, 10, 9, 15, 0, 0, time.UTC),
		time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		time.Date(1969, time.December, 31, 23, 59, 0, 0, time.UTC),
	}

	for _, anchor := range anchors {
		nav := NewNavigator(anchor)
		nav.Prev()
		nav.Next()
		assert.True(t, anchor.Equal(nav.Anchor()), "prev/next: %s", anchor)

		nav.Next()
		nav.Prev()
		assert.True(t, anchor.Equal(nav.Anchor()), "next/prev: %s", anchor)
	}
}

func TestNavigator_Unbounded(t *testing.T) {
	now := time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC)
	nav := NewNavigator(now)

	for i := 0; i < 600; i++ {
		nav.Prev()
	}
	assert.True(t, nav.Anchor().Before(time.Date(2013, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Monday, nav.Week().Start.Weekday())

	nav.Reset(now)
	assert.Equal(t, now, nav.Anchor())
	assert.Equal(t, time.Date(2024, time.June, 19, 10, 0, 0, 0, time.UTC), nav.Next())
}
