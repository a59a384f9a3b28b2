package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStart(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2024-07-01", "2024-07-01"}, // Monday
		{"2024-07-03", "2024-07-01"},
		{"2024-07-07", "2024-07-01"}, // Sunday
		{"2024-07-08", "2024-07-08"},
		{"2024-03-01", "2024-02-26"}, // crosses month
		{"2025-01-01", "2024-12-30"}, // crosses year
	}
	for _, c := range cases {
		d, err := ParseDate(c.date)
		require.NoError(t, err)
		assert.Equal(t, c.want, d.WeekStart().String(), c.date)
		assert.Equal(t, time.Monday, d.WeekStart().Weekday())
		assert.Equal(t, time.Sunday, d.WeekEnd().Weekday())
	}
}

func TestSameWeek(t *testing.T) {
	assert.True(t, SameWeek(NewDate(2024, 7, 1), NewDate(2024, 7, 7)))
	assert.False(t, SameWeek(NewDate(2024, 7, 7), NewDate(2024, 7, 8)))
	assert.True(t, SameWeek(NewDate(2024, 12, 31), NewDate(2025, 1, 5)))
}

func TestDaysInMonth_LeapYears(t *testing.T) {
	cases := []struct {
		year int
		want int
	}{
		{2024, 29},
		{2023, 28},
		{1900, 28},
		{2000, 29},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DaysInMonth(c.year, time.February), "year %d", c.year)
	}
	assert.Equal(t, 31, DaysInMonth(2024, time.July))
	assert.Equal(t, 30, DaysInMonth(2024, time.September))
}

func TestAddDays(t *testing.T) {
	d := NewDate(2024, 2, 28)
	assert.Equal(t, NewDate(2024, 2, 29), d.AddDays(1))
	assert.Equal(t, NewDate(2024, 3, 1), d.AddDays(2))
	assert.Equal(t, NewDate(2023, 12, 31), NewDate(2024, 1, 1).AddDays(-1))
	assert.Equal(t, 2, d.DaysUntil(d.AddDays(2)))
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, NewDate(2024, 7, 6).IsWeekend())
	assert.True(t, NewDate(2024, 7, 7).IsWeekend())
	assert.False(t, NewDate(2024, 7, 8).IsWeekend())
}

func TestISOWeek(t *testing.T) {
	year, week := NewDate(2024, 7, 1).ISOWeek()
	assert.Equal(t, 2024, year)
	assert.Equal(t, 27, week)

	year, week = NewDate(2024, 12, 30).ISOWeek()
	assert.Equal(t, 2025, year)
	assert.Equal(t, 1, week)
}

func TestDateOf_KeepsWallClock(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	ts := time.Date(2024, 7, 1, 1, 30, 0, 0, loc)
	assert.Equal(t, NewDate(2024, 7, 1), DateOf(ts))
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("2024-13-01")
	assert.Error(t, err)
	_, err = ParseDate("01.07.2024")
	assert.Error(t, err)
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2024, 7, 1)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-07-01"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d, back)
	assert.Equal(t, "01.07", back.Short())
}

func TestMonthBounds(t *testing.T) {
	first, last := MonthBounds(2024, time.February)
	assert.Equal(t, NewDate(2024, 2, 1), first)
	assert.Equal(t, NewDate(2024, 2, 29), last)
	assert.True(t, NewDate(2024, 2, 15).Between(first, last))
	assert.False(t, NewDate(2024, 3, 1).Between(first, last))
}
