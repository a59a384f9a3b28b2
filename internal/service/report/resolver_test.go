package report

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/event"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/report"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func shift(id string, start, end time.Time, activity string) event.Event {
	return event.Event{ID: id, EmployeeID: "emp-1", Start: start, End: &end, Activity: strPtr(activity)}
}

func leaveOn(id string, day calendar.Date, label string) event.Event {
	return event.Event{ID: id, EmployeeID: "emp-1", Start: day.Time(), LeaveType: strPtr(label)}
}

func entriesOf(t *testing.T, events ...event.Event) []event.Entry {
	t.Helper()
	entries, warnings := DecodeEvents(events)
	require.Empty(t, warnings)
	return entries
}

func TestResolveDay_WorkInterval(t *testing.T) {
	day := calendar.NewDate(2024, 7, 1)
	rec, warnings := ResolveDay(day, entriesOf(t, shift("e1", ts(2024, 7, 1, 8, 0), ts(2024, 7, 1, 16, 0), "Counter")), 8)

	assert.Empty(t, warnings)
	assert.Equal(t, report.StatusWork, rec.Status)
	assert.True(t, rec.IsWorkDay)
	assert.False(t, rec.IsDayOff)
	require.NotNil(t, rec.StartTime)
	require.NotNil(t, rec.EndTime)
	assert.Equal(t, "08:00", *rec.StartTime)
	assert.Equal(t, "16:00", *rec.EndTime)
	assert.Equal(t, 8.0, rec.Hours)
	assert.Equal(t, 0.5, rec.BreakHours)
	assert.Equal(t, 7.5, rec.NetHours())
	assert.Equal(t, "Monday", rec.DayOfWeek)
}

func TestResolveDay_WeekendShiftWinsOverWeekend(t *testing.T) {
	saturday := calendar.NewDate(2024, 7, 6)
	rec, _ := ResolveDay(saturday, entriesOf(t, shift("e1", ts(2024, 7, 6, 9, 0), ts(2024, 7, 6, 13, 0), "Counter")), 8)

	assert.Equal(t, report.StatusWork, rec.Status)
	assert.Equal(t, "09:00", *rec.StartTime)
	assert.Equal(t, "13:00", *rec.EndTime)
	assert.Equal(t, 4.0, rec.Hours)
	assert.Zero(t, rec.BreakHours)
	assert.NotEqual(t, report.DisplayWeekend, rec.Display)
}

func TestResolveDay_LeaveOverridesShift(t *testing.T) {
	day := calendar.NewDate(2024, 7, 2)
	rec, _ := ResolveDay(day, entriesOf(t,
		shift("e1", ts(2024, 7, 2, 8, 0), ts(2024, 7, 2, 16, 0), "Counter"),
		leaveOn("e2", day, "Sick leave"),
	), 6)

	assert.Equal(t, report.StatusLeave, rec.Status)
	require.NotNil(t, rec.LeaveType)
	assert.Equal(t, "Sick leave", *rec.LeaveType)
	assert.Equal(t, "Sick leave", rec.Display)
	assert.False(t, rec.IsWorkDay)
	assert.False(t, rec.IsDayOff)
	assert.True(t, rec.PaidLeave)
	assert.Equal(t, 6.0, rec.Hours)
}

func TestResolveDay_LeaveKinds(t *testing.T) {
	day := calendar.NewDate(2024, 7, 3)
	cases := []struct {
		label string
		hours float64
		warn  bool
	}{
		{"Paid leave", 8, false},
		{"Sick leave", 8, false},
		{"Maternity leave", 8, false},
		{"Paternity leave", 8, false},
		{"Day off", 0, false},
		{"Unpaid leave", 0, false},
		{"sick leave", 0, true},
		{"Sabbatical", 0, true},
	}
	for _, c := range cases {
		rec, warnings := ResolveDay(day, entriesOf(t, leaveOn("l1", day, c.label)), 8)
		assert.Equal(t, report.StatusLeave, rec.Status, c.label)
		assert.Equal(t, c.hours, rec.Hours, c.label)
		if c.warn {
			assert.Len(t, warnings, 1, c.label)
		} else {
			assert.Empty(t, warnings, c.label)
		}
	}
}

func TestResolveDay_Markers(t *testing.T) {
	day := calendar.NewDate(2024, 7, 4)

	workMarker := event.Event{ID: "m1", Start: day.Time(), Activity: strPtr("Inventory")}
	rec, _ := ResolveDay(day, entriesOf(t, workMarker), 8)
	assert.Equal(t, report.StatusWorkMarker, rec.Status)
	assert.Equal(t, report.DisplayWorkDay, rec.Display)
	assert.True(t, rec.IsWorkDay)
	assert.Nil(t, rec.StartTime)
	assert.Zero(t, rec.Hours)

	offMarker := event.Event{ID: "m2", Start: day.Time(), Activity: strPtr("Day off")}
	rec, _ = ResolveDay(day, entriesOf(t, offMarker), 8)
	assert.Equal(t, report.StatusDayOff, rec.Status)
	assert.True(t, rec.IsDayOff)

	rec, _ = ResolveDay(day, entriesOf(t, offMarker, workMarker), 8)
	assert.Equal(t, report.StatusWorkMarker, rec.Status)
}

func TestResolveDay_EmptyDays(t *testing.T) {
	rec, _ := ResolveDay(calendar.NewDate(2024, 7, 7), nil, 8)
	assert.Equal(t, report.StatusWeekend, rec.Status)
	assert.Equal(t, report.DisplayWeekend, rec.Display)
	assert.False(t, rec.IsDayOff)
	assert.False(t, rec.IsWorkDay)

	rec, _ = ResolveDay(calendar.NewDate(2024, 7, 8), nil, 8)
	assert.Equal(t, report.StatusDayOff, rec.Status)
	assert.Equal(t, report.DisplayDayOff, rec.Display)
	assert.True(t, rec.IsDayOff)
}

func TestResolveDay_SplitShiftsAndNonPositiveDuration(t *testing.T) {
	day := calendar.NewDate(2024, 7, 9)
	rec, _ := ResolveDay(day, entriesOf(t,
		shift("b", ts(2024, 7, 9, 14, 0), ts(2024, 7, 9, 18, 30), "Counter"),
		shift("a", ts(2024, 7, 9, 7, 0), ts(2024, 7, 9, 10, 0), "Stock"),
	), 8)
	assert.Equal(t, "07:00", *rec.StartTime)
	assert.Equal(t, "18:30", *rec.EndTime)
	assert.Equal(t, 7.5, rec.Hours)
	assert.Equal(t, "Stock", *rec.Activity)

	overnight := shift("n", ts(2024, 7, 9, 22, 0), ts(2024, 7, 10, 6, 0), "Night")
	rec, _ = ResolveDay(day, entriesOf(t, overnight), 8)
	assert.Equal(t, report.StatusWork, rec.Status)
	assert.Zero(t, rec.Hours)
}

func TestResolveDay_TruncatesSeconds(t *testing.T) {
	day := calendar.NewDate(2024, 7, 10)
	start := time.Date(2024, 7, 10, 8, 15, 59, 0, time.UTC)
	end := time.Date(2024, 7, 10, 12, 45, 30, 0, time.UTC)
	rec, _ := ResolveDay(day, entriesOf(t, shift("s", start, end, "Counter")), 8)
	assert.Equal(t, "08:15", *rec.StartTime)
	assert.Equal(t, "12:45", *rec.EndTime)
	assert.Equal(t, 4.5, rec.Hours)
}

func TestResolveDay_ExactlyOneClassification(t *testing.T) {
	first, last := calendar.MonthBounds(2024, time.July)
	entries := entriesOf(t,
		shift("e1", ts(2024, 7, 1, 8, 0), ts(2024, 7, 1, 16, 0), "Counter"),
		leaveOn("e2", calendar.NewDate(2024, 7, 2), "Paid leave"),
		shift("e3", ts(2024, 7, 6, 9, 0), ts(2024, 7, 6, 13, 0), "Counter"),
	)
	days, _ := ResolveRange(first, last, entries, 8)
	require.Len(t, days, 31)
	for _, d := range days {
		assert.NotEmpty(t, d.Status, d.Date.String())
		assert.False(t, d.IsWorkDay && d.IsDayOff, d.Date.String())
		if d.Status == report.StatusLeave {
			assert.False(t, d.IsWorkDay || d.IsDayOff)
		}
	}
}

func TestDecodeEvents_SkipsMalformed(t *testing.T) {
	events := []event.Event{
		{ID: "no-start", Activity: strPtr("Counter")},
		{ID: "no-kind", Start: ts(2024, 7, 1, 8, 0)},
		shift("ok", ts(2024, 7, 1, 8, 0), ts(2024, 7, 1, 12, 0), "Counter"),
	}
	entries, warnings := DecodeEvents(events)
	assert.Len(t, entries, 1)
	assert.Len(t, warnings, 2)
	assert.Equal(t, "ok", entries[0].EntryID())
}

func TestResolveDay_ShiftEndingAtMidnight(t *testing.T) {
	day := calendar.NewDate(2024, 7, 1)
	rec, _ := ResolveDay(day, entriesOf(t, shift("late", ts(2024, 7, 1, 16, 0), ts(2024, 7, 2, 0, 0), "Closing")), 8)

	assert.Equal(t, report.StatusWork, rec.Status)
	assert.Equal(t, "16:00", *rec.StartTime)
	assert.Equal(t, "24:00", *rec.EndTime)
	assert.Equal(t, "16:00 - 24:00", rec.Display)
	assert.Equal(t, 8.0, rec.Hours)
	assert.Equal(t, 0.5, rec.BreakHours)

	r, err := ComputeMonthlyReport(julyContext(), []event.Event{
		shift("late", ts(2024, 7, 1, 16, 0), ts(2024, 7, 2, 0, 0), "Closing"),
	})
	require.NoError(t, err)
	assert.Equal(t, 8.0, r.TotalPlannedHours)
	assert.Equal(t, 8.0, r.WeeklySchedule[0].PlannedHours)
	assert.Equal(t, report.StatusDayOff, dayOf(t, r, calendar.NewDate(2024, 7, 2)).Status)
}

func TestResolveDay_BreakPerShift(t *testing.T) {
	day := calendar.NewDate(2024, 7, 2)

	rec, _ := ResolveDay(day, entriesOf(t,
		shift("a", ts(2024, 7, 2, 6, 0), ts(2024, 7, 2, 10, 0), "Stock"),
		shift("b", ts(2024, 7, 2, 14, 0), ts(2024, 7, 2, 18, 0), "Counter"),
	), 8)
	assert.Equal(t, 8.0, rec.Hours)
	assert.Zero(t, rec.BreakHours)

	rec, _ = ResolveDay(day, entriesOf(t,
		shift("a", ts(2024, 7, 2, 0, 0), ts(2024, 7, 2, 7, 0), "Night"),
		shift("b", ts(2024, 7, 2, 12, 0), ts(2024, 7, 2, 19, 0), "Counter"),
	), 8)
	assert.Equal(t, 14.0, rec.Hours)
	assert.Equal(t, 1.0, rec.BreakHours)

	rec, _ = ResolveDay(day, entriesOf(t, shift("c", ts(2024, 7, 2, 8, 0), ts(2024, 7, 2, 14, 0), "Counter")), 8)
	assert.Equal(t, 6.0, rec.Hours)
	assert.Zero(t, rec.BreakHours)
}
