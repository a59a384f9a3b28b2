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

func julyContext() report.Context {
	return report.Context{
		EmployeeID:         "emp-1",
		EmployeeName:       "Anna Berg",
		Year:               2024,
		Month:              time.July,
		DailyContractHours: 8,
		Today:              calendar.NewDate(2024, 7, 10),
	}
}

func dayOf(t *testing.T, r report.MonthlyReport, d calendar.Date) report.DayRecord {
	t.Helper()
	for _, rec := range r.DailyRecords {
		if rec.Date == d {
			return rec
		}
	}
	t.Fatalf("no record for %s", d)
	return report.DayRecord{}
}

func weekOf(t *testing.T, r report.MonthlyReport, d calendar.Date) report.WeekRecord {
	t.Helper()
	for _, w := range r.WeeklySchedule {
		if w.WeekStartDate == d.WeekStart() {
			return w
		}
	}
	t.Fatalf("no week for %s", d)
	return report.WeekRecord{}
}

func TestComputeMonthlyReport_NoEvents(t *testing.T) {
	r, err := ComputeMonthlyReport(julyContext(), nil)
	require.NoError(t, err)

	assert.Equal(t, 184.0, r.ContractBaseline.TotalContractHours)
	assert.Equal(t, 23, r.ContractBaseline.WorkingDays)
	assert.Zero(t, r.TotalPlannedHours)
	assert.Equal(t, -184.0, r.HoursDifference)
	assert.Zero(t, r.AverageHoursPerWeek)
	assert.Len(t, r.DailyRecords, 31)
	assert.Len(t, r.WeeklySchedule, 5)
	assert.Equal(t, 5, r.WeeksInMonth)
	assert.Empty(t, r.Warnings)
	assert.Equal(t, "July", r.MonthName)
	assert.Equal(t, 8, r.Summary.Weekends)
	assert.Equal(t, 23, r.Summary.DayOffs)
	for _, w := range r.WeeklySchedule {
		assert.Zero(t, w.PlannedHours)
	}
}

func TestComputeMonthlyReport_MondayShift(t *testing.T) {
	monday := calendar.NewDate(2024, 7, 1)
	r, err := ComputeMonthlyReport(julyContext(), []event.Event{
		shift("e1", ts(2024, 7, 1, 8, 0), ts(2024, 7, 1, 16, 0), "Counter"),
	})
	require.NoError(t, err)

	rec := dayOf(t, r, monday)
	assert.Equal(t, report.StatusWork, rec.Status)
	assert.Equal(t, "08:00 - 16:00", rec.Display)
	assert.Equal(t, 8.0, weekOf(t, r, monday).PlannedHours)
	assert.Equal(t, 8.0, r.TotalPlannedHours)
	assert.Equal(t, 8.0, r.AverageHoursPerWeek)
	assert.Equal(t, 5, r.WeeksInMonth)
	assert.Equal(t, -176.0, r.HoursDifference)
	require.NotNil(t, r.Summary.FirstWorkDay)
	assert.Equal(t, monday, *r.Summary.FirstWorkDay)
}

func TestComputeMonthlyReport_PaidLeaveCountsContractRate(t *testing.T) {
	tuesday := calendar.NewDate(2024, 7, 2)
	r, err := ComputeMonthlyReport(julyContext(), []event.Event{leaveOn("l1", tuesday, "Sick leave")})
	require.NoError(t, err)

	rec := dayOf(t, r, tuesday)
	assert.Equal(t, report.StatusLeave, rec.Status)
	assert.Equal(t, "Sick leave", rec.Display)
	assert.Equal(t, 8.0, rec.Hours)
	assert.Equal(t, 8.0, weekOf(t, r, tuesday).PlannedHours)
	assert.Equal(t, 1, r.Summary.PaidLeaveDays)
}

func TestComputeMonthlyReport_UnpaidLeaveCountsNothing(t *testing.T) {
	tuesday := calendar.NewDate(2024, 7, 2)
	r, err := ComputeMonthlyReport(julyContext(), []event.Event{leaveOn("l1", tuesday, "Unpaid leave")})
	require.NoError(t, err)

	rec := dayOf(t, r, tuesday)
	assert.Equal(t, report.StatusLeave, rec.Status)
	assert.Equal(t, "Unpaid leave", rec.Display)
	assert.Zero(t, rec.Hours)
	assert.Zero(t, weekOf(t, r, tuesday).PlannedHours)
	assert.Equal(t, 1, r.Summary.LeaveDays)
	assert.Zero(t, r.Summary.PaidLeaveDays)
}

func TestComputeMonthlyReport_SaturdayShift(t *testing.T) {
	saturday := calendar.NewDate(2024, 7, 6)
	r, err := ComputeMonthlyReport(julyContext(), []event.Event{
		shift("e1", ts(2024, 7, 6, 9, 0), ts(2024, 7, 6, 13, 0), "Counter"),
	})
	require.NoError(t, err)

	rec := dayOf(t, r, saturday)
	assert.Equal(t, report.StatusWork, rec.Status)
	assert.Equal(t, "09:00 - 13:00", rec.Display)
	assert.Equal(t, 4.0, rec.Hours)
	assert.Equal(t, 7, r.Summary.Weekends)
}

func TestComputeMonthlyReport_WeeksSumToTotal(t *testing.T) {
	events := []event.Event{
		shift("e1", ts(2024, 7, 1, 8, 0), ts(2024, 7, 1, 16, 0), "Counter"),
		shift("e2", ts(2024, 7, 3, 10, 0), ts(2024, 7, 3, 14, 15), "Counter"),
		leaveOn("l1", calendar.NewDate(2024, 7, 9), "Paid leave"),
		leaveOn("l2", calendar.NewDate(2024, 7, 10), "Day off"),
		shift("e3", ts(2024, 7, 20, 9, 0), ts(2024, 7, 20, 13, 30), "Inventory"),
		shift("e4", ts(2024, 7, 31, 7, 45), ts(2024, 7, 31, 15, 0), "Counter"),
		// Outside the month; must not leak into the boundary week.
		shift("e5", ts(2024, 8, 1, 8, 0), ts(2024, 8, 1, 16, 0), "Counter"),
	}
	r, err := ComputeMonthlyReport(julyContext(), events)
	require.NoError(t, err)

	var weekly, daily float64
	for _, w := range r.WeeklySchedule {
		weekly += w.PlannedHours
	}
	for _, d := range r.DailyRecords {
		daily += d.Hours
	}
	assert.InDelta(t, r.TotalPlannedHours, weekly, 0.001)
	assert.InDelta(t, r.TotalPlannedHours, daily, 0.001)
	assert.Equal(t, 32.0, r.TotalPlannedHours)

	last := r.WeeklySchedule[len(r.WeeklySchedule)-1]
	assert.Equal(t, calendar.NewDate(2024, 7, 29), last.WeekStartDate)
	assert.Equal(t, 3, last.InMonthDays)
	assert.Equal(t, 7.25, last.PlannedHours)
	assert.Equal(t, 24.0, last.ContractHours)
}

func TestComputeMonthlyReport_AverageSkipsEmptyWeeks(t *testing.T) {
	r, err := ComputeMonthlyReport(julyContext(), []event.Event{
		shift("e1", ts(2024, 7, 1, 8, 0), ts(2024, 7, 1, 16, 0), "Counter"),
		shift("e2", ts(2024, 7, 15, 8, 0), ts(2024, 7, 15, 12, 0), "Counter"),
	})
	require.NoError(t, err)

	assert.Equal(t, 12.0, r.TotalPlannedHours)
	assert.Equal(t, 6.0, r.AverageHoursPerWeek)
	assert.Equal(t, 5, r.WeeksInMonth)
	assert.Len(t, r.WeeklySchedule, 5)
}

func TestComputeMonthlyReport_Idempotent(t *testing.T) {
	events := []event.Event{
		shift("e1", ts(2024, 7, 1, 8, 0), ts(2024, 7, 1, 16, 0), "Counter"),
		leaveOn("l1", calendar.NewDate(2024, 7, 2), "Sabbatical"),
		leaveOn("l2", calendar.NewDate(2024, 7, 3), "Paid leave"),
		leaveOn("l3", calendar.NewDate(2024, 7, 3), "Sick leave"),
	}
	first, err := ComputeMonthlyReport(julyContext(), events)
	require.NoError(t, err)
	second, err := ComputeMonthlyReport(julyContext(), events)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeMonthlyReport_Warnings(t *testing.T) {
	rc := julyContext()
	rc.DailyContractHours = 0
	r, err := ComputeMonthlyReport(rc, []event.Event{
		{ID: "broken", EmployeeID: "emp-1", Start: ts(2024, 7, 4, 8, 0)},
		leaveOn("l1", calendar.NewDate(2024, 7, 2), "Sabbatical"),
	})
	require.NoError(t, err)

	assert.Equal(t, 8.0, r.Context.DailyContractHours)
	assert.Equal(t, 184.0, r.ContractBaseline.TotalContractHours)
	require.Len(t, r.Warnings, 3)
	assert.Contains(t, r.Warnings[0], "default")
	assert.Contains(t, r.Warnings[1], "broken")
	assert.Contains(t, r.Warnings[2], "Sabbatical")

	assert.Zero(t, dayOf(t, r, calendar.NewDate(2024, 7, 2)).Hours)
	assert.Equal(t, report.StatusDayOff, dayOf(t, r, calendar.NewDate(2024, 7, 4)).Status)
}

func TestComputeMonthlyReport_CurrentWeek(t *testing.T) {
	r, err := ComputeMonthlyReport(julyContext(), nil)
	require.NoError(t, err)

	for _, w := range r.WeeklySchedule {
		assert.Equal(t, w.WeekStartDate == calendar.NewDate(2024, 7, 8), w.IsCurrentWeek)
	}
}

func TestComputeMonthlyReport_InvalidPeriod(t *testing.T) {
	rc := julyContext()
	rc.Month = 14
	_, err := ComputeMonthlyReport(rc, nil)
	assert.ErrorIs(t, err, report.ErrInvalidPeriod)
}
