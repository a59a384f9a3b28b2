package report

import (
	"time"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/report"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/calendar"
)

// MonthWeeks returns the Monday of every week that overlaps the month.
func MonthWeeks(year int, month time.Month) []calendar.Date {
	first, last := calendar.MonthBounds(year, month)
	var weeks []calendar.Date
	for ws := first.WeekStart(); !ws.After(last); ws = ws.AddDays(7) {
		weeks = append(weeks, ws)
	}
	return weeks
}

// AggregateWeeks buckets the month's day records into Monday-start weeks.
// Only in-month days contribute, so boundary weeks are never double counted
// across adjacent months. Weeks without hours are kept.
func AggregateWeeks(year int, month time.Month, days []report.DayRecord, today calendar.Date, dailyContractHours float64) []report.WeekRecord {
	first, last := calendar.MonthBounds(year, month)
	starts := MonthWeeks(year, month)

	weeks := make([]report.WeekRecord, len(starts))
	index := make(map[calendar.Date]int, len(starts))
	for i, ws := range starts {
		isoYear, isoWeek := ws.ISOWeek()
		weeks[i] = report.WeekRecord{
			WeekNumber:    isoWeek,
			Year:          isoYear,
			WeekStartDate: ws,
			WeekEndDate:   ws.WeekEnd(),
			IsCurrentWeek: !today.IsZero() && today.WeekStart() == ws,
		}
		index[ws] = i
	}

	for _, d := range days {
		if !d.Date.Between(first, last) {
			continue
		}
		i, ok := index[d.Date.WeekStart()]
		if !ok {
			continue
		}
		w := &weeks[i]
		w.PlannedHours += d.Hours
		w.BreakHours += d.BreakHours
		w.InMonthDays++
		if d.IsWorkDay {
			w.WorkDays++
		}
		if d.IsLeave() {
			w.LeaveDays++
		}
		if !d.Date.IsWeekend() {
			w.ContractHours += dailyContractHours
		}
	}

	for i := range weeks {
		weeks[i].PlannedHours = roundHours(weeks[i].PlannedHours)
		weeks[i].BreakHours = roundHours(weeks[i].BreakHours)
		weeks[i].ContractHours = roundHours(weeks[i].ContractHours)
	}
	return weeks
}
