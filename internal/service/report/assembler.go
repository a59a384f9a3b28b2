package report

import (
	"fmt"
	"math"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/event"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/report"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/calendar"
)

// ComputeMonthlyReport derives the monthly hours reconciliation from raw
// events. It is pure: identical inputs give identical reports. Malformed
// events and unknown leave labels are reported as warnings, never as errors.
func ComputeMonthlyReport(rc report.Context, events []event.Event) (report.MonthlyReport, error) {
	if err := checkPeriod(rc.Year, rc.Month); err != nil {
		return report.MonthlyReport{}, err
	}

	warnings := []string{}
	if rc.DailyContractHours <= 0 {
		warnings = append(warnings, fmt.Sprintf("daily contract hours missing, using default of %d", employee.DefaultDailyContractHours))
		rc.DailyContractHours = employee.DefaultDailyContractHours
	}

	baseline, err := ComputeBaseline(rc.DailyContractHours, rc.Year, rc.Month)
	if err != nil {
		return report.MonthlyReport{}, err
	}

	entries, decodeWarnings := DecodeEvents(events)
	warnings = append(warnings, decodeWarnings...)

	first, last := calendar.MonthBounds(rc.Year, rc.Month)
	days, dayWarnings := ResolveRange(first, last, entries, rc.DailyContractHours)
	warnings = append(warnings, dayWarnings...)

	weeks := AggregateWeeks(rc.Year, rc.Month, days, rc.Today, rc.DailyContractHours)

	var total float64
	for _, d := range days {
		total += d.Hours
	}
	total = roundHours(total)

	activeWeeks := 0
	for _, w := range weeks {
		if w.PlannedHours > 0 {
			activeWeeks++
		}
	}
	var average float64
	if activeWeeks > 0 {
		average = roundHours(total / float64(activeWeeks))
	}

	return report.MonthlyReport{
		Context:             rc,
		EmployeeID:          rc.EmployeeID,
		Year:                rc.Year,
		Month:               int(rc.Month),
		MonthName:           calendar.MonthName(rc.Month),
		WeeklySchedule:      weeks,
		DailyRecords:        days,
		ContractBaseline:    baseline,
		TotalPlannedHours:   total,
		HoursDifference:     roundHours(total - baseline.TotalContractHours),
		AverageHoursPerWeek: average,
		WeeksInMonth:        len(weeks),
		Summary:             summarize(days),
		Warnings:            warnings,
	}, nil
}

func summarize(days []report.DayRecord) report.Summary {
	var s report.Summary
	for i := range days {
		d := days[i]
		switch d.Status {
		case report.StatusWeekend:
			s.Weekends++
		case report.StatusLeave:
			s.LeaveDays++
			if d.PaidLeave {
				s.PaidLeaveDays++
			}
		}
		if d.IsDayOff {
			s.DayOffs++
		}
		if d.IsWorkDay {
			s.WorkDays++
			if s.FirstWorkDay == nil {
				first := d.Date
				s.FirstWorkDay = &first
			}
			lastDay := d.Date
			s.LastWorkDay = &lastDay
		}
	}
	if len(days) > 0 {
		s.WorkPercentage = math.Round(float64(s.WorkDays)/float64(len(days))*1000) / 10
	}
	return s
}
