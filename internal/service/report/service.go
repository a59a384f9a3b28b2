package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/event"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/report"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/export"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/sse"
	"github.com/shopspring/decimal"
)

var (
	_ report.ReportService   = (*ReportServiceImpl)(nil)
	_ event.ScheduleListener = (*ReportServiceImpl)(nil)
)

type ReportServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	eventRepo    event.EventRepository
	weeklyRepo   report.WeeklyScheduleRepository
	hub          *sse.Hub
	loc          *time.Location
	now          func() time.Time
}

// NewReportService wires the report service. The result also listens for
// schedule changes to keep weekly snapshots current. hub may be nil.
func NewReportService(
	employeeRepo employee.EmployeeRepository,
	eventRepo event.EventRepository,
	weeklyRepo report.WeeklyScheduleRepository,
	hub *sse.Hub,
	loc *time.Location,
) *ReportServiceImpl {
	if loc == nil {
		loc = time.Local
	}
	return &ReportServiceImpl{
		employeeRepo: employeeRepo,
		eventRepo:    eventRepo,
		weeklyRepo:   weeklyRepo,
		hub:          hub,
		loc:          loc,
		now:          time.Now,
	}
}

func (s *ReportServiceImpl) today() calendar.Date {
	return calendar.DateOf(s.now().In(s.loc))
}

// MonthlyReport implements report.ReportService.
func (s *ReportServiceImpl) MonthlyReport(ctx context.Context, req report.MonthRequest) (report.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReport{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return report.MonthlyReport{}, err
	}

	month := time.Month(req.Month)
	first, last := calendar.MonthBounds(req.Year, month)
	events, err := s.eventRepo.ListByEmployee(ctx, emp.ID, first, last)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to load events: %w", err)
	}

	result, err := ComputeMonthlyReport(report.Context{
		EmployeeID:         emp.ID,
		EmployeeName:       emp.FullName(),
		Year:               req.Year,
		Month:              month,
		DailyContractHours: float64(emp.DailyContractHours),
		Today:              s.today(),
	}, events)
	if err != nil {
		return report.MonthlyReport{}, err
	}

	for _, w := range result.Warnings {
		slog.Warn("monthly report warning", "employee_id", emp.ID, "year", req.Year, "month", req.Month, "warning", w)
	}
	return result, nil
}

// WeeklySchedule implements report.ReportService.
func (s *ReportServiceImpl) WeeklySchedule(ctx context.Context, req report.MonthRequest) (report.WeeklyScheduleResponse, error) {
	r, err := s.MonthlyReport(ctx, req)
	if err != nil {
		return report.WeeklyScheduleResponse{}, err
	}

	return report.WeeklyScheduleResponse{
		EmployeeID:        r.EmployeeID,
		Year:              r.Year,
		Month:             r.Month,
		MonthName:         r.MonthName,
		TotalWeeks:        r.WeeksInMonth,
		WeeklySchedule:    r.WeeklySchedule,
		TotalPlannedHours: r.TotalPlannedHours,
		ContractBaseline:  r.ContractBaseline,
		HoursDifference:   r.HoursDifference,
	}, nil
}

// DailyHours implements report.ReportService.
func (s *ReportServiceImpl) DailyHours(ctx context.Context, req report.MonthRequest) (report.DailyHoursResponse, error) {
	r, err := s.MonthlyReport(ctx, req)
	if err != nil {
		return report.DailyHoursResponse{}, err
	}

	first, last := calendar.MonthBounds(r.Year, time.Month(r.Month))
	return report.DailyHoursResponse{
		EmployeeID:     r.EmployeeID,
		Year:           r.Year,
		Month:          r.Month,
		MonthName:      r.MonthName,
		StartDate:      first,
		EndDate:        last,
		TotalDays:      len(r.DailyRecords),
		DailyWorkHours: r.DailyRecords,
		Statistics:     report.NewDailyStatistics(r.DailyRecords),
		Warnings:       r.Warnings,
	}, nil
}

// DailyHoursForPeriod implements report.ReportService.
func (s *ReportServiceImpl) DailyHoursForPeriod(ctx context.Context, req report.PeriodRequest) (report.DailyHoursResponse, error) {
	start, end, err := req.Parse()
	if err != nil {
		return report.DailyHoursResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return report.DailyHoursResponse{}, err
	}

	events, err := s.eventRepo.ListByEmployee(ctx, emp.ID, start, end)
	if err != nil {
		return report.DailyHoursResponse{}, fmt.Errorf("failed to load events: %w", err)
	}

	rate, warnings := contractRate(emp)
	entries, decodeWarnings := DecodeEvents(events)
	days, dayWarnings := ResolveRange(start, end, entries, rate)
	warnings = append(append(warnings, decodeWarnings...), dayWarnings...)

	return report.DailyHoursResponse{
		EmployeeID:     emp.ID,
		StartDate:      start,
		EndDate:        end,
		TotalDays:      len(days),
		DailyWorkHours: days,
		Statistics:     report.NewDailyStatistics(days),
		Warnings:       warnings,
	}, nil
}

// Recalculate implements report.ReportService.
func (s *ReportServiceImpl) Recalculate(ctx context.Context, employeeID string) (report.RecalculateResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return report.RecalculateResponse{}, err
	}

	days, err := s.eventRepo.EventDays(ctx, employeeID)
	if err != nil {
		return report.RecalculateResponse{}, fmt.Errorf("failed to load event days: %w", err)
	}

	weeks := make([]report.WeeklySnapshotResponse, 0)
	for _, ws := range weekStarts(days) {
		snapshot, err := s.UpdateForDate(ctx, employeeID, ws)
		if err != nil {
			return report.RecalculateResponse{}, err
		}
		weeks = append(weeks, report.NewWeeklySnapshotResponse(snapshot))
	}

	slog.Info("weekly schedules recalculated", "employee_id", employeeID, "weeks", len(weeks))
	return report.RecalculateResponse{
		EmployeeID:        employeeID,
		WeeksRecalculated: len(weeks),
		RecalculatedAt:    s.now().In(s.loc).Format(time.RFC3339),
		Weeks:             weeks,
	}, nil
}

// UpdateForDate implements report.ReportService. The snapshot covers the full
// Monday to Sunday week, regardless of month boundaries.
func (s *ReportServiceImpl) UpdateForDate(ctx context.Context, employeeID string, date calendar.Date) (report.WeeklySnapshot, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return report.WeeklySnapshot{}, err
	}

	weekStart, weekEnd := date.WeekStart(), date.WeekEnd()
	events, err := s.eventRepo.ListByEmployee(ctx, emp.ID, weekStart, weekEnd)
	if err != nil {
		return report.WeeklySnapshot{}, fmt.Errorf("failed to load events: %w", err)
	}

	rate, _ := contractRate(emp)
	entries, _ := DecodeEvents(events)
	days, _ := ResolveRange(weekStart, weekEnd, entries, rate)

	var planned, breaks float64
	for _, d := range days {
		planned += d.Hours
		breaks += d.BreakHours
	}
	plannedHours := decimal.NewFromFloat(planned).Round(2)
	breakHours := decimal.NewFromFloat(breaks).Round(2)

	isoYear, isoWeek := weekStart.ISOWeek()
	snapshot, err := s.weeklyRepo.Upsert(ctx, report.WeeklySnapshot{
		EmployeeID:      emp.ID,
		WeekStartDate:   weekStart,
		WeekNumber:      isoWeek,
		Year:            isoYear,
		PlannedHours:    plannedHours,
		BreakHours:      breakHours,
		ActualWorkHours: plannedHours.Sub(breakHours),
	})
	if err != nil {
		return report.WeeklySnapshot{}, fmt.Errorf("failed to save weekly schedule: %w", err)
	}

	if s.hub != nil {
		s.hub.Publish(emp.ID, sse.Event{
			Event: sse.EventSnapshotUpdated,
			Data:  report.NewWeeklySnapshotResponse(snapshot),
		})
	}
	return snapshot, nil
}

// ScheduleChanged implements event.ScheduleListener. Failures are logged; the
// next recalculation repairs a stale snapshot.
func (s *ReportServiceImpl) ScheduleChanged(ctx context.Context, employeeID string, dates ...calendar.Date) {
	for _, ws := range weekStarts(dates) {
		if _, err := s.UpdateForDate(ctx, employeeID, ws); err != nil {
			slog.Error("failed to update weekly schedule", "employee_id", employeeID, "week_start", ws.String(), "error", err)
		}
	}
}

// RefreshCurrentWeek implements report.ReportService.
func (s *ReportServiceImpl) RefreshCurrentWeek(ctx context.Context) (int, error) {
	employees, err := s.employeeRepo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list employees: %w", err)
	}

	today := s.today()
	updated := 0
	for _, emp := range employees {
		if _, err := s.UpdateForDate(ctx, emp.ID, today); err != nil {
			slog.Error("failed to refresh weekly schedule", "employee_id", emp.ID, "error", err)
			continue
		}
		updated++
	}
	return updated, nil
}

// Stats implements report.ReportService.
func (s *ReportServiceImpl) Stats(ctx context.Context, req report.StatsRequest) (report.StatsResponse, error) {
	if err := req.Validate(); err != nil {
		return report.StatsResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return report.StatsResponse{}, err
	}

	events, err := s.eventRepo.ListByEmployee(ctx, emp.ID, calendar.NewDate(req.Year, time.January, 1), calendar.NewDate(req.Year, time.December, 31))
	if err != nil {
		return report.StatsResponse{}, fmt.Errorf("failed to load events: %w", err)
	}

	resp := report.StatsResponse{
		EmployeeID: emp.ID,
		Year:       req.Year,
		Months:     make([]report.MonthStats, 0, 12),
	}
	today := s.today()
	for m := time.January; m <= time.December; m++ {
		r, err := ComputeMonthlyReport(report.Context{
			EmployeeID:         emp.ID,
			Year:               req.Year,
			Month:              m,
			DailyContractHours: float64(emp.DailyContractHours),
			Today:              today,
		}, events)
		if err != nil {
			return report.StatsResponse{}, err
		}

		resp.Months = append(resp.Months, report.MonthStats{
			Month:           int(m),
			MonthName:       r.MonthName,
			PlannedHours:    r.TotalPlannedHours,
			ContractHours:   r.ContractBaseline.TotalContractHours,
			HoursDifference: r.HoursDifference,
			WorkDays:        r.Summary.WorkDays,
			LeaveDays:       r.Summary.LeaveDays,
		})
		resp.TotalPlannedHours += r.TotalPlannedHours
		resp.TotalContractHours += r.ContractBaseline.TotalContractHours
	}
	resp.TotalPlannedHours = roundHours(resp.TotalPlannedHours)
	resp.TotalContractHours = roundHours(resp.TotalContractHours)
	resp.HoursDifference = roundHours(resp.TotalPlannedHours - resp.TotalContractHours)
	return resp, nil
}

// ExportMonthlyReport implements report.ReportService.
func (s *ReportServiceImpl) ExportMonthlyReport(ctx context.Context, req report.MonthRequest) (report.ExportFile, error) {
	r, err := s.MonthlyReport(ctx, req)
	if err != nil {
		return report.ExportFile{}, err
	}

	file, err := export.MonthlyReportWorkbook(r)
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("failed to export monthly report: %w", err)
	}
	return file, nil
}

func contractRate(emp employee.Employee) (float64, []string) {
	if emp.DailyContractHours <= 0 {
		return employee.DefaultDailyContractHours, []string{
			fmt.Sprintf("daily contract hours missing, using default of %d", employee.DefaultDailyContractHours),
		}
	}
	return float64(emp.DailyContractHours), nil
}

// weekStarts returns the distinct Mondays of dates in first-seen order.
func weekStarts(dates []calendar.Date) []calendar.Date {
	seen := make(map[calendar.Date]bool)
	var weeks []calendar.Date
	for _, d := range dates {
		ws := d.WeekStart()
		if !seen[ws] {
			seen[ws] = true
			weeks = append(weeks, ws)
		}
	}
	return weeks
}
