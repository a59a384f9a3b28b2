package report

import (
	"context"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/calendar"
)

// ReportService serves the hours reconciliation of an employee.
type ReportService interface {
	// MonthlyReport returns daily records, weekly buckets, baseline and variance
	MonthlyReport(ctx context.Context, req MonthRequest) (MonthlyReport, error)

	WeeklySchedule(ctx context.Context, req MonthRequest) (WeeklyScheduleResponse, error)
	DailyHours(ctx context.Context, req MonthRequest) (DailyHoursResponse, error)
	DailyHoursForPeriod(ctx context.Context, req PeriodRequest) (DailyHoursResponse, error)

	// Recalculate rebuilds every stored weekly snapshot of the employee
	Recalculate(ctx context.Context, employeeID string) (RecalculateResponse, error)

	// UpdateForDate rebuilds the snapshot of the week containing date
	UpdateForDate(ctx context.Context, employeeID string, date calendar.Date) (WeeklySnapshot, error)

	// RefreshCurrentWeek rebuilds this week's snapshot for every employee and
	// returns how many were written
	RefreshCurrentWeek(ctx context.Context) (int, error)

	Stats(ctx context.Context, req StatsRequest) (StatsResponse, error)

	// ExportMonthlyReport renders the monthly report as a spreadsheet
	ExportMonthlyReport(ctx context.Context, req MonthRequest) (ExportFile, error)
}
