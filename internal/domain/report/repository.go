package report

import (
	"context"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/calendar"
)

// WeeklyScheduleRepository persists weekly snapshots keyed by employee and
// week start.
type WeeklyScheduleRepository interface {
	Upsert(ctx context.Context, s WeeklySnapshot) (WeeklySnapshot, error)
	GetByWeek(ctx context.Context, employeeID string, weekStart calendar.Date) (WeeklySnapshot, error)
	ListByEmployee(ctx context.Context, employeeID string, from, to calendar.Date) ([]WeeklySnapshot, error)
	DeleteByEmployee(ctx context.Context, employeeID string) error
}
