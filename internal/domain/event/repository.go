package event

import (
	"context"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/calendar"
)

type EventRepository interface {
	Create(ctx context.Context, e Event) (Event, error)
	GetByID(ctx context.Context, id string) (Event, error)
	Update(ctx context.Context, e Event) (Event, error)
	Delete(ctx context.Context, id string) error
	// ListByEmployee returns events whose start date lies in [from, to],
	// ordered by start then id.
	ListByEmployee(ctx context.Context, employeeID string, from, to calendar.Date) ([]Event, error)
	ListBySeries(ctx context.Context, seriesID string) ([]Event, error)
	DeleteBySeries(ctx context.Context, seriesID string) (int64, error)
	// DeleteGenerated removes the auto-generated shifts starting in [from, to]
	// and returns them.
	DeleteGenerated(ctx context.Context, from, to calendar.Date) ([]Event, error)
	// EventDays returns the distinct start dates of an employee's events.
	EventDays(ctx context.Context, employeeID string) ([]calendar.Date, error)
}
