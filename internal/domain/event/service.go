package event

import (
	"context"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/calendar"
)

type EventService interface {
	Create(ctx context.Context, req CreateEventRequest) (EventResponse, error)
	GetByID(ctx context.Context, id string) (EventResponse, error)
	List(ctx context.Context, filter EventFilter) ([]EventResponse, error)
	Update(ctx context.Context, req UpdateEventRequest) (EventResponse, error)
	Delete(ctx context.Context, id string) error

	// CreateSeries expands a recurrence rule into individual shifts.
	CreateSeries(ctx context.Context, req CreateSeriesRequest) (SeriesResponse, error)
	DeleteSeries(ctx context.Context, seriesID string) (int64, error)

	// GenerateMonth fills every employee's free weekdays in a month with a
	// shift at their contract rate. Days that already have an entry or would
	// break a labor rule are skipped.
	GenerateMonth(ctx context.Context, req GenerateScheduleRequest) (GenerationResult, error)
	DeleteGenerated(ctx context.Context, req GenerateScheduleRequest) (int, error)
	Statistics(ctx context.Context, req GenerateScheduleRequest) (GenerationStatistics, error)

	// ValidateShift checks a shift against the labor rules without saving it.
	ValidateShift(ctx context.Context, req ValidateEventRequest) (ValidationResult, error)
}

// ScheduleListener is notified after an employee's events change on a date.
type ScheduleListener interface {
	ScheduleChanged(ctx context.Context, employeeID string, dates ...calendar.Date)
}
