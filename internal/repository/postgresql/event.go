package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/event"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const eventColumns = `id, employee_id, start_at, end_at, activity, leave_type, series_id, auto_generated, created_at, updated_at`

type eventRepositoryImpl struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) event.EventRepository {
	return &eventRepositoryImpl{db: db}
}

func scanEvent(row pgx.Row) (event.Event, error) {
	var e event.Event
	err := row.Scan(&e.ID, &e.EmployeeID, &e.Start, &e.End, &e.Activity, &e.LeaveType, &e.SeriesID, &e.AutoGenerated, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func collectEvents(rows pgx.Rows) ([]event.Event, error) {
	var events []event.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// Create implements event.EventRepository.
func (r *eventRepositoryImpl) Create(ctx context.Context, e event.Event) (event.Event, error) {
	q := GetQuerier(ctx, r.db)

	if e.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return event.Event{}, fmt.Errorf("failed to generate event id: %w", err)
		}
		e.ID = id.String()
	}

	query := `
		INSERT INTO events (id, employee_id, start_at, end_at, activity, leave_type, series_id, auto_generated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + eventColumns

	created, err := scanEvent(q.QueryRow(ctx, query, e.ID, e.EmployeeID, e.Start, e.End, e.Activity, e.LeaveType, e.SeriesID, e.AutoGenerated))
	if err != nil {
		return event.Event{}, fmt.Errorf("failed to create event: %w", err)
	}
	return created, nil
}

// GetByID implements event.EventRepository.
func (r *eventRepositoryImpl) GetByID(ctx context.Context, id string) (event.Event, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanEvent(q.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrEventNotFound
		}
		return event.Event{}, fmt.Errorf("failed to get event with id %s: %w", id, err)
	}
	return found, nil
}

// Update implements event.EventRepository. The series link is kept as is.
func (r *eventRepositoryImpl) Update(ctx context.Context, e event.Event) (event.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE events
		SET employee_id = $1, start_at = $2, end_at = $3, activity = $4, leave_type = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING ` + eventColumns

	updated, err := scanEvent(q.QueryRow(ctx, query, e.EmployeeID, e.Start, e.End, e.Activity, e.LeaveType, e.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrEventNotFound
		}
		return event.Event{}, fmt.Errorf("failed to update event with id %s: %w", e.ID, err)
	}
	return updated, nil
}

// Delete implements event.EventRepository.
func (r *eventRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return event.ErrEventNotFound
	}
	return nil
}

// ListByEmployee implements event.EventRepository.
func (r *eventRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, from, to calendar.Date) ([]event.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE employee_id = $1 AND start_at >= $2 AND start_at < $3
		ORDER BY start_at ASC, id ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from.Time(), to.AddDays(1).Time())
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// ListBySeries implements event.EventRepository.
func (r *eventRepositoryImpl) ListBySeries(ctx context.Context, seriesID string) ([]event.Event, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+eventColumns+` FROM events WHERE series_id = $1 ORDER BY start_at ASC, id ASC`, seriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to list series events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// DeleteBySeries implements event.EventRepository.
func (r *eventRepositoryImpl) DeleteBySeries(ctx context.Context, seriesID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM events WHERE series_id = $1`, seriesID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete series %s: %w", seriesID, err)
	}
	if tag.RowsAffected() == 0 {
		return 0, event.ErrSeriesNotFound
	}
	return tag.RowsAffected(), nil
}

// DeleteGenerated implements event.EventRepository.
func (r *eventRepositoryImpl) DeleteGenerated(ctx context.Context, from, to calendar.Date) ([]event.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM events
		WHERE auto_generated AND start_at >= $1 AND start_at < $2
		RETURNING ` + eventColumns

	rows, err := q.Query(ctx, query, from.Time(), to.AddDays(1).Time())
	if err != nil {
		return nil, fmt.Errorf("failed to delete generated events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// EventDays implements event.EventRepository.
func (r *eventRepositoryImpl) EventDays(ctx context.Context, employeeID string) ([]calendar.Date, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT DISTINCT start_at::date AS day FROM events WHERE employee_id = $1 ORDER BY day`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list event days: %w", err)
	}
	defer rows.Close()

	var days []calendar.Date
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("failed to scan event day: %w", err)
		}
		days = append(days, calendar.DateOf(day))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return days, nil
}
