package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/report"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const weeklyScheduleColumns = `id, employee_id, week_start_date, week_number, year,
	planned_hours, break_hours, actual_work_hours, created_at, updated_at`

type weeklyScheduleRepositoryImpl struct {
	db *database.DB
}

func NewWeeklyScheduleRepository(db *database.DB) report.WeeklyScheduleRepository {
	return &weeklyScheduleRepositoryImpl{db: db}
}

func scanWeeklySnapshot(row pgx.Row) (report.WeeklySnapshot, error) {
	var (
		s         report.WeeklySnapshot
		weekStart time.Time
	)
	err := row.Scan(
		&s.ID, &s.EmployeeID, &weekStart, &s.WeekNumber, &s.Year,
		&s.PlannedHours, &s.BreakHours, &s.ActualWorkHours, &s.CreatedAt, &s.UpdatedAt,
	)
	s.WeekStartDate = calendar.DateOf(weekStart)
	return s, err
}

// Upsert implements report.WeeklyScheduleRepository.
func (r *weeklyScheduleRepositoryImpl) Upsert(ctx context.Context, s report.WeeklySnapshot) (report.WeeklySnapshot, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return report.WeeklySnapshot{}, fmt.Errorf("failed to generate weekly schedule id: %w", err)
	}

	query := `
		INSERT INTO weekly_schedules (
			id, employee_id, week_start_date, week_number, year,
			planned_hours, break_hours, actual_work_hours
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (employee_id, week_start_date) DO UPDATE SET
			week_number = EXCLUDED.week_number,
			year = EXCLUDED.year,
			planned_hours = EXCLUDED.planned_hours,
			break_hours = EXCLUDED.break_hours,
			actual_work_hours = EXCLUDED.actual_work_hours,
			updated_at = NOW()
		RETURNING ` + weeklyScheduleColumns

	saved, err := scanWeeklySnapshot(q.QueryRow(ctx, query,
		id.String(), s.EmployeeID, s.WeekStartDate.Time(), s.WeekNumber, s.Year,
		s.PlannedHours, s.BreakHours, s.ActualWorkHours,
	))
	if err != nil {
		return report.WeeklySnapshot{}, fmt.Errorf("failed to upsert weekly schedule for %s: %w", s.WeekStartDate, err)
	}
	return saved, nil
}

// GetByWeek implements report.WeeklyScheduleRepository.
func (r *weeklyScheduleRepositoryImpl) GetByWeek(ctx context.Context, employeeID string, weekStart calendar.Date) (report.WeeklySnapshot, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + weeklyScheduleColumns + ` FROM weekly_schedules WHERE employee_id = $1 AND week_start_date = $2`

	found, err := scanWeeklySnapshot(q.QueryRow(ctx, query, employeeID, weekStart.Time()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report.WeeklySnapshot{}, report.ErrSnapshotMissing
		}
		return report.WeeklySnapshot{}, fmt.Errorf("failed to get weekly schedule: %w", err)
	}
	return found, nil
}

// ListByEmployee implements report.WeeklyScheduleRepository.
func (r *weeklyScheduleRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, from, to calendar.Date) ([]report.WeeklySnapshot, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + weeklyScheduleColumns + `
		FROM weekly_schedules
		WHERE employee_id = $1 AND week_start_date BETWEEN $2 AND $3
		ORDER BY week_start_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from.Time(), to.Time())
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly schedules: %w", err)
	}
	defer rows.Close()

	var snapshots []report.WeeklySnapshot
	for rows.Next() {
		s, err := scanWeeklySnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan weekly schedule: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snapshots, nil
}

// DeleteByEmployee implements report.WeeklyScheduleRepository.
func (r *weeklyScheduleRepositoryImpl) DeleteByEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM weekly_schedules WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("failed to delete weekly schedules: %w", err)
	}
	return nil
}
