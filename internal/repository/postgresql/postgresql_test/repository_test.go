package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/event"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/report"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func createEmployee(t *testing.T, repo employee.EmployeeRepository, name, email string) employee.Employee {
	t.Helper()
	e, err := repo.Create(context.Background(), employee.Employee{
		Name:               name,
		Lastname:           "Berg",
		Email:              strPtr(email),
		DailyContractHours: 6,
	})
	require.NoError(t, err)
	return e
}

func TestEmployeeRepository_CRUD(t *testing.T) {
	setup := requireDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	created := createEmployee(t, repo, "Anna", "anna@example.com")
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 6, created.DailyContractHours)

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anna", found.Name)

	exists, err := repo.ExistsByEmail(ctx, "ANNA@example.com", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "anna@example.com", &created.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	found.Position = strPtr("Cashier")
	updated, err := repo.Update(ctx, found)
	require.NoError(t, err)
	assert.Equal(t, "Cashier", *updated.Position)

	list, total, err := repo.List(ctx, employee.EmployeeFilter{Search: strPtr("ann"), Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), employee.ErrEmployeeNotFound)
}

func TestEventRepository_ListAndSeries(t *testing.T) {
	setup := requireDatabase(t)
	ctx := context.Background()
	employees := postgresql.NewEmployeeRepository(setup.DB)
	events := postgresql.NewEventRepository(setup.DB)

	emp := createEmployee(t, employees, "Ben", "ben@example.com")
	series := "0190a3b4-0000-7000-8000-000000000001"

	start := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)
	shift, err := events.Create(ctx, event.Event{EmployeeID: emp.ID, Start: start, End: &end, Activity: strPtr("Counter"), SeriesID: &series})
	require.NoError(t, err)
	assert.True(t, start.Equal(shift.Start))

	_, err = events.Create(ctx, event.Event{EmployeeID: emp.ID, Start: time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC), LeaveType: strPtr("Sick leave")})
	require.NoError(t, err)
	_, err = events.Create(ctx, event.Event{EmployeeID: emp.ID, Start: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), LeaveType: strPtr("Paid leave")})
	require.NoError(t, err)

	july, err := events.ListByEmployee(ctx, emp.ID, calendar.NewDate(2024, 7, 1), calendar.NewDate(2024, 7, 31))
	require.NoError(t, err)
	require.Len(t, july, 2)
	assert.Equal(t, shift.ID, july[0].ID)

	days, err := events.EventDays(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, []calendar.Date{
		calendar.NewDate(2024, 7, 1),
		calendar.NewDate(2024, 7, 31),
		calendar.NewDate(2024, 8, 1),
	}, days)

	inSeries, err := events.ListBySeries(ctx, series)
	require.NoError(t, err)
	assert.Len(t, inSeries, 1)

	deleted, err := events.DeleteBySeries(ctx, series)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	_, err = events.DeleteBySeries(ctx, series)
	assert.ErrorIs(t, err, event.ErrSeriesNotFound)
	_, err = events.GetByID(ctx, shift.ID)
	assert.ErrorIs(t, err, event.ErrEventNotFound)
}

func TestWeeklyScheduleRepository_Upsert(t *testing.T) {
	setup := requireDatabase(t)
	ctx := context.Background()
	emp := createEmployee(t, postgresql.NewEmployeeRepository(setup.DB), "Cleo", "cleo@example.com")
	repo := postgresql.NewWeeklyScheduleRepository(setup.DB)

	week := calendar.NewDate(2024, 7, 1)
	snapshot := report.WeeklySnapshot{
		EmployeeID:      emp.ID,
		WeekStartDate:   week,
		WeekNumber:      27,
		Year:            2024,
		PlannedHours:    decimal.NewFromFloat(32),
		BreakHours:      decimal.NewFromFloat(1.5),
		ActualWorkHours: decimal.NewFromFloat(30.5),
	}
	first, err := repo.Upsert(ctx, snapshot)
	require.NoError(t, err)

	snapshot.PlannedHours = decimal.NewFromFloat(40)
	second, err := repo.Upsert(ctx, snapshot)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.PlannedHours.Equal(decimal.NewFromInt(40)))

	got, err := repo.GetByWeek(ctx, emp.ID, week)
	require.NoError(t, err)
	assert.Equal(t, week, got.WeekStartDate)

	list, err := repo.ListByEmployee(ctx, emp.ID, week, week.AddDays(6))
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.DeleteByEmployee(ctx, emp.ID))
	_, err = repo.GetByWeek(ctx, emp.ID, week)
	assert.ErrorIs(t, err, report.ErrSnapshotMissing)
}

func TestWithTransaction_RollsBack(t *testing.T) {
	setup := requireDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	err := postgresql.WithTransaction(ctx, setup.DB, func(txCtx context.Context) error {
		if _, err := repo.Create(txCtx, employee.Employee{Name: "Dana", Lastname: "Lee", DailyContractHours: 8}); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	_, total, err := repo.List(ctx, employee.EmployeeFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestEventRepository_DeleteGenerated(t *testing.T) {
	setup := requireDatabase(t)
	ctx := context.Background()
	emp := createEmployee(t, postgresql.NewEmployeeRepository(setup.DB), "Eli", "eli@example.com")
	events := postgresql.NewEventRepository(setup.DB)

	create := func(day int, generated bool) event.Event {
		start := time.Date(2024, 7, day, 8, 0, 0, 0, time.UTC)
		end := start.Add(8 * time.Hour)
		e, err := events.Create(ctx, event.Event{EmployeeID: emp.ID, Start: start, End: &end, Activity: strPtr("Shift"), AutoGenerated: generated})
		require.NoError(t, err)
		return e
	}
	generated := create(1, true)
	manual := create(2, false)
	create(31, true)

	assert.True(t, generated.AutoGenerated)
	assert.False(t, manual.AutoGenerated)

	deleted, err := events.DeleteGenerated(ctx, calendar.NewDate(2024, 7, 1), calendar.NewDate(2024, 7, 30))
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, generated.ID, deleted[0].ID)
	assert.Equal(t, emp.ID, deleted[0].EmployeeID)

	left, err := events.ListByEmployee(ctx, emp.ID, calendar.NewDate(2024, 7, 1), calendar.NewDate(2024, 7, 31))
	require.NoError(t, err)
	require.Len(t, left, 2)
	assert.Equal(t, manual.ID, left[0].ID)
}
