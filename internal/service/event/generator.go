package event

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/event"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/calendar"
	"github.com/google/uuid"
)

// Generated shifts run Monday to Friday from generatedStartHour for the
// employee's daily contract hours.
const (
	generatedActivity  = "Shift"
	generatedStartHour = 8
	weekdayRule        = "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR"
)

// GenerateMonth implements event.EventService. Generation runs in one
// transaction and is idempotent: a second run finds every weekday taken.
func (s *EventServiceImpl) GenerateMonth(ctx context.Context, req event.GenerateScheduleRequest) (event.GenerationResult, error) {
	if err := req.Validate(); err != nil {
		return event.GenerationResult{}, err
	}
	first, last := req.Bounds()

	var (
		result  event.GenerationResult
		created []event.Event
	)
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		result = event.GenerationResult{Year: req.Year, Month: req.Month, Employees: []event.EmployeeGeneration{}}
		created = nil

		employees, err := s.employeeRepo.ListAll(txCtx)
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}

		for _, emp := range employees {
			gen, events, err := s.generateForEmployee(txCtx, emp, first, last)
			if err != nil {
				return err
			}
			result.Employees = append(result.Employees, gen)
			result.GeneratedShifts += gen.Generated
			result.SkippedDays += len(gen.Skipped)
			created = append(created, events...)
		}
		return nil
	})
	if err != nil {
		return event.GenerationResult{}, err
	}

	s.notifyEach(ctx, actionCreated, created)

	slog.Info("monthly schedule generated",
		"year", req.Year,
		"month", req.Month,
		"employees", len(result.Employees),
		"generated", result.GeneratedShifts,
		"skipped", result.SkippedDays,
	)
	return result, nil
}

// generateForEmployee stores a shift on every free weekday of [first, last]
// that passes the labor rules. All of an employee's shifts share a series id.
func (s *EventServiceImpl) generateForEmployee(ctx context.Context, emp employee.Employee, first, last calendar.Date) (event.EmployeeGeneration, []event.Event, error) {
	gen := event.EmployeeGeneration{EmployeeID: emp.ID, Skipped: []string{}}

	hours := min(emp.ContractHours(), maxDailyHours)
	spans, err := expandSeries(event.CreateSeriesRequest{
		EmployeeID: emp.ID,
		Activity:   generatedActivity,
		StartTime:  fmt.Sprintf("%02d:00", generatedStartHour),
		EndTime:    fmt.Sprintf("%02d:00", generatedStartHour+hours),
		RRule:      weekdayRule,
		From:       first.String(),
		Until:      last.String(),
	})
	if err != nil {
		return gen, nil, err
	}

	from, _ := rulesWindow(first)
	_, to := rulesWindow(last)
	existing, err := s.eventRepo.ListByEmployee(ctx, emp.ID, from, to)
	if err != nil {
		return gen, nil, fmt.Errorf("failed to load existing events: %w", err)
	}
	taken := make(map[calendar.Date]bool, len(existing))
	for _, e := range existing {
		taken[e.Day()] = true
	}
	others := timedShifts(existing, "")

	var accepted []shiftSpan
	for _, span := range spans {
		day := span.day()
		if taken[day] {
			gen.Skipped = append(gen.Skipped, fmt.Sprintf("%s: already scheduled", day))
			continue
		}
		if violations := checkShiftRules(emp, span, others); len(violations) > 0 {
			for _, msg := range violations {
				gen.Skipped = append(gen.Skipped, fmt.Sprintf("%s: %s", day, msg))
			}
			continue
		}
		accepted = append(accepted, span)
		others = append(others, span)
	}
	if len(accepted) == 0 {
		return gen, nil, nil
	}

	seriesUUID, err := uuid.NewV7()
	if err != nil {
		return gen, nil, fmt.Errorf("failed to generate series id: %w", err)
	}
	seriesID := seriesUUID.String()
	activity := generatedActivity

	events := make([]event.Event, 0, len(accepted))
	for _, span := range accepted {
		end := span.end
		e, err := s.eventRepo.Create(ctx, event.Event{
			EmployeeID:    emp.ID,
			Start:         span.start,
			End:           &end,
			Activity:      &activity,
			SeriesID:      &seriesID,
			AutoGenerated: true,
		})
		if err != nil {
			return gen, nil, err
		}
		events = append(events, e)
	}

	gen.SeriesID = &seriesID
	gen.Generated = len(events)
	return gen, events, nil
}

// DeleteGenerated implements event.EventService. Manually created events are kept.
func (s *EventServiceImpl) DeleteGenerated(ctx context.Context, req event.GenerateScheduleRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	first, last := req.Bounds()

	var deleted []event.Event
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		deleted, err = s.eventRepo.DeleteGenerated(txCtx, first, last)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.notifyEach(ctx, actionDeleted, deleted)
	slog.Info("generated shifts deleted", "year", req.Year, "month", req.Month, "deleted", len(deleted))
	return len(deleted), nil
}

// Statistics implements event.EventService.
func (s *EventServiceImpl) Statistics(ctx context.Context, req event.GenerateScheduleRequest) (event.GenerationStatistics, error) {
	if err := req.Validate(); err != nil {
		return event.GenerationStatistics{}, err
	}
	first, last := req.Bounds()

	employees, err := s.employeeRepo.ListAll(ctx)
	if err != nil {
		return event.GenerationStatistics{}, fmt.Errorf("failed to list employees: %w", err)
	}

	stats := event.GenerationStatistics{Year: req.Year, Month: req.Month, Employees: len(employees)}
	for d := first; !d.After(last); d = d.AddDays(1) {
		if !d.IsWeekend() {
			stats.WorkingDays++
		}
	}

	covered := 0
	for _, emp := range employees {
		events, err := s.eventRepo.ListByEmployee(ctx, emp.ID, first, last)
		if err != nil {
			return event.GenerationStatistics{}, fmt.Errorf("failed to list events: %w", err)
		}

		days := make(map[calendar.Date]bool)
		for _, e := range events {
			switch {
			case e.IsLeave():
				stats.LeaveDays++
			case e.AutoGenerated:
				stats.GeneratedShifts++
				if e.End != nil {
					stats.GeneratedShiftHours += e.End.Sub(e.Start).Hours()
				}
			default:
				stats.ManualShifts++
			}
			if !e.Day().IsWeekend() {
				days[e.Day()] = true
			}
		}
		covered += len(days)
	}

	stats.GeneratedShiftHours = math.Round(stats.GeneratedShiftHours*100) / 100
	if possible := stats.WorkingDays * stats.Employees; possible > 0 {
		stats.Coverage = math.Round(float64(covered)/float64(possible)*1000) / 10
	}
	return stats, nil
}
