package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/event"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/database"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/sse"
	"github.com/google/uuid"
)

const (
	actionCreated = "created"
	actionUpdated = "updated"
	actionDeleted = "deleted"
)

type EventServiceImpl struct {
	tx           database.Transactor
	eventRepo    event.EventRepository
	employeeRepo employee.EmployeeRepository
	hub          *sse.Hub
	listener     event.ScheduleListener
}

// NewEventService wires the event service. hub and listener may be nil.
func NewEventService(
	tx database.Transactor,
	eventRepo event.EventRepository,
	employeeRepo employee.EmployeeRepository,
	hub *sse.Hub,
	listener event.ScheduleListener,
) event.EventService {
	return &EventServiceImpl{
		tx:           tx,
		eventRepo:    eventRepo,
		employeeRepo: employeeRepo,
		hub:          hub,
		listener:     listener,
	}
}

// Create implements event.EventService.
func (s *EventServiceImpl) Create(ctx context.Context, req event.CreateEventRequest) (event.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return event.EventResponse{}, err
	}

	var created event.Event
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		newEvent := req.ToEvent()
		if err := s.enforceRules(txCtx, newEvent, ""); err != nil {
			return err
		}
		var err error
		created, err = s.eventRepo.Create(txCtx, newEvent)
		return err
	})
	if err != nil {
		return event.EventResponse{}, err
	}

	s.notify(ctx, actionCreated, created.EmployeeID, []string{created.ID}, created.Day())
	return event.NewEventResponse(created), nil
}

// GetByID implements event.EventService.
func (s *EventServiceImpl) GetByID(ctx context.Context, id string) (event.EventResponse, error) {
	found, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return event.EventResponse{}, err
	}
	return event.NewEventResponse(found), nil
}

// List implements event.EventService.
func (s *EventServiceImpl) List(ctx context.Context, filter event.EventFilter) ([]event.EventResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	events, err := s.eventRepo.ListByEmployee(ctx, filter.EmployeeID, filter.From, filter.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	responses := make([]event.EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, event.NewEventResponse(e))
	}
	return responses, nil
}

// Update implements event.EventService.
func (s *EventServiceImpl) Update(ctx context.Context, req event.UpdateEventRequest) (event.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return event.EventResponse{}, err
	}

	var before, updated event.Event
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		before, err = s.eventRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		changed := req.ToEvent()
		changed.ID = before.ID
		changed.SeriesID = before.SeriesID
		if err := s.enforceRules(txCtx, changed, before.ID); err != nil {
			return err
		}

		updated, err = s.eventRepo.Update(txCtx, changed)
		return err
	})
	if err != nil {
		return event.EventResponse{}, err
	}

	if before.EmployeeID != updated.EmployeeID {
		s.notify(ctx, actionDeleted, before.EmployeeID, []string{before.ID}, before.Day())
		s.notify(ctx, actionUpdated, updated.EmployeeID, []string{updated.ID}, updated.Day())
	} else {
		s.notify(ctx, actionUpdated, updated.EmployeeID, []string{updated.ID}, before.Day(), updated.Day())
	}
	return event.NewEventResponse(updated), nil
}

// Delete implements event.EventService.
func (s *EventServiceImpl) Delete(ctx context.Context, id string) error {
	existing, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.notify(ctx, actionDeleted, existing.EmployeeID, []string{existing.ID}, existing.Day())
	return nil
}

// CreateSeries implements event.EventService. Either every occurrence is
// stored or none is.
func (s *EventServiceImpl) CreateSeries(ctx context.Context, req event.CreateSeriesRequest) (event.SeriesResponse, error) {
	if err := req.Validate(); err != nil {
		return event.SeriesResponse{}, err
	}

	spans, err := expandSeries(req)
	if err != nil {
		return event.SeriesResponse{}, err
	}

	seriesUUID, err := uuid.NewV7()
	if err != nil {
		return event.SeriesResponse{}, fmt.Errorf("failed to generate series id: %w", err)
	}
	seriesID := seriesUUID.String()
	activity := req.Activity

	var created []event.Event
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		emp, err := s.employeeRepo.GetByID(txCtx, req.EmployeeID)
		if err != nil {
			return err
		}

		from, _ := rulesWindow(spans[0].day())
		_, to := rulesWindow(spans[len(spans)-1].day())
		existing, err := s.eventRepo.ListByEmployee(txCtx, req.EmployeeID, from, to)
		if err != nil {
			return fmt.Errorf("failed to load existing events: %w", err)
		}
		others := timedShifts(existing, "")

		var violations []string
		for _, span := range spans {
			for _, msg := range checkShiftRules(emp, span, others) {
				violations = append(violations, fmt.Sprintf("%s: %s", span.day(), msg))
			}
			others = append(others, span)
		}
		if len(violations) > 0 {
			return &event.ShiftRuleError{Violations: violations}
		}

		for _, span := range spans {
			end := span.end
			e, err := s.eventRepo.Create(txCtx, event.Event{
				EmployeeID: req.EmployeeID,
				Start:      span.start,
				End:        &end,
				Activity:   &activity,
				SeriesID:   &seriesID,
			})
			if err != nil {
				return err
			}
			created = append(created, e)
		}
		return nil
	})
	if err != nil {
		return event.SeriesResponse{}, err
	}

	ids := make([]string, 0, len(created))
	dates := make([]calendar.Date, 0, len(created))
	responses := make([]event.EventResponse, 0, len(created))
	for _, e := range created {
		ids = append(ids, e.ID)
		dates = append(dates, e.Day())
		responses = append(responses, event.NewEventResponse(e))
	}
	slog.Info("event series created", "employee_id", req.EmployeeID, "series_id", seriesID, "occurrences", len(created))
	s.notify(ctx, actionCreated, req.EmployeeID, ids, dates...)

	return event.SeriesResponse{
		SeriesID: seriesID,
		Created:  len(created),
		Events:   responses,
	}, nil
}

// DeleteSeries implements event.EventService.
func (s *EventServiceImpl) DeleteSeries(ctx context.Context, seriesID string) (int64, error) {
	var (
		members []event.Event
		deleted int64
	)
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		members, err = s.eventRepo.ListBySeries(txCtx, seriesID)
		if err != nil {
			return err
		}
		if len(members) == 0 {
			return event.ErrSeriesNotFound
		}
		deleted, err = s.eventRepo.DeleteBySeries(txCtx, seriesID)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.notifyEach(ctx, actionDeleted, members)
	return deleted, nil
}

// ValidateShift implements event.EventService.
func (s *EventServiceImpl) ValidateShift(ctx context.Context, req event.ValidateEventRequest) (event.ValidationResult, error) {
	result := event.ValidationResult{Valid: true, Errors: []string{}}
	if err := req.Validate(); err != nil {
		return result, err
	}

	excludeID := ""
	if req.ID != nil {
		excludeID = *req.ID
	}

	violations, err := s.violations(ctx, req.ToEvent(), excludeID)
	if err != nil {
		return result, err
	}
	for _, msg := range violations {
		result.AddError(msg)
	}
	return result, nil
}

func (s *EventServiceImpl) enforceRules(ctx context.Context, e event.Event, excludeID string) error {
	violations, err := s.violations(ctx, e, excludeID)
	if err != nil {
		return err
	}
	if len(violations) > 0 {
		return &event.ShiftRuleError{Violations: violations}
	}
	return nil
}

// violations loads the employee and nearby shifts and applies the labor
// rules. Leave and all-day entries always pass.
func (s *EventServiceImpl) violations(ctx context.Context, e event.Event, excludeID string) ([]string, error) {
	emp, err := s.employeeRepo.GetByID(ctx, e.EmployeeID)
	if err != nil {
		return nil, err
	}

	entry, err := e.Entry()
	if err != nil {
		return nil, err
	}
	work, ok := entry.(event.WorkEvent)
	if !ok || work.AllDay {
		return nil, nil
	}

	candidate := shiftSpan{id: e.ID, start: work.Start, end: work.End}
	from, to := rulesWindow(candidate.day())
	existing, err := s.eventRepo.ListByEmployee(ctx, e.EmployeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing events: %w", err)
	}

	return checkShiftRules(emp, candidate, timedShifts(existing, excludeID)), nil
}

// notify tells stream subscribers and the snapshot listener about a change.
func (s *EventServiceImpl) notify(ctx context.Context, action, employeeID string, eventIDs []string, dates ...calendar.Date) {
	dates = uniqueDates(dates)

	if s.hub != nil {
		labels := make([]string, 0, len(dates))
		for _, d := range dates {
			labels = append(labels, d.String())
		}
		s.hub.Publish(employeeID, sse.Event{
			Event: sse.EventScheduleUpdated,
			Data: event.ScheduleChange{
				Action:     action,
				EmployeeID: employeeID,
				EventIDs:   eventIDs,
				Dates:      labels,
			},
		})
	}

	if s.listener != nil {
		s.listener.ScheduleChanged(ctx, employeeID, dates...)
	}
}

func uniqueDates(dates []calendar.Date) []calendar.Date {
	seen := make(map[calendar.Date]bool, len(dates))
	out := dates[:0:0]
	for _, d := range dates {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}

// notifyEach sends one change notification per employee touched by events.
func (s *EventServiceImpl) notifyEach(ctx context.Context, action string, events []event.Event) {
	byEmployee := make(map[string][]event.Event)
	var order []string
	for _, e := range events {
		if _, seen := byEmployee[e.EmployeeID]; !seen {
			order = append(order, e.EmployeeID)
		}
		byEmployee[e.EmployeeID] = append(byEmployee[e.EmployeeID], e)
	}
	for _, employeeID := range order {
		var (
			ids   []string
			dates []calendar.Date
		)
		for _, e := range byEmployee[employeeID] {
			ids = append(ids, e.ID)
			dates = append(dates, e.Day())
		}
		s.notify(ctx, action, employeeID, ids, dates...)
	}
}
