package event

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/validator"
)

const timestampLayout = "2006-01-02T15:04:05"

type CreateEventRequest struct {
	EmployeeID string  `json:"employee_id" validate:"required"`
	Start      string  `json:"start" validate:"required"`
	End        *string `json:"end"`
	Activity   *string `json:"activity"`
	LeaveType  *string `json:"leave_type"`
}

func (r *CreateEventRequest) Validate() error {
	errs := validator.Struct(r)

	hasActivity := r.Activity != nil && !validator.IsEmpty(*r.Activity)
	hasLeave := r.LeaveType != nil && !validator.IsEmpty(*r.LeaveType)
	switch {
	case hasActivity && hasLeave:
		errs.Add("leave_type", "an event is either a shift (activity) or a leave (leave_type), not both")
	case !hasActivity && !hasLeave:
		errs.Add("activity", "activity or leave_type is required")
	}

	var start, end time.Time
	var err error
	if !validator.IsEmpty(r.Start) {
		if start, err = validator.ParseTimestamp(r.Start); err != nil {
			errs.Add("start", err.Error())
		}
	}
	if r.End != nil && !validator.IsEmpty(*r.End) {
		if end, err = validator.ParseTimestamp(*r.End); err != nil {
			errs.Add("end", err.Error())
		}
	}
	if hasActivity && !start.IsZero() && !end.IsZero() && !end.After(start) && !(isMidnight(start) && isMidnight(end)) {
		errs.Add("end", "end must be after start")
	}

	return errs.Err()
}

// ToEvent builds the entity. Call Validate first.
func (r *CreateEventRequest) ToEvent() Event {
	start, _ := validator.ParseTimestamp(r.Start)
	e := Event{
		EmployeeID: r.EmployeeID,
		Start:      start,
		Activity:   trimmedOrNil(r.Activity),
		LeaveType:  trimmedOrNil(r.LeaveType),
	}
	if r.End != nil && !validator.IsEmpty(*r.End) {
		end, _ := validator.ParseTimestamp(*r.End)
		e.End = &end
	}
	return e
}

type UpdateEventRequest struct {
	ID string `json:"-"`
	CreateEventRequest
}

func (r *UpdateEventRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if err := r.CreateEventRequest.Validate(); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, fieldErrs...)
		}
	}
	return errs.Err()
}

// ValidateEventRequest checks a prospective shift without saving it. ID is
// set when the shift replaces an existing event.
type ValidateEventRequest struct {
	ID *string `json:"id"`
	CreateEventRequest
}

type EventFilter struct {
	EmployeeID string
	From       calendar.Date
	To         calendar.Date
}

func (f EventFilter) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(f.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if f.From.IsZero() {
		errs.Add("from", "from is required")
	}
	if f.To.IsZero() {
		errs.Add("to", "to is required")
	}
	if len(errs) == 0 && f.From.After(f.To) {
		return ErrInvalidDateRange
	}
	return errs.Err()
}

type CreateSeriesRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Activity   string `json:"activity" validate:"required,max=100"`
	StartTime  string `json:"start_time" validate:"required,clock"`
	EndTime    string `json:"end_time" validate:"required,clock"`
	RRule      string `json:"rrule" validate:"required"`
	From       string `json:"from" validate:"required,date"`
	Until      string `json:"until" validate:"required,date"`
}

func (r *CreateSeriesRequest) Validate() error {
	errs := validator.Struct(r)
	if len(errs) == 0 {
		from, _ := calendar.ParseDate(r.From)
		until, _ := calendar.ParseDate(r.Until)
		if from.After(until) {
			errs.Add("until", "until must not be before from")
		}
		if r.EndTime <= r.StartTime {
			errs.Add("end_time", "end_time must be after start_time")
		}
	}
	return errs.Err()
}

type EventResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	Kind          string  `json:"kind"`
	Start         string  `json:"start"`
	End           *string `json:"end,omitempty"`
	Activity      *string `json:"activity,omitempty"`
	LeaveType     *string `json:"leave_type,omitempty"`
	PaidLeave     *bool   `json:"paid_leave,omitempty"`
	SeriesID      *string `json:"series_id,omitempty"`
	AutoGenerated bool    `json:"auto_generated,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

func NewEventResponse(e Event) EventResponse {
	resp := EventResponse{
		ID:            e.ID,
		EmployeeID:    e.EmployeeID,
		Kind:          "work",
		Start:         e.Start.Format(timestampLayout),
		Activity:      e.Activity,
		LeaveType:     e.LeaveType,
		SeriesID:      e.SeriesID,
		AutoGenerated: e.AutoGenerated,
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     e.UpdatedAt.Format(time.RFC3339),
	}
	if e.End != nil {
		end := e.End.Format(timestampLayout)
		resp.End = &end
	}
	if e.IsLeave() {
		resp.Kind = "leave"
		paid := IsPaidLeave(*e.LeaveType)
		resp.PaidLeave = &paid
	}
	return resp
}

// ValidationResult is the outcome of checking a shift against the rules.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func (v *ValidationResult) AddError(msg string) {
	v.Errors = append(v.Errors, msg)
	v.Valid = false
}

// ScheduleChange is published to stream subscribers after events change.
type ScheduleChange struct {
	Action     string   `json:"action"`
	EmployeeID string   `json:"employee_id"`
	EventIDs   []string `json:"event_ids"`
	Dates      []string `json:"dates"`
}

type SeriesResponse struct {
	SeriesID string          `json:"series_id"`
	Created  int             `json:"created"`
	Events   []EventResponse `json:"events"`
}

// GenerateScheduleRequest asks for weekday shifts for every employee in a month.
type GenerateScheduleRequest struct {
	Year  int `json:"year" validate:"required,min=1,max=9999"`
	Month int `json:"month" validate:"required,min=1,max=12"`
}

func (r *GenerateScheduleRequest) Validate() error {
	return validator.Struct(r).Err()
}

// Bounds returns the first and last day of the requested month. Call Validate first.
func (r GenerateScheduleRequest) Bounds() (calendar.Date, calendar.Date) {
	return calendar.MonthBounds(r.Year, time.Month(r.Month))
}

type EmployeeGeneration struct {
	EmployeeID string   `json:"employee_id"`
	SeriesID   *string  `json:"series_id,omitempty"`
	Generated  int      `json:"generated"`
	Skipped    []string `json:"skipped"`
}

type GenerationResult struct {
	Year            int                  `json:"year"`
	Month           int                  `json:"month"`
	GeneratedShifts int                  `json:"generated_shifts"`
	SkippedDays     int                  `json:"skipped_days"`
	Employees       []EmployeeGeneration `json:"employees"`
}

// GenerationStatistics summarizes a month's schedule across all employees.
// Coverage is the share of employee working days with any entry, in percent.
type GenerationStatistics struct {
	Year                int     `json:"year"`
	Month               int     `json:"month"`
	Employees           int     `json:"employees"`
	WorkingDays         int     `json:"working_days"`
	GeneratedShifts     int     `json:"generated_shifts"`
	ManualShifts        int     `json:"manual_shifts"`
	LeaveDays           int     `json:"leave_days"`
	GeneratedShiftHours float64 `json:"generated_shift_hours"`
	Coverage            float64 `json:"coverage"`
}

type LeaveTypeResponse struct {
	Label string `json:"label"`
	Paid  bool   `json:"paid"`
}

type ClassifyLeaveRequest struct {
	Label string `json:"label"`
}

type ClassifyLeaveResponse struct {
	Label string `json:"label"`
	Kind  string `json:"kind"`
	Paid  bool   `json:"paid"`
	Known bool   `json:"known"`
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
