package event

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/calendar"
)

// Event is a calendar entry as stored: either a work shift (Activity set) or
// an absence (LeaveType set). Start and End are wall-clock times in the
// employer's zone. AutoGenerated marks shifts created by monthly schedule
// generation.
type Event struct {
	ID            string
	EmployeeID    string
	Start         time.Time
	End           *time.Time
	Activity      *string
	LeaveType     *string
	SeriesID      *string
	AutoGenerated bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Day is the calendar date of the event's start.
func (e Event) Day() calendar.Date {
	return calendar.DateOf(e.Start)
}

func (e Event) IsLeave() bool {
	return e.LeaveType != nil && strings.TrimSpace(*e.LeaveType) != ""
}

// Entry converts the stored record into its typed variant.
func (e Event) Entry() (Entry, error) {
	if e.Start.IsZero() {
		return nil, fmt.Errorf("%w: event %s has no start", ErrMalformedEvent, e.ID)
	}

	if e.IsLeave() {
		label := strings.TrimSpace(*e.LeaveType)
		kind, _ := ParseLeaveKind(label)
		return LeaveEvent{
			ID:    e.ID,
			Date:  e.Day(),
			Start: e.Start,
			Label: label,
			Kind:  kind,
		}, nil
	}

	if e.Activity == nil || strings.TrimSpace(*e.Activity) == "" {
		return nil, fmt.Errorf("%w: event %s has neither activity nor leave type", ErrMalformedEvent, e.ID)
	}
	activity := strings.TrimSpace(*e.Activity)

	if e.End == nil || (isMidnight(e.Start) && isMidnight(*e.End)) {
		return WorkEvent{ID: e.ID, Start: e.Start, Activity: activity, AllDay: true}, nil
	}
	if e.End.IsZero() {
		return nil, fmt.Errorf("%w: shift %s has no end", ErrMalformedEvent, e.ID)
	}

	return WorkEvent{ID: e.ID, Start: e.Start, End: *e.End, Activity: activity}, nil
}

func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0
}

// Entry is either a WorkEvent or a LeaveEvent.
type Entry interface {
	EntryID() string
	Day() calendar.Date
	StartsAt() time.Time
	entry()
}

// WorkEvent is a scheduled shift. AllDay shifts carry no usable times and
// only mark the day as a work day (or a day off when Activity says so).
type WorkEvent struct {
	ID       string
	Start    time.Time
	End      time.Time
	Activity string
	AllDay   bool
}

func (w WorkEvent) EntryID() string     { return w.ID }
func (w WorkEvent) Day() calendar.Date  { return calendar.DateOf(w.Start) }
func (w WorkEvent) StartsAt() time.Time { return w.Start }
func (WorkEvent) entry()                {}

// MarksDayOff reports whether an all-day entry declares the day off.
func (w WorkEvent) MarksDayOff() bool {
	return w.AllDay && strings.EqualFold(w.Activity, LabelDayOff)
}

// LeaveEvent is an absence. Its duration is imputed, never measured.
type LeaveEvent struct {
	ID    string
	Date  calendar.Date
	Start time.Time
	Label string
	Kind  LeaveKind
}

func (l LeaveEvent) EntryID() string     { return l.ID }
func (l LeaveEvent) Day() calendar.Date  { return l.Date }
func (l LeaveEvent) StartsAt() time.Time { return l.Start }
func (LeaveEvent) entry()                {}

// Known reports whether the label belongs to the fixed taxonomy.
func (l LeaveEvent) Known() bool {
	return l.Kind != LeaveUnknown
}

func (l LeaveEvent) IsPaid() bool {
	return l.Kind.IsPaid()
}
