package event

import (
	"errors"
	"strings"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrSeriesNotFound    = errors.New("event series not found")
	ErrMalformedEvent    = errors.New("malformed event")
	ErrInvalidRecurrence = errors.New("invalid recurrence rule")
	ErrSeriesTooLong     = errors.New("recurrence produces too many occurrences")
	ErrEmptySeries       = errors.New("recurrence produces no occurrences in the given range")
	ErrInvalidDateRange  = errors.New("invalid date range, from must not be after to")

	ErrShiftRuleViolation = errors.New("shift violates scheduling rules")
)

// ShiftRuleError reports labor rule violations for a shift.
type ShiftRuleError struct {
	Violations []string
}

func (e *ShiftRuleError) Error() string {
	return ErrShiftRuleViolation.Error() + ": " + strings.Join(e.Violations, " ")
}

func (e *ShiftRuleError) Unwrap() error {
	return ErrShiftRuleViolation
}
