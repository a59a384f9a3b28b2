package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/event"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/report"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var ruleErr *event.ShiftRuleError
	if errors.As(err, &ruleErr) {
		RuleViolation(w, ruleErr.Violations)
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Event domain errors
	case errors.Is(err, event.ErrEventNotFound):
		NotFound(w, "Event not found")
	case errors.Is(err, event.ErrSeriesNotFound):
		NotFound(w, "Event series not found")
	case errors.Is(err, event.ErrInvalidDateRange),
		errors.Is(err, event.ErrInvalidRecurrence),
		errors.Is(err, event.ErrSeriesTooLong),
		errors.Is(err, event.ErrEmptySeries),
		errors.Is(err, event.ErrMalformedEvent):
		BadRequest(w, err.Error(), nil)

	// Report domain errors
	case errors.Is(err, report.ErrInvalidPeriod),
		errors.Is(err, report.ErrInvalidRange),
		errors.Is(err, report.ErrRangeTooLong):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, report.ErrSnapshotMissing):
		NotFound(w, "Weekly schedule not found")

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
