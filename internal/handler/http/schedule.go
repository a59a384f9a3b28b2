package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/event"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/handler/http/response"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/validator"
)

type ScheduleHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	GenerateCurrent(w http.ResponseWriter, r *http.Request)
	GenerateNext(w http.ResponseWriter, r *http.Request)
	DeleteGenerated(w http.ResponseWriter, r *http.Request)
	Statistics(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	eventService event.EventService
	loc          *time.Location
}

// NewScheduleHandler resolves "current" and "next" month in loc.
func NewScheduleHandler(eventService event.EventService, loc *time.Location) ScheduleHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &scheduleHandlerImpl{eventService: eventService, loc: loc}
}

// Generate implements ScheduleHandler
func (h *scheduleHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req event.GenerateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	h.generate(w, r, req)
}

// GenerateCurrent implements ScheduleHandler
func (h *scheduleHandlerImpl) GenerateCurrent(w http.ResponseWriter, r *http.Request) {
	today := calendar.Today(h.loc)
	h.generate(w, r, event.GenerateScheduleRequest{Year: today.Year(), Month: int(today.Month())})
}

// GenerateNext implements ScheduleHandler
func (h *scheduleHandlerImpl) GenerateNext(w http.ResponseWriter, r *http.Request) {
	today := calendar.Today(h.loc)
	next := calendar.NewDate(today.Year(), today.Month()+1, 1)
	h.generate(w, r, event.GenerateScheduleRequest{Year: next.Year(), Month: int(next.Month())})
}

func (h *scheduleHandlerImpl) generate(w http.ResponseWriter, r *http.Request, req event.GenerateScheduleRequest) {
	result, err := h.eventService.GenerateMonth(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := fmt.Sprintf("Generated %d shifts for %s %d", result.GeneratedShifts, calendar.MonthName(time.Month(req.Month)), req.Year)
	response.Created(w, message, result)
}

// DeleteGenerated implements ScheduleHandler
func (h *scheduleHandlerImpl) DeleteGenerated(w http.ResponseWriter, r *http.Request) {
	req, err := scheduleMonth(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	deleted, err := h.eventService.DeleteGenerated(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, fmt.Sprintf("Deleted %d generated shifts", deleted), map[string]int{"deleted": deleted})
}

// Statistics implements ScheduleHandler
func (h *scheduleHandlerImpl) Statistics(w http.ResponseWriter, r *http.Request) {
	req, err := scheduleMonth(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	stats, err := h.eventService.Statistics(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// scheduleMonth reads year and month from the query string.
func scheduleMonth(r *http.Request) (event.GenerateScheduleRequest, error) {
	var (
		req  event.GenerateScheduleRequest
		errs validator.ValidationErrors
		err  error
	)
	if req.Year, err = strconv.Atoi(r.URL.Query().Get("year")); err != nil {
		errs.Add("year", "year must be a number")
	}
	if req.Month, err = strconv.Atoi(r.URL.Query().Get("month")); err != nil {
		errs.Add("month", "month must be a number")
	}
	if len(errs) > 0 {
		return req, errs
	}
	return req, req.Validate()
}
