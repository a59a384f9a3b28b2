package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/event"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/handler/http/response"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type EventHandler interface {
	ListEvents(w http.ResponseWriter, r *http.Request)
	GetEvent(w http.ResponseWriter, r *http.Request)
	CreateEvent(w http.ResponseWriter, r *http.Request)
	UpdateEvent(w http.ResponseWriter, r *http.Request)
	DeleteEvent(w http.ResponseWriter, r *http.Request)
	CreateSeries(w http.ResponseWriter, r *http.Request)
	DeleteSeries(w http.ResponseWriter, r *http.Request)
	ValidateShift(w http.ResponseWriter, r *http.Request)
	ListLeaveTypes(w http.ResponseWriter, r *http.Request)
	ClassifyLeave(w http.ResponseWriter, r *http.Request)
}

type eventHandlerImpl struct {
	eventService event.EventService
}

func NewEventHandler(eventService event.EventService) EventHandler {
	return &eventHandlerImpl{eventService: eventService}
}

// ListEvents implements EventHandler
func (h *eventHandlerImpl) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := event.EventFilter{EmployeeID: q.Get("employee_id")}

	var errs validator.ValidationErrors
	if from := q.Get("from"); from != "" {
		d, err := calendar.ParseDate(from)
		if err != nil {
			errs.Add("from", "from must be a date in YYYY-MM-DD format")
		}
		filter.From = d
	}
	if to := q.Get("to"); to != "" {
		d, err := calendar.ParseDate(to)
		if err != nil {
			errs.Add("to", "to must be a date in YYYY-MM-DD format")
		}
		filter.To = d
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	result, err := h.eventService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEvent implements EventHandler
func (h *eventHandlerImpl) GetEvent(w http.ResponseWriter, r *http.Request) {
	result, err := h.eventService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateEvent implements EventHandler
func (h *eventHandlerImpl) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req event.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.eventService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Event created successfully", result)
}

// UpdateEvent implements EventHandler
func (h *eventHandlerImpl) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req event.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.eventService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Event updated successfully", result)
}

// DeleteEvent implements EventHandler
func (h *eventHandlerImpl) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.eventService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Event deleted successfully", nil)
}

// CreateSeries implements EventHandler
func (h *eventHandlerImpl) CreateSeries(w http.ResponseWriter, r *http.Request) {
	var req event.CreateSeriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.eventService.CreateSeries(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Event series created successfully", result)
}

// DeleteSeries implements EventHandler
func (h *eventHandlerImpl) DeleteSeries(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.eventService.DeleteSeries(r.Context(), chi.URLParam(r, "seriesID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Event series deleted successfully", map[string]int64{"deleted": deleted})
}

// ValidateShift implements EventHandler. Rule violations are part of a
// successful response here.
func (h *eventHandlerImpl) ValidateShift(w http.ResponseWriter, r *http.Request) {
	var req event.ValidateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.eventService.ValidateShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListLeaveTypes implements EventHandler
func (h *eventHandlerImpl) ListLeaveTypes(w http.ResponseWriter, r *http.Request) {
	types := make([]event.LeaveTypeResponse, 0, len(event.KnownLeaveKinds))
	for _, kind := range event.KnownLeaveKinds {
		types = append(types, event.LeaveTypeResponse{Label: kind.String(), Paid: kind.IsPaid()})
	}

	response.Success(w, types)
}

// ClassifyLeave implements EventHandler
func (h *eventHandlerImpl) ClassifyLeave(w http.ResponseWriter, r *http.Request) {
	var req event.ClassifyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	kind, known := event.ParseLeaveKind(req.Label)
	response.Success(w, event.ClassifyLeaveResponse{
		Label: req.Label,
		Kind:  kind.String(),
		Paid:  kind.IsPaid(),
		Known: known,
	})
}
