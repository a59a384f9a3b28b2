package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/report"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/handler/http/response"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/sse"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

const streamKeepalive = 30 * time.Second

type ReportHandler interface {
	MonthlyReport(w http.ResponseWriter, r *http.Request)
	WeeklySchedule(w http.ResponseWriter, r *http.Request)
	DailyHours(w http.ResponseWriter, r *http.Request)
	DailyHoursForPeriod(w http.ResponseWriter, r *http.Request)
	Recalculate(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	hub           *sse.Hub
}

func NewReportHandler(reportService report.ReportService, hub *sse.Hub) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
		hub:           hub,
	}
}

// monthRequest reads year and month from the query string.
func monthRequest(r *http.Request) (report.MonthRequest, error) {
	req := report.MonthRequest{EmployeeID: chi.URLParam(r, "employeeID")}

	var errs validator.ValidationErrors
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		errs.Add("year", "year must be a number")
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		errs.Add("month", "month must be a number")
	}
	if len(errs) > 0 {
		return req, errs
	}

	req.Year, req.Month = year, month
	return req, req.Validate()
}

// MonthlyReport implements ReportHandler
func (h *reportHandlerImpl) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	req, err := monthRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.MonthlyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// WeeklySchedule implements ReportHandler
func (h *reportHandlerImpl) WeeklySchedule(w http.ResponseWriter, r *http.Request) {
	req, err := monthRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.WeeklySchedule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DailyHours implements ReportHandler
func (h *reportHandlerImpl) DailyHours(w http.ResponseWriter, r *http.Request) {
	req, err := monthRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.DailyHours(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DailyHoursForPeriod implements ReportHandler
func (h *reportHandlerImpl) DailyHoursForPeriod(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.DailyHoursForPeriod(r.Context(), report.PeriodRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Start:      r.URL.Query().Get("start"),
		End:        r.URL.Query().Get("end"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Recalculate implements ReportHandler
func (h *reportHandlerImpl) Recalculate(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.Recalculate(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Weekly schedules recalculated successfully", result)
}

// Stats implements ReportHandler
func (h *reportHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		var errs validator.ValidationErrors
		errs.Add("year", "year must be a number")
		response.HandleError(w, errs)
		return
	}

	result, err := h.reportService.Stats(r.Context(), report.StatsRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Year:       year,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export implements ReportHandler
func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	req, err := monthRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.reportService.ExportMonthlyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.FileName, file.ContentType, file.Content)
}

// Stream implements ReportHandler. It pushes schedule and snapshot changes of
// one employee as server-sent events until the client disconnects.
func (h *reportHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(employeeID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"employee_id\":%q}\n\n", employeeID)
	flusher.Flush()

	keepalive := time.NewTicker(streamKeepalive)
	defer keepalive.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(ev.Data)
			if err != nil {
				slog.Error("failed to encode stream event", "event", ev.Event, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
