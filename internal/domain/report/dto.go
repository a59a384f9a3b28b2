package report

import (
	"time"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/validator"
)

// MaxPeriodDays is how far the end of a daily-hours period may lie after its start.
const MaxPeriodDays = 90

type MonthRequest struct {
	EmployeeID string
	Year       int
	Month      int
}

func (r MonthRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if r.Year < 1 || r.Year > 9999 {
		errs.Add("year", "year must be between 1 and 9999")
	}
	if r.Month < 1 || r.Month > 12 {
		errs.Add("month", "month must be between 1 and 12")
	}
	return errs.Err()
}

type PeriodRequest struct {
	EmployeeID string
	Start      string
	End        string
}

// Parse validates the request and returns the closed date range.
func (r PeriodRequest) Parse() (calendar.Date, calendar.Date, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	start, err := calendar.ParseDate(r.Start)
	if err != nil {
		errs.Add("start", "start must be a date in YYYY-MM-DD format")
	}
	end, err := calendar.ParseDate(r.End)
	if err != nil {
		errs.Add("end", "end must be a date in YYYY-MM-DD format")
	}
	if len(errs) > 0 {
		return calendar.Date{}, calendar.Date{}, errs
	}
	if start.After(end) {
		return calendar.Date{}, calendar.Date{}, ErrInvalidRange
	}
	if start.DaysUntil(end) > MaxPeriodDays {
		return calendar.Date{}, calendar.Date{}, ErrRangeTooLong
	}
	return start, end, nil
}

type StatsRequest struct {
	EmployeeID string
	Year       int
}

func (r StatsRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if r.Year < 1 || r.Year > 9999 {
		errs.Add("year", "year must be between 1 and 9999")
	}
	return errs.Err()
}

type WeeklyScheduleResponse struct {
	EmployeeID        string           `json:"employee_id"`
	Year              int              `json:"year"`
	Month             int              `json:"month"`
	MonthName         string           `json:"month_name"`
	TotalWeeks        int              `json:"total_weeks"`
	WeeklySchedule    []WeekRecord     `json:"weekly_schedule"`
	TotalPlannedHours float64          `json:"total_planned_hours"`
	ContractBaseline  ContractBaseline `json:"contract_baseline"`
	HoursDifference   float64          `json:"hours_difference"`
}

type DailyStatistics struct {
	WorkDays  int `json:"work_days"`
	DayOffs   int `json:"day_offs"`
	LeaveDays int `json:"leave_days"`
}

// NewDailyStatistics counts work, day-off and leave days.
func NewDailyStatistics(days []DayRecord) DailyStatistics {
	var s DailyStatistics
	for _, d := range days {
		switch {
		case d.IsWorkDay:
			s.WorkDays++
		case d.IsDayOff:
			s.DayOffs++
		}
		if d.IsLeave() {
			s.LeaveDays++
		}
	}
	return s
}

type DailyHoursResponse struct {
	EmployeeID     string          `json:"employee_id"`
	Year           int             `json:"year,omitempty"`
	Month          int             `json:"month,omitempty"`
	MonthName      string          `json:"month_name,omitempty"`
	StartDate      calendar.Date   `json:"start_date"`
	EndDate        calendar.Date   `json:"end_date"`
	TotalDays      int             `json:"total_days"`
	DailyWorkHours []DayRecord     `json:"daily_work_hours"`
	Statistics     DailyStatistics `json:"statistics"`
	Warnings       []string        `json:"warnings"`
}

type WeeklySnapshotResponse struct {
	WeekStartDate   calendar.Date `json:"week_start_date"`
	WeekNumber      int           `json:"week_number"`
	Year            int           `json:"year"`
	PlannedHours    string        `json:"planned_hours"`
	BreakHours      string        `json:"break_hours"`
	ActualWorkHours string        `json:"actual_work_hours"`
	UpdatedAt       string        `json:"updated_at"`
}

func NewWeeklySnapshotResponse(s WeeklySnapshot) WeeklySnapshotResponse {
	return WeeklySnapshotResponse{
		WeekStartDate:   s.WeekStartDate,
		WeekNumber:      s.WeekNumber,
		Year:            s.Year,
		PlannedHours:    s.PlannedHours.StringFixed(2),
		BreakHours:      s.BreakHours.StringFixed(2),
		ActualWorkHours: s.ActualWorkHours.StringFixed(2),
		UpdatedAt:       s.UpdatedAt.Format(time.RFC3339),
	}
}

type RecalculateResponse struct {
	EmployeeID        string                   `json:"employee_id"`
	WeeksRecalculated int                      `json:"weeks_recalculated"`
	RecalculatedAt    string                   `json:"recalculated_at"`
	Weeks             []WeeklySnapshotResponse `json:"weeks"`
}

type MonthStats struct {
	Month           int     `json:"month"`
	MonthName       string  `json:"month_name"`
	PlannedHours    float64 `json:"planned_hours"`
	ContractHours   float64 `json:"contract_hours"`
	HoursDifference float64 `json:"hours_difference"`
	WorkDays        int     `json:"work_days"`
	LeaveDays       int     `json:"leave_days"`
}

type StatsResponse struct {
	EmployeeID         string       `json:"employee_id"`
	Year               int          `json:"year"`
	Months             []MonthStats `json:"months"`
	TotalPlannedHours  float64      `json:"total_planned_hours"`
	TotalContractHours float64      `json:"total_contract_hours"`
	HoursDifference    float64      `json:"hours_difference"`
}

// ExportFile is a generated download.
type ExportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}
