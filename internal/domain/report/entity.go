package report

import (
	"time"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// DayStatus is the single classification a resolved day carries.
type DayStatus string

const (
	StatusLeave      DayStatus = "leave"
	StatusWork       DayStatus = "work"
	StatusWorkMarker DayStatus = "work_marker"
	StatusDayOff     DayStatus = "day_off"
	StatusWeekend    DayStatus = "weekend"
)

// Display labels for days without a leave label or work interval.
const (
	DisplayWorkDay = "Work Day"
	DisplayDayOff  = "Day off"
	DisplayWeekend = "Weekend"
)

// Context carries everything a report computation depends on. It is passed
// in explicitly and echoed back in the result.
type Context struct {
	EmployeeID         string        `json:"employee_id"`
	EmployeeName       string        `json:"employee_name,omitempty"`
	Year               int           `json:"year"`
	Month              time.Month    `json:"month"`
	DailyContractHours float64       `json:"daily_contract_hours"`
	Today              calendar.Date `json:"today"`
}

// DayRecord is the resolved classification of one calendar day.
type DayRecord struct {
	Date       calendar.Date `json:"date"`
	DayOfWeek  string        `json:"day_of_week"`
	Status     DayStatus     `json:"status"`
	Display    string        `json:"display"`
	IsWorkDay  bool          `json:"is_work_day"`
	IsDayOff   bool          `json:"is_day_off"`
	LeaveType  *string       `json:"leave_type"`
	PaidLeave  bool          `json:"paid_leave"`
	StartTime  *string       `json:"start_time"`
	EndTime    *string       `json:"end_time"`
	Activity   *string       `json:"activity,omitempty"`
	Hours      float64       `json:"hours"`
	BreakHours float64       `json:"break_hours"`
}

// NetHours is the worked time after the statutory break. Informational only.
func (d DayRecord) NetHours() float64 {
	return d.Hours - d.BreakHours
}

func (d DayRecord) IsLeave() bool {
	return d.Status == StatusLeave
}

// WeekRecord buckets the hours of a Monday-start week.
type WeekRecord struct {
	WeekNumber    int           `json:"week_number"`
	Year          int           `json:"year"`
	WeekStartDate calendar.Date `json:"week_start_date"`
	WeekEndDate   calendar.Date `json:"week_end_date"`
	PlannedHours  float64       `json:"planned_hours"`
	BreakHours    float64       `json:"break_hours"`
	WorkDays      int           `json:"work_days"`
	LeaveDays     int           `json:"leave_days"`
	InMonthDays   int           `json:"in_month_days"`
	ContractHours float64       `json:"contract_hours"`
	IsCurrentWeek bool          `json:"is_current_week"`
}

type ContractBaseline struct {
	TotalDaysInMonth    int     `json:"total_days_in_month"`
	WeekendDays         int     `json:"weekend_days"`
	WorkingDays         int     `json:"working_days"`
	DailyContractHours  float64 `json:"daily_contract_hours"`
	TotalContractHours  float64 `json:"total_contract_hours"`
	WeeklyContractHours float64 `json:"weekly_contract_hours"`
}

type Summary struct {
	WorkDays       int            `json:"work_days"`
	DayOffs        int            `json:"day_offs"`
	LeaveDays      int            `json:"leave_days"`
	PaidLeaveDays  int            `json:"paid_leave_days"`
	Weekends       int            `json:"weekends"`
	WorkPercentage float64        `json:"work_percentage"`
	FirstWorkDay   *calendar.Date `json:"first_work_day,omitempty"`
	LastWorkDay    *calendar.Date `json:"last_work_day,omitempty"`
}

type MonthlyReport struct {
	Context             Context          `json:"context"`
	EmployeeID          string           `json:"employee_id"`
	Year                int              `json:"year"`
	Month               int              `json:"month"`
	MonthName           string           `json:"month_name"`
	WeeklySchedule      []WeekRecord     `json:"weekly_schedule"`
	DailyRecords        []DayRecord      `json:"daily_records"`
	ContractBaseline    ContractBaseline `json:"contract_baseline"`
	TotalPlannedHours   float64          `json:"total_planned_hours"`
	HoursDifference     float64          `json:"hours_difference"`
	AverageHoursPerWeek float64          `json:"average_hours_per_week"`
	WeeksInMonth        int              `json:"weeks_in_month"`
	Summary             Summary          `json:"summary"`
	Warnings            []string         `json:"warnings"`
}

// WeeklySnapshot is the persisted weekly total of an employee.
type WeeklySnapshot struct {
	ID              string
	EmployeeID      string
	WeekStartDate   calendar.Date
	WeekNumber      int
	Year            int
	PlannedHours    decimal.Decimal
	BreakHours      decimal.Decimal
	ActualWorkHours decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
