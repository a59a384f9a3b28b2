package employee

import "time"

// DefaultDailyContractHours applies when an employee has no contract rate.
const DefaultDailyContractHours = 8

// ContractHourOptions are the daily contract rates the schedule supports.
var ContractHourOptions = []int{4, 6, 8}

type Employee struct {
	ID                 string
	Name               string
	Lastname           string
	Email              *string
	Position           *string
	DailyContractHours int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (e Employee) FullName() string {
	if e.Lastname == "" {
		return e.Name
	}
	return e.Name + " " + e.Lastname
}

// ContractHours returns the daily contract rate, falling back to the default
// when none is set.
func (e Employee) ContractHours() int {
	if e.DailyContractHours <= 0 {
		return DefaultDailyContractHours
	}
	return e.DailyContractHours
}

// MaxWeeklyHours is the weekly work limit tied to the contract rate.
func (e Employee) MaxWeeklyHours() int {
	switch e.ContractHours() {
	case 4:
		return 30
	case 6:
		return 40
	case 8:
		return 53
	default:
		return 53
	}
}
