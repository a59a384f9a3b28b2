package employee

import (
	"time"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Name               string  `json:"name" validate:"required,max=100"`
	Lastname           string  `json:"lastname" validate:"required,max=100"`
	Email              *string `json:"email" validate:"omitempty,email"`
	Position           *string `json:"position" validate:"omitempty,max=100"`
	DailyContractHours *int    `json:"daily_contract_hours" validate:"omitempty,oneof=4 6 8"`
}

func (r *CreateEmployeeRequest) Validate() error {
	errs := validator.Struct(r)
	if validator.IsEmpty(r.Name) && !hasField(errs, "name") {
		errs.Add("name", "name is required")
	}
	return errs.Err()
}

func (r *CreateEmployeeRequest) ToEmployee() Employee {
	e := Employee{
		Name:               r.Name,
		Lastname:           r.Lastname,
		Email:              r.Email,
		Position:           r.Position,
		DailyContractHours: DefaultDailyContractHours,
	}
	if r.DailyContractHours != nil {
		e.DailyContractHours = *r.DailyContractHours
	}
	return e
}

type UpdateEmployeeRequest struct {
	ID string `json:"-"`
	CreateEmployeeRequest
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if err := r.CreateEmployeeRequest.Validate(); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, fieldErrs...)
		}
	}
	return errs.Err()
}

type EmployeeFilter struct {
	Search *string
	Page   int
	Limit  int
}

func (f *EmployeeFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

type EmployeeResponse struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Lastname            string  `json:"lastname"`
	FullName            string  `json:"full_name"`
	Email               *string `json:"email,omitempty"`
	Position            *string `json:"position,omitempty"`
	DailyContractHours  int     `json:"daily_contract_hours"`
	WeeklyContractHours int     `json:"weekly_contract_hours"`
	MaxWeeklyHours      int     `json:"max_weekly_hours"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                  e.ID,
		Name:                e.Name,
		Lastname:            e.Lastname,
		FullName:            e.FullName(),
		Email:               e.Email,
		Position:            e.Position,
		DailyContractHours:  e.ContractHours(),
		WeeklyContractHours: e.ContractHours() * 5,
		MaxWeeklyHours:      e.MaxWeeklyHours(),
		CreatedAt:           e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           e.UpdatedAt.Format(time.RFC3339),
	}
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}

func hasField(errs validator.ValidationErrors, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}
