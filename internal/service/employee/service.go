package employee

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/report"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/database"
)

type EmployeeServiceImpl struct {
	tx           database.Transactor
	employeeRepo employee.EmployeeRepository
	weeklyRepo   report.WeeklyScheduleRepository
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	weeklyRepo report.WeeklyScheduleRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		weeklyRepo:   weeklyRepo,
	}
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	normalizeEmail(&req.Email)
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.ensureEmailFree(ctx, req.Email, nil); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.employeeRepo.Create(ctx, req.ToEmployee())
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("employee created", "employee_id", created.ID, "daily_contract_hours", created.DailyContractHours)
	return employee.NewEmployeeResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	found, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(found), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	filter.Normalize()

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.NewEmployeeResponse(emp))
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Employees:  responses,
	}, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	normalizeEmail(&req.Email)
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.ensureEmailFree(ctx, req.Email, &existing.ID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	changed := req.ToEmployee()
	changed.ID = existing.ID
	if req.DailyContractHours == nil {
		changed.DailyContractHours = existing.DailyContractHours
	}

	updated, err := s.employeeRepo.Update(ctx, changed)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if updated.DailyContractHours != existing.DailyContractHours {
		slog.Info("employee contract changed", "employee_id", updated.ID,
			"from", existing.DailyContractHours, "to", updated.DailyContractHours)
	}
	return employee.NewEmployeeResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if _, err := s.employeeRepo.GetByID(txCtx, id); err != nil {
			return err
		}
		if err := s.weeklyRepo.DeleteByEmployee(txCtx, id); err != nil {
			return err
		}
		return s.employeeRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	slog.Info("employee deleted", "employee_id", id)
	return nil
}

func (s *EmployeeServiceImpl) ensureEmailFree(ctx context.Context, email *string, excludeID *string) error {
	if email == nil {
		return nil
	}
	exists, err := s.employeeRepo.ExistsByEmail(ctx, *email, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return employee.ErrEmailExists
	}
	return nil
}

func normalizeEmail(email **string) {
	if *email == nil {
		return
	}
	v := strings.ToLower(strings.TrimSpace(**email))
	if v == "" {
		*email = nil
		return
	}
	*email = &v
}
