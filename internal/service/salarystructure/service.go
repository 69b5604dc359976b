package salarystructure

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/studio-payroll/internal/domain/employee"
	"github.com/shopspring/decimal"
)

type SalaryStructureServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewSalaryStructureService(employeeRepo employee.EmployeeRepository) employee.SalaryStructureService {
	return &SalaryStructureServiceImpl{employeeRepo: employeeRepo}
}

func (s *SalaryStructureServiceImpl) SaveSalaryStructure(ctx context.Context, employeeID string, req employee.SaveSalaryStructureRequest) (employee.SalaryStructureResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.SalaryStructureResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return employee.SalaryStructureResponse{}, err
	}

	structure := req.ToStructure()
	if err := s.employeeRepo.UpdateSalaryStructure(ctx, employeeID, structure); err != nil {
		return employee.SalaryStructureResponse{}, fmt.Errorf("failed to save salary structure: %w", err)
	}

	slog.Info("salary structure saved", "employee_id", employeeID, "pay_type", string(structure.PayType))

	emp.SalaryStructure = &structure
	return toResponse(emp), nil
}

func (s *SalaryStructureServiceImpl) GetSalaryStructure(ctx context.Context, employeeID string) (employee.SalaryStructureResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return employee.SalaryStructureResponse{}, err
	}
	if emp.SalaryStructure == nil {
		return employee.SalaryStructureResponse{}, employee.ErrSalaryStructureNotFound
	}
	return toResponse(emp), nil
}

// Estimate previews pay for a structure that is still being edited. Missing rates count as zero.
func (s *SalaryStructureServiceImpl) Estimate(req employee.SaveSalaryStructureRequest) (employee.EstimateResponse, error) {
	if req.PayType != string(employee.PayTypeMonthly) && req.PayType != string(employee.PayTypeHourly) {
		return employee.EstimateResponse{}, employee.ErrInvalidPayType
	}
	return Estimate(req.ToStructure()), nil
}

// Estimate assumes 8 hours a day, 22 working days a month and 5 days a week.
func Estimate(structure employee.SalaryStructure) employee.EstimateResponse {
	hoursPerDay := decimal.NewFromInt(employee.StandardHoursPerDay)
	daysPerMonth := decimal.NewFromInt(employee.WorkingDaysPerMonth)

	base := structure.Rate()
	if structure.PayType == employee.PayTypeHourly {
		base = base.Mul(hoursPerDay).Mul(daysPerMonth)
	}
	daily := structure.DailyRate()

	gross := base.Add(structure.Allowances.Total())
	deductions := structure.Deductions.Total()

	return employee.EstimateResponse{
		Daily:           daily,
		Weekly:          daily.Mul(decimal.NewFromInt(employee.WorkingDaysPerWeek)),
		GrossPay:        gross,
		TotalDeductions: deductions,
		NetPay:          gross.Sub(deductions),
	}
}

func toResponse(emp employee.Employee) employee.SalaryStructureResponse {
	structure := *emp.SalaryStructure

	allowances := structure.Allowances
	if allowances == nil {
		allowances = employee.Components{}
	}
	deductions := structure.Deductions
	if deductions == nil {
		deductions = employee.Components{}
	}

	return employee.SalaryStructureResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		PayType:      string(structure.PayType),
		MonthlyRate:  structure.MonthlyRate,
		HourlyRate:   structure.HourlyRate,
		OvertimeRate: structure.OvertimeRate,
		Allowances:   allowances,
		Deductions:   deductions,
		Estimate:     Estimate(structure),
	}
}
