package payroll

import (
	"github.com/cmlabs-hris/studio-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/performance"
	"github.com/cmlabs-hris/studio-payroll/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GeneratePayrollRequest struct {
	PeriodMonth int `json:"period_month"`
	PeriodYear  int `json:"period_year"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if r.PeriodYear < 2000 || r.PeriodYear > 9999 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be between 2000 and 9999"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePayslipStatusRequest struct {
	PayslipIDs []string `json:"payslip_ids"`
}

func (r *UpdatePayslipStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.PayslipIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "payslip_ids", Message: "at least one payslip is required"})
	}
	for _, id := range r.PayslipIDs {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{Field: "payslip_ids", Message: "must not contain empty ids"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayslipFilter struct {
	PayPeriod  *string `json:"pay_period,omitempty"`
	Status     *string `json:"status,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

func (f *PayslipFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.PayPeriod != nil {
		if _, err := ParsePeriod(*f.PayPeriod); err != nil {
			errs = append(errs, validator.ValidationError{Field: "pay_period", Message: "must be YYYY-MM"})
		}
	}
	if f.Status != nil && !validator.IsInSlice(*f.Status, PayslipStatusValues) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be pending, paid or cancelled"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayslipResponse struct {
	ID                 string              `json:"id"`
	EmployeeID         string              `json:"employee_id"`
	EmployeeName       string              `json:"employee_name,omitempty"`
	EmployeeCode       string              `json:"employee_code,omitempty"`
	PayPeriod          string              `json:"pay_period"`
	Currency           string              `json:"currency"`
	GrossSalary        decimal.Decimal     `json:"gross_salary"`
	TotalDeductions    decimal.Decimal     `json:"total_deductions"`
	NetSalary          decimal.Decimal     `json:"net_salary"`
	Earnings           employee.Components `json:"earnings"`
	Deductions         employee.Components `json:"deductions"`
	Status             string              `json:"status"`
	AttendanceSummary  attendance.Summary  `json:"attendance_summary"`
	TotalLateness      string              `json:"total_lateness"`
	PerformanceSummary performance.Summary `json:"performance_summary"`
	ProcessedAt        *string             `json:"processed_at,omitempty"`
	ProcessedBy        *string             `json:"processed_by,omitempty"`
}

type ListPayslipResponse struct {
	Data       []PayslipResponse `json:"data"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

type PayrollSummaryResponse struct {
	PayPeriod              string          `json:"pay_period"`
	TotalEmployees         int             `json:"total_employees"`
	TotalGrossSalary       decimal.Decimal `json:"total_gross_salary"`
	TotalDeductions        decimal.Decimal `json:"total_deductions"`
	TotalNetSalary         decimal.Decimal `json:"total_net_salary"`
	TotalPerformanceBonus  decimal.Decimal `json:"total_performance_bonus"`
	TotalLatenessDeduction decimal.Decimal `json:"total_lateness_deduction"`
	PendingCount           int             `json:"pending_count"`
	PaidCount              int             `json:"paid_count"`
	CancelledCount         int             `json:"cancelled_count"`
}

type PrintPayslipResponse struct {
	PayslipID string `json:"payslip_id"`
	Path      string `json:"path"`
	URL       string `json:"url"`
}
