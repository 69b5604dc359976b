package payroll

import (
	"fmt"

	"github.com/cmlabs-hris/studio-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/performance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	LabelMonthlyBase       = "Base Salary (Monthly)"
	LabelPerformanceBonus  = "Performance Bonus"
	LabelLatenessDeduction = "Lateness Deduction"
)

var payslipNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:studio-payroll:payslip"))

// PayslipID is stable for an employee and period, so regenerating a month keeps identities.
func PayslipID(employeeID string, period payroll.Period) string {
	return uuid.NewSHA1(payslipNamespace, []byte(employeeID+"/"+period.String())).String()
}

// BaseEarning is the single base-pay line of a structure.
func BaseEarning(structure employee.SalaryStructure) employee.SalaryComponent {
	if structure.PayType == employee.PayTypeHourly {
		rate := structure.Rate()
		return employee.SalaryComponent{
			Name:   fmt.Sprintf("Base Salary (Hourly %s x %d h)", rate.StringFixed(2), employee.StandardMonthlyHours),
			Amount: rate.Mul(decimal.NewFromInt(employee.StandardMonthlyHours)).Round(2),
		}
	}
	return employee.SalaryComponent{Name: LabelMonthlyBase, Amount: structure.Rate().Round(2)}
}

// inCents copies lines with every amount rounded to cents, the precision payslips are stored at.
func inCents(lines employee.Components) employee.Components {
	out := make(employee.Components, 0, len(lines))
	for _, line := range lines {
		out = append(out, employee.SalaryComponent{Name: line.Name, Amount: line.Amount.Round(2)})
	}
	return out
}

// ComposePayslip builds the earnings and deductions breakdown for one employee.
// The employee must carry a salary structure.
func ComposePayslip(
	emp employee.Employee,
	period payroll.Period,
	summary attendance.Summary,
	kpiScore float64,
	bonus decimal.Decimal,
	currency string,
) payroll.Payslip {
	structure := *emp.SalaryStructure

	earnings := employee.Components{BaseEarning(structure)}
	earnings = append(earnings, inCents(structure.Allowances)...)
	bonus = bonus.Round(2)
	if bonus.IsPositive() {
		earnings = append(earnings, employee.SalaryComponent{Name: LabelPerformanceBonus, Amount: bonus})
	}

	deductions := inCents(structure.Deductions)
	summary.LatenessDeduction = summary.LatenessDeduction.Round(2)
	if summary.LatenessDeduction.IsPositive() {
		deductions = append(deductions, employee.SalaryComponent{Name: LabelLatenessDeduction, Amount: summary.LatenessDeduction})
	}

	gross := earnings.Total()
	totalDeductions := deductions.Total()

	name, code := emp.FullName, emp.EmployeeCode
	return payroll.Payslip{
		ID:                 PayslipID(emp.ID, period),
		EmployeeID:         emp.ID,
		PayPeriod:          period.String(),
		Currency:           currency,
		GrossSalary:        gross,
		TotalDeductions:    totalDeductions,
		NetSalary:          gross.Sub(totalDeductions),
		Earnings:           earnings,
		Deductions:         deductions,
		Status:             payroll.PayslipStatusPending,
		AttendanceSummary:  summary,
		PerformanceSummary: performance.Summary{KPIScore: kpiScore, PerformanceBonus: bonus},
		EmployeeName:       &name,
		EmployeeCode:       &code,
	}
}
