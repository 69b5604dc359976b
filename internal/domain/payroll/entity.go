package payroll

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/studio-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/performance"
	"github.com/shopspring/decimal"
)

// Period is a calendar month.
type Period struct {
	Year  int
	Month time.Month
}

func NewPeriod(year, month int) (Period, error) {
	if month < 1 || month > 12 || year < 1 {
		return Period{}, ErrInvalidPeriod
	}
	return Period{Year: year, Month: time.Month(month)}, nil
}

// ParsePeriod accepts "YYYY-MM".
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, ErrInvalidPeriod
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Bounds returns [start, end) at local midnight in loc.
func (p Period) Bounds(loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}
	start := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// PayslipStatus enum
type PayslipStatus string

const (
	PayslipStatusPending   PayslipStatus = "pending"
	PayslipStatusPaid      PayslipStatus = "paid"
	PayslipStatusCancelled PayslipStatus = "cancelled"
)

var PayslipStatusValues = []string{
	string(PayslipStatusPending),
	string(PayslipStatusPaid),
	string(PayslipStatusCancelled),
}

// Payslip - Generated payroll result for one employee and month
type Payslip struct {
	ID                 string
	EmployeeID         string
	PayPeriod          string // YYYY-MM
	Currency           string
	GrossSalary        decimal.Decimal
	TotalDeductions    decimal.Decimal
	NetSalary          decimal.Decimal
	Earnings           employee.Components
	Deductions         employee.Components
	Status             PayslipStatus
	AttendanceSummary  attendance.Summary
	PerformanceSummary performance.Summary
	ProcessedAt        *time.Time
	ProcessedBy        *string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// FinanceSettings - company-wide finance configuration used by payroll runs
type FinanceSettings struct {
	IncentiveBonusPool decimal.Decimal
	DefaultCurrency    string
	UpdatedAt          time.Time
}
