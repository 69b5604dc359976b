package employee

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// StandardHoursPerDay and WorkingDaysPerMonth drive the live estimate.
	StandardHoursPerDay = 8
	WorkingDaysPerMonth = 22
	WorkingDaysPerWeek  = 5

	// StandardMonthlyHours is the hourly-pay basis used by payroll runs.
	StandardMonthlyHours = 176
)

type Employee struct {
	ID              string
	EmployeeCode    string
	FullName        string
	ShiftID         *string
	SalaryStructure *SalaryStructure
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PayType enum
type PayType string

const (
	PayTypeMonthly PayType = "monthly"
	PayTypeHourly  PayType = "hourly"
)

var PayTypeValues = []string{
	string(PayTypeMonthly),
	string(PayTypeHourly),
}

// SalaryStructure is replaced wholesale on every save and read as an immutable snapshot by payroll.
type SalaryStructure struct {
	PayType      PayType          `json:"pay_type"`
	MonthlyRate  *decimal.Decimal `json:"monthly_rate,omitempty"`
	HourlyRate   *decimal.Decimal `json:"hourly_rate,omitempty"`
	OvertimeRate *decimal.Decimal `json:"overtime_rate,omitempty"`
	Allowances   Components       `json:"allowances"`
	Deductions   Components       `json:"deductions"`
}

// Rate returns the rate that is active for the pay type. Missing rates are zero.
func (s SalaryStructure) Rate() decimal.Decimal {
	var rate *decimal.Decimal
	if s.PayType == PayTypeHourly {
		rate = s.HourlyRate
	} else {
		rate = s.MonthlyRate
	}
	if rate == nil {
		return decimal.Zero
	}
	return *rate
}

// DailyRate is monthlyRate/22 for monthly pay and hourlyRate*8 for hourly pay.
func (s SalaryStructure) DailyRate() decimal.Decimal {
	if s.PayType == PayTypeHourly {
		return s.Rate().Mul(decimal.NewFromInt(StandardHoursPerDay))
	}
	return s.Rate().Div(decimal.NewFromInt(WorkingDaysPerMonth))
}

// SalaryComponent is a named earning or deduction line.
type SalaryComponent struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

type Components []SalaryComponent

func (c Components) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c {
		total = total.Add(line.Amount)
	}
	return total
}

// Add appends an empty line.
func (c Components) Add() Components {
	return append(c, SalaryComponent{Amount: decimal.Zero})
}

// Update edits the line at index in place, coercing rawAmount.
func (c Components) Update(index int, name string, rawAmount string) (Components, error) {
	if index < 0 || index >= len(c) {
		return c, ErrLineIndexOutOfRange
	}
	c[index] = SalaryComponent{Name: name, Amount: CoerceAmount(rawAmount)}
	return c, nil
}

func (c Components) Remove(index int) (Components, error) {
	if index < 0 || index >= len(c) {
		return c, ErrLineIndexOutOfRange
	}
	out := make(Components, 0, len(c)-1)
	out = append(out, c[:index]...)
	return append(out, c[index+1:]...), nil
}

// CoerceAmount turns form input into a non-negative amount; anything unparseable is zero.
func CoerceAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
