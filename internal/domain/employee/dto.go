package employee

import (
	"encoding/json"
	"strings"

	"github.com/cmlabs-hris/studio-payroll/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// RawAmount keeps a line amount exactly as the form sent it. Strings and bare numbers are both
// accepted; CoerceAmount turns it into money when the structure is built.
type RawAmount string

func (a *RawAmount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*a = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = RawAmount(s)
		return nil
	}
	*a = RawAmount(raw)
	return nil
}

type SalaryComponentRequest struct {
	Name   string    `json:"name"`
	Amount RawAmount `json:"amount"`
}

type SaveSalaryStructureRequest struct {
	PayType      string                   `json:"pay_type"`
	MonthlyRate  *decimal.Decimal         `json:"monthly_rate,omitempty"`
	HourlyRate   *decimal.Decimal         `json:"hourly_rate,omitempty"`
	OvertimeRate *decimal.Decimal         `json:"overtime_rate,omitempty"`
	Allowances   []SalaryComponentRequest `json:"allowances"`
	Deductions   []SalaryComponentRequest `json:"deductions"`
}

func (r *SaveSalaryStructureRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.PayType, PayTypeValues) {
		errs = append(errs, validator.ValidationError{Field: "pay_type", Message: "must be 'monthly' or 'hourly'"})
	}
	switch PayType(r.PayType) {
	case PayTypeMonthly:
		if r.MonthlyRate == nil {
			errs = append(errs, validator.ValidationError{Field: "monthly_rate", Message: "is required for monthly pay"})
		}
	case PayTypeHourly:
		if r.HourlyRate == nil {
			errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "is required for hourly pay"})
		}
	}
	if r.MonthlyRate != nil && r.MonthlyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "monthly_rate", Message: "must be non-negative"})
	}
	if r.HourlyRate != nil && r.HourlyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be non-negative"})
	}
	if r.OvertimeRate != nil && r.OvertimeRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_rate", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToStructure builds the snapshot that gets stored on the employee.
func (r *SaveSalaryStructureRequest) ToStructure() SalaryStructure {
	return SalaryStructure{
		PayType:      PayType(r.PayType),
		MonthlyRate:  r.MonthlyRate,
		HourlyRate:   r.HourlyRate,
		OvertimeRate: r.OvertimeRate,
		Allowances:   toComponents(r.Allowances),
		Deductions:   toComponents(r.Deductions),
	}
}

// toComponents replays the form rows through the line operations. Rows left blank are dropped.
func toComponents(lines []SalaryComponentRequest) Components {
	out := make(Components, 0, len(lines))
	for _, l := range lines {
		out = out.Add()
		out, _ = out.Update(len(out)-1, strings.TrimSpace(l.Name), string(l.Amount))
	}
	for i := len(out) - 1; i >= 0; i-- {
		if out[i].Name == "" && out[i].Amount.IsZero() {
			out, _ = out.Remove(i)
		}
	}
	return out
}

type SalaryStructureResponse struct {
	EmployeeID   string           `json:"employee_id"`
	EmployeeName string           `json:"employee_name"`
	PayType      string           `json:"pay_type"`
	MonthlyRate  *decimal.Decimal `json:"monthly_rate,omitempty"`
	HourlyRate   *decimal.Decimal `json:"hourly_rate,omitempty"`
	OvertimeRate *decimal.Decimal `json:"overtime_rate,omitempty"`
	Allowances   Components       `json:"allowances"`
	Deductions   Components       `json:"deductions"`
	Estimate     EstimateResponse `json:"estimate"`
}

type EstimateResponse struct {
	Daily           decimal.Decimal `json:"daily"`
	Weekly          decimal.Decimal `json:"weekly"`
	GrossPay        decimal.Decimal `json:"gross_pay"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`
}
