package payroll

import "errors"

var (
	ErrInvalidPeriod          = errors.New("invalid payroll period")
	ErrPayslipNotFound        = errors.New("payslip not found")
	ErrNoPendingPayslips      = errors.New("none of the payslips are pending")
	ErrInvalidStatus          = errors.New("invalid payslip status")
	ErrFinanceSettingsMissing = errors.New("finance settings not found")
	ErrActorRequired          = errors.New("an authenticated actor is required")
)
