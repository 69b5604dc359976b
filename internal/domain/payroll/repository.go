package payroll

import "context"

type PayslipRepository interface {
	// ReplacePeriod atomically swaps every payslip of the period for the given set.
	ReplacePeriod(ctx context.Context, period Period, payslips []Payslip) error
	GetByID(ctx context.Context, id string) (Payslip, error)
	List(ctx context.Context, filter PayslipFilter) ([]Payslip, int64, error)
	// UpdateStatus moves payslips from one status to another and reports how many changed.
	UpdateStatus(ctx context.Context, ids []string, from, to PayslipStatus, actorID string) (int64, error)
	GetSummary(ctx context.Context, period Period) (PayrollSummaryResponse, error)
}

type FinanceSettingsRepository interface {
	Get(ctx context.Context) (FinanceSettings, error)
}
