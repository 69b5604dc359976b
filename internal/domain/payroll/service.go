package payroll

import "context"

type PayrollService interface {
	// GeneratePayroll runs payroll for a month and replaces that month's payslips
	GeneratePayroll(ctx context.Context, req GeneratePayrollRequest) ([]PayslipResponse, error)

	GetPayslip(ctx context.Context, id string) (PayslipResponse, error)
	ListPayslips(ctx context.Context, filter PayslipFilter) (ListPayslipResponse, error)

	// MarkPaid and CancelPayslips only touch pending payslips; actorID is recorded as processed_by
	MarkPaid(ctx context.Context, actorID string, req UpdatePayslipStatusRequest) (int64, error)
	CancelPayslips(ctx context.Context, actorID string, req UpdatePayslipStatusRequest) (int64, error)

	GetPayrollSummary(ctx context.Context, year, month int) (PayrollSummaryResponse, error)

	// PrintPayslip renders the payslip to PDF and returns where it was stored
	PrintPayslip(ctx context.Context, id string) (PrintPayslipResponse, error)
}
