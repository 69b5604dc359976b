package payroll

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/studio-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/performance"
	"github.com/cmlabs-hris/studio-payroll/internal/pkg/duration"
	"github.com/cmlabs-hris/studio-payroll/internal/pkg/storage"
	"github.com/cmlabs-hris/studio-payroll/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Repositories groups the read and write sides a payroll run needs.
type Repositories struct {
	Employees    employee.EmployeeRepository
	Attendance   attendance.AttendanceRepository
	Shifts       attendance.ShiftRepository
	Tasks        performance.TaskRepository
	KPIs         performance.KPIRepository
	ManualScores performance.ManualScoreRepository
	Payslips     payroll.PayslipRepository
	Settings     payroll.FinanceSettingsRepository
}

type PayrollServiceImpl struct {
	repos    Repositories
	engine   *Engine
	location *time.Location
	renderer *PayslipRenderer
	storage  storage.FileStorage
	defaults payroll.FinanceSettings
}

func NewPayrollService(
	repos Repositories,
	engine *Engine,
	location *time.Location,
	renderer *PayslipRenderer,
	fileStorage storage.FileStorage,
	defaults payroll.FinanceSettings,
) payroll.PayrollService {
	if location == nil {
		location = time.Local
	}
	return &PayrollServiceImpl{
		repos:    repos,
		engine:   engine,
		location: location,
		renderer: renderer,
		storage:  fileStorage,
		defaults: defaults,
	}
}

// ========== GENERATION ==========

func (s *PayrollServiceImpl) GeneratePayroll(ctx context.Context, req payroll.GeneratePayrollRequest) ([]payroll.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	period, err := payroll.NewPeriod(req.PeriodYear, req.PeriodMonth)
	if err != nil {
		return nil, err
	}

	input, err := s.loadSnapshot(ctx, period)
	if err != nil {
		return nil, err
	}

	payslips := s.engine.Run(input)

	if err := s.repos.Payslips.ReplacePeriod(ctx, period, payslips); err != nil {
		return nil, fmt.Errorf("failed to store payslips for %s: %w", period, err)
	}

	slog.Info("payroll generated",
		"period", period.String(),
		"eligible", len(payslips),
		"excluded", len(input.Employees)-len(payslips),
		"bonus_pool", input.BonusPool.String(),
		"currency", input.Currency,
	)

	return mapToPayslipResponses(payslips), nil
}

// loadSnapshot reads every collection of the run concurrently. The run itself stays synchronous.
func (s *PayrollServiceImpl) loadSnapshot(ctx context.Context, period payroll.Period) (RunInput, error) {
	from, to := period.Bounds(s.location)
	input := RunInput{Period: period}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		employees, err := s.repos.Employees.ListActive(gctx)
		if err != nil {
			return fmt.Errorf("failed to get employees: %w", err)
		}
		input.Employees = employees
		return nil
	})
	g.Go(func() error {
		records, err := s.repos.Attendance.ListByCheckInRange(gctx, from, to)
		if err != nil {
			return fmt.Errorf("failed to get attendance records: %w", err)
		}
		input.Records = records
		return nil
	})
	g.Go(func() error {
		shifts, err := s.repos.Shifts.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to get shifts: %w", err)
		}
		input.Shifts = shifts
		return nil
	})
	g.Go(func() error {
		tasks, err := s.repos.Tasks.ListCompletedBetween(gctx, from, to)
		if err != nil {
			return fmt.Errorf("failed to get tasks: %w", err)
		}
		input.Tasks = tasks
		return nil
	})
	g.Go(func() error {
		kpis, err := s.repos.KPIs.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to get kpis: %w", err)
		}
		input.KPIs = kpis
		return nil
	})
	g.Go(func() error {
		scores, err := s.repos.ManualScores.ListByPeriod(gctx, period.Year, int(period.Month))
		if err != nil {
			return fmt.Errorf("failed to get manual kpi scores: %w", err)
		}
		input.ManualScores = scores
		return nil
	})
	g.Go(func() error {
		settings, err := s.financeSettings(gctx)
		if err != nil {
			return err
		}
		input.BonusPool = settings.IncentiveBonusPool
		input.Currency = settings.DefaultCurrency
		return nil
	})

	if err := g.Wait(); err != nil {
		return RunInput{}, err
	}
	return input, nil
}

// financeSettings falls back to the configured defaults when no settings row exists.
func (s *PayrollServiceImpl) financeSettings(ctx context.Context) (payroll.FinanceSettings, error) {
	settings, err := s.repos.Settings.Get(ctx)
	if err != nil {
		if errors.Is(err, payroll.ErrFinanceSettingsMissing) {
			slog.Warn("finance settings missing, using configured defaults",
				"bonus_pool", s.defaults.IncentiveBonusPool.String(),
				"currency", s.defaults.DefaultCurrency,
			)
			return s.defaults, nil
		}
		return payroll.FinanceSettings{}, fmt.Errorf("failed to get finance settings: %w", err)
	}
	if settings.DefaultCurrency == "" {
		settings.DefaultCurrency = s.defaults.DefaultCurrency
	}
	if settings.IncentiveBonusPool.IsNegative() {
		settings.IncentiveBonusPool = decimal.Zero
	}
	return settings, nil
}

// ========== PAYSLIPS ==========

func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, id string) (payroll.PayslipResponse, error) {
	payslip, err := s.repos.Payslips.GetByID(ctx, id)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return mapToPayslipResponse(payslip), nil
}

func (s *PayrollServiceImpl) ListPayslips(ctx context.Context, filter payroll.PayslipFilter) (payroll.ListPayslipResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListPayslipResponse{}, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	payslips, totalCount, err := s.repos.Payslips.List(ctx, filter)
	if err != nil {
		return payroll.ListPayslipResponse{}, err
	}

	return payroll.ListPayslipResponse{
		Data:       mapToPayslipResponses(payslips),
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, actorID string, req payroll.UpdatePayslipStatusRequest) (int64, error) {
	return s.transition(ctx, actorID, req, payroll.PayslipStatusPaid)
}

func (s *PayrollServiceImpl) CancelPayslips(ctx context.Context, actorID string, req payroll.UpdatePayslipStatusRequest) (int64, error) {
	return s.transition(ctx, actorID, req, payroll.PayslipStatusCancelled)
}

func (s *PayrollServiceImpl) transition(ctx context.Context, actorID string, req payroll.UpdatePayslipStatusRequest, to payroll.PayslipStatus) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	if validator.IsEmpty(actorID) {
		return 0, payroll.ErrActorRequired
	}

	updated, err := s.repos.Payslips.UpdateStatus(ctx, req.PayslipIDs, payroll.PayslipStatusPending, to, actorID)
	if err != nil {
		return 0, err
	}
	if updated == 0 {
		return 0, payroll.ErrNoPendingPayslips
	}

	slog.Info("payslips updated", "status", string(to), "count", updated, "actor", actorID)
	return updated, nil
}

// ========== SUMMARY & PRINT ==========

func (s *PayrollServiceImpl) GetPayrollSummary(ctx context.Context, year, month int) (payroll.PayrollSummaryResponse, error) {
	period, err := payroll.NewPeriod(year, month)
	if err != nil {
		return payroll.PayrollSummaryResponse{}, err
	}
	return s.repos.Payslips.GetSummary(ctx, period)
}

func (s *PayrollServiceImpl) PrintPayslip(ctx context.Context, id string) (payroll.PrintPayslipResponse, error) {
	payslip, err := s.repos.Payslips.GetByID(ctx, id)
	if err != nil {
		return payroll.PrintPayslipResponse{}, err
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(payslip, &buf); err != nil {
		return payroll.PrintPayslipResponse{}, err
	}

	path := fmt.Sprintf("payslips/%s/%s.pdf", payslip.PayPeriod, payslip.ID)
	stored, err := s.storage.Upload(ctx, &buf, path, "application/pdf")
	if err != nil {
		return payroll.PrintPayslipResponse{}, fmt.Errorf("failed to store payslip pdf: %w", err)
	}

	url, err := s.storage.GetURL(ctx, stored, 0)
	if err != nil {
		return payroll.PrintPayslipResponse{}, fmt.Errorf("failed to resolve payslip url: %w", err)
	}

	return payroll.PrintPayslipResponse{PayslipID: payslip.ID, Path: stored, URL: url}, nil
}

// ========== HELPERS ==========

func mapToPayslipResponse(p payroll.Payslip) payroll.PayslipResponse {
	var processedAt *string
	if p.ProcessedAt != nil {
		str := p.ProcessedAt.Format(time.RFC3339)
		processedAt = &str
	}

	employeeName := ""
	employeeCode := ""
	if p.EmployeeName != nil {
		employeeName = *p.EmployeeName
	}
	if p.EmployeeCode != nil {
		employeeCode = *p.EmployeeCode
	}

	earnings := p.Earnings
	if earnings == nil {
		earnings = employee.Components{}
	}
	deductions := p.Deductions
	if deductions == nil {
		deductions = employee.Components{}
	}

	return payroll.PayslipResponse{
		ID:                 p.ID,
		EmployeeID:         p.EmployeeID,
		EmployeeName:       employeeName,
		EmployeeCode:       employeeCode,
		PayPeriod:          p.PayPeriod,
		Currency:           p.Currency,
		GrossSalary:        p.GrossSalary,
		TotalDeductions:    p.TotalDeductions,
		NetSalary:          p.NetSalary,
		Earnings:           earnings,
		Deductions:         deductions,
		Status:             string(p.Status),
		AttendanceSummary:  p.AttendanceSummary,
		TotalLateness:      duration.Format(p.AttendanceSummary.TotalLatenessMinutes),
		PerformanceSummary: p.PerformanceSummary,
		ProcessedAt:        processedAt,
		ProcessedBy:        p.ProcessedBy,
	}
}

func mapToPayslipResponses(payslips []payroll.Payslip) []payroll.PayslipResponse {
	result := make([]payroll.PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		result = append(result, mapToPayslipResponse(p))
	}
	return result
}
