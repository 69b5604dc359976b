package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/studio-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/studio-payroll/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payslipRepositoryImpl struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payroll.PayslipRepository {
	return &payslipRepositoryImpl{db: db}
}

const payslipColumns = `
	ps.id, ps.employee_id, ps.pay_period, ps.currency, ps.gross_salary, ps.total_deductions, ps.net_salary,
	ps.earnings, ps.deductions, ps.status, ps.attendance_summary, ps.performance_summary,
	ps.processed_at, ps.processed_by, ps.created_at, ps.updated_at,
	e.full_name, e.employee_code`

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var p payroll.Payslip
	var earnings, deductions, attendanceSummary, performanceSummary []byte
	if err := row.Scan(
		&p.ID, &p.EmployeeID, &p.PayPeriod, &p.Currency, &p.GrossSalary, &p.TotalDeductions, &p.NetSalary,
		&earnings, &deductions, &p.Status, &attendanceSummary, &performanceSummary,
		&p.ProcessedAt, &p.ProcessedBy, &p.CreatedAt, &p.UpdatedAt,
		&p.EmployeeName, &p.EmployeeCode,
	); err != nil {
		return payroll.Payslip{}, err
	}

	for _, field := range []struct {
		raw  []byte
		into any
	}{
		{earnings, &p.Earnings},
		{deductions, &p.Deductions},
		{attendanceSummary, &p.AttendanceSummary},
		{performanceSummary, &p.PerformanceSummary},
	} {
		if err := json.Unmarshal(field.raw, field.into); err != nil {
			return payroll.Payslip{}, fmt.Errorf("failed to decode payslip %s: %w", p.ID, err)
		}
	}

	return p, nil
}

// ReplacePeriod implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) ReplacePeriod(ctx context.Context, period payroll.Period, payslips []payroll.Payslip) error {
	batch := &pgx.Batch{}
	for _, p := range payslips {
		earnings, err := json.Marshal(p.Earnings)
		if err != nil {
			return fmt.Errorf("failed to encode earnings: %w", err)
		}
		deductions, err := json.Marshal(p.Deductions)
		if err != nil {
			return fmt.Errorf("failed to encode deductions: %w", err)
		}
		attendanceSummary, err := json.Marshal(p.AttendanceSummary)
		if err != nil {
			return fmt.Errorf("failed to encode attendance summary: %w", err)
		}
		performanceSummary, err := json.Marshal(p.PerformanceSummary)
		if err != nil {
			return fmt.Errorf("failed to encode performance summary: %w", err)
		}

		batch.Queue(`
			INSERT INTO payslips (
				id, employee_id, pay_period, currency, gross_salary, total_deductions, net_salary,
				earnings, deductions, status, attendance_summary, performance_summary
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`,
			p.ID, p.EmployeeID, p.PayPeriod, p.Currency, p.GrossSalary, p.TotalDeductions, p.NetSalary,
			earnings, deductions, p.Status, attendanceSummary, performanceSummary,
		)
	}

	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		if _, err := q.Exec(ctx, `DELETE FROM payslips WHERE pay_period = $1`, period.String()); err != nil {
			return fmt.Errorf("failed to clear payslips for %s: %w", period, err)
		}
		if batch.Len() == 0 {
			return nil
		}

		results := q.SendBatch(ctx, batch)
		for range payslips {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("failed to insert payslip: %w", err)
			}
		}
		return results.Close()
	})
}

// GetByID implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips ps
		JOIN employees e ON ps.employee_id = e.id
		WHERE ps.id::text = $1
	`

	p, err := scanPayslip(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	return p, nil
}

// List implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) List(ctx context.Context, filter payroll.PayslipFilter) ([]payroll.Payslip, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM payslips ps
		JOIN employees e ON ps.employee_id = e.id
		WHERE 1 = 1
	`
	args := []any{}
	argIdx := 1

	if filter.PayPeriod != nil {
		baseQuery += fmt.Sprintf(" AND ps.pay_period = $%d", argIdx)
		args = append(args, *filter.PayPeriod)
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND ps.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND ps.employee_id::text = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payslips: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`
		SELECT %s
		%s
		ORDER BY ps.pay_period DESC, e.employee_code ASC
		LIMIT $%d OFFSET $%d
	`, payslipColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var payslips []payroll.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payslips: %w", err)
	}

	return payslips, totalCount, nil
}

// UpdateStatus implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) UpdateStatus(ctx context.Context, ids []string, from, to payroll.PayslipStatus, actorID string) (int64, error) {
	if from == to || to == payroll.PayslipStatusPending {
		return 0, payroll.ErrInvalidStatus
	}

	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips
		SET status = $1, processed_at = NOW(), processed_by = $2, updated_at = NOW()
		WHERE id::text = ANY($3) AND status = $4
	`

	tag, err := q.Exec(ctx, query, to, actorID, ids, from)
	if err != nil {
		return 0, fmt.Errorf("failed to update payslip status: %w", err)
	}

	return tag.RowsAffected(), nil
}

// GetSummary implements payroll.PayslipRepository. Cancelled payslips are counted but not totalled.
func (r *payslipRepositoryImpl) GetSummary(ctx context.Context, period payroll.Period) (payroll.PayrollSummaryResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) AS total_employees,
			COALESCE(SUM(gross_salary) FILTER (WHERE status <> 'cancelled'), 0),
			COALESCE(SUM(total_deductions) FILTER (WHERE status <> 'cancelled'), 0),
			COALESCE(SUM(net_salary) FILTER (WHERE status <> 'cancelled'), 0),
			COALESCE(SUM((performance_summary->>'performance_bonus')::numeric) FILTER (WHERE status <> 'cancelled'), 0),
			COALESCE(SUM((attendance_summary->>'lateness_deduction')::numeric) FILTER (WHERE status <> 'cancelled'), 0),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'paid'),
			COUNT(*) FILTER (WHERE status = 'cancelled')
		FROM payslips
		WHERE pay_period = $1
	`

	summary := payroll.PayrollSummaryResponse{PayPeriod: period.String()}
	err := q.QueryRow(ctx, query, period.String()).Scan(
		&summary.TotalEmployees, &summary.TotalGrossSalary, &summary.TotalDeductions, &summary.TotalNetSalary,
		&summary.TotalPerformanceBonus, &summary.TotalLatenessDeduction,
		&summary.PendingCount, &summary.PaidCount, &summary.CancelledCount,
	)
	if err != nil {
		return payroll.PayrollSummaryResponse{}, fmt.Errorf("failed to get payroll summary: %w", err)
	}

	return summary, nil
}

type financeSettingsRepositoryImpl struct {
	db *database.DB
}

func NewFinanceSettingsRepository(db *database.DB) payroll.FinanceSettingsRepository {
	return &financeSettingsRepositoryImpl{db: db}
}

// Get implements payroll.FinanceSettingsRepository.
func (r *financeSettingsRepositoryImpl) Get(ctx context.Context) (payroll.FinanceSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT incentive_bonus_pool, default_currency, updated_at FROM finance_settings LIMIT 1`

	var s payroll.FinanceSettings
	if err := q.QueryRow(ctx, query).Scan(&s.IncentiveBonusPool, &s.DefaultCurrency, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.FinanceSettings{}, payroll.ErrFinanceSettingsMissing
		}
		return payroll.FinanceSettings{}, fmt.Errorf("failed to get finance settings: %w", err)
	}

	return s, nil
}

// Upsert stores the single finance settings row.
func (r *financeSettingsRepositoryImpl) Upsert(ctx context.Context, s payroll.FinanceSettings) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO finance_settings (id, incentive_bonus_pool, default_currency)
		VALUES (TRUE, $1, $2)
		ON CONFLICT (id) DO UPDATE SET
			incentive_bonus_pool = EXCLUDED.incentive_bonus_pool,
			default_currency = EXCLUDED.default_currency,
			updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, s.IncentiveBonusPool, s.DefaultCurrency); err != nil {
		return fmt.Errorf("failed to upsert finance settings: %w", err)
	}
	return nil
}
