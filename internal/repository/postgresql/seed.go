package postgresql

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/studio-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/studio-payroll/internal/fixtures"
	"github.com/cmlabs-hris/studio-payroll/internal/pkg/database"
)

// SeedDefaults fills empty KPI, shift and finance settings tables. Existing rows are left alone.
func SeedDefaults(ctx context.Context, db *database.DB, settings payroll.FinanceSettings) error {
	return WithTransaction(ctx, db, func(ctx context.Context) error {
		q := GetQuerier(ctx, db)

		var kpiCount, shiftCount, settingsCount int
		err := q.QueryRow(ctx, `
			SELECT
				(SELECT COUNT(*) FROM kpis),
				(SELECT COUNT(*) FROM attendance_shifts),
				(SELECT COUNT(*) FROM finance_settings)
		`).Scan(&kpiCount, &shiftCount, &settingsCount)
		if err != nil {
			return fmt.Errorf("failed to inspect seed tables: %w", err)
		}

		if kpiCount == 0 {
			kpiRepo := &kpiRepositoryImpl{db: db}
			for _, k := range fixtures.GetDefaultKPIs() {
				if _, err := kpiRepo.Create(ctx, k); err != nil {
					return err
				}
			}
			slog.Info("seeded default kpis")
		}

		if shiftCount == 0 {
			shiftRepo := &shiftRepositoryImpl{db: db}
			if _, err := shiftRepo.Create(ctx, fixtures.GetDefaultShift()); err != nil {
				return err
			}
			slog.Info("seeded default shift")
		}

		if settingsCount == 0 {
			settingsRepo := &financeSettingsRepositoryImpl{db: db}
			if err := settingsRepo.Upsert(ctx, settings); err != nil {
				return err
			}
			slog.Info("seeded finance settings", "currency", settings.DefaultCurrency)
		}

		return nil
	})
}
