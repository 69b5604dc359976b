package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/studio-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/performance"
	"github.com/cmlabs-hris/studio-payroll/internal/fixtures"
	"github.com/cmlabs-hris/studio-payroll/internal/pkg/database"
	"github.com/cmlabs-hris/studio-payroll/internal/repository/postgresql"
	attendancesvc "github.com/cmlabs-hris/studio-payroll/internal/service/attendance"
	payrollsvc "github.com/cmlabs-hris/studio-payroll/internal/service/payroll"
	performancesvc "github.com/cmlabs-hris/studio-payroll/internal/service/performance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to TEST_DATABASE_URL, applies the schema and empties every table.
// Tests are skipped when no database is configured.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, postgresql.Migrate(ctx, db))

	tables := []string{"payslips", "manual_kpi_scores", "kpis", "tasks", "attendances", "employees", "attendance_shifts", "finance_settings"}
	for _, table := range tables {
		_, err := db.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err)
	}
	return db
}

func createTestEmployee(t *testing.T, db *database.DB, code, name string) string {
	t.Helper()
	var id string
	err := db.QueryRow(context.Background(), `
		INSERT INTO employees (employee_code, full_name) VALUES ($1, $2) RETURNING id
	`, code, name).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestEmployeeRepository_SalaryStructureRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)
	id := createTestEmployee(t, db, "EMP-001", "Ana")

	emp, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, emp.SalaryStructure)

	rate := decimal.NewFromInt(250)
	err = repo.UpdateSalaryStructure(ctx, id, employee.SalaryStructure{
		PayType:    employee.PayTypeHourly,
		HourlyRate: &rate,
		Allowances: employee.Components{{Name: "Meal", Amount: decimal.NewFromInt(500)}},
	})
	require.NoError(t, err)

	list, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].SalaryStructure)
	assert.Equal(t, employee.PayTypeHourly, list[0].SalaryStructure.PayType)
	assert.True(t, list[0].SalaryStructure.Rate().Equal(rate))

	_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_MalformedStructureIsIgnored(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	id := createTestEmployee(t, db, "EMP-002", "Budi")

	_, err := db.Exec(ctx, `UPDATE employees SET salary_structure = '{"pay_type":"weekly"}' WHERE id = $1`, id)
	require.NoError(t, err)

	emp, err := postgresql.NewEmployeeRepository(db).GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, emp.SalaryStructure)
}

func TestPayslipRepository_ReplacePeriodAndStatus(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewPayslipRepository(db)
	period := payroll.Period{Year: 2024, Month: time.May}
	empA := createTestEmployee(t, db, "EMP-001", "Ana")
	empB := createTestEmployee(t, db, "EMP-002", "Budi")

	payslip := func(id, employeeID string, net int64) payroll.Payslip {
		return payroll.Payslip{
			ID:                 id,
			EmployeeID:         employeeID,
			PayPeriod:          period.String(),
			Currency:           "IDR",
			GrossSalary:        decimal.NewFromInt(net),
			TotalDeductions:    decimal.Zero,
			NetSalary:          decimal.NewFromInt(net),
			Earnings:           employee.Components{{Name: "Base Salary (Monthly)", Amount: decimal.NewFromInt(net)}},
			Deductions:         employee.Components{},
			Status:             payroll.PayslipStatusPending,
			AttendanceSummary:  attendance.Summary{LatenessDeduction: decimal.Zero},
			PerformanceSummary: performance.Summary{KPIScore: 2.5, PerformanceBonus: decimal.NewFromInt(100)},
		}
	}
	idA := "3f1f1b4e-8c1d-5a6b-9a5e-111111111111"
	idB := "3f1f1b4e-8c1d-5a6b-9a5e-222222222222"

	require.NoError(t, repo.ReplacePeriod(ctx, period, []payroll.Payslip{payslip(idA, empA, 1000), payslip(idB, empB, 2000)}))
	require.NoError(t, repo.ReplacePeriod(ctx, period, []payroll.Payslip{payslip(idA, empA, 1500)}))

	list, total, err := repo.List(ctx, payroll.PayslipFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.True(t, list[0].NetSalary.Equal(decimal.NewFromInt(1500)))
	require.NotNil(t, list[0].EmployeeName)
	assert.Equal(t, "Ana", *list[0].EmployeeName)

	n, err := repo.UpdateStatus(ctx, []string{idA}, payroll.PayslipStatusPending, payroll.PayslipStatusPaid, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.GetByID(ctx, idA)
	require.NoError(t, err)
	assert.Equal(t, payroll.PayslipStatusPaid, got.Status)
	require.NotNil(t, got.ProcessedBy)
	assert.Equal(t, "user-1", *got.ProcessedBy)

	summary, err := repo.GetSummary(ctx, period)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.PaidCount)
	assert.True(t, summary.TotalPerformanceBonus.Equal(decimal.NewFromInt(100)))

	_, err = repo.GetByID(ctx, idB)
	assert.ErrorIs(t, err, payroll.ErrPayslipNotFound)
}

func TestPayslipRepository_GeneratedPayslipsRoundTripExactly(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewPayslipRepository(db)
	period := payroll.Period{Year: 2024, Month: time.June}

	rate := decimal.NewFromInt(10000)
	var employees []employee.Employee
	scores := performance.ManualScores{}
	for i, name := range []string{"Ana", "Budi", "Citra"} {
		id := createTestEmployee(t, db, fmt.Sprintf("EMP-10%d", i), name)
		employees = append(employees, employee.Employee{
			ID:              id,
			FullName:        name,
			SalaryStructure: &employee.SalaryStructure{PayType: employee.PayTypeMonthly, MonthlyRate: &rate},
		})
		scores[id] = map[string]float64{"m1": 3}
	}

	aggregator := attendancesvc.NewAggregator(time.UTC, attendancesvc.NoLatenessDeduction)
	engine := payrollsvc.NewEngine(aggregator, performancesvc.NewScorer(aggregator, nil))
	generated := engine.Run(payrollsvc.RunInput{
		Period:       period,
		Employees:    employees,
		KPIs:         []performance.KPI{{ID: "m1", NameKey: "teamwork", Type: performance.KPITypeManual, Weight: 1}},
		ManualScores: scores,
		BonusPool:    decimal.NewFromInt(1000),
		Currency:     "IDR",
	})
	require.Len(t, generated, 3)
	require.NoError(t, repo.ReplacePeriod(ctx, period, generated))

	bonusTotal := decimal.Zero
	for _, want := range generated {
		got, err := repo.GetByID(ctx, want.ID)
		require.NoError(t, err)

		assert.True(t, got.GrossSalary.Equal(want.GrossSalary), "gross %s != %s", got.GrossSalary, want.GrossSalary)
		assert.True(t, got.GrossSalary.Equal(got.Earnings.Total()), "gross %s != earnings %s", got.GrossSalary, got.Earnings.Total())
		assert.True(t, got.TotalDeductions.Equal(got.Deductions.Total()))
		assert.True(t, got.NetSalary.Equal(got.GrossSalary.Sub(got.TotalDeductions)))
		bonusTotal = bonusTotal.Add(got.PerformanceSummary.PerformanceBonus)
	}
	assert.True(t, bonusTotal.Equal(decimal.NewFromInt(1000)), bonusTotal.String())
}

func TestSeedDefaults(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	settings := fixtures.GetDefaultFinanceSettings("IDR", decimal.NewFromInt(1000))

	require.NoError(t, postgresql.SeedDefaults(ctx, db, settings))
	require.NoError(t, postgresql.SeedDefaults(ctx, db, settings))

	kpis, err := postgresql.NewKPIRepository(db).List(ctx)
	require.NoError(t, err)
	assert.Len(t, kpis, len(fixtures.GetDefaultKPIs()))

	shifts, err := postgresql.NewShiftRepository(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.True(t, shifts[0].IsDefault)

	stored, err := postgresql.NewFinanceSettingsRepository(db).Get(ctx)
	require.NoError(t, err)
	assert.True(t, stored.IncentiveBonusPool.Equal(decimal.NewFromInt(1000)))
}
