package payroll

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/cmlabs-hris/studio-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/performance"
	attendancesvc "github.com/cmlabs-hris/studio-payroll/internal/service/attendance"
	performancesvc "github.com/cmlabs-hris/studio-payroll/internal/service/performance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	aggregator := attendancesvc.NewAggregator(time.UTC, attendancesvc.ProratedDailyRate(15))
	scorer := performancesvc.NewScorer(aggregator, performancesvc.DefaultMetrics(10))
	return NewEngine(aggregator, scorer)
}

func sampleRunInput() RunInput {
	return RunInput{
		Period: may2024,
		Employees: []employee.Employee{
			{ID: "a", FullName: "Ana", SalaryStructure: &employee.SalaryStructure{PayType: employee.PayTypeMonthly, MonthlyRate: decPtr("10000")}},
			{ID: "x", FullName: "No Structure"},
			{ID: "b", FullName: "Budi", SalaryStructure: &employee.SalaryStructure{PayType: employee.PayTypeHourly, HourlyRate: decPtr("250")}},
		},
		Shifts: []attendance.Shift{{ID: "s1", StartTime: "09:00", IsDefault: true}},
		KPIs: []performance.KPI{
			{ID: "m1", NameKey: "leadership", Type: performance.KPITypeManual, Weight: 100},
		},
		ManualScores: performance.ManualScores{"a": {"m1": 4}, "b": {"m1": 1}},
		BonusPool:    decimal.NewFromInt(1000),
		Currency:     "IDR",
	}
}

func TestEngine_RunEndToEnd(t *testing.T) {
	payslips := newTestEngine().Run(sampleRunInput())

	require.Len(t, payslips, 2)
	a, b := payslips[0], payslips[1]
	assert.Equal(t, "a", a.EmployeeID)
	assert.Equal(t, "b", b.EmployeeID)

	assert.True(t, a.PerformanceSummary.PerformanceBonus.Equal(dec("800")), a.PerformanceSummary.PerformanceBonus.String())
	assert.True(t, b.PerformanceSummary.PerformanceBonus.Equal(dec("200")), b.PerformanceSummary.PerformanceBonus.String())
	assert.InDelta(t, 4.0, a.PerformanceSummary.KPIScore, 1e-9)

	assert.True(t, a.GrossSalary.Equal(dec("10800")))
	assert.True(t, a.NetSalary.Equal(dec("10800")))
	assert.Empty(t, a.Deductions)

	assert.True(t, b.Earnings[0].Amount.Equal(dec("44000")))
	for _, p := range payslips {
		assertTotals(t, p)
	}
}

func TestEngine_RunIsIdempotent(t *testing.T) {
	engine := newTestEngine()
	in := sampleRunInput()
	in.Records = []attendance.Record{
		{EmployeeID: "a", CheckInTime: time.Date(2024, time.May, 6, 9, 40, 0, 0, time.UTC)},
	}

	first := engine.Run(in)
	second := engine.Run(in)

	assert.Equal(t, first, second)
}

func TestEngine_ZeroScoresDistributeNothing(t *testing.T) {
	in := sampleRunInput()
	in.ManualScores = nil

	payslips := newTestEngine().Run(in)

	require.Len(t, payslips, 2)
	for _, p := range payslips {
		assert.True(t, p.PerformanceSummary.PerformanceBonus.IsZero())
		for _, line := range p.Earnings {
			assert.NotEqual(t, LabelPerformanceBonus, line.Name)
		}
	}
}

func TestEngine_LatenessFlowsIntoDeductions(t *testing.T) {
	in := sampleRunInput()
	in.Records = []attendance.Record{
		{EmployeeID: "b", CheckInTime: time.Date(2024, time.May, 6, 9, 20, 0, 0, time.UTC)},
		{EmployeeID: "a", CheckInTime: time.Date(2024, time.May, 6, 8, 50, 0, 0, time.UTC)},
	}

	payslips := newTestEngine().Run(in)

	require.Len(t, payslips, 2)
	a, b := payslips[0], payslips[1]
	assert.Equal(t, 0, a.AttendanceSummary.TotalLatenessMinutes)
	assert.Empty(t, a.Deductions)

	assert.Equal(t, 20, b.AttendanceSummary.TotalLatenessMinutes)
	require.Len(t, b.Deductions, 1)
	// 30 charged minutes of a 2000 day
	assert.True(t, b.Deductions[0].Amount.Equal(dec("125")), b.Deductions[0].Amount.String())
}

func TestEngine_NoEligibleEmployees(t *testing.T) {
	in := sampleRunInput()
	in.Employees = []employee.Employee{{ID: "x"}}

	assert.Empty(t, newTestEngine().Run(in))
}

func TestEngine_EqualScoresKeepPayslipIdentitiesInCents(t *testing.T) {
	in := sampleRunInput()
	in.Employees = []employee.Employee{
		{ID: "a", SalaryStructure: &employee.SalaryStructure{PayType: employee.PayTypeMonthly, MonthlyRate: decPtr("10000")}},
		{ID: "b", SalaryStructure: &employee.SalaryStructure{PayType: employee.PayTypeMonthly, MonthlyRate: decPtr("10000")}},
		{ID: "c", SalaryStructure: &employee.SalaryStructure{PayType: employee.PayTypeMonthly, MonthlyRate: decPtr("10000")}},
	}
	in.ManualScores = performance.ManualScores{"a": {"m1": 3}, "b": {"m1": 3}, "c": {"m1": 3}}

	payslips := newTestEngine().Run(in)

	require.Len(t, payslips, 3)
	pool := decimal.Zero
	for _, p := range payslips {
		pool = pool.Add(p.PerformanceSummary.PerformanceBonus)
		assert.True(t, p.GrossSalary.Equal(p.GrossSalary.Round(2)), p.GrossSalary.String())
		assertTotals(t, p)
	}
	assert.True(t, pool.Equal(dec("1000")), pool.String())
	assert.True(t, payslips[0].GrossSalary.Equal(dec("10333.34")))
	assert.True(t, payslips[1].GrossSalary.Equal(dec("10333.33")))
}

func TestEngine_NaNWeightStillProducesStorablePayslips(t *testing.T) {
	in := sampleRunInput()
	in.KPIs = append(in.KPIs, performance.KPI{ID: "m2", NameKey: "broken", Type: performance.KPITypeManual, Weight: math.NaN()})

	payslips := newTestEngine().Run(in)

	require.Len(t, payslips, 2)
	assert.True(t, payslips[0].PerformanceSummary.PerformanceBonus.Equal(dec("800")))
	for _, p := range payslips {
		_, err := json.Marshal(p.PerformanceSummary)
		assert.NoError(t, err)
	}
}
