package payroll

import (
	"github.com/cmlabs-hris/studio-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/performance"
	attendancesvc "github.com/cmlabs-hris/studio-payroll/internal/service/attendance"
	performancesvc "github.com/cmlabs-hris/studio-payroll/internal/service/performance"
	"github.com/shopspring/decimal"
)

// RunInput is the read-only snapshot of one payroll run.
type RunInput struct {
	Period       payroll.Period
	Employees    []employee.Employee
	Records      []attendance.Record
	Shifts       []attendance.Shift
	Tasks        []performance.Task
	KPIs         []performance.KPI
	ManualScores performance.ManualScores
	BonusPool    decimal.Decimal
	Currency     string
}

// Engine computes payslips from a snapshot. It keeps no state between runs.
type Engine struct {
	aggregator *attendancesvc.Aggregator
	scorer     *performancesvc.Scorer
}

func NewEngine(aggregator *attendancesvc.Aggregator, scorer *performancesvc.Scorer) *Engine {
	return &Engine{aggregator: aggregator, scorer: scorer}
}

// Run produces one payslip per employee with a salary structure, in input order.
func (e *Engine) Run(in RunInput) []payroll.Payslip {
	eligible := Eligible(in.Employees)

	scoring := performancesvc.Input{
		Tasks:        in.Tasks,
		Records:      in.Records,
		Shifts:       in.Shifts,
		KPIs:         in.KPIs,
		ManualScores: in.ManualScores,
		Year:         in.Period.Year,
		Month:        in.Period.Month,
	}
	scores := e.scorer.ScoreAll(eligible, scoring)
	bonuses := AllocateBonus(scores, in.BonusPool)

	payslips := make([]payroll.Payslip, 0, len(eligible))
	for i, emp := range eligible {
		summary := e.aggregator.Summarize(emp, in.Records, in.Shifts, in.Period.Year, in.Period.Month)
		payslips = append(payslips, ComposePayslip(emp, in.Period, summary, scores[i].OverallScore, bonuses[emp.ID], in.Currency))
	}
	return payslips
}

// Eligible keeps employees that have a salary structure.
func Eligible(employees []employee.Employee) []employee.Employee {
	out := make([]employee.Employee, 0, len(employees))
	for _, emp := range employees {
		if emp.SalaryStructure != nil {
			out = append(out, emp)
		}
	}
	return out
}
