package performance

import (
	"math"
	"time"

	"github.com/cmlabs-hris/studio-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/performance"
)

// AttendanceSummarizer supplies the attendance signals for automatic KPIs.
type AttendanceSummarizer interface {
	Summarize(emp employee.Employee, records []attendance.Record, shifts []attendance.Shift, year int, month time.Month) attendance.Summary
	Location() *time.Location
}

// Input is the read-only snapshot one scoring pass works on.
type Input struct {
	Tasks        []performance.Task
	Records      []attendance.Record
	Shifts       []attendance.Shift
	KPIs         []performance.KPI
	ManualScores performance.ManualScores
	Year         int
	Month        time.Month
}

// Scorer blends automatic and manual KPI sub-scores into a weighted average.
type Scorer struct {
	attendance AttendanceSummarizer
	metrics    map[string]AutomaticMetric
}

func NewScorer(summarizer AttendanceSummarizer, metrics map[string]AutomaticMetric) *Scorer {
	if metrics == nil {
		metrics = DefaultMetrics(DefaultProductivityTarget)
	}
	return &Scorer{attendance: summarizer, metrics: metrics}
}

// Score returns the weighted overall score for one employee. KPIs with a non-positive or
// non-finite weight are ignored; a run without any weighted KPI scores zero.
func (s *Scorer) Score(emp employee.Employee, in Input) float64 {
	var signals Signals
	signalsReady := false

	var weighted, totalWeight float64
	for _, kpi := range in.KPIs {
		if !usableWeight(kpi.Weight) {
			continue
		}
		var sub float64
		switch kpi.Type {
		case performance.KPITypeAutomatic:
			if !signalsReady {
				signals = s.Signals(emp, in)
				signalsReady = true
			}
			if metric, ok := s.metrics[kpi.NameKey]; ok {
				sub = clamp(metric(signals))
			}
		case performance.KPITypeManual:
			sub = clamp(in.ManualScores.Lookup(emp.ID, kpi.ID))
		}
		weighted += sub * kpi.Weight
		totalWeight += kpi.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	return clamp(weighted / totalWeight)
}

func usableWeight(w float64) bool {
	return w > 0 && !math.IsNaN(w) && !math.IsInf(w, 0)
}

// ScoreAll scores every employee independently, preserving input order.
func (s *Scorer) ScoreAll(employees []employee.Employee, in Input) []performance.EmployeeScore {
	scores := make([]performance.EmployeeScore, 0, len(employees))
	for _, emp := range employees {
		scores = append(scores, performance.EmployeeScore{
			EmployeeID:   emp.ID,
			OverallScore: s.Score(emp, in),
		})
	}
	return scores
}

// Signals gathers attendance, task counts and logged task time for the employee in the period.
func (s *Scorer) Signals(emp employee.Employee, in Input) Signals {
	summary := s.attendance.Summarize(emp, in.Records, in.Shifts, in.Year, in.Month)
	signals := Signals{DaysWorked: summary.DaysWorked, LateDays: summary.LateDays}

	start := time.Date(in.Year, in.Month, 1, 0, 0, 0, 0, s.attendance.Location())
	end := start.AddDate(0, 1, 0)
	for _, task := range in.Tasks {
		if task.AssigneeID != emp.ID || task.Status != performance.TaskStatusDone || task.CompletedAt == nil {
			continue
		}
		if task.CompletedAt.Before(start) || !task.CompletedAt.Before(end) {
			continue
		}
		signals.CompletedTasks++
		if task.TimeSpentMinutes > 0 {
			signals.MinutesLogged += task.TimeSpentMinutes
		}
		if task.DueDate == nil || !task.CompletedAt.After(*task.DueDate) {
			signals.OnTimeTasks++
		}
	}
	return signals
}
