package performance

import (
	"math"

	"github.com/cmlabs-hris/studio-payroll/internal/domain/performance"
)

// DefaultProductivityTarget is the completed-task count that earns a full productivity score.
const DefaultProductivityTarget = 20

// DefaultTimeLoggedTargetHours is the logged task time that earns a full time-logged score.
const DefaultTimeLoggedTargetHours = 160

// Signals are the per-employee inputs automatic KPIs are derived from.
type Signals struct {
	DaysWorked     int
	LateDays       int
	CompletedTasks int
	OnTimeTasks    int
	MinutesLogged  int
}

// AutomaticMetric maps signals to a sub-score in [0, MaxSubScore].
type AutomaticMetric func(Signals) float64

// Punctuality is 5 x (1 - lateDays/daysWorked), zero without any days worked.
func Punctuality(s Signals) float64 {
	if s.DaysWorked <= 0 {
		return 0
	}
	return clamp(performance.MaxSubScore * (1 - float64(s.LateDays)/float64(s.DaysWorked)))
}

// TaskEfficiency is 5 x onTime/completed, zero when nothing was completed.
func TaskEfficiency(s Signals) float64 {
	if s.CompletedTasks <= 0 {
		return 0
	}
	return clamp(performance.MaxSubScore * float64(s.OnTimeTasks) / float64(s.CompletedTasks))
}

// Productivity is 5 x min(completed/target, 1).
func Productivity(target int) AutomaticMetric {
	if target <= 0 {
		target = DefaultProductivityTarget
	}
	return func(s Signals) float64 {
		ratio := math.Min(float64(s.CompletedTasks)/float64(target), 1)
		return clamp(performance.MaxSubScore * ratio)
	}
}

// TimeLogged is 5 x min(minutesLogged/(targetHours x 60), 1).
func TimeLogged(targetHours int) AutomaticMetric {
	if targetHours <= 0 {
		targetHours = DefaultTimeLoggedTargetHours
	}
	return func(s Signals) float64 {
		ratio := math.Min(float64(s.MinutesLogged)/float64(targetHours*60), 1)
		return clamp(performance.MaxSubScore * ratio)
	}
}

// DefaultMetrics is the registry of automatic KPIs keyed by KPI name key.
func DefaultMetrics(productivityTarget int) map[string]AutomaticMetric {
	return map[string]AutomaticMetric{
		performance.KPIKeyPunctuality:    Punctuality,
		performance.KPIKeyTaskEfficiency: TaskEfficiency,
		performance.KPIKeyProductivity:   Productivity(productivityTarget),
		performance.KPIKeyTimeLogged:     TimeLogged(DefaultTimeLoggedTargetHours),
	}
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > performance.MaxSubScore {
		return performance.MaxSubScore
	}
	return v
}
