package performance

import (
	"time"

	"github.com/shopspring/decimal"
)

// KPIType enum
type KPIType string

const (
	KPITypeAutomatic KPIType = "automatic"
	KPITypeManual    KPIType = "manual"
)

// Well-known automatic KPI keys.
const (
	KPIKeyPunctuality    = "punctuality"
	KPIKeyTaskEfficiency = "task_efficiency"
	KPIKeyProductivity   = "productivity"
	KPIKeyTimeLogged     = "time_logged"
)

// MaxSubScore bounds every KPI component score.
const MaxSubScore = 5.0

type KPI struct {
	ID      string
	NameKey string
	Type    KPIType
	Weight  float64
}

// TaskStatus enum
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

type Task struct {
	ID               string
	AssigneeID       string
	Title            string
	Status           TaskStatus
	DueDate          *time.Time
	CompletedAt      *time.Time
	TimeSpentMinutes int
}

// ManualScores maps employeeID -> kpiID -> score.
type ManualScores map[string]map[string]float64

func (m ManualScores) Lookup(employeeID, kpiID string) float64 {
	byKPI, ok := m[employeeID]
	if !ok {
		return 0
	}
	return byKPI[kpiID]
}

type EmployeeScore struct {
	EmployeeID   string
	OverallScore float64
}

type Summary struct {
	KPIScore         float64         `json:"kpi_score"`
	PerformanceBonus decimal.Decimal `json:"performance_bonus"`
}
