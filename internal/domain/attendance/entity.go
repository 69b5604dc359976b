package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type LocationType string

const (
	LocationTypeOffice LocationType = "office"
	LocationTypeRemote LocationType = "remote"
)

// Record is one check-in event. CheckOutTime is nil while the employee is still checked in.
type Record struct {
	ID           string
	EmployeeID   string
	CheckInTime  time.Time
	CheckOutTime *time.Time
	LocationType LocationType
	Latitude     float64
	Longitude    float64
}

type Shift struct {
	ID            string
	Name          string
	StartTime     string // "HH:MM", local time
	LateMarkAfter int    // grace minutes
	OfficeDays    []time.Weekday
	IsDefault     bool
}

// Summary is computed fresh on every payroll run and embedded in the payslip.
type Summary struct {
	DaysWorked           int             `json:"days_worked"`
	LateDays             int             `json:"late_days"`
	TotalLatenessMinutes int             `json:"total_lateness_minutes"`
	LatenessDeduction    decimal.Decimal `json:"lateness_deduction"`
}
