package attendance

import (
	"time"

	"github.com/cmlabs-hris/studio-payroll/internal/domain/attendance"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// DefaultShiftRule is the fallback for employees without an explicit shift: the first shift flagged IsDefault.
const DefaultShiftRule = "first-is-default"

// Aggregator turns raw check-in records into a monthly attendance summary.
// It is pure and safe for concurrent use.
type Aggregator struct {
	location *time.Location
	lateness LatenessPolicy
}

func NewAggregator(location *time.Location, lateness LatenessPolicy) *Aggregator {
	if location == nil {
		location = time.Local
	}
	if lateness == nil {
		lateness = NoLatenessDeduction
	}
	return &Aggregator{location: location, lateness: lateness}
}

func (a *Aggregator) Location() *time.Location {
	return a.location
}

// Summarize counts days worked, late check-ins and lateness minutes for one employee in a month.
// Missing or malformed data degrades to a zeroed summary instead of failing.
func (a *Aggregator) Summarize(emp employee.Employee, records []attendance.Record, shifts []attendance.Shift, year int, month time.Month) attendance.Summary {
	start := time.Date(year, month, 1, 0, 0, 0, 0, a.location)
	end := start.AddDate(0, 1, 0)

	threshold, hasThreshold := -1, false
	if shift, ok := ResolveShift(emp, shifts); ok {
		if minutes, err := LateThresholdMinutes(shift); err == nil {
			threshold, hasThreshold = minutes, true
		}
	}

	summary := attendance.Summary{LatenessDeduction: decimal.Zero}
	days := make(map[string]struct{})
	for _, r := range records {
		if r.EmployeeID != emp.ID || r.CheckInTime.IsZero() {
			continue
		}
		in := r.CheckInTime.In(a.location)
		if in.Before(start) || !in.Before(end) {
			continue
		}
		days[in.Format("2006-01-02")] = struct{}{}

		if !hasThreshold {
			continue
		}
		if late := in.Hour()*60 + in.Minute() - threshold; late > 0 {
			summary.LateDays++
			summary.TotalLatenessMinutes += late
		}
	}
	summary.DaysWorked = len(days)

	if summary.TotalLatenessMinutes > 0 && emp.SalaryStructure != nil {
		summary.LatenessDeduction = a.lateness(summary.TotalLatenessMinutes, *emp.SalaryStructure)
	}
	return summary
}

// ResolveShift returns the explicitly assigned shift, falling back to DefaultShiftRule.
func ResolveShift(emp employee.Employee, shifts []attendance.Shift) (attendance.Shift, bool) {
	if emp.ShiftID != nil {
		for _, s := range shifts {
			if s.ID == *emp.ShiftID {
				return s, true
			}
		}
	}
	for _, s := range shifts {
		if s.IsDefault {
			return s, true
		}
	}
	return attendance.Shift{}, false
}

// LateThresholdMinutes is the shift start plus grace, in minutes past local midnight.
func LateThresholdMinutes(shift attendance.Shift) (int, error) {
	start, err := time.Parse("15:04", shift.StartTime)
	if err != nil {
		return 0, attendance.ErrInvalidShiftStartTime
	}
	grace := shift.LateMarkAfter
	if grace < 0 {
		grace = 0
	}
	return start.Hour()*60 + start.Minute() + grace, nil
}
