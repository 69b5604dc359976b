package attendance

import (
	"fmt"

	"github.com/cmlabs-hris/studio-payroll/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// LatenessPolicy converts accumulated late minutes into a deduction amount.
// Implementations must be deterministic, monotonic in minutes and zero at zero minutes.
type LatenessPolicy func(totalLatenessMinutes int, structure employee.SalaryStructure) decimal.Decimal

const (
	PolicyProratedDaily = "prorated_daily"
	PolicyPerMinute     = "per_minute"
	PolicyNone          = "none"
)

const minutesPerWorkday = employee.StandardHoursPerDay * 60

// NoLatenessDeduction never deducts.
func NoLatenessDeduction(int, employee.SalaryStructure) decimal.Decimal {
	return decimal.Zero
}

// ProratedDailyRate rounds late minutes up to whole buckets and charges the matching
// fraction of the daily rate: ceil(m/bucket)*bucket/480 * dailyRate.
func ProratedDailyRate(bucketMinutes int) LatenessPolicy {
	if bucketMinutes <= 0 {
		bucketMinutes = 1
	}
	return func(minutes int, structure employee.SalaryStructure) decimal.Decimal {
		if minutes <= 0 {
			return decimal.Zero
		}
		buckets := (minutes + bucketMinutes - 1) / bucketMinutes
		charged := decimal.NewFromInt(int64(buckets * bucketMinutes))
		return structure.DailyRate().
			Mul(charged).
			Div(decimal.NewFromInt(minutesPerWorkday)).
			Round(2)
	}
}

// PerMinute charges a flat amount per late minute.
func PerMinute(rate decimal.Decimal) LatenessPolicy {
	if rate.IsNegative() {
		rate = decimal.Zero
	}
	return func(minutes int, _ employee.SalaryStructure) decimal.Decimal {
		if minutes <= 0 {
			return decimal.Zero
		}
		return rate.Mul(decimal.NewFromInt(int64(minutes)))
	}
}

// NewLatenessPolicy resolves a configured policy name.
func NewLatenessPolicy(name string, bucketMinutes int, perMinuteRate decimal.Decimal) (LatenessPolicy, error) {
	switch name {
	case PolicyProratedDaily, "":
		return ProratedDailyRate(bucketMinutes), nil
	case PolicyPerMinute:
		return PerMinute(perMinuteRate), nil
	case PolicyNone:
		return NoLatenessDeduction, nil
	default:
		return nil, fmt.Errorf("unknown lateness policy %q", name)
	}
}
