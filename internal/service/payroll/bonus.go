package payroll

import (
	"sort"

	"github.com/cmlabs-hris/studio-payroll/internal/domain/performance"
	"github.com/shopspring/decimal"
)

var cent = decimal.New(1, -2)

// AllocateBonus splits pool across employees in proportion to their share of the total score.
// Shares are whole cents; leftover cents go to the largest remainders so the shares add up to
// the pool exactly. Nothing is distributed when the total is zero.
func AllocateBonus(scores []performance.EmployeeScore, pool decimal.Decimal) map[string]decimal.Decimal {
	bonuses := make(map[string]decimal.Decimal, len(scores))

	total := decimal.Zero
	for _, s := range scores {
		bonuses[s.EmployeeID] = decimal.Zero
		if s.OverallScore > 0 {
			total = total.Add(decimal.NewFromFloat(s.OverallScore))
		}
	}
	pool = pool.Round(2)
	if !total.IsPositive() || !pool.IsPositive() {
		return bonuses
	}

	type share struct {
		employeeID string
		remainder  decimal.Decimal
	}
	shares := make([]share, 0, len(scores))
	allocated := decimal.Zero
	for _, s := range scores {
		if s.OverallScore <= 0 {
			continue
		}
		exact := pool.Mul(decimal.NewFromFloat(s.OverallScore)).Div(total)
		floored := exact.RoundFloor(2)
		bonuses[s.EmployeeID] = floored
		allocated = allocated.Add(floored)
		shares = append(shares, share{employeeID: s.EmployeeID, remainder: exact.Sub(floored)})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].remainder.GreaterThan(shares[j].remainder)
	})
	leftover := pool.Sub(allocated).Div(cent).IntPart()
	for i := int64(0); i < leftover; i++ {
		s := shares[int(i)%len(shares)]
		bonuses[s.employeeID] = bonuses[s.employeeID].Add(cent)
	}
	// division rounding can overshoot by a cent; take it back from the smallest remainders
	for i := int64(0); i < -leftover; i++ {
		s := shares[len(shares)-1-int(i)%len(shares)]
		bonuses[s.employeeID] = bonuses[s.employeeID].Sub(cent)
	}
	return bonuses
}
