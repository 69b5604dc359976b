package payroll

import (
	"testing"

	"github.com/cmlabs-hris/studio-payroll/internal/domain/performance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAllocateBonus_Proportional(t *testing.T) {
	scores := []performance.EmployeeScore{
		{EmployeeID: "a", OverallScore: 80},
		{EmployeeID: "b", OverallScore: 20},
	}

	got := AllocateBonus(scores, decimal.NewFromInt(1000))

	assert.True(t, got["a"].Equal(decimal.NewFromInt(800)), got["a"].String())
	assert.True(t, got["b"].Equal(decimal.NewFromInt(200)), got["b"].String())
}

func TestAllocateBonus_Conservation(t *testing.T) {
	cases := []struct {
		name   string
		scores []float64
		pool   string
	}{
		{"thirds", []float64{1, 1, 1}, "1000"},
		{"uneven", []float64{3.7, 1.25, 4.999, 0.01}, "12345.67"},
		{"with zero", []float64{0, 2.5, 2.5}, "500"},
		{"single", []float64{0.3}, "99.99"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			scores := make([]performance.EmployeeScore, len(c.scores))
			for i, s := range c.scores {
				scores[i] = performance.EmployeeScore{EmployeeID: string(rune('a' + i)), OverallScore: s}
			}
			pool := decimal.RequireFromString(c.pool)

			got := AllocateBonus(scores, pool)

			sum := decimal.Zero
			for _, b := range got {
				sum = sum.Add(b)
			}
			assert.True(t, sum.Equal(pool), "sum=%s pool=%s", sum, pool)
			for id, b := range got {
				assert.True(t, b.Equal(b.Round(2)), "%s has sub-cent bonus %s", id, b)
			}
		})
	}
}

func TestAllocateBonus_LeftoverCentsGoToLargestRemainders(t *testing.T) {
	scores := []performance.EmployeeScore{
		{EmployeeID: "a", OverallScore: 3},
		{EmployeeID: "b", OverallScore: 3},
		{EmployeeID: "c", OverallScore: 3},
	}

	got := AllocateBonus(scores, decimal.NewFromInt(1000))

	assert.True(t, got["a"].Equal(dec("333.34")), got["a"].String())
	assert.True(t, got["b"].Equal(dec("333.33")), got["b"].String())
	assert.True(t, got["c"].Equal(dec("333.33")), got["c"].String())

	// 2/3 of 0.05 = 0.0333.., 1/3 = 0.0166..; the larger remainder takes the spare cent
	got = AllocateBonus([]performance.EmployeeScore{
		{EmployeeID: "small", OverallScore: 1},
		{EmployeeID: "large", OverallScore: 2},
	}, dec("0.05"))
	assert.True(t, got["small"].Equal(dec("0.01")), got["small"].String())
	assert.True(t, got["large"].Equal(dec("0.04")), got["large"].String())
}

func TestAllocateBonus_ZeroScores(t *testing.T) {
	scores := []performance.EmployeeScore{
		{EmployeeID: "a", OverallScore: 0},
		{EmployeeID: "b", OverallScore: 0},
	}

	got := AllocateBonus(scores, decimal.NewFromInt(1000))

	assert.Len(t, got, 2)
	for id, b := range got {
		assert.True(t, b.IsZero(), id)
	}
}

func TestAllocateBonus_EmptyAndZeroPool(t *testing.T) {
	assert.Empty(t, AllocateBonus(nil, decimal.NewFromInt(1000)))

	got := AllocateBonus([]performance.EmployeeScore{{EmployeeID: "a", OverallScore: 4}}, decimal.Zero)
	assert.True(t, got["a"].IsZero())
}

func TestAllocateBonus_TiesSplitEvenly(t *testing.T) {
	scores := []performance.EmployeeScore{
		{EmployeeID: "a", OverallScore: 2.5},
		{EmployeeID: "b", OverallScore: 2.5},
	}

	got := AllocateBonus(scores, decimal.NewFromInt(300))

	assert.True(t, got["a"].Equal(got["b"]))
	assert.True(t, got["a"].Equal(decimal.NewFromInt(150)))
}
