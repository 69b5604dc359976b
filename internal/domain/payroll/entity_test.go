package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriod(t *testing.T) {
	p, err := NewPeriod(2024, 2)
	require.NoError(t, err)
	assert.Equal(t, "2024-02", p.String())

	_, err = NewPeriod(2024, 13)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	parsed, err := ParsePeriod("2023-12")
	require.NoError(t, err)
	assert.Equal(t, Period{Year: 2023, Month: time.December}, parsed)

	_, err = ParsePeriod("12/2023")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestPeriod_Bounds(t *testing.T) {
	loc := time.FixedZone("WIB", 7*60*60)

	start, end := Period{Year: 2023, Month: time.December}.Bounds(loc)

	assert.Equal(t, time.Date(2023, time.December, 1, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, loc), end)
}

func TestGeneratePayrollRequest_Validate(t *testing.T) {
	assert.NoError(t, (&GeneratePayrollRequest{PeriodMonth: 1, PeriodYear: 2024}).Validate())
	assert.Error(t, (&GeneratePayrollRequest{PeriodMonth: 0, PeriodYear: 2024}).Validate())
	assert.Error(t, (&GeneratePayrollRequest{PeriodMonth: 6, PeriodYear: 1999}).Validate())
}

func TestPayslipFilter_Validate(t *testing.T) {
	status := "archived"
	assert.Error(t, (&PayslipFilter{Status: &status}).Validate())

	status = "paid"
	period := "2024-05"
	assert.NoError(t, (&PayslipFilter{Status: &status, PayPeriod: &period}).Validate())
}
