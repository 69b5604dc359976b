package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"monthly", "hourly"}
	assert.True(t, IsInSlice("hourly", slice))
	assert.False(t, IsInSlice("Hourly", slice))
	assert.False(t, IsInSlice("", nil))
}

func TestValidationErrors(t *testing.T) {
	var err error = ValidationErrors{
		{Field: "pay_type", Message: "is required"},
		{Field: "monthly_rate", Message: "must be non-negative"},
		{Field: "pay_type", Message: "second message"},
	}

	assert.Equal(t, "pay_type: is required; monthly_rate: must be non-negative; pay_type: second message", err.Error())

	var verrs ValidationErrors
	if assert.True(t, errors.As(err, &verrs)) {
		assert.Equal(t, map[string]string{
			"pay_type":     "is required",
			"monthly_rate": "must be non-negative",
		}, verrs.ToMap())
	}
}
