package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/studio-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/studio-payroll/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"validation", validator.ValidationErrors{{Field: "period_month", Message: "bad"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"payslip not found", payroll.ErrPayslipNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped not found", fmt.Errorf("get payslip: %w", payroll.ErrPayslipNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"employee not found", employee.ErrEmployeeNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"no structure", employee.ErrSalaryStructureNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"nothing pending", payroll.ErrNoPendingPayslips, http.StatusConflict, "CONFLICT"},
		{"invalid status", payroll.ErrInvalidStatus, http.StatusConflict, "CONFLICT"},
		{"invalid period", payroll.ErrInvalidPeriod, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"invalid pay type", employee.ErrInvalidPayType, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"line index", employee.ErrLineIndexOutOfRange, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"no actor", payroll.ErrActorRequired, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			var body Response
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantErr, body.Error.Code)
		})
	}
}

func TestHandleError_DoesNotLeakInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("pq: password authentication failed"))

	assert.NotContains(t, rec.Body.String(), "password")
}
