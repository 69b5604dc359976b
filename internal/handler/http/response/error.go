package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/studio-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/studio-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/studio-payroll/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrNoPendingPayslips):
		Conflict(w, "None of the selected payslips are pending")
	case errors.Is(err, payroll.ErrInvalidStatus):
		Conflict(w, "Invalid payslip status transition")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		ValidationError(w, map[string]string{"period": err.Error()})
	case errors.Is(err, payroll.ErrActorRequired):
		Unauthorized(w, "Authenticated user is required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrSalaryStructureNotFound):
		NotFound(w, "Salary structure not configured")
	case errors.Is(err, employee.ErrInvalidPayType):
		ValidationError(w, map[string]string{"pay_type": "must be 'monthly' or 'hourly'"})
	case errors.Is(err, employee.ErrLineIndexOutOfRange):
		ValidationError(w, map[string]string{"index": err.Error()})

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
