package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/studio-payroll/internal/domain/payroll"
	"github.com/cmlabs-hris/studio-payroll/internal/handler/http/middleware"
	"github.com/cmlabs-hris/studio-payroll/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	GeneratePayroll(w http.ResponseWriter, r *http.Request)

	// Payslips
	ListPayslips(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)
	PrintPayslip(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	CancelPayslips(w http.ResponseWriter, r *http.Request)

	GetPayrollSummary(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) GeneratePayroll(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.GeneratePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll generated", result)
}

func (h *payrollHandlerImpl) ListPayslips(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := payroll.PayslipFilter{}

	if page, err := strconv.Atoi(query.Get("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if period := query.Get("pay_period"); period != "" {
		filter.PayPeriod = &period
	}
	if status := query.Get("status"); status != "" {
		filter.Status = &status
	}
	if employeeID := query.Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}

	result, err := h.payrollService.ListPayslips(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *payrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetPayslip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) PrintPayslip(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.PrintPayslip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdatePayslipStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	updated, err := h.payrollService.MarkPaid(r.Context(), middleware.ActorID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslips marked as paid", map[string]int64{"updated": updated})
}

func (h *payrollHandlerImpl) CancelPayslips(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdatePayslipStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	updated, err := h.payrollService.CancelPayslips(r.Context(), middleware.ActorID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslips cancelled", map[string]int64{"updated": updated})
}

func (h *payrollHandlerImpl) GetPayrollSummary(w http.ResponseWriter, r *http.Request) {
	month, monthErr := strconv.Atoi(r.URL.Query().Get("period_month"))
	year, yearErr := strconv.Atoi(r.URL.Query().Get("period_year"))
	if monthErr != nil || yearErr != nil {
		response.BadRequest(w, "period_month and period_year are required", nil)
		return
	}

	result, err := h.payrollService.GetPayrollSummary(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
