package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/studio-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/studio-payroll/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SalaryStructureHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Save(w http.ResponseWriter, r *http.Request)
	Estimate(w http.ResponseWriter, r *http.Request)
}

type salaryStructureHandlerImpl struct {
	salaryStructureService employee.SalaryStructureService
}

func NewSalaryStructureHandler(salaryStructureService employee.SalaryStructureService) SalaryStructureHandler {
	return &salaryStructureHandlerImpl{salaryStructureService: salaryStructureService}
}

func (h *salaryStructureHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.salaryStructureService.GetSalaryStructure(r.Context(), chi.URLParam(r, "employeeId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryStructureHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	var req employee.SaveSalaryStructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.salaryStructureService.SaveSalaryStructure(r.Context(), chi.URLParam(r, "employeeId"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary structure saved", result)
}

func (h *salaryStructureHandlerImpl) Estimate(w http.ResponseWriter, r *http.Request) {
	var req employee.SaveSalaryStructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.salaryStructureService.Estimate(req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
