package employee

import "context"

type SalaryStructureService interface {
	// SaveSalaryStructure replaces the employee's structure wholesale
	SaveSalaryStructure(ctx context.Context, employeeID string, req SaveSalaryStructureRequest) (SalaryStructureResponse, error)

	GetSalaryStructure(ctx context.Context, employeeID string) (SalaryStructureResponse, error)

	// Estimate is a live preview and never touches storage
	Estimate(req SaveSalaryStructureRequest) (EstimateResponse, error)
}
