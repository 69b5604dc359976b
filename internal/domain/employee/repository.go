package employee

import "context"

type EmployeeRepository interface {
	// ListActive returns every active employee in a stable order (employee code).
	ListActive(ctx context.Context) ([]Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	UpdateSalaryStructure(ctx context.Context, id string, structure SalaryStructure) error
}
