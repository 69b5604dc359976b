package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/studio-payroll/internal/domain/employee"
	"github.com/cmlabs-hris/studio-payroll/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, employee_code, full_name, shift_id, salary_structure, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	var structureBytes []byte
	if err := row.Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.ShiftID, &structureBytes, &emp.CreatedAt, &emp.UpdatedAt,
	); err != nil {
		return employee.Employee{}, err
	}

	structure, err := decodeSalaryStructure(structureBytes)
	if err != nil {
		// malformed structures are treated as missing
		slog.Warn("ignoring salary structure", "employee_id", emp.ID, "error", err)
	}
	emp.SalaryStructure = structure
	return emp, nil
}

func decodeSalaryStructure(raw []byte) (*employee.SalaryStructure, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var s employee.SalaryStructure
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", employee.ErrSalaryStructureMalformed, err)
	}
	if s.PayType != employee.PayTypeMonthly && s.PayType != employee.PayTypeHourly {
		return nil, fmt.Errorf("%w: pay type %q", employee.ErrSalaryStructureMalformed, s.PayType)
	}
	return &s, nil
}

// ListActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE employment_status = 'active' AND deleted_at IS NULL
		ORDER BY employee_code ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND deleted_at IS NULL
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}

	return emp, nil
}

// UpdateSalaryStructure implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateSalaryStructure(ctx context.Context, id string, structure employee.SalaryStructure) error {
	q := GetQuerier(ctx, e.db)

	payload, err := json.Marshal(structure)
	if err != nil {
		return fmt.Errorf("failed to encode salary structure: %w", err)
	}

	query := `
		UPDATE employees
		SET salary_structure = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, payload, id)
	if err != nil {
		return fmt.Errorf("failed to update salary structure for employee with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
