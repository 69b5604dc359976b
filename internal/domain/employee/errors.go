package employee

import "errors"

var (
	ErrEmployeeNotFound         = errors.New("employee not found")
	ErrSalaryStructureNotFound  = errors.New("employee has no salary structure configured")
	ErrInvalidPayType           = errors.New("invalid pay type")
	ErrLineIndexOutOfRange      = errors.New("salary component index out of range")
	ErrSalaryStructureMalformed = errors.New("stored salary structure is malformed")
)
