package employee

import "errors"

var (
	ErrInvalidCPF       = errors.New("invalid cpf")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrGetEmployeeByCPF = errors.New("failed to get employee by cpf")
)
