package employee

import (
	"errors"
	"time"
)

var ErrEmployeeNotFound = errors.New("employee not found")

type Employee struct {
	ID           string
	Nome         string
	Funcao       string
	Matricula    string
	CPF          string
	DataAdmissao *time.Time
	Email        string
	Status       string
	CentroCusto  string
	Salario      string
}
