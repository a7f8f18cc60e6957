package employee

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/mohammadpnp/backoffice-import/internal/domain/employee"
)

type GetEmployeeByCPFInput struct {
	CPF string
}

type GetEmployeeByCPFOutput struct {
	ID           string `json:"id"`
	Nome         string `json:"nome"`
	Funcao       string `json:"funcao"`
	Matricula    string `json:"matricula"`
	CPF          string `json:"cpf"`
	DataAdmissao string `json:"data_admissao,omitempty"`
	Email        string `json:"email,omitempty"`
	Status       string `json:"status"`
	CentroCusto  string `json:"centro_custo,omitempty"`
	Salario      string `json:"salario,omitempty"`
}

type GetEmployeeByCPF interface {
	Execute(ctx context.Context, in GetEmployeeByCPFInput) (GetEmployeeByCPFOutput, error)
}

type getEmployeeByCPF struct {
	repo domain.QueryRepository
}

func NewGetEmployeeByCPF(repo domain.QueryRepository) GetEmployeeByCPF {
	return &getEmployeeByCPF{repo: repo}
}

func (uc *getEmployeeByCPF) Execute(ctx context.Context, in GetEmployeeByCPFInput) (GetEmployeeByCPFOutput, error) {
	cpf := domain.NormalizeCPF(in.CPF)
	if !domain.ValidCPFFormat(cpf) {
		return GetEmployeeByCPFOutput{}, ErrInvalidCPF
	}

	emp, err := uc.repo.GetByCPF(ctx, cpf)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return GetEmployeeByCPFOutput{}, ErrEmployeeNotFound
		}
		return GetEmployeeByCPFOutput{}, fmt.Errorf("%w: %v", ErrGetEmployeeByCPF, err)
	}

	out := GetEmployeeByCPFOutput{
		ID:          emp.ID,
		Nome:        emp.Nome,
		Funcao:      emp.Funcao,
		Matricula:   emp.Matricula,
		CPF:         emp.CPF,
		Email:       emp.Email,
		Status:      emp.Status,
		CentroCusto: emp.CentroCusto,
		Salario:     emp.Salario,
	}
	if emp.DataAdmissao != nil {
		out.DataAdmissao = emp.DataAdmissao.Format("2006-01-02")
	}
	return out, nil
}
