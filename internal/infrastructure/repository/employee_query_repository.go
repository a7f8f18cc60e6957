package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/mohammadpnp/backoffice-import/internal/domain/employee"
	"github.com/mohammadpnp/backoffice-import/internal/infrastructure/db/models"
)

type EmployeeQueryRepository struct {
	db *gorm.DB
}

func NewEmployeeQueryRepository(db *gorm.DB) *EmployeeQueryRepository {
	return &EmployeeQueryRepository{db: db}
}

func (r *EmployeeQueryRepository) GetByCPF(ctx context.Context, cpf string) (*domain.Employee, error) {
	var row models.Employee

	err := r.db.WithContext(ctx).First(&row, "cpf = ?", cpf).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("get employee by cpf: %w", err)
	}

	emp := &domain.Employee{
		ID:           row.ID,
		Nome:         row.Nome,
		Funcao:       row.Funcao,
		Matricula:    row.Matricula,
		CPF:          row.CPF,
		DataAdmissao: row.DataAdmissao,
		Status:       row.Status,
	}
	if row.Email != nil {
		emp.Email = *row.Email
	}
	if row.CentroCusto != nil {
		emp.CentroCusto = *row.CentroCusto
	}
	if row.Salario.Valid {
		emp.Salario = row.Salario.Decimal.String()
	}
	return emp, nil
}
