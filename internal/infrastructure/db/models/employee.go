package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Nome         string              `gorm:"size:255;not null"`
	Funcao       string              `gorm:"size:120;not null"`
	Matricula    string              `gorm:"size:30;not null;uniqueIndex"`
	CPF          string              `gorm:"column:cpf;size:14;not null;uniqueIndex"`
	DataAdmissao *time.Time          `gorm:"type:date"`
	Email        *string             `gorm:"size:320"`
	Status       string              `gorm:"size:20;not null;default:ativo"`
	CentroCusto  *string             `gorm:"size:30"`
	Salario      decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Employee) TableName() string {
	return "employees"
}

type CostCenter struct {
	Code      string `gorm:"size:30;primaryKey"`
	Name      string `gorm:"size:255;not null"`
	CreatedAt time.Time
}

func (CostCenter) TableName() string {
	return "cost_centers"
}
