package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Inspection struct {
	ID              string              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	NumeroDocumento string              `gorm:"size:40;not null;uniqueIndex"`
	Tipo            string              `gorm:"size:20;not null"`
	Local           string              `gorm:"size:200;not null"`
	DataInspecao    time.Time           `gorm:"type:date;not null"`
	Responsavel     string              `gorm:"size:30;not null"`
	Nota            decimal.NullDecimal `gorm:"type:numeric(5,2)"`
	Observacoes     *string             `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Inspection) TableName() string {
	return "hsa_inspections"
}
