package models

import "time"

type ImportLog struct {
	ID             string  `gorm:"type:uuid;primaryKey"`
	Domain         string  `gorm:"size:60;not null;index:import_logs_domain_created_at_idx,priority:1"`
	FileName       string  `gorm:"type:text;not null"`
	ActedBy        string  `gorm:"type:text;not null"`
	TotalRows      int     `gorm:"not null;default:0"`
	CreatedCount   int     `gorm:"not null;default:0"`
	UpdatedCount   int     `gorm:"not null;default:0"`
	ErrorCount     int     `gorm:"not null;default:0"`
	DuplicateCount int     `gorm:"not null;default:0"`
	Status         string  `gorm:"size:30;not null"`
	ErrorDetail    *string `gorm:"type:text"`
	Failures       string  `gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt      time.Time
}

func (ImportLog) TableName() string {
	return "import_logs"
}
