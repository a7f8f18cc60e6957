package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/mohammadpnp/backoffice-import/internal/domain/importing"
	"github.com/mohammadpnp/backoffice-import/internal/infrastructure/db/models"
)

type ImportLogRepository struct {
	db *gorm.DB
}

func NewImportLogRepository(db *gorm.DB) *ImportLogRepository {
	return &ImportLogRepository{db: db}
}

func (r *ImportLogRepository) Append(ctx context.Context, summary domain.ImportSummary) error {
	row, err := toImportLogModel(summary)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create import log: %w", err)
	}
	return nil
}

func (r *ImportLogRepository) List(ctx context.Context, filter domain.ImportLogFilter) ([]domain.ImportSummary, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.Domain != "" {
		query = query.Where("domain = ?", filter.Domain)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []models.ImportLog
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list import logs: %w", err)
	}

	summaries := make([]domain.ImportSummary, 0, len(rows))
	for _, row := range rows {
		summary, err := toImportSummary(row)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func toImportLogModel(summary domain.ImportSummary) (models.ImportLog, error) {
	failures := summary.Failures
	if failures == nil {
		failures = []domain.ImportFailure{}
	}
	encoded, err := json.Marshal(failures)
	if err != nil {
		return models.ImportLog{}, fmt.Errorf("encode import failures: %w", err)
	}

	row := models.ImportLog{
		ID:             summary.ID,
		Domain:         summary.Domain,
		FileName:       summary.FileName,
		ActedBy:        summary.ActedBy,
		TotalRows:      summary.TotalRows,
		CreatedCount:   summary.CreatedCount,
		UpdatedCount:   summary.UpdatedCount,
		ErrorCount:     summary.ErrorCount,
		DuplicateCount: summary.DuplicateCount,
		Status:         string(summary.Status),
		Failures:       string(encoded),
		CreatedAt:      summary.CreatedAt,
	}
	if summary.ErrorDetail != "" {
		detail := summary.ErrorDetail
		row.ErrorDetail = &detail
	}
	return row, nil
}

func toImportSummary(row models.ImportLog) (domain.ImportSummary, error) {
	summary := domain.ImportSummary{
		ID:             row.ID,
		Domain:         row.Domain,
		FileName:       row.FileName,
		ActedBy:        row.ActedBy,
		TotalRows:      row.TotalRows,
		CreatedCount:   row.CreatedCount,
		UpdatedCount:   row.UpdatedCount,
		ErrorCount:     row.ErrorCount,
		DuplicateCount: row.DuplicateCount,
		Status:         domain.ImportStatus(row.Status),
		CreatedAt:      row.CreatedAt,
	}
	if row.ErrorDetail != nil {
		summary.ErrorDetail = *row.ErrorDetail
	}
	if row.Failures != "" {
		if err := json.Unmarshal([]byte(row.Failures), &summary.Failures); err != nil {
			return domain.ImportSummary{}, fmt.Errorf("decode import failures %s: %w", row.ID, err)
		}
	}
	return summary, nil
}
