package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/mohammadpnp/backoffice-import/internal/domain/importing"
)

type ReferenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// ExistingCodes returns the subset of codes stored in the reference table, in one query.
func (r *ReferenceRepository) ExistingCodes(ctx context.Context, ref domain.Reference, codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	values := make([]any, 0, len(codes))
	for _, code := range codes {
		values = append(values, code)
	}

	var found []string
	err := r.db.WithContext(ctx).
		Table(ref.Table).
		Where(clause.IN{Column: clause.Column{Name: ref.Column}, Values: values}).
		Distinct().
		Pluck(ref.Column, &found).Error
	if err != nil {
		return nil, fmt.Errorf("lookup %s.%s: %w", ref.Table, ref.Column, err)
	}
	return found, nil
}
