package importing

import (
	"context"
	"fmt"

	domain "github.com/mohammadpnp/backoffice-import/internal/domain/importing"
)

type Reconciliation struct {
	New     []domain.CandidateRecord
	Updates []domain.PendingUpdate
}

// Reconcile splits unique records into inserts and updates with a single existence lookup.
func Reconcile(ctx context.Context, schema domain.Schema, unique []domain.CandidateRecord, lookup domain.ExistenceLookup) (Reconciliation, error) {
	result := Reconciliation{}
	if len(unique) == 0 {
		return result, nil
	}

	keys := make([]string, 0, len(unique))
	for _, record := range unique {
		keys = append(keys, record.Key(schema))
	}

	existing, err := lookup.FindExisting(ctx, schema, keys)
	if err != nil {
		return Reconciliation{}, fmt.Errorf("%w: %v", domain.ErrReconciliationLookup, err)
	}

	for _, record := range unique {
		if id, ok := existing[record.Key(schema)]; ok {
			result.Updates = append(result.Updates, domain.PendingUpdate{Record: record, ExistingID: id})
			continue
		}
		result.New = append(result.New, record)
	}
	return result, nil
}
