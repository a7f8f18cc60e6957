package importing

import "context"

type ReferenceLookup interface {
	ExistingCodes(ctx context.Context, ref Reference, codes []string) ([]string, error)
}

type ExistenceLookup interface {
	// FindExisting returns natural key -> stored record id for the keys already present.
	FindExisting(ctx context.Context, schema Schema, keys []string) (map[string]string, error)
}

type BatchResult struct {
	Succeeded int
	Failures  []ImportFailure
}

// RecordWriter persists approved records. A returned error means nothing in the batch was committed.
type RecordWriter interface {
	InsertBatch(ctx context.Context, schema Schema, records []CandidateRecord) (BatchResult, error)
	UpdateBatch(ctx context.Context, schema Schema, updates []PendingUpdate) (BatchResult, error)
}

type ImportLogFilter struct {
	Domain string
	Limit  int
}

type AuditLog interface {
	Append(ctx context.Context, summary ImportSummary) error
	List(ctx context.Context, filter ImportLogFilter) ([]ImportSummary, error)
}
