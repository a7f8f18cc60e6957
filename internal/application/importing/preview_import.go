package importing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	domain "github.com/mohammadpnp/backoffice-import/internal/domain/importing"
)

type PreviewImportInput struct {
	Domain   string
	FileName string
	Payload  []byte
	ActedBy  string
}

type PreviewImportOutput struct {
	SessionID      string             `json:"session_id"`
	Domain         string             `json:"domain"`
	FileName       string             `json:"file_name"`
	TotalRows      int                `json:"total_rows"`
	NewCount       int                `json:"new_count"`
	UpdateCount    int                `json:"update_count"`
	DuplicateCount int                `json:"duplicate_count"`
	InvalidCount   int                `json:"invalid_count"`
	UnknownHeaders []string           `json:"unknown_headers,omitempty"`
	MissingHeaders []string           `json:"missing_headers,omitempty"`
	Rows           []domain.RowResult `json:"rows"`
}

type PreviewImport interface {
	Execute(ctx context.Context, in PreviewImportInput) (PreviewImportOutput, error)
}

type PreviewDeps struct {
	Registry   *domain.Registry
	Validator  *Validator
	References domain.ReferenceLookup
	Existing   domain.ExistenceLookup
	Sessions   domain.SessionStore
	Committer  *Committer
	Logger     *logrus.Entry
}

type previewImport struct {
	deps   PreviewDeps
	logger *logrus.Entry
	now    func() time.Time
}

func NewPreviewImport(deps PreviewDeps) PreviewImport {
	return &previewImport{deps: deps, logger: entryOrDefault(deps.Logger), now: time.Now}
}

func (uc *previewImport) Execute(ctx context.Context, in PreviewImportInput) (PreviewImportOutput, error) {
	schema, ok := uc.deps.Registry.Lookup(in.Domain)
	if !ok {
		return PreviewImportOutput{}, ErrUnknownDomain
	}
	actedBy := strings.TrimSpace(in.ActedBy)
	if actedBy == "" {
		return PreviewImportOutput{}, ErrMissingActor
	}
	fileName := strings.TrimSpace(in.FileName)

	start := time.Now()
	table, err := Parse(fileName, in.Payload)
	observeStage("parse", start)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyFile) || errors.Is(err, domain.ErrUnsupportedFormat) {
			return PreviewImportOutput{}, err
		}
		return PreviewImportOutput{}, fmt.Errorf("%w: %v", ErrInvalidImportFile, err)
	}

	session := domain.Session{
		ID:        uuid.NewString(),
		Domain:    schema.Name,
		FileName:  fileName,
		ActedBy:   actedBy,
		TotalRows: table.TotalRows(),
		CreatedAt: uc.now().UTC(),
	}
	log := uc.logger.WithFields(logrus.Fields{
		"domain":     schema.Name,
		"session_id": session.ID,
		"file_name":  fileName,
		"acted_by":   actedBy,
	})

	start = time.Now()
	normalized := Normalize(schema, table)
	observeStage("normalize", start)

	start = time.Now()
	refs, err := LoadReferences(ctx, schema, normalized.Records, uc.deps.References)
	observeStage("references", start)
	if err != nil {
		log.WithError(err).Warn("import.reference_lookup_failed")
		uc.deps.Committer.RecordAbort(ctx, session, err)
		return PreviewImportOutput{}, err
	}

	start = time.Now()
	outcomes := uc.deps.Validator.Validate(schema, normalized.Records, refs)
	observeStage("validate", start)

	rows := make([]domain.RowResult, 0, table.TotalRows())
	for _, shapeErr := range table.ShapeErrors {
		reason := shapeErr.Err.Error()
		rows = append(rows, domain.RowResult{RowIndex: shapeErr.RowIndex, Class: domain.ClassInvalid, Errors: []string{reason}})
		session.Failures = append(session.Failures, domain.ImportFailure{RowIndex: shapeErr.RowIndex, Reason: reason})
	}

	valid := make([]domain.CandidateRecord, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.Valid() {
			valid = append(valid, outcome.Record)
			continue
		}
		rows = append(rows, rowResult(schema, outcome.Record, domain.ClassInvalid, outcome.Errors))
		session.Failures = append(session.Failures, domain.ImportFailure{
			RowIndex: outcome.Record.RowIndex,
			Reason:   strings.Join(outcome.Errors, "; "),
		})
	}
	session.InvalidCount = len(table.ShapeErrors) + len(outcomes) - len(valid)

	unique, duplicates := Deduplicate(schema, valid)
	session.DuplicateCount = len(duplicates)
	for _, dup := range duplicates {
		row := rowResult(schema, dup.Record, domain.ClassDuplicate, nil)
		row.FirstRowIndex = dup.FirstRowIndex
		rows = append(rows, row)
	}

	start = time.Now()
	reconciled, err := Reconcile(ctx, schema, unique, uc.deps.Existing)
	observeStage("reconcile", start)
	if err != nil {
		log.WithError(err).Warn("import.reconciliation_failed")
		uc.deps.Committer.RecordAbort(ctx, session, err)
		return PreviewImportOutput{}, err
	}
	session.New = reconciled.New
	session.Updates = reconciled.Updates

	for _, record := range reconciled.New {
		rows = append(rows, rowResult(schema, record, domain.ClassNew, nil))
	}
	for _, update := range reconciled.Updates {
		row := rowResult(schema, update.Record, domain.ClassUpdate, nil)
		row.ExistingID = update.ExistingID
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].RowIndex < rows[j].RowIndex })

	if err := uc.deps.Sessions.Save(ctx, session); err != nil {
		return PreviewImportOutput{}, fmt.Errorf("%w: save session: %v", ErrPreviewImport, err)
	}

	countRows(schema.Name, string(domain.ClassNew), len(session.New))
	countRows(schema.Name, string(domain.ClassUpdate), len(session.Updates))
	countRows(schema.Name, string(domain.ClassDuplicate), session.DuplicateCount)
	countRows(schema.Name, string(domain.ClassInvalid), session.InvalidCount)
	log.WithFields(logrus.Fields{
		"total":      session.TotalRows,
		"new":        len(session.New),
		"updates":    len(session.Updates),
		"duplicates": session.DuplicateCount,
		"invalid":    session.InvalidCount,
	}).Info("import.previewed")

	return PreviewImportOutput{
		SessionID:      session.ID,
		Domain:         schema.Name,
		FileName:       fileName,
		TotalRows:      session.TotalRows,
		NewCount:       len(session.New),
		UpdateCount:    len(session.Updates),
		DuplicateCount: session.DuplicateCount,
		InvalidCount:   session.InvalidCount,
		UnknownHeaders: normalized.UnknownHeaders,
		MissingHeaders: normalized.MissingHeaders,
		Rows:           rows,
	}, nil
}

func rowResult(schema domain.Schema, record domain.CandidateRecord, class domain.Classification, errs []string) domain.RowResult {
	values := make(map[string]string, len(record.Values))
	for name, v := range record.Values {
		values[name] = v.String()
	}
	return domain.RowResult{
		RowIndex: record.RowIndex,
		Class:    class,
		Key:      record.Key(schema),
		Errors:   errs,
		Values:   values,
	}
}
