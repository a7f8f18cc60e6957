package importing_test

import (
	"context"
	"sync"
	"testing"

	app "github.com/mohammadpnp/backoffice-import/internal/application/importing"
	"github.com/mohammadpnp/backoffice-import/internal/domain/employee"
	domain "github.com/mohammadpnp/backoffice-import/internal/domain/importing"
	"github.com/mohammadpnp/backoffice-import/internal/domain/inspection"
)

type fakeReferenceLookup struct {
	mu        sync.Mutex
	known     map[string][]string
	calls     int
	requested [][]string
	returnErr error
}

func (f *fakeReferenceLookup) ExistingCodes(ctx context.Context, ref domain.Reference, codes []string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.requested = append(f.requested, append([]string(nil), codes...))
	if f.returnErr != nil {
		return nil, f.returnErr
	}
	known := make(map[string]struct{})
	for _, c := range f.known[ref.Name] {
		known[c] = struct{}{}
	}
	found := make([]string, 0, len(codes))
	for _, c := range codes {
		if _, ok := known[c]; ok {
			found = append(found, c)
		}
	}
	return found, nil
}

type fakeExistenceLookup struct {
	existing  map[string]string
	calls     int
	keys      []string
	returnErr error
}

func (f *fakeExistenceLookup) FindExisting(ctx context.Context, schema domain.Schema, keys []string) (map[string]string, error) {
	f.calls++
	f.keys = append([]string(nil), keys...)
	if f.returnErr != nil {
		return nil, f.returnErr
	}
	out := make(map[string]string)
	for _, k := range keys {
		if id, ok := f.existing[k]; ok {
			out[k] = id
		}
	}
	return out, nil
}

type fakeRecordWriter struct {
	inserted      []domain.CandidateRecord
	updated       []domain.PendingUpdate
	insertErr     error
	updateErr     error
	insertFailing map[int]string
}

func (f *fakeRecordWriter) InsertBatch(ctx context.Context, schema domain.Schema, records []domain.CandidateRecord) (domain.BatchResult, error) {
	if f.insertErr != nil {
		return domain.BatchResult{}, f.insertErr
	}
	res := domain.BatchResult{}
	for _, r := range records {
		if reason, ok := f.insertFailing[r.RowIndex]; ok {
			res.Failures = append(res.Failures, domain.ImportFailure{RowIndex: r.RowIndex, Reason: reason})
			continue
		}
		f.inserted = append(f.inserted, r)
		res.Succeeded++
	}
	return res, nil
}

func (f *fakeRecordWriter) UpdateBatch(ctx context.Context, schema domain.Schema, updates []domain.PendingUpdate) (domain.BatchResult, error) {
	if f.updateErr != nil {
		return domain.BatchResult{}, f.updateErr
	}
	f.updated = append(f.updated, updates...)
	return domain.BatchResult{Succeeded: len(updates)}, nil
}

type fakeAuditLog struct {
	mu        sync.Mutex
	rows      []domain.ImportSummary
	appendErr error
	listErr   error
	lastQuery domain.ImportLogFilter
}

func (f *fakeAuditLog) Append(ctx context.Context, summary domain.ImportSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.rows = append(f.rows, summary)
	return nil
}

func (f *fakeAuditLog) List(ctx context.Context, filter domain.ImportLogFilter) ([]domain.ImportSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.ImportSummary, 0, len(f.rows))
	for _, r := range f.rows {
		if filter.Domain == "" || r.Domain == filter.Domain {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	saveErr  error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]domain.Session)}
}

func (f *fakeSessionStore) Save(ctx context.Context, session domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionStore) Take(ctx context.Context, id string) (domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	delete(f.sessions, id)
	return s, nil
}

func (f *fakeSessionStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(f.sessions, id)
	return nil
}

func testRegistry(t testing.TB) *domain.Registry {
	t.Helper()
	registry, err := domain.NewRegistry(employee.Schema(), inspection.Schema())
	if err != nil {
		t.Fatalf("expected registry, got %v", err)
	}
	return registry
}

func testValidator(t testing.TB) *app.Validator {
	t.Helper()
	v, err := app.NewValidator(map[string]app.FormatFunc{"cpf": employee.ValidCPFFormat})
	if err != nil {
		t.Fatalf("expected validator, got %v", err)
	}
	return v
}

func candidate(row int, values map[string]string) domain.CandidateRecord {
	r := domain.CandidateRecord{RowIndex: row, Values: map[string]domain.Value{}, Raw: map[string]string{}}
	for k, v := range values {
		r.Values[k] = domain.TextValue(v)
		r.Raw[k] = v
	}
	return r
}
