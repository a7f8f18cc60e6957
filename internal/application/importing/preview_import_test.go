package importing_test

import (
	"context"
	"errors"
	"testing"

	app "github.com/mohammadpnp/backoffice-import/internal/application/importing"
	domain "github.com/mohammadpnp/backoffice-import/internal/domain/importing"
)

const rosterCSV = "nome,funcao,matricula,cpf\n" +
	"Ana,Tecnico,001,111.111.111-11\n" +
	",Eng,002,222.222.222-22\n" +
	"Bia,Eng,003,111.111.111-11\n"

type pipeline struct {
	preview  app.PreviewImport
	commit   app.CommitImport
	cancel   app.CancelImport
	existing *fakeExistenceLookup
	writer   *fakeRecordWriter
	audit    *fakeAuditLog
	sessions *fakeSessionStore
}

func newPipeline(t *testing.T) *pipeline {
	t.Helper()

	p := &pipeline{
		existing: &fakeExistenceLookup{existing: map[string]string{}},
		writer:   &fakeRecordWriter{},
		audit:    &fakeAuditLog{},
		sessions: newFakeSessionStore(),
	}
	registry := testRegistry(t)
	committer := app.NewCommitter(p.writer, p.audit, nil)
	p.preview = app.NewPreviewImport(app.PreviewDeps{
		Registry:   registry,
		Validator:  testValidator(t),
		References: &fakeReferenceLookup{},
		Existing:   p.existing,
		Sessions:   p.sessions,
		Committer:  committer,
	})
	p.commit = app.NewCommitImport(registry, p.sessions, committer)
	p.cancel = app.NewCancelImport(p.sessions)
	return p
}

func TestPreviewAndCommitRoster(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)

	out, err := p.preview.Execute(context.Background(), app.PreviewImportInput{
		Domain:   "employees",
		FileName: "roster.csv",
		Payload:  []byte(rosterCSV),
		ActedBy:  "user-1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.TotalRows != 3 || out.NewCount != 1 || out.InvalidCount != 1 || out.DuplicateCount != 1 || out.UpdateCount != 0 {
		t.Fatalf("unexpected preview counts: %+v", out)
	}
	wantClasses := []domain.Classification{domain.ClassNew, domain.ClassInvalid, domain.ClassDuplicate}
	for i, row := range out.Rows {
		if row.RowIndex != i+1 || row.Class != wantClasses[i] {
			t.Fatalf("row %d: expected %s, got %+v", i+1, wantClasses[i], row)
		}
	}
	if out.Rows[2].FirstRowIndex != 1 {
		t.Fatalf("expected duplicate of row 1, got %d", out.Rows[2].FirstRowIndex)
	}
	if len(p.writer.inserted) != 0 || len(p.audit.rows) != 0 {
		t.Fatal("expected nothing written before confirmation")
	}

	summary, err := p.commit.Execute(context.Background(), app.CommitImportInput{SessionID: out.SessionID, ActedBy: "user-1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if summary.TotalRows != 3 || summary.CreatedCount != 1 || summary.UpdatedCount != 0 || summary.ErrorCount != 1 || summary.DuplicateCount != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Status != domain.StatusCompletedWithErrors {
		t.Fatalf("expected completed_with_errors, got %s", summary.Status)
	}
	if len(p.audit.rows) != 1 {
		t.Fatalf("expected 1 audit row, got %d", len(p.audit.rows))
	}

	_, err = p.commit.Execute(context.Background(), app.CommitImportInput{SessionID: out.SessionID, ActedBy: "user-1"})
	if !errors.Is(err, app.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound on second commit, got %v", err)
	}
}

func TestPreviewClassifiesExistingRecordsAsUpdates(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)
	p.existing.existing["111.111.111-11"] = "emp-1"

	out, err := p.preview.Execute(context.Background(), app.PreviewImportInput{
		Domain: "employees", FileName: "roster.csv", Payload: []byte(rosterCSV), ActedBy: "user-1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.UpdateCount != 1 || out.NewCount != 0 || out.DuplicateCount != 1 {
		t.Fatalf("unexpected preview counts: %+v", out)
	}
	if out.Rows[0].Class != domain.ClassUpdate || out.Rows[0].ExistingID != "emp-1" {
		t.Fatalf("expected row 1 to update emp-1, got %+v", out.Rows[0])
	}
	if p.existing.calls != 1 {
		t.Fatalf("expected 1 existence lookup, got %d", p.existing.calls)
	}
}

func TestPreviewReconciliationFailureWritesAuditRow(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)
	p.existing.returnErr = errors.New("connection refused")

	_, err := p.preview.Execute(context.Background(), app.PreviewImportInput{
		Domain: "employees", FileName: "roster.csv", Payload: []byte(rosterCSV), ActedBy: "user-1",
	})
	if !errors.Is(err, app.ErrReconciliationLookup) {
		t.Fatalf("expected ErrReconciliationLookup, got %v", err)
	}
	if len(p.sessions.sessions) != 0 {
		t.Fatal("expected no session to be stored")
	}
	if len(p.audit.rows) != 1 || p.audit.rows[0].Status != domain.StatusFailed {
		t.Fatalf("expected one failed audit row, got %+v", p.audit.rows)
	}
}

func TestPreviewRejectsBadInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   app.PreviewImportInput
		want error
	}{
		{"unknown domain", app.PreviewImportInput{Domain: "payroll", Payload: []byte(rosterCSV), ActedBy: "u"}, app.ErrUnknownDomain},
		{"missing actor", app.PreviewImportInput{Domain: "employees", Payload: []byte(rosterCSV)}, app.ErrMissingActor},
		{"empty file", app.PreviewImportInput{Domain: "employees", FileName: "a.csv", ActedBy: "u"}, app.ErrEmptyFile},
		{"unsupported", app.PreviewImportInput{Domain: "employees", FileName: "a.pdf", Payload: []byte("x,y\n1,2\n"), ActedBy: "u"}, app.ErrUnsupportedFormat},
		{"broken csv", app.PreviewImportInput{Domain: "employees", FileName: "a.csv", Payload: []byte("\"nome,cpf\nAna,1\n"), ActedBy: "u"}, app.ErrInvalidImportFile},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := newPipeline(t)
			_, err := p.preview.Execute(context.Background(), tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if len(p.audit.rows) != 0 {
				t.Fatal("expected no audit row for rejected input")
			}
		})
	}
}

func TestPreviewReportsShapeErrorsAsInvalid(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)
	payload := "nome,funcao,matricula,cpf\nAna,Tecnico,001,111.111.111-11\nBia,Eng,002\n"

	out, err := p.preview.Execute(context.Background(), app.PreviewImportInput{
		Domain: "employees", FileName: "roster.csv", Payload: []byte(payload), ActedBy: "user-1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.TotalRows != 2 || out.InvalidCount != 1 || out.NewCount != 1 {
		t.Fatalf("unexpected preview counts: %+v", out)
	}
	if out.Rows[1].Class != domain.ClassInvalid || len(out.Rows[1].Errors) != 1 {
		t.Fatalf("expected row 2 invalid, got %+v", out.Rows[1])
	}
}

func TestCancelDiscardsSession(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)
	out, err := p.preview.Execute(context.Background(), app.PreviewImportInput{
		Domain: "employees", FileName: "roster.csv", Payload: []byte(rosterCSV), ActedBy: "user-1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := p.cancel.Execute(context.Background(), app.CancelImportInput{SessionID: out.SessionID}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := p.cancel.Execute(context.Background(), app.CancelImportInput{SessionID: out.SessionID}); !errors.Is(err, app.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := p.commit.Execute(context.Background(), app.CommitImportInput{SessionID: out.SessionID}); !errors.Is(err, app.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if len(p.writer.inserted) != 0 || len(p.audit.rows) != 0 {
		t.Fatal("expected nothing written for a cancelled session")
	}
}
