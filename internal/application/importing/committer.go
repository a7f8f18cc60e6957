package importing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	domain "github.com/mohammadpnp/backoffice-import/internal/domain/importing"
)

const maxDetailFailures = 20

type Committer struct {
	writer domain.RecordWriter
	audit  domain.AuditLog
	logger *logrus.Entry
	now    func() time.Time
}

func NewCommitter(writer domain.RecordWriter, audit domain.AuditLog, logger *logrus.Entry) *Committer {
	return &Committer{
		writer: writer,
		audit:  audit,
		logger: entryOrDefault(logger),
		now:    time.Now,
	}
}

// Commit writes the approved sets of a session and always appends the audit row. The returned error is
// non-nil only when a whole batch was rejected or the audit row could not be written; row level
// failures are reported through the summary.
func (c *Committer) Commit(ctx context.Context, schema domain.Schema, session domain.Session, actedBy string) (domain.ImportSummary, error) {
	defer observeStage("commit", time.Now())

	summary := c.newSummary(session, actedBy)
	summary.ErrorCount = session.InvalidCount
	summary.DuplicateCount = session.DuplicateCount
	for _, f := range session.Failures {
		summary.AddFailure(f)
	}

	var commitErr error
	if len(session.New) > 0 {
		res, err := c.writer.InsertBatch(ctx, schema, session.New)
		if err != nil {
			commitErr = fmt.Errorf("%w: insert batch: %v", domain.ErrCommit, err)
		} else {
			summary.CreatedCount = res.Succeeded
			c.addBatchFailures(&summary, res.Failures)
		}
	}

	if commitErr == nil && len(session.Updates) > 0 {
		res, err := c.writer.UpdateBatch(ctx, schema, session.Updates)
		switch {
		case err != nil && summary.CreatedCount == 0:
			commitErr = fmt.Errorf("%w: update batch: %v", domain.ErrCommit, err)
		case err != nil:
			summary.ErrorCount += len(session.Updates)
			for _, u := range session.Updates {
				summary.AddFailure(domain.ImportFailure{RowIndex: u.Record.RowIndex, Reason: "update rejected: " + err.Error()})
			}
		default:
			summary.UpdatedCount = res.Succeeded
			c.addBatchFailures(&summary, res.Failures)
		}
	}

	if commitErr != nil {
		summary.Status = domain.StatusFailed
		summary.CreatedCount = 0
		summary.UpdatedCount = 0
		summary.ErrorCount = session.InvalidCount + len(session.New) + len(session.Updates)
		summary.ErrorDetail = domain.TruncateDetail(commitErr.Error())
	} else {
		summary.ErrorDetail = failureDetail(summary.Failures)
	}
	summary.ResolveStatus()

	commits.WithLabelValues(summary.Domain, string(summary.Status)).Inc()
	c.logger.WithFields(logrus.Fields{
		"import_id":  summary.ID,
		"domain":     summary.Domain,
		"session_id": session.ID,
		"file_name":  summary.FileName,
		"acted_by":   summary.ActedBy,
		"created":    summary.CreatedCount,
		"updated":    summary.UpdatedCount,
		"errors":     summary.ErrorCount,
		"duplicates": summary.DuplicateCount,
		"status":     summary.Status,
	}).Info("import.committed")

	return summary, errors.Join(commitErr, c.appendLog(ctx, summary))
}

// RecordAbort writes the audit row for an import that stopped before anything was written.
func (c *Committer) RecordAbort(ctx context.Context, session domain.Session, cause error) domain.ImportSummary {
	summary := c.newSummary(session, session.ActedBy)
	summary.Status = domain.StatusFailed
	summary.ErrorCount = session.TotalRows
	summary.ErrorDetail = domain.TruncateDetail(cause.Error())

	commits.WithLabelValues(summary.Domain, string(summary.Status)).Inc()
	if err := c.appendLog(ctx, summary); err != nil {
		c.logger.WithError(err).WithField("domain", summary.Domain).Error("import.abort_log_failed")
	}
	return summary
}

func (c *Committer) newSummary(session domain.Session, actedBy string) domain.ImportSummary {
	if strings.TrimSpace(actedBy) == "" {
		actedBy = session.ActedBy
	}
	return domain.ImportSummary{
		ID:        uuid.NewString(),
		Domain:    session.Domain,
		FileName:  session.FileName,
		ActedBy:   actedBy,
		TotalRows: session.TotalRows,
		CreatedAt: c.now().UTC(),
	}
}

func (c *Committer) addBatchFailures(summary *domain.ImportSummary, failures []domain.ImportFailure) {
	summary.ErrorCount += len(failures)
	for _, f := range failures {
		summary.AddFailure(f)
	}
}

func (c *Committer) appendLog(ctx context.Context, summary domain.ImportSummary) error {
	if err := c.audit.Append(ctx, summary); err != nil {
		c.logger.WithError(err).WithField("import_id", summary.ID).Error("import.audit_append_failed")
		return fmt.Errorf("%w: %v", ErrAuditLog, err)
	}
	return nil
}

func failureDetail(failures []domain.ImportFailure) string {
	if len(failures) == 0 {
		return ""
	}
	lines := make([]string, 0, maxDetailFailures)
	for i, f := range failures {
		if i == maxDetailFailures {
			lines = append(lines, fmt.Sprintf("... and %d more", len(failures)-maxDetailFailures))
			break
		}
		lines = append(lines, fmt.Sprintf("row %d: %s", f.RowIndex, f.Reason))
	}
	return domain.TruncateDetail(strings.Join(lines, "\n"))
}
