package importing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/mohammadpnp/backoffice-import/internal/domain/importing"
)

type CommitImportInput struct {
	SessionID string
	ActedBy   string
}

type CommitImport interface {
	Execute(ctx context.Context, in CommitImportInput) (domain.ImportSummary, error)
}

type commitImport struct {
	registry  *domain.Registry
	sessions  domain.SessionStore
	committer *Committer
}

func NewCommitImport(registry *domain.Registry, sessions domain.SessionStore, committer *Committer) CommitImport {
	return &commitImport{registry: registry, sessions: sessions, committer: committer}
}

// Execute commits a previewed session. When the returned error wraps ErrCommit the summary is still
// filled in and already recorded in the audit log.
func (uc *commitImport) Execute(ctx context.Context, in CommitImportInput) (domain.ImportSummary, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return domain.ImportSummary{}, ErrSessionNotFound
	}

	session, err := uc.sessions.Take(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.ImportSummary{}, ErrSessionNotFound
		}
		return domain.ImportSummary{}, fmt.Errorf("%w: load session: %v", ErrCommit, err)
	}

	schema, ok := uc.registry.Lookup(session.Domain)
	if !ok {
		return domain.ImportSummary{}, ErrUnknownDomain
	}

	return uc.committer.Commit(ctx, schema, session, in.ActedBy)
}
