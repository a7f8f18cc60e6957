package importing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/mohammadpnp/backoffice-import/internal/domain/importing"
)

type CancelImportInput struct {
	SessionID string
}

type CancelImport interface {
	Execute(ctx context.Context, in CancelImportInput) error
}

type cancelImport struct {
	sessions domain.SessionStore
}

func NewCancelImport(sessions domain.SessionStore) CancelImport {
	return &cancelImport{sessions: sessions}
}

func (uc *cancelImport) Execute(ctx context.Context, in CancelImportInput) error {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return ErrSessionNotFound
	}
	if err := uc.sessions.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("discard session: %w", err)
	}
	return nil
}
