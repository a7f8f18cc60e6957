package importing

import (
	"context"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("import session not found")

// Session is a previewed import waiting for confirmation. It only holds what the commit needs.
type Session struct {
	ID             string            `json:"id"`
	Domain         string            `json:"domain"`
	FileName       string            `json:"file_name"`
	ActedBy        string            `json:"acted_by"`
	TotalRows      int               `json:"total_rows"`
	InvalidCount   int               `json:"invalid_count"`
	DuplicateCount int               `json:"duplicate_count"`
	Failures       []ImportFailure   `json:"failures,omitempty"`
	New            []CandidateRecord `json:"new,omitempty"`
	Updates        []PendingUpdate   `json:"updates,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

type SessionStore interface {
	Save(ctx context.Context, session Session) error
	// Take returns the session and removes it, so a session is committed at most once.
	Take(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}
