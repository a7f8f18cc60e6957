package session

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	domain "github.com/mohammadpnp/backoffice-import/internal/domain/importing"
)

// MemoryStore keeps previewed sessions in process. Sessions expire after the TTL and the least recently
// used ones are evicted once capacity is reached.
type MemoryStore struct {
	cache *expirable.LRU[string, domain.Session]
}

func NewMemoryStore(capacity int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: expirable.NewLRU[string, domain.Session](capacity, nil, ttl)}
}

func (s *MemoryStore) Save(ctx context.Context, session domain.Session) error {
	s.cache.Add(session.ID, session)
	return nil
}

func (s *MemoryStore) Take(ctx context.Context, id string) (domain.Session, error) {
	session, ok := s.cache.Peek(id)
	if !ok || !s.cache.Remove(id) {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return session, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if !s.cache.Remove(id) {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (s *MemoryStore) Len() int {
	return s.cache.Len()
}
