package memory

import (
	"context"
	"sync"

	"github.com/storefront-samples/go-bff-server/internal/domains/session/ports"
)

var _ ports.Store = (*Store)(nil)

// Store is the in-memory session store: a mutex-guarded map from session id
// to upstream cookie header. State lives for the process lifetime only;
// restarts drop every session.
type Store struct {
	mu       sync.Mutex
	sessions map[string]string
}

func NewStore() *Store {
	return &Store{sessions: map[string]string{}}
}

func (s *Store) Put(_ context.Context, sessionID, upstreamCookie string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = upstreamCookie
	return nil
}

func (s *Store) Get(_ context.Context, sessionID string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cookie, ok := s.sessions[sessionID]
	return cookie, ok, nil
}

func (s *Store) Remove(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
