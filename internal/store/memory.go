package store

import (
	"context"
	"sync"
	"time"

	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/domain"
)

// MemoryStore keeps sessions in a process-local map. State is lost on
// restart; that is the documented scope of this service.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*domain.Session),
	}
}

// GetOrCreate returns the stored session or lazily creates one.
func (s *MemoryStore) GetOrCreate(_ context.Context, sessionID string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[sessionID]; ok {
		return sess, nil
	}
	sess := domain.NewSession(sessionID)
	s.sessions[sessionID] = sess
	return sess, nil
}

// Save replaces the stored session. Last-writer-wins.
func (s *MemoryStore) Save(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.SessionID] = session
	return nil
}

// EvictIdle drops sessions whose last activity is older than ttl.
func (s *MemoryStore) EvictIdle(_ context.Context, ttl time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			count++
		}
	}
	return count, nil
}

// Len reports the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Ping always succeeds for the in-memory backend.
func (s *MemoryStore) Ping(_ context.Context) error { return nil }

// Close is a no-op for the in-memory backend.
func (s *MemoryStore) Close() error { return nil }

var _ Repository = (*MemoryStore)(nil)
