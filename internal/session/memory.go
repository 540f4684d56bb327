package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Suitable for single-instance
// deployments and tests; multi-instance setups should use the Redis store.
type MemoryStore struct {
	ttl time.Duration

	mu       sync.RWMutex
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	session Session
	expires time.Time
}

// NewMemoryStore builds an in-memory store with the given session TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &MemoryStore{ttl: ttl, sessions: make(map[string]memoryEntry)}
}

// Get returns the stored session, expiring it lazily.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(entry.expires) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	sess := entry.session
	return &sess, nil
}

// Set stores (or refreshes) the session, resetting its TTL.
func (s *MemoryStore) Set(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = memoryEntry{session: *sess, expires: time.Now().Add(s.ttl)}
	return nil
}

// Clear removes the session if present.
func (s *MemoryStore) Clear(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
