package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/decred/slog"
	"github.com/google/uuid"
)

// SessionStore owns the process-wide session table. The store-level lock
// guards only map access; per-session serialization is the session's own
// mutex, so operations on different ids never contend here beyond the map
// lookup.
type SessionStore struct {
	mu       sync.RWMutex
	log      slog.Logger
	sessions map[string]*Session
}

// NewSessionStore creates an empty store.
func NewSessionStore(log slog.Logger) *SessionStore {
	return &SessionStore{
		log:      log,
		sessions: make(map[string]*Session),
	}
}

// Create assigns the session a fresh id and registers it. Ids are opaque
// capability tokens for a low-stakes demo, unique for the life of the
// store, never reused.
func (st *SessionStore) Create(s *Session) string {
	id := fmt.Sprintf("game_%s", uuid.NewString())
	s.id = id
	s.createdAt = time.Now()

	st.mu.Lock()
	st.sessions[id] = s
	st.mu.Unlock()

	st.log.Debugf("Created session %s", id)
	return id
}

// Get looks up a live session.
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Delete removes a session. Removing an unknown id is a no-op.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Count returns the number of live sessions.
func (st *SessionStore) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep removes every session older than maxAge and returns the number of
// sessions remaining afterward (not the number removed). An operation
// already holding a swept session's pointer completes normally; the sweep
// only stops future lookups.
func (st *SessionStore) Sweep(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	st.mu.Lock()
	defer st.mu.Unlock()
	for id, s := range st.sessions {
		if s.createdAt.Before(cutoff) {
			delete(st.sessions, id)
			st.log.Debugf("Swept expired session %s", id)
		}
	}
	return len(st.sessions)
}
