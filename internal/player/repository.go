package player

import "sync"

// Repository defines the concurrency-safe contract for registering and
// looking up playback sessions.
type Repository interface {
	// SaveSession registers a session, replacing any existing session with
	// the same ID.
	SaveSession(s *Session)

	// GetSession returns the session with the given ID, or
	// ErrSessionNotFound.
	GetSession(id SessionID) (*Session, error)

	// DeleteSession removes a session. Deleting an unknown ID is a no-op
	// for idempotency.
	DeleteSession(id SessionID)

	// SessionCount returns the number of registered sessions. Used for
	// metrics.
	SessionCount() int
}

// InMemoryRepository is a concurrency-safe in-memory implementation of
// Repository. It uses a Store for persistence; by default that is an
// InMemoryStore.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store Store
}

// NewInMemoryRepository constructs a repository with a default in-memory store.
func NewInMemoryRepository() *InMemoryRepository {
	return NewInMemoryRepositoryWithStore(NewInMemoryStore())
}

// NewInMemoryRepositoryWithStore constructs a repository that uses the given
// Store. Useful for testing or for plugging in a different persistence
// backend.
func NewInMemoryRepositoryWithStore(store Store) *InMemoryRepository {
	return &InMemoryRepository{store: store}
}

// SaveSession implements Repository.SaveSession.
func (r *InMemoryRepository) SaveSession(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store.SetSession(s)
}

// GetSession implements Repository.GetSession.
func (r *InMemoryRepository) GetSession(id SessionID) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.store.GetSession(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// DeleteSession implements Repository.DeleteSession.
func (r *InMemoryRepository) DeleteSession(id SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store.DeleteSession(id)
}

// SessionCount implements Repository.SessionCount.
func (r *InMemoryRepository) SessionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.store.ListSessionIDs())
}
