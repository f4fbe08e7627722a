package player

// Store is the persistence abstraction for playback sessions.
// Implementations can be in-memory, file-based, or remote. The Repository
// uses Store for all reads and writes; callers of Repository do not need to
// know which Store is used.
type Store interface {
	GetSession(id SessionID) (*Session, bool)
	SetSession(s *Session)
	DeleteSession(id SessionID)
	ListSessionIDs() []SessionID
}

// InMemoryStore is an in-memory implementation of Store.
type InMemoryStore struct {
	sessions map[SessionID]*Session
}

// NewInMemoryStore returns a new empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[SessionID]*Session),
	}
}

// GetSession implements Store.GetSession.
func (s *InMemoryStore) GetSession(id SessionID) (*Session, bool) {
	sess, ok := s.sessions[id]
	return sess, ok
}

// SetSession implements Store.SetSession.
func (s *InMemoryStore) SetSession(sess *Session) {
	s.sessions[sess.ID] = sess
}

// DeleteSession implements Store.DeleteSession. Unknown IDs are a no-op.
func (s *InMemoryStore) DeleteSession(id SessionID) {
	delete(s.sessions, id)
}

// ListSessionIDs implements Store.ListSessionIDs.
func (s *InMemoryStore) ListSessionIDs() []SessionID {
	ids := make([]SessionID, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}
