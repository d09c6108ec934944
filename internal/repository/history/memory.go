package history

import (
	"context"
	"sync"
)

// MemoryStore is an in-process history store for local runs and tests.
// It applies the same length bound as the Redis store but no TTL.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string][]Message
	max      int
}

// NewMemoryStore creates an in-memory history store.
// maxMessages <= 0 falls back to DefaultMaxMessages.
func NewMemoryStore(maxMessages int) *MemoryStore {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}
	return &MemoryStore{
		sessions: make(map[string][]Message),
		max:      maxMessages,
	}
}

// Append adds messages to the session transcript and trims to the bound.
func (s *MemoryStore) Append(_ context.Context, sessionID string, msgs ...Message) error {
	if len(msgs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := append(s.sessions[sessionID], msgs...)
	if len(list) > s.max {
		list = list[len(list)-s.max:]
	}
	s.sessions[sessionID] = list
	return nil
}

// Messages returns a copy of the session transcript in order.
func (s *MemoryStore) Messages(_ context.Context, sessionID string) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.sessions[sessionID]
	out := make([]Message, len(list))
	copy(out, list)
	return out, nil
}

// Clear removes the session transcript.
func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(_ context.Context) error { return nil }
