package mentor

import (
	"context"
	"sync"
)

// Manager hands out one Session per user, creating it on first use.
// Sessions live for the process lifetime; Drop evicts one so the next
// access reloads the transcript from the store.
type Manager struct {
	deps Deps

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(deps Deps) *Manager {
	return &Manager{deps: deps, sessions: make(map[string]*Session)}
}

// Get returns the user's session, loading it if needed.
func (m *Manager) Get(ctx context.Context, userID string) (*Session, error) {
	m.mu.Lock()
	if s, ok := m.sessions[userID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	// Load outside the lock; a racing loader for the same user loses
	// and its session is discarded.
	s, err := NewSession(ctx, userID, m.deps)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[userID]; ok {
		return existing, nil
	}
	m.sessions[userID] = s
	return s, nil
}

// Drop evicts the user's cached session.
func (m *Manager) Drop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
