package docstore

import (
	"context"
	"encoding/json"
	"sync"
)

// Memory is an in-memory Store for tests. Error injection fields let tests
// simulate an unreachable store: when set, the corresponding operation
// returns that error and leaves the stored documents untouched.
type Memory struct {
	mu   sync.Mutex
	docs map[string]map[string]json.RawMessage // userID → path → body

	FailGet       error
	FailSet       error
	FailIncrement error

	// SetCalls counts Set invocations, mutations and failures alike.
	SetCalls int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]map[string]json.RawMessage)}
}

func (m *Memory) Get(_ context.Context, userID, path string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailGet != nil {
		return nil, m.FailGet
	}
	body, ok := m.docs[userID][path]
	if !ok {
		return nil, ErrNotFound
	}
	return body, nil
}

func (m *Memory) Set(_ context.Context, userID, path string, doc any, opts SetOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	if m.FailSet != nil {
		return m.FailSet
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	if opts.Merge {
		merged, err := mergeRaw(m.docs[userID][path], body)
		if err != nil {
			return err
		}
		body = merged
	}

	m.put(userID, path, body)
	return nil
}

func (m *Memory) Increment(_ context.Context, userID, path string, deltas map[string]int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailIncrement != nil {
		return m.FailIncrement
	}

	parsed := map[string]any{}
	if existing, ok := m.docs[userID][path]; ok {
		if err := json.Unmarshal(existing, &parsed); err != nil {
			return err
		}
	}
	if err := applyIncrements(parsed, deltas); err != nil {
		return err
	}
	body, err := json.Marshal(parsed)
	if err != nil {
		return err
	}
	m.put(userID, path, body)
	return nil
}

func (m *Memory) put(userID, path string, body json.RawMessage) {
	if m.docs[userID] == nil {
		m.docs[userID] = make(map[string]json.RawMessage)
	}
	m.docs[userID][path] = body
}
