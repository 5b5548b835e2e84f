package session

import (
	"context"
	"sync"
	"time"

	"github.com/JonMunkholm/hrpanel/internal/core"
)

type memoryEntry struct {
	state   core.State
	touched time.Time
}

// MemoryStore is an in-process session store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

// Load returns a session's state and refreshes its idle timer.
func (m *MemoryStore) Load(_ context.Context, id string) (core.State, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return core.State{}, false, nil
	}
	e.touched = m.now()
	m.sessions[id] = e
	return e.state, true, nil
}

// Save stores a session's state.
func (m *MemoryStore) Save(_ context.Context, id string, st core.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = memoryEntry{state: st, touched: m.now()}
	return nil
}

// Delete drops a session.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes sessions not loaded or saved within idle and returns their
// ids.
func (m *MemoryStore) Sweep(ctx context.Context, idle time.Duration) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cutoff := m.now().Add(-idle)

	m.mu.Lock()
	defer m.mu.Unlock()

	var removed []string
	for id, e := range m.sessions {
		if e.touched.Before(cutoff) {
			delete(m.sessions, id)
			removed = append(removed, id)
		}
	}
	return removed, nil
}
