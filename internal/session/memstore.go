package session

import "sync"

// MemStore is an in-memory Store. It backs tests and serves as the fallback
// when a durable store cannot be created; losing history must never take
// the pipeline down with it.
type MemStore struct {
	mu     sync.Mutex
	states map[string]*State
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{states: make(map[string]*State)}
}

// Load returns a deep copy of the stored state or a fresh default.
func (m *MemStore) Load(sessionID string) *State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.states[sessionID]; ok {
		return st.Clone()
	}
	return New(sessionID)
}

// Save stores a deep copy of the state.
func (m *MemStore) Save(state *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[state.SessionID] = state.Clone()
	return nil
}
