package state

import "sync"

type memoryManager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewMemoryManager constructs the in-memory Manager implementation.
func NewMemoryManager() Manager {
	return &memoryManager{
		sessions: make(map[int64]*Session),
	}
}

// Get returns a snapshot of the session for a user if it exists,
// otherwise a default idle session.
func (m *memoryManager) Get(userID int64) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if session, ok := m.sessions[userID]; ok {
		return &Session{State: session.State, Draft: copyDraft(session.Draft)}
	}

	return &Session{State: StateIdle, Draft: make(map[string]string)}
}

// SetState updates the state for a user, creating a new session if necessary.
func (m *memoryManager) SetState(userID int64, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[userID]
	if !ok {
		session = &Session{Draft: make(map[string]string)}
		m.sessions[userID] = session
	}
	session.State = st
}

// GetState returns the current state of a user, or StateIdle if none exists.
func (m *memoryManager) GetState(userID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if session, ok := m.sessions[userID]; ok {
		return session.State
	}
	return StateIdle
}

// SetField merges one accepted answer into the user's draft.
func (m *memoryManager) SetField(userID int64, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[userID]
	if !ok {
		session = &Session{State: StateIdle, Draft: make(map[string]string)}
		m.sessions[userID] = session
	}
	session.Draft[key] = value
}

// Field retrieves a draft value by key for the given user session.
func (m *memoryManager) Field(userID int64, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[userID]
	if !ok {
		return "", false
	}
	val, ok := session.Draft[key]
	return val, ok
}

// Draft returns a copy of the accumulated answers for a user.
func (m *memoryManager) Draft(userID int64) map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[userID]
	if !ok {
		return make(map[string]string)
	}
	return copyDraft(session.Draft)
}

// Reset returns the session to idle with a cleared draft.
func (m *memoryManager) Reset(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[userID] = &Session{State: StateIdle, Draft: make(map[string]string)}
}

// Clear removes the entire session for a user.
func (m *memoryManager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
}

// ClearAll wipes every session.
func (m *memoryManager) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions = make(map[int64]*Session)
}

func copyDraft(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
