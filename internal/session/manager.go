package session

import (
	"sync"
	"time"
)

// Manager owns session state keyed by session ID. Sessions are created on
// first use and live for the process lifetime; the admin tool has a handful
// of operators, not a fleet.
type Manager struct {
	mu     sync.Mutex
	states map[string]*State
}

// NewManager constructs a Manager.
func NewManager() *Manager {
	return &Manager{states: make(map[string]*State)}
}

// Snapshot returns a copy of the session's current state.
func (m *Manager) Snapshot(sessionID string) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(sessionID).clone()
}

// RecordSearch stores the last search and its outcome on the session.
func (m *Manager) RecordSearch(sessionID, email, foundUserID string) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.get(sessionID)
	st.SearchedEmail = email
	if st.FoundUserID != foundUserID {
		// A different user is on display; stale preview flags would leak
		// across users sharing document IDs.
		st.PreviewVisible = make(map[string]bool)
	}
	st.FoundUserID = foundUserID
	return st.clone()
}

// TogglePreview flips the preview-visibility flag for a document and reports
// the new value. The first toggle for a document turns the preview on.
func (m *Manager) TogglePreview(sessionID, docID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.get(sessionID)
	if _, ok := st.PreviewVisible[docID]; ok {
		st.PreviewVisible[docID] = !st.PreviewVisible[docID]
	} else {
		st.PreviewVisible[docID] = true
	}
	return st.PreviewVisible[docID]
}

// Refresh stamps the session with a manual refresh time.
func (m *Manager) Refresh(sessionID string) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.get(sessionID)
	st.LastRefreshed = time.Now().UTC()
	return st.LastRefreshed
}

// Clear drops search results and preview flags but keeps the session alive.
func (m *Manager) Clear(sessionID string) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.get(sessionID)
	st.SearchedEmail = ""
	st.FoundUserID = ""
	st.PreviewVisible = make(map[string]bool)
	return st.clone()
}

func (m *Manager) get(sessionID string) *State {
	st, ok := m.states[sessionID]
	if !ok {
		st = newState()
		m.states[sessionID] = st
	}
	return st
}
