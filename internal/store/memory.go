package store

import (
	"sync"
	"time"

	"ideaforge-backend/internal/assistant"
)

type session struct {
	transcript assistant.Transcript
	busy       bool
	epoch      uint64
	lastSeen   time.Time
}

// MemoryStore keeps one transcript per session. Transcripts are values, so
// callers never share backing arrays with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
	maxTurns int
	epochs   uint64
	now      func() time.Time
}

// NewMemoryStore keeps at most maxTurns turns per session for display;
// maxTurns <= 0 keeps every turn.
func NewMemoryStore(maxTurns int) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*session),
		maxTurns: maxTurns,
		now:      time.Now,
	}
}

func (m *MemoryStore) Get(sessionID string) assistant.Transcript {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[sessionID]; ok {
		return s.transcript
	}
	return assistant.Transcript{}
}

// Append records a finished turn for the session.
func (m *MemoryStore) Append(sessionID string, turn assistant.Turn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.touchLocked(sessionID)
	s.transcript = s.transcript.Append(turn).Tail(m.maxTurns)
}

// Commit appends turn only if the session is still in the epoch returned by
// Begin. A turn finished after the session was cleared or deleted is dropped
// and Commit reports false.
func (m *MemoryStore) Commit(sessionID string, epoch uint64, turn assistant.Turn) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok || s.epoch != epoch {
		return false
	}
	s.lastSeen = m.now()
	s.transcript = s.transcript.Append(turn).Tail(m.maxTurns)
	return true
}

// Clear empties the transcript but keeps the session. Replies still in
// flight for the old transcript are not committed.
func (m *MemoryStore) Clear(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.touchLocked(sessionID)
	s.transcript = assistant.Transcript{}
	s.epoch = m.nextEpochLocked()
}

// Delete drops the session entirely.
func (m *MemoryStore) Delete(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// Begin marks a request in flight for the session and returns the epoch to
// pass to Commit. ok is false when a request is already running.
func (m *MemoryStore) Begin(sessionID string) (epoch uint64, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.touchLocked(sessionID)
	if s.busy {
		return 0, false
	}
	s.busy = true
	return s.epoch, true
}

func (m *MemoryStore) End(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sessionID]; ok {
		s.busy = false
		s.lastSeen = m.now()
	}
}

// Sweep removes idle sessions not seen within ttl and returns how many were
// dropped. Sessions with a request in flight are kept.
func (m *MemoryStore) Sweep(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-ttl)
	n := 0
	for id, s := range m.sessions {
		if !s.busy && s.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *MemoryStore) touchLocked(sessionID string) *session {
	s, ok := m.sessions[sessionID]
	if !ok {
		s = &session{epoch: m.nextEpochLocked()}
		m.sessions[sessionID] = s
	}
	s.lastSeen = m.now()
	return s
}

func (m *MemoryStore) nextEpochLocked() uint64 {
	m.epochs++
	return m.epochs
}
