// Package session keeps uploaded counseling sessions in process-wide
// memory and sweeps their on-disk CSV artifacts.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studyscope/studyscope/internal/analysis"
)

// Session ties one uploaded history table to its analysis result. The
// in-memory entry has no TTL; it lives until explicit deletion or process
// restart. Only the CSV artifact on disk is swept.
type Session struct {
	ID        string                      `json:"session_id"`
	StudentID string                      `json:"student_id"`
	CSVPath   string                      `json:"-"`
	CreatedAt time.Time                   `json:"created_at"`
	Context   *analysis.CounselingContext `json:"context"`
}

// Store is the keyed session dictionary. It is injectable so the handlers
// never depend on a concrete backing; swapping in a persistent store must
// not touch core logic.
type Store interface {
	Put(s *Session)
	Get(id string) (*Session, bool)
	Delete(id string) (*Session, bool)
	Len() int
}

// MemoryStore is the in-process Store: a mutex-guarded map keyed by
// generated UUIDs.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore returns an empty in-process session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// NewID generates a fresh opaque session identifier.
func NewID() string {
	return uuid.NewString()
}

func (m *MemoryStore) Put(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
}

func (m *MemoryStore) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Delete removes and returns the session so the caller can clean up its
// artifact.
func (m *MemoryStore) Delete(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	return s, ok
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
