// internal/store/memory.go
//
// In-memory session registry.
// Characteristics:
//   - Stores *quiz.Session keyed by session ID.
//   - Concurrency-safe via RWMutex for the map; each session guards itself.
//   - Tracks when each session was last touched so idle ones can be swept.
//   - Deleting or sweeping a session closes it, so late settle transitions
//     never apply to a discarded run.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordquest/internal/quiz"
)

// ErrNotFound is returned for unknown or already removed session IDs.
var ErrNotFound = errors.New("session not found")

// Store holds live quiz sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *quiz.Session) error

	// Get returns the session and marks it as recently used.
	Get(ctx context.Context, id string) (*quiz.Session, error)

	// Delete closes and removes a session.
	Delete(ctx context.Context, id string) error

	// Sweep closes and removes every session untouched since idleSince.
	Sweep(ctx context.Context, idleSince time.Time) int

	// Len is the number of live sessions.
	Len() int
}

type entry struct {
	session  *quiz.Session
	lastSeen time.Time
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	now      func() time.Time
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*entry), now: time.Now}
}

func (m *memory) Save(ctx context.Context, s *quiz.Session) error {
	if s == nil {
		return errors.New("nil session")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.sessions[s.ID()]; ok && old.session != s {
		old.session.Close()
	}
	m.sessions[s.ID()] = &entry{session: s, lastSeen: m.now()}
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*quiz.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastSeen = m.now()
	return e.session, nil
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	e.session.Close()
	return nil
}

func (m *memory) Sweep(ctx context.Context, idleSince time.Time) int {
	var stale []*quiz.Session
	m.mu.Lock()
	for id, e := range m.sessions {
		if e.lastSeen.Before(idleSince) {
			stale = append(stale, e.session)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range stale {
		s.Close()
	}
	return len(stale)
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
