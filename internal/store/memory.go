// internal/store/memory.go
//
// In-memory store for games in progress over the HTTP API.
//
// Characteristics:
//   - Stores *game.Session objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Sessions older than the configured TTL are dropped by Sweep.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jenopardy/jenopardy/internal/game"
)

// ErrNotFound is returned by Get for unknown or expired ids.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s *game.Session) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*game.Session, error)

	// Delete forgets a session. Unknown ids are ignored.
	Delete(ctx context.Context, id string) error
}

// Memory is an in-memory map-based Store.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session
	ttl      time.Duration
}

// NewMemoryStore constructs an empty store. A ttl of zero keeps sessions forever.
func NewMemoryStore(ttl time.Duration) *Memory {
	return &Memory{sessions: make(map[string]*game.Session), ttl: ttl}
}

// Save adds or replaces the session.
func (m *Memory) Save(_ context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

// Get looks up a session by ID.
func (m *Memory) Get(_ context.Context, id string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

// Delete removes a session.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len is the number of stored sessions.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops sessions created before now minus the TTL and returns how
// many were removed.
func (m *Memory) Sweep(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-m.ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.CreatedAt.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (m *Memory) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			m.Sweep(now)
		}
	}
}
