// internal/store/memory.go
//
// In-memory registry of live game sessions.
//
// Characteristics:
//   - Stores *game.Session objects keyed by session ID.
//   - The map is guarded by an RWMutex; each session also has its own mutex so
//     every operation on one session runs alone while other sessions proceed.
//   - State is lost when the process restarts (scores are persisted separately
//     by the leaderboard store).

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/guess-letter/internal/game"
)

// ErrNotFound is returned for unknown or evicted session IDs.
var ErrNotFound = errors.New("store: session not found")

// Store defines the registry of running sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *game.Session) error

	// Do runs fn with exclusive access to the session with the given ID.
	Do(ctx context.Context, id string, fn func(*game.Session) error) error

	// Delete forgets a session. Unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// IDs lists the IDs currently held.
	IDs() []string

	// Len reports how many sessions are held.
	Len() int
}

// slot serialises access to a single session.
type slot struct {
	mu   sync.Mutex
	sess *game.Session
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex     // guards slots map
	slots map[string]*slot // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{slots: make(map[string]*slot)}
}

func (m *memory) Save(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[s.ID] = &slot{sess: s}
	return nil
}

func (m *memory) Do(ctx context.Context, id string, fn func(*game.Session) error) error {
	m.mu.RLock()
	sl, ok := m.slots[id]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return fn(sl.sess)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, id)
	return nil
}

func (m *memory) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.slots))
	for id := range m.slots {
		out = append(out, id)
	}
	return out
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.slots)
}
