package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/guess-letter/internal/game"
	"github.com/robalobadob/guess-letter/internal/leaderboard"
)

var pool = []string{"cat", "dog", "sun", "cup", "hat", "pen", "key", "egg", "fan", "bag"}

func newSession(t *testing.T, id string) *game.Session {
	t.Helper()
	c := game.NewController(leaderboard.NewFileStore(filepath.Join(t.TempDir(), "lb.txt")),
		game.WithPool(func(game.Mode) []string { return pool }),
		game.WithIDs(func() string { return id }),
	)
	s, err := c.Start("Ana", "Easy")
	require.NoError(t, err)
	return s
}

func TestMemory_SaveDoDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	require.NoError(t, m.Save(ctx, newSession(t, "a")))
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, []string{"a"}, m.IDs())

	var nick string
	err := m.Do(ctx, "a", func(s *game.Session) error {
		nick = s.Nickname
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", nick)

	require.NoError(t, m.Delete(ctx, "a"))
	assert.ErrorIs(t, m.Do(ctx, "a", func(*game.Session) error { return nil }), ErrNotFound)
	assert.Equal(t, 0, m.Len())
}

func TestMemory_DoReturnsCallbackError(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	require.NoError(t, m.Save(ctx, newSession(t, "a")))

	err := m.Do(ctx, "a", func(s *game.Session) error {
		s.Abandon(time.Now())
		_, err := s.Skip(time.Now())
		return err
	})
	assert.ErrorIs(t, err, game.ErrSessionEnded)
}

func TestMemory_DoSerialisesPerSession(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	require.NoError(t, m.Save(ctx, newSession(t, "a")))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Do(ctx, "a", func(s *game.Session) error {
				_, _ = s.Hint(time.Now())
				return nil
			})
		}()
	}
	wg.Wait()

	_ = m.Do(ctx, "a", func(s *game.Session) error {
		assert.Equal(t, 0, s.HintsLeft())
		return nil
	})
}
