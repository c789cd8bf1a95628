package game

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/guess-letter/internal/leaderboard"
)

type mockBoard struct {
	mock.Mock
}

func (m *mockBoard) Append(ctx context.Context, e leaderboard.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockBoard) Top(ctx context.Context, mode string, limit int) ([]leaderboard.Entry, error) {
	args := m.Called(ctx, mode, limit)
	top, _ := args.Get(0).([]leaderboard.Entry)
	return top, args.Error(1)
}

func newTestController(t *testing.T, pool []string) (*Controller, *leaderboard.FileStore) {
	t.Helper()
	board := leaderboard.NewFileStore(filepath.Join(t.TempDir(), "leaderboard.txt"))
	n := 0
	c := NewController(board,
		WithPool(func(Mode) []string { return pool }),
		WithClock(func() time.Time { return t0 }),
		WithSeed(func() int64 { return 42 }),
		WithIDs(func() string { n++; return "game-" + strings.Repeat("x", n) }),
	)
	return c, board
}

func TestStart_Validation(t *testing.T) {
	c, _ := newTestController(t, tenWords())

	for _, nick := range []string{"", "   ", "Ana1", "ana bob", "x_y", strings.Repeat("a", 70000), strings.Repeat("é", leaderboard.MaxNicknameLen+1)} {
		_, err := c.Start(nick, "Easy")
		assert.ErrorIs(t, err, ErrInvalidNickname, "nickname %q", nick)
	}
	_, err := c.Start("Ana", "Expert")
	assert.ErrorIs(t, err, ErrUnknownMode)

	long := strings.Repeat("é", leaderboard.MaxNicknameLen)
	_, err = c.Start(long, "Easy")
	assert.NoError(t, err, "the cap counts runes, not bytes")

	s, err := c.Start("  Zoë ", "medium")
	require.NoError(t, err)
	assert.Equal(t, "Zoë", s.Nickname)
	assert.Equal(t, ModeMedium, s.Mode)
	assert.Equal(t, StateInProgress, s.State())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, StartingLives, s.Lives())
	assert.Equal(t, HintsPerWord, s.HintsLeft())
	assert.Equal(t, t0, s.StartedAt)
	require.NotNil(t, s.Round())
	assert.Equal(t, 0, s.Round().Index())
}

func TestStart_InsufficientWords(t *testing.T) {
	short := tenWords()[:9]
	c, _ := newTestController(t, short)
	_, err := c.Start("Ana", "Easy")
	assert.ErrorIs(t, err, ErrInsufficientWords)

	// duplicates do not count towards the ten
	c, _ = newTestController(t, append(short, "dog", "DOG"))
	_, err = c.Start("Ana", "Easy")
	assert.ErrorIs(t, err, ErrInsufficientWords)
}

func TestStart_ExactPoolUsesEveryWord(t *testing.T) {
	pool := tenWords()
	c, _ := newTestController(t, pool)
	s, err := c.Start("Ana", "Hard")
	require.NoError(t, err)
	assert.ElementsMatch(t, pool, s.Words())
}

func TestStartSeeded_Deterministic(t *testing.T) {
	pool := append(tenWords(), "owl", "fox", "ant", "bee", "cow", "pig")
	c, _ := newTestController(t, pool)

	a, err := c.StartSeeded("Ana", "Easy", 2024)
	require.NoError(t, err)
	b, err := c.StartSeeded("Bob", "Easy", 2024)
	require.NoError(t, err)

	assert.Equal(t, a.Words(), b.Words())
	assert.NotEqual(t, a.ID, b.ID)
	assertDistinct(t, a.Words())
}

func TestStartDaily_SameWordsAllDay(t *testing.T) {
	pool := append(tenWords(), "owl", "fox", "ant", "bee", "cow", "pig")
	c, _ := newTestController(t, pool)

	a, err := c.StartDaily("Ana", "Medium", t0)
	require.NoError(t, err)
	b, err := c.StartDaily("Bob", "Medium", t0.Add(6*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, a.Words(), b.Words())
}

func TestSample(t *testing.T) {
	pool := []string{"Cat", "cat", "dog", "", "x1", "sun"}
	got, err := Sample(pool, 3, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"cat", "dog", "sun"}, got)

	_, err = Sample(pool, 4, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrInsufficientWords)
}

func TestEnd_RecordsOnce(t *testing.T) {
	ctx := context.Background()
	c, board := newTestController(t, tenWords())
	s, err := c.Start("Ana", "Easy")
	require.NoError(t, err)

	_, _ = s.GuessWord(s.CurrentWord(), t0)
	score := s.Score()
	require.Positive(t, score)

	top, err := c.End(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, StateEnded, s.State())
	assert.True(t, s.Recorded())
	require.Len(t, top, 1)
	assert.Equal(t, "Ana", top[0].Nickname)
	assert.Equal(t, score, top[0].Score)
	assert.Equal(t, "Easy", top[0].Mode)
	assert.Equal(t, "2024-05-01 12:00", top[0].Timestamp)

	_, err = c.End(ctx, s)
	require.NoError(t, err)
	b, err := board.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, b["Easy"], 1)
}

func TestEnd_AfterGameOver(t *testing.T) {
	ctx := context.Background()
	c, board := newTestController(t, tenWords())
	s, err := c.Start("Ana", "Medium")
	require.NoError(t, err)

	for s.State() == StateInProgress {
		_, err := s.GuessWord("zzz", t0)
		require.NoError(t, err)
	}
	top, err := c.End(ctx, s)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 0, top[0].Score)

	b, _ := board.Load(ctx)
	assert.Len(t, b["Medium"], 1)
	assert.Empty(t, b["Easy"])
}

func TestEnd_TopFiveOnly(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t, tenWords())

	var top []leaderboard.Entry
	for i := 0; i < 7; i++ {
		s, err := c.Start("Ana", "Hard")
		require.NoError(t, err)
		for j := 0; j < i; j++ {
			_, _ = s.Skip(t0)
		}
		_, _ = s.GuessWord(s.CurrentWord(), t0)
		top, err = c.End(ctx, s)
		require.NoError(t, err)
	}
	require.Len(t, top, leaderboard.DefaultTop)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Score, top[i].Score)
	}
}

func TestAbandon_NotRecorded(t *testing.T) {
	ctx := context.Background()
	c, board := newTestController(t, tenWords())
	s, err := c.Start("Ana", "Easy")
	require.NoError(t, err)

	s.Abandon(t0)
	assert.True(t, s.Abandoned())
	assert.Equal(t, StateEnded, s.State())

	top, err := c.End(ctx, s)
	require.NoError(t, err)
	assert.Empty(t, top)
	assert.False(t, s.Recorded())

	b, err := board.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, b["Easy"])
}

func assertDistinct(t *testing.T, list []string) {
	t.Helper()
	seen := map[string]bool{}
	for _, w := range list {
		assert.False(t, seen[w], "duplicate word %q", w)
		seen[w] = true
	}
}

func TestEnd_AppendFailureLeavesSessionUnrecorded(t *testing.T) {
	ctx := context.Background()
	board := &mockBoard{}
	c := NewController(board,
		WithPool(func(Mode) []string { return tenWords() }),
		WithClock(func() time.Time { return t0 }),
	)
	s, err := c.Start("Ana", "Hard")
	require.NoError(t, err)

	diskFull := errors.New("disk full")
	want := leaderboard.NewEntry("Ana", 0, "Hard", t0)
	board.On("Append", ctx, want).Return(diskFull).Once()

	_, err = c.End(ctx, s)
	assert.ErrorIs(t, err, diskFull)
	assert.False(t, s.Recorded())
	assert.Equal(t, StateEnded, s.State())

	// a retry records it
	board.On("Append", ctx, want).Return(nil).Once()
	board.On("Top", ctx, "Hard", leaderboard.DefaultTop).Return([]leaderboard.Entry{want}, nil)
	top, err := c.End(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, []leaderboard.Entry{want}, top)
	assert.True(t, s.Recorded())
	board.AssertExpectations(t)
}
