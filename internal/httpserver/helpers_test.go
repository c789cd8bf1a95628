package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/guess-letter/internal/game"
	"github.com/robalobadob/guess-letter/internal/leaderboard"
	"github.com/robalobadob/guess-letter/internal/store"
	"github.com/robalobadob/guess-letter/internal/words"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

var testPool = []string{"cat", "dog", "sun", "cup", "hat", "pen", "key", "egg", "fan", "bag"}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Add(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	srv   *Server
	clk   *clock
	board *leaderboard.FileStore
}

func newFixture(t *testing.T, pool []string) *fixture {
	t.Helper()
	require.NoError(t, words.Init(words.Files{}))

	assets := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(assets, "images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(assets, "images", "cat.jpg"), []byte("\xff\xd8\xffjpeg"), 0o644))

	clk := &clock{now: t0}
	board := leaderboard.NewFileStore(filepath.Join(t.TempDir(), "leaderboard.txt"))
	ctrl := game.NewController(board,
		game.WithPool(func(game.Mode) []string { return pool }),
		game.WithClock(clk.Now),
		game.WithSeed(func() int64 { return 1 }),
		game.WithDailySalt("test"),
	)
	srv := New(store.NewMemoryStore(), ctrl, board, Config{
		Secret:       []byte("test-secret"),
		SessionTTL:   10 * time.Minute,
		PushInterval: 10 * time.Millisecond,
		Images:       words.ImageResolver{Dir: assets},
	})
	return &fixture{srv: srv, clk: clk, board: board}
}

// call performs a request against the router. token may be empty.
func (f *fixture) call(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.srv.Router().ServeHTTP(rec, req)
	return rec
}

func (f *fixture) newGame(t *testing.T, mode string) newGameRes {
	t.Helper()
	rec := f.call(t, http.MethodPost, "/game/new", "", map[string]any{"nickname": "Ana", "mode": mode})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res newGameRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

// session runs fn against the live session.
func (f *fixture) session(t *testing.T, id string, fn func(*game.Session)) {
	t.Helper()
	require.NoError(t, f.srv.store.Do(context.Background(), id, func(s *game.Session) error {
		fn(s)
		return nil
	}))
}

func (f *fixture) currentWord(t *testing.T, id string) string {
	var w string
	f.session(t, id, func(s *game.Session) { w = s.CurrentWord() })
	return w
}

func decodePlay(t *testing.T, rec *httptest.ResponseRecorder) playRes {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res playRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}
