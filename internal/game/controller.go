// internal/game/controller.go
//
// Session controller: starts sessions (nickname + mode validation, word
// sampling) and ends them (one leaderboard entry, top five for the mode).

package game

import (
	"context"
	"math/rand"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guess-letter/internal/daily"
	"github.com/robalobadob/guess-letter/internal/leaderboard"
	"github.com/robalobadob/guess-letter/internal/words"
)

// Leaderboard is the subset of leaderboard.Store the controller needs.
type Leaderboard interface {
	Append(ctx context.Context, e leaderboard.Entry) error
	Top(ctx context.Context, mode string, limit int) ([]leaderboard.Entry, error)
}

// Controller creates and finishes sessions.
type Controller struct {
	board  Leaderboard
	pool   func(Mode) []string
	now    func() time.Time
	seed   func() int64
	newID  func() string
	notify Notifier
	salt   string
}

// Option customises a Controller.
type Option func(*Controller)

// WithPool replaces the word source (default: words.Pool).
func WithPool(fn func(Mode) []string) Option { return func(c *Controller) { c.pool = fn } }

// WithClock replaces time.Now.
func WithClock(fn func() time.Time) Option { return func(c *Controller) { c.now = fn } }

// WithSeed replaces the per-session random seed source.
func WithSeed(fn func() int64) Option { return func(c *Controller) { c.seed = fn } }

// WithIDs replaces the session ID generator.
func WithIDs(fn func() string) Option { return func(c *Controller) { c.newID = fn } }

// WithNotifier sets the sound hooks handed to every session.
func WithNotifier(n Notifier) Option { return func(c *Controller) { c.notify = n } }

// WithDailySalt sets the secret mixed into daily seeds.
func WithDailySalt(salt string) Option { return func(c *Controller) { c.salt = salt } }

// NewController builds a controller that records results in board.
func NewController(board Leaderboard, opts ...Option) *Controller {
	c := &Controller{
		board:  board,
		pool:   func(m Mode) []string { return words.Pool(string(m)) },
		now:    time.Now,
		seed:   func() int64 { return time.Now().UnixNano() },
		newID:  func() string { return uuid.NewString() },
		notify: nopNotifier{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Now is the controller's clock.
func (c *Controller) Now() time.Time { return c.now() }

// Start validates the nickname and mode and samples a fresh word list.
func (c *Controller) Start(nickname, mode string) (*Session, error) {
	return c.StartSeeded(nickname, mode, c.seed())
}

// StartSeeded is Start with an explicit random seed; equal seeds sample equal
// word lists from equal pools.
func (c *Controller) StartSeeded(nickname, mode string, seed int64) (*Session, error) {
	nick, err := ValidateNickname(nickname)
	if err != nil {
		return nil, err
	}
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))
	list, err := Sample(c.pool(m), WordsPerSession, rng)
	if err != nil {
		log.Warn().Str("mode", string(m)).Err(err).Msg("cannot start session")
		return nil, err
	}
	s := newSession(c.newID(), nick, m, list, c.now(), rng, c.notify)
	log.Info().Str("session", s.ID).Str("nickname", nick).Str("mode", string(m)).Msg("session started")
	return s, nil
}

// StartDaily starts a session whose words are fixed for the UTC day of date.
func (c *Controller) StartDaily(nickname, mode string, date time.Time) (*Session, error) {
	return c.StartSeeded(nickname, mode, daily.Seed(date, c.salt))
}

// End finishes s (if still running), records its score exactly once and
// returns the top entries for its mode. Abandoned sessions are not recorded.
func (c *Controller) End(ctx context.Context, s *Session) ([]leaderboard.Entry, error) {
	now := c.now()
	if s.state != StateEnded {
		s.end(now)
	}
	if !s.recorded && !s.abandoned {
		e := leaderboard.NewEntry(s.Nickname, s.score, string(s.Mode), now)
		if err := c.board.Append(ctx, e); err != nil {
			return nil, err
		}
		s.recorded = true
		log.Info().Str("session", s.ID).Int("score", s.score).Str("mode", string(s.Mode)).Msg("score recorded")
	}
	return c.board.Top(ctx, string(s.Mode), leaderboard.DefaultTop)
}

// ValidateNickname trims name and requires it to be letters only, at most
// leaderboard.MaxNicknameLen of them. Any Unicode letter counts.
func ValidateNickname(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > leaderboard.MaxNicknameLen {
		return "", ErrInvalidNickname
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return "", ErrInvalidNickname
		}
	}
	return name, nil
}

// Sample draws n distinct words from pool without replacement.
// Entries are lowercased and de-duplicated first; invalid entries are dropped.
func Sample(pool []string, n int, rng *rand.Rand) ([]string, error) {
	seen := make(map[string]struct{}, len(pool))
	distinct := make([]string, 0, len(pool))
	for _, w := range pool {
		w = normalizeGuess(w)
		if !isLetters(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		distinct = append(distinct, w)
	}
	if len(distinct) < n {
		return nil, ErrInsufficientWords
	}
	out := make([]string, n)
	for i, j := range rng.Perm(len(distinct))[:n] {
		out[i] = distinct[j]
	}
	return out, nil
}
