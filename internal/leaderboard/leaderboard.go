// internal/leaderboard/leaderboard.go
//
// Append-only score log shared by every finished session.
// Defines:
//   - Entry: one (nickname, score, mode, timestamp) record.
//   - Board: entries grouped by mode, each bucket sorted by score (highest first).
//   - Store: the persistence contract implemented by FileStore and SQLiteStore.
//
// Entries are never updated or removed; ordering is applied on read.

package leaderboard

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/robalobadob/guess-letter/internal/words"
)

// TimeLayout is the timestamp format written to the log (YYYY-MM-DD HH:MM).
const TimeLayout = "2006-01-02 15:04"

// MaxNicknameLen caps the nickname length in runes.
const MaxNicknameLen = 32

// DefaultTop is the number of entries shown on the game-over screen.
const DefaultTop = 5

var (
	ErrInvalidEntry = errors.New("leaderboard: invalid entry")
	ErrUnknownMode  = errors.New("leaderboard: unknown mode")
)

// Entry is a single leaderboard record.
type Entry struct {
	Nickname  string `json:"nickname"`
	Score     int    `json:"score"`
	Mode      string `json:"mode"`
	Timestamp string `json:"timestamp"` // "YYYY-MM-DD HH:MM", may be empty for legacy lines
}

// NewEntry builds an Entry stamped with t in TimeLayout.
func NewEntry(nickname string, score int, mode string, t time.Time) Entry {
	return Entry{Nickname: nickname, Score: score, Mode: mode, Timestamp: t.Format(TimeLayout)}
}

// validate rejects entries that would corrupt the line format.
func (e Entry) validate() (Entry, error) {
	if e.Nickname == "" || strings.ContainsAny(e.Nickname, "|\r\n") || strings.ContainsAny(e.Timestamp, "|\r\n") {
		return e, ErrInvalidEntry
	}
	if utf8.RuneCountInString(e.Nickname) > MaxNicknameLen || e.Score < 0 {
		return e, ErrInvalidEntry
	}
	mode, ok := words.Level(e.Mode)
	if !ok {
		return e, ErrUnknownMode
	}
	e.Mode = mode
	return e, nil
}

// Board maps a mode name to its entries, highest score first.
type Board map[string][]Entry

func newBoard() Board {
	b := make(Board, len(words.Levels))
	for _, l := range words.Levels {
		b[l] = []Entry{}
	}
	return b
}

// add appends e to its mode bucket without sorting.
func (b Board) add(e Entry) {
	b[e.Mode] = append(b[e.Mode], e)
}

// sortAll orders each bucket by score descending; equal scores keep insertion order.
func (b Board) sortAll() {
	for mode := range b {
		entries := b[mode]
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Score > entries[j].Score
		})
	}
}

// Top returns at most limit entries for mode (all entries when limit <= 0).
func (b Board) Top(mode string, limit int) []Entry {
	m, ok := words.Level(mode)
	if !ok {
		return nil
	}
	entries := b[m]
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return append([]Entry{}, entries...)
}

// Store persists leaderboard entries.
type Store interface {
	// Append records one entry. Existing entries are never touched.
	Append(ctx context.Context, e Entry) error

	// Load returns every entry grouped by mode and sorted.
	Load(ctx context.Context) (Board, error)

	// Top returns the best limit entries for mode.
	Top(ctx context.Context, mode string, limit int) ([]Entry, error)

	Close() error
}
