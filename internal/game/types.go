// internal/game/types.go
//
// Core type definitions for the letter-guessing engine.
// Defines:
//   - Mode: difficulty tier (Easy/Medium/Hard); Medium and Hard run a per-letter timer.
//   - State: session lifecycle (not_started → in_progress → ended).
//   - Signal/Outcome: the explicit result of every input applied to a session.
//   - Notifier: fire-and-forget sound hooks.

package game

import (
	"strings"
	"time"

	"github.com/robalobadob/guess-letter/internal/words"
)

const (
	WordsPerSession = 10
	StartingLives   = 3
	HintsPerWord    = 3
	ChoiceCount     = 4
	LetterTimeLimit = 30 * time.Second
)

// Mode is the difficulty tier of a session.
type Mode string

const (
	ModeEasy   Mode = words.Easy
	ModeMedium Mode = words.Medium
	ModeHard   Mode = words.Hard
)

// ParseMode accepts a mode name in any case.
func ParseMode(s string) (Mode, error) {
	l, ok := words.Level(s)
	if !ok {
		return "", ErrUnknownMode
	}
	return Mode(l), nil
}

// Timed reports whether letters in this mode have a deadline.
func (m Mode) Timed() bool { return m == ModeMedium || m == ModeHard }

// State is the coarse lifecycle of a Session.
type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateEnded      State = "ended"
)

// Signal names what an input did to the session.
type Signal string

const (
	SignalNone          Signal = "none"
	SignalLetterCorrect Signal = "letter_correct"
	SignalLetterWrong   Signal = "letter_wrong"
	SignalWordComplete  Signal = "word_complete"
	SignalWordSkipped   Signal = "word_skipped"
	SignalLifeLost      Signal = "life_lost"
	SignalGameOver      Signal = "game_over"
	SignalHint          Signal = "hint"
)

// Outcome is returned by every evaluator operation.
type Outcome struct {
	Signal          Signal `json:"signal"`
	ScoreDelta      int    `json:"scoreDelta"`
	LivesLost       int    `json:"livesLost"`
	WrongLetters    int    `json:"wrongLetters,omitempty"`    // full-word guesses only
	Hint            string `json:"hint,omitempty"`            // revealed letter, upper case
	Word            string `json:"word,omitempty"`            // the word that was finished or skipped
	Feedback        string `json:"feedback,omitempty"`        // short text for the UI
	TimedOut        bool   `json:"timedOut,omitempty"`        // the letter deadline had passed
	SessionComplete bool   `json:"sessionComplete,omitempty"` // all words played
}

// GameOver reports whether the outcome ended the session by running out of lives.
func (o Outcome) GameOver() bool { return o.Signal == SignalGameOver }

var noop = Outcome{Signal: SignalNone}

// Notifier receives sound cues. Implementations must not block.
type Notifier interface {
	PlayCorrect()
	PlayWrong()
}

type nopNotifier struct{}

func (nopNotifier) PlayCorrect() {}
func (nopNotifier) PlayWrong()   {}

// isLetters reports whether s is non-empty ASCII letters (either case).
// Words and guesses are a-z only; nicknames use unicode.IsLetter instead
// (see ValidateNickname). Keep the two apart.
func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}

func normalizeGuess(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
