package game

import (
	"strings"
	"time"
)

// Round tracks progress through a single word. index counts the letters
// already confirmed and only ever grows.
type Round struct {
	id       uint64 // unique per session; ties timers to this round
	word     string
	index    int
	timed    bool
	deadline time.Time
}

// NewRound starts a round on word and arms the timer when timed.
func NewRound(id uint64, word string, timed bool, now time.Time) *Round {
	r := &Round{id: id, word: strings.ToLower(word), timed: timed}
	r.ResetTimer(now)
	return r
}

func (r *Round) ID() uint64   { return r.id }
func (r *Round) Word() string { return r.word }
func (r *Round) Index() int   { return r.index }
func (r *Round) Len() int     { return len(r.word) }

// Complete reports whether every letter has been confirmed.
func (r *Round) Complete() bool { return r.index >= len(r.word) }

// AdvanceLetter confirms the next letter and reports whether the word is now complete.
func (r *Round) AdvanceLetter() bool {
	if r.index < len(r.word) {
		r.index++
	}
	return r.Complete()
}

// finish marks every letter as confirmed.
func (r *Round) finish() { r.index = len(r.word) }

// LetterAt returns the letter at position i, if any.
func (r *Round) LetterAt(i int) (rune, bool) {
	if i < 0 || i >= len(r.word) {
		return 0, false
	}
	return rune(r.word[i]), true
}

// Next returns the next unrevealed letter, or false once the word is complete.
func (r *Round) Next() (rune, bool) { return r.LetterAt(r.index) }

// ResetTimer sets the deadline to now + LetterTimeLimit. Untimed rounds are unaffected.
func (r *Round) ResetTimer(now time.Time) {
	if !r.timed {
		return
	}
	r.deadline = now.Add(LetterTimeLimit)
}

// Deadline returns the current letter's deadline, if the round is timed.
func (r *Round) Deadline() (time.Time, bool) {
	return r.deadline, r.timed
}

// TimeRemaining is max(0, deadline-now); zero for untimed rounds.
func (r *Round) TimeRemaining(now time.Time) time.Duration {
	if !r.timed {
		return 0
	}
	if d := r.deadline.Sub(now); d > 0 {
		return d
	}
	return 0
}

// SecondsRemaining rounds TimeRemaining up to whole seconds, so a fresh
// timer reads 30 and 0 means expired.
func (r *Round) SecondsRemaining(now time.Time) int {
	d := r.TimeRemaining(now)
	return int((d + time.Second - 1) / time.Second)
}

// Expired reports whether a timed letter has run out of time.
func (r *Round) Expired(now time.Time) bool {
	return r.timed && !r.Complete() && !now.Before(r.deadline)
}

// Display renders confirmed letters in upper case and "_" for the rest.
func (r *Round) Display() string {
	parts := make([]string, len(r.word))
	for i := range r.word {
		if i < r.index {
			parts[i] = strings.ToUpper(r.word[i : i+1])
		} else {
			parts[i] = "_"
		}
	}
	return strings.Join(parts, " ")
}
