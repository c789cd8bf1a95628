package game

import (
	"math/rand"
	"testing"
	"time"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type countingNotifier struct {
	correct, wrong int
}

func (n *countingNotifier) PlayCorrect() { n.correct++ }
func (n *countingNotifier) PlayWrong()   { n.wrong++ }

func newTestSession(t *testing.T, mode Mode, list ...string) (*Session, *countingNotifier) {
	t.Helper()
	n := &countingNotifier{}
	return newSession("sid", "Ana", mode, list, t0, rand.New(rand.NewSource(7)), n), n
}

// tenWords returns a list whose first entries are the given words.
func tenWords(first ...string) []string {
	fill := []string{"dog", "sun", "cup", "hat", "pen", "key", "egg", "fan", "bag", "sky"}
	out := append([]string{}, first...)
	for _, w := range fill {
		if len(out) == WordsPerSession {
			break
		}
		out = append(out, w)
	}
	return out
}

// assertInvariants checks the bounds that must hold at every observable point.
func assertInvariants(t *testing.T, s *Session) {
	t.Helper()
	if s.Lives() < 0 || s.Lives() > StartingLives {
		t.Fatalf("lives out of range: %d", s.Lives())
	}
	if s.Score() < 0 {
		t.Fatalf("negative score: %d", s.Score())
	}
	if s.HintsLeft() < 0 || s.HintsLeft() > HintsPerWord {
		t.Fatalf("hints out of range: %d", s.HintsLeft())
	}
}
