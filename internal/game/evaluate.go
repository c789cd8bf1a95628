// internal/game/evaluate.go
//
// Guess evaluation and the other player inputs (hint, skip, timeout).
//
// Rules:
//   - Letter guess: correct → +1 score and advance; wrong → −1 life.
//   - Word guess:   score −= wrong positions (floored at 0); exact match → +remaining
//                   letters and next word; otherwise −1 life.
//   - Timeout:      −1 life and the letter is skipped without score.
//   - Hint:         reveals the next letter, 3 per word, no other effect.
//   - Skip:         next word, no penalty.
//
// Every input first applies an elapsed letter deadline; input that arrives late
// is answered with the timeout outcome and otherwise ignored.

package game

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Guess routes typed input: one letter is a letter guess, more is a word guess.
func (s *Session) Guess(input string, now time.Time) (Outcome, error) {
	g := normalizeGuess(input)
	if len(g) == 1 {
		return s.GuessLetter(g, now)
	}
	return s.GuessWord(g, now)
}

// GuessLetter evaluates a guess for the next unrevealed letter.
func (s *Session) GuessLetter(letter string, now time.Time) (Outcome, error) {
	if s.state != StateInProgress {
		return noop, ErrSessionEnded
	}
	g := normalizeGuess(letter)
	if len(g) != 1 || !isLetters(g) {
		return noop, ErrInvalidGuess
	}
	if out, late := s.applyDeadline(now); late {
		return out, nil
	}
	s.lastInput = now

	want, _ := s.round.Next()
	if unicode.ToLower(rune(g[0])) != unicode.ToLower(want) {
		s.notify.PlayWrong()
		out := Outcome{Signal: SignalLetterWrong, LivesLost: 1}
		if s.loseLife(now) {
			out.Signal = SignalGameOver
		}
		return out, nil
	}

	s.notify.PlayCorrect()
	s.score++
	out := Outcome{Signal: SignalLetterCorrect, ScoreDelta: 1}
	if s.round.AdvanceLetter() {
		out.Signal = SignalWordComplete
		out.Word = s.round.Word()
		out.SessionComplete = s.AdvanceWord(now)
		return out, nil
	}
	s.round.ResetTimer(now)
	s.refreshLetter()
	return out, nil
}

// GuessWord evaluates a full-word guess against the current target.
func (s *Session) GuessWord(word string, now time.Time) (Outcome, error) {
	if s.state != StateInProgress {
		return noop, ErrSessionEnded
	}
	g := normalizeGuess(word)
	if !isLetters(g) {
		return noop, ErrInvalidGuess
	}
	if out, late := s.applyDeadline(now); late {
		return out, nil
	}
	s.lastInput = now

	target := s.round.Word()
	wrong := WrongPositions(g, target)
	before := s.score
	s.score -= wrong
	if s.score < 0 {
		s.score = 0
	}
	out := Outcome{WrongLetters: wrong}

	if g == target {
		if gained := len(target) - s.round.Index(); gained > 0 {
			s.score += gained
		}
		out.ScoreDelta = s.score - before
		s.notify.PlayCorrect()
		s.round.finish()
		out.Signal = SignalWordComplete
		out.Word = target
		out.SessionComplete = s.AdvanceWord(now)
		return out, nil
	}

	out.ScoreDelta = s.score - before
	out.LivesLost = 1
	out.Feedback = fmt.Sprintf("Wrong guess (-%d)", wrong)
	s.notify.PlayWrong()
	if s.loseLife(now) {
		out.Signal = SignalGameOver
		return out, nil
	}
	out.Signal = SignalLifeLost
	return out, nil
}

// WrongPositions counts target positions the guess misses: positions past the
// end of the guess, and positions holding a different letter.
// Letters of the guess beyond the target's length are not counted.
func WrongPositions(guess, target string) int {
	guess, target = strings.ToLower(guess), strings.ToLower(target)
	wrong := 0
	for i := 0; i < len(target); i++ {
		if i >= len(guess) || guess[i] != target[i] {
			wrong++
		}
	}
	return wrong
}

// Hint reveals the next letter while hints remain for this word.
func (s *Session) Hint(now time.Time) (Outcome, error) {
	if s.state != StateInProgress {
		return noop, ErrSessionEnded
	}
	if out, late := s.applyDeadline(now); late {
		return out, nil
	}
	s.lastInput = now
	if s.hintsLeft <= 0 {
		return noop, nil
	}
	s.hintsLeft--
	next, _ := s.round.Next()
	h := strings.ToUpper(string(next))
	return Outcome{Signal: SignalHint, Hint: h, Feedback: "Hint: " + h}, nil
}

// Skip abandons the current word without penalty and moves to the next one.
func (s *Session) Skip(now time.Time) (Outcome, error) {
	if s.state != StateInProgress {
		return noop, ErrSessionEnded
	}
	s.lastInput = now
	out := Outcome{Signal: SignalWordSkipped, Word: s.round.Word()}
	out.SessionComplete = s.AdvanceWord(now)
	return out, nil
}

// applyDeadline runs the timeout when the armed letter has expired.
func (s *Session) applyDeadline(now time.Time) (Outcome, bool) {
	if !s.round.Expired(now) {
		return noop, false
	}
	return s.timeout(now), true
}

// timeout costs a life and skips the letter without score.
func (s *Session) timeout(now time.Time) Outcome {
	s.notify.PlayWrong()
	out := Outcome{Signal: SignalLifeLost, LivesLost: 1, TimedOut: true, Feedback: "Time's up"}
	if s.loseLife(now) {
		out.Signal = SignalGameOver
		return out
	}
	if s.round.AdvanceLetter() {
		out.Signal = SignalWordComplete
		out.Word = s.round.Word()
		out.SessionComplete = s.AdvanceWord(now)
		return out
	}
	s.round.ResetTimer(now)
	s.refreshLetter()
	return out
}
