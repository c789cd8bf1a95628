// internal/game/session.go
//
// Session state for one playthrough: ten sampled words, a shared life budget,
// the running score and the active Round.
//
// A Session is not safe for concurrent use; callers serialise access
// (see internal/store).

package game

import (
	"math/rand"
	"time"

	"github.com/robalobadob/guess-letter/internal/words"
)

// Session is one game from nickname entry to game over.
type Session struct {
	ID        string
	Nickname  string
	Mode      Mode
	StartedAt time.Time
	EndedAt   time.Time

	words     []string
	wordIndex int
	score     int
	lives     int
	hintsLeft int
	state     State
	round     *Round
	rounds    uint64 // round id counter
	choices   []string
	emoji     string
	lastInput time.Time
	abandoned bool
	recorded  bool

	rng    *rand.Rand
	notify Notifier
}

func newSession(id, nickname string, mode Mode, list []string, now time.Time, rng *rand.Rand, n Notifier) *Session {
	if n == nil {
		n = nopNotifier{}
	}
	s := &Session{
		ID:        id,
		Nickname:  nickname,
		Mode:      mode,
		StartedAt: now,
		words:     list,
		lives:     StartingLives,
		state:     StateNotStarted,
		lastInput: now,
		rng:       rng,
		notify:    n,
	}
	if len(list) > 0 {
		s.state = StateInProgress
		s.startRound(now)
	}
	return s
}

func (s *Session) State() State         { return s.state }
func (s *Session) Score() int           { return s.score }
func (s *Session) Lives() int           { return s.lives }
func (s *Session) HintsLeft() int       { return s.hintsLeft }
func (s *Session) WordIndex() int       { return s.wordIndex }
func (s *Session) WordCount() int       { return len(s.words) }
func (s *Session) Round() *Round        { return s.round }
func (s *Session) Abandoned() bool      { return s.abandoned }
func (s *Session) Recorded() bool       { return s.recorded }
func (s *Session) LastInput() time.Time { return s.lastInput }

// Words returns the sampled word list in play order.
func (s *Session) Words() []string { return append([]string(nil), s.words...) }

// CurrentWord is the target of the active round, empty once ended.
func (s *Session) CurrentWord() string {
	if s.round == nil {
		return ""
	}
	return s.round.Word()
}

// Choices returns the multiple-choice letters for the current letter.
func (s *Session) Choices() []string { return append([]string(nil), s.choices...) }

func (s *Session) startRound(now time.Time) {
	s.rounds++
	s.round = NewRound(s.rounds, s.words[s.wordIndex], s.Mode.Timed(), now)
	s.hintsLeft = HintsPerWord
	s.refreshLetter()
}

// refreshLetter regenerates the choices and emoji for the next letter.
func (s *Session) refreshLetter() {
	next, ok := s.round.Next()
	if !ok {
		s.choices = nil
		s.emoji = words.Fallback
		return
	}
	s.choices = Choices(next, s.rng)
	s.emoji = words.EmojiFor(next, s.rng)
}

// AdvanceWord moves to the next sampled word and reports whether the list is
// exhausted, in which case the session ends.
func (s *Session) AdvanceWord(now time.Time) bool {
	if s.state != StateInProgress {
		return s.state == StateEnded && s.wordIndex >= len(s.words)
	}
	s.wordIndex++
	if s.wordIndex >= len(s.words) {
		s.end(now)
		return true
	}
	s.startRound(now)
	return false
}

// Abandon ends the session without it being recorded on the leaderboard.
func (s *Session) Abandon(now time.Time) {
	if s.state == StateEnded {
		return
	}
	s.abandoned = true
	s.end(now)
}

// end moves to StateEnded and drops the round, which invalidates any timer token.
func (s *Session) end(now time.Time) {
	s.state = StateEnded
	s.EndedAt = now
	s.round = nil
	s.choices = nil
}

// loseLife takes one life and reports whether that ended the game.
func (s *Session) loseLife(now time.Time) bool {
	if s.lives > 0 {
		s.lives--
	}
	if s.lives == 0 {
		s.end(now)
		return true
	}
	return false
}

// Timer identifies one armed countdown: a letter position within a round.
type Timer struct {
	Round    uint64    `json:"round"`
	Letter   int       `json:"letter"`
	Deadline time.Time `json:"deadline"`
}

// Timer returns the countdown currently armed, if any.
func (s *Session) Timer() (Timer, bool) {
	if s.state != StateInProgress || s.round == nil {
		return Timer{}, false
	}
	dl, timed := s.round.Deadline()
	if !timed {
		return Timer{}, false
	}
	return Timer{Round: s.round.ID(), Letter: s.round.Index(), Deadline: dl}, true
}

// current reports whether t still refers to the armed countdown.
func (s *Session) current(t Timer) bool {
	cur, ok := s.Timer()
	return ok && cur.Round == t.Round && cur.Letter == t.Letter
}

// Expire applies the timeout for t if t is still current and its deadline has
// passed. Stale tokens (letter advanced, word changed, session ended) are a no-op.
func (s *Session) Expire(t Timer, now time.Time) Outcome {
	if !s.current(t) || !s.round.Expired(now) {
		return noop
	}
	return s.timeout(now)
}

// Tick checks the armed countdown against now.
func (s *Session) Tick(now time.Time) Outcome {
	t, ok := s.Timer()
	if !ok {
		return noop
	}
	return s.Expire(t, now)
}

// View is a read-only projection for rendering.
type View struct {
	ID          string   `json:"id"`
	Nickname    string   `json:"nickname"`
	Mode        Mode     `json:"mode"`
	State       State    `json:"state"`
	Score       int      `json:"score"`
	Lives       int      `json:"lives"`
	MaxLives    int      `json:"maxLives"`
	HintsLeft   int      `json:"hintsLeft"`
	WordNumber  int      `json:"wordNumber"` // 1-based
	WordCount   int      `json:"wordCount"`
	Display     string   `json:"display"`
	Emoji       string   `json:"emoji"`
	Choices     []string `json:"choices"`
	Timed       bool     `json:"timed"`
	SecondsLeft int      `json:"secondsLeft"`
}

// View snapshots the session at now.
func (s *Session) View(now time.Time) View {
	v := View{
		ID:        s.ID,
		Nickname:  s.Nickname,
		Mode:      s.Mode,
		State:     s.state,
		Score:     s.score,
		Lives:     s.lives,
		MaxLives:  StartingLives,
		HintsLeft: s.hintsLeft,
		WordCount: len(s.words),
		Timed:     s.Mode.Timed(),
		Choices:   s.Choices(),
	}
	v.WordNumber = s.wordIndex + 1
	if v.WordNumber > v.WordCount {
		v.WordNumber = v.WordCount
	}
	if s.round != nil {
		v.Display = s.round.Display()
		v.Emoji = s.emoji
		v.SecondsLeft = s.round.SecondsRemaining(now)
	}
	return v
}
