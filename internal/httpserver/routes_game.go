// internal/httpserver/routes_game.go
//
// Game endpoints.
//   - POST /game/new    → start a session, returns a session token and the first view
//   - GET  /game/state  → apply an elapsed deadline, return the current view
//   - POST /game/guess  → letter (multiple choice or typed) or full-word guess
//   - POST /game/hint   → reveal the next letter
//   - POST /game/skip   → move to the next word without penalty
//   - POST /game/quit   → back to the menu; the session is dropped unrecorded
//   - GET  /game/image  → picture for the current word, 404 when there is none
//
// Every session route runs inside store.Do, so inputs for one session are
// applied one at a time.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guess-letter/internal/game"
	"github.com/robalobadob/guess-letter/internal/leaderboard"
)

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Nickname string `json:"nickname"`
	Mode     string `json:"mode"`  // "Easy" | "Medium" | "Hard" (case-insensitive)
	Daily    bool   `json:"daily"` // same ten words for everyone today
}
type newGameRes struct {
	GameID    string    `json:"gameId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	View      game.View `json:"view"`
	Image     bool      `json:"image"`
}

// playRes is returned by every session route.
type playRes struct {
	Outcome     game.Outcome        `json:"outcome"`
	View        game.View           `json:"view"`
	Image       bool                `json:"image"`                 // GET /game/image has a picture
	Leaderboard []leaderboard.Entry `json:"leaderboard,omitempty"` // set once the session ended
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.startGame(w, r, req)
}

// startGame creates the session, stores it and issues its token.
func (s *Server) startGame(w http.ResponseWriter, r *http.Request, req newGameReq) {
	now := s.ctrl.Now()
	var (
		sess *game.Session
		err  error
	)
	if req.Daily {
		sess, err = s.ctrl.StartDaily(req.Nickname, req.Mode, now)
	} else {
		sess, err = s.ctrl.Start(req.Nickname, req.Mode)
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.signToken(sess.ID, sess.Nickname, now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setSessionCookie(w, tok, exp)
	writeJSON(w, http.StatusOK, newGameRes{
		GameID:    sess.ID,
		Token:     tok,
		ExpiresAt: exp,
		View:      sess.View(now),
		Image:     s.cfg.Images.Resolve(sess.CurrentWord()) != "",
	})
}

// apply runs op against the session with exclusive access. When the session
// has ended afterwards, its score is recorded and the top five attached.
func (s *Server) apply(ctx context.Context, id string, op func(*game.Session, time.Time) (game.Outcome, error)) (playRes, error) {
	var res playRes
	err := s.store.Do(ctx, id, func(sess *game.Session) error {
		now := s.ctrl.Now()
		out, err := op(sess, now)
		if err != nil {
			return err
		}
		res.Outcome = out
		if sess.State() == game.StateEnded {
			// a failed record is retried by the sweeper; the outcome still goes out
			top, err := s.ctrl.End(ctx, sess)
			if err != nil {
				log.Error().Err(err).Str("session", sess.ID).Msg("record score")
			} else {
				res.Leaderboard = nonNil(top)
			}
		}
		res.View = sess.View(now)
		res.Image = s.cfg.Images.Resolve(sess.CurrentWord()) != ""
		return nil
	})
	return res, err
}

// play is apply for an HTTP request.
func (s *Server) play(w http.ResponseWriter, r *http.Request, op func(*game.Session, time.Time) (game.Outcome, error)) {
	res, err := s.apply(r.Context(), sessionID(r), op)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.play(w, r, func(sess *game.Session, now time.Time) (game.Outcome, error) {
		return sess.Tick(now), nil
	})
}

// guessReq payload for POST /game/guess.
type guessReq struct {
	Guess string `json:"guess"`
	Kind  string `json:"kind"` // "letter" | "word" | "" (by length)
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.play(w, r, func(sess *game.Session, now time.Time) (game.Outcome, error) {
		switch req.Kind {
		case "letter":
			return sess.GuessLetter(req.Guess, now)
		case "word":
			return sess.GuessWord(req.Guess, now)
		case "":
			return sess.Guess(req.Guess, now)
		default:
			return game.Outcome{}, game.ErrInvalidGuess
		}
	})
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	s.play(w, r, (*game.Session).Hint)
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	s.play(w, r, (*game.Session).Skip)
}

// handleQuit abandons a running session (not recorded) and forgets it.
// A session that already ended keeps its score: it is recorded first, and
// kept for the sweeper when that fails.
func (s *Server) handleQuit(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	var view game.View
	keep := false
	err := s.store.Do(r.Context(), id, func(sess *game.Session) error {
		now := s.ctrl.Now()
		if sess.State() == game.StateEnded && !sess.Recorded() && !sess.Abandoned() {
			if _, err := s.ctrl.End(r.Context(), sess); err != nil {
				log.Error().Err(err).Str("session", id).Msg("record score on quit")
				keep = true
			}
		}
		sess.Abandon(now)
		view = sess.View(now)
		return nil
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	if !keep {
		_ = s.store.Delete(r.Context(), id)
	}
	s.clearSessionCookie(w)
	log.Info().Str("session", id).Msg("session quit")
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "view": view})
}

// handleImage serves the current word's picture. The file name is not exposed.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	var path string
	err := s.store.Do(r.Context(), sessionID(r), func(sess *game.Session) error {
		path = s.cfg.Images.Resolve(sess.CurrentWord())
		return nil
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	if path == "" {
		writeError(w, http.StatusNotFound, "no_image")
		return
	}
	w.Header().Del("Content-Type")
	w.Header().Set("Cache-Control", "no-store")
	http.ServeFile(w, r, path)
}
