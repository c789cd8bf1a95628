// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge".
// Exposes two endpoints under /daily:
//   - GET  /daily/today → today's date key (UTC)
//   - POST /daily/new   → start a session on today's word list
//
// Deterministic word selection is based on date + salt (see internal/daily);
// every player starting on the same UTC day gets the same ten words per mode.
// Daily sessions are ordinary sessions afterwards: same routes, same leaderboard.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/guess-letter/internal/daily"
	"github.com/robalobadob/guess-letter/internal/words"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Get("/daily/today", s.handleDailyToday)
	r.Post("/daily/new", s.handleDailyNew)
}

func (s *Server) handleDailyToday(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"date":  daily.DateKey(s.ctrl.Now()),
		"modes": words.Levels,
	})
}

// handleDailyNew is POST /game/new with daily forced on.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	req.Daily = true
	s.startGame(w, r, req)
}
