// internal/httpserver/server.go
//
// HTTP server wiring for the Guess The Letter backend.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, request logging, panic recovery,
//     CORS, timeouts, JSON content type).
//   - Public endpoints: "/", "/health", "/debug/words", "/leaderboard".
//   - Game endpoints: POST /game/new issues a session token; every other /game
//     route requires it (see token.go) and runs against the live store.
//   - Daily endpoints: mounted under /daily (routes_daily.go).
//   - Websocket countdown feed: GET /game/ws (ws.go).
//
// Notes:
//   - Game-ending responses carry the mode's top five so the client can render
//     the game-over screen without a second request.
//   - The websocket route sits outside the timeout group; it is long lived.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guess-letter/internal/game"
	"github.com/robalobadob/guess-letter/internal/leaderboard"
	"github.com/robalobadob/guess-letter/internal/store"
	"github.com/robalobadob/guess-letter/internal/words"
)

// Config carries the transport settings resolved by main.
type Config struct {
	Secret        []byte              // HS256 key for session tokens
	TokenTTL      time.Duration       // token lifetime
	SessionTTL    time.Duration       // idle/ended sessions are evicted after this
	PushInterval  time.Duration       // websocket snapshot period
	ClientOrigin  string              // CORS origin
	SecureCookies bool                // Secure + SameSite=None cookies
	Images        words.ImageResolver // picture lookup for GET /game/image
}

// Server bundles router, live session store, controller and leaderboard.
type Server struct {
	r        *chi.Mux
	store    store.Store
	ctrl     *game.Controller
	board    leaderboard.Store
	cfg      Config
	upgrader websocket.Upgrader
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, ctrl *game.Controller, board leaderboard.Store, cfg Config) *Server {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	if cfg.PushInterval <= 0 {
		cfg.PushInterval = time.Second
	}
	if cfg.ClientOrigin == "" {
		cfg.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), store: st, ctrl: ctrl, board: board, cfg: cfg}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			o := r.Header.Get("Origin")
			return o == "" || o == s.cfg.ClientOrigin
		},
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(s.cors)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Use(jsonContentType)

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"service":"guess-letter","endpoints":["/health","/leaderboard","POST /game/new","/game/*","POST /daily/new"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"pools": words.Stats(), "sessions": s.store.Len()})
		})

		r.Get("/leaderboard", s.handleLeaderboard)

		r.Post("/game/new", s.handleNewGame)
		s.mountDaily(r)

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession())
			r.Get("/game/state", s.handleState)
			r.Post("/game/guess", s.handleGuess)
			r.Post("/game/hint", s.handleHint)
			r.Post("/game/skip", s.handleSkip)
			r.Post("/game/quit", s.handleQuit)
			r.Get("/game/image", s.handleImage)
		})
	})

	s.r.With(s.requireSession()).Get("/game/ws", s.handleWS)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.ClientOrigin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request through zerolog.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("http")
	})
}

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// writeErr maps domain errors onto HTTP status codes and error codes.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrInvalidNickname):
		writeError(w, http.StatusBadRequest, "invalid_nickname")
	case errors.Is(err, game.ErrUnknownMode), errors.Is(err, leaderboard.ErrUnknownMode):
		writeError(w, http.StatusBadRequest, "unknown_mode")
	case errors.Is(err, game.ErrInvalidGuess):
		writeError(w, http.StatusBadRequest, "invalid_guess")
	case errors.Is(err, game.ErrInsufficientWords):
		writeError(w, http.StatusServiceUnavailable, "insufficient_words")
	case errors.Is(err, game.ErrSessionEnded):
		writeError(w, http.StatusConflict, "session_ended")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "timeout")
	default:
		log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

// ---------------------------- leaderboard ----------------------------------

// handleLeaderboard serves GET /leaderboard?mode=Easy&limit=5.
// Without mode, every mode's top entries are returned keyed by mode.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := leaderboard.DefaultTop
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_limit")
			return
		}
		limit = n
	}
	if mode := r.URL.Query().Get("mode"); mode != "" {
		m, ok := words.Level(mode)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown_mode")
			return
		}
		top, err := s.board.Top(r.Context(), m, limit)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"mode": m, "entries": nonNil(top)})
		return
	}
	b, err := s.board.Load(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make(map[string][]leaderboard.Entry, len(words.Levels))
	for _, m := range words.Levels {
		out[m] = nonNil(b.Top(m, limit))
	}
	writeJSON(w, http.StatusOK, out)
}

func nonNil(e []leaderboard.Entry) []leaderboard.Entry {
	if e == nil {
		return []leaderboard.Entry{}
	}
	return e
}
