// internal/httpserver/ws.go
//
// GET /game/ws: websocket countdown feed.
// After the upgrade the server pushes one playRes snapshot per PushInterval.
// Each push goes through the same path as GET /game/state, so an elapsed
// letter deadline is applied (and reported in the outcome) even when the
// player is idle. The feed closes after the snapshot that shows the session
// ended. Client messages are read only to notice disconnects.

package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guess-letter/internal/game"
	"github.com/robalobadob/guess-letter/internal/store"
)

const writeWait = 5 * time.Second

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if err := s.store.Do(r.Context(), id, func(*game.Session) error { return nil }); err != nil {
		writeErr(w, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("session", id).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// read pump: only detects the client going away
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.cfg.PushInterval)
	defer ticker.Stop()

	for {
		res, err := s.apply(r.Context(), id, func(sess *game.Session, now time.Time) (game.Outcome, error) {
			return sess.Tick(now), nil
		})
		if err != nil {
			reason := "error"
			if errors.Is(err, store.ErrNotFound) {
				reason = "not_found"
			}
			closeWS(conn, reason)
			return
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(res); err != nil {
			log.Debug().Err(err).Str("session", id).Msg("websocket write failed")
			return
		}
		if res.View.State == game.StateEnded {
			closeWS(conn, "ended")
			return
		}

		select {
		case <-gone:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

func closeWS(conn *websocket.Conn, reason string) {
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason),
		time.Now().Add(writeWait))
}
