// internal/httpserver/sweeper.go
//
// Background maintenance of the live store.
// Each sweep, for every session:
//   - an elapsed letter deadline is applied (so idle timed games still lose lives),
//   - a session that ended without being recorded is recorded,
//   - a session idle for longer than SessionTTL is abandoned,
//   - ended sessions are evicted SessionTTL after ending (abandoned ones at once).

package httpserver

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guess-letter/internal/game"
)

// Sweep runs one maintenance pass and returns the number of evicted sessions.
func (s *Server) Sweep(ctx context.Context) int {
	now := s.ctrl.Now()
	evicted := 0
	for _, id := range s.store.IDs() {
		evict := false
		err := s.store.Do(ctx, id, func(sess *game.Session) error {
			if sess.State() == game.StateInProgress {
				sess.Tick(now)
			}
			if sess.State() == game.StateInProgress && now.Sub(sess.LastInput()) >= s.cfg.SessionTTL {
				sess.Abandon(now)
				log.Info().Str("session", sess.ID).Msg("idle session abandoned")
			}
			if sess.State() != game.StateEnded {
				return nil
			}
			if !sess.Recorded() && !sess.Abandoned() {
				if _, err := s.ctrl.End(ctx, sess); err != nil {
					return err
				}
			}
			evict = sess.Abandoned() || now.Sub(sess.EndedAt) >= s.cfg.SessionTTL
			return nil
		})
		if err != nil {
			log.Warn().Err(err).Str("session", id).Msg("sweep")
			continue
		}
		if evict {
			_ = s.store.Delete(ctx, id)
			evicted++
		}
	}
	if evicted > 0 {
		log.Debug().Int("evicted", evicted).Int("live", s.store.Len()).Msg("sweep")
	}
	return evicted
}

// RunSweeper sweeps every interval until ctx is done.
func (s *Server) RunSweeper(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep(ctx)
		}
	}
}
