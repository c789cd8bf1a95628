// main.go
//
// Entry point: loads configuration, word pools and the leaderboard, then
// serves the game API and runs the session sweeper until interrupted.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guess-letter/internal/game"
	"github.com/robalobadob/guess-letter/internal/httpserver"
	"github.com/robalobadob/guess-letter/internal/leaderboard"
	"github.com/robalobadob/guess-letter/internal/store"
	"github.com/robalobadob/guess-letter/internal/words"
)

// soundLog stands in for audio playback: cues are logged at debug level.
type soundLog struct{}

func (soundLog) PlayCorrect() { log.Debug().Str("cue", "correct").Msg("sound") }
func (soundLog) PlayWrong()   { log.Debug().Str("cue", "wrong").Msg("sound") }

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// run owns every resource it opens, so deferred closes happen before main exits.
func run() error {
	_ = godotenv.Load()
	cfg := loadConfig()

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	if err := words.Init(cfg.Words); err != nil {
		return fmt.Errorf("load word lists: %w", err)
	}

	board, err := leaderboard.Open(cfg.LBDriver, cfg.LBPath)
	if err != nil {
		return fmt.Errorf("open leaderboard (%s): %w", cfg.LBDriver, err)
	}
	defer board.Close()

	ctrl := game.NewController(board,
		game.WithNotifier(soundLog{}),
		game.WithDailySalt(cfg.DailySalt),
	)
	srv := httpserver.New(store.NewMemoryStore(), ctrl, board, httpserver.Config{
		Secret:        []byte(cfg.Secret),
		TokenTTL:      cfg.TokenTTL,
		SessionTTL:    cfg.SessionTTL,
		PushInterval:  cfg.Tick,
		ClientOrigin:  cfg.ClientOrigin,
		SecureCookies: cfg.SecureCookies,
		Images:        words.ImageResolver{Dir: cfg.AssetDir},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go srv.RunSweeper(ctx, cfg.Tick)

	hs := newHTTPServer(":"+cfg.Port, srv.Router())
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(shutdown)
	}()

	log.Info().Str("port", cfg.Port).Str("leaderboard", cfg.LBPath).Msg("starting guess-letter server")
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newHTTPServer bounds header reads like the router bounds handlers.
func newHTTPServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
