// config.go
//
// Process configuration, read from the environment after godotenv has loaded
// an optional .env file. Every value has a development default.

package main

import (
	"os"
	"strconv"
	"time"

	"github.com/robalobadob/guess-letter/internal/words"
)

type config struct {
	Port          string
	LogLevel      string
	LogPretty     bool
	LBDriver      string // "file" | "sqlite"
	LBPath        string // leaderboard file, or SQLite database when LBDriver is sqlite
	AssetDir      string
	Secret        string
	SessionTTL    time.Duration
	TokenTTL      time.Duration
	Tick          time.Duration
	DailySalt     string
	ClientOrigin  string
	SecureCookies bool
	Words         words.Files
}

func loadConfig() config {
	c := config{
		Port:          getEnv("PORT", "5175"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogPretty:     getEnv("LOG_PRETTY", "") == "1",
		LBDriver:      getEnv("LEADERBOARD_DRIVER", "file"),
		AssetDir:      getEnv("ASSET_DIR", "assets"),
		Secret:        getEnv("SESSION_SECRET", "dev_secret_change_me"),
		SessionTTL:    time.Duration(getInt("SESSION_TTL_MINUTES", 30)) * time.Minute,
		TokenTTL:      time.Duration(getInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
		Tick:          time.Duration(getInt("TICK_INTERVAL_MS", 1000)) * time.Millisecond,
		DailySalt:     getEnv("DAILY_SALT", "local_dev_salt"),
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		SecureCookies: os.Getenv("APP_ENV") == "production",
		Words: words.Files{
			Easy:   os.Getenv("WORDS_EASY_FILE"),
			Medium: os.Getenv("WORDS_MEDIUM_FILE"),
			Hard:   os.Getenv("WORDS_HARD_FILE"),
		},
	}
	c.LBPath = getEnv("LEADERBOARD_FILE", "leaderboard.txt")
	if c.LBDriver == "sqlite" || c.LBDriver == "sqlite3" {
		c.LBPath = getEnv("LEADERBOARD_DSN", "./data/leaderboard.db")
	}
	return c
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getInt is getEnv for positive integers; anything else yields def.
func getInt(k string, def int) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
