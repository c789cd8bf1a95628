// internal/words/words.go
//
// Word pool management for the game engine.
//
// Responsibilities:
//   - Load the Easy/Medium/Hard pools from configured files or fall back to the embedded defaults.
//   - Normalise (lowercase, a–z only) and de-duplicate every pool, keeping first-seen order.
//   - Serve copies of a pool to the session controller, plus counts for diagnostics.
//
// Initialization behavior (Init):
//   - For each level, a non-empty path in Files replaces the embedded list for that level.
//   - Lines that are blank, start with '#', or contain non-letters are dropped.
//   - Init runs once (sync.Once); the first call's Files win.

package words

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guess-letter/assets"
)

// Difficulty levels. The values double as the leaderboard mode names.
const (
	Easy   = "Easy"
	Medium = "Medium"
	Hard   = "Hard"
)

// Levels lists the difficulty levels in display order.
var Levels = []string{Easy, Medium, Hard}

// Files holds optional per-level word list paths.
type Files struct {
	Easy   string
	Medium string
	Hard   string
}

var (
	initOnce   sync.Once
	pools      map[string][]string
	initialErr error
)

// Init loads the word pools exactly once.
// Returns an error if any level ends up empty.
func Init(files Files) error {
	initOnce.Do(func() {
		loaded, err := load(files)
		if err != nil {
			initialErr = err
			return
		}
		pools = loaded
	})
	return initialErr
}

func load(files Files) (map[string][]string, error) {
	sources := []struct {
		level    string
		path     string
		embedded func() ([]string, error)
	}{
		{Easy, files.Easy, assets.EasyList},
		{Medium, files.Medium, assets.MediumList},
		{Hard, files.Hard, assets.HardList},
	}

	out := make(map[string][]string, len(sources))
	for _, src := range sources {
		var (
			list []string
			err  error
		)
		if src.path != "" {
			list, err = readWordFile(src.path)
		} else {
			list, err = src.embedded()
		}
		if err != nil {
			return nil, fmt.Errorf("words: load %s pool: %w", src.level, err)
		}
		list = normalize(list)
		if len(list) == 0 {
			return nil, fmt.Errorf("words: %s pool is empty", src.level)
		}
		log.Debug().Str("level", src.level).Int("words", len(list)).Msg("word pool loaded")
		out[src.level] = list
	}
	return out, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// normalize lowercases, drops non-alphabetic entries and removes duplicates.
func normalize(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Level returns the canonical level name for s (case-insensitive).
func Level(s string) (string, bool) {
	for _, l := range Levels {
		if strings.EqualFold(l, strings.TrimSpace(s)) {
			return l, true
		}
	}
	return "", false
}

// Pool returns a copy of the pool for level, or nil if unknown or not loaded.
func Pool(level string) []string {
	l, ok := Level(level)
	if !ok {
		return nil
	}
	p := pools[l]
	if p == nil {
		return nil
	}
	return append([]string(nil), p...)
}

// Stats returns the number of loaded words per level.
func Stats() map[string]int {
	out := make(map[string]int, len(Levels))
	for _, l := range Levels {
		out[l] = len(pools[l])
	}
	return out
}
