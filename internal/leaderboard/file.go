package leaderboard

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guess-letter/internal/words"
)

// FileStore keeps the leaderboard as a line-oriented log:
//
//	<nickname> | <score> | <mode> | <YYYY-MM-DD HH:MM>
//
// Writes only ever append to the end of the file.
type FileStore struct {
	path string
	mu   sync.Mutex // serialises appends against reads
}

// maxLineLen bounds a single log line; longer lines are treated as malformed.
const maxLineLen = 1024

// NewFileStore returns a store backed by path. The file is created on first append.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path reports the backing file.
func (s *FileStore) Path() string { return s.path }

// Append writes e as a new line at the end of the log.
func (s *FileStore) Append(ctx context.Context, e Entry) error {
	e, err := e.validate()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open leaderboard: %w", err)
	}
	if _, err := f.WriteString(formatLine(e)); err != nil {
		_ = f.Close()
		return fmt.Errorf("append leaderboard: %w", err)
	}
	return f.Close()
}

// Load reads the whole log. A missing file is an empty board.
func (s *FileStore) Load(ctx context.Context) (Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := newBoard()
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return b, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open leaderboard: %w", err)
	}
	defer f.Close()

	rd := bufio.NewReader(f)
	skipped := 0
	for {
		line, err := rd.ReadString('\n')
		if line != "" {
			e, ok := parseLine(line)
			if ok {
				b.add(e)
			} else {
				skipped++
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read leaderboard: %w", err)
		}
	}
	if skipped > 0 {
		log.Debug().Str("path", s.path).Int("skipped", skipped).Msg("ignored malformed leaderboard lines")
	}
	b.sortAll()
	return b, nil
}

// Top loads the log and returns the best limit entries for mode.
func (s *FileStore) Top(ctx context.Context, mode string, limit int) ([]Entry, error) {
	if _, ok := words.Level(mode); !ok {
		return nil, ErrUnknownMode
	}
	b, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return b.Top(mode, limit), nil
}

func (s *FileStore) Close() error { return nil }

func formatLine(e Entry) string {
	return fmt.Sprintf("%s | %d | %s | %s\n", e.Nickname, e.Score, e.Mode, e.Timestamp)
}

// parseLine decodes one log line. Lines with fewer than three fields,
// a non-numeric score or an unknown mode are rejected.
func parseLine(line string) (Entry, bool) {
	if len(line) > maxLineLen {
		return Entry{}, false
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return Entry{}, false
	}
	parts := strings.Split(line, "|")
	if len(parts) < 3 {
		return Entry{}, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	score, err := strconv.Atoi(parts[1])
	if err != nil {
		return Entry{}, false
	}
	mode, ok := words.Level(parts[2])
	if !ok || parts[0] == "" {
		return Entry{}, false
	}
	e := Entry{Nickname: parts[0], Score: score, Mode: mode}
	if len(parts) > 3 {
		e.Timestamp = parts[3]
	}
	return e, true
}
