package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileLedger persists best scores as one JSON document keyed by player
// id. Every write rewrites the file through a temp file and rename, so
// a crash mid-write leaves the previous version intact.
type FileLedger struct {
	mu   sync.Mutex
	path string
}

// NewFileLedger returns a ledger backed by the JSON file at path. The
// file and its directory are created on first write.
func NewFileLedger(path string) *FileLedger {
	return &FileLedger{path: path}
}

// Record stores score as the player's best if it beats the saved one.
func (l *FileLedger) Record(ctx context.Context, playerID, label string, score int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load()
	if err != nil {
		return err
	}
	if cur, ok := entries[playerID]; ok && score <= cur.BestScore {
		return nil
	}
	entries[playerID] = Entry{Label: label, BestScore: score}
	return l.save(entries)
}

// Top returns all saved entries, best first.
func (l *FileLedger) Top(ctx context.Context) ([]RankedEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load()
	if err != nil {
		return nil, err
	}
	return rank(entries), nil
}

func (l *FileLedger) load() (map[string]Entry, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger %s: %w", l.path, err)
	}
	entries := map[string]Entry{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode ledger %s: %w", l.path, err)
	}
	return entries, nil
}

func (l *FileLedger) save(entries map[string]Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(l.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write ledger %s: %w", l.path, err)
	}
	return os.Rename(tmp, l.path)
}
