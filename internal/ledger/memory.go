package ledger

import (
	"context"
	"sync"
)

// MemoryLedger is a map-backed Ledger for tests and throwaway play.
type MemoryLedger struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryLedger returns an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{entries: make(map[string]Entry)}
}

// Record stores score as the player's best if it beats the saved one.
func (l *MemoryLedger) Record(ctx context.Context, playerID, label string, score int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cur, ok := l.entries[playerID]; ok && score <= cur.BestScore {
		return nil
	}
	l.entries[playerID] = Entry{Label: label, BestScore: score}
	return nil
}

// Top returns all saved entries, best first.
func (l *MemoryLedger) Top(ctx context.Context) ([]RankedEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return rank(l.entries), nil
}
