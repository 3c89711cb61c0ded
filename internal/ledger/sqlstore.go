package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const scoresSchema = `
CREATE TABLE IF NOT EXISTS scores (
    player_id  TEXT PRIMARY KEY,
    label      TEXT NOT NULL,
    best_score INTEGER NOT NULL
);`

// SQLLedger keeps best scores in a SQLite table, letting the database
// enforce the best-only update.
type SQLLedger struct {
	db *sql.DB
}

// OpenSQLLedger opens (creating if missing) the SQLite database at path
// with WAL journaling and a busy timeout, and ensures the scores table
// exists.
func OpenSQLLedger(path string) (*SQLLedger, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(scoresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create scores table: %w", err)
	}
	return &SQLLedger{db: db}, nil
}

// Record upserts the player's best. The conditional update leaves the
// row alone when the stored score is already higher.
func (l *SQLLedger) Record(ctx context.Context, playerID, label string, score int) error {
	_, err := l.db.ExecContext(ctx, `
        INSERT INTO scores (player_id, label, best_score)
        VALUES (?, ?, ?)
        ON CONFLICT(player_id) DO UPDATE SET
            label      = excluded.label,
            best_score = excluded.best_score
        WHERE excluded.best_score > scores.best_score`,
		playerID, label, score)
	return err
}

// Top returns all saved entries, best first.
func (l *SQLLedger) Top(ctx context.Context) ([]RankedEntry, error) {
	rows, err := l.db.QueryContext(ctx, `
        SELECT player_id, label, best_score
        FROM scores
        ORDER BY best_score DESC, label ASC, player_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RankedEntry
	for rows.Next() {
		e := RankedEntry{Rank: len(out) + 1}
		if err := rows.Scan(&e.PlayerID, &e.Label, &e.BestScore); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (l *SQLLedger) Close() error {
	return l.db.Close()
}
