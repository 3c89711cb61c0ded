package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Entry is one player's persisted best result.
type Entry struct {
	Label     string `json:"label"`
	BestScore int    `json:"bestScore"`
}

// RankedEntry is an Entry joined with its player id and standing.
type RankedEntry struct {
	Rank      int    `json:"rank"`
	PlayerID  string `json:"playerId"`
	Label     string `json:"label"`
	BestScore int    `json:"bestScore"`
}

// Ledger keeps each player's best score across rounds. Record is
// monotone: a result below the stored best changes nothing, a better
// one replaces both score and label.
type Ledger interface {
	Record(ctx context.Context, playerID, label string, score int) error
	Top(ctx context.Context) ([]RankedEntry, error)
}

// rank orders entries best first and assigns standings. Ties break on
// label, then player id, so equal scores list in a stable order.
func rank(entries map[string]Entry) []RankedEntry {
	out := make([]RankedEntry, 0, len(entries))
	for id, e := range entries {
		out = append(out, RankedEntry{PlayerID: id, Label: e.Label, BestScore: e.BestScore})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BestScore != out[j].BestScore {
			return out[i].BestScore > out[j].BestScore
		}
		if out[i].Label != out[j].Label {
			return out[i].Label < out[j].Label
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// FormatText renders standings as chat-ready text.
func FormatText(entries []RankedEntry) string {
	if len(entries) == 0 {
		return "No scores yet. Finish a round to get on the board!"
	}
	var b strings.Builder
	b.WriteString("🏆 Leaderboard\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "%d. %s: %d\n", e.Rank, e.Label, e.BestScore)
	}
	return strings.TrimRight(b.String(), "\n")
}
