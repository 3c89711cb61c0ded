package session

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Ana-sthesia/shroom-game/internal/game"
	"github.com/Ana-sthesia/shroom-game/internal/ledger"
)

// Registry owns every live round, keyed by an external session key such
// as a chat id. A single lock serializes all access, so moves on the
// same key are strictly ordered and cross-key races cannot corrupt a
// round.
type Registry struct {
	mu       sync.Mutex
	rounds   map[string]*game.Round
	ledger   ledger.Ledger
	settings game.Settings

	// swapped out by tests for deterministic rounds
	now    func() time.Time
	newRNG func() *rand.Rand
}

// NewRegistry returns an empty registry writing final scores to led.
func NewRegistry(led ledger.Ledger, settings game.Settings) *Registry {
	return &Registry{
		rounds:   make(map[string]*game.Round),
		ledger:   led,
		settings: settings,
		now:      time.Now,
		newRNG: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// StartRound replaces whatever round key held with a fresh level-1
// round and returns the rendered board. A replaced round is dropped
// without touching the ledger.
func (r *Registry) StartRound(key, ownerID, ownerLabel string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	rnd := game.NewRound(ownerID, ownerLabel, r.settings, r.newRNG(), now)
	r.rounds[key] = rnd
	log.Debug().Str("key", key).Str("player", ownerLabel).Msg("round started")
	return rnd.Render(now)
}

// ProcessMove advances the round under key by one command. Terminal
// outcomes record the final score and drop the round; a missing round
// yields OutcomeNotStarted. A ledger failure is logged and swallowed,
// the round still ends.
func (r *Registry) ProcessMove(ctx context.Context, key string, dir game.Direction) game.Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	rnd, ok := r.rounds[key]
	if !ok {
		return game.Result{Outcome: game.OutcomeNotStarted, Text: game.NotStartedText}
	}
	res := rnd.Advance(dir, r.now())
	if res.Terminal() {
		delete(r.rounds, key)
		if err := r.ledger.Record(ctx, rnd.OwnerID, rnd.OwnerLabel, res.Score); err != nil {
			log.Warn().Err(err).Str("player", rnd.OwnerLabel).Msg("failed to record final score")
		} else {
			log.Info().Str("player", rnd.OwnerLabel).Int("score", res.Score).Msg("round ended")
		}
	}
	return res
}

// Remove drops the round under key, if any. Nothing is recorded; this
// is an abandon, not a finish.
func (r *Registry) Remove(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rounds, key)
}

// Active returns the number of live rounds.
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rounds)
}
