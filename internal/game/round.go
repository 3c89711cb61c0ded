package game

import (
	"fmt"
	"math/rand"
	"time"
)

// NotStartedText is the reply for a move with no round in progress.
const NotStartedText = "Game not started. Use /start to begin."

// Outcome classifies what a single move produced.
type Outcome int

const (
	// OutcomeNotStarted means no round exists for the player.
	OutcomeNotStarted Outcome = iota
	// OutcomeBoard means the round continues and Text carries the board.
	OutcomeBoard
	// OutcomeLevelUp means the timer expired with the quota met.
	OutcomeLevelUp
	// OutcomeGameOver means the timer expired with the quota missed.
	OutcomeGameOver
	// OutcomeCaught means the raven landed on the player.
	OutcomeCaught
)

// Result is what a move hands back to the delivery layer.
type Result struct {
	Outcome Outcome
	Text    string
	Score   int
}

// Terminal reports whether the round ended with this result.
func (r Result) Terminal() bool {
	return r.Outcome == OutcomeGameOver || r.Outcome == OutcomeCaught
}

// Round is the live state of one player's game. It is not safe for
// concurrent use; callers serialize access.
type Round struct {
	Level      int
	Score      int
	Collected  int
	Required   int
	Player     Position
	Raven      Position
	Mushrooms  []Position
	StartedAt  time.Time
	OwnerID    string
	OwnerLabel string

	settings Settings
	rng      *rand.Rand
}

// NewRound starts a fresh round at level 1. The rng drives mushroom
// placement and the raven's idle walk; pass a seeded source for
// reproducible rounds.
func NewRound(ownerID, ownerLabel string, settings Settings, rng *rand.Rand, now time.Time) *Round {
	r := &Round{
		Level:      1,
		Required:   settings.StartRequired,
		Player:     Position{0, 0},
		Raven:      Position{settings.BoardSize - 1, settings.BoardSize - 1},
		StartedAt:  now,
		OwnerID:    ownerID,
		OwnerLabel: ownerLabel,
		settings:   settings,
		rng:        rng,
	}
	for i := 0; i < settings.InitialMushrooms; i++ {
		r.spawnMushroom()
	}
	return r
}

// Deadline returns the instant the current timer runs out.
func (r *Round) Deadline() time.Time {
	return r.StartedAt.Add(r.settings.RoundDuration())
}

// Advance applies one move command at the given instant and returns the
// outcome. The timer is checked first: an expired round either levels up
// or ends before the move itself is considered, so the direction may be
// anything, including empty.
func (r *Round) Advance(dir Direction, now time.Time) Result {
	if !now.Before(r.Deadline()) {
		if r.Collected >= r.Required {
			r.levelUp(now)
			return Result{
				Outcome: OutcomeLevelUp,
				Text:    fmt.Sprintf("Time's up! You progressed to level %d!", r.Level),
				Score:   r.Score,
			}
		}
		return Result{
			Outcome: OutcomeGameOver,
			Text:    fmt.Sprintf("Time's up! Game over! You didn't collect enough mushrooms.\nFinal score: %d.", r.Score),
			Score:   r.Score,
		}
	}

	r.Player = Move(r.Player, dir, r.settings.BoardSize)

	if i := r.mushroomAt(r.Player); i >= 0 {
		r.Mushrooms = append(r.Mushrooms[:i], r.Mushrooms[i+1:]...)
		r.Score += r.settings.MushroomScore
		r.Collected++
	}

	r.stepRaven()

	if r.Raven == r.Player {
		return Result{
			Outcome: OutcomeCaught,
			Text:    fmt.Sprintf("Oh no! The raven caught you. Game over!\nFinal score: %d.", r.Score),
			Score:   r.Score,
		}
	}

	if r.rng.Float64() < r.settings.RespawnChance {
		r.spawnMushroom()
	}

	return Result{Outcome: OutcomeBoard, Text: r.Render(now), Score: r.Score}
}

// levelUp resets the field for the next level. Score survives, the
// quota grows, and the timer restarts.
func (r *Round) levelUp(now time.Time) {
	r.Level++
	r.Required += r.settings.RequiredStep
	r.Collected = 0
	r.Player = Position{0, 0}
	r.Raven = Position{r.settings.BoardSize - 1, r.settings.BoardSize - 1}
	r.Mushrooms = nil
	for i := 0; i < r.settings.InitialMushrooms; i++ {
		r.spawnMushroom()
	}
	r.StartedAt = now
}

// spawnMushroom places one mushroom on a free cell, respecting the cap.
// It samples randomly and falls back to a scan when sampling keeps
// hitting occupied cells.
func (r *Round) spawnMushroom() {
	if len(r.Mushrooms) >= r.settings.MaxMushrooms {
		return
	}
	size := r.settings.BoardSize
	for i := 0; i < 64; i++ {
		p := Position{r.rng.Intn(size), r.rng.Intn(size)}
		if !r.occupied(p) {
			r.Mushrooms = append(r.Mushrooms, p)
			return
		}
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			p := Position{x, y}
			if !r.occupied(p) {
				r.Mushrooms = append(r.Mushrooms, p)
				return
			}
		}
	}
}

func (r *Round) occupied(p Position) bool {
	return p == r.Player || p == r.Raven || r.mushroomAt(p) >= 0
}

func (r *Round) mushroomAt(p Position) int {
	for i, m := range r.Mushrooms {
		if m == p {
			return i
		}
	}
	return -1
}
