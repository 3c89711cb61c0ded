package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roundStart = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

// testRound builds a deterministic level-1 round owned by Alice.
func testRound(settings Settings) *Round {
	return NewRound("p1", "Alice", settings, rand.New(rand.NewSource(1)), roundStart)
}

func TestNewRoundInitialState(t *testing.T) {
	s := DefaultSettings()
	r := testRound(s)

	assert.Equal(t, 1, r.Level)
	assert.Equal(t, 0, r.Score)
	assert.Equal(t, 0, r.Collected)
	assert.Equal(t, s.StartRequired, r.Required)
	assert.Equal(t, Position{0, 0}, r.Player)
	assert.Equal(t, Position{9, 9}, r.Raven)
	assert.Equal(t, roundStart, r.StartedAt)
	require.Len(t, r.Mushrooms, s.InitialMushrooms)

	seen := map[Position]bool{}
	for _, m := range r.Mushrooms {
		assert.False(t, seen[m], "duplicate mushroom at %v", m)
		assert.NotEqual(t, r.Player, m, "mushroom spawned under the player")
		assert.NotEqual(t, r.Raven, m, "mushroom spawned under the raven")
		seen[m] = true
	}
}

func TestMoveCollectsMushroom(t *testing.T) {
	s := DefaultSettings()
	s.RespawnChance = 0
	r := testRound(s)
	r.Mushrooms = []Position{{1, 0}}

	res := r.Advance(DirRight, roundStart.Add(time.Second))

	require.Equal(t, OutcomeBoard, res.Outcome)
	assert.Equal(t, Position{1, 0}, r.Player)
	assert.Equal(t, s.MushroomScore, r.Score)
	assert.Equal(t, 1, r.Collected)
	assert.Empty(t, r.Mushrooms)
}

func TestMoveOntoEmptyCellLeavesScore(t *testing.T) {
	s := DefaultSettings()
	s.RespawnChance = 0
	r := testRound(s)
	r.Mushrooms = []Position{{5, 5}}

	res := r.Advance(DirDown, roundStart.Add(time.Second))

	require.Equal(t, OutcomeBoard, res.Outcome)
	assert.Equal(t, 0, r.Score)
	assert.Equal(t, 0, r.Collected)
	assert.Len(t, r.Mushrooms, 1)
}

func TestUnknownDirectionStillTicksWorld(t *testing.T) {
	s := DefaultSettings()
	s.RespawnChance = 0
	r := testRound(s)
	r.Mushrooms = []Position{{5, 5}}

	res := r.Advance("teleport", roundStart.Add(time.Second))

	require.Equal(t, OutcomeBoard, res.Outcome)
	assert.Equal(t, Position{0, 0}, r.Player, "unknown direction must not move the player")
	assert.Equal(t, Position{8, 8}, r.Raven, "raven still takes its turn")
}

func TestMushroomCapHolds(t *testing.T) {
	s := DefaultSettings()
	r := testRound(s)
	for i := 0; i < 50; i++ {
		r.spawnMushroom()
	}
	assert.Len(t, r.Mushrooms, s.MaxMushrooms)
}

func TestSpawnFillsCrowdedBoardWithoutOverlap(t *testing.T) {
	s := DefaultSettings()
	s.BoardSize = 3
	s.MaxMushrooms = 7
	s.InitialMushrooms = 7
	r := testRound(s)

	require.Len(t, r.Mushrooms, 7)
	seen := map[Position]bool{r.Player: true, r.Raven: true}
	for _, m := range r.Mushrooms {
		assert.False(t, seen[m], "cell %v used twice", m)
		seen[m] = true
	}
}

func TestRavenCatchesPlayer(t *testing.T) {
	s := DefaultSettings()
	r := testRound(s)
	r.Player = Position{4, 5}
	r.Raven = Position{5, 5}
	r.Mushrooms = []Position{{3, 3}}
	r.Score = 40

	res := r.Advance(DirUp, roundStart.Add(time.Second))

	assert.Equal(t, OutcomeCaught, res.Outcome)
	assert.True(t, res.Terminal())
	assert.Equal(t, 40, res.Score)
	assert.Contains(t, res.Text, "The raven caught you")
	assert.Contains(t, res.Text, "Final score: 40")
}

func TestExpiryUnderQuotaEndsGame(t *testing.T) {
	s := DefaultSettings()
	r := testRound(s)
	r.Collected = s.StartRequired - 1
	r.Score = 20

	res := r.Advance(DirUp, roundStart.Add(s.RoundDuration()+time.Second))

	assert.Equal(t, OutcomeGameOver, res.Outcome)
	assert.True(t, res.Terminal())
	assert.Equal(t, 20, res.Score)
	assert.Contains(t, res.Text, "Time's up!")
	assert.Contains(t, res.Text, "Final score: 20")
}

func TestExpiryAtExactDeadline(t *testing.T) {
	s := DefaultSettings()
	r := testRound(s)

	res := r.Advance(DirUp, roundStart.Add(s.RoundDuration()))

	assert.Equal(t, OutcomeGameOver, res.Outcome)
}

func TestExpiryWithQuotaLevelsUp(t *testing.T) {
	s := DefaultSettings()
	r := testRound(s)
	r.Collected = s.StartRequired
	r.Score = 30
	r.Player = Position{4, 4}
	r.Raven = Position{2, 2}

	later := roundStart.Add(s.RoundDuration() + 5*time.Second)
	res := r.Advance(DirUp, later)

	require.Equal(t, OutcomeLevelUp, res.Outcome)
	assert.False(t, res.Terminal())
	assert.Contains(t, res.Text, "You progressed to level 2!")

	assert.Equal(t, 2, r.Level)
	assert.Equal(t, s.StartRequired+s.RequiredStep, r.Required)
	assert.Equal(t, 0, r.Collected)
	assert.Equal(t, 30, r.Score, "score carries across levels")
	assert.Equal(t, Position{0, 0}, r.Player)
	assert.Equal(t, Position{9, 9}, r.Raven)
	assert.Len(t, r.Mushrooms, s.InitialMushrooms)
	assert.Equal(t, later, r.StartedAt, "timer restarts on level up")
}

func TestQuotaKeepsGrowingAcrossLevels(t *testing.T) {
	s := DefaultSettings()
	r := testRound(s)

	for level := 2; level <= 4; level++ {
		r.Collected = r.Required
		res := r.Advance(DirUp, r.Deadline())
		require.Equal(t, OutcomeLevelUp, res.Outcome)
		assert.Equal(t, level, r.Level)
	}
	assert.Equal(t, s.StartRequired+3*s.RequiredStep, r.Required)
}

func TestRespawnHonorsChance(t *testing.T) {
	s := DefaultSettings()
	s.RespawnChance = 1
	r := testRound(s)
	r.Mushrooms = []Position{{5, 5}}

	res := r.Advance(DirDown, roundStart.Add(time.Second))

	require.Equal(t, OutcomeBoard, res.Outcome)
	assert.Len(t, r.Mushrooms, 2, "chance of 1 always respawns")

	s.RespawnChance = 0
	r = testRound(s)
	r.Mushrooms = []Position{{5, 5}}
	r.Advance(DirDown, roundStart.Add(time.Second))
	assert.Len(t, r.Mushrooms, 1, "chance of 0 never respawns")
}
