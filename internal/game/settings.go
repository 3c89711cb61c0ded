package game

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings are the tunable rules of a round. All fields have working
// defaults, so a settings file only needs to name what it changes.
type Settings struct {
	BoardSize        int     `yaml:"board_size"`
	RoundSeconds     int     `yaml:"round_seconds"`
	MaxMushrooms     int     `yaml:"max_mushrooms"`
	InitialMushrooms int     `yaml:"initial_mushrooms"`
	StartRequired    int     `yaml:"start_required"`
	RequiredStep     int     `yaml:"required_step"`
	MushroomScore    int     `yaml:"mushroom_score"`
	RespawnChance    float64 `yaml:"respawn_chance"`
}

// DefaultSettings returns the standard ruleset.
func DefaultSettings() Settings {
	return Settings{
		BoardSize:        10,
		RoundSeconds:     60,
		MaxMushrooms:     5,
		InitialMushrooms: 3,
		StartRequired:    3,
		RequiredStep:     2,
		MushroomScore:    10,
		RespawnChance:    0.3,
	}
}

// LoadSettings reads a YAML settings file and merges it over the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read settings %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to decode settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("invalid settings %s: %w", path, err)
	}
	return s, nil
}

// Validate rejects rulesets a round cannot run under.
func (s Settings) Validate() error {
	if s.BoardSize < 2 {
		return fmt.Errorf("board_size must be at least 2, got %d", s.BoardSize)
	}
	if s.RoundSeconds < 1 {
		return fmt.Errorf("round_seconds must be positive, got %d", s.RoundSeconds)
	}
	if s.MaxMushrooms < 1 {
		return fmt.Errorf("max_mushrooms must be positive, got %d", s.MaxMushrooms)
	}
	if s.InitialMushrooms > s.MaxMushrooms {
		return fmt.Errorf("initial_mushrooms %d exceeds max_mushrooms %d", s.InitialMushrooms, s.MaxMushrooms)
	}
	if s.StartRequired < 1 {
		return fmt.Errorf("start_required must be positive, got %d", s.StartRequired)
	}
	if s.RespawnChance < 0 || s.RespawnChance > 1 {
		return fmt.Errorf("respawn_chance must be within [0,1], got %v", s.RespawnChance)
	}
	return nil
}

// RoundDuration returns the round timer as a duration.
func (s Settings) RoundDuration() time.Duration {
	return time.Duration(s.RoundSeconds) * time.Second
}
