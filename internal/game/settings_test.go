package game

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 10, s.BoardSize)
	assert.Equal(t, 60, s.RoundSeconds)
	assert.Equal(t, time.Minute, s.RoundDuration())
	assert.Equal(t, 5, s.MaxMushrooms)
	assert.Equal(t, 3, s.InitialMushrooms)
	assert.Equal(t, 3, s.StartRequired)
	assert.Equal(t, 2, s.RequiredStep)
	assert.Equal(t, 10, s.MushroomScore)
	assert.InDelta(t, 0.3, s.RespawnChance, 1e-9)
	require.NoError(t, s.Validate())
}

func TestLoadSettingsMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board_size: 6\nround_seconds: 30\n"), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 6, s.BoardSize)
	assert.Equal(t, 30, s.RoundSeconds)
	assert.Equal(t, 5, s.MaxMushrooms, "unset keys keep their defaults")
	assert.Equal(t, 3, s.StartRequired)
}

func TestLoadSettingsMissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadSettingsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board_size: [oops\n"), 0o644))

	_, err := LoadSettings(path)
	assert.Error(t, err)
}

func TestValidateRejectsBrokenRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"tiny board", func(s *Settings) { s.BoardSize = 1 }},
		{"zero timer", func(s *Settings) { s.RoundSeconds = 0 }},
		{"no mushroom room", func(s *Settings) { s.MaxMushrooms = 0 }},
		{"initial above cap", func(s *Settings) { s.InitialMushrooms = 9 }},
		{"zero quota", func(s *Settings) { s.StartRequired = 0 }},
		{"chance above one", func(s *Settings) { s.RespawnChance = 1.5 }},
		{"negative chance", func(s *Settings) { s.RespawnChance = -0.1 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultSettings()
			tc.mutate(&s)
			assert.Error(t, s.Validate())
		})
	}
}
