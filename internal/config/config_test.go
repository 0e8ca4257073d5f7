package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
game {
  decks             = 4
  min_bet           = 20
  bet_multiple      = 5
  starting_chips    = 500
  reshuffle_percent = 25
  double_after_split = false
  log_level         = "debug"
}

player "alice" {
  strategy = "human"
}

player "bob" {
  strategy = "basic"
  chips    = 250
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 4, cfg.Game.Decks)
	assert.Equal(t, 20, cfg.Game.MinBet)
	assert.Equal(t, "debug", cfg.Game.LogLevel)
	require.NotNil(t, cfg.Game.DoubleAfterSplit)
	assert.False(t, *cfg.Game.DoubleAfterSplit)

	require.Len(t, cfg.Players, 2)
	assert.Equal(t, "alice", cfg.Players[0].Name)
	// Missing chips fall back to the table's starting stack.
	assert.Equal(t, 500, cfg.Players[0].Chips)
	assert.Equal(t, 250, cfg.Players[1].Chips)

	rules, err := cfg.Rules()
	require.NoError(t, err)
	assert.Equal(t, 4, rules.NumDecks)
	assert.Equal(t, 5, rules.BetMultiple)
	assert.False(t, rules.DoubleAfterSplit)
}

func TestLoadAppliesDefaultsForMissingValues(t *testing.T) {
	path := writeConfig(t, `
game {
  decks = 2
}

player "carol" {}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Game.Decks)
	assert.Equal(t, 10, cfg.Game.MinBet)
	assert.Equal(t, 2, cfg.Game.BetMultiple)
	assert.Equal(t, 100, cfg.Game.StartingChips)
	require.NotNil(t, cfg.Game.DoubleAfterSplit)
	assert.True(t, *cfg.Game.DoubleAfterSplit)
	assert.Equal(t, "human", cfg.Players[0].Strategy)
	assert.Equal(t, 100, cfg.Players[0].Chips)
}

func TestLoadRejectsBadHCL(t *testing.T) {
	path := writeConfig(t, `game { decks = `)

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse HCL file")
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "no players",
			mutate:  func(c *Config) { c.Players = nil },
			wantErr: "at least one player",
		},
		{
			name: "duplicate names",
			mutate: func(c *Config) {
				c.Players = append(c.Players, c.Players[0])
			},
			wantErr: "duplicate player name",
		},
		{
			name: "reserved name",
			mutate: func(c *Config) {
				c.Players[0].Name = "Dealer"
			},
			wantErr: "reserved",
		},
		{
			name: "unknown strategy",
			mutate: func(c *Config) {
				c.Players[0].Strategy = "martingale"
			},
			wantErr: "invalid strategy",
		},
		{
			name: "short stack",
			mutate: func(c *Config) {
				c.Players[0].Chips = 5
			},
			wantErr: "cannot cover",
		},
		{
			name: "bad rules",
			mutate: func(c *Config) {
				c.Game.MinBet = 15 // not a multiple of 2
			},
			wantErr: "not a multiple",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tc.wantErr)
		})
	}
}
