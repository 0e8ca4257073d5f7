// Package config loads table and player configuration from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack-cli/internal/game"
)

// Config represents the complete blackjack configuration
type Config struct {
	Game    GameSettings   `hcl:"game,block"`
	Players []PlayerConfig `hcl:"player,block"`
}

// GameSettings contains table-level configuration
type GameSettings struct {
	Decks            int    `hcl:"decks,optional"`
	MinBet           int    `hcl:"min_bet,optional"`
	BetMultiple      int    `hcl:"bet_multiple,optional"`
	StartingChips    int    `hcl:"starting_chips,optional"`
	ReshufflePercent int    `hcl:"reshuffle_percent,optional"`
	DoubleAfterSplit *bool  `hcl:"double_after_split,optional"`
	DealDelayMs      int    `hcl:"deal_delay_ms,optional"`
	LogLevel         string `hcl:"log_level,optional"`
}

// PlayerConfig defines a seat at the table
type PlayerConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy,optional"` // human, basic, dealer or random
	Chips    int    `hcl:"chips,optional"`
}

// Default returns the default configuration: one human seat with the
// standard table rules.
func Default() *Config {
	yes := true
	return &Config{
		Game: GameSettings{
			Decks:            1,
			MinBet:           10,
			BetMultiple:      2,
			StartingChips:    100,
			ReshufflePercent: 20,
			DoubleAfterSplit: &yes,
			DealDelayMs:      300,
			LogLevel:         "warn",
		},
		Players: []PlayerConfig{
			{Name: "player", Strategy: "human", Chips: 100},
		},
	}
}

// Load loads configuration from an HCL file, returning defaults when the
// file does not exist.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	defaults := Default()
	if config.Game.Decks == 0 {
		config.Game.Decks = defaults.Game.Decks
	}
	if config.Game.MinBet == 0 {
		config.Game.MinBet = defaults.Game.MinBet
	}
	if config.Game.BetMultiple == 0 {
		config.Game.BetMultiple = defaults.Game.BetMultiple
	}
	if config.Game.StartingChips == 0 {
		config.Game.StartingChips = defaults.Game.StartingChips
	}
	if config.Game.ReshufflePercent == 0 {
		config.Game.ReshufflePercent = defaults.Game.ReshufflePercent
	}
	if config.Game.DoubleAfterSplit == nil {
		config.Game.DoubleAfterSplit = defaults.Game.DoubleAfterSplit
	}
	if config.Game.LogLevel == "" {
		config.Game.LogLevel = defaults.Game.LogLevel
	}

	if len(config.Players) == 0 {
		config.Players = defaults.Players
	}
	for i := range config.Players {
		if config.Players[i].Strategy == "" {
			config.Players[i].Strategy = "human"
		}
		if config.Players[i].Chips == 0 {
			config.Players[i].Chips = config.Game.StartingChips
		}
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Players) == 0 {
		return fmt.Errorf("at least one player must be configured")
	}

	validStrategies := map[string]bool{
		"human":  true,
		"basic":  true,
		"dealer": true,
		"random": true,
	}

	seen := make(map[string]bool)
	for _, player := range c.Players {
		if player.Name == game.DealerName {
			return fmt.Errorf("player name %q is reserved", player.Name)
		}
		if seen[player.Name] {
			return fmt.Errorf("duplicate player name %q", player.Name)
		}
		seen[player.Name] = true

		if !validStrategies[player.Strategy] {
			return fmt.Errorf("player %s: invalid strategy %s", player.Name, player.Strategy)
		}
		if player.Chips < c.Game.MinBet {
			return fmt.Errorf("player %s: %d chips cannot cover the %d minimum bet", player.Name, player.Chips, c.Game.MinBet)
		}
	}

	if _, err := c.Rules(); err != nil {
		return err
	}
	return nil
}

// Rules converts the game settings into validated engine rules
func (c *Config) Rules() (game.Rules, error) {
	opts := []game.RuleOption{
		game.WithDecks(c.Game.Decks),
		game.WithMinBet(c.Game.MinBet),
		game.WithBetMultiple(c.Game.BetMultiple),
		game.WithStartingChips(c.Game.StartingChips),
		game.WithReshufflePercent(c.Game.ReshufflePercent),
	}
	if c.Game.DoubleAfterSplit != nil {
		opts = append(opts, game.WithDoubleAfterSplit(*c.Game.DoubleAfterSplit))
	}

	rules := game.NewRules(opts...)
	if err := rules.Validate(); err != nil {
		return game.Rules{}, fmt.Errorf("invalid game settings: %w", err)
	}
	return rules, nil
}
