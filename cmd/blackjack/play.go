package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjack-cli/internal/bot"
	"github.com/lox/blackjack-cli/internal/config"
	"github.com/lox/blackjack-cli/internal/console"
	"github.com/lox/blackjack-cli/internal/display"
	"github.com/lox/blackjack-cli/internal/game"
	"github.com/lox/blackjack-cli/internal/profile"
	"github.com/lox/blackjack-cli/internal/randutil"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

// PlayCmd runs an interactive session
type PlayCmd struct {
	Config      string `short:"c" default:"blackjack.hcl" help:"Path to the HCL config file"`
	Seed        *int64 `help:"Deterministic RNG seed (optional)"`
	Profiles    bool   `help:"Load and save chips between sessions"`
	ProfileFile string `help:"Path to the profiles file (defaults to the user config dir)"`
	Debug       bool   `help:"Enable debug logging"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", c.Config, err)
	}
	rules, err := cfg.Rules()
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Game.LogLevel, c.Debug)

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	rng := randutil.New(seed)
	logger.Debug("seeded rng", "seed", seed)

	var profiles profile.Profiles
	var store *profile.Store
	if c.Profiles {
		path := c.ProfileFile
		if path == "" {
			if path, err = profile.DefaultPath(); err != nil {
				return err
			}
		}
		store = profile.NewStore(path)
		if profiles, err = store.Load(); err != nil {
			return err
		}
		logger.Debug("loaded profiles", "path", path, "count", len(profiles))
	}

	prompter := console.NewAgent(os.Stdin, os.Stdout)
	seats := make([]game.Seat, 0, len(cfg.Players))
	for _, pc := range cfg.Players {
		chips := pc.Chips
		if profiles != nil {
			chips = profiles.Chips(pc.Name, pc.Chips)
		}

		var agent game.Agent
		if pc.Strategy == "human" {
			agent = prompter
		} else {
			if agent, err = bot.ForStrategy(pc.Strategy, rng); err != nil {
				return err
			}
		}
		seats = append(seats, game.Seat{
			Player: game.NewPlayer(pc.Name, chips),
			Agent:  agent,
		})
	}

	renderer := display.NewRenderer(os.Stdout,
		display.WithDelay(time.Duration(cfg.Game.DealDelayMs)*time.Millisecond))

	session, err := game.NewSession(rng, rules, seats,
		game.WithSessionEventSink(renderer.Sink()),
		game.WithSessionLogger(logger),
	)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(" ♠ ♥ Blackjack ♦ ♣ "))
	fmt.Printf("Minimum bet %d, multiples of %d. Blackjack pays 3:2.\n",
		rules.MinBet, rules.BetMultiple)

	for !session.Done() {
		if err := session.PlayRound(); err != nil {
			return err
		}
		if session.Done() {
			fmt.Println("\nNobody can cover the minimum bet. Game over.")
			break
		}
		if !prompter.Confirm("Deal another round?") {
			session.Stop()
		}
	}

	renderer.Standings(session.Standings())

	if store != nil {
		for _, player := range session.Players() {
			profiles.Record(player)
		}
		if err := store.Save(profiles); err != nil {
			return err
		}
		logger.Debug("saved profiles", "count", len(profiles))
	}

	results := session.Results()
	logger.Info("session complete",
		"rounds", session.Rounds(),
		"hands", results.Hands(),
		"wins", results.Wins,
		"losses", results.Losses,
		"pushes", results.Pushes,
	)
	return nil
}
