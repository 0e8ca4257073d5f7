package main

import (
	"fmt"
	rand "math/rand/v2"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack-cli/internal/bot"
	"github.com/lox/blackjack-cli/internal/game"
	"github.com/lox/blackjack-cli/internal/randutil"
	"github.com/lox/blackjack-cli/internal/statistics"
)

// SimulateCmd runs headless rounds in parallel and reports how a strategy
// performs against the house.
type SimulateCmd struct {
	Rounds   int    `default:"100000" help:"Number of rounds to simulate"`
	Strategy string `default:"basic" help:"Player strategy: basic, dealer or random"`
	Players  int    `default:"1" help:"Seats at the table"`
	Decks    int    `default:"1" help:"Decks in the shoe"`
	Workers  int    `default:"0" help:"Parallel workers (0 for GOMAXPROCS)"`
	Seed     int64  `default:"0" help:"RNG seed (0 for random)"`
	Debug    bool   `help:"Enable debug logging"`
}

func (c *SimulateCmd) Run() error {
	if c.Players < 1 {
		return fmt.Errorf("at least one player required")
	}
	if _, err := bot.ForStrategy(c.Strategy, randutil.New(0)); err != nil {
		return err
	}

	logger := setupLogger("warn", c.Debug)

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	workers := c.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > c.Rounds {
		workers = c.Rounds
	}

	fmt.Printf("Simulating %d rounds of %s strategy (%d players, %d decks, seed %d, %d workers)\n\n",
		c.Rounds, c.Strategy, c.Players, c.Decks, seed, workers)

	// Independent seed per worker so results do not depend on worker count
	// interleaving.
	masterRng := randutil.New(seed)
	workerStats := make([]*statistics.Statistics, workers)
	workerSeeds := make([]int64, workers)
	for i := range workers {
		workerSeeds[i] = masterRng.Int64()
	}

	start := time.Now()
	var group errgroup.Group
	for i := range workers {
		rounds := c.Rounds / workers
		if i < c.Rounds%workers {
			rounds++
		}
		group.Go(func() error {
			stats, err := c.simulate(rounds, workerSeeds[i])
			if err != nil {
				return fmt.Errorf("worker %d: %w", i, err)
			}
			workerStats[i] = stats
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	duration := time.Since(start)

	total := &statistics.Statistics{}
	for _, stats := range workerStats {
		total.Merge(stats)
	}

	fmt.Print(total.Summary())
	fmt.Printf("Duration:      %s (%.0f rounds/sec)\n",
		duration.Round(time.Millisecond), float64(total.Rounds)/duration.Seconds())

	logger.Debug("simulation complete", "rounds", total.Rounds, "net", total.NetChips)
	return nil
}

// simulate plays the requested number of rounds on one worker, restarting
// the session with fresh stacks whenever the table goes broke.
func (c *SimulateCmd) simulate(rounds int, seed int64) (*statistics.Statistics, error) {
	stats := &statistics.Statistics{}
	sink := func(ev game.Event) {
		switch e := ev.(type) {
		case game.HandSettledEvent:
			if e.Blackjack {
				stats.Blackjacks++
			}
		case game.InsuranceTakenEvent:
			stats.InsuranceBets++
		case game.InsuranceSettledEvent:
			if e.Won {
				stats.InsuranceWins++
			}
		}
	}

	rng := randutil.New(seed)
	session, err := c.newSession(rng, sink)
	if err != nil {
		return nil, err
	}

	for played := 0; played < rounds; played++ {
		chipsBefore := totalChips(session.Players())
		resultsBefore := session.Results()

		if err := session.PlayRound(); err != nil {
			return nil, err
		}

		results := session.Results()
		stats.RecordRound(statistics.RoundResult{
			NetChips: totalChips(session.Players()) - chipsBefore,
			Seed:     seed,
			Hands:    results.Hands() - resultsBefore.Hands(),
		})
		stats.RecordOutcomes(
			results.Wins-resultsBefore.Wins,
			results.Losses-resultsBefore.Losses,
			results.Pushes-resultsBefore.Pushes,
		)

		if session.Done() {
			if session, err = c.newSession(rng, sink); err != nil {
				return nil, err
			}
		}
	}
	return stats, nil
}

func (c *SimulateCmd) newSession(rng *rand.Rand, sink game.EventSink) (*game.Session, error) {
	rules := game.NewRules(game.WithDecks(c.Decks))
	seats := make([]game.Seat, 0, c.Players)
	for i := range c.Players {
		agent, err := bot.ForStrategy(c.Strategy, rng)
		if err != nil {
			return nil, err
		}
		seats = append(seats, game.Seat{
			Player: game.NewPlayer(fmt.Sprintf("bot-%d", i+1), rules.StartingChips),
			Agent:  agent,
		})
	}
	return game.NewSession(rng, rules, seats, game.WithSessionEventSink(sink))
}

func totalChips(players []*game.Player) int {
	total := 0
	for _, p := range players {
		total += p.Chips
	}
	return total
}
