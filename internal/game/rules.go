package game

import (
	"fmt"

	"github.com/lox/blackjack-cli/internal/deck"
)

// Rules carries the table configuration for a session. Zero values are not
// meaningful; construct with NewRules.
type Rules struct {
	NumDecks         int  // decks in the shoe
	ReshufflePercent int  // reshuffle when remaining cards fall below this percent of the shoe
	MinBet           int  // minimum opening bet
	BetMultiple      int  // bets must be a multiple of this
	StartingChips    int  // default chip balance for new players
	DoubleAfterSplit bool // whether split hands may double down
	DealerStandsAt   int  // dealer hits while below this value
}

// RuleOption configures Rules during creation
type RuleOption func(*Rules)

// WithDecks sets the number of decks in the shoe
func WithDecks(n int) RuleOption {
	return func(r *Rules) { r.NumDecks = n }
}

// WithMinBet sets the minimum opening bet
func WithMinBet(n int) RuleOption {
	return func(r *Rules) { r.MinBet = n }
}

// WithBetMultiple sets the granularity bets must conform to
func WithBetMultiple(n int) RuleOption {
	return func(r *Rules) { r.BetMultiple = n }
}

// WithStartingChips sets the default chip balance
func WithStartingChips(n int) RuleOption {
	return func(r *Rules) { r.StartingChips = n }
}

// WithReshufflePercent sets the low-shoe reshuffle threshold
func WithReshufflePercent(n int) RuleOption {
	return func(r *Rules) { r.ReshufflePercent = n }
}

// WithDoubleAfterSplit controls whether split hands may double down
func WithDoubleAfterSplit(allowed bool) RuleOption {
	return func(r *Rules) { r.DoubleAfterSplit = allowed }
}

// NewRules returns the default house rules adjusted by the given options.
// Defaults follow a single-deck casual table: one deck, reshuffle below 20%,
// minimum bet 10 in multiples of 2, 100 starting chips, dealer stands at 17,
// doubling after a split allowed.
func NewRules(opts ...RuleOption) Rules {
	r := Rules{
		NumDecks:         1,
		ReshufflePercent: 20,
		MinBet:           10,
		BetMultiple:      2,
		StartingChips:    100,
		DoubleAfterSplit: true,
		DealerStandsAt:   17,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Validate reports configuration errors. Bad configuration is fatal at
// setup, unlike player rule violations which are always recoverable.
func (r Rules) Validate() error {
	if r.NumDecks < 1 {
		return fmt.Errorf("%w: got %d", deck.ErrBadShoeSize, r.NumDecks)
	}
	if r.ReshufflePercent < 0 || r.ReshufflePercent > 100 {
		return fmt.Errorf("reshuffle percent must be 0-100, got %d", r.ReshufflePercent)
	}
	if r.MinBet < 1 {
		return fmt.Errorf("minimum bet must be positive, got %d", r.MinBet)
	}
	if r.BetMultiple < 1 {
		return fmt.Errorf("bet multiple must be positive, got %d", r.BetMultiple)
	}
	if r.MinBet%r.BetMultiple != 0 {
		return fmt.Errorf("minimum bet %d is not a multiple of %d", r.MinBet, r.BetMultiple)
	}
	if r.StartingChips < r.MinBet {
		return fmt.Errorf("starting chips %d cannot cover the minimum bet %d", r.StartingChips, r.MinBet)
	}
	if r.DealerStandsAt < 2 || r.DealerStandsAt > 21 {
		return fmt.Errorf("dealer stand value must be 2-21, got %d", r.DealerStandsAt)
	}
	return nil
}
