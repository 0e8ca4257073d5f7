// Package bot provides rule-based agents for filling seats and running
// headless simulations.
package bot

import (
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
)

// ForStrategy returns the agent registered under the given strategy name.
// Known strategies: basic, dealer, random.
func ForStrategy(name string, rng *rand.Rand) (game.Agent, error) {
	switch name {
	case "basic":
		return NewBasic(), nil
	case "dealer":
		return NewDealer(), nil
	case "random":
		return NewRandom(rng), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

// Dealer mimics the house: hit below 17, otherwise stand. Never doubles,
// splits or insures.
type Dealer struct{}

// NewDealer creates a dealer-mimic agent
func NewDealer() *Dealer {
	return &Dealer{}
}

// PlaceBet bets the table minimum
func (b *Dealer) PlaceBet(view game.BetView) int {
	return view.Min
}

// TakeInsurance always declines
func (b *Dealer) TakeInsurance(view game.TableView, max int) int {
	return 0
}

// Act hits below 17 and stands otherwise
func (b *Dealer) Act(view game.TableView, valid []game.Action) game.Decision {
	if view.Hand.Value < 17 {
		return game.Decision{Action: game.Hit, Reasoning: "below 17"}
	}
	return game.Decision{Action: game.Stand, Reasoning: "17 or better"}
}

// Random picks uniformly among the legal actions. Useful for fuzzing the
// engine more than for winning chips.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates an agent choosing random legal actions
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// PlaceBet bets the table minimum
func (b *Random) PlaceBet(view game.BetView) int {
	return view.Min
}

// TakeInsurance declines half the time, otherwise takes the maximum
func (b *Random) TakeInsurance(view game.TableView, max int) int {
	if b.rng.IntN(2) == 0 {
		return 0
	}
	return max
}

// Act returns a uniformly random legal action
func (b *Random) Act(view game.TableView, valid []game.Action) game.Decision {
	return game.Decision{Action: valid[b.rng.IntN(len(valid))], Reasoning: "random"}
}

// Basic plays a simplified basic strategy against the dealer's up-card.
// It is not a full deviation chart, but close enough to exercise every
// action the engine offers.
type Basic struct{}

// NewBasic creates a basic-strategy agent
func NewBasic() *Basic {
	return &Basic{}
}

// PlaceBet bets the table minimum
func (b *Basic) PlaceBet(view game.BetView) int {
	return view.Min
}

// TakeInsurance always declines; insurance is a losing side bet without a
// count.
func (b *Basic) TakeInsurance(view game.TableView, max int) int {
	return 0
}

// Act follows the strategy tables, constrained to the legal actions
func (b *Basic) Act(view game.TableView, valid []game.Action) game.Decision {
	// Ace counts as 11 for chart lookups.
	up := view.DealerUpCard.Value()

	if slices.Contains(valid, game.Split) && b.shouldSplit(view.Hand, up) {
		return game.Decision{Action: game.Split, Reasoning: "splitting the pair"}
	}
	if slices.Contains(valid, game.Double) && b.shouldDouble(view.Hand, up) {
		return game.Decision{Action: game.Double, Reasoning: "favourable double"}
	}
	if b.shouldHit(view.Hand, up) {
		return game.Decision{Action: game.Hit, Reasoning: "chart says hit"}
	}
	return game.Decision{Action: game.Stand, Reasoning: "chart says stand"}
}

func (b *Basic) shouldSplit(hand game.HandView, up int) bool {
	rank := hand.Cards[0].Rank
	switch {
	case rank == deck.Ace || rank == deck.Eight:
		return true
	case rank == deck.Five || hand.Cards[0].Value() == 10:
		return false
	case rank == deck.Nine:
		return up <= 9 && up != 7
	default:
		// Low pairs split only against a weak dealer.
		return up <= 6
	}
}

func (b *Basic) shouldDouble(hand game.HandView, up int) bool {
	if hand.Soft {
		return false
	}
	switch hand.Value {
	case 11:
		return true
	case 10:
		return up <= 9
	case 9:
		return up >= 3 && up <= 6
	default:
		return false
	}
}

func (b *Basic) shouldHit(hand game.HandView, up int) bool {
	if hand.Soft {
		// Hit soft 17 and below; hit soft 18 into strong up-cards.
		if hand.Value <= 17 {
			return true
		}
		return hand.Value == 18 && up >= 9
	}
	switch {
	case hand.Value >= 17:
		return false
	case hand.Value >= 13:
		return up >= 7
	case hand.Value == 12:
		return up <= 3 || up >= 7
	default:
		return true
	}
}
