package game

import "github.com/lox/blackjack-cli/internal/deck"

// Action represents a player action on a hand
type Action int

const (
	Hit Action = iota
	Stand
	Double
	Split
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

// Decision is an agent's chosen action with optional reasoning
type Decision struct {
	Action    Action
	Reasoning string
}

// HandView is the read-only state of a hand for decision making
type HandView struct {
	Cards []deck.Card
	Value int
	Soft  bool
	Stake int
}

// TableView is the read-only state an agent sees when acting. Only the
// dealer's up-card is visible; the hole card stays hidden until the dealer
// plays.
type TableView struct {
	Player       string
	Chips        int
	Hand         HandView
	DealerUpCard deck.Card
}

// BetView is the read-only state an agent sees when placing an opening bet
type BetView struct {
	Player   string
	Chips    int
	Min      int
	Multiple int
}

// Agent is any entity (human or bot) that makes decisions for a player.
// Agents receive immutable state and return choices; the round engine
// validates every choice and re-solicits anything illegal, so a misbehaving
// agent can never corrupt the round.
type Agent interface {
	// PlaceBet returns the opening bet for a round. The engine rejects
	// amounts below the minimum, above the player's chips, or off the
	// bet multiple.
	PlaceBet(view BetView) int

	// TakeInsurance returns the insurance side bet, up to max. Returning
	// 0 declines. Only called when the dealer's up-card is an ace.
	TakeInsurance(view TableView, max int) int

	// Act chooses one of the valid actions for the current hand.
	Act(view TableView, valid []Action) Decision
}

func (r *Round) handView(h *Hand) HandView {
	cards := make([]deck.Card, len(h.Cards))
	copy(cards, h.Cards)
	return HandView{
		Cards: cards,
		Value: h.Value(),
		Soft:  h.Soft(),
		Stake: h.Stake,
	}
}

func (r *Round) tableView(p *Player, h *Hand) TableView {
	return TableView{
		Player:       p.Name,
		Chips:        p.Chips,
		Hand:         r.handView(h),
		DealerUpCard: r.dealer.Cards[0],
	}
}
