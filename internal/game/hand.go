package game

import (
	"strings"

	"github.com/lox/blackjack-cli/internal/deck"
)

// HandStatus represents where a hand is in its lifecycle within a round
type HandStatus int

const (
	HandActive HandStatus = iota
	HandStood
	HandBusted
	HandSettled
)

// String returns the string representation of a hand status
func (s HandStatus) String() string {
	switch s {
	case HandActive:
		return "active"
	case HandStood:
		return "stood"
	case HandBusted:
		return "busted"
	case HandSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// Outcome represents the settled result of a hand
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLoss
	OutcomePush
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	case OutcomePush:
		return "push"
	default:
		return "none"
	}
}

// Hand is an ordered set of cards with a stake, belonging to one seat.
// Splitting produces additional hands on the same player.
type Hand struct {
	Cards   []deck.Card
	Stake   int
	Status  HandStatus
	Outcome Outcome

	split   bool // created by a split, or has been split
	doubled bool
}

// NewHand creates an empty hand with the given stake
func NewHand(stake int) *Hand {
	return &Hand{Stake: stake}
}

// Add appends a card to the hand
func (h *Hand) Add(card deck.Card) {
	h.Cards = append(h.Cards, card)
}

// Value returns the best blackjack value of the hand: aces count 11, then
// drop to 1 one at a time while the total exceeds 21.
func (h *Hand) Value() int {
	value, _ := h.valueAndSoftness()
	return value
}

// Soft reports whether the hand's value depends on an ace counted as 11.
func (h *Hand) Soft() bool {
	_, soft := h.valueAndSoftness()
	return soft
}

func (h *Hand) valueAndSoftness() (int, bool) {
	value, aces := 0, 0
	for _, c := range h.Cards {
		value += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}
	return value, aces > 0
}

// Blackjack reports an initial two-card 21. Hands produced by a split can
// reach 21 on two cards but never count as blackjack.
func (h *Hand) Blackjack() bool {
	return len(h.Cards) == 2 && !h.split && h.Value() == 21
}

// TwentyOne reports whether the hand is worth exactly 21
func (h *Hand) TwentyOne() bool {
	return h.Value() == 21
}

// Bust reports whether the hand is worth more than 21
func (h *Hand) Bust() bool {
	return h.Value() > 21
}

// Pair reports whether the hand is exactly two cards of the same rank,
// which makes it eligible for a split.
func (h *Hand) Pair() bool {
	return len(h.Cards) == 2 && h.Cards[0].Rank == h.Cards[1].Rank
}

// CanDouble reports whether the hand is eligible for a double down: any
// two-card hand, or a count of 9, 10 or 11.
func (h *Hand) CanDouble() bool {
	if h.doubled {
		return false
	}
	if len(h.Cards) == 2 {
		return true
	}
	v := h.Value()
	return v >= 9 && v <= 11
}

// Doubled reports whether the stake has been doubled down
func (h *Hand) Doubled() bool {
	return h.doubled
}

// FromSplit reports whether the hand was involved in a split
func (h *Hand) FromSplit() bool {
	return h.split
}

// Active reports whether the hand still requires a player decision
func (h *Hand) Active() bool {
	return h.Status == HandActive
}

// SplitOff removes the second card of a pair into a new hand carrying the
// same stake. Both hands are marked as split hands. Returns ErrIllegalSplit
// if the hand is not a pair.
func (h *Hand) SplitOff() (*Hand, error) {
	if !h.Pair() {
		return nil, ErrIllegalSplit
	}
	card := h.Cards[len(h.Cards)-1]
	h.Cards = h.Cards[:len(h.Cards)-1]
	h.split = true
	other := NewHand(h.Stake)
	other.split = true
	other.Add(card)
	return other, nil
}

// String returns the hand's cards separated by spaces (e.g., "A♠ K♦")
func (h *Hand) String() string {
	parts := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
