package game

import "fmt"

// Results tracks per-hand outcomes for a player
type Results struct {
	Wins   int
	Losses int
	Pushes int
}

// Hands returns the total number of settled hands
func (r Results) Hands() int {
	return r.Wins + r.Losses + r.Pushes
}

// Add merges other into r
func (r *Results) Add(other Results) {
	r.Wins += other.Wins
	r.Losses += other.Losses
	r.Pushes += other.Pushes
}

// Player is one participant with a chip balance, one or more hands in the
// current round, and an optional insurance bet.
type Player struct {
	Name      string
	Chips     int
	Hands     []*Hand
	Insurance int
	Results   Results
}

// NewPlayer creates a player with the given chip balance
func NewPlayer(name string, chips int) *Player {
	return &Player{Name: name, Chips: chips}
}

// HasChips reports whether the player can cover amount; with amount 0 it
// reports whether any chips remain at all.
func (p *Player) HasChips(amount int) bool {
	if amount == 0 {
		return p.Chips > 0
	}
	return p.Chips >= amount
}

// Bet deducts amount from the player's balance immediately. The chips come
// back only through a push or a win at settlement.
func (p *Player) Bet(amount int) error {
	if amount < 1 {
		return fmt.Errorf("bet must be positive, got %d", amount)
	}
	if amount > p.Chips {
		return fmt.Errorf("%w: bet %d with %d available", ErrInsufficientChips, amount, p.Chips)
	}
	p.Chips -= amount
	return nil
}

// CanSplit reports whether the hand may be split: a pair, with chips to
// cover an equal additional stake. Re-splitting is unlimited; the chip
// balance is the only bound.
func (p *Player) CanSplit(h *Hand) bool {
	return h.Pair() && p.HasChips(h.Stake)
}

// SplitHand splits a pair into two hands, deducting a second equal stake.
// The new hand holds one of the paired cards; the round deals one fresh
// card to each.
func (p *Player) SplitHand(h *Hand) (*Hand, error) {
	if !h.Pair() {
		return nil, ErrIllegalSplit
	}
	if !p.HasChips(h.Stake) {
		return nil, fmt.Errorf("%w: split requires %d chips", ErrInsufficientChips, h.Stake)
	}
	other, err := h.SplitOff()
	if err != nil {
		return nil, err
	}
	if err := p.Bet(h.Stake); err != nil {
		return nil, err
	}
	for i, hand := range p.Hands {
		if hand == h {
			p.Hands = append(p.Hands[:i+1], append([]*Hand{other}, p.Hands[i+1:]...)...)
			return other, nil
		}
	}
	p.Hands = append(p.Hands, other)
	return other, nil
}

// CanDouble reports whether the hand may double down under the table rules
func (p *Player) CanDouble(h *Hand, doubleAfterSplit bool) bool {
	if h.FromSplit() && !doubleAfterSplit {
		return false
	}
	return h.CanDouble() && p.HasChips(h.Stake)
}

// DoubleDown doubles the hand's stake, deducting the additional chips
func (p *Player) DoubleDown(h *Hand, doubleAfterSplit bool) error {
	if !h.CanDouble() || (h.FromSplit() && !doubleAfterSplit) {
		return ErrIllegalDouble
	}
	if !p.HasChips(h.Stake) {
		return fmt.Errorf("%w: double requires %d chips", ErrInsufficientChips, h.Stake)
	}
	if err := p.Bet(h.Stake); err != nil {
		return err
	}
	h.Stake *= 2
	h.doubled = true
	return nil
}

// ActiveHands returns the player's hands still awaiting decisions
func (p *Player) ActiveHands() []*Hand {
	var hands []*Hand
	for _, h := range p.Hands {
		if h.Active() {
			hands = append(hands, h)
		}
	}
	return hands
}

// win credits the stake back plus winnings at 1:1
func (p *Player) win(stake int) {
	p.Chips += stake * 2
	p.Results.Wins++
}

// winBlackjack credits the stake back plus winnings at 3:2
func (p *Player) winBlackjack(stake int) {
	p.Chips += stake + stake*3/2
	p.Results.Wins++
}

// push returns the stake unchanged
func (p *Player) push(stake int) {
	p.Chips += stake
	p.Results.Pushes++
}

// lose forfeits the stake, which was already deducted at bet time
func (p *Player) lose() {
	p.Results.Losses++
}

// payInsurance settles an insurance side bet at 2:1. Insurance moves chips
// but does not count towards per-hand win/loss results.
func (p *Player) payInsurance() int {
	payout := p.Insurance * 2
	p.Chips += p.Insurance + payout
	p.Insurance = 0
	return payout
}

// forfeitInsurance drops a losing insurance side bet
func (p *Player) forfeitInsurance() {
	p.Insurance = 0
}
