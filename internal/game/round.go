package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/deck"
)

// DealerName is the display name used for dealer events
const DealerName = "Dealer"

// solicitRetries bounds how often a misbehaving agent is re-prompted before
// the engine falls back to a safe default (minimum bet, decline, stand).
const solicitRetries = 10

// RoundState represents the round engine's state machine
type RoundState int

const (
	Dealing RoundState = iota
	InsuranceOffer
	PlayerTurns
	DealerTurn
	Settlement
	RoundDone
)

// String returns the string representation of a round state
func (s RoundState) String() string {
	switch s {
	case Dealing:
		return "dealing"
	case InsuranceOffer:
		return "insurance_offer"
	case PlayerTurns:
		return "player_turns"
	case DealerTurn:
		return "dealer_turn"
	case Settlement:
		return "settlement"
	case RoundDone:
		return "done"
	default:
		return "unknown"
	}
}

// Seat pairs a player with the agent deciding for them
type Seat struct {
	Player *Player
	Agent  Agent
}

// turnEntry is one (player, hand) pair in the round's play order. Splits
// insert a new entry immediately after the current one.
type turnEntry struct {
	seat Seat
	hand *Hand
}

// Round orchestrates one full round: ante collection, dealing, the
// insurance offer, per-hand action loops, dealer play and settlement.
// It borrows the shoe and players from the session and owns the dealer
// hand and the turn order it builds.
type Round struct {
	rules  Rules
	shoe   *deck.Shoe
	seats  []Seat // shuffled copy; play order for this round
	dealer *Hand
	queue  []*turnEntry
	state  RoundState
	number int
	rng    *rand.Rand
	sink   EventSink
	logger *log.Logger
}

// RoundOption configures a Round during creation
type RoundOption func(*Round)

// WithEventSink directs round events to sink
func WithEventSink(sink EventSink) RoundOption {
	return func(r *Round) { r.sink = sink }
}

// WithLogger sets the round's logger
func WithLogger(logger *log.Logger) RoundOption {
	return func(r *Round) { r.logger = logger }
}

// WithRoundNumber tags events with the session's round counter
func WithRoundNumber(n int) RoundOption {
	return func(r *Round) { r.number = n }
}

// NewRound creates a round over the given seats. The RNG is required: it
// drives the play-order shuffle (and reshuffles of the borrowed shoe).
func NewRound(rng *rand.Rand, rules Rules, shoe *deck.Shoe, seats []Seat, opts ...RoundOption) *Round {
	if rng == nil {
		panic("rng is required for round creation")
	}
	r := &Round{
		rules:  rules,
		shoe:   shoe,
		seats:  slices.Clone(seats),
		dealer: NewHand(0),
		state:  Dealing,
		number: 1,
		rng:    rng,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the round's current state
func (r *Round) State() RoundState {
	return r.state
}

// Dealer returns the dealer's hand
func (r *Round) Dealer() *Hand {
	return r.dealer
}

func (r *Round) emit(ev Event) {
	if r.sink != nil {
		r.sink(ev)
	}
}

func (r *Round) setState(s RoundState) {
	r.logger.Debug("round state change", "from", r.state, "to", s)
	r.state = s
}

// Play runs the round to completion. The only errors it returns are engine
// faults (an exhausted shoe despite the reshuffle guard); every player rule
// violation is handled by rejecting and re-soliciting input.
func (r *Round) Play() error {
	if err := r.deal(); err != nil {
		return err
	}
	if len(r.queue) == 0 {
		r.setState(RoundDone)
		return nil
	}
	r.offerInsurance()
	if !r.resolveDealerBlackjack() {
		r.resolvePlayerBlackjacks()
		if err := r.playerTurns(); err != nil {
			return err
		}
		if err := r.dealerTurn(); err != nil {
			return err
		}
		r.setState(Settlement)
		for _, e := range r.queue {
			if e.hand.Status == HandStood {
				r.settleHand(e)
			}
		}
	}
	r.emit(RoundEndedEvent{Number: r.number})
	r.setState(RoundDone)
	return nil
}

// deal reshuffles a low shoe, collects opening bets and deals two cards to
// every participating hand plus the dealer. The play order among players is
// randomized here, once, and holds for the whole round.
func (r *Round) deal() error {
	if r.shoe.NeedsReshuffle(r.rules.ReshufflePercent) {
		r.emit(ShoeReshuffledEvent{Remaining: r.shoe.Remaining()})
		r.logger.Debug("reshuffling shoe", "remaining", r.shoe.Remaining())
		r.shoe.Reshuffle()
	}

	r.rng.Shuffle(len(r.seats), func(i, j int) {
		r.seats[i], r.seats[j] = r.seats[j], r.seats[i]
	})

	var order []string
	for _, seat := range r.seats {
		p := seat.Player
		p.Hands = nil
		p.Insurance = 0
		if !p.HasChips(r.rules.MinBet) {
			continue
		}
		order = append(order, p.Name)
	}
	if len(order) == 0 {
		return nil
	}
	r.emit(RoundStartedEvent{Number: r.number, Order: order})

	for _, seat := range r.seats {
		p := seat.Player
		if !p.HasChips(r.rules.MinBet) {
			continue
		}
		amount := r.solicitBet(seat)
		if err := p.Bet(amount); err != nil {
			// Unreachable: solicitBet bounds the amount by the balance.
			return fmt.Errorf("placing bet for %s: %w", p.Name, err)
		}
		hand := NewHand(amount)
		p.Hands = []*Hand{hand}
		r.queue = append(r.queue, &turnEntry{seat: seat, hand: hand})
		r.emit(BetPlacedEvent{Player: p.Name, Amount: amount, Chips: p.Chips})
	}

	for pass := 0; pass < 2; pass++ {
		for _, e := range r.queue {
			card, err := r.shoe.Draw()
			if err != nil {
				return fmt.Errorf("dealing to %s: %w", e.seat.Player.Name, err)
			}
			e.hand.Add(card)
		}
		card, err := r.shoe.Draw()
		if err != nil {
			return fmt.Errorf("dealing to dealer: %w", err)
		}
		r.dealer.Add(card)
	}

	for _, e := range r.queue {
		r.emit(HandDealtEvent{
			Player: e.seat.Player.Name,
			Cards:  slices.Clone(e.hand.Cards),
			Value:  e.hand.Value(),
		})
	}
	r.emit(DealerUpCardEvent{Card: r.dealer.Cards[0]})
	return nil
}

// solicitBet asks the agent for an opening bet until it returns a legal
// amount, then gives up and falls back to the table minimum. Every player
// in the queue was screened for the minimum at round start.
func (r *Round) solicitBet(seat Seat) int {
	p := seat.Player
	view := BetView{
		Player:   p.Name,
		Chips:    p.Chips,
		Min:      r.rules.MinBet,
		Multiple: r.rules.BetMultiple,
	}
	for attempt := 0; attempt < solicitRetries; attempt++ {
		amount := seat.Agent.PlaceBet(view)
		if amount >= r.rules.MinBet && amount <= p.Chips && amount%r.rules.BetMultiple == 0 {
			return amount
		}
		r.logger.Debug("rejected bet", "player", p.Name, "amount", amount)
	}
	return r.rules.MinBet
}

// offerInsurance runs the insurance phase when the dealer shows an ace.
// The side bet is capped at half the hand's stake, rounded down to the bet
// multiple, and at the player's remaining chips.
func (r *Round) offerInsurance() {
	if !r.dealer.Cards[0].IsAce() {
		return
	}
	r.setState(InsuranceOffer)
	for _, e := range r.queue {
		p := e.seat.Player
		max := e.hand.Stake / 2
		if p.Chips < max {
			max = p.Chips
		}
		max -= max % r.rules.BetMultiple
		if max <= 0 {
			continue
		}
		amount := r.solicitInsurance(e.seat, e.hand, max)
		if amount <= 0 {
			continue
		}
		if err := p.Bet(amount); err != nil {
			r.logger.Debug("rejected insurance", "player", p.Name, "amount", amount, "err", err)
			continue
		}
		p.Insurance = amount
		r.emit(InsuranceTakenEvent{Player: p.Name, Amount: amount})
	}
}

func (r *Round) solicitInsurance(seat Seat, hand *Hand, max int) int {
	view := r.tableView(seat.Player, hand)
	for attempt := 0; attempt < solicitRetries; attempt++ {
		amount := seat.Agent.TakeInsurance(view, max)
		if amount >= 0 && amount <= max && amount%r.rules.BetMultiple == 0 {
			return amount
		}
		r.logger.Debug("rejected insurance amount", "player", seat.Player.Name, "amount", amount)
	}
	return 0
}

// resolveDealerBlackjack peeks the hole card for a dealer blackjack. On
// blackjack it pays insurance 2:1 and settles every hand immediately
// (player blackjacks push, everything else loses), reporting true to skip
// straight to the end of the round. Otherwise any insurance is forfeited.
func (r *Round) resolveDealerBlackjack() bool {
	if r.dealer.Blackjack() {
		r.emit(DealerRevealedEvent{
			Cards:     slices.Clone(r.dealer.Cards),
			Value:     r.dealer.Value(),
			Blackjack: true,
		})
		r.setState(Settlement)
		// One hand per player at this point: no splits can have happened.
		for _, e := range r.queue {
			p := e.seat.Player
			if p.Insurance > 0 {
				amount := p.Insurance
				payout := p.payInsurance()
				r.emit(InsuranceSettledEvent{Player: p.Name, Won: true, Amount: amount, Payout: payout})
			}
			r.settleHand(e)
		}
		return true
	}
	if r.dealer.Cards[0].IsAce() {
		for _, e := range r.queue {
			p := e.seat.Player
			if p.Insurance > 0 {
				amount := p.Insurance
				p.forfeitInsurance()
				r.emit(InsuranceSettledEvent{Player: p.Name, Won: false, Amount: amount})
			}
		}
	}
	return false
}

// resolvePlayerBlackjacks settles initial two-card 21s straight away at
// 3:2. The dealer is known not to have blackjack by now.
func (r *Round) resolvePlayerBlackjacks() {
	for _, e := range r.queue {
		if e.hand.Active() && e.hand.Blackjack() {
			r.settleHand(e)
		}
	}
}

func (r *Round) validActions(p *Player, h *Hand) []Action {
	actions := []Action{Hit, Stand}
	if p.CanDouble(h, r.rules.DoubleAfterSplit) {
		actions = append(actions, Double)
	}
	if p.CanSplit(h) {
		actions = append(actions, Split)
	}
	return actions
}

// playerTurns walks the turn queue in order. Hands are consumed strictly
// left to right; a split inserts its new hand immediately after the current
// entry so a player always finishes all of their hands before play moves on.
func (r *Round) playerTurns() error {
	r.setState(PlayerTurns)
	for i := 0; i < len(r.queue); i++ {
		if !r.queue[i].hand.Active() {
			continue
		}
		if err := r.playHand(i); err != nil {
			return err
		}
	}
	return nil
}

// playHand runs the action loop for the queue entry at index i until the
// hand stands, busts or doubles. Illegal decisions are rejected and the
// action list re-offered.
func (r *Round) playHand(i int) error {
	e := r.queue[i]
	p, h := e.seat.Player, e.hand

	for h.Active() {
		if h.TwentyOne() {
			h.Status = HandStood
			r.emit(ActionTakenEvent{Player: p.Name, Action: Stand, Value: h.Value()})
			break
		}

		valid := r.validActions(p, h)
		decision := r.solicitAction(e.seat, h, valid)

		switch decision.Action {
		case Hit:
			if err := r.drawTo(p.Name, h); err != nil {
				return err
			}
			if h.Bust() {
				r.bustHand(e)
			}

		case Stand:
			h.Status = HandStood
			r.emit(ActionTakenEvent{Player: p.Name, Action: Stand, Value: h.Value()})

		case Double:
			if err := p.DoubleDown(h, r.rules.DoubleAfterSplit); err != nil {
				r.logger.Debug("rejected double", "player", p.Name, "err", err)
				continue
			}
			r.emit(ActionTakenEvent{Player: p.Name, Action: Double, Value: h.Value()})
			if err := r.drawTo(p.Name, h); err != nil {
				return err
			}
			if h.Bust() {
				r.bustHand(e)
			} else {
				h.Status = HandStood
			}

		case Split:
			other, err := p.SplitHand(h)
			if err != nil {
				r.logger.Debug("rejected split", "player", p.Name, "err", err)
				continue
			}
			r.emit(ActionTakenEvent{Player: p.Name, Action: Split, Value: h.Value()})
			if err := r.drawTo(p.Name, h); err != nil {
				return err
			}
			if err := r.drawTo(p.Name, other); err != nil {
				return err
			}
			r.queue = slices.Insert(r.queue, i+1, &turnEntry{seat: e.seat, hand: other})
			// The current hand stays in play and may split again.
		}
	}
	return nil
}

// solicitAction asks the agent until it picks a valid action, falling back
// to a stand if it never does.
func (r *Round) solicitAction(seat Seat, hand *Hand, valid []Action) Decision {
	view := r.tableView(seat.Player, hand)
	for attempt := 0; attempt < solicitRetries; attempt++ {
		decision := seat.Agent.Act(view, valid)
		if slices.Contains(valid, decision.Action) {
			return decision
		}
		r.logger.Debug("rejected action", "player", seat.Player.Name, "action", decision.Action)
	}
	return Decision{Action: Stand, Reasoning: "no valid action chosen"}
}

// drawTo draws one card into the hand and announces it
func (r *Round) drawTo(name string, h *Hand) error {
	card, err := r.shoe.Draw()
	if err != nil {
		return fmt.Errorf("drawing for %s: %w", name, err)
	}
	h.Add(card)
	r.emit(CardDealtEvent{
		Player: name,
		Card:   card,
		Cards:  slices.Clone(h.Cards),
		Value:  h.Value(),
	})
	return nil
}

// bustHand settles a busted hand as an immediate loss
func (r *Round) bustHand(e *turnEntry) {
	p, h := e.seat.Player, e.hand
	h.Status = HandBusted
	h.Outcome = OutcomeLoss
	p.lose()
	r.emit(HandSettledEvent{
		Player:  p.Name,
		Outcome: OutcomeLoss,
		Value:   h.Value(),
		Stake:   h.Stake,
		Chips:   p.Chips,
	})
}

// dealerTurn reveals the hole card and hits to the house rule, but only
// when at least one hand is still standing.
func (r *Round) dealerTurn() error {
	stood := false
	for _, e := range r.queue {
		if e.hand.Status == HandStood {
			stood = true
			break
		}
	}
	if !stood {
		return nil
	}
	r.setState(DealerTurn)
	r.emit(DealerRevealedEvent{
		Cards: slices.Clone(r.dealer.Cards),
		Value: r.dealer.Value(),
	})
	for r.dealer.Value() < r.rules.DealerStandsAt {
		if err := r.drawTo(DealerName, r.dealer); err != nil {
			return err
		}
	}
	return nil
}

// settleHand compares a hand to the dealer's and pays it out. Blackjack
// pays 3:2, other wins 1:1, equal values push.
func (r *Round) settleHand(e *turnEntry) {
	p, h := e.seat.Player, e.hand
	dealerValue := r.dealer.Value()
	payout := 0

	switch {
	case h.Bust():
		h.Outcome = OutcomeLoss
		p.lose()
	case r.dealer.Bust() || h.Value() > dealerValue:
		h.Outcome = OutcomeWin
		if h.Blackjack() {
			payout = h.Stake * 3 / 2
			p.winBlackjack(h.Stake)
		} else {
			payout = h.Stake
			p.win(h.Stake)
		}
	case h.Value() == dealerValue:
		h.Outcome = OutcomePush
		p.push(h.Stake)
	default:
		h.Outcome = OutcomeLoss
		p.lose()
	}

	h.Status = HandSettled
	r.emit(HandSettledEvent{
		Player:      p.Name,
		Outcome:     h.Outcome,
		Blackjack:   h.Blackjack(),
		Value:       h.Value(),
		DealerValue: dealerValue,
		Stake:       h.Stake,
		Payout:      payout,
		Chips:       p.Chips,
	})
}
