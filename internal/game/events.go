package game

import "github.com/lox/blackjack-cli/internal/deck"

// EventType identifies a round-state event
type EventType string

const (
	EventTypeRoundStarted     EventType = "round_started"
	EventTypeShoeReshuffled   EventType = "shoe_reshuffled"
	EventTypeBetPlaced        EventType = "bet_placed"
	EventTypeHandDealt        EventType = "hand_dealt"
	EventTypeDealerUpCard     EventType = "dealer_up_card"
	EventTypeCardDealt        EventType = "card_dealt"
	EventTypeInsuranceTaken   EventType = "insurance_taken"
	EventTypeInsuranceSettled EventType = "insurance_settled"
	EventTypeDealerRevealed   EventType = "dealer_revealed"
	EventTypeActionTaken      EventType = "action_taken"
	EventTypeHandSettled      EventType = "hand_settled"
	EventTypeRoundEnded       EventType = "round_ended"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is a structured round-state notification. The engine publishes
// events to a sink and stays agnostic to how they are rendered.
type Event interface {
	EventType() EventType
}

// EventSink receives engine events, typically a display renderer
type EventSink func(Event)

// RoundStartedEvent is published when a round begins, after the play order
// has been randomized.
type RoundStartedEvent struct {
	Number int
	Order  []string // player names in this round's play order
}

func (RoundStartedEvent) EventType() EventType { return EventTypeRoundStarted }

// ShoeReshuffledEvent is published when the low-shoe check triggers a
// reshuffle before dealing.
type ShoeReshuffledEvent struct {
	Remaining int // cards remaining before the reshuffle
}

func (ShoeReshuffledEvent) EventType() EventType { return EventTypeShoeReshuffled }

// BetPlacedEvent is published when a player's opening bet is accepted
type BetPlacedEvent struct {
	Player string
	Amount int
	Chips  int // balance after the bet
}

func (BetPlacedEvent) EventType() EventType { return EventTypeBetPlaced }

// HandDealtEvent is published once per player after the initial deal
type HandDealtEvent struct {
	Player string
	Cards  []deck.Card
	Value  int
}

func (HandDealtEvent) EventType() EventType { return EventTypeHandDealt }

// DealerUpCardEvent is published after the initial deal with the dealer's
// face-up card.
type DealerUpCardEvent struct {
	Card deck.Card
}

func (DealerUpCardEvent) EventType() EventType { return EventTypeDealerUpCard }

// CardDealtEvent is published for every card drawn after the initial deal
type CardDealtEvent struct {
	Player string // "Dealer" for dealer draws
	Card   deck.Card
	Cards  []deck.Card
	Value  int
}

func (CardDealtEvent) EventType() EventType { return EventTypeCardDealt }

// InsuranceTakenEvent is published when a player accepts insurance
type InsuranceTakenEvent struct {
	Player string
	Amount int
}

func (InsuranceTakenEvent) EventType() EventType { return EventTypeInsuranceTaken }

// InsuranceSettledEvent is published when an insurance side bet resolves
type InsuranceSettledEvent struct {
	Player string
	Won    bool
	Amount int // the side bet
	Payout int // winnings excluding the returned bet; zero on a loss
}

func (InsuranceSettledEvent) EventType() EventType { return EventTypeInsuranceSettled }

// DealerRevealedEvent is published when the dealer's hole card is exposed
type DealerRevealedEvent struct {
	Cards     []deck.Card
	Value     int
	Blackjack bool
}

func (DealerRevealedEvent) EventType() EventType { return EventTypeDealerRevealed }

// ActionTakenEvent is published when a player's action is accepted
type ActionTakenEvent struct {
	Player string
	Action Action
	Value  int // hand value after the action
}

func (ActionTakenEvent) EventType() EventType { return EventTypeActionTaken }

// HandSettledEvent is published once per hand with its final outcome
type HandSettledEvent struct {
	Player      string
	Outcome     Outcome
	Blackjack   bool
	Value       int
	DealerValue int
	Stake       int // final stake, including any double down
	Payout      int // winnings excluding the returned stake; zero on loss or push
	Chips       int // balance after settlement
}

func (HandSettledEvent) EventType() EventType { return EventTypeHandSettled }

// RoundEndedEvent is published after settlement completes
type RoundEndedEvent struct {
	Number int
}

func (RoundEndedEvent) EventType() EventType { return EventTypeRoundEnded }
