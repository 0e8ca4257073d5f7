package display

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
)

func TestMain(m *testing.M) {
	// Plain text output so assertions are not full of escape codes.
	lipgloss.SetColorProfile(termenv.Ascii)
	m.Run()
}

func cards(ranks ...deck.Rank) []deck.Card {
	out := make([]deck.Card, len(ranks))
	for i, r := range ranks {
		out[i] = deck.NewCard(r, deck.Spades)
	}
	return out
}

func TestRendererRoundFlow(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.Handle(game.RoundStartedEvent{Number: 3, Order: []string{"alice", "bob"}})
	r.Handle(game.BetPlacedEvent{Player: "alice", Amount: 10, Chips: 90})
	r.Handle(game.HandDealtEvent{Player: "alice", Cards: cards(deck.Ace, deck.King), Value: 21})
	r.Handle(game.DealerUpCardEvent{Card: deck.NewCard(deck.Six, deck.Hearts)})
	r.Handle(game.ActionTakenEvent{Player: "alice", Action: game.Stand, Value: 21})
	r.Handle(game.DealerRevealedEvent{Cards: cards(deck.Six, deck.Ten, deck.Nine), Value: 25})
	r.Handle(game.HandSettledEvent{
		Player: "alice", Outcome: game.OutcomeWin, Blackjack: true,
		Value: 21, DealerValue: 25, Stake: 10, Payout: 15, Chips: 115,
	})
	r.Handle(game.RoundEndedEvent{Number: 3})

	out := buf.String()
	assert.Contains(t, out, "ROUND 3")
	assert.Contains(t, out, "Order: alice, bob")
	assert.Contains(t, out, "alice > bets 10 chips (90 left)")
	assert.Contains(t, out, "alice > dealt [A♠ K♠] (21)")
	assert.Contains(t, out, "Dealer > shows [6♥ ??]")
	assert.Contains(t, out, "alice > stand (21)")
	assert.Contains(t, out, "Dealer > reveals [6♠ 10♠ 9♠] (25)")
	assert.Contains(t, out, "BLACKJACK! wins 15")
	assert.Contains(t, out, "115 chips")
}

func TestRendererInsuranceAndLoss(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.Handle(game.InsuranceTakenEvent{Player: "bob", Amount: 4})
	r.Handle(game.InsuranceSettledEvent{Player: "bob", Won: true, Amount: 4, Payout: 8})
	r.Handle(game.InsuranceSettledEvent{Player: "bob", Won: false, Amount: 4})
	r.Handle(game.HandSettledEvent{Player: "bob", Outcome: game.OutcomeLoss, Value: 18, DealerValue: 20, Stake: 10, Chips: 90})
	r.Handle(game.HandSettledEvent{Player: "bob", Outcome: game.OutcomePush, Value: 20, DealerValue: 20, Stake: 10, Chips: 100})
	r.Handle(game.ShoeReshuffledEvent{Remaining: 11})

	out := buf.String()
	assert.Contains(t, out, "takes insurance for 4 chips")
	assert.Contains(t, out, "insurance pays 8")
	assert.Contains(t, out, "forfeits 4 insurance")
	assert.Contains(t, out, "loses 10 (18 vs 20, 90 chips)")
	assert.Contains(t, out, "pushes (100 chips)")
	assert.Contains(t, out, "Shuffling a fresh shoe (11 cards)")
}

func TestRendererDealerBlackjack(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.Handle(game.DealerRevealedEvent{Cards: cards(deck.Ace, deck.King), Value: 21, Blackjack: true})

	assert.Contains(t, buf.String(), "Dealer > reveals [A♠ K♠] BLACKJACK")
}

func TestRendererStandings(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	alice := game.NewPlayer("alice", 140)
	alice.Results = game.Results{Wins: 5, Losses: 2, Pushes: 1}
	bob := game.NewPlayer("bob", 60)

	r.Standings([]*game.Player{alice, bob})

	out := buf.String()
	assert.Contains(t, out, "STANDINGS")
	assert.Contains(t, out, "1. alice  140 chips  5W 2L 1P")
	assert.Contains(t, out, "2. bob  60 chips  0W 0L 0P")
}

func TestRendererPlayerColorsStable(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{})

	first := r.playerStyle("alice")
	second := r.playerStyle("bob")
	assert.Equal(t, first, r.playerStyle("alice"))
	assert.Equal(t, second, r.playerStyle("bob"))
}

func TestRendererPacesCardDeals(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mock := quartz.NewMock(t)
	trap := mock.Trap().NewTimer()
	defer trap.Close()

	var buf bytes.Buffer
	r := NewRenderer(&buf, WithClock(mock), WithDelay(500*time.Millisecond))

	done := make(chan struct{})
	go func() {
		defer close(done)
		r.Handle(game.CardDealtEvent{Player: "alice", Card: deck.NewCard(deck.Five, deck.Clubs), Cards: cards(deck.Ten, deck.Five), Value: 15})
	}()

	call, err := trap.Wait(ctx)
	require.NoError(t, err)
	call.MustRelease(ctx)

	mock.Advance(500 * time.Millisecond).MustWait(ctx)
	<-done

	assert.Contains(t, buf.String(), "draws 5♣")
}

func TestRendererZeroDelaySkipsClock(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, WithClock(quartz.NewMock(t)))

	// Must not block with the default zero delay and a mock clock.
	r.Handle(game.CardDealtEvent{Player: "alice", Card: deck.NewCard(deck.Two, deck.Spades), Cards: cards(deck.Two), Value: 2})
	assert.Contains(t, buf.String(), "draws 2♠")
}
