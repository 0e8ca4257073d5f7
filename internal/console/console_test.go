package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
)

func tableView(value int) game.TableView {
	return game.TableView{
		Player:       "alice",
		Chips:        90,
		Hand:         game.HandView{Value: value, Stake: 10},
		DealerUpCard: deck.NewCard(deck.Six, deck.Hearts),
	}
}

func TestPlaceBet(t *testing.T) {
	var out bytes.Buffer
	a := NewAgent(strings.NewReader("20\n"), &out)

	bet := a.PlaceBet(game.BetView{Player: "alice", Chips: 90, Min: 10, Multiple: 2})
	assert.Equal(t, 20, bet)
	assert.Contains(t, out.String(), "alice, place your bet: 90 available, 10 minimum, multiples of 2 only [10]:")
}

func TestPlaceBetDefaultsToMinimum(t *testing.T) {
	for _, input := range []string{"\n", ""} {
		a := NewAgent(strings.NewReader(input), &bytes.Buffer{})
		assert.Equal(t, 10, a.PlaceBet(game.BetView{Min: 10, Multiple: 2, Chips: 90}))
	}
}

func TestPlaceBetRejectsGarbage(t *testing.T) {
	var out bytes.Buffer
	a := NewAgent(strings.NewReader("lots\n"), &out)

	assert.Equal(t, -1, a.PlaceBet(game.BetView{Min: 10, Multiple: 2, Chips: 90}))
	assert.Contains(t, out.String(), `"lots" is not a number`)
}

func TestTakeInsurance(t *testing.T) {
	var out bytes.Buffer
	a := NewAgent(strings.NewReader("4\n"), &out)

	assert.Equal(t, 4, a.TakeInsurance(tableView(15), 5))
	assert.Contains(t, out.String(), "dealer shows an ace. Insurance up to 5 [0]:")
}

func TestTakeInsuranceDefaultsToNone(t *testing.T) {
	a := NewAgent(strings.NewReader("\n"), &bytes.Buffer{})
	assert.Equal(t, 0, a.TakeInsurance(tableView(15), 5))

	a = NewAgent(strings.NewReader("nah\n"), &bytes.Buffer{})
	assert.Equal(t, 0, a.TakeInsurance(tableView(15), 5))
}

func TestActParsesLetters(t *testing.T) {
	valid := []game.Action{game.Hit, game.Stand, game.Double, game.Split}

	cases := map[string]game.Action{
		"h\n":      game.Hit,
		"HIT\n":    game.Hit,
		"s\n":      game.Stand,
		"d\n":      game.Double,
		"p\n":      game.Split,
		"split\n":  game.Split,
		"double\n": game.Double,
		"\n":       game.Stand, // empty input stands
	}
	for input, want := range cases {
		a := NewAgent(strings.NewReader(input), &bytes.Buffer{})
		assert.Equal(t, want, a.Act(tableView(16), valid).Action, "input %q", input)
	}
}

func TestActRepromptsOnGarbage(t *testing.T) {
	var out bytes.Buffer
	a := NewAgent(strings.NewReader("x\nh\n"), &out)

	d := a.Act(tableView(16), []game.Action{game.Hit, game.Stand})
	assert.Equal(t, game.Hit, d.Action)
	assert.Contains(t, out.String(), `don't know how to "x"`)
	assert.Equal(t, 2, strings.Count(out.String(), "(h)it or (s)tand?"))
}

func TestActMenuListsValidActions(t *testing.T) {
	var out bytes.Buffer
	a := NewAgent(strings.NewReader("h\n"), &out)

	a.Act(tableView(9), []game.Action{game.Hit, game.Stand, game.Double})
	assert.Contains(t, out.String(), "(h)it, (s)tand or (d)ouble?")
	assert.Contains(t, out.String(), "alice, you have 9 against the dealer's 6♥.")
}

func TestActStandsOnEOF(t *testing.T) {
	a := NewAgent(strings.NewReader(""), &bytes.Buffer{})
	d := a.Act(tableView(16), []game.Action{game.Hit, game.Stand})
	assert.Equal(t, game.Stand, d.Action)
}

func TestConfirm(t *testing.T) {
	cases := map[string]bool{
		"\n":    true,
		"y\n":   true,
		"YES\n": true,
		"n\n":   false,
		"no\n":  false,
		"":      false, // EOF
	}
	for input, want := range cases {
		var out bytes.Buffer
		a := NewAgent(strings.NewReader(input), &out)
		assert.Equal(t, want, a.Confirm("Another round?"), "input %q", input)
		assert.Contains(t, out.String(), "Another round? [Y/n]:")
	}
}
