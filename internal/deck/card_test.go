package deck

import "testing"

func TestCardString(t *testing.T) {
	tests := []struct {
		card Card
		want string
	}{
		{NewCard(Ace, Spades), "A♠"},
		{NewCard(Ten, Hearts), "10♥"},
		{NewCard(Queen, Diamonds), "Q♦"},
		{NewCard(Two, Clubs), "2♣"},
	}
	for _, tt := range tests {
		if got := tt.card.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCardValue(t *testing.T) {
	tests := []struct {
		card Card
		want int
	}{
		{NewCard(Ace, Hearts), 11},
		{NewCard(King, Hearts), 10},
		{NewCard(Queen, Hearts), 10},
		{NewCard(Jack, Hearts), 10},
		{NewCard(Ten, Hearts), 10},
		{NewCard(Nine, Hearts), 9},
		{NewCard(Two, Hearts), 2},
	}
	for _, tt := range tests {
		if got := tt.card.Value(); got != tt.want {
			t.Errorf("%s Value() = %d, want %d", tt.card, got, tt.want)
		}
	}
}

func TestCardIsRed(t *testing.T) {
	if !NewCard(Ace, Hearts).IsRed() {
		t.Error("hearts should be red")
	}
	if !NewCard(Ace, Diamonds).IsRed() {
		t.Error("diamonds should be red")
	}
	if NewCard(Ace, Spades).IsRed() {
		t.Error("spades should not be red")
	}
	if NewCard(Ace, Clubs).IsRed() {
		t.Error("clubs should not be red")
	}
}

func TestCardIsAce(t *testing.T) {
	if !NewCard(Ace, Spades).IsAce() {
		t.Error("expected ace")
	}
	if NewCard(King, Spades).IsAce() {
		t.Error("king is not an ace")
	}
}
