// Package deck provides playing cards and the multi-deck shoe the
// blackjack engine draws from.
package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// DeckSize is the number of cards in one standard deck.
const DeckSize = 52

var (
	// ErrBadShoeSize is returned when a shoe is built with fewer than one deck.
	ErrBadShoeSize = errors.New("shoe requires at least one deck")

	// ErrShoeExhausted is returned when drawing from an empty shoe. The
	// engine reshuffles at round boundaries so this never surfaces during
	// normal play; seeing it means an engine fault.
	ErrShoeExhausted = errors.New("shoe is exhausted")
)

// Shoe holds one or more shuffled decks and deals from the top.
type Shoe struct {
	cards    []Card
	numDecks int
	rng      *rand.Rand
}

// NewShoe builds a shuffled shoe of numDecks standard decks. The RNG is
// required so that shuffles are reproducible in tests.
func NewShoe(rng *rand.Rand, numDecks int) (*Shoe, error) {
	if numDecks < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadShoeSize, numDecks)
	}
	s := &Shoe{
		cards:    make([]Card, 0, DeckSize*numDecks),
		numDecks: numDecks,
		rng:      rng,
	}
	s.fill()
	s.shuffle()
	return s, nil
}

func (s *Shoe) fill() {
	s.cards = s.cards[:0]
	for i := 0; i < s.numDecks; i++ {
		for suit := Spades; suit <= Clubs; suit++ {
			for rank := Two; rank <= Ace; rank++ {
				s.cards = append(s.cards, NewCard(rank, suit))
			}
		}
	}
}

func (s *Shoe) shuffle() {
	s.rng.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
}

// NewShoeFromCards builds an unshuffled shoe that deals exactly the given
// cards in order. Intended for deterministic tests and replays; a
// reshuffle falls back to a full shuffled shoe.
func NewShoeFromCards(rng *rand.Rand, cards ...Card) *Shoe {
	numDecks := (len(cards) + DeckSize - 1) / DeckSize
	if numDecks < 1 {
		numDecks = 1
	}
	s := &Shoe{
		cards:    append([]Card(nil), cards...),
		numDecks: numDecks,
		rng:      rng,
	}
	return s
}

// Draw removes and returns the top card of the shoe.
func (s *Shoe) Draw() (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrShoeExhausted
	}
	card := s.cards[0]
	s.cards = s.cards[1:]
	return card, nil
}

// Remaining returns the number of cards left in the shoe.
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Size returns the number of cards in a full shoe.
func (s *Shoe) Size() int {
	return DeckSize * s.numDecks
}

// NeedsReshuffle reports whether the remaining cards have fallen below
// thresholdPct percent of the full shoe. Checked at round boundaries only,
// never mid-hand.
func (s *Shoe) NeedsReshuffle(thresholdPct int) bool {
	return len(s.cards)*100 < s.Size()*thresholdPct
}

// Reshuffle restores the shoe to its full size and shuffles it.
func (s *Shoe) Reshuffle() {
	s.fill()
	s.shuffle()
}
