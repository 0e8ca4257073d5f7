package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/deck"
)

// Session owns the shoe and players and repeats rounds until every player
// is broke or an explicit stop is requested.
type Session struct {
	rules   Rules
	shoe    *deck.Shoe
	seats   []Seat
	rng     *rand.Rand
	sink    EventSink
	logger  *log.Logger
	rounds  int
	stopped bool
}

// SessionOption configures a Session during creation
type SessionOption func(*Session)

// WithSessionEventSink directs events from every round to sink
func WithSessionEventSink(sink EventSink) SessionOption {
	return func(s *Session) { s.sink = sink }
}

// WithSessionLogger sets the session's logger
func WithSessionLogger(logger *log.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// NewSession validates the rules, builds the shoe and seats the players.
// The RNG drives the shoe shuffle and each round's play-order shuffle.
func NewSession(rng *rand.Rand, rules Rules, seats []Seat, opts ...SessionOption) (*Session, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if len(seats) == 0 {
		return nil, fmt.Errorf("at least one seat required")
	}
	shoe, err := deck.NewShoe(rng, rules.NumDecks)
	if err != nil {
		return nil, err
	}
	s := &Session{
		rules:  rules,
		shoe:   shoe,
		seats:  seats,
		rng:    rng,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Rules returns the session's table rules
func (s *Session) Rules() Rules {
	return s.rules
}

// Rounds returns the number of rounds played so far
func (s *Session) Rounds() int {
	return s.rounds
}

// Players returns the seated players
func (s *Session) Players() []*Player {
	players := make([]*Player, len(s.seats))
	for i, seat := range s.seats {
		players[i] = seat.Player
	}
	return players
}

// Standings returns the players sorted by chips, richest first
func (s *Session) Standings() []*Player {
	players := s.Players()
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Chips > players[j].Chips
	})
	return players
}

// Results returns the aggregate win/loss/push counts across all players
func (s *Session) Results() Results {
	var totals Results
	for _, seat := range s.seats {
		totals.Add(seat.Player.Results)
	}
	return totals
}

// Stop requests termination; the session reports Done from then on
func (s *Session) Stop() {
	s.stopped = true
}

// Done reports whether the session has ended: stopped explicitly, or no
// player can cover the minimum bet.
func (s *Session) Done() bool {
	if s.stopped {
		return true
	}
	for _, seat := range s.seats {
		if seat.Player.HasChips(s.rules.MinBet) {
			return false
		}
	}
	return true
}

// PlayRound executes one full round engine pass
func (s *Session) PlayRound() error {
	s.rounds++
	round := NewRound(s.rng, s.rules, s.shoe, s.seats,
		WithRoundNumber(s.rounds),
		WithEventSink(s.sink),
		WithLogger(s.logger),
	)
	if err := round.Play(); err != nil {
		return fmt.Errorf("round %d: %w", s.rounds, err)
	}
	return nil
}

// Run plays rounds until the session is done
func (s *Session) Run() error {
	for !s.Done() {
		if err := s.PlayRound(); err != nil {
			return err
		}
	}
	return nil
}
