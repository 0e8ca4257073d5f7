// Package game implements the core blackjack round engine.
//
// The main type is Round, which runs one full round over a shared shoe:
// ante collection, dealing, the conditional insurance offer, the per-hand
// action loop (hit, stand, double, split), dealer play and settlement.
// Session repeats rounds until every player is broke or a stop is
// requested.
//
// # Basic Usage
//
// Seat players with deciding agents and run a session:
//
//	rng := randutil.New(42)
//	seats := []game.Seat{{Player: game.NewPlayer("Alice", 100), Agent: agent}}
//	session, err := game.NewSession(rng, game.NewRules(), seats)
//	// Play rounds...
//	for !session.Done() {
//	    session.PlayRound()
//	}
//
// # Determinism
//
// All randomness (shoe shuffles, per-round play order) flows from the
// injected *rand.Rand, so a fixed seed reproduces a whole session.
//
// # Collaborators
//
// The engine is agnostic to input and rendering. Decisions come from the
// Agent interface, which receives read-only views and whose replies are
// validated and re-solicited when illegal. Rendering hangs off the
// EventSink, which receives a typed Event for every observable transition.
package game
