// Package display renders game events to a terminal using lipgloss styles.
package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
)

// Styles contains styling for game output
type Styles struct {
	Header    lipgloss.Style
	Dealer    lipgloss.Style
	CardRed   lipgloss.Style
	CardBlack lipgloss.Style
	Win       lipgloss.Style
	Loss      lipgloss.Style
	Push      lipgloss.Style
	Chips     lipgloss.Style
	Separator lipgloss.Style
	Muted     lipgloss.Style
}

// NewStyles creates the default style set
func NewStyles() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 2).
			Bold(true),
		Dealer: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		CardRed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		CardBlack: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			Bold(true),
		Win: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Loss: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
		Push: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")),
		Chips: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")),
		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// palette cycles through player name colors as seats are first seen
var palette = []lipgloss.Color{
	"#04B575", // green
	"#74B9FF", // blue
	"#FF79C6", // pink
	"#F1FA8C", // yellow
	"#BD93F9", // purple
	"#FFB86C", // orange
}

// Renderer consumes game events and writes formatted lines. It is not
// safe for concurrent use; rounds emit events from a single goroutine.
type Renderer struct {
	out    io.Writer
	styles *Styles
	clock  quartz.Clock
	delay  time.Duration
	colors map[string]lipgloss.Style
}

// Option configures a Renderer
type Option func(*Renderer)

// WithDelay pauses between dealt cards to give the table a human pace
func WithDelay(d time.Duration) Option {
	return func(r *Renderer) {
		r.delay = d
	}
}

// WithClock overrides the clock used for deal pacing
func WithClock(clock quartz.Clock) Option {
	return func(r *Renderer) {
		r.clock = clock
	}
}

// NewRenderer creates a renderer writing to out
func NewRenderer(out io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		out:    out,
		styles: NewStyles(),
		clock:  quartz.NewReal(),
		colors: make(map[string]lipgloss.Style),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Sink adapts the renderer to the engine's event sink
func (r *Renderer) Sink() game.EventSink {
	return r.Handle
}

// Handle renders a single game event
func (r *Renderer) Handle(ev game.Event) {
	switch e := ev.(type) {
	case game.RoundStartedEvent:
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, r.styles.Header.Render(fmt.Sprintf("ROUND %d", e.Number)))
		fmt.Fprintf(r.out, "Order: %s\n\n", strings.Join(e.Order, ", "))
	case game.ShoeReshuffledEvent:
		fmt.Fprintln(r.out, r.styles.Muted.Render(fmt.Sprintf("Shuffling a fresh shoe (%d cards)", e.Remaining)))
	case game.BetPlacedEvent:
		r.say(e.Player, "bets %s (%d left)", r.chips(e.Amount), e.Chips)
	case game.HandDealtEvent:
		r.say(e.Player, "dealt %s (%d)", r.cards(e.Cards), e.Value)
	case game.DealerUpCardEvent:
		r.say(game.DealerName, "shows [%s ??]", r.card(e.Card))
	case game.CardDealtEvent:
		r.pause()
		r.say(e.Player, "draws %s %s (%d)", r.card(e.Card), r.cards(e.Cards), e.Value)
	case game.InsuranceTakenEvent:
		r.say(e.Player, "takes insurance for %s", r.chips(e.Amount))
	case game.InsuranceSettledEvent:
		if e.Won {
			r.say(e.Player, "%s", r.styles.Win.Render(fmt.Sprintf("insurance pays %d", e.Payout)))
		} else {
			r.say(e.Player, "%s", r.styles.Muted.Render(fmt.Sprintf("forfeits %d insurance", e.Amount)))
		}
	case game.DealerRevealedEvent:
		r.pause()
		if e.Blackjack {
			r.say(game.DealerName, "reveals %s %s", r.cards(e.Cards), r.styles.Dealer.Render("BLACKJACK"))
		} else {
			r.say(game.DealerName, "reveals %s (%d)", r.cards(e.Cards), e.Value)
		}
	case game.ActionTakenEvent:
		r.say(e.Player, "%s (%d)", e.Action, e.Value)
	case game.HandSettledEvent:
		r.settle(e)
	case game.RoundEndedEvent:
		fmt.Fprintln(r.out, r.styles.Separator.Render(strings.Repeat("─", 46)))
	}
}

func (r *Renderer) settle(e game.HandSettledEvent) {
	switch e.Outcome {
	case game.OutcomeWin:
		label := fmt.Sprintf("wins %d", e.Payout)
		if e.Blackjack {
			label = fmt.Sprintf("BLACKJACK! wins %d", e.Payout)
		}
		r.say(e.Player, "%s (%d vs %d, %d chips)",
			r.styles.Win.Render(label), e.Value, e.DealerValue, e.Chips)
	case game.OutcomeLoss:
		r.say(e.Player, "%s (%d vs %d, %d chips)",
			r.styles.Loss.Render(fmt.Sprintf("loses %d", e.Stake)), e.Value, e.DealerValue, e.Chips)
	case game.OutcomePush:
		r.say(e.Player, "%s (%d chips)", r.styles.Push.Render("pushes"), e.Chips)
	}
}

// Standings writes the final chip table sorted as given
func (r *Renderer) Standings(players []*game.Player) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.styles.Header.Render("STANDINGS"))
	for i, p := range players {
		results := fmt.Sprintf("%dW %dL %dP", p.Results.Wins, p.Results.Losses, p.Results.Pushes)
		fmt.Fprintf(r.out, "%d. %s  %s  %s\n",
			i+1,
			r.playerStyle(p.Name).Render(p.Name),
			r.chips(p.Chips),
			r.styles.Muted.Render(results))
	}
}

// say prints a right-aligned name prefix followed by the message
func (r *Renderer) say(name, format string, args ...any) {
	prefix := fmt.Sprintf("%10s >", name)
	if name == game.DealerName {
		prefix = r.styles.Dealer.Render(prefix)
	} else {
		prefix = r.playerStyle(name).Render(prefix)
	}
	fmt.Fprintf(r.out, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}

// playerStyle assigns palette colors in first-seen order
func (r *Renderer) playerStyle(name string) lipgloss.Style {
	if style, ok := r.colors[name]; ok {
		return style
	}
	style := lipgloss.NewStyle().Foreground(palette[len(r.colors)%len(palette)]).Bold(true)
	r.colors[name] = style
	return style
}

func (r *Renderer) card(c deck.Card) string {
	if c.IsRed() {
		return r.styles.CardRed.Render(c.String())
	}
	return r.styles.CardBlack.Render(c.String())
}

func (r *Renderer) cards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = r.card(c)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (r *Renderer) chips(n int) string {
	return r.styles.Chips.Render(fmt.Sprintf("%d chips", n))
}

func (r *Renderer) pause() {
	if r.delay <= 0 {
		return
	}
	timer := r.clock.NewTimer(r.delay)
	defer timer.Stop()
	<-timer.C
}
