// Package console implements a human player reading decisions from a
// line-oriented input, typically stdin.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lox/blackjack-cli/internal/game"
)

// Agent prompts on out and reads one line per decision from in. Empty
// input takes the suggested default. On EOF it falls back to the safest
// choice so a closed pipe cannot wedge a round.
type Agent struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewAgent creates a console agent reading from in and prompting on out
func NewAgent(in io.Reader, out io.Writer) *Agent {
	return &Agent{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// PlaceBet prompts for the opening bet. Empty input bets the minimum;
// unparseable input is left for the engine to reject and re-prompt.
func (a *Agent) PlaceBet(view game.BetView) int {
	fmt.Fprintf(a.out, "%s, place your bet: %d available, %d minimum, multiples of %d only [%d]: ",
		view.Player, view.Chips, view.Min, view.Multiple, view.Min)

	line, ok := a.readLine()
	if !ok || line == "" {
		return view.Min
	}
	amount, err := strconv.Atoi(line)
	if err != nil {
		fmt.Fprintf(a.out, "%q is not a number\n", line)
		return -1
	}
	return amount
}

// TakeInsurance prompts for an insurance side bet, defaulting to none
func (a *Agent) TakeInsurance(view game.TableView, max int) int {
	fmt.Fprintf(a.out, "%s, dealer shows an ace. Insurance up to %d [0]: ",
		view.Player, max)

	line, ok := a.readLine()
	if !ok || line == "" {
		return 0
	}
	amount, err := strconv.Atoi(line)
	if err != nil {
		fmt.Fprintf(a.out, "%q is not a number\n", line)
		return 0
	}
	return amount
}

// Act prompts with the legal actions and parses a single-letter answer.
// Unrecognized input re-prompts; an illegal but recognized action is left
// for the engine to reject.
func (a *Agent) Act(view game.TableView, valid []game.Action) game.Decision {
	for {
		fmt.Fprintf(a.out, "%s, you have %d against the dealer's %s. %s? ",
			view.Player, view.Hand.Value, view.DealerUpCard, choices(valid))

		line, ok := a.readLine()
		if !ok {
			return game.Decision{Action: game.Stand, Reasoning: "input closed"}
		}
		action, err := parseAction(line)
		if err != nil {
			fmt.Fprintln(a.out, err)
			continue
		}
		return game.Decision{Action: action, Reasoning: "player choice"}
	}
}

// Confirm asks a yes/no question, defaulting to yes
func (a *Agent) Confirm(prompt string) bool {
	fmt.Fprintf(a.out, "%s [Y/n]: ", prompt)

	line, ok := a.readLine()
	if !ok {
		return false
	}
	return line == "" || strings.EqualFold(line, "y") || strings.EqualFold(line, "yes")
}

func (a *Agent) readLine() (string, bool) {
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

// choices renders the action menu, e.g. "(h)it, (s)tand or (d)ouble"
func choices(valid []game.Action) string {
	parts := make([]string, len(valid))
	for i, action := range valid {
		name := action.String()
		parts[i] = fmt.Sprintf("(%s)%s", name[:1], name[1:])
	}
	if len(parts) > 1 {
		return strings.Join(parts[:len(parts)-1], ", ") + " or " + parts[len(parts)-1]
	}
	return parts[0]
}

func parseAction(line string) (game.Action, error) {
	switch strings.ToLower(line) {
	case "h", "hit":
		return game.Hit, nil
	case "s", "stand", "":
		return game.Stand, nil
	case "d", "double":
		return game.Double, nil
	case "p", "split":
		return game.Split, nil
	default:
		return game.Stand, fmt.Errorf("don't know how to %q", line)
	}
}
