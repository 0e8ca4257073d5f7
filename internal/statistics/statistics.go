// Package statistics accumulates blackjack session results for reporting
// and simulation analysis.
package statistics

import (
	"fmt"
	"math"
	"strings"
)

// RoundResult is the outcome of one round for one player
type RoundResult struct {
	NetChips int   // chips won or lost this round
	Seed     int64 // RNG seed of the session (for replay)
	Hands    int   // hands settled, >1 after splits
}

// Statistics tracks aggregate results across rounds. Accumulators keep the
// mean and variance computable without storing every round.
type Statistics struct {
	Rounds int
	Hands  int
	Wins   int
	Losses int
	Pushes int

	NetChips int
	SumNet   float64
	SumNet2  float64 // sum of squares for variance

	Blackjacks    int
	MaxRoundWin   int
	MaxRoundLoss  int
	InsuranceBets int
	InsuranceWins int
}

// RecordRound folds one round result into the accumulators
func (s *Statistics) RecordRound(result RoundResult) {
	s.Rounds++
	s.Hands += result.Hands
	s.NetChips += result.NetChips
	net := float64(result.NetChips)
	s.SumNet += net
	s.SumNet2 += net * net
	if result.NetChips > s.MaxRoundWin {
		s.MaxRoundWin = result.NetChips
	}
	if result.NetChips < 0 && -result.NetChips > s.MaxRoundLoss {
		s.MaxRoundLoss = -result.NetChips
	}
}

// RecordOutcomes adds settled-hand counts
func (s *Statistics) RecordOutcomes(wins, losses, pushes int) {
	s.Wins += wins
	s.Losses += losses
	s.Pushes += pushes
}

// Merge combines another statistics set into this one, for aggregating
// parallel simulation workers.
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.Hands += other.Hands
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes
	s.NetChips += other.NetChips
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Blackjacks += other.Blackjacks
	s.InsuranceBets += other.InsuranceBets
	s.InsuranceWins += other.InsuranceWins
	if other.MaxRoundWin > s.MaxRoundWin {
		s.MaxRoundWin = other.MaxRoundWin
	}
	if other.MaxRoundLoss > s.MaxRoundLoss {
		s.MaxRoundLoss = other.MaxRoundLoss
	}
}

// Mean returns the mean net chips per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of per-round net chips
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the standard deviation of per-round net chips
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
// net chips per round.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the fraction of settled hands won
func (s *Statistics) WinRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Hands)
}

// PushRate returns the fraction of settled hands pushed
func (s *Statistics) PushRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Pushes) / float64(s.Hands)
}

// Summary formats a multi-line report of the accumulated statistics
func (s *Statistics) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rounds:        %d\n", s.Rounds)
	fmt.Fprintf(&b, "Hands:         %d (%d won, %d lost, %d pushed)\n", s.Hands, s.Wins, s.Losses, s.Pushes)
	fmt.Fprintf(&b, "Win rate:      %.1f%%\n", s.WinRate()*100)
	fmt.Fprintf(&b, "Net chips:     %+d\n", s.NetChips)
	fmt.Fprintf(&b, "Mean/round:    %+.3f ± %.3f (std err)\n", s.Mean(), s.StdError())
	lo, hi := s.ConfidenceInterval95()
	fmt.Fprintf(&b, "95%% CI:        [%+.3f, %+.3f]\n", lo, hi)
	fmt.Fprintf(&b, "Best round:    %+d\n", s.MaxRoundWin)
	fmt.Fprintf(&b, "Worst round:   %d\n", -s.MaxRoundLoss)
	fmt.Fprintf(&b, "Blackjacks:    %d\n", s.Blackjacks)
	if s.InsuranceBets > 0 {
		fmt.Fprintf(&b, "Insurance:     %d taken, %d won\n", s.InsuranceBets, s.InsuranceWins)
	}
	return b.String()
}
