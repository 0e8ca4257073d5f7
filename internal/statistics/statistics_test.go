package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordRound(t *testing.T) {
	var s Statistics
	s.RecordRound(RoundResult{NetChips: 10, Hands: 1})
	s.RecordRound(RoundResult{NetChips: -10, Hands: 1})
	s.RecordRound(RoundResult{NetChips: 20, Hands: 2})

	assert.Equal(t, 3, s.Rounds)
	assert.Equal(t, 4, s.Hands)
	assert.Equal(t, 20, s.NetChips)
	assert.Equal(t, 20, s.MaxRoundWin)
	assert.Equal(t, 10, s.MaxRoundLoss)
}

func TestMeanAndVariance(t *testing.T) {
	var s Statistics
	for _, net := range []int{10, -10, 10, -10} {
		s.RecordRound(RoundResult{NetChips: net, Hands: 1})
	}
	assert.InDelta(t, 0.0, s.Mean(), 1e-9)
	// Sample variance of {10,-10,10,-10} is 400/3.
	assert.InDelta(t, 400.0/3.0, s.Variance(), 1e-9)
	assert.InDelta(t, math.Sqrt(400.0/3.0), s.StdDev(), 1e-9)
}

func TestVarianceNeedsTwoRounds(t *testing.T) {
	var s Statistics
	assert.Zero(t, s.Variance())
	s.RecordRound(RoundResult{NetChips: 10, Hands: 1})
	assert.Zero(t, s.Variance())
}

func TestWinRate(t *testing.T) {
	var s Statistics
	assert.Zero(t, s.WinRate())
	s.RecordRound(RoundResult{NetChips: 0, Hands: 4})
	s.RecordOutcomes(2, 1, 1)
	assert.InDelta(t, 0.5, s.WinRate(), 1e-9)
	assert.InDelta(t, 0.25, s.PushRate(), 1e-9)
}

func TestMerge(t *testing.T) {
	var a, b Statistics
	a.RecordRound(RoundResult{NetChips: 10, Hands: 1})
	a.RecordOutcomes(1, 0, 0)
	b.RecordRound(RoundResult{NetChips: -30, Hands: 2})
	b.RecordOutcomes(0, 2, 0)

	a.Merge(&b)
	assert.Equal(t, 2, a.Rounds)
	assert.Equal(t, 3, a.Hands)
	assert.Equal(t, -20, a.NetChips)
	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 2, a.Losses)
	assert.Equal(t, 30, a.MaxRoundLoss)
}

func TestSummaryContainsHeadlines(t *testing.T) {
	var s Statistics
	s.RecordRound(RoundResult{NetChips: 15, Hands: 1})
	s.RecordOutcomes(1, 0, 0)
	out := s.Summary()
	assert.Contains(t, out, "Rounds:")
	assert.Contains(t, out, "Win rate:")
	assert.Contains(t, out, "+15")
}
