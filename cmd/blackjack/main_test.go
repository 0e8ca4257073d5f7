package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charmbracelet/log"
)

func TestSimulateWorkerPlaysRequestedRounds(t *testing.T) {
	cmd := &SimulateCmd{Strategy: "basic", Players: 2, Decks: 1}

	stats, err := cmd.simulate(200, 1)
	require.NoError(t, err)

	assert.Equal(t, 200, stats.Rounds)
	// Every round settles at least one hand; broke seats sit out.
	assert.GreaterOrEqual(t, stats.Hands, 200)
	assert.Equal(t, stats.Hands, stats.Wins+stats.Losses+stats.Pushes)
}

func TestSimulateWorkerIsDeterministic(t *testing.T) {
	cmd := &SimulateCmd{Strategy: "dealer", Players: 1, Decks: 1}

	first, err := cmd.simulate(100, 42)
	require.NoError(t, err)
	second, err := cmd.simulate(100, 42)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSimulateRejectsUnknownStrategy(t *testing.T) {
	cmd := &SimulateCmd{Strategy: "martingale", Players: 1, Rounds: 10}
	assert.Error(t, cmd.Run())
}

func TestSetupLogger(t *testing.T) {
	assert.Equal(t, log.InfoLevel, setupLogger("info", false).GetLevel())
	assert.Equal(t, log.DebugLevel, setupLogger("info", true).GetLevel())
	// Unknown level names fall back to warn.
	assert.Equal(t, log.WarnLevel, setupLogger("chatty", false).GetLevel())
}