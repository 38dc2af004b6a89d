package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProhibitedTV/AIPoker/internal/game"
)

func TestStatisticsEmpty(t *testing.T) {
	stats := &Statistics{}

	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.StdError())
	assert.Zero(t, stats.Median())
	assert.Zero(t, stats.Percentile(0.9))
	assert.Error(t, stats.Validate(), "no rounds recorded")
}

func TestStatisticsMoments(t *testing.T) {
	stats := &Statistics{}
	for _, net := range []int{100, -50, -50, 200, 0} {
		stats.Add(RoundOutcome{Net: net})
	}

	assert.Equal(t, 5, stats.Rounds)
	assert.InDelta(t, 40.0, stats.Mean(), 1e-9)
	// Sample variance of {100,-50,-50,200,0}
	assert.InDelta(t, 11750.0, stats.Variance(), 1e-9)
	assert.InDelta(t, math.Sqrt(11750), stats.StdDev(), 1e-9)
	assert.InDelta(t, math.Sqrt(11750)/math.Sqrt(5), stats.StdError(), 1e-9)

	lo, hi := stats.ConfidenceInterval95()
	assert.Less(t, lo, stats.Mean())
	assert.Greater(t, hi, stats.Mean())

	assert.InDelta(t, 0.0, stats.Median(), 1e-9)
	assert.InDelta(t, -50.0, stats.Percentile(0), 1e-9)
	assert.InDelta(t, 200.0, stats.Percentile(1), 1e-9)
	assert.InDelta(t, 100.0, stats.Percentile(0.75), 1e-9)
}

func TestStatisticsWinBuckets(t *testing.T) {
	stats := &Statistics{}
	stats.Add(RoundOutcome{Net: 300, Won: true, Contested: true, Pot: 600})
	stats.Add(RoundOutcome{Net: 80, Won: true, Pot: 160})
	stats.Add(RoundOutcome{Net: -120, Contested: true, Pot: 900})
	stats.Add(RoundOutcome{Net: -40, Pot: 40})

	assert.Equal(t, 1, stats.ShowdownWins)
	assert.Equal(t, 1, stats.UncontestedWins)
	assert.Equal(t, 2, stats.Wins())
	assert.InDelta(t, 180.0, stats.ShowdownNet, 1e-9)
	assert.InDelta(t, 40.0, stats.UncontestedNet, 1e-9)
	assert.Equal(t, 900, stats.MaxPot)
	assert.True(t, stats.IsLedgerBalanced())
	require.NoError(t, stats.Validate())
}

func TestStatisticsValidateCatchesCorruption(t *testing.T) {
	stats := &Statistics{}
	stats.Add(RoundOutcome{Net: 10, Won: true})
	stats.AllNet += 5
	assert.ErrorContains(t, stats.Validate(), "ledger mismatch")

	stats = &Statistics{}
	stats.Add(RoundOutcome{Net: 10, Won: true})
	stats.Values = nil
	assert.ErrorContains(t, stats.Validate(), "values array length")
}

func TestFromResults(t *testing.T) {
	results := []game.RoundResult{
		{Number: 1, Winner: 0, Contested: true, Pot: 200, Net: []int{100, -100}},
		{Number: 2, Winner: 1, Pot: 50, Net: []int{-50, 50}},
		{Number: 3, Winner: -1, Pot: 0, Net: []int{0, 0}},
	}

	alice := FromResults(results, 0)
	assert.Equal(t, 3, alice.Rounds)
	assert.Equal(t, 1, alice.ShowdownWins)
	assert.Zero(t, alice.UncontestedWins)
	assert.InDelta(t, 50.0/3, alice.Mean(), 1e-9)

	bob := FromResults(results, 1)
	assert.Equal(t, 1, bob.UncontestedWins)
	assert.InDelta(t, -50.0/3, bob.Mean(), 1e-9)

	assert.Zero(t, FromResults(results, 5).Rounds)
}
