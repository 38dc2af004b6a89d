// Package statistics summarises a player's results over a session.
package statistics

import (
	"fmt"
	"math"
	"slices"

	"github.com/ProhibitedTV/AIPoker/internal/game"
)

// RoundOutcome is one player's result for a single round
type RoundOutcome struct {
	Net       int  // Chips won or lost this round
	Won       bool // Player took the pot
	Contested bool // Round went to a hand comparison
	Pot       int  // Final pot size in chips
}

// Statistics tracks one player's results across rounds
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Store all values for median/percentile calculation

	ShowdownWins    int     // Pots won by hand comparison
	UncontestedWins int     // Pots won after everyone else folded
	ShowdownNet     float64 // Net chips from contested rounds (wins and losses)
	UncontestedNet  float64 // Net chips from uncontested rounds
	AllNet          float64 // Total net for ledger check

	MaxPot int // Largest pot observed
}

// FromResults builds statistics for seat from finished rounds
func FromResults(results []game.RoundResult, seat int) *Statistics {
	s := &Statistics{}
	for _, r := range results {
		if seat < 0 || seat >= len(r.Net) {
			continue
		}
		s.Add(RoundOutcome{
			Net:       r.Net[seat],
			Won:       r.Winner == seat,
			Contested: r.Contested,
			Pot:       r.Pot,
		})
	}
	return s
}

// Add incorporates a new round outcome
func (s *Statistics) Add(o RoundOutcome) {
	net := float64(o.Net)
	s.Rounds++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)

	if o.Won {
		if o.Contested {
			s.ShowdownWins++
		} else {
			s.UncontestedWins++
		}
	}

	if o.Contested {
		s.ShowdownNet += net
	} else {
		s.UncontestedNet += net
	}
	s.AllNet += net

	s.MaxPot = max(s.MaxPot, o.Pot)
}

// Mean returns the average net chips per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(max(s.Variance(), 0))
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Wins returns all pots won
func (s *Statistics) Wins() int {
	return s.ShowdownWins + s.UncontestedWins
}

// IsLedgerBalanced checks if the accounting is consistent
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllNet-s.ShowdownNet-s.UncontestedNet) <= 1e-6
}

// Validate performs consistency checks on the collected data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllNet=%.2f, ShowdownNet=%.2f, UncontestedNet=%.2f",
			s.AllNet, s.ShowdownNet, s.UncontestedNet)
	}
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}
	if s.Wins() > s.Rounds {
		return fmt.Errorf("total wins (%d) exceeds total rounds (%d)", s.Wins(), s.Rounds)
	}
	return nil
}
