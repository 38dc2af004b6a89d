package game

import (
	"slices"

	"github.com/google/uuid"

	"github.com/ProhibitedTV/AIPoker/internal/deck"
	"github.com/ProhibitedTV/AIPoker/internal/evaluator"
)

// Showing is one player's evaluated hand at showdown
type Showing struct {
	Seat   int
	Name   string
	Hole   []deck.Card
	Result evaluator.Result
}

// RoundResult records how a round ended
type RoundResult struct {
	RoundID uuid.UUID
	Number  int
	Board   []deck.Card
	Pot     int

	// Winner is the winning seat, or -1 when nobody was left in the round.
	Winner     int
	WinnerName string

	// Contested is true when the winner was decided by hand evaluation.
	Contested bool
	Showings  []Showing

	// Net is each seat's chip change over the round.
	Net []int
}

// HasWinner reports whether the pot went to a player
func (r RoundResult) HasWinner() bool {
	return r.Winner >= 0
}

// WinningHand returns the winner's evaluation when the round was contested
func (r RoundResult) WinningHand() (evaluator.Result, bool) {
	for _, s := range r.Showings {
		if s.Seat == r.Winner {
			return s.Result, true
		}
	}
	return evaluator.Result{}, false
}

func (r RoundResult) clone() RoundResult {
	c := r
	c.Board = slices.Clone(r.Board)
	c.Net = slices.Clone(r.Net)
	c.Showings = slices.Clone(r.Showings)
	for i := range c.Showings {
		c.Showings[i].Hole = slices.Clone(r.Showings[i].Hole)
	}
	return c
}

// Standing summarises one player's session so far
type Standing struct {
	Seat    int
	Name    string
	Chips   int
	Wins    int
	Rounds  int
	WinRate float64
}

// standings builds per-seat standings from finished rounds
func standings(players []*Player, results []RoundResult) []Standing {
	out := make([]Standing, len(players))
	for i, p := range players {
		out[i] = Standing{Seat: i, Name: p.Name, Chips: p.Chips, Rounds: len(results)}
	}
	for _, r := range results {
		if r.HasWinner() {
			out[r.Winner].Wins++
		}
	}
	for i := range out {
		if out[i].Rounds > 0 {
			out[i].WinRate = float64(out[i].Wins) / float64(out[i].Rounds)
		}
	}
	return out
}
