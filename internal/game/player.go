package game

import (
	"slices"

	"github.com/ProhibitedTV/AIPoker/internal/deck"
)

// Player is the per-seat record. Identity and chips persist across rounds;
// hole cards, current bet and the active flag are reset every round.
type Player struct {
	ID         int
	Name       string
	Chips      int
	HoleCards  []deck.Card
	CurrentBet int
	Active     bool

	// Committed is the total this player has put in the pot this round.
	Committed int
}

// NewPlayer creates an active player with the given starting chips
func NewPlayer(id int, name string, chips int) *Player {
	return &Player{ID: id, Name: name, Chips: chips, Active: true}
}

// ResetForNextRound clears round state. Chips and identity are untouched.
func (p *Player) ResetForNextRound() {
	p.HoleCards = nil
	p.CurrentBet = 0
	p.Committed = 0
	p.Active = true
}

// commit moves amount from the player's stack into the pot. Callers size
// amounts so they never exceed the stack.
func (p *Player) commit(amount int) {
	p.Chips -= amount
	p.CurrentBet = amount
	p.Committed += amount
}

// IsAllIn reports whether an active player has no chips behind
func (p *Player) IsAllIn() bool {
	return p.Active && p.Chips == 0
}

// clone returns a deep copy safe to hand to callers
func (p *Player) clone() Player {
	c := *p
	c.HoleCards = slices.Clone(p.HoleCards)
	return c
}
