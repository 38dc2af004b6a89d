package game

import (
	rand "math/rand/v2"

	"github.com/ProhibitedTV/AIPoker/internal/randutil"
)

// Street represents the stage of a round
type Street int

const (
	PreFlop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	switch s {
	case PreFlop:
		return "Pre-Flop"
	case Flop:
		return "Flop"
	case Turn:
		return "Turn"
	case River:
		return "River"
	case Showdown:
		return "Showdown"
	default:
		return "Unknown"
	}
}

// boardSize is the number of community cards present once s has been dealt
func (s Street) boardSize() int {
	return [...]int{0, 3, 4, 5, 5}[s]
}

// ActionKind is the decision a player makes on a street
type ActionKind int

const (
	Fold ActionKind = iota
	Check
	Bet
	Raise
)

func (k ActionKind) String() string {
	switch k {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Bet:
		return "bet"
	case Raise:
		return "raise"
	default:
		return "invalid"
	}
}

// Valid reports whether k is one of the four supported actions
func (k ActionKind) Valid() bool {
	return k >= Fold && k <= Raise
}

// Action is a sized decision. Amount is zero for Fold and Check.
type Action struct {
	Kind   ActionKind
	Amount int
}

// Bet sizing bounds
const (
	minBet       = 50
	betSpread    = 200
	raiseCushion = 100
)

// sizeAction turns a decision into a concrete action for a player holding
// chips when the highest bet on the street is streetBet. Anything outside
// the four known kinds is treated as a fold.
func sizeAction(rng *rand.Rand, kind ActionKind, chips, streetBet int) Action {
	switch kind {
	case Check:
		return Action{Kind: Check}
	case Bet:
		return Action{Kind: Bet, Amount: betAmount(rng, chips, streetBet)}
	case Raise:
		return Action{Kind: Raise, Amount: raiseAmount(rng, chips, streetBet)}
	default:
		return Action{Kind: Fold}
	}
}

// betAmount is uniform in [max(streetBet,50), min(chips, streetBet+200)],
// or all-in when that range is empty.
func betAmount(rng *rand.Rand, chips, streetBet int) int {
	lo := max(streetBet, minBet)
	hi := min(chips, streetBet+betSpread)
	if hi < lo {
		return chips
	}
	return randutil.Between(rng, lo, hi)
}

// raiseAmount is uniform in [2*streetBet, min(chips, 3*streetBet+100)],
// or all-in when the player cannot cover twice the street bet.
func raiseAmount(rng *rand.Rand, chips, streetBet int) int {
	if chips <= streetBet*2 {
		return chips
	}
	lo := streetBet * 2
	hi := min(chips, streetBet*3+raiseCushion)
	if hi < lo {
		return chips
	}
	return randutil.Between(rng, lo, hi)
}
