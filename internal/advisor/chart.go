package advisor

import (
	"context"

	"github.com/ProhibitedTV/AIPoker/internal/deck"
	"github.com/ProhibitedTV/AIPoker/internal/evaluator"
	"github.com/ProhibitedTV/AIPoker/internal/game"
)

// Pre-flop percentile thresholds
const (
	chartRaise = 0.85
	chartBet   = 0.60
	chartCheck = 0.25
)

// ChartAdvisor plays a starting-hand chart pre-flop and made-hand strength
// afterwards
type ChartAdvisor struct{}

// NewChartAdvisor creates a new ChartAdvisor
func NewChartAdvisor() *ChartAdvisor {
	return &ChartAdvisor{}
}

func (ChartAdvisor) Decide(_ context.Context, hole, community []deck.Card) (game.ActionKind, error) {
	if len(community) == 0 {
		switch pct := deck.Percentile(hole); {
		case pct >= chartRaise:
			return game.Raise, nil
		case pct >= chartBet:
			return game.Bet, nil
		case pct >= chartCheck:
			return game.Check, nil
		default:
			return game.Fold, nil
		}
	}

	res, err := evaluator.Evaluate(hole, community)
	if err != nil {
		return game.Fold, err
	}
	switch {
	case res.Category >= evaluator.ThreeOfAKind:
		return game.Raise, nil
	case res.Category >= evaluator.OnePair:
		return game.Bet, nil
	default:
		return game.Check, nil
	}
}
