package game

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/ProhibitedTV/AIPoker/internal/deck"
	"github.com/ProhibitedTV/AIPoker/internal/evaluator"
	"github.com/ProhibitedTV/AIPoker/internal/randutil"
)

// scriptedDecider replays actions in call order, then checks forever.
type scriptedDecider struct {
	mu      sync.Mutex
	actions []ActionKind
	calls   int
}

func script(actions ...ActionKind) *scriptedDecider {
	return &scriptedDecider{actions: actions}
}

func (s *scriptedDecider) Decide(context.Context, []deck.Card, []deck.Card) (ActionKind, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.calls++ }()
	if s.calls < len(s.actions) {
		return s.actions[s.calls], nil
	}
	return Check, nil
}

func (s *scriptedDecider) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// cardDecider acts purely on the cards it is shown so its choices do not
// depend on call order.
var cardDecider = DeciderFunc(func(_ context.Context, hole, community []deck.Card) (ActionKind, error) {
	if len(community) == 0 {
		switch {
		case hole[0].Rank == hole[1].Rank:
			return Raise, nil
		case hole[0].Rank >= deck.Queen || hole[1].Rank >= deck.Queen:
			return Bet, nil
		case hole[0].Suit == hole[1].Suit:
			return Check, nil
		default:
			return Fold, nil
		}
	}
	res, err := evaluator.Evaluate(hole, community)
	if err != nil {
		return Fold, err
	}
	switch {
	case res.Category >= evaluator.TwoPair:
		return Raise, nil
	case res.Category == evaluator.OnePair:
		return Bet, nil
	default:
		return Check, nil
	}
})

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func names(n int) []string {
	all := []string{"Alice", "Bob", "Carol", "Dave", "Erin", "Frank"}
	return all[:n]
}

func newTestEngine(t *testing.T, players int, decider Decider, opts ...EngineOption) *Engine {
	t.Helper()
	opts = append([]EngineOption{WithLogger(testLogger())}, opts...)
	return NewEngine(randutil.New(42), names(players), decider, opts...)
}

// playRound advances through one whole round and returns the final state
func playRound(t *testing.T, e *Engine) RoundState {
	t.Helper()
	ctx := context.Background()
	for {
		state, err := e.Advance(ctx)
		require.NoError(t, err)
		if state.Street == Showdown {
			return state
		}
	}
}

func chipsOnTable(s RoundState) int {
	total := 0
	for _, p := range s.Players {
		total += p.Chips
	}
	return total
}
