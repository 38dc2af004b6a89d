package game

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProhibitedTV/AIPoker/internal/deck"
	"github.com/ProhibitedTV/AIPoker/internal/randutil"
)

func TestDecisionTimeoutFolds(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mockClock := quartz.NewMock(t)
	called := make(chan struct{}, 4)
	stalled := DeciderFunc(func(ctx context.Context, _, _ []deck.Card) (ActionKind, error) {
		called <- struct{}{}
		<-ctx.Done()
		return Raise, nil
	})

	e := newTestEngine(t, 2, stalled, WithClock(mockClock), WithDecisionTimeout(time.Second))

	type advanced struct {
		state RoundState
		err   error
	}
	done := make(chan advanced, 1)
	go func() {
		state, err := e.Advance(context.Background())
		done <- advanced{state, err}
	}()

	select {
	case <-called:
	case <-ctx.Done():
		t.Fatal("decider was never asked")
	}

	// Advance mock clock to trigger the timeout instantly
	mockClock.Advance(time.Second).MustWait(ctx)

	var got advanced
	select {
	case got = <-done:
	case <-ctx.Done():
		t.Fatal("engine did not fall back after timeout")
	}

	require.NoError(t, got.err)
	assert.False(t, got.state.Players[0].Active, "timed out player folds")
	assert.True(t, got.state.Players[1].Active)
	assert.Zero(t, got.state.Pot)
	assert.Len(t, called, 0, "last player is not asked once alone")
}

func TestDecisionFailuresFold(t *testing.T) {
	tests := []struct {
		name    string
		decider Decider
	}{
		{
			name: "error",
			decider: DeciderFunc(func(context.Context, []deck.Card, []deck.Card) (ActionKind, error) {
				return Raise, errors.New("connection refused")
			}),
		},
		{
			name: "invalid action",
			decider: DeciderFunc(func(context.Context, []deck.Card, []deck.Card) (ActionKind, error) {
				return ActionKind(42), nil
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, 3, tt.decider)

			state, err := e.Advance(context.Background())
			require.NoError(t, err)

			assert.False(t, state.Players[0].Active)
			assert.False(t, state.Players[1].Active)
			assert.True(t, state.Players[2].Active, "last player standing is never asked")
		})
	}
}

func TestCancelledContextFolds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	blocking := DeciderFunc(func(ctx context.Context, _, _ []deck.Card) (ActionKind, error) {
		<-ctx.Done()
		return Check, ctx.Err()
	})
	e := newTestEngine(t, 2, blocking)

	state, err := e.Advance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, state.ActivePlayers())
}

func TestDeciderSeesCopies(t *testing.T) {
	mutating := DeciderFunc(func(_ context.Context, hole, _ []deck.Card) (ActionKind, error) {
		hole[0] = deck.NewCard(deck.Two, deck.Clubs)
		hole[1] = deck.NewCard(deck.Two, deck.Clubs)
		return Check, nil
	})
	e := newTestEngine(t, 2, mutating)

	state, err := e.Advance(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, state.Players[0].HoleCards[0], state.Players[0].HoleCards[1])
}

func TestParallelDecisionsApplyInTableOrder(t *testing.T) {
	// Later seats answer first so arrival order is the reverse of table order.
	slowFirst := DeciderFunc(func(ctx context.Context, hole, community []deck.Card) (ActionKind, error) {
		delay := time.Duration(hole[0].Rank+hole[1].Rank) * time.Millisecond
		select {
		case <-time.After(delay):
		case <-ctx.Done():
		}
		return cardDecider(ctx, hole, community)
	})

	run := func(opts ...EngineOption) []string {
		var tr Transcript
		opts = append(opts, WithLogger(testLogger()), WithEventLog(&tr))
		e := NewEngine(randutil.New(7), names(5), slowFirst, opts...)
		for range 4 {
			playRound(t, e)
		}
		return tr.Lines()
	}

	sequential := run()
	parallel := run(WithParallelDecisions(0))
	limited := run(WithParallelDecisions(2))

	assert.Equal(t, sequential, parallel)
	assert.Equal(t, sequential, limited)
}

func TestParallelDecisionsAskEveryStartingPlayer(t *testing.T) {
	run := func(opts ...EngineOption) ([]string, int32) {
		var calls atomic.Int32
		folder := DeciderFunc(func(context.Context, []deck.Card, []deck.Card) (ActionKind, error) {
			calls.Add(1)
			return Fold, nil
		})
		var tr Transcript
		e := newTestEngine(t, 4, folder, append(opts, WithEventLog(&tr))...)
		state := playRound(t, e)
		require.NotNil(t, state.Result)
		assert.Equal(t, 3, state.Result.Winner, "last seat wins uncontested")
		return tr.Lines(), calls.Load()
	}

	sequential, seqCalls := run()
	parallel, parCalls := run(WithParallelDecisions(0))

	assert.Equal(t, int32(3), seqCalls, "last seat skipped once alone")
	assert.Equal(t, int32(4), parCalls, "every player active at the start is asked")
	assert.Equal(t, sequential, parallel, "surplus decision is discarded")
	assert.NotContains(t, parallel, "Dave folds.")
}
