package game

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/ProhibitedTV/AIPoker/internal/deck"
)

// Decider chooses an action for a player from the cards visible to them.
// Implementations may block on I/O; the engine bounds every call with a
// timeout and cancels ctx once it stops waiting.
type Decider interface {
	Decide(ctx context.Context, hole, community []deck.Card) (ActionKind, error)
}

// DeciderFunc adapts a function to Decider
type DeciderFunc func(ctx context.Context, hole, community []deck.Card) (ActionKind, error)

// Decide calls f
func (f DeciderFunc) Decide(ctx context.Context, hole, community []deck.Card) (ActionKind, error) {
	return f(ctx, hole, community)
}

type decisionReply struct {
	kind ActionKind
	err  error
}

// requestDecision asks the decider for p's action. It always returns a
// valid kind: errors, invalid replies, timeouts and cancellation all
// resolve to Fold.
func (e *Engine) requestDecision(ctx context.Context, p *Player, community []deck.Card) ActionKind {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hole := slices.Clone(p.HoleCards)
	board := slices.Clone(community)
	logger := e.logger.With("player", p.Name)

	timeoutFired := make(chan struct{})
	timer := e.clock.AfterFunc(e.cfg.decisionTimeout, func() {
		close(timeoutFired)
	})
	defer timer.Stop()

	replies := make(chan decisionReply, 1)
	go func() {
		kind, err := e.decider.Decide(ctx, hole, board)
		replies <- decisionReply{kind: kind, err: err}
	}()

	select {
	case r := <-replies:
		if r.err != nil {
			logger.Warn("Decision failed, folding", "error", r.err)
			return Fold
		}
		if !r.kind.Valid() {
			logger.Warn("Invalid decision, folding", "kind", int(r.kind))
			return Fold
		}
		logger.Debug("Decision received", "action", r.kind)
		return r.kind

	case <-timeoutFired:
		logger.Warn("Decision timeout, folding", "timeout", e.cfg.decisionTimeout)
		return Fold

	case <-ctx.Done():
		logger.Warn("Decision cancelled, folding", "error", ctx.Err())
		return Fold
	}
}

// prefetchDecisions requests decisions for every active player concurrently.
// The result is indexed by seat; inactive seats hold Fold and are never read.
func (e *Engine) prefetchDecisions(ctx context.Context, community []deck.Card) []ActionKind {
	kinds := make([]ActionKind, len(e.players))

	var g errgroup.Group
	if e.cfg.maxParallel > 0 {
		g.SetLimit(e.cfg.maxParallel)
	}
	for i, p := range e.players {
		if !p.Active {
			continue
		}
		g.Go(func() error {
			kinds[i] = e.requestDecision(ctx, p, community)
			return nil
		})
	}
	_ = g.Wait() // requestDecision never fails

	return kinds
}
