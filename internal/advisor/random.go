package advisor

import (
	"context"
	rand "math/rand/v2"
	"sync"

	"github.com/ProhibitedTV/AIPoker/internal/deck"
	"github.com/ProhibitedTV/AIPoker/internal/game"
)

var allActions = [...]game.ActionKind{game.Fold, game.Check, game.Bet, game.Raise}

// RandomAdvisor picks a uniform random action
type RandomAdvisor struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAdvisor creates a new RandomAdvisor instance
func NewRandomAdvisor(rng *rand.Rand) *RandomAdvisor {
	return &RandomAdvisor{rng: rng}
}

func (r *RandomAdvisor) Decide(context.Context, []deck.Card, []deck.Card) (game.ActionKind, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return allActions[r.rng.IntN(len(allActions))], nil
}
