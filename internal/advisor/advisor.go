// Package advisor provides decision collaborators for the round engine.
//
// Model-backed advisors send a short text prompt describing the player's
// cards to a Client and reduce the free-form reply to one of the four
// actions. Offline advisors (ChartAdvisor, RandomAdvisor) decide locally so
// a session can run without any model server.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ProhibitedTV/AIPoker/internal/deck"
	"github.com/ProhibitedTV/AIPoker/internal/game"
)

// DefaultAttempts is how many times a prompt is sent before giving up
const DefaultAttempts = 2

// Client sends a prompt to a model and returns its raw reply
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CardClient is a Client that can also send the cards themselves, for
// services that decide from cards rather than prompt text
type CardClient interface {
	Client
	CompleteCards(ctx context.Context, prompt string, hole, community []deck.Card) (string, error)
}

// ErrNoReply is wrapped by Decide when every attempt failed
var ErrNoReply = errors.New("advisor: no reply")

// Advisor turns model replies into actions. It implements game.Decider.
type Advisor struct {
	client   Client
	attempts int
	logger   *log.Logger
}

// Option configures an Advisor
type Option func(*Advisor)

// WithAttempts bounds the number of prompts sent per decision
func WithAttempts(n int) Option {
	return func(a *Advisor) {
		if n > 0 {
			a.attempts = n
		}
	}
}

// WithLogger sets the advisor's logger
func WithLogger(logger *log.Logger) Option {
	return func(a *Advisor) {
		a.logger = logger
	}
}

// New creates an advisor backed by client
func New(client Client, opts ...Option) *Advisor {
	a := &Advisor{
		client:   client,
		attempts: DefaultAttempts,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.WithPrefix("advisor")
	return a
}

// Decide prompts the model, retrying transport failures. A reply that
// names no action counts as Check; running out of attempts is an error,
// which the engine treats as Fold.
func (a *Advisor) Decide(ctx context.Context, hole, community []deck.Card) (game.ActionKind, error) {
	prompt := Prompt(hole, community)
	complete := a.client.Complete
	if cc, ok := a.client.(CardClient); ok {
		complete = func(ctx context.Context, prompt string) (string, error) {
			return cc.CompleteCards(ctx, prompt, hole, community)
		}
	}

	var lastErr error
	for attempt := 1; attempt <= a.attempts; attempt++ {
		reply, err := complete(ctx, prompt)
		if err == nil {
			action := Sanitize(reply)
			a.logger.Debug("Model replied", "reply", reply, "action", action)
			return action, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		a.logger.Warn("Model request failed", "attempt", attempt, "of", a.attempts, "error", err)
	}

	return game.Fold, fmt.Errorf("%w after %d attempts: %w", ErrNoReply, a.attempts, lastErr)
}

// Prompt describes the visible cards and asks for a single action word
func Prompt(hole, community []deck.Card) string {
	return fmt.Sprintf("Player's hand: %s. Community cards: %s. "+
		"Respond with only one action: fold, check, bet, or raise. No explanation.",
		deck.Join(hole), deck.Join(community))
}

var actionPattern = regexp.MustCompile(`(?i)\b(fold|check|bet|raise)\b`)

// Sanitize extracts the first action word from a model reply. Replies
// without one default to Check.
func Sanitize(reply string) game.ActionKind {
	match := actionPattern.FindString(reply)
	if action, ok := ParseAction(match); ok {
		return action
	}
	return game.Check
}

// ParseAction maps an action word to its kind
func ParseAction(s string) (game.ActionKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fold":
		return game.Fold, true
	case "check":
		return game.Check, true
	case "bet":
		return game.Bet, true
	case "raise":
		return game.Raise, true
	default:
		return game.Fold, false
	}
}
