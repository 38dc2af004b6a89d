package game

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// DefaultDecisionTimeout bounds a single decision when no timeout is configured
const DefaultDecisionTimeout = 30 * time.Second

// EngineOption configures an Engine during creation.
type EngineOption func(*engineConfig)

// engineConfig holds all configuration for creating an engine.
type engineConfig struct {
	startChips      int   // Default: 1000
	chipCounts      []int // If nil, uses uniform starting chips
	clock           quartz.Clock
	logger          *log.Logger
	events          EventLog
	decisionTimeout time.Duration
	parallel        bool
	maxParallel     int
}

// WithStartingChips sets the same starting stack for every player
func WithStartingChips(chips int) EngineOption {
	return func(c *engineConfig) {
		c.startChips = chips
	}
}

// WithChips sets individual starting stacks, one per player
func WithChips(chips []int) EngineOption {
	return func(c *engineConfig) {
		c.chipCounts = chips
	}
}

// WithClock sets the clock used for decision timeouts
func WithClock(clock quartz.Clock) EngineOption {
	return func(c *engineConfig) {
		c.clock = clock
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger *log.Logger) EngineOption {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithEventLog sets the sink for human-readable game events
func WithEventLog(events EventLog) EngineOption {
	return func(c *engineConfig) {
		c.events = events
	}
}

// WithDecisionTimeout bounds each decision request. Non-positive values
// select DefaultDecisionTimeout.
func WithDecisionTimeout(d time.Duration) EngineOption {
	return func(c *engineConfig) {
		c.decisionTimeout = d
	}
}

// WithParallelDecisions requests every active player's decision for a
// street concurrently, at most limit at a time (0 means no limit). Actions
// are still applied in table order.
//
// Every player active when the street starts is asked, including players
// a sequential pass would skip once only one player remains active. Their
// decisions are discarded, so the applied actions and the event log match
// a sequential run; only the number of decider calls differs.
func WithParallelDecisions(limit int) EngineOption {
	return func(c *engineConfig) {
		c.parallel = true
		c.maxParallel = limit
	}
}

func (c *engineConfig) applyDefaults() {
	if c.clock == nil {
		c.clock = quartz.NewReal()
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.events == nil {
		c.events = discardLog{}
	}
	if c.decisionTimeout <= 0 {
		c.decisionTimeout = DefaultDecisionTimeout
	}
}
