package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"

	"github.com/ProhibitedTV/AIPoker/internal/advisor"
	"github.com/ProhibitedTV/AIPoker/internal/config"
	"github.com/ProhibitedTV/AIPoker/internal/game"
	"github.com/ProhibitedTV/AIPoker/internal/randutil"
)

// SessionFlags override values from the configuration file
type SessionFlags struct {
	Players  int    `short:"p" help:"Number of players (2-10)"`
	Chips    int    `help:"Starting chips per player"`
	Rounds   int    `short:"n" help:"Rounds to play"`
	Seed     int64  `help:"Seed for deterministic sessions (0 for random)"`
	Timeout  string `help:"Decision timeout, e.g. 30s"`
	Parallel bool   `help:"Request decisions for a street concurrently"`
	Advisor  string `enum:",chart,random,ollama,websocket" default:"" help:"Decision advisor (chart|random|ollama|websocket)"`
	URL      string `name:"url" help:"Advisor server URL"`
	Model    string `help:"Ollama model (empty to auto-select)"`
}

// apply merges flags over cfg
func (f *SessionFlags) apply(cfg *config.Config) {
	g := cfg.Game
	if f.Players != 0 {
		g.Players = f.Players
		if len(g.PlayerNames) != f.Players {
			g.PlayerNames = nil
		}
	}
	if f.Chips != 0 {
		g.StartingChips = f.Chips
	}
	if f.Rounds != 0 {
		g.Rounds = f.Rounds
	}
	if f.Seed != 0 {
		g.Seed = f.Seed
	}
	if f.Timeout != "" {
		g.DecisionTimeout = f.Timeout
	}
	if f.Parallel {
		g.ParallelDecisions = true
	}

	if f.Advisor == "" && f.URL == "" && f.Model == "" {
		return
	}
	adv := cfg.Advisor()
	if f.Advisor != "" && f.Advisor != adv.Kind {
		adv = config.AdvisorConfig{Kind: f.Advisor, Attempts: config.DefaultAttempts}
	}
	if f.URL != "" {
		adv.URL = f.URL
	}
	if f.Model != "" {
		adv.Model = f.Model
	}
	if adv.Kind == config.AdvisorOllama && adv.URL == "" {
		adv.URL = config.DefaultOllamaURL
	}
	cfg.Advisors = []config.AdvisorConfig{adv}
}

// session is everything a driver needs to run rounds
type session struct {
	cfg    *config.Config
	seed   int64
	logger *log.Logger
	engine *game.Engine
	events *game.Transcript
	closer io.Closer
}

func (s *session) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// newSession loads configuration, applies flag overrides and builds the
// engine and its advisor. logOut receives diagnostic logging; live, when
// set, sees every event line as it happens.
func newSession(globals *Globals, flags *SessionFlags, logOut io.Writer, live game.EventLog) (*session, error) {
	applyColor(globals)

	cfg, err := config.Load(globals.Config)
	if err != nil {
		return nil, err
	}
	flags.apply(cfg)
	if globals.LogLevel != "" {
		cfg.Game.LogLevel = globals.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := log.ParseLevel(cfg.Game.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger := log.NewWithOptions(logOut, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "aipoker",
	})

	seed := randutil.Seed(cfg.Game.Seed)
	logger.Info("Starting session", "seed", seed, "players", cfg.Game.Players, "advisor", cfg.Advisor().Kind)

	decider, closer, err := buildAdvisor(cfg.Advisor(), seed, logger)
	if err != nil {
		return nil, err
	}

	events := &game.Transcript{}
	opts := []game.EngineOption{
		game.WithStartingChips(cfg.Game.StartingChips),
		game.WithLogger(logger),
		game.WithEventLog(game.MultiLog(events, live)),
		game.WithDecisionTimeout(cfg.Game.Timeout()),
	}
	if cfg.Game.ParallelDecisions {
		opts = append(opts, game.WithParallelDecisions(0))
	}

	engine := game.NewEngine(randutil.New(seed), cfg.Game.Names(), decider, opts...)

	return &session{
		cfg:    cfg,
		seed:   seed,
		logger: logger,
		engine: engine,
		events: events,
		closer: closer,
	}, nil
}

// applyColor switches lipgloss and pterm to plain output for --no-color
func applyColor(globals *Globals) {
	if globals.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
		pterm.DisableColor()
	}
}

// buildAdvisor creates the configured decision collaborator
func buildAdvisor(cfg config.AdvisorConfig, seed int64, logger *log.Logger) (game.Decider, io.Closer, error) {
	switch cfg.Kind {
	case config.AdvisorRandom:
		// Separate stream so advisor draws do not perturb the deck.
		return advisor.NewRandomAdvisor(randutil.New(seed + 1)), nil, nil
	case config.AdvisorOllama:
		client := advisor.NewOllamaClient(cfg.URL, cfg.Model, logger)
		return advisor.New(client, advisor.WithAttempts(cfg.Attempts), advisor.WithLogger(logger)), nil, nil
	case config.AdvisorWebSocket:
		client, err := advisor.NewWSClient(cfg.URL, logger)
		if err != nil {
			return nil, nil, err
		}
		return advisor.New(client, advisor.WithAttempts(cfg.Attempts), advisor.WithLogger(logger)), client, nil
	default:
		return advisor.NewChartAdvisor(), nil, nil
	}
}

// signalContext creates a context that is cancelled on interrupt signals
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// elapsed formats a duration for summaries
func elapsed(start time.Time) string {
	return time.Since(start).Round(time.Millisecond).String()
}
