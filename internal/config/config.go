// Package config loads simulator settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Advisor kinds
const (
	AdvisorChart     = "chart"
	AdvisorRandom    = "random"
	AdvisorOllama    = "ollama"
	AdvisorWebSocket = "websocket"
)

// Defaults
const (
	DefaultPlayers         = 4
	DefaultStartingChips   = 1000
	DefaultRounds          = 10
	DefaultDecisionTimeout = "30s"
	DefaultLogLevel        = "info"
	DefaultAttempts        = 2
	DefaultOllamaURL       = "http://localhost:11434"
	MaxPlayers             = 10
)

// Config represents the complete simulator configuration
type Config struct {
	Game     *GameSettings   `hcl:"game,block"`
	Advisors []AdvisorConfig `hcl:"advisor,block"`
}

// GameSettings contains table and session settings
type GameSettings struct {
	Players           int      `hcl:"players,optional"`
	PlayerNames       []string `hcl:"player_names,optional"`
	StartingChips     int      `hcl:"starting_chips,optional"`
	Rounds            int      `hcl:"rounds,optional"`
	Seed              int64    `hcl:"seed,optional"`
	DecisionTimeout   string   `hcl:"decision_timeout,optional"`
	ParallelDecisions bool     `hcl:"parallel_decisions,optional"`
	LogLevel          string   `hcl:"log_level,optional"`
}

// AdvisorConfig selects and configures the decision collaborator
type AdvisorConfig struct {
	Kind     string `hcl:"kind,label"`
	URL      string `hcl:"url,optional"`
	Model    string `hcl:"model,optional"`
	Attempts int    `hcl:"attempts,optional"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

// applyDefaults fills in missing values
func (c *Config) applyDefaults() {
	if c.Game == nil {
		c.Game = &GameSettings{}
	}
	g := c.Game
	if g.Players == 0 {
		if len(g.PlayerNames) > 0 {
			g.Players = len(g.PlayerNames)
		} else {
			g.Players = DefaultPlayers
		}
	}
	if g.StartingChips == 0 {
		g.StartingChips = DefaultStartingChips
	}
	if g.Rounds == 0 {
		g.Rounds = DefaultRounds
	}
	if g.DecisionTimeout == "" {
		g.DecisionTimeout = DefaultDecisionTimeout
	}
	if g.LogLevel == "" {
		g.LogLevel = DefaultLogLevel
	}

	for i := range c.Advisors {
		a := &c.Advisors[i]
		if a.Attempts == 0 {
			a.Attempts = DefaultAttempts
		}
		if a.Kind == AdvisorOllama && a.URL == "" {
			a.URL = DefaultOllamaURL
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	g := c.Game
	if g.Players < 2 || g.Players > MaxPlayers {
		return fmt.Errorf("players must be between 2 and %d, got %d", MaxPlayers, g.Players)
	}
	if len(g.PlayerNames) > 0 && len(g.PlayerNames) != g.Players {
		return fmt.Errorf("player_names has %d entries for %d players", len(g.PlayerNames), g.Players)
	}
	seen := map[string]bool{}
	for _, name := range g.PlayerNames {
		if name == "" {
			return fmt.Errorf("player names must not be empty")
		}
		if seen[name] {
			return fmt.Errorf("duplicate player name %q", name)
		}
		seen[name] = true
	}
	if g.StartingChips < 0 {
		return fmt.Errorf("starting chips must not be negative, got %d", g.StartingChips)
	}
	if g.Rounds < 1 {
		return fmt.Errorf("rounds must be positive, got %d", g.Rounds)
	}
	timeout, err := time.ParseDuration(g.DecisionTimeout)
	if err != nil {
		return fmt.Errorf("invalid decision_timeout: %w", err)
	}
	if timeout <= 0 {
		return fmt.Errorf("decision_timeout must be positive, got %s", g.DecisionTimeout)
	}

	if len(c.Advisors) > 1 {
		return fmt.Errorf("at most one advisor may be configured, got %d", len(c.Advisors))
	}
	for _, a := range c.Advisors {
		switch a.Kind {
		case AdvisorChart, AdvisorRandom, AdvisorOllama:
		case AdvisorWebSocket:
			if a.URL == "" {
				return fmt.Errorf("advisor %s: url is required", a.Kind)
			}
		default:
			return fmt.Errorf("invalid advisor kind %q", a.Kind)
		}
		if a.Attempts < 1 {
			return fmt.Errorf("advisor %s: attempts must be at least 1", a.Kind)
		}
	}

	return nil
}

// Advisor returns the configured advisor, or the chart advisor when none is set
func (c *Config) Advisor() AdvisorConfig {
	if len(c.Advisors) > 0 {
		return c.Advisors[0]
	}
	return AdvisorConfig{Kind: AdvisorChart, Attempts: DefaultAttempts}
}

// Timeout returns the parsed decision timeout. Call Validate first.
func (g *GameSettings) Timeout() time.Duration {
	d, err := time.ParseDuration(g.DecisionTimeout)
	if err != nil {
		return 0
	}
	return d
}

// Names returns the configured player names, or "AI Player N" for each seat
func (g *GameSettings) Names() []string {
	if len(g.PlayerNames) > 0 {
		return g.PlayerNames
	}
	names := make([]string, g.Players)
	for i := range names {
		names[i] = fmt.Sprintf("AI Player %d", i+1)
	}
	return names
}
