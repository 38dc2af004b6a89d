package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ProhibitedTV/AIPoker/internal/advisor"
	"github.com/ProhibitedTV/AIPoker/internal/config"
	"github.com/ProhibitedTV/AIPoker/internal/game"
	"github.com/ProhibitedTV/AIPoker/internal/randutil"
)

// ServeCmd exposes a local advisor over WebSocket so other simulator
// processes can use it with --advisor websocket
type ServeCmd struct {
	Addr    string `default:":8080" help:"Listen address"`
	Advisor string `enum:"chart,random,ollama" default:"chart" help:"Advisor answering requests (chart|random|ollama)"`
	URL     string `name:"url" help:"Ollama server URL"`
	Model   string `help:"Ollama model (empty to auto-select)"`
	Seed    int64  `help:"Seed for the random advisor (0 for random)"`
}

func (c *ServeCmd) Run(globals *Globals) error {
	applyColor(globals)

	level := log.InfoLevel
	if globals.LogLevel != "" {
		var err error
		if level, err = log.ParseLevel(globals.LogLevel); err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "aipoker",
	})

	adv := config.AdvisorConfig{Kind: c.Advisor, URL: c.URL, Model: c.Model, Attempts: config.DefaultAttempts}
	if adv.Kind == config.AdvisorOllama && adv.URL == "" {
		adv.URL = config.DefaultOllamaURL
	}
	decider, _, err := buildAdvisor(adv, randutil.Seed(c.Seed), logger)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()
	return serveDecisions(ctx, c.Addr, decider, logger)
}

// serveDecisions runs the decision server until ctx ends
func serveDecisions(ctx context.Context, addr string, decider game.Decider, logger *log.Logger) error {
	srv := advisor.NewServer(decider, logger)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Serving decisions", "addr", addr)

	serverErr := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down decision server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Close()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}
