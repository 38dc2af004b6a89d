package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ProhibitedTV/AIPoker/internal/tui"
)

type WatchCmd struct {
	SessionFlags

	Auto     bool          `help:"Start in autoplay mode"`
	Interval time.Duration `default:"750ms" help:"Delay between streets in autoplay mode"`
	LogFile  string        `default:"aipoker-watch.log" type:"path" help:"Diagnostic log file (the terminal is owned by the UI)"`
}

func (c *WatchCmd) Run(globals *Globals) error {
	logFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer logFile.Close()

	s, err := newSession(globals, &c.SessionFlags, logFile, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signalContext()
	defer stop()

	model := tui.New(ctx, s.engine, s.events, s.logger, tui.Options{
		AutoInterval: c.Interval,
		MaxRounds:    s.cfg.Game.Rounds,
		Auto:         c.Auto,
	})

	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	if err := model.Err(); err != nil {
		return err
	}

	return printStandings(os.Stdout, s.engine.Standings(), s.engine.Results(), s.seed)
}
