package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sanity-io/litter"

	"github.com/ProhibitedTV/AIPoker/internal/fileutil"
	"github.com/ProhibitedTV/AIPoker/internal/game"
	"github.com/ProhibitedTV/AIPoker/internal/tui"
)

type PlayCmd struct {
	SessionFlags

	Transcript string `type:"path" help:"Write the event log to this file when the session ends"`
	Quiet      bool   `short:"q" help:"Only print the final standings"`
	Verbose    bool   `help:"Dump the full table state after every street"`
}

var snapshotDumper = litter.Options{
	HidePrivateFields: true,
	HideZeroValues:    true,
	StripPackageNames: true,
}

func (c *PlayCmd) Run(globals *Globals) error {
	out := os.Stdout

	var live game.EventLog
	if !c.Quiet {
		live = game.EventLogFunc(func(line string) {
			fmt.Fprintln(out, tui.StyleEventLine(line))
		})
	}

	s, err := newSession(globals, &c.SessionFlags, os.Stderr, live)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signalContext()
	defer stop()

	start := time.Now()
	played := 0
	var runErr error

rounds:
	for played < s.cfg.Game.Rounds {
		for {
			state, err := s.engine.Advance(ctx)
			if err != nil {
				runErr = fmt.Errorf("round %d: %w", state.Number, err)
				break rounds
			}
			if c.Verbose {
				fmt.Fprintln(os.Stderr, snapshotDumper.Sdump(state))
			}
			if state.Street == game.Showdown {
				break
			}
		}
		played++

		if ctx.Err() != nil {
			s.logger.Warn("Interrupted, stopping after current round", "played", played)
			break
		}
	}

	s.logger.Info("Session finished", "rounds", played, "elapsed", elapsed(start))

	if c.Transcript != "" {
		if err := fileutil.WriteTranscript(c.Transcript, s.events.Lines()); err != nil {
			return fmt.Errorf("writing transcript: %w", err)
		}
		s.logger.Info("Transcript written", "path", c.Transcript, "lines", s.events.Len())
	}

	if err := printStandings(out, s.engine.Standings(), s.engine.Results(), s.seed); err != nil {
		return err
	}
	return runErr
}

// printStandings renders the final table of chips and win rates
func printStandings(w io.Writer, standings []game.Standing, results []game.RoundResult, seed int64) error {
	table, err := standingsTable(standings, results)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, sessionBox(standings, len(results), seed))
	fmt.Fprint(w, table)
	return nil
}
