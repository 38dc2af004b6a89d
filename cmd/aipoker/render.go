package main

import (
	"fmt"
	"slices"

	"github.com/pterm/pterm"

	"github.com/ProhibitedTV/AIPoker/internal/game"
	"github.com/ProhibitedTV/AIPoker/internal/statistics"
)

// standingsTable renders players sorted by chips
func standingsTable(standings []game.Standing, results []game.RoundResult) (string, error) {
	sorted := slices.Clone(standings)
	slices.SortStableFunc(sorted, func(a, b game.Standing) int {
		return b.Chips - a.Chips
	})

	data := pterm.TableData{{"Player", "Chips", "Wins", "Win %", "Showdown", "Net/round", "Median", "95% CI", "Biggest pot"}}
	for _, s := range sorted {
		stats := statistics.FromResults(results, s.Seat)
		if stats.Rounds > 0 {
			if err := stats.Validate(); err != nil {
				return "", fmt.Errorf("statistics for %s: %w", s.Name, err)
			}
		}
		low, high := stats.ConfidenceInterval95()
		data = append(data, []string{
			s.Name,
			fmt.Sprintf("%d", s.Chips),
			fmt.Sprintf("%d/%d", s.Wins, s.Rounds),
			fmt.Sprintf("%.1f%%", s.WinRate*100),
			fmt.Sprintf("%d", stats.ShowdownWins),
			fmt.Sprintf("%+.1f ± %.1f", stats.Mean(), stats.StdError()),
			fmt.Sprintf("%+.1f", stats.Median()),
			fmt.Sprintf("[%+.1f, %+.1f]", low, high),
			fmt.Sprintf("%d", stats.MaxPot),
		})
	}

	return pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithRightAlignment().
		WithData(data).
		Srender()
}

// sessionBox summarises the session in a titled box
func sessionBox(standings []game.Standing, rounds int, seed int64) string {
	leader := "-"
	best := -1
	for _, s := range standings {
		if s.Chips > best {
			best, leader = s.Chips, s.Name
		}
	}

	body := pterm.Sprintfln("Rounds played: %d", rounds) +
		pterm.Sprintfln("Seed: %d", seed) +
		pterm.Sprintf("Chip leader: %s (%d)", pterm.LightCyan(leader), best)

	return pterm.DefaultBox.
		WithTitle(pterm.LightYellow("|SESSION|")).
		WithTitleTopCenter().
		WithHorizontalPadding(4).
		Sprint(body)
}
