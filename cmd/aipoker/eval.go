package main

import (
	"fmt"
	"os"

	"github.com/ProhibitedTV/AIPoker/internal/deck"
	"github.com/ProhibitedTV/AIPoker/internal/evaluator"
	"github.com/ProhibitedTV/AIPoker/internal/tui"
)

type EvalCmd struct {
	Hole  string `arg:"" help:"Hole cards, e.g. AhKh"`
	Board string `arg:"" optional:"" help:"Community cards, e.g. 2h7hTd"`
	Pct   bool   `help:"Also print the pre-flop chart percentile of the hole cards"`
}

func (c *EvalCmd) Run(globals *Globals) error {
	applyColor(globals)

	hole, err := deck.ParseCards(c.Hole)
	if err != nil {
		return fmt.Errorf("hole cards: %w", err)
	}
	var board []deck.Card
	if c.Board != "" {
		board, err = deck.ParseCards(c.Board)
		if err != nil {
			return fmt.Errorf("community cards: %w", err)
		}
	}

	result, err := evaluator.Evaluate(hole, board)
	if err != nil {
		return err
	}

	out := os.Stdout
	fmt.Fprintf(out, "Cards:    %s %s\n", tui.FormatCards(hole), tui.FormatCards(board))
	fmt.Fprintf(out, "Hand:     %s\n", tui.SuccessStyle.Render(result.Category.String()))
	fmt.Fprintf(out, "Ranking:  %s\n", result)
	if c.Pct && len(hole) == 2 {
		fmt.Fprintf(out, "Chart:    %s %.3f\n", deck.StartingHandKey(hole), deck.Percentile(hole))
	}
	return nil
}
