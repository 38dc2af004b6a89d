package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProhibitedTV/AIPoker/internal/deck"
	"github.com/ProhibitedTV/AIPoker/internal/game"
	"github.com/ProhibitedTV/AIPoker/internal/randutil"
)

var checkAll = game.DeciderFunc(func(context.Context, []deck.Card, []deck.Card) (game.ActionKind, error) {
	return game.Check, nil
})

func newWatchModel(t *testing.T, opts Options) (*Model, *game.Transcript) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	events := &game.Transcript{}
	engine := game.NewEngine(randutil.New(5), []string{"Alice", "Bob", "Carol"}, checkAll,
		game.WithLogger(logger), game.WithEventLog(events))
	return New(context.Background(), engine, events, logger, opts), events
}

// step runs one street synchronously the way the Bubble Tea runtime would
func step(t *testing.T, m *Model) {
	t.Helper()
	cmd := m.processCommand("next")
	require.NotNil(t, cmd)
	msg := cmd()
	_, _ = m.Update(msg)
}

func TestWatchAdvancesStreetByStreet(t *testing.T) {
	m, events := newWatchModel(t, Options{})

	step(t, m)
	assert.Equal(t, 1, m.state.Number)
	assert.Equal(t, game.PreFlop, m.state.Street)
	assert.Equal(t, events.Lines(), m.gameLog)
	assert.False(t, m.busy)

	for range 4 {
		step(t, m)
	}
	assert.Equal(t, game.Showdown, m.state.Street)
	assert.Equal(t, events.Len(), len(m.gameLog))
	assert.Contains(t, strings.Join(m.gameLog, "\n"), "Winner:")
	assert.Equal(t, 1, m.standings[0].Rounds)
}

func TestWatchOneStreetInFlight(t *testing.T) {
	m, _ := newWatchModel(t, Options{})

	cmd := m.processCommand("")
	require.NotNil(t, cmd)
	assert.True(t, m.busy)
	assert.Nil(t, m.processCommand("next"), "second request is ignored while busy")

	_, _ = m.Update(cmd())
	assert.False(t, m.busy)
}

func TestWatchStopsAtRoundLimit(t *testing.T) {
	m, _ := newWatchModel(t, Options{MaxRounds: 1})

	for range 5 {
		step(t, m)
	}
	assert.True(t, m.finished())
	assert.Contains(t, m.status, "Session complete")
	assert.Nil(t, m.processCommand("next"))
}

func TestWatchCommands(t *testing.T) {
	m, _ := newWatchModel(t, Options{})

	assert.Nil(t, m.processCommand("dance"))
	assert.Contains(t, m.status, "Unknown command")

	cmd := m.processCommand("auto")
	assert.True(t, m.auto)
	require.NotNil(t, cmd)
	_, next := m.Update(cmd())
	assert.NotNil(t, next, "auto mode schedules the next street")

	m.processCommand("auto")
	assert.False(t, m.auto)

	m.processCommand("quit")
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestWatchShowsAdvanceErrors(t *testing.T) {
	m, _ := newWatchModel(t, Options{})

	_, _ = m.Update(advancedMsg{err: errors.New("chip conservation violated")})
	require.Error(t, m.Err())
	assert.Contains(t, m.status, "chip conservation")
	assert.Nil(t, m.advance(), "no further streets after an error")
}

func TestWatchView(t *testing.T) {
	m, _ := newWatchModel(t, Options{})
	assert.Equal(t, "Loading...", m.View())

	_, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	step(t, m)

	view := m.View()
	assert.Contains(t, view, "Round 1")
	assert.Contains(t, view, "Alice")
	assert.Contains(t, view, "Pot: 0")
}

func TestStyleEventLine(t *testing.T) {
	for _, line := range []string{"=== Round 1 ===", "--- Flop Betting Round ---", "Alice bets 50 chips (pot 50).", "plain"} {
		assert.Contains(t, StyleEventLine(line), line)
	}
	assert.Equal(t, "-", FormatCards(nil))
}
