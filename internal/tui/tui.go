// Package tui is the interactive driver for watching a session street by
// street.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/ProhibitedTV/AIPoker/internal/deck"
	"github.com/ProhibitedTV/AIPoker/internal/game"
)

// Stepper is the part of the engine the TUI drives
type Stepper interface {
	Advance(ctx context.Context) (game.RoundState, error)
	Standings() []game.Standing
}

// Options tune the watch session
type Options struct {
	// AutoInterval is the delay between streets in auto mode.
	AutoInterval time.Duration
	// MaxRounds stops the session after this many rounds; zero means no limit.
	MaxRounds int
	// Auto starts the session in auto mode.
	Auto bool
}

// Model is the Bubble Tea model for watching a session
type Model struct {
	ctx     context.Context
	stepper Stepper
	events  *game.Transcript
	logger  *log.Logger
	opts    Options

	// UI components
	logViewport  viewport.Model
	commandInput textinput.Model

	// State
	gameLog     []string
	seen        int
	state       game.RoundState
	standings   []game.Standing
	busy        bool
	auto        bool
	status      string
	err         error
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	// Dimensions
	width       int
	height      int
	initialized bool
}

// advancedMsg carries the outcome of one Advance call
type advancedMsg struct {
	state     game.RoundState
	standings []game.Standing
	err       error
}

// tickMsg paces auto mode
type tickMsg struct{}

// New creates a watch model. events must be the engine's event log.
func New(ctx context.Context, stepper Stepper, events *game.Transcript, logger *log.Logger, opts Options) *Model {
	if opts.AutoInterval <= 0 {
		opts.AutoInterval = 750 * time.Millisecond
	}

	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Enter for next street, 'auto' to toggle autoplay, 'quit' to exit"
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	return &Model{
		ctx:          ctx,
		stepper:      stepper,
		events:       events,
		logger:       logger.WithPrefix("tui"),
		opts:         opts,
		logViewport:  vp,
		commandInput: ti,
		standings:    stepper.Standings(),
		auto:         opts.Auto,
		focusedPane:  1,
	}
}

// Init starts the cursor blink and, in auto mode, the first street
func (m *Model) Init() tea.Cmd {
	if m.auto {
		return tea.Batch(textinput.Blink, m.advance())
	}
	return textinput.Blink
}

// advance runs the next street off the UI goroutine. Only one street is
// ever in flight.
func (m *Model) advance() tea.Cmd {
	if m.busy || m.finished() || m.err != nil {
		return nil
	}
	m.busy = true
	stepper, ctx := m.stepper, m.ctx
	return func() tea.Msg {
		state, err := stepper.Advance(ctx)
		return advancedMsg{state: state, standings: stepper.Standings(), err: err}
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.opts.AutoInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

// finished reports whether the round limit has been played out
func (m *Model) finished() bool {
	return m.opts.MaxRounds > 0 &&
		m.state.Number >= m.opts.MaxRounds &&
		m.state.Street == game.Showdown
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case advancedMsg:
		cmds = append(cmds, m.handleAdvanced(msg))

	case tickMsg:
		if m.auto {
			cmds = append(cmds, m.advance())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.commandInput.Focus()
			} else {
				m.focusedPane = 0
				m.commandInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				cmds = append(cmds, m.processCommand(m.commandInput.Value()))
				m.commandInput.SetValue("")
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	if m.quitting {
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.commandInput, cmd = m.commandInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) handleAdvanced(msg advancedMsg) tea.Cmd {
	m.busy = false
	m.state = msg.state
	m.standings = msg.standings
	m.pullEvents()

	if msg.err != nil {
		m.err = msg.err
		m.auto = false
		m.status = "Stopped: " + msg.err.Error()
		m.logger.Error("Advance failed", "error", msg.err)
		return nil
	}

	if m.finished() {
		m.auto = false
		m.status = fmt.Sprintf("Session complete after %d rounds", m.state.Number)
		return nil
	}

	m.status = fmt.Sprintf("Round %d: %s", m.state.Number, m.state.Street)
	if m.auto {
		return m.tick()
	}
	return nil
}

// processCommand handles a line typed into the command input
func (m *Model) processCommand(input string) tea.Cmd {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "n", "next":
		return m.advance()
	case "a", "auto":
		m.auto = !m.auto
		if m.auto {
			m.status = "Autoplay on"
			return m.advance()
		}
		m.status = "Autoplay off"
		return nil
	case "q", "quit", "exit":
		m.quitting = true
		return nil
	default:
		m.status = fmt.Sprintf("Unknown command %q", input)
		return nil
	}
}

// pullEvents appends event-log lines produced since the last pull
func (m *Model) pullEvents() {
	lines := m.events.Lines()
	if m.seen >= len(lines) {
		return
	}
	m.gameLog = append(m.gameLog, lines[m.seen:]...)
	m.seen = len(lines)

	m.logViewport.SetContent(m.renderLogPane())
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.paneColor(1)).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight, 1)).
		Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 28)
	paneHeight := max(m.height-actionHeight-4, 1)

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	m.logViewport.Width = max(m.width-sidebarWidth-4, 1)
	m.logViewport.Height = paneHeight
	if !m.initialized && m.logViewport.Width > 1 && m.logViewport.Height > 1 {
		m.logViewport.SetContent(m.renderLogPane())
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.paneColor(0)).
		Width(m.logViewport.Width).
		Height(paneHeight).
		Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *Model) paneColor(pane int) lipgloss.Color {
	if m.focusedPane == pane {
		return lipgloss.Color("#04B575")
	}
	return lipgloss.Color("#626262")
}

// renderLogPane renders the styled event log
func (m *Model) renderLogPane() string {
	styled := make([]string, len(m.gameLog))
	for i, line := range m.gameLog {
		styled[i] = StyleEventLine(line)
	}
	return strings.Join(styled, "\n")
}

// renderSidebarPane shows the board, pot and every player's standing
func (m *Model) renderSidebarPane() string {
	var content strings.Builder

	if m.state.Number == 0 {
		content.WriteString(InfoStyle.Render("No round played yet"))
		content.WriteString("\n\n")
	} else {
		content.WriteString(HeaderStyle.Render(fmt.Sprintf(" Round %d ", m.state.Number)))
		content.WriteString(" ")
		content.WriteString(StreetStyle.Render(m.state.Street.String()))
		content.WriteString("\n")
		content.WriteString(WarningStyle.Render(fmt.Sprintf("Pot: %d", m.state.Pot)))
		content.WriteString("\n")
		content.WriteString("Board: " + FormatCards(m.state.CommunityCards))
		content.WriteString("\n\n")
	}

	content.WriteString(InfoStyle.Render("Players:"))
	content.WriteString("\n")
	for i, s := range m.standings {
		line := fmt.Sprintf("%s %5d  %3.0f%%", s.Name, s.Chips, s.WinRate*100)
		if i < len(m.state.Players) && !m.state.Players[i].Active {
			line = FoldedStyle.Render(line)
		}
		if i == m.state.DealerIndex && m.state.Number > 0 {
			line += " (D)"
		}
		content.WriteString("  " + line + "\n")
	}

	return content.String()
}

// renderActionPane renders the status line, command input and help
func (m *Model) renderActionPane() string {
	var content strings.Builder

	switch {
	case m.err != nil:
		content.WriteString(ErrorStyle.Render(m.status))
	case m.busy:
		content.WriteString(WarningStyle.Render("Waiting for decisions..."))
	case m.status != "":
		content.WriteString(StreetStyle.Render(m.status))
	default:
		content.WriteString(StreetStyle.Render("Ready"))
	}
	content.WriteString("\n")

	content.WriteString(m.commandInput.View())
	content.WriteString("\n")

	help := "Tab to scroll log • Enter for next street • Ctrl+C to quit"
	if m.focusedPane == 0 {
		help = "Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"
	}
	content.WriteString(InfoStyle.Render(help))

	return content.String()
}

// FormatCards formats cards with suit colours
func FormatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "-"
	}
	formatted := make([]string, len(cards))
	for i, card := range cards {
		if card.IsRed() {
			formatted[i] = RedCardStyle.Render(card.String())
		} else {
			formatted[i] = BlackCardStyle.Render(card.String())
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

// Err returns the error that stopped the session, if any
func (m *Model) Err() error {
	return m.err
}
