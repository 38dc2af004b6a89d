package game

import (
	"fmt"
	"sync"
)

// EventLog receives one human-readable line per game event, in the order
// the events happen. Implementations must tolerate a burst of lines per
// street.
type EventLog interface {
	Append(line string)
}

// EventLogFunc adapts a function to EventLog
type EventLogFunc func(line string)

// Append calls f(line)
func (f EventLogFunc) Append(line string) { f(line) }

// MultiLog fans lines out to every sink in order
func MultiLog(logs ...EventLog) EventLog {
	return EventLogFunc(func(line string) {
		for _, l := range logs {
			if l != nil {
				l.Append(line)
			}
		}
	})
}

// Transcript collects lines in memory. It is safe for concurrent use.
type Transcript struct {
	mu    sync.Mutex
	lines []string
}

// Append records line
func (t *Transcript) Append(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, line)
}

// Lines returns a copy of everything recorded so far
func (t *Transcript) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

// Len returns the number of recorded lines
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.lines)
}

type discardLog struct{}

func (discardLog) Append(string) {}

// emit formats and appends a line to the engine's event log
func (e *Engine) emit(format string, args ...any) {
	e.events.Append(fmt.Sprintf(format, args...))
}

// describeAction renders a sized action the way it appears in the event log
func describeAction(p *Player, a Action, pot int) string {
	switch a.Kind {
	case Fold:
		return fmt.Sprintf("%s folds.", p.Name)
	case Check:
		return fmt.Sprintf("%s checks.", p.Name)
	}
	verb := "bets"
	if a.Kind == Raise {
		verb = "raises to"
	}
	line := fmt.Sprintf("%s %s %d chips (pot %d).", p.Name, verb, a.Amount, pot)
	if p.IsAllIn() {
		line = fmt.Sprintf("%s %s %d chips and is all-in (pot %d).", p.Name, verb, a.Amount, pot)
	}
	return line
}
