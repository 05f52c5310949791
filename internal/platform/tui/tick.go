// Package tui provides the Bubble Tea host that paces a simulation run.
// It handles the turn timer, key bindings, and the status screen.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// minTickInterval keeps a zero delay from starving input handling.
const minTickInterval = 10 * time.Millisecond

// TickMsg is sent to trigger one simulation turn.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick after delay.
func tickCmd(delay time.Duration) tea.Cmd {
	if delay < minTickInterval {
		delay = minTickInterval
	}
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
