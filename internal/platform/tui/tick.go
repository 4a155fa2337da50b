// Package tui provides the Bubble Tea front end for the breakout simulation.
// It draws the world onto a colored screen buffer, turns key presses into
// paddle input and drives the simulation at a fixed step.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation step.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that fires once after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
