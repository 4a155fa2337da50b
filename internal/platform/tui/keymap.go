package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"

	"github.com/vovakirdan/breakout-sim/internal/core"
)

// DefaultHold is how long one key press keeps a direction asserted.
// Terminals report key repeats rather than held keys, so a press has to
// outlive the gap between repeats.
const DefaultHold = 150 * time.Millisecond

// KeyMap defines the key bindings for play.
type KeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Pause   key.Binding
	Restart key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Pause, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right},
		{k.Pause, k.Restart, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Latch keeps a direction asserted for a number of ticks after each press.
type Latch struct {
	hold  int
	left  int
	right int
}

// NewLatch creates a latch holding each press for hold, rounded up to whole
// ticks of length step. It always holds for at least one tick.
func NewLatch(hold, step time.Duration) *Latch {
	ticks := 1
	if step > 0 {
		ticks = max(int((hold+step-1)/step), 1)
	}
	return &Latch{hold: ticks}
}

// Press asserts a direction. Pressing one direction releases the other.
func (l *Latch) Press(in core.Input) {
	switch in {
	case core.InputLeft:
		l.left = l.hold
		l.right = 0
	case core.InputRight:
		l.right = l.hold
		l.left = 0
	}
}

// Frame returns the directions currently asserted.
func (l *Latch) Frame() core.InputFrame {
	return core.InputFrame{Left: l.left > 0, Right: l.right > 0}
}

// Decay consumes one tick of hold time.
func (l *Latch) Decay() {
	if l.left > 0 {
		l.left--
	}
	if l.right > 0 {
		l.right--
	}
}

// Release drops every held direction.
func (l *Latch) Release() {
	l.left = 0
	l.right = 0
}
