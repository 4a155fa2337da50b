package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/breakout-sim/internal/config"
	"github.com/vovakirdan/breakout-sim/internal/core"
	"github.com/vovakirdan/breakout-sim/internal/registry"
	"github.com/vovakirdan/breakout-sim/internal/sim"
	"github.com/vovakirdan/breakout-sim/internal/storage"
	"github.com/vovakirdan/breakout-sim/internal/telemetry"
)

// HumanPilot is the ledger name for keyboard runs.
const HumanPilot = "human"

// Options configures a play session.
type Options struct {
	Config  config.Config
	Runtime core.RuntimeConfig
	Store   *storage.Store // nil disables the run ledger
	Pilot   string         // registered pilot to watch; empty means keyboard
	Hold    time.Duration  // key latch window; zero means DefaultHold
	Logger  *log.Logger
}

// Model is the Bubble Tea model for one play session.
type Model struct {
	opts   Options
	logger *log.Logger

	sim      *sim.Simulation
	pilot    registry.Pilot
	clock    *sim.Clock
	latch    *Latch
	stats    *telemetry.Accumulator
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	last     time.Time
	result   sim.TickResult
	paused   bool
	saved    bool
	quitting bool
}

// NewModel builds the simulation and the front-end state around it.
func NewModel(opts Options) (Model, error) {
	if err := opts.Config.Validate(); err != nil {
		return Model{}, fmt.Errorf("tui: %w", err)
	}
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Hold <= 0 {
		opts.Hold = DefaultHold
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Pilot != "" && !registry.Exists(opts.Pilot) {
		return Model{}, fmt.Errorf("tui: unknown pilot %q", opts.Pilot)
	}

	step := opts.Config.TickInterval()
	m := Model{
		opts:   opts,
		logger: opts.Logger,
		clock:  sim.NewClock(step, opts.Config.Loop.MaxCatchup),
		latch:  NewLatch(opts.Hold, step),
		screen: core.NewScreen(opts.Runtime.ScreenW, arenaRows(opts.Runtime.ScreenH)),
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	m.help.Width = opts.Runtime.ScreenW
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// reset starts a fresh simulation with the same options.
func (m *Model) reset() error {
	s, err := sim.New(m.opts.Config, sim.WithLogger(m.logger.WithPrefix("sim")))
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	m.sim = s
	m.pilot = nil
	if m.opts.Pilot != "" {
		p, err := registry.Create(m.opts.Pilot, m.opts.Runtime.Seed)
		if err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		m.pilot = p
	}
	m.clock.Reset()
	m.latch.Release()
	m.stats = &telemetry.Accumulator{}
	m.result = sim.TickResult{BricksLeft: len(s.Layout().Bricks)}
	m.last = time.Time{}
	m.paused = false
	m.saved = false
	return nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.clock.Step())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, arenaRows(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveRun()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		m.latch.Release()
		m.last = time.Time{}

	case key.Matches(msg, m.keys.Restart):
		m.saveRun()
		if err := m.reset(); err != nil {
			m.logger.Error("restart failed", "error", err)
			m.quitting = true
			return m, tea.Quit
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Left):
		m.latch.Press(core.InputLeft)

	case key.Matches(msg, m.keys.Right):
		m.latch.Press(core.InputRight)
	}
	return m, nil
}

// handleTick runs as many fixed steps as the wall-clock time since the
// previous message allows.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	next := tickCmd(m.clock.Step())
	if m.last.IsZero() || m.paused || m.finished() {
		m.last = now
		m.clock.Reset()
		return m, next
	}

	n := m.clock.Advance(now.Sub(m.last))
	m.last = now
	for range n {
		m.step()
		if m.finished() {
			m.saveRun()
			break
		}
	}
	return m, next
}

// step advances the simulation by exactly one tick.
func (m *Model) step() {
	in := m.latch.Frame().Logical()
	if m.pilot != nil {
		in = m.pilot.Next(m.sim.View())
	}
	m.result = m.sim.Tick(in)
	m.latch.Decay()
	m.stats.Add(telemetry.RowOf(m.result))
}

// finished reports whether the run is over: the wall is cleared or the ball
// has left the arena.
func (m Model) finished() bool {
	return m.result.Cleared || m.result.BallEscaped
}

// saveRun writes the current run to the ledger once.
func (m *Model) saveRun() {
	if m.saved || m.stats.Len() == 0 {
		return
	}
	m.saved = true
	if m.opts.Store == nil {
		return
	}

	pilot := m.opts.Pilot
	if pilot == "" {
		pilot = HumanPilot
	}
	rec := storage.RecordOf("", pilot, m.opts.Runtime.Seed, m.stats.Summary())
	id, err := m.opts.Store.SaveRun(rec)
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
		return
	}
	m.logger.Info("run saved", "id", id, "pilot", pilot, "ticks", rec.Ticks)
}

var (
	hudStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// arenaRows is the screen height left for the arena under the header line
// and above the help line.
func arenaRows(termHeight int) int {
	return max(termHeight-2, 1)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	vp := ArenaViewport(m.screen.Width(), m.screen.Height(), 0, 0)
	DrawWorld(m.screen, vp, m.sim.Drawables())
	if msg := m.status(); msg != "" {
		drawBanner(m.screen, m.screen.Height()/2, msg)
	}

	return hudStyle.Render(m.hud()) + "\n" +
		RenderScreen(m.screen) + "\n" +
		helpStyle.Render(m.help.View(m.keys))
}

func (m Model) hud() string {
	bricks := len(m.sim.Layout().Bricks)
	pilot := m.opts.Pilot
	if pilot == "" {
		pilot = HumanPilot
	}
	line := fmt.Sprintf(" BREAKOUT  tick %d  bricks %d/%d  speed %.0f  %s",
		m.result.Tick,
		bricks-m.result.BricksLeft, bricks,
		m.result.BallVel.Len(),
		pilot,
	)
	if w := m.screen.Width(); w > 0 && len(line) > w {
		line = line[:w]
	}
	return line
}

func (m Model) status() string {
	switch {
	case m.result.Cleared:
		return "CLEARED  r to restart"
	case m.result.BallEscaped:
		return "BALL LOST  r to restart"
	case m.paused:
		return "PAUSED"
	}
	return ""
}

// drawBanner writes padded text centered on row y.
func drawBanner(s *core.Screen, y int, text string) {
	s.DrawTextCentered(y, " "+text+" ", core.ColorBrightYellow)
}

// Run starts the Bubble Tea program for one local play session.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
