package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/breakout-sim/internal/registry"
	"github.com/vovakirdan/breakout-sim/internal/storage"
)

// Ledger layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the pilot sidebar
	sidebarWidth       = 16  // Width of pilot sidebar
	maxRuns            = 200 // Max runs to load per filter
)

// allPilots is the filter that shows every run.
const allPilots = "all"

// LedgerKeyMap defines the key bindings for the run ledger.
type LedgerKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextPilot key.Binding
	PrevPilot key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LedgerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPilot, k.PrevPilot, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k LedgerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextPilot, k.PrevPilot, k.Quit},
	}
}

// DefaultLedgerKeyMap returns default key bindings.
func DefaultLedgerKeyMap() LedgerKeyMap {
	return LedgerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextPilot: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next pilot"),
		),
		PrevPilot: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev pilot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LedgerModel browses finished runs filtered by pilot.
type LedgerModel struct {
	pilots      []string
	cursor      int
	store       *storage.Store
	runs        []storage.RunRecord
	loadErr     error
	table       table.Model
	help        help.Model
	keys        LedgerKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// LedgerPilots returns the filters the ledger offers: every run, keyboard
// runs, then each registered pilot.
func LedgerPilots() []string {
	pilots := []string{allPilots, HumanPilot}
	for _, p := range registry.List() {
		pilots = append(pilots, p.Name)
	}
	return pilots
}

// NewLedgerModel creates a new ledger model.
func NewLedgerModel(store *storage.Store, width, height int) LedgerModel {
	h := help.New()
	h.ShowAll = false

	m := LedgerModel{
		pilots:      LedgerPilots(),
		store:       store,
		keys:        DefaultLedgerKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.loadRuns()
	return m
}

func (m *LedgerModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 14},
		{Title: "Pilot", Width: 8},
		{Title: "Ticks", Width: 7},
		{Title: "Bricks", Width: 7},
		{Title: "End", Width: 8},
		{Title: "Max v", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Pilot returns the current filter.
func (m LedgerModel) Pilot() string {
	return m.pilots[m.cursor]
}

func (m *LedgerModel) loadRuns() {
	m.runs, m.loadErr = nil, nil
	if m.store != nil {
		if p := m.Pilot(); p == allPilots {
			m.runs, m.loadErr = m.store.RecentRuns(maxRuns)
		} else {
			m.runs, m.loadErr = m.store.RunsByPilot(p, maxRuns)
		}
	}
	m.table.SetRows(LedgerRows(m.runs))
	m.table.GotoTop()
}

// LedgerRows formats runs as table rows.
func LedgerRows(runs []storage.RunRecord) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			r.Pilot,
			fmt.Sprintf("%d", r.Ticks),
			fmt.Sprintf("%d", r.BricksDestroyed),
			outcome(r),
			fmt.Sprintf("%.0f", r.MaxSpeed),
		}
	}
	return rows
}

func outcome(r storage.RunRecord) string {
	switch {
	case r.Cleared:
		return "cleared"
	case r.Escaped:
		return "lost"
	default:
		return "stopped"
	}
}

// Init initializes the ledger model.
func (m LedgerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the ledger.
func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextPilot):
			m.cursor = (m.cursor + 1) % len(m.pilots)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.PrevPilot):
			m.cursor = (m.cursor - 1 + len(m.pilots)) % len(m.pilots)
			m.loadRuns()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.table.SetRows(LedgerRows(m.runs))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the ledger.
func (m LedgerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("RUNS - "+m.Pilot(), m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	content := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", content))
	} else {
		b.WriteString(centerText(content, m.width))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m LedgerModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Pilots\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, p := range m.pilots {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + p))
		sidebar.WriteString("\n")
	}

	return sidebarStyle.Render(sidebar.String())
}

func (m LedgerModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("No run ledger open.")
	case m.loadErr != nil:
		return emptyStyle.Render("Cannot read runs:\n" + m.loadErr.Error())
	case len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nPlay or run `breakout sim` to add some.")
	}
	return m.table.View()
}

// centerText pads every line of text so it sits centered in width columns.
func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		pad := (width - lipgloss.Width(line)) / 2
		if pad > 0 {
			lines[i] = strings.Repeat(" ", pad) + line
		}
	}
	return strings.Join(lines, "\n")
}

// RunLedger runs the ledger browser until the user quits.
func RunLedger(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewLedgerModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
