package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/woods/internal/config"
	"github.com/vovakirdan/woods/internal/core"
	"github.com/vovakirdan/woods/internal/session"
	"github.com/vovakirdan/woods/internal/sim"
)

// Watch layout constants
const (
	maxHistoryRows = 8  // Completed runs kept in the table
	minBarWidth    = 20 // Narrowest progress bar
	maxBarWidth    = 60
)

// Model is the Bubble Tea model that paces one simulation run.
type Model struct {
	sess   *session.Session
	run    *sim.Run
	preset string
	limits config.Limits
	config core.RuntimeConfig

	delay    time.Duration
	paused   bool
	quitting bool
	recorded bool // Whether the current run has been handed to the session

	last    sim.TurnResult
	history []session.RunResult

	table    table.Model
	progress progress.Model
	help     help.Model
	keys     WatchKeyMap
	theme    Theme
	width    int
	height   int
}

// NewModel creates a watch model for run. The run must have been created
// through sess so completed runs land in the session statistics.
func NewModel(sess *session.Session, run *sim.Run, preset string, limits config.Limits, cfg core.RuntimeConfig) Model {
	h := help.New()
	h.ShowAll = false

	m := Model{
		sess:     sess,
		run:      run,
		preset:   preset,
		limits:   limits,
		config:   cfg,
		delay:    limits.ClampDelay(cfg.TurnDelay),
		progress: progress.New(progress.WithDefaultGradient()),
		help:     h,
		keys:     DefaultWatchKeyMap(),
		theme:    DefaultTheme(),
	}
	m.table = m.createTable()
	m.resize(cfg.ScreenW, cfg.ScreenH)
	return m
}

// Init starts the turn timer.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.delay)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Faster):
		m.delay = m.limits.StepDelay(m.delay, -1)

	case key.Matches(msg, m.keys.Slower):
		m.delay = m.limits.StepDelay(m.delay, 1)

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused

	case key.Matches(msg, m.keys.Step):
		if m.paused {
			m.advance()
		}

	case key.Matches(msg, m.keys.Reset):
		m.run.Reset()
		m.restart()

	case key.Matches(msg, m.keys.Next):
		cfg := m.run.Config()
		cfg.Seed = time.Now().UnixNano()
		run, err := m.sess.NewRun(cfg)
		if err != nil {
			m.sess.Logger().Error("cannot start run", "error", err)
			return m, nil
		}
		m.run = run
		m.restart()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// handleTick advances one turn unless paused or finished.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused {
		m.advance()
	}
	return m, tickCmd(m.delay)
}

func (m *Model) advance() {
	if m.recorded {
		return
	}

	m.last = m.run.AdvanceTurn()
	if m.last.Status == sim.StatusCompleted {
		res := m.sess.Finish(m.preset, m.run)
		m.recorded = true
		m.history = append([]session.RunResult{res}, m.history...)
		if len(m.history) > maxHistoryRows {
			m.history = m.history[:maxHistoryRows]
		}
		m.updateTableRows()
		return
	}

	if m.config.MaxTurns > 0 && m.last.Turn >= m.config.MaxTurns {
		m.sess.Logger().Warn("run reached turn cap, pausing", "turns", m.last.Turn)
		m.paused = true
	}
}

func (m *Model) restart() {
	m.recorded = false
	m.paused = false
	m.last = sim.TurnResult{}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.progress.Width = core.Clamp(width-10, minBarWidth, maxBarWidth)
	m.help.Width = width
	m.table.SetHeight(core.Clamp(height-16, 3, maxHistoryRows+1))
}

// createTable creates the completed-run table.
func (m *Model) createTable() table.Model {
	columns := []table.Column{
		{Title: "Run", Width: 5},
		{Title: "Turns", Width: 8},
		{Title: "Meetings", Width: 9},
		{Title: "Gap", Width: 6},
		{Title: "Archive", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(maxHistoryRows+1),
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

// updateTableRows refreshes the table from the run history.
func (m *Model) updateTableRows() {
	total := m.sess.Statistics().Snapshot().Completed()
	rows := make([]table.Row, len(m.history))
	for i, r := range m.history {
		archive := "-"
		if r.RunID != "" {
			archive = r.RunID[:min(8, len(r.RunID))]
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", total-i),
			fmt.Sprintf("%d", r.Turns),
			fmt.Sprintf("%d", r.Merges),
			fmt.Sprintf("%d", r.LongestGap),
			archive,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Merged returns the fraction of merges done, 1 when one group remains.
func (m Model) Merged() float64 {
	snap := m.run.Snapshot()
	if snap.AllMerged() {
		return 1
	}
	agents := len(snap.Agents)
	if agents <= 1 {
		return 0
	}
	return core.ClampF(float64(agents-len(snap.Groups))/float64(agents-1), 0, 1)
}

// Delay returns the current turn delay.
func (m Model) Delay() time.Duration {
	return m.delay
}

// Paused reports whether turns are on hold.
func (m Model) Paused() bool {
	return m.paused
}

// Run returns the run being watched.
func (m Model) Run() *sim.Run {
	return m.run
}

// History returns the completed runs shown in the table, newest first.
func (m Model) History() []session.RunResult {
	return m.history
}

// IsQuitting returns true if user wants to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// View renders the status screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.run.Snapshot()
	th := m.theme
	var b strings.Builder

	title := fmt.Sprintf("WANDERING IN THE WOODS - %s", snap.Policy)
	if m.preset != "" {
		title = fmt.Sprintf("%s (%s)", title, m.preset)
	}
	b.WriteString(th.Title.Render(title))
	b.WriteString("\n\n")

	b.WriteString(m.statusLine(snap))
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(m.Merged()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		th.Panel.Render(m.groupsView(snap)),
		"  ",
		th.Panel.Render(m.statsView()),
	))
	b.WriteString("\n")

	if len(m.history) == 0 {
		b.WriteString(th.Empty.Render("No completed runs yet."))
	} else {
		b.WriteString(th.Panel.Render(m.table.View()))
	}
	b.WriteString("\n")

	b.WriteString(th.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) statusLine(snap sim.Snapshot) string {
	th := m.theme

	var state string
	switch {
	case snap.State == sim.StateCompleted:
		state = th.Done.Render("ALL MET")
	case m.paused:
		state = th.Paused.Render("PAUSED")
	default:
		state = th.Running.Render(strings.ToUpper(snap.State.String()))
	}

	parts := []string{
		state,
		th.Label.Render("turn ") + th.Value.Render(fmt.Sprintf("%d", snap.Turn)),
		th.Label.Render("grid ") + th.Value.Render(fmt.Sprintf("%dx%d", snap.Grid.W, snap.Grid.H)),
		th.Label.Render("groups ") + th.Value.Render(fmt.Sprintf("%d", len(snap.Groups))),
		th.Label.Render("delay ") + th.Value.Render(m.delay.String()),
	}
	line := strings.Join(parts, "  ")

	if len(m.last.Merges) > 0 {
		mg := m.last.Merges[len(m.last.Merges)-1]
		line += "\n" + th.Meeting.Render(fmt.Sprintf("agents %d and %d met at %v", mg.A, mg.B, mg.Pos))
	}
	return line
}

func (m Model) groupsView(snap sim.Snapshot) string {
	var b strings.Builder
	b.WriteString(m.theme.Label.Render("Groups"))
	b.WriteString("\n")
	for _, g := range snap.Groups {
		ids := make([]string, len(g.Members))
		for i, id := range g.Members {
			ids[i] = fmt.Sprintf("%d", id)
		}
		fmt.Fprintf(&b, "%s %s\n", Swatch(g.Color), strings.Join(ids, ","))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) statsView() string {
	st := m.sess.Statistics().Snapshot()
	th := m.theme

	row := func(label, value string) string {
		return th.Label.Render(fmt.Sprintf("%-12s", label)) + th.Value.Render(value)
	}
	orDash := func(v int) string {
		if v < 0 {
			return "-"
		}
		return fmt.Sprintf("%d", v)
	}

	return strings.Join([]string{
		th.Label.Render("Statistics"),
		row("runs", fmt.Sprintf("%d", st.Completed())),
		row("shortest", orDash(st.Shortest)),
		row("longest", orDash(st.Longest)),
		row("average", fmt.Sprintf("%.2f", st.Average)),
		row("last", fmt.Sprintf("%d", st.Current)),
		row("alone max", fmt.Sprintf("%d", st.LongestWithoutMeeting)),
	}, "\n")
}

// Watch starts the Bubble Tea program for run and blocks until the user quits.
func Watch(sess *session.Session, run *sim.Run, preset string, limits config.Limits, cfg core.RuntimeConfig) error {
	model := NewModel(sess, run, preset, limits, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
