package tui

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/woods/internal/config"
	"github.com/vovakirdan/woods/internal/core"
	"github.com/vovakirdan/woods/internal/policies"
	"github.com/vovakirdan/woods/internal/session"
	"github.com/vovakirdan/woods/internal/sim"
)

func newTestModel(t *testing.T, rc sim.RunConfig, maxTurns int) Model {
	t.Helper()
	sess := session.New(session.WithLogger(log.New(io.Discard)))
	run, err := sess.NewRun(rc)
	if err != nil {
		t.Fatalf("NewRun() failed: %v", err)
	}

	cfg := config.DefaultConfig()
	rt := cfg.Runtime(rc.Grid, rc.Seed)
	rt.TurnDelay = time.Second
	rt.MaxTurns = maxTurns
	return NewModel(sess, run, "k2", cfg.Limits, rt)
}

func singleCell() sim.RunConfig {
	return sim.RunConfig{
		Grid:   core.Grid{W: 1, H: 1},
		Starts: []core.Point{core.Pt(0, 0), core.Pt(0, 0)},
		Policy: policies.IDRandom,
	}
}

func twoAgents() sim.RunConfig {
	return sim.RunConfig{
		Grid:   core.Grid{W: 4, H: 4},
		Starts: []core.Point{core.Pt(0, 0), core.Pt(3, 3)},
		Policy: policies.IDRandomValid,
		Seed:   1,
	}
}

func press(m Model, s string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model)
}

func tick(m Model) Model {
	next, _ := m.Update(TickMsg(time.Now()))
	return next.(Model)
}

func TestDelayKeys(t *testing.T) {
	m := newTestModel(t, twoAgents(), 0)

	m = press(m, "+")
	if m.Delay() != 950*time.Millisecond {
		t.Errorf("after faster: %v, expected 950ms", m.Delay())
	}
	m = press(m, "-")
	m = press(m, "-")
	if m.Delay() != 1050*time.Millisecond {
		t.Errorf("after slower: %v, expected 1.05s", m.Delay())
	}
}

func TestPauseHoldsTurns(t *testing.T) {
	m := newTestModel(t, twoAgents(), 0)

	m = press(m, "p")
	if !m.Paused() {
		t.Fatal("expected paused")
	}
	m = tick(m)
	if m.Run().Turn() != 0 {
		t.Errorf("turn = %d while paused, expected 0", m.Run().Turn())
	}

	m = press(m, "s")
	if m.Run().Turn() != 1 {
		t.Errorf("turn = %d after step, expected 1", m.Run().Turn())
	}

	m = press(m, "p")
	m = tick(m)
	if m.Run().Turn() != 2 {
		t.Errorf("turn = %d after resume, expected 2", m.Run().Turn())
	}
}

func TestCompletionRecordsOnce(t *testing.T) {
	m := newTestModel(t, singleCell(), 0)

	m = tick(m)
	if m.Run().State() != sim.StateCompleted {
		t.Fatalf("state = %v, expected completed", m.Run().State())
	}
	if len(m.History()) != 1 {
		t.Fatalf("history = %d, expected 1", len(m.History()))
	}
	if m.Merged() != 1 {
		t.Errorf("Merged() = %v, expected 1", m.Merged())
	}

	m = tick(m)
	m = tick(m)
	if len(m.History()) != 1 {
		t.Errorf("history = %d after extra ticks, expected 1", len(m.History()))
	}
	if got := m.sess.Statistics().Snapshot().Completed(); got != 1 {
		t.Errorf("completed runs = %d, expected 1", got)
	}
}

func TestReplayAndNewRun(t *testing.T) {
	m := newTestModel(t, singleCell(), 0)

	m = tick(m)
	m = press(m, "r")
	if m.Run().State() != sim.StateIdle {
		t.Fatalf("state = %v after replay, expected idle", m.Run().State())
	}
	m = tick(m)

	first := m.Run()
	m = press(m, "n")
	if m.Run() == first {
		t.Fatal("new run should replace the watched run")
	}
	m = tick(m)

	if len(m.History()) != 3 {
		t.Errorf("history = %d, expected 3", len(m.History()))
	}
	if got := m.sess.Statistics().Snapshot().Completed(); got != 3 {
		t.Errorf("completed runs = %d, expected 3", got)
	}
}

func TestTurnCapPauses(t *testing.T) {
	rc := sim.RunConfig{Grid: core.Grid{W: 3, H: 3}, Policy: policies.IDRandom}
	m := newTestModel(t, rc, 2)

	m = tick(m)
	m = tick(m)
	if !m.Paused() {
		t.Error("expected pause at turn cap")
	}
	if m.Merged() != 0 {
		t.Errorf("Merged() = %v, expected 0 with no agents", m.Merged())
	}
}

func TestMergedFraction(t *testing.T) {
	rc := sim.RunConfig{
		Grid:   core.Grid{W: 3, H: 3},
		Starts: []core.Point{core.Pt(0, 0), core.Pt(0, 0), core.Pt(2, 2)},
		Policy: policies.IDRandom,
	}
	m := newTestModel(t, rc, 0)

	if got := m.Merged(); got != 0.5 {
		t.Errorf("Merged() = %v, expected 0.5", got)
	}
}

func TestQuitAndView(t *testing.T) {
	m := newTestModel(t, twoAgents(), 0)

	if m.View() == "" {
		t.Error("View() should render before quitting")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(Model)
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestResize(t *testing.T) {
	m := newTestModel(t, twoAgents(), 0)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	if m.progress.Width != maxBarWidth {
		t.Errorf("progress width = %d, expected %d", m.progress.Width, maxBarWidth)
	}
}
