package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/woods/internal/core"
	"github.com/vovakirdan/woods/internal/policies"
	"github.com/vovakirdan/woods/internal/sim"
)

type fakeSaver struct {
	saved []RunResult
	err   error
}

func (f *fakeSaver) SaveRunResult(res RunResult) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, res)
	return "run-id", nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func twoCorners(seed int64) sim.RunConfig {
	return sim.RunConfig{
		Grid:   core.Grid{W: 4, H: 4},
		Starts: []core.Point{core.Pt(0, 0), core.Pt(3, 3)},
		Policy: policies.IDRandomValid,
		Seed:   seed,
	}
}

func TestRunOnceCompletesAndArchives(t *testing.T) {
	saver := &fakeSaver{}
	s := New(WithLogger(quietLogger()), WithSaver(saver))

	res, err := s.RunOnce(context.Background(), "k2", twoCorners(1))
	if err != nil {
		t.Fatalf("RunOnce() failed: %v", err)
	}
	if !res.Completed {
		t.Fatal("run should complete")
	}
	if res.RunID != "run-id" {
		t.Errorf("RunID = %q, want run-id", res.RunID)
	}
	if res.Policy != policies.IDRandomValid {
		t.Errorf("Policy = %q, want %q", res.Policy, policies.IDRandomValid)
	}
	if res.Agents != 2 || res.Merges != 1 {
		t.Errorf("Agents = %d, Merges = %d, want 2 and 1", res.Agents, res.Merges)
	}

	if len(saver.saved) != 1 {
		t.Fatalf("saved %d results, want 1", len(saver.saved))
	}
	if saver.saved[0].Preset != "k2" {
		t.Errorf("Preset = %q, want k2", saver.saved[0].Preset)
	}

	snap := s.Statistics().Snapshot()
	if snap.Completed() != 1 || snap.Current != res.Turns {
		t.Errorf("stats = %+v, want one run of %d turns", snap, res.Turns)
	}
}

func TestRunOnceStopsAtTurnCap(t *testing.T) {
	saver := &fakeSaver{}
	s := New(WithLogger(quietLogger()), WithSaver(saver), WithMaxTurns(10))

	cfg := sim.RunConfig{Grid: core.Grid{W: 3, H: 3}, Policy: policies.IDRandom}
	res, err := s.RunOnce(context.Background(), "", cfg)
	if err != nil {
		t.Fatalf("RunOnce() failed: %v", err)
	}
	if res.Completed {
		t.Error("run without agents should not complete")
	}
	if res.Turns != 10 {
		t.Errorf("Turns = %d, want 10", res.Turns)
	}
	if len(saver.saved) != 0 {
		t.Errorf("saved %d results, want 0", len(saver.saved))
	}
	if s.Statistics().Snapshot().Completed() != 0 {
		t.Error("capped run should not be recorded")
	}
}

func TestRunOnceHonoursCancel(t *testing.T) {
	s := New(WithLogger(quietLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := s.RunOnce(ctx, "", twoCorners(1))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if res.Completed || res.Turns != 0 {
		t.Errorf("result = %+v, want untouched run", res)
	}
}

func TestRunOnceInvalidConfig(t *testing.T) {
	s := New(WithLogger(quietLogger()))

	cfg := twoCorners(1)
	cfg.Policy = "teleport"
	if _, err := s.RunOnce(context.Background(), "", cfg); !errors.Is(err, sim.ErrPolicyUnrecognized) {
		t.Errorf("err = %v, want ErrPolicyUnrecognized", err)
	}

	cfg = twoCorners(1)
	cfg.Grid = core.Grid{W: 0, H: 4}
	if _, err := s.RunOnce(context.Background(), "", cfg); !errors.Is(err, sim.ErrInvalidGridDimension) {
		t.Errorf("err = %v, want ErrInvalidGridDimension", err)
	}
}

func TestRunBatchSeedsEachRun(t *testing.T) {
	s := New(WithLogger(quietLogger()))

	results, err := s.RunBatch(context.Background(), "k2", twoCorners(5), 3)
	if err != nil {
		t.Fatalf("RunBatch() failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	for i, res := range results {
		if res.Seed != int64(5+i) {
			t.Errorf("results[%d].Seed = %d, want %d", i, res.Seed, 5+i)
		}
	}

	snap := s.Statistics().Snapshot()
	if snap.Completed() != 3 {
		t.Fatalf("Completed() = %d, want 3", snap.Completed())
	}
	for i, res := range results {
		if snap.Runs[i] != res.Turns {
			t.Errorf("Runs[%d] = %d, want %d", i, snap.Runs[i], res.Turns)
		}
	}
}

func TestRunBatchIsReproducible(t *testing.T) {
	a, err := New(WithLogger(quietLogger())).RunBatch(context.Background(), "", twoCorners(11), 4)
	if err != nil {
		t.Fatalf("RunBatch() failed: %v", err)
	}
	b, err := New(WithLogger(quietLogger())).RunBatch(context.Background(), "", twoCorners(11), 4)
	if err != nil {
		t.Fatalf("RunBatch() failed: %v", err)
	}
	for i := range a {
		if a[i].Turns != b[i].Turns {
			t.Errorf("run %d: %d turns vs %d", i, a[i].Turns, b[i].Turns)
		}
	}
}

func TestSaverErrorDoesNotFailRun(t *testing.T) {
	saver := &fakeSaver{err: errors.New("disk full")}
	s := New(WithLogger(quietLogger()), WithSaver(saver))

	res, err := s.RunOnce(context.Background(), "", twoCorners(3))
	if err != nil {
		t.Fatalf("RunOnce() failed: %v", err)
	}
	if !res.Completed || res.RunID != "" {
		t.Errorf("result = %+v, want completed run without id", res)
	}
}

func TestSharedStatistics(t *testing.T) {
	stats := sim.NewStatistics()
	s := New(WithLogger(quietLogger()), WithStatistics(stats))

	if _, err := s.RunOnce(context.Background(), "", twoCorners(2)); err != nil {
		t.Fatalf("RunOnce() failed: %v", err)
	}
	if stats.Snapshot().Completed() != 1 {
		t.Error("run should be recorded into shared statistics")
	}
}

func TestMixedParityRunStopsAtCap(t *testing.T) {
	var buf bytes.Buffer
	saver := &fakeSaver{}
	s := New(WithLogger(log.New(&buf)), WithSaver(saver), WithMaxTurns(500))

	cfg := sim.RunConfig{
		Grid:   core.Grid{W: 6, H: 6},
		Starts: []core.Point{core.Pt(0, 0), core.Pt(3, 2)},
		Policy: policies.IDBiasedUnexplored,
		Seed:   4,
	}
	res, err := s.RunOnce(context.Background(), "6-8", cfg)
	if err != nil {
		t.Fatalf("RunOnce() failed: %v", err)
	}
	if res.Completed || res.Turns != 500 || res.Merges != 0 {
		t.Errorf("result = %+v, expected 500 turns without meetings", res)
	}
	if len(saver.saved) != 0 {
		t.Errorf("saved %d results, want 0", len(saver.saved))
	}
	if !strings.Contains(buf.String(), "can never all meet") {
		t.Errorf("expected a warning about mismatched starts, got log:\n%s", buf.String())
	}
}

func TestMatchedParityDoesNotWarn(t *testing.T) {
	var buf bytes.Buffer
	s := New(WithLogger(log.New(&buf)))

	if _, err := s.NewRun(twoCorners(1)); err != nil {
		t.Fatalf("NewRun() failed: %v", err)
	}
	if strings.Contains(buf.String(), "can never all meet") {
		t.Errorf("unexpected warning:\n%s", buf.String())
	}
}
