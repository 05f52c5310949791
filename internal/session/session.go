// Package session runs repeated simulations against one shared set of
// statistics, logging each run and handing completed runs to an optional
// archive.
package session

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/woods/internal/core"
	"github.com/vovakirdan/woods/internal/sim"
)

// ResultSaver is an interface for archiving run results.
// This allows the session to save results without depending on the storage package.
type ResultSaver interface {
	SaveRunResult(result RunResult) (string, error)
}

// RunResult summarizes one finished (or abandoned) run.
type RunResult struct {
	RunID      string // Assigned by the archive, empty when not archived
	Preset     string
	Policy     string
	Grid       core.Grid
	Agents     int
	Turns      int
	Merges     int
	LongestGap int
	Seed       int64
	Completed  bool // False when the turn cap stopped the run
}

// Session owns process-wide statistics for a sequence of runs.
type Session struct {
	stats    *sim.Statistics
	logger   *log.Logger
	saver    ResultSaver // Optional, can be nil
	maxTurns int
}

// Option customizes a Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithSaver archives completed runs through saver.
func WithSaver(saver ResultSaver) Option {
	return func(s *Session) { s.saver = saver }
}

// WithMaxTurns caps headless runs; 0 means no cap.
func WithMaxTurns(n int) Option {
	return func(s *Session) { s.maxTurns = n }
}

// WithStatistics shares existing statistics with the session.
func WithStatistics(stats *sim.Statistics) Option {
	return func(s *Session) { s.stats = stats }
}

// New creates a session with empty statistics.
func New(opts ...Option) *Session {
	s := &Session{}
	for _, opt := range opts {
		opt(s)
	}
	if s.stats == nil {
		s.stats = sim.NewStatistics()
	}
	if s.logger == nil {
		s.logger = NewLogger(log.InfoLevel)
	}
	return s
}

// NewLogger returns the standard stderr logger for woods.
func NewLogger(level log.Level) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "woods",
		Level:           level,
	})
}

// Statistics returns the session-wide statistics.
func (s *Session) Statistics() *sim.Statistics {
	return s.stats
}

// Logger returns the session logger.
func (s *Session) Logger() *log.Logger {
	return s.logger
}

// NewRun starts a run that records into the session statistics.
func (s *Session) NewRun(cfg sim.RunConfig, opts ...sim.Option) (*sim.Run, error) {
	run, err := sim.NewRun(cfg, s.stats, opts...)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("run initialized",
		"policy", run.Policy().ID(),
		"grid", fmtGrid(cfg.Grid),
		"agents", len(cfg.Starts),
		"seed", cfg.Seed,
	)
	if run.ParityLocked() {
		s.logger.Warn("agents start on both checkerboard colors and this policy always moves; they can never all meet",
			"policy", run.Policy().ID(),
			"max_turns", s.maxTurns,
		)
	}
	return run, nil
}

// Drive advances run until it completes, the turn cap is reached, or ctx
// is cancelled. Only the context error is returned.
func (s *Session) Drive(ctx context.Context, preset string, run *sim.Run) (RunResult, error) {
	for {
		if err := ctx.Err(); err != nil {
			return s.result(preset, run, false), err
		}

		res := run.AdvanceTurn()
		for _, m := range res.Merges {
			s.logger.Debug("agents met",
				"turn", res.Turn,
				"a", m.A,
				"b", m.B,
				"at", m.Pos.String(),
				"streak", m.Streak,
				"groups", res.Groups,
			)
		}

		if res.Status == sim.StatusCompleted {
			return s.Finish(preset, run), nil
		}
		if s.maxTurns > 0 && res.Turn >= s.maxTurns {
			s.logger.Warn("run stopped at turn cap",
				"turns", res.Turn,
				"groups", res.Groups,
			)
			return s.result(preset, run, false), nil
		}
	}
}

// Finish logs and archives a completed run. Paced hosts call it once the
// run they drive reports completion.
func (s *Session) Finish(preset string, run *sim.Run) RunResult {
	result := s.result(preset, run, true)
	stats := s.stats.Snapshot()

	if s.saver != nil {
		id, err := s.saver.SaveRunResult(result)
		if err != nil {
			// Best-effort save, the session continues regardless
			s.logger.Warn("could not archive run", "error", err)
		} else {
			result.RunID = id
		}
	}

	s.logger.Info("run completed",
		"turns", result.Turns,
		"policy", result.Policy,
		"runs", stats.Completed(),
		"average", stats.Average,
	)
	return result
}

// RunOnce builds and drives a single run.
func (s *Session) RunOnce(ctx context.Context, preset string, cfg sim.RunConfig) (RunResult, error) {
	run, err := s.NewRun(cfg)
	if err != nil {
		return RunResult{}, err
	}
	return s.Drive(ctx, preset, run)
}

// RunBatch performs n runs, seeding run i with cfg.Seed+i so repeated
// batches are reproducible. It stops early when ctx is cancelled.
func (s *Session) RunBatch(ctx context.Context, preset string, cfg sim.RunConfig, n int) ([]RunResult, error) {
	results := make([]RunResult, 0, n)
	for i := 0; i < n; i++ {
		runCfg := cfg
		runCfg.Seed = cfg.Seed + int64(i)

		res, err := s.RunOnce(ctx, preset, runCfg)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *Session) result(preset string, run *sim.Run, completed bool) RunResult {
	snap := run.Snapshot()
	cfg := run.Config()
	return RunResult{
		Preset:     preset,
		Policy:     run.Policy().ID(),
		Grid:       cfg.Grid,
		Agents:     len(cfg.Starts),
		Turns:      snap.Turn,
		Merges:     snap.Merges,
		LongestGap: snap.LongestGap,
		Seed:       cfg.Seed,
		Completed:  completed,
	}
}

func fmtGrid(g core.Grid) string {
	return fmt.Sprintf("%dx%d", g.W, g.H)
}
