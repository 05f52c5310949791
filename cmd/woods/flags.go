package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/woods/internal/config"
	"github.com/vovakirdan/woods/internal/core"
	"github.com/vovakirdan/woods/internal/sim"
)

// runFlags are shared by run and watch.
type runFlags struct {
	preset  string
	policy  string
	width   int
	height  int
	players int
	starts  []string
	cascade bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.preset, "preset", "", "Grade preset: k2, 3-5, 6-8 (default from config)")
	cmd.Flags().StringVar(&f.policy, "policy", "", "Movement policy (presets that allow it)")
	cmd.Flags().IntVar(&f.width, "width", 0, "Grid width (0 = preset)")
	cmd.Flags().IntVar(&f.height, "height", 0, "Grid height (0 = preset)")
	cmd.Flags().IntVar(&f.players, "players", 0, "Number of agents (0 = preset)")
	cmd.Flags().StringArrayVar(&f.starts, "start", nil, "Explicit start cell x,y (repeatable)")
	cmd.Flags().BoolVar(&f.cascade, "cascade", false, "Resolve every meeting in the same turn")
}

// build resolves the flags against cfg into a run configuration.
func (f *runFlags) build(cfg config.Config) (string, sim.RunConfig, error) {
	presetID, _, err := cfg.Preset(f.preset)
	if err != nil {
		return "", sim.RunConfig{}, err
	}

	starts, err := parseStarts(f.starts)
	if err != nil {
		return "", sim.RunConfig{}, err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rc, err := cfg.BuildRun(presetID, config.Overrides{
		Width:   f.width,
		Height:  f.height,
		Players: f.players,
		Policy:  f.policy,
		Starts:  starts,
		Seed:    seed,
		Cascade: f.cascade,
	})
	if err != nil {
		return "", sim.RunConfig{}, err
	}
	return presetID, rc, nil
}

// parseStarts parses "x,y" cells.
func parseStarts(values []string) ([]core.Point, error) {
	out := make([]core.Point, 0, len(values))
	for _, v := range values {
		xs, ys, ok := strings.Cut(v, ",")
		if !ok {
			return nil, fmt.Errorf("bad start %q: expected x,y", v)
		}
		x, err := strconv.Atoi(strings.TrimSpace(xs))
		if err != nil {
			return nil, fmt.Errorf("bad start %q: %w", v, err)
		}
		y, err := strconv.Atoi(strings.TrimSpace(ys))
		if err != nil {
			return nil, fmt.Errorf("bad start %q: %w", v, err)
		}
		out = append(out, core.Pt(x, y))
	}
	return out, nil
}

// parseDelay accepts Go durations ("250ms") or plain seconds ("1.5").
func parseDelay(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad delay %q", s)
	}
	return time.Duration(secs * float64(time.Second)), nil
}
