package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/woods/internal/platform/tui"
)

var (
	watchOpts runFlags
	flagDelay string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch runs turn by turn",
	Long: `Step a run on a timer and show its progress and statistics.

Controls:
  +/-        - Faster/slower
  P/Space    - Pause
  S          - Single step while paused
  R          - Replay the same run
  N          - New run with a fresh seed
  Q/Ctrl+C   - Quit

Examples:
  woods watch
  woods watch --preset 3-5 --delay 200ms
  woods watch --preset 6-8 --policy random_valid --players 8`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchOpts.register(watchCmd)
	watchCmd.Flags().StringVar(&flagDelay, "delay", "", "Turn delay, e.g. 250ms (default from config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagDelay != "" {
		d, err := parseDelay(flagDelay)
		if err != nil {
			return err
		}
		cfg.TurnDelay = d
	}

	presetID, rc, err := watchOpts.build(cfg)
	if err != nil {
		return err
	}

	logger := newLogger()
	store := openArchive(logger)
	if store != nil {
		defer store.Close()
	}
	sess := newSession(logger, store, 0)

	run, err := sess.NewRun(rc)
	if err != nil {
		return err
	}

	rt := cfg.Runtime(rc.Grid, rc.Seed)
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}

	return tui.Watch(sess, run, presetID, cfg.Limits, rt)
}
