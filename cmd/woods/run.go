package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	runOpts      runFlags
	flagRuns     int
	flagList     bool
	flagMaxTurns int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run simulations headless and print statistics",
	Long: `Run one or more simulations without pacing and print the
statistics collected across them. Run i uses seed+i, so a fixed --seed
reproduces the whole batch.

Examples:
  woods run
  woods run --preset 3-5 --runs 200
  woods run --preset 6-8 --policy biased_unexplored --players 6 --runs 50
  woods run --width 8 --height 8 --start 0,0 --start 7,7 --seed 42`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runOpts.register(runCmd)
	runCmd.Flags().IntVarP(&flagRuns, "runs", "n", 1, "Number of runs")
	runCmd.Flags().BoolVar(&flagList, "list", false, "Print every run")
	runCmd.Flags().IntVar(&flagMaxTurns, "max-turns", 0, "Stop a run after this many turns (0 = config)")
}

func runRun(cmd *cobra.Command, args []string) error {
	if flagRuns < 1 {
		return fmt.Errorf("--runs must be at least 1")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	presetID, rc, err := runOpts.build(cfg)
	if err != nil {
		return err
	}

	logger := newLogger()
	store := openArchive(logger)
	if store != nil {
		defer store.Close()
	}
	maxTurns := cfg.MaxTurns
	if flagMaxTurns > 0 {
		maxTurns = flagMaxTurns
	}
	sess := newSession(logger, store, maxTurns)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, runErr := sess.RunBatch(ctx, presetID, rc, flagRuns)

	if flagList {
		fmt.Printf("  %-5s  %-8s  %-8s  %-5s  %s\n", "Run", "Turns", "Meetings", "Gap", "Seed")
		fmt.Printf("  %-5s  %-8s  %-8s  %-5s  %s\n", "---", "-----", "--------", "---", "----")
		for i, r := range results {
			turns := fmt.Sprintf("%d", r.Turns)
			if !r.Completed {
				turns += "+"
			}
			fmt.Printf("  %-5d  %-8s  %-8d  %-5d  %d\n", i+1, turns, r.Merges, r.LongestGap, r.Seed)
		}
		fmt.Println()
	}

	incomplete := 0
	for _, r := range results {
		if !r.Completed {
			incomplete++
		}
	}

	st := sess.Statistics().Snapshot()
	fmt.Printf("Preset %s, policy %s, %dx%d grid, %d agents\n",
		presetID, rc.Policy, rc.Grid.W, rc.Grid.H, len(rc.Starts))
	fmt.Println()
	fmt.Printf("  Runs completed:        %d\n", st.Completed())
	if st.Completed() > 0 {
		fmt.Printf("  Shortest run:          %d\n", st.Shortest)
		fmt.Printf("  Longest run:           %d\n", st.Longest)
		fmt.Printf("  Average run:           %.2f\n", st.Average)
	}
	fmt.Printf("  Longest time alone:    %d\n", st.LongestWithoutMeeting)
	if incomplete > 0 {
		fmt.Printf("  Stopped at turn cap:   %d\n", incomplete)
	}

	return runErr
}
