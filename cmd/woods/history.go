package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/woods/internal/policies"
	"github.com/vovakirdan/woods/internal/registry"
	"github.com/vovakirdan/woods/internal/storage"
)

var (
	flagHistoryPolicy string
	flagHistoryLimit  int
	flagHistoryClear  bool
	flagHistoryRun    string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show archived runs",
	Long: `Display recently archived runs and per-policy summaries.

Examples:
  woods history
  woods history --policy random --limit 20
  woods history --run 3f2a9c1e
  woods history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryPolicy, "policy", "", "Only show runs of this policy")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete archived runs (of --policy, or all)")
	historyCmd.Flags().StringVar(&flagHistoryRun, "run", "", "Show one run by ID or ID prefix")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run archive: %w", err)
	}
	defer store.Close()

	if flagHistoryRun != "" {
		return showRun(store, flagHistoryRun)
	}

	policy := ""
	if flagHistoryPolicy != "" {
		policy = policies.Resolve(flagHistoryPolicy)
		if !registry.Exists(policy) {
			return fmt.Errorf("unknown policy %q (see 'woods policies')", flagHistoryPolicy)
		}
	}

	if flagHistoryClear {
		if err := store.ClearRuns(policy); err != nil {
			return err
		}
		fmt.Println("Archive cleared.")
		return nil
	}

	var runs []storage.RunRecord
	if policy != "" {
		runs, err = store.RunsForPolicy(policy, flagHistoryLimit)
	} else {
		runs, err = store.RecentRuns(flagHistoryLimit)
	}
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs archived yet.")
		fmt.Println()
		fmt.Println("Run 'woods run' or 'woods watch' to record some.")
		return nil
	}

	fmt.Printf("  %-8s  %-6s  %-18s  %-6s  %-6s  %-6s  %s\n",
		"Run", "Preset", "Policy", "Grid", "Agents", "Turns", "Date")
	fmt.Printf("  %-8s  %-6s  %-18s  %-6s  %-6s  %-6s  %s\n",
		"---", "------", "------", "----", "------", "-----", "----")
	for _, r := range runs {
		fmt.Printf("  %-8s  %-6s  %-18s  %-6s  %-6d  %-6d  %s\n",
			r.RunID[:min(8, len(r.RunID))], r.Preset, r.Policy,
			fmt.Sprintf("%dx%d", r.GridW, r.GridH), r.Agents, r.Turns,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if policy != "" {
		s, err := store.PolicySummary(policy)
		if err != nil {
			return err
		}
		printSummary(s)
		return nil
	}

	summaries, err := store.AllPolicySummaries()
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(summaries))
	for id := range summaries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		printSummary(summaries[id])
	}
	return nil
}

func printSummary(s *storage.PolicyStats) {
	fmt.Printf("%s: %d runs, shortest %d, longest %d, average %.2f\n",
		s.Policy, s.Runs, s.Shortest, s.Longest, s.AvgTurns)
}

// showRun prints every field of one archived run.
func showRun(store *storage.Store, id string) error {
	r, err := store.RunByID(id)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("no archived run %q", id)
	}

	fmt.Printf("Run %s\n", r.RunID)
	fmt.Println()
	fmt.Printf("  Date:         %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Preset:       %s\n", r.Preset)
	fmt.Printf("  Policy:       %s\n", r.Policy)
	fmt.Printf("  Grid:         %dx%d\n", r.GridW, r.GridH)
	fmt.Printf("  Agents:       %d\n", r.Agents)
	fmt.Printf("  Turns:        %d\n", r.Turns)
	fmt.Printf("  Meetings:     %d\n", r.Merges)
	fmt.Printf("  Longest gap:  %d\n", r.LongestGap)
	fmt.Printf("  Seed:         %d\n", r.Seed)
	return nil
}
