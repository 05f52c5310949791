// woods is a terminal host for the "wandering in the woods" simulation:
// agents walk a grid until every one of them has met up.
//
// Usage:
//
//	woods policies           - List movement policies
//	woods presets            - List grade-level presets
//	woods run                - Run simulations headless and print statistics
//	woods watch              - Watch runs turn by turn in the terminal
//	woods history            - Show archived runs
//
// Global flags:
//
//	--config <path>     - Custom config YAML
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set archive path (default: ~/.woods/runs.db)
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/woods/internal/config"
	"github.com/vovakirdan/woods/internal/session"
	"github.com/vovakirdan/woods/internal/storage"

	// Import policies to register them
	_ "github.com/vovakirdan/woods/internal/policies"
)

var (
	// Global flags
	flagConfig    string
	flagSeed      int64
	flagDBPath    string
	flagNoArchive bool
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "woods",
	Short: "Wandering in the Woods - agents roam a grid until they all meet",
	Long: `Wandering in the Woods places agents on a grid and moves them one step
per turn. Agents that land on the same cell join up and wander on together
until a single group remains.

Available commands:
  policies - Show movement policies
  presets  - Show grade-level presets
  run      - Run simulations and print statistics
  watch    - Watch runs turn by turn
  history  - Show archived runs

Examples:
  woods presets
  woods run --preset 3-5 --runs 100
  woods watch --preset k2
  woods watch --preset 6-8 --policy biased_unexplored --players 4
  woods history --policy random`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.woods/runs.db", "Path to run archive database")
	rootCmd.PersistentFlags().BoolVar(&flagNoArchive, "no-archive", false, "Do not archive completed runs")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(policiesCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
}

// newLogger builds the stderr logger from --log-level.
func newLogger() *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return session.NewLogger(level)
}

// loadConfig loads settings, honouring --config.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// openArchive opens the run archive. Failures are logged and yield nil
// so simulations still work without storage.
func openArchive(logger *log.Logger) *storage.Store {
	if flagNoArchive {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run archive", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// newSession wires the logger and optional archive into a session.
func newSession(logger *log.Logger, store *storage.Store, maxTurns int) *session.Session {
	opts := []session.Option{
		session.WithLogger(logger),
		session.WithMaxTurns(maxTurns),
	}
	if store != nil {
		opts = append(opts, session.WithSaver(store))
	}
	return session.New(opts...)
}
