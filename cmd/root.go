package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/elevator-sim/elevator-sim/sim"
	"github.com/elevator-sim/elevator-sim/sim/match"
	"github.com/elevator-sim/elevator-sim/sim/trace"
)

var (
	seed        int64  // Seed of the match (world spawns and each side's mirror)
	ticks       int    // Number of ticks to play
	logLevel    string // Log verbosity level
	presetsPath string // YAML file with policy presets
	leftPreset  string // Preset driving the left side
	rightPreset string // Preset driving the right side
	traceLevel  string // Decision trace verbosity
	traceTopK   int    // Ranked candidates kept per traced decision
	workers     int    // Rollout worker goroutines per decision (0 keeps the preset value)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "elevator-sim",
	Short: "Deterministic two-sided elevator dispatch simulator",
}

// runCmd plays a single match using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play one match between two policy presets",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		left, right := loadSides()
		tc := traceConfig()

		key := sim.NewSimulationKey(seed)
		m, err := match.New(key, left, right, tc)
		if err != nil {
			logrus.Fatalf("Failed to build match: %v", err)
		}
		logrus.Infof("Starting match seed=%d ticks=%d left=%s right=%s", seed, ticks, leftPreset, rightPreset)

		res := m.Run(ticks)
		res.Print(os.Stdout)
		logrus.Info("Match complete.")
	},
}

// setupLogging applies --log; an unknown level is fatal.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

func traceConfig() trace.TraceConfig {
	if !trace.IsValidTraceLevel(traceLevel) {
		logrus.Fatalf("Invalid trace level: %s (valid: none, decisions)", traceLevel)
	}
	if traceTopK < 0 {
		logrus.Fatalf("--trace-top-k must be non-negative, got %d", traceTopK)
	}
	return trace.TraceConfig{Level: trace.TraceLevel(traceLevel), TopK: traceTopK}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerMatchFlags adds the flags shared by run and compare.
func registerMatchFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&seed, "seed", 251000, "Seed of the match")
	cmd.Flags().IntVar(&ticks, "ticks", sim.GameTicks, "Number of ticks to play")
	cmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	cmd.Flags().StringVar(&presetsPath, "presets", "", "Path to a policy presets YAML file")
	cmd.Flags().StringVar(&leftPreset, "left", "default", "Policy preset for the left side")
	cmd.Flags().StringVar(&rightPreset, "right", "default", "Policy preset for the right side")
	cmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Decision trace level (none, decisions)")
	cmd.Flags().IntVar(&traceTopK, "trace-top-k", 3, "Ranked candidate floors kept per traced decision")
	cmd.Flags().IntVar(&workers, "workers", 0, "Rollout worker goroutines per decision (0 keeps the preset value)")
}

// init sets up CLI flags and subcommands
func init() {
	registerMatchFlags(runCmd)
	registerMatchFlags(compareCmd)
	compareCmd.Flags().IntVar(&iterations, "iterations", 10, "Number of matches, seeds advance by 12345")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
}
