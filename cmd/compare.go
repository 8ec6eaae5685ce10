package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/elevator-sim/elevator-sim/sim/match"
)

var iterations int // Number of matches played by compare

// compareCmd plays a series of matches with advancing seeds and summarizes them
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Play a series of matches between two presets and summarize",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		left, right := loadSides()
		tc := traceConfig()

		logrus.Infof("Comparing %s (left) vs %s (right) over %d runs from seed %d", leftPreset, rightPreset, iterations, seed)
		cmp, err := match.Compare(seed, iterations, ticks, left, right, tc)
		if err != nil {
			logrus.Fatalf("Comparison failed: %v", err)
		}
		cmp.Print(os.Stdout)
	},
}
