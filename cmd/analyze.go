package cmd

import (
	"github.com/huangsam/buildpulse/core"
	"github.com/huangsam/buildpulse/internal/history"
	"github.com/huangsam/buildpulse/internal/platform"
	"github.com/spf13/cobra"
)

// analyzeCmd runs the build-timing analysis for one report. It is the
// explicit form of the root command's positional invocation.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <report> [command]",
	Short: "Analyze a Cargo build-timing HTML report.",
	Long: `Parse a cargo-timing HTML report and print a timing breakdown.

Reports are produced by cargo with the --timings flag, typically under
target/cargo-timings/. The analysis shows:
- Total build time and total time spent blocked
- Number of compilation units
- The first unit to start and the last unit to finish
- Optionally a ranked table of the slowest units (--top)

A JSON summary of every analysis is saved under the platform data
directory, and the run is recorded in the history store for later
comparison.

Examples:
  # Analyze the latest timing report
  buildpulse analyze target/cargo-timings/cargo-timing.html

  # Associate the build command with the recorded run
  buildpulse analyze cargo-timing.html "cargo build --release"

  # Show the 10 slowest units
  buildpulse analyze cargo-timing.html --top 10

  # Export per-unit data to CSV
  buildpulse analyze cargo-timing.html --output csv --output-file units.csv`,
	Args:    cobra.RangeArgs(1, 2),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteBuildAnalysis(cfg, platform.Host(), history.ActiveStore())
	},
}
