package cmd

import (
	"github.com/spf13/cobra"

	"github.com/viratco/klord/core"
	"github.com/viratco/klord/internal/contract"
)

// chartCmd builds chart geometry from one aggregated series.
var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Build chart geometry for one aggregated series.",
	Long: `Aggregate booking records and turn one series into dashboard chart geometry.

Kinds:
  line     - smoothed line scaled around the mean
  progress - smoothed line with an area fill, deviation rounded up to tens
  bar      - one bottom-anchored bar per bucket
  compact  - line over the thirds of the month (monthly mode only)

Series:
  steps     - average completed steps
  completed - completed bookings
  leads     - leads per bucket

Examples:
  # Render a progress chart as SVG
  klord chart --kind progress --output svg --output-file progress.svg

  # Bar chart of leads for the year
  klord chart --kind bar --series leads --mode yearly

  # Raw geometry for a custom renderer
  klord chart --output json --width 320 --height 140`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteChart(rootCtx, cfg, recordSource, cacheManager); err != nil {
			contract.LogFatal("Cannot build chart", err)
		}
	},
}
