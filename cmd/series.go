package cmd

import (
	"github.com/spf13/cobra"

	"github.com/viratco/klord/core"
	"github.com/viratco/klord/internal/contract"
)

// seriesCmd aggregates records into calendar buckets.
var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Show bucketed booking progress for the current month, year or week.",
	Long: `Aggregate booking records into fixed calendar buckets relative to a reference time.

For every bucket, reports:
- Average completed steps per booking (rounded)
- Number of completed bookings (certificate or all steps done)
- Number of leads that fell into the bucket

Modes:
  monthly - 31 day buckets of the current month
  yearly  - 12 month buckets of the current year
  weekly  - 7 weekday buckets of the current week (Sunday first)

Examples:
  # Monthly progress from the booking backend
  klord series --api-url https://api.example.com

  # Yearly progress from a local export
  klord series --source file --input leads.json --mode yearly

  # Pin the reference time and smooth over 3 buckets
  klord series --now 2024-03-15 --window 3

  # Export the series for a notebook
  klord series --output parquet --output-file series.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSeries(rootCtx, cfg, recordSource, cacheManager); err != nil {
			contract.LogFatal("Cannot aggregate series", err)
		}
	},
}
