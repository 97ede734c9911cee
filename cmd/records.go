package cmd

import (
	"github.com/spf13/cobra"

	"github.com/viratco/klord/core"
	"github.com/viratco/klord/internal/contract"
)

// recordsCmd lists the records of the current window.
var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List the bookings of the current window with their completion.",
	Long: `List every booking whose timestamp falls into the current window.

Shows the completed and total steps of each booking, its completion
percentage and a status label. A certificate always counts as complete.

Examples:
  # Bookings of this month
  klord records

  # Bookings of this week as CSV
  klord records --mode weekly --output csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRecords(rootCtx, cfg, recordSource, cacheManager); err != nil {
			contract.LogFatal("Cannot list records", err)
		}
	},
}
