// Package cmd defines the command-line interface for klord.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/viratco/klord/internal/contract"
	"github.com/viratco/klord/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(runsCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("source", string(schema.HTTPSource), "Record source: http or file")
	rootCmd.PersistentFlags().String("api-url", "", "Base URL of the booking backend (e.g., https://api.example.com)")
	rootCmd.PersistentFlags().String("api-path", contract.DefaultAPIPath, "Path of the records endpoint on the booking backend")
	rootCmd.PersistentFlags().String("api-token", "", "Bearer token for the booking backend (prefer KLORD_API_TOKEN)")
	rootCmd.PersistentFlags().String("api-timeout", contract.DefaultAPITimeout.String(), "Timeout for backend requests (e.g., 15s, 1m)")
	rootCmd.PersistentFlags().StringP("input", "i", "", "JSON file with records when --source file ('-' reads stdin)")
	rootCmd.PersistentFlags().StringP("mode", "m", string(schema.MonthlyFrame), "Time frame: monthly or yearly or weekly")
	rootCmd.PersistentFlags().String("now", "", "Reference time in RFC3339, YYYY-MM-DD or time ago (default: current time)")
	rootCmd.PersistentFlags().StringP("kind", "k", string(schema.LineChart), "Chart kind: line or progress or bar or compact")
	rootCmd.PersistentFlags().StringP("series", "s", string(schema.StepsSeries), "Series to chart: steps or completed or leads")
	rootCmd.PersistentFlags().Int("width", contract.DefaultChartWidth, "Chart width in pixels")
	rootCmd.PersistentFlags().Int("height", contract.DefaultChartHeight, "Chart height in pixels")
	rootCmd.PersistentFlags().Int("window", contract.DefaultWindow, "Rolling average window in buckets (1 disables smoothing)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or svg or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("table-width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("runs-backend", "", "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("runs-db-connect", "", "Database connection string for run history (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultAddr, "Address the HTTP server listens on")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
