package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/viratco/klord/internal/contract"
	"github.com/viratco/klord/internal/parquet"
)

// ExportRuns writes the run history of store to two Parquet files derived
// from outputFile and reports progress to w.
func ExportRuns(w io.Writer, store contract.RunStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("run store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total bucket rows: %d\n", status.TableSizes[runBucketsTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	buckets, err := store.GetAllBuckets()
	if err != nil {
		return fmt.Errorf("failed to retrieve run buckets: %w", err)
	}

	parquetRuns := parquet.ConvertRunRecords(runs)
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	parquetBuckets := parquet.ConvertRunBucketRecords(buckets)
	bucketsFile := outputFile + ".run_buckets.parquet"
	if err := parquet.WriteRunBucketsParquet(parquetBuckets, bucketsFile); err != nil {
		return fmt.Errorf("failed to write run buckets: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d bucket rows to: %s\n", len(parquetBuckets), bucketsFile)

	return nil
}
