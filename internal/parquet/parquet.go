// Package parquet exports aggregation series and run history to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/viratco/klord/schema"
)

// Run represents a single aggregation run with metadata.
// This struct maps to the klord_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalRecords is the number of records fetched for this run
	TotalRecords int32 `parquet:"total_records,snappy"`

	// Mode is the time frame the run aggregated over
	Mode string `parquet:"mode,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// RunBucket is one aggregated bucket recorded for a run.
// This struct maps to the klord_run_buckets database table.
type RunBucket struct {
	RunID             int64   `parquet:"run_id,snappy"`
	BucketIndex       int32   `parquet:"bucket_index,snappy"`
	Label             string  `parquet:"label,snappy"`
	StepsSum          int32   `parquet:"steps_sum,snappy"`
	StepsCount        int32   `parquet:"steps_count,snappy"`
	CompletedBookings int32   `parquet:"completed_bookings,snappy"`
	StepsAvg          float64 `parquet:"steps_avg,snappy"`
}

// SeriesRow is one bucket of a freshly computed aggregation.
type SeriesRow struct {
	Mode              string  `parquet:"mode,snappy"`
	X                 int32   `parquet:"x,snappy"`
	Label             string  `parquet:"label,snappy"`
	StepsAvg          float64 `parquet:"steps_avg,snappy"`
	CompletedBookings int32   `parquet:"completed_bookings,snappy"`
	Leads             int32   `parquet:"leads,snappy"`
	StepsSum          int32   `parquet:"steps_sum,snappy"`
}

// writeParquet writes rows of any struct type to a Parquet file.
// The schema is derived from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRunBucketsParquet writes a slice of RunBucket structs to a Parquet file.
func WriteRunBucketsParquet(data []RunBucket, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteSeriesParquet writes a slice of SeriesRow structs to a Parquet file.
func WriteSeriesParquet(data []SeriesRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalRecords:  record.TotalRecords,
			Mode:          record.Mode,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertRunBucketRecords converts schema.RunBucketRecord to RunBucket for Parquet export.
func ConvertRunBucketRecords(records []schema.RunBucketRecord) []RunBucket {
	result := make([]RunBucket, len(records))
	for i, record := range records {
		result[i] = RunBucket(record)
	}
	return result
}

// ConvertAggregateResult flattens an aggregation into one row per bucket.
func ConvertAggregateResult(res schema.AggregateResult) []SeriesRow {
	result := make([]SeriesRow, len(res.Buckets))
	for i, b := range res.Buckets {
		row := SeriesRow{
			Mode:              string(res.Mode),
			X:                 int32(i + 1),
			Label:             schema.BucketLabel(res.Mode, i),
			CompletedBookings: int32(b.CompletedBookings),
			Leads:             int32(b.StepsCount),
			StepsSum:          int32(b.StepsSum),
		}
		if i < len(res.StepsAvg) {
			row.StepsAvg = res.StepsAvg[i].Y
		}
		result[i] = row
	}
	return result
}
