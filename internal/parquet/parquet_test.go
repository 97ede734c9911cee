package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viratco/klord/schema"
)

// readAll reads every row of a Parquet file back into memory.
func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err, "Should be able to open output file")
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	return rows[:n]
}

func TestRunStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(Run))
	for _, colName := range []string{"run_id", "start_time", "end_time", "run_duration_ms", "total_records", "mode", "config_params"} {
		_, ok := s.Lookup(colName)
		assert.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestWriteRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")

	start := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	end := start.Add(1500 * time.Millisecond)
	duration := int32(1500)
	params := `{"mode":"monthly"}`
	data := []Run{
		{RunID: 1, StartTime: start, EndTime: &end, RunDurationMs: &duration, TotalRecords: 42, Mode: "monthly", ConfigParams: &params},
		{RunID: 2, StartTime: start.Add(time.Hour), Mode: "yearly"},
	}

	require.NoError(t, WriteRunsParquet(data, outputPath))

	got := readAll[Run](t, outputPath)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].RunID)
	assert.Equal(t, int32(42), got[0].TotalRecords)
	require.NotNil(t, got[0].EndTime)
	assert.WithinDuration(t, end, *got[0].EndTime, time.Nanosecond)
	require.NotNil(t, got[0].RunDurationMs)
	assert.Equal(t, duration, *got[0].RunDurationMs)
	require.NotNil(t, got[0].ConfigParams)
	assert.Equal(t, params, *got[0].ConfigParams)

	assert.Equal(t, "yearly", got[1].Mode)
	assert.Nil(t, got[1].EndTime, "EndTime should be nil")
	assert.Nil(t, got[1].RunDurationMs, "RunDurationMs should be nil")
	assert.Nil(t, got[1].ConfigParams, "ConfigParams should be nil")
}

func TestWriteRunBucketsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "run_buckets.parquet")
	records := []schema.RunBucketRecord{
		{RunID: 1, BucketIndex: 0, Label: "Jan", StepsSum: 4, StepsCount: 2, CompletedBookings: 1, StepsAvg: 2},
		{RunID: 1, BucketIndex: 1, Label: "Feb"},
	}

	require.NoError(t, WriteRunBucketsParquet(ConvertRunBucketRecords(records), outputPath))

	got := readAll[RunBucket](t, outputPath)
	require.Len(t, got, 2)
	assert.Equal(t, "Jan", got[0].Label)
	assert.Equal(t, int32(4), got[0].StepsSum)
	assert.InDelta(t, 2.0, got[0].StepsAvg, 0.0001)
	assert.Equal(t, int32(1), got[1].BucketIndex)
}

func TestWriteRunsParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteRunsParquet([]Run{}, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain Parquet metadata")
	assert.Empty(t, readAll[Run](t, outputPath))
}

func TestWriteRunsParquet_InvalidPath(t *testing.T) {
	err := WriteRunsParquet(nil, filepath.Join(t.TempDir(), "missing", "runs.parquet"))
	assert.ErrorContains(t, err, "failed to create output file")
}

func TestConvertAggregateResult(t *testing.T) {
	res := schema.AggregateResult{
		Mode: schema.YearlyFrame,
		StepsAvg: []schema.SeriesPoint{
			{X: 1, Y: 3, Label: "Jan"},
			{X: 2, Y: 0, Label: "Feb"},
		},
		Buckets: []schema.Bucket{
			{StepsSum: 6, StepsCount: 2, CompletedBookings: 1},
			{},
		},
	}

	rows := ConvertAggregateResult(res)
	require.Len(t, rows, 2)
	assert.Equal(t, SeriesRow{Mode: "yearly", X: 1, Label: "Jan", StepsAvg: 3, CompletedBookings: 1, Leads: 2, StepsSum: 6}, rows[0])
	assert.Equal(t, "Feb", rows[1].Label)

	outputPath := filepath.Join(t.TempDir(), "series.parquet")
	require.NoError(t, WriteSeriesParquet(rows, outputPath))
	assert.Len(t, readAll[SeriesRow](t, outputPath), 2)
}

func TestConvertRunRecords(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	runs := ConvertRunRecords([]schema.RunRecord{{RunID: 7, StartTime: start, TotalRecords: 3, Mode: "weekly"}})
	require.Len(t, runs, 1)
	assert.Equal(t, Run{RunID: 7, StartTime: start, TotalRecords: 3, Mode: "weekly"}, runs[0])
}
