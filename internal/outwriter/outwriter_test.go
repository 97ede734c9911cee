package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viratco/klord/core/geom"
	"github.com/viratco/klord/internal/contract"
	"github.com/viratco/klord/schema"
)

func sampleSeries() schema.AggregateResult {
	return schema.AggregateResult{
		Mode: schema.YearlyFrame,
		StepsAvg: []schema.SeriesPoint{
			{X: 1, Y: 2.5, Label: "Jan"},
			{X: 2, Y: 0, Label: "Feb"},
		},
		Completed: []schema.SeriesPoint{
			{X: 1, Y: 1, Label: "Jan"},
			{X: 2, Y: 0, Label: "Feb"},
		},
		Leads: []schema.SeriesPoint{
			{X: 1, Y: 2, Label: "Jan"},
			{X: 2, Y: 0, Label: "Feb"},
		},
		Buckets: []schema.Bucket{
			{StepsSum: 5, StepsCount: 2, CompletedBookings: 1},
			{},
		},
		MaxSteps:     8,
		CompletedMax: 1,
		TotalRecords: 3,
		InWindow:     2,
	}
}

func captureHeader(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := headerOut
	headerOut = &buf
	t.Cleanup(func() { headerOut = prev })
	return &buf
}

func TestWriteSeriesTable(t *testing.T) {
	cfg := &contract.Config{Precision: 1, Window: 1, CacheBackend: schema.SQLiteBackend}
	fmtFloat := floatFormatter(cfg.Precision)

	var buf bytes.Buffer
	require.NoError(t, writeSeriesTable(&buf, sampleSeries(), cfg, fmtFloat, 150*time.Millisecond))

	output := buf.String()
	assert.Contains(t, output, "Jan")
	assert.Contains(t, output, "Feb")
	assert.Contains(t, output, "2.5")
	assert.Contains(t, output, "Records: 3 total, 2 in window")
	assert.Contains(t, output, "Aggregation completed in 150ms. Cache backend: sqlite")
}

func TestWriteSeriesTableMonthlyLabels(t *testing.T) {
	cfg := &contract.Config{Precision: 1, Window: 1}
	fmtFloat := floatFormatter(cfg.Precision)
	res := schema.AggregateResult{Mode: schema.MonthlyFrame, Buckets: make([]schema.Bucket, 2)}

	var buf bytes.Buffer
	require.NoError(t, writeSeriesTable(&buf, res, cfg, fmtFloat, 0))
	assert.Contains(t, buf.String(), "Day 2")
}

func TestWriteCSVSeries(t *testing.T) {
	fmtFloat := floatFormatter(2)

	var buf bytes.Buffer
	require.NoError(t, writeCSVSeries(&buf, sampleSeries(), fmtFloat))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"x", "label", "steps_avg", "completed", "leads", "steps_sum", "steps_count"}, records[0])
	assert.Equal(t, []string{"1", "Jan", "2.50", "1.00", "2.00", "5", "2"}, records[1])
	assert.Equal(t, []string{"2", "Feb", "0.00", "0.00", "0.00", "0", "0"}, records[2])
}

func TestPrintSeriesResultToFile(t *testing.T) {
	header := captureHeader(t)
	dir := t.TempDir()

	t.Run("json", func(t *testing.T) {
		out := filepath.Join(dir, "series.json")
		cfg := &contract.Config{Output: schema.JSONOut, OutputFile: out, Precision: 1}
		require.NoError(t, PrintSeriesResult(sampleSeries(), cfg, time.Second))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		var decoded schema.AggregateResult
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, sampleSeries().StepsAvg, decoded.StepsAvg)
		assert.Contains(t, header.String(), "Wrote JSON series")
	})

	t.Run("parquet", func(t *testing.T) {
		out := filepath.Join(dir, "series.parquet")
		cfg := &contract.Config{Output: schema.ParquetOut, OutputFile: out, Precision: 1}
		require.NoError(t, PrintSeriesResult(sampleSeries(), cfg, time.Second))
		assert.FileExists(t, out)
	})

	t.Run("svg rejected", func(t *testing.T) {
		cfg := &contract.Config{Output: schema.SVGOut, Precision: 1}
		assert.Error(t, PrintSeriesResult(sampleSeries(), cfg, time.Second))
	})
}

func TestWriteSVGLine(t *testing.T) {
	series := []schema.SeriesPoint{{X: 1, Y: 1}, {X: 2, Y: 3}, {X: 3, Y: 2}}
	chart := geom.ProgressChart(series, 300, 120)

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, chart))

	output := buf.String()
	assert.True(t, strings.HasPrefix(output, `<svg xmlns="http://www.w3.org/2000/svg" width="300" height="120"`))
	assert.Contains(t, output, `d="`+chart.LinePath+`"`)
	assert.Contains(t, output, `d="`+chart.AreaPath+`"`)
	assert.Equal(t, 3, strings.Count(output, "<circle"))
	assert.True(t, strings.HasSuffix(output, "</svg>\n"))
}

func TestWriteSVGBars(t *testing.T) {
	series := []schema.SeriesPoint{{X: 1, Y: 2, Label: "A&B"}, {X: 2, Y: 4}}
	chart := geom.BarChart(series, 4, 100, 50)

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, chart))

	output := buf.String()
	assert.Equal(t, 2, strings.Count(output, "<rect"))
	assert.Contains(t, output, "<title>A&amp;B</title>")
	assert.NotContains(t, output, "<path")
}

func TestWriteChartTable(t *testing.T) {
	series := []schema.SeriesPoint{{X: 1, Y: 10, Label: "1-10"}, {X: 2, Y: 20, Label: "11-20"}}
	result := schema.ChartResult{Mode: schema.MonthlyFrame, Series: schema.StepsSeries, Chart: geom.LineChart(series, 300, 120)}
	cfg := &contract.Config{Precision: 1}
	fmtFloat := floatFormatter(cfg.Precision)

	var buf bytes.Buffer
	require.NoError(t, writeChartTable(&buf, result, cfg, fmtFloat, 0))

	output := buf.String()
	assert.Contains(t, output, "11-20")
	assert.Contains(t, output, "Chart: line of steps series (monthly), 300x120 px")
	assert.Contains(t, output, "Mean: 15.0, max deviation: 5.0")
	assert.Contains(t, output, "Line path: M0,")
}

func TestWriteCSVChartBars(t *testing.T) {
	chart := geom.BarChart([]schema.SeriesPoint{{X: 1, Y: 5, Label: "Mon"}}, 10, 100, 40)
	fmtFloat := floatFormatter(1)

	var buf bytes.Buffer
	require.NoError(t, writeCSVChart(&buf, chart, fmtFloat))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"1", "Mon", "5.0", "20.0", "20.0", "60.0", "20.0"}, records[1])
}

func TestWriteRecords(t *testing.T) {
	rows := []schema.RecordRow{
		{Rank: 1, ID: "lead-1", Timestamp: "2024-03-15 10:00", CompletedSteps: 4, TotalSteps: 4, Completion: 100, Certified: true, Label: "Completed"},
		{Rank: 2, ID: "lead-2", CompletedSteps: 0, TotalSteps: 3, Completion: 0, Label: "Not Started"},
	}

	t.Run("table", func(t *testing.T) {
		cfg := &contract.Config{TableWidth: 120, CacheBackend: schema.NoneBackend}
		var buf bytes.Buffer
		require.NoError(t, writeRecordsTable(&buf, rows, cfg, 0))

		output := buf.String()
		assert.Contains(t, output, "lead-1")
		assert.Contains(t, output, "4/4")
		assert.Contains(t, output, "100%")
		assert.Contains(t, output, "Not Started")
		assert.Contains(t, output, "Listing of 2 records completed")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeCSVRecords(&buf, rows))

		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, []string{"1", "lead-1", "2024-03-15 10:00", "4", "4", "100", "true", "Completed"}, records[1])
	})

	t.Run("parquet rejected", func(t *testing.T) {
		cfg := &contract.Config{Output: schema.ParquetOut}
		assert.Error(t, PrintRecords(rows, cfg, 0))
	})
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "short", truncateID("short", 10))
	assert.Equal(t, "...6789", truncateID("0123456789", 7))
}

func TestGetMaxTableIDWidth(t *testing.T) {
	assert.Equal(t, 8, GetMaxTableIDWidth(&contract.Config{TableWidth: 40}))
	assert.Equal(t, 30, GetMaxTableIDWidth(&contract.Config{TableWidth: 100}))
	assert.Equal(t, 40, GetMaxTableIDWidth(&contract.Config{TableWidth: 300}))
}

func TestLogRunHeader(t *testing.T) {
	header := captureHeader(t)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) // Friday

	LogRunHeader(&contract.Config{Mode: schema.WeeklyFrame, Now: now, NowPinned: true}, "leads.json")

	assert.Equal(t, "🔎 Source: leads.json (Mode: weekly)\n📅 Window: 2024-03-10 → 2024-03-16 (pinned)\n", header.String())
}

func TestDescribeWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "March 2024", describeWindow(schema.MonthlyFrame, now))
	assert.Equal(t, "2024", describeWindow(schema.YearlyFrame, now))
}
