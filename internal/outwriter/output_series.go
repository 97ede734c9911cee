package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/viratco/klord/internal/contract"
	"github.com/viratco/klord/internal/parquet"
	"github.com/viratco/klord/schema"
)

// PrintSeriesResult outputs an aggregation, dispatching based on the output format configured.
func PrintSeriesResult(result schema.AggregateResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := floatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON series"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVSeries(w, result, fmtFloat)
		}, "Wrote CSV series"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteSeriesParquet(parquet.ConvertAggregateResult(result), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		_, _ = fmt.Fprintf(headerOut, "💾 Wrote Parquet series to %s\n", cfg.OutputFile)
	case schema.SVGOut:
		return fmt.Errorf("svg output is only supported by the chart command")
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSeriesTable(w, result, cfg, fmtFloat, duration)
		}, "Wrote series table"); err != nil {
			return fmt.Errorf("error writing series table output: %w", err)
		}
	}
	return nil
}

// writeSeriesTable prints one row per bucket.
func writeSeriesTable(w io.Writer, result schema.AggregateResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Bucket", "Label", "Avg Steps", "Completed", "Leads"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// Counts are whole numbers unless a rolling window smoothed them
	fmtCount := func(v float64) string { return fmt.Sprintf("%.0f", v) }
	if cfg.Window > 1 {
		fmtCount = fmtFloat
	}

	var data [][]string
	for i := range result.Buckets {
		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			bucketLabel(result.Mode, i),
			fmtFloat(pointY(result.StepsAvg, i)),
			fmtCount(pointY(result.Completed, i)),
			fmtCount(pointY(result.Leads, i)),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "Records: %d total, %d in window. Max steps: %d. Most completions in a bucket: %d\n",
		result.TotalRecords, result.InWindow, result.MaxSteps, result.CompletedMax)
	_, err := fmt.Fprint(w, footer("Aggregation", cfg, duration))
	return err
}

// writeCSVSeries writes one CSV row per bucket.
func writeCSVSeries(w io.Writer, result schema.AggregateResult, fmtFloat func(float64) string) error {
	header := []string{"x", "label", "steps_avg", "completed", "leads", "steps_sum", "steps_count"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, b := range result.Buckets {
			row := []string{
				fmt.Sprintf("%d", i+1),
				schema.BucketLabel(result.Mode, i),
				fmtFloat(pointY(result.StepsAvg, i)),
				fmtFloat(pointY(result.Completed, i)),
				fmtFloat(pointY(result.Leads, i)),
				fmt.Sprintf("%d", b.StepsSum),
				fmt.Sprintf("%d", b.StepsCount),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// pointY returns the y value at index i, or 0 when the series is shorter.
func pointY(series []schema.SeriesPoint, i int) float64 {
	if i < 0 || i >= len(series) {
		return 0
	}
	return series[i].Y
}

// bucketLabel is the table label for a bucket; monthly buckets use the day number.
func bucketLabel(mode schema.TimeFrame, i int) string {
	if label := schema.BucketLabel(mode, i); label != "" {
		return label
	}
	return fmt.Sprintf("Day %d", i+1)
}
