package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/viratco/klord/core/geom"
	"github.com/viratco/klord/internal/contract"
	"github.com/viratco/klord/schema"
)

// PrintChartResult outputs chart geometry, dispatching based on the output format configured.
func PrintChartResult(result schema.ChartResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := floatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON chart"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.SVGOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return WriteSVG(w, result.Chart)
		}, "Wrote SVG chart"); err != nil {
			return fmt.Errorf("error writing SVG output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVChart(w, result.Chart, fmtFloat)
		}, "Wrote CSV chart"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported by the series command")
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeChartTable(w, result, cfg, fmtFloat, duration)
		}, "Wrote chart table"); err != nil {
			return fmt.Errorf("error writing chart table output: %w", err)
		}
	}
	return nil
}

// chartRows flattens a chart into one row per plotted value.
// Bar charts report the bar rectangle, line charts the screen point.
func chartRows(chart schema.ChartGeometry, fmtFloat func(float64) string) [][]string {
	var rows [][]string
	if chart.Kind == schema.BarChart {
		for i, b := range chart.Bars {
			rows = append(rows, []string{
				fmt.Sprintf("%d", i+1), b.Label, fmtFloat(b.Value),
				fmtFloat(b.X), fmtFloat(b.Y), fmtFloat(b.Width), fmtFloat(b.Height),
			})
		}
		return rows
	}
	for i, p := range chart.Points {
		label := ""
		value := 0.0
		if i < len(chart.Series) {
			label = chart.Series[i].Label
			value = chart.Series[i].Y
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1), label, fmtFloat(value), fmtFloat(p.X), fmtFloat(p.Y), "", "",
		})
	}
	return rows
}

// writeChartTable prints the plotted values followed by the path data.
func writeChartTable(w io.Writer, result schema.ChartResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	chart := result.Chart
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Label", "Value", "X", "Y", "Width", "Height"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(chartRows(chart, fmtFloat)); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "Chart: %s of %s series (%s), %sx%s px\n",
		chart.Kind, result.Series, result.Mode, geom.FormatNumber(chart.Width), geom.FormatNumber(chart.Height))
	if chart.Kind != schema.BarChart {
		_, _ = fmt.Fprintf(w, "Mean: %s, max deviation: %s\n", fmtFloat(chart.Mean), fmtFloat(chart.MaxDeviation))
		ticks := make([]string, len(chart.Ticks))
		for i, v := range chart.Ticks {
			ticks[i] = fmtFloat(v)
		}
		_, _ = fmt.Fprintf(w, "Ticks: %v\n", ticks)
		_, _ = fmt.Fprintf(w, "Line path: %s\n", chart.LinePath)
		if chart.AreaPath != "" {
			_, _ = fmt.Fprintf(w, "Area path: %s\n", chart.AreaPath)
		}
	}
	_, err := fmt.Fprint(w, footer("Chart", cfg, duration))
	return err
}

// writeCSVChart writes the plotted values of a chart.
func writeCSVChart(w io.Writer, chart schema.ChartGeometry, fmtFloat func(float64) string) error {
	header := []string{"index", "label", "value", "x", "y", "width", "height"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, row := range chartRows(chart, fmtFloat) {
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
