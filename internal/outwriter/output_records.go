package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/viratco/klord/internal/contract"
	"github.com/viratco/klord/schema"
)

// PrintRecords outputs the record listing, dispatching based on the output format configured.
func PrintRecords(rows []schema.RecordRow, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON records"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVRecords(w, rows)
		}, "Wrote CSV records"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.SVGOut, schema.ParquetOut:
		return fmt.Errorf("%s output is not supported by the records command", cfg.Output)
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRecordsTable(w, rows, cfg, duration)
		}, "Wrote records table"); err != nil {
			return fmt.Errorf("error writing records table output: %w", err)
		}
	}
	return nil
}

// writeRecordsTable prints one row per record with a completion label.
func writeRecordsTable(w io.Writer, rows []schema.RecordRow, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "ID", "Updated", "Steps", "Completion", "Label"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	idWidth := GetMaxTableIDWidth(cfg)
	var data [][]string
	for _, r := range rows {
		label := r.Label
		if cfg.UseColors {
			label = contract.GetColorLabel(r.Completion)
		}
		updated := r.Timestamp
		if updated == "" {
			updated = "-"
		}
		data = append(data, []string{
			strconv.Itoa(r.Rank),
			truncateID(r.ID, idWidth),
			updated,
			fmt.Sprintf("%d/%d", r.CompletedSteps, r.TotalSteps),
			fmt.Sprintf("%d%%", r.Completion),
			label,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, footer(fmt.Sprintf("Listing of %d records", len(rows)), cfg, duration))
	return err
}

// writeCSVRecords writes one CSV row per record.
func writeCSVRecords(w io.Writer, rows []schema.RecordRow) error {
	header := []string{"rank", "id", "timestamp", "completed_steps", "total_steps", "completion", "certified", "label"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range rows {
			row := []string{
				strconv.Itoa(r.Rank),
				r.ID,
				r.Timestamp,
				strconv.Itoa(r.CompletedSteps),
				strconv.Itoa(r.TotalSteps),
				strconv.Itoa(r.Completion),
				strconv.FormatBool(r.Certified),
				r.Label,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
