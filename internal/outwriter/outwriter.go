// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/viratco/klord/internal/contract"
	"github.com/viratco/klord/schema"
)

// headerOut is where run headers and progress notes are written.
var headerOut io.Writer = os.Stderr

// LogRunHeader prints a concise, 2-line header before an aggregation run.
func LogRunHeader(cfg *contract.Config, sourceName string) {
	_, _ = fmt.Fprintf(headerOut, "🔎 Source: %s (Mode: %s)\n", sourceName, cfg.Mode)

	nowNote := ""
	if cfg.NowPinned {
		nowNote = " (pinned)"
	}
	_, _ = fmt.Fprintf(headerOut, "📅 Window: %s%s\n", describeWindow(cfg.Mode, cfg.Now), nowNote)
}

// describeWindow renders the calendar window a time frame covers at now.
func describeWindow(mode schema.TimeFrame, now time.Time) string {
	switch mode {
	case schema.YearlyFrame:
		return now.Format("2006")
	case schema.WeeklyFrame:
		wd := int(now.Weekday())
		start := time.Date(now.Year(), now.Month(), now.Day()-wd, 0, 0, 0, 0, now.Location())
		return fmt.Sprintf("%s → %s", start.Format("2006-01-02"), start.AddDate(0, 0, 6).Format("2006-01-02"))
	default:
		return now.Format("January 2006")
	}
}

// footer formats the completion line printed after text tables.
func footer(what string, cfg *contract.Config, duration time.Duration) string {
	return fmt.Sprintf("%s completed in %v. Cache backend: %s\n", what, duration.Round(time.Millisecond), cfg.CacheBackend)
}
