package core

import (
	"context"
	"fmt"
	"time"

	"github.com/viratco/klord/core/agg"
	"github.com/viratco/klord/core/geom"
	"github.com/viratco/klord/internal/contract"
	"github.com/viratco/klord/internal/outwriter"
	"github.com/viratco/klord/schema"
)

// seriesStore returns the series cache of mgr, or nil when caching is unavailable.
func seriesStore(mgr contract.CacheManager) contract.CacheStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetSeriesStore()
}

// runStore returns the run store of mgr, or nil when tracking is disabled.
func runStore(mgr contract.CacheManager) contract.RunStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetRunStore()
}

// fetchRecords loads records from the source, printing the run header unless suppressed.
func fetchRecords(ctx context.Context, cfg *contract.Config, src contract.RecordSource) ([]schema.Record, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogRunHeader(cfg, src.Describe())
	}
	records, err := src.FetchRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch records from %s: %w", src.Describe(), err)
	}
	return records, nil
}

// runSeriesCore performs the common fetch, aggregation and tracking steps.
func runSeriesCore(ctx context.Context, cfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) (*schema.AggregateResult, error) {
	// --- 0. Begin Run Tracking (if configured) ---
	store := runStore(mgr)
	if store != nil {
		configParams := map[string]any{
			"mode":   string(cfg.Mode),
			"now":    cfg.Now.Format(time.RFC3339),
			"source": src.Describe(),
			"window": cfg.Window,
		}
		runID, err := store.BeginRun(time.Now(), configParams)
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
		} else if runID > 0 {
			ctx = withRunID(ctx, runID)
		}
	}

	// --- 1. Fetch ---
	records, err := fetchRecords(ctx, cfg, src)
	if err != nil {
		return nil, err
	}

	// --- 2. Aggregation Phase (with caching) ---
	result := cachedAggregate(records, cfg, seriesStore(mgr))

	// --- 3. End Run Tracking ---
	if runID, ok := getRunID(ctx); ok {
		if err := store.RecordBuckets(runID, result); err != nil {
			contract.LogWarn("Failed to record run buckets", err)
		}
		if err := store.EndRun(runID, time.Now(), len(records)); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	// --- 4. Smoothing ---
	// Applied after caching and tracking so both hold the raw buckets
	smoothed := applyWindow(result, cfg.Window)
	return &smoothed, nil
}

// applyWindow smooths every series of result with a trailing rolling average.
func applyWindow(result schema.AggregateResult, window int) schema.AggregateResult {
	if window <= 1 {
		return result
	}
	result.StepsAvg = agg.RollingAverage(result.StepsAvg, window)
	result.Completed = agg.RollingAverage(result.Completed, window)
	result.Leads = agg.RollingAverage(result.Leads, window)
	return result
}

// buildChart turns the configured series of result into chart geometry.
func buildChart(result schema.AggregateResult, cfg *contract.Config) schema.ChartResult {
	series := result.Series(cfg.Series)
	return schema.ChartResult{
		Mode:   result.Mode,
		Series: cfg.Series,
		Chart:  geom.Build(cfg.Kind, series, result.SeriesMax(cfg.Series), cfg.Width, cfg.Height),
	}
}

// filterRecords keeps the records whose timestamp falls inside the current window.
func filterRecords(records []schema.Record, mode schema.TimeFrame, now time.Time) []schema.Record {
	kept := make([]schema.Record, 0, len(records))
	for _, r := range records {
		if agg.InWindow(r, mode, now) {
			kept = append(kept, r)
		}
	}
	return kept
}
