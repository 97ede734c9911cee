// Package core has core logic for aggregation and charting.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/viratco/klord/internal/contract"
	"github.com/viratco/klord/internal/outwriter"
	"github.com/viratco/klord/schema"
)

// ExecutorFunc defines the function signature for executing the different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) error

// ExecuteSeries aggregates the records and prints the bucketed series.
// It serves as the main entry point for the 'series' command.
func ExecuteSeries(ctx context.Context, cfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) error {
	start := time.Now()
	result, err := runSeriesCore(ctx, cfg, src, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintSeriesResult(*result, cfg, time.Since(start))
}

// ExecuteChart aggregates the records, builds chart geometry and prints it.
// It serves as the main entry point for the 'chart' command.
func ExecuteChart(ctx context.Context, cfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) error {
	start := time.Now()
	result, err := runSeriesCore(ctx, cfg, src, mgr)
	if err != nil {
		return err
	}
	chart := buildChart(*result, cfg)
	return outwriter.PrintChartResult(chart, cfg, time.Since(start))
}

// ExecuteRecords lists the records of the current window with their completion.
// Records are neither cached nor tracked.
func ExecuteRecords(ctx context.Context, cfg *contract.Config, src contract.RecordSource, _ contract.CacheManager) error {
	start := time.Now()
	rows, err := GetRecordRows(ctx, cfg, src)
	if err != nil {
		return err
	}
	return outwriter.PrintRecords(rows, cfg, time.Since(start))
}

// GetSeriesResult runs the aggregation pipeline and returns the smoothed series.
func GetSeriesResult(ctx context.Context, cfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) (*schema.AggregateResult, error) {
	return runSeriesCore(ctx, cfg, src, mgr)
}

// GetChartResult runs the aggregation pipeline and returns the chart geometry of cfg.Series.
func GetChartResult(ctx context.Context, cfg *contract.Config, src contract.RecordSource, mgr contract.CacheManager) (*schema.ChartResult, error) {
	if err := contract.ValidateKindForMode(cfg.Kind, cfg.Mode); err != nil {
		return nil, err
	}
	result, err := runSeriesCore(ctx, cfg, src, mgr)
	if err != nil {
		return nil, err
	}
	chart := buildChart(*result, cfg)
	return &chart, nil
}

// GetRecordRows fetches the records and returns listing rows for those in the current window.
func GetRecordRows(ctx context.Context, cfg *contract.Config, src contract.RecordSource) ([]schema.RecordRow, error) {
	records, err := fetchRecords(ctx, cfg, src)
	if err != nil {
		return nil, err
	}
	return schema.EnrichRecords(filterRecords(records, cfg.Mode, cfg.Now)), nil
}

// GetStatusResult collects the status of the series cache and the run store.
func GetStatusResult(mgr contract.CacheManager) (*schema.StatusResult, error) {
	result := &schema.StatusResult{}

	if store := seriesStore(mgr); store != nil {
		status, err := store.GetStatus()
		if err != nil {
			return nil, fmt.Errorf("failed to get cache status: %w", err)
		}
		result.Cache = status
	}

	store := runStore(mgr)
	if store == nil {
		return result, nil
	}
	status, err := store.GetStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to get run status: %w", err)
	}
	result.Runs = status
	return result, nil
}
