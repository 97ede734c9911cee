// Package agg has aggregation logic for booking records.
package agg

import (
	"math"
	"time"

	"github.com/viratco/klord/schema"
)

// Aggregate buckets records into the fixed calendar slots of mode, relative to now.
// Records outside the current window, or without a usable date, are skipped.
// It never fails: an empty input yields zero buckets with MaxSteps at its floor.
func Aggregate(records []schema.Record, mode schema.TimeFrame, now time.Time) schema.AggregateResult {
	// 1. Allocate buckets for the time frame
	buckets := make([]schema.Bucket, schema.BucketCount(mode))
	loc := now.Location()
	weekStart, weekEnd := weekBounds(now)

	// 2. Fill buckets in a single pass
	trackedMaxSteps := 0
	inWindow := 0
	for _, r := range records {
		ts, ok := r.Timestamp()
		if !ok {
			continue
		}
		ts = ts.In(loc)

		idx, ok := bucketIndex(ts, mode, now, weekStart, weekEnd)
		if !ok {
			continue
		}
		inWindow++

		b := &buckets[idx]
		b.StepsSum += r.CompletedSteps()
		b.StepsCount++
		if Completion(r) >= 100 {
			b.CompletedBookings++
		}

		// Only in-window records reach this point
		trackedMaxSteps = max(trackedMaxSteps, r.TotalSteps())
	}

	// 3. Project buckets into the output series
	result := schema.AggregateResult{
		Mode:         mode,
		Now:          now,
		StepsAvg:     make([]schema.SeriesPoint, len(buckets)),
		Completed:    make([]schema.SeriesPoint, len(buckets)),
		Leads:        make([]schema.SeriesPoint, len(buckets)),
		Buckets:      buckets,
		MaxSteps:     max(trackedMaxSteps, schema.MinMaxSteps),
		TotalRecords: len(records),
		InWindow:     inWindow,
	}
	for i, b := range buckets {
		label := schema.BucketLabel(mode, i)
		avg := 0.0
		if b.StepsCount > 0 {
			avg = math.Round(float64(b.StepsSum) / float64(b.StepsCount))
		}
		result.StepsAvg[i] = schema.SeriesPoint{X: i + 1, Y: avg, Label: label}
		result.Completed[i] = schema.SeriesPoint{X: i + 1, Y: float64(b.CompletedBookings), Label: label}
		result.Leads[i] = schema.SeriesPoint{X: i + 1, Y: float64(b.StepsCount), Label: label}
		result.CompletedMax = max(result.CompletedMax, b.CompletedBookings)
	}

	return result
}

// Completion returns the completion percentage of a record.
func Completion(r schema.Record) int {
	return r.CompletionPercent()
}

// bucketIndex returns the slot of ts for the time frame, or false when ts is out of window.
func bucketIndex(ts time.Time, mode schema.TimeFrame, now, weekStart, weekEnd time.Time) (int, bool) {
	switch mode {
	case schema.YearlyFrame:
		if ts.Year() != now.Year() {
			return 0, false
		}
		return clamp(int(ts.Month())-1, 0, schema.YearlyBuckets-1), true
	case schema.WeeklyFrame:
		if ts.Before(weekStart) || !ts.Before(weekEnd) {
			return 0, false
		}
		return int(ts.Weekday()), true
	default:
		if ts.Year() != now.Year() || ts.Month() != now.Month() {
			return 0, false
		}
		return clamp(ts.Day()-1, 0, schema.MonthlyBuckets-1), true
	}
}

// weekBounds returns local midnight of the Sunday starting now's week and the
// midnight seven days later.
func weekBounds(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	wd := int(now.Weekday())
	start := time.Date(y, m, d-wd, 0, 0, 0, 0, now.Location())
	end := time.Date(y, m, d-wd+7, 0, 0, 0, 0, now.Location())
	return start, end
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// InWindow reports whether the record falls into the current window of mode.
func InWindow(r schema.Record, mode schema.TimeFrame, now time.Time) bool {
	ts, ok := r.Timestamp()
	if !ok {
		return false
	}
	weekStart, weekEnd := weekBounds(now)
	_, ok = bucketIndex(ts.In(now.Location()), mode, now, weekStart, weekEnd)
	return ok
}
