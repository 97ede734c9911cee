package agg

import "github.com/viratco/klord/schema"

// RollingAverage smooths a series with a trailing window mean.
// X values and labels are preserved. A window of 1 or less returns a copy.
func RollingAverage(series []schema.SeriesPoint, window int) []schema.SeriesPoint {
	out := make([]schema.SeriesPoint, len(series))
	copy(out, series)
	if window <= 1 {
		return out
	}

	sum := 0.0
	for i, p := range series {
		sum += p.Y
		if i >= window {
			sum -= series[i-window].Y
		}
		n := min(i+1, window)
		out[i].Y = sum / float64(n)
	}
	return out
}
