package geom

import "github.com/viratco/klord/schema"

// thirdRanges are the inclusive day ranges of a compact monthly chart.
var thirdRanges = []struct {
	lo, hi int
	label  string
}{
	{1, 10, "1-10"},
	{11, 20, "11-20"},
	{21, 31, "21-31"},
}

// Thirds re-buckets a day-of-month series into three points by averaging the
// values whose X falls in each range. An empty range averages to 0.
func Thirds(series []schema.SeriesPoint) []schema.SeriesPoint {
	out := make([]schema.SeriesPoint, len(thirdRanges))
	for i, r := range thirdRanges {
		sum, n := 0.0, 0
		for _, p := range series {
			if p.X >= r.lo && p.X <= r.hi {
				sum += p.Y
				n++
			}
		}
		avg := 0.0
		if n > 0 {
			avg = sum / float64(n)
		}
		out[i] = schema.SeriesPoint{X: i + 1, Y: avg, Label: r.label}
	}
	return out
}
