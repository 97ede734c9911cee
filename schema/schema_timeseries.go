package schema

import "time"

// Bucket is one aggregation slot of a time frame.
type Bucket struct {
	StepsSum          int `json:"steps_sum"`
	StepsCount        int `json:"steps_count"`
	CompletedBookings int `json:"completed_bookings"`
}

// SeriesPoint is one value of an aggregated series. X is the 1-based bucket index.
type SeriesPoint struct {
	X     int     `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label,omitempty"`
}

// AggregateResult holds the aligned series produced by a single aggregation pass.
type AggregateResult struct {
	Mode         TimeFrame     `json:"mode"`
	Now          time.Time     `json:"now"`
	StepsAvg     []SeriesPoint `json:"steps_avg_series"`
	Completed    []SeriesPoint `json:"completed_series"`
	Leads        []SeriesPoint `json:"leads_series"`
	Buckets      []Bucket      `json:"buckets"`
	MaxSteps     int           `json:"max_steps"`
	CompletedMax int           `json:"completed_max"`
	TotalRecords int           `json:"total_records"`
	InWindow     int           `json:"in_window"`
}

// Series returns the named series. Unknown names fall back to the steps series.
func (r AggregateResult) Series(name SeriesName) []SeriesPoint {
	switch name {
	case CompletedSeries:
		return r.Completed
	case LeadsSeries:
		return r.Leads
	default:
		return r.StepsAvg
	}
}

// SeriesMax returns the scale maximum used by bar charts for the named series.
func (r AggregateResult) SeriesMax(name SeriesName) float64 {
	switch name {
	case CompletedSeries:
		return float64(r.CompletedMax)
	case LeadsSeries:
		maxLeads := 0.0
		for _, p := range r.Leads {
			if p.Y > maxLeads {
				maxLeads = p.Y
			}
		}
		return maxLeads
	default:
		return float64(r.MaxSteps)
	}
}
