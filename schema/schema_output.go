package schema

// RecordRow adds presentation data to a Record for listings.
type RecordRow struct {
	Rank           int       `json:"rank"`
	ID             string    `json:"id"`
	Timestamp      string    `json:"timestamp"`
	CompletedSteps int       `json:"completed_steps"`
	TotalSteps     int       `json:"total_steps"`
	Completion     int       `json:"completion"`
	Certified      bool      `json:"certified"`
	Label          string    `json:"label"`
}

// GetPlainLabel returns a plain text label for a completion percentage.
func GetPlainLabel(completion int) string {
	switch {
	case completion >= 100:
		return "Completed"
	case completion >= 60:
		return "Advanced"
	case completion > 0:
		return "In Progress"
	default:
		return "Not Started"
	}
}

// EnrichRecords builds listing rows for records, in input order.
func EnrichRecords(records []Record) []RecordRow {
	output := make([]RecordRow, len(records))
	for i, r := range records {
		ts := ""
		if t, ok := r.Timestamp(); ok {
			ts = t.Format("2006-01-02 15:04")
		}
		pct := r.CompletionPercent()
		output[i] = RecordRow{
			Rank:           i + 1,
			ID:             r.ID,
			Timestamp:      ts,
			CompletedSteps: r.CompletedSteps(),
			TotalSteps:     r.TotalSteps(),
			Completion:     pct,
			Certified:      r.HasCertificate(),
			Label:          GetPlainLabel(pct),
		}
	}
	return output
}
