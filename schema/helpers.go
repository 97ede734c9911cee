package schema

import "time"

// MonthLabel returns the short month name for a 0-based month index.
func MonthLabel(index int) string {
	if index < 0 || index > 11 {
		return ""
	}
	return time.Month(index + 1).String()[:3]
}

// WeekdayLabel returns the short weekday name for a 0-based weekday index (Sunday first).
func WeekdayLabel(index int) string {
	if index < 0 || index > 6 {
		return ""
	}
	return time.Weekday(index).String()[:3]
}

// BucketLabel returns the display label of a bucket index for a time frame.
// Monthly buckets carry no label.
func BucketLabel(frame TimeFrame, index int) string {
	switch frame {
	case YearlyFrame:
		return MonthLabel(index)
	case WeeklyFrame:
		return WeekdayLabel(index)
	default:
		return ""
	}
}
