package schema

import "time"

// RunRecord represents a row from the klord_runs table.
type RunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalRecords  int32
	Mode          string
	ConfigParams  *string
}

// RunBucketRecord represents a row from the klord_run_buckets table.
type RunBucketRecord struct {
	RunID             int64
	BucketIndex       int32
	Label             string
	StepsSum          int32
	StepsCount        int32
	CompletedBookings int32
	StepsAvg          float64
}
