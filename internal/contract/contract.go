// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/viratco/klord/schema"
)

// RecordSource loads booking records from an external system.
// This allows the pipeline to be tested without a live backend.
type RecordSource interface {
	// FetchRecords returns all records currently known to the source.
	FetchRecords(ctx context.Context) ([]schema.Record, error)

	// Describe returns a short human-readable name for logs and run parameters.
	Describe() string
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetSeriesStore() CacheStore
	GetRunStore() RunStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// RunStore defines the interface for tracking aggregation runs and their buckets.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// RecordBuckets stores every bucket of an aggregation result for a run
	RecordBuckets(runID int64, result schema.AggregateResult) error

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totalRecords int) error

	// GetStatus returns status information about the run store
	GetStatus() (schema.RunStatus, error)

	// GetAllRuns returns every run, oldest first
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllBuckets returns every recorded bucket ordered by run and index
	GetAllBuckets() ([]schema.RunBucketRecord, error)

	// Close closes the underlying connection
	Close() error
}
