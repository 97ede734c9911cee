package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/viratco/klord/core/agg"
	"github.com/viratco/klord/internal/contract"
	"github.com/viratco/klord/internal/iocache"
	"github.com/viratco/klord/schema"
)

func TestGenerateCacheKey(t *testing.T) {
	records := testRecords()
	hour := fixedNow.Truncate(time.Hour)

	key := generateCacheKey(records, schema.MonthlyFrame, hour)
	assert.Len(t, key, 64)
	assert.Equal(t, key, generateCacheKey(testRecords(), schema.MonthlyFrame, hour))

	assert.NotEqual(t, key, generateCacheKey(records, schema.YearlyFrame, hour))
	assert.NotEqual(t, key, generateCacheKey(records, schema.MonthlyFrame, hour.Add(time.Hour)))
	assert.NotEqual(t, key, generateCacheKey(records[:2], schema.MonthlyFrame, hour))

	// Same instant, different calendar
	edt := time.FixedZone("EDT", -4*3600)
	assert.NotEqual(t, key, generateCacheKey(records, schema.MonthlyFrame, hour.In(edt)))
}

// memoryStore is an in-memory series cache.
type memoryStore struct {
	entries map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: map[string][]byte{}}
}

func (m *memoryStore) Get(key string) ([]byte, int, int64, error) {
	data, ok := m.entries[key]
	if !ok {
		return nil, 0, 0, errors.New("miss")
	}
	return data, currentCacheVersion, time.Now().Unix(), nil
}

func (m *memoryStore) Set(key string, value []byte, _ int, _ int64) error {
	m.entries[key] = value
	return nil
}

func (m *memoryStore) GetStatus() (schema.CacheStatus, error) { return schema.CacheStatus{}, nil }
func (m *memoryStore) Close() error                          { return nil }

func TestCachedAggregateAcrossWindows(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	edt := time.FixedZone("EDT", -4*3600)
	october := []schema.Record{record("a", time.Date(2024, 10, 31, 20, 0, 0, 0, ist), 1, 4)}

	tests := []struct {
		name  string
		first time.Time
		then  time.Time
	}{
		// 18:15Z and 18:45Z share an absolute hour but fall in different months locally
		{"month rollover in half-hour zone", time.Date(2024, 10, 31, 23, 45, 0, 0, ist), time.Date(2024, 11, 1, 0, 15, 0, 0, ist)},
		// 2024-11-01T00:30Z is still October in New York
		{"same instant other zone", time.Date(2024, 10, 31, 20, 30, 0, 0, edt), time.Date(2024, 11, 1, 0, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			cfg := testConfig()

			cfg.Now = tt.first
			first := cachedAggregate(october, cfg, store)
			assert.Equal(t, 1, first.InWindow)

			cfg.Now = tt.then
			cached := cachedAggregate(october, cfg, store)
			direct := agg.Aggregate(october, cfg.Mode, cfg.Now)
			assert.Equal(t, direct.InWindow, cached.InWindow)
			assert.Equal(t, 0, cached.InWindow)
			assert.Len(t, store.entries, 2)
		})
	}
}

var _ contract.CacheStore = (*memoryStore)(nil)

func TestCheckCacheHit(t *testing.T) {
	payload, err := json.Marshal(schema.AggregateResult{Mode: schema.MonthlyFrame, MaxSteps: 9})
	require.NoError(t, err)

	tests := []struct {
		name    string
		data    []byte
		version int
		ts      int64
		err     error
		hit     bool
	}{
		{"fresh", payload, currentCacheVersion, time.Now().Unix(), nil, true},
		{"miss", nil, 0, 0, errors.New("not found"), false},
		{"old version", payload, currentCacheVersion + 1, time.Now().Unix(), nil, false},
		{"expired", payload, currentCacheVersion, time.Now().Add(-25 * time.Hour).Unix(), nil, false},
		{"corrupt", []byte("{"), currentCacheVersion, time.Now().Unix(), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &iocache.MockCacheStore{}
			store.On("Get", "k").Return(tt.data, tt.version, tt.ts, tt.err)

			got := checkCacheHit(store, "k")
			if !tt.hit {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, 9, got.MaxSteps)
		})
	}
}

func TestCachedAggregateStoreFailure(t *testing.T) {
	store := &iocache.MockCacheStore{}
	store.On("Get", mock.Anything).Return(nil, 0, int64(0), errors.New("miss"))
	store.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	res := cachedAggregate(testRecords(), testConfig(), store)
	assert.Equal(t, 3, res.InWindow)
	store.AssertExpectations(t)
}
