package core

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/viratco/klord/core/agg"
	"github.com/viratco/klord/internal/contract"
	"github.com/viratco/klord/schema"
)

// currentCacheVersion defines the version of the cached series schema
const currentCacheVersion = 1

// cacheTTL is how long a cached series stays valid.
const cacheTTL = 24 * time.Hour

// cachedAggregate returns the aggregation for records, reading and filling the series cache.
func cachedAggregate(records []schema.Record, cfg *contract.Config, store contract.CacheStore) schema.AggregateResult {
	if store == nil {
		// Fallback to direct computation
		return agg.Aggregate(records, cfg.Mode, cfg.Now)
	}

	key := generateCacheKey(records, cfg.Mode, cfg.NowBucket())

	if result := checkCacheHit(store, key); result != nil {
		// The key only pins the hour; report the exact reference time
		result.Now = cfg.Now
		return *result
	}

	return computeAndStore(records, cfg, store, key)
}

// checkCacheHit attempts to retrieve and validate a cached result
func checkCacheHit(store contract.CacheStore, key string) *schema.AggregateResult {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	if version != currentCacheVersion || time.Since(time.Unix(ts, 0)) > cacheTTL {
		return nil // Stale or version mismatch
	}

	var result schema.AggregateResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	return &result
}

// computeAndStore computes the result and stores it in cache
func computeAndStore(records []schema.Record, cfg *contract.Config, store contract.CacheStore, key string) schema.AggregateResult {
	result := agg.Aggregate(records, cfg.Mode, cfg.Now)

	data, err := json.Marshal(result)
	if err == nil {
		err = store.Set(key, data, currentCacheVersion, time.Now().Unix())
	}
	if err != nil {
		contract.LogWarn("Failed to cache series", err)
	}
	return result
}

// generateCacheKey creates a unique key from the record content, the time frame
// and the reference time bucket. The bucket is keyed on its wall clock, offset and
// location since windows are calendar ranges of that location.
func generateCacheKey(records []schema.Record, mode schema.TimeFrame, nowBucket time.Time) string {
	key := fmt.Sprintf("%s:%s:%s:%s", recordsHash(records), mode,
		nowBucket.Format("2006-01-02T15-0700"), nowBucket.Location())
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// recordsHash is the sha256 of the canonical JSON encoding of records.
func recordsHash(records []schema.Record) string {
	data, err := json.Marshal(records)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
