package agg

import (
	_ "embed"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viratco/klord/schema"
)

//go:embed testdata/records.json
var recordsFixture []byte

// fixedNow is a Friday.
var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func loadFixture(t *testing.T) []schema.Record {
	t.Helper()
	var records []schema.Record
	require.NoError(t, json.Unmarshal(recordsFixture, &records))
	return records
}

func TestAggregateBucketCount(t *testing.T) {
	inputs := map[string][]schema.Record{
		"nil":     nil,
		"empty":   {},
		"fixture": loadFixture(t),
	}
	modes := map[schema.TimeFrame]int{
		schema.MonthlyFrame: 31,
		schema.YearlyFrame:  12,
		schema.WeeklyFrame:  7,
	}

	for name, records := range inputs {
		for mode, want := range modes {
			t.Run(name+"/"+string(mode), func(t *testing.T) {
				res := Aggregate(records, mode, fixedNow)
				assert.Len(t, res.StepsAvg, want)
				assert.Len(t, res.Completed, want)
				assert.Len(t, res.Leads, want)
				assert.Len(t, res.Buckets, want)
				for i, p := range res.StepsAvg {
					assert.Equal(t, i+1, p.X)
				}
			})
		}
	}
}

func TestAggregateEmpty(t *testing.T) {
	res := Aggregate(nil, schema.MonthlyFrame, fixedNow)
	assert.Equal(t, 8, res.MaxSteps)
	assert.Equal(t, 0, res.CompletedMax)
	assert.Equal(t, 0, res.InWindow)
	for _, b := range res.Buckets {
		assert.Equal(t, schema.Bucket{}, b)
	}
}

func TestAggregateSameDayScenario(t *testing.T) {
	day3 := time.Date(2024, 3, 3, 10, 0, 0, 0, time.UTC)
	records := []schema.Record{
		{CreatedAt: &day3, Steps: []schema.Step{{Completed: true}}},
		{CreatedAt: &day3, Steps: []schema.Step{{Completed: false}}},
	}

	res := Aggregate(records, schema.MonthlyFrame, fixedNow)

	// The single-step record is fully complete, so it counts as a completed booking
	assert.Equal(t, schema.Bucket{StepsSum: 1, StepsCount: 2, CompletedBookings: 1}, res.Buckets[2])
	assert.Equal(t, 1.0, res.StepsAvg[2].Y, "round(1/2) rounds half up")
	assert.Equal(t, 1.0, res.Completed[2].Y)
	assert.Equal(t, 2.0, res.Leads[2].Y)
	assert.Equal(t, 1, res.CompletedMax)
}

func TestAggregateMonthly(t *testing.T) {
	res := Aggregate(loadFixture(t), schema.MonthlyFrame, fixedNow)

	// a1, a2 on day 3; a3 updated on day 14; a4 on day 31
	assert.Equal(t, 4, res.InWindow)
	assert.Equal(t, 8, res.TotalRecords)
	assert.Equal(t, schema.Bucket{StepsSum: 1, StepsCount: 2, CompletedBookings: 1}, res.Buckets[2])
	assert.Equal(t, schema.Bucket{StepsSum: 1, StepsCount: 1, CompletedBookings: 1}, res.Buckets[13])
	assert.Equal(t, schema.Bucket{StepsSum: 10, StepsCount: 1, CompletedBookings: 1}, res.Buckets[30])
	assert.Equal(t, schema.Bucket{}, res.Buckets[9], "a3 uses updatedAt, not createdAt")

	// b2 from last year has 12 steps but is out of window
	assert.Equal(t, 10, res.MaxSteps)
	assert.Equal(t, 1, res.CompletedMax)
	for _, p := range res.StepsAvg {
		assert.Empty(t, p.Label)
	}
}

func TestAggregateYearly(t *testing.T) {
	res := Aggregate(loadFixture(t), schema.YearlyFrame, fixedNow)

	assert.Equal(t, 5, res.InWindow)
	assert.Equal(t, schema.Bucket{StepsSum: 2, StepsCount: 1, CompletedBookings: 1}, res.Buckets[0])
	assert.Equal(t, 4, res.Buckets[2].StepsCount)
	assert.Equal(t, 3, res.Buckets[2].CompletedBookings)
	assert.Equal(t, "Jan", res.StepsAvg[0].Label)
	assert.Equal(t, "Mar", res.Completed[2].Label)
	assert.Equal(t, "Dec", res.Leads[11].Label)
	assert.Equal(t, 3, res.CompletedMax)
}

func TestAggregateWeekly(t *testing.T) {
	res := Aggregate(loadFixture(t), schema.WeeklyFrame, fixedNow)

	// Week of Sunday 2024-03-10: only a3 (Thursday the 14th)
	assert.Equal(t, 1, res.InWindow)
	assert.Equal(t, 1, res.Buckets[4].StepsCount)
	assert.Equal(t, "Sun", res.StepsAvg[0].Label)
	assert.Equal(t, "Thu", res.StepsAvg[4].Label)
	assert.Equal(t, 8, res.MaxSteps)
}

func TestAggregateWindowFiltering(t *testing.T) {
	lastMonth := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	lastYear := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
	records := []schema.Record{
		{CreatedAt: &lastMonth, Steps: []schema.Step{{Completed: true}}},
		{CreatedAt: &lastYear, Steps: []schema.Step{{Completed: true}}},
	}

	monthly := Aggregate(records, schema.MonthlyFrame, fixedNow)
	assert.Equal(t, 0, monthly.InWindow)

	yearly := Aggregate(records, schema.YearlyFrame, fixedNow)
	assert.Equal(t, 1, yearly.InWindow)
	assert.Equal(t, 1, yearly.Buckets[1].StepsCount)
}

func TestAggregateUsesNowLocation(t *testing.T) {
	// 2024-03-31T23:00Z is already April 1st in UTC+2
	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2024, 4, 10, 12, 0, 0, 0, loc)
	ts := time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC)

	res := Aggregate([]schema.Record{{CreatedAt: &ts}}, schema.MonthlyFrame, now)
	assert.Equal(t, 1, res.Buckets[0].StepsCount)
}

func TestAggregateDeterministic(t *testing.T) {
	records := loadFixture(t)
	a := Aggregate(records, schema.YearlyFrame, fixedNow)
	b := Aggregate(records, schema.YearlyFrame, fixedNow)
	assert.Equal(t, a, b)
}

func TestCompletion(t *testing.T) {
	assert.Equal(t, 100, Completion(schema.Record{CertificateURL: "x"}))
	assert.Equal(t, 50, Completion(schema.Record{Steps: []schema.Step{{Completed: true}, {}}}))
	assert.Equal(t, 0, Completion(schema.Record{}))
}

func TestInWindow(t *testing.T) {
	at := func(ts time.Time) schema.Record { return schema.Record{UpdatedAt: &ts} }

	assert.True(t, InWindow(at(fixedNow.AddDate(0, 0, -3)), schema.MonthlyFrame, fixedNow))
	assert.False(t, InWindow(at(fixedNow.AddDate(0, -1, 0)), schema.MonthlyFrame, fixedNow))
	assert.True(t, InWindow(at(fixedNow.AddDate(0, -1, 0)), schema.YearlyFrame, fixedNow))
	// Sunday 2024-03-10 starts the week of fixedNow
	assert.True(t, InWindow(at(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)), schema.WeeklyFrame, fixedNow))
	assert.False(t, InWindow(at(time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)), schema.WeeklyFrame, fixedNow))
	assert.False(t, InWindow(schema.Record{}, schema.YearlyFrame, fixedNow))
}
