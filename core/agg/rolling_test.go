package agg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viratco/klord/schema"
)

func TestRollingAverage(t *testing.T) {
	series := []schema.SeriesPoint{
		{X: 1, Y: 2, Label: "Sun"},
		{X: 2, Y: 4},
		{X: 3, Y: 6},
		{X: 4, Y: 0},
	}

	got := RollingAverage(series, 2)
	assert.Len(t, got, 4)
	assert.InDelta(t, 2.0, got[0].Y, 1e-9)
	assert.InDelta(t, 3.0, got[1].Y, 1e-9)
	assert.InDelta(t, 5.0, got[2].Y, 1e-9)
	assert.InDelta(t, 3.0, got[3].Y, 1e-9)
	assert.Equal(t, "Sun", got[0].Label)
	assert.Equal(t, 4, got[3].X)

	// Input is untouched
	assert.Equal(t, 4.0, series[1].Y)
}

func TestRollingAverageSmallWindow(t *testing.T) {
	series := []schema.SeriesPoint{{X: 1, Y: 1}, {X: 2, Y: 5}}
	assert.Equal(t, series, RollingAverage(series, 1))
	assert.Equal(t, series, RollingAverage(series, 0))
	assert.Empty(t, RollingAverage(nil, 3))
}

func TestRollingAverageWideWindow(t *testing.T) {
	series := []schema.SeriesPoint{{X: 1, Y: 3}, {X: 2, Y: 6}, {X: 3, Y: 9}}
	got := RollingAverage(series, 10)
	assert.InDelta(t, 3.0, got[0].Y, 1e-9)
	assert.InDelta(t, 4.5, got[1].Y, 1e-9)
	assert.InDelta(t, 6.0, got[2].Y, 1e-9)
}
