// Package geom maps aggregated series to chart geometry in pixel space.
//
// All functions are total: degenerate inputs (empty series, zero deviation,
// single points) fall back to centered or empty outputs instead of failing.
package geom

import (
	"math"

	"github.com/viratco/klord/schema"
)

// Mean returns the arithmetic mean of the series values, or 0 for an empty series.
func Mean(series []schema.SeriesPoint) float64 {
	if len(series) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range series {
		sum += p.Y
	}
	return sum / float64(len(series))
}

// rawMaxAbsDeviation returns max |y - mean| over the series.
func rawMaxAbsDeviation(series []schema.SeriesPoint, mean float64) float64 {
	dev := 0.0
	for _, p := range series {
		dev = math.Max(dev, math.Abs(p.Y-mean))
	}
	return dev
}

// MaxAbsDeviation returns the deviation scale used by line charts: the largest
// absolute deviation from mean rounded up, and never below 1.
func MaxAbsDeviation(series []schema.SeriesPoint, mean float64) float64 {
	return math.Max(1, math.Ceil(rawMaxAbsDeviation(series, mean)))
}

// RoundedMaxAbsDeviation returns the deviation scale used by progress charts:
// the largest absolute deviation rounded up to a multiple of 10, and never below 10.
func RoundedMaxAbsDeviation(series []schema.SeriesPoint, mean float64) float64 {
	return math.Max(10, math.Ceil(rawMaxAbsDeviation(series, mean)/10)*10)
}

// MapXToPixel spreads indices evenly over width. A single point is centered.
func MapXToPixel(index, length int, width float64) float64 {
	if length <= 1 {
		return width / 2
	}
	return float64(index) / float64(length-1) * width
}

// MapYToPixel places value relative to mean so that the mean sits at height/2
// and mean±maxDev sit at the top and bottom edges. Values beyond maxDev are clamped.
func MapYToPixel(value, mean, maxDev, height float64) float64 {
	if maxDev <= 0 || math.IsNaN(maxDev) {
		return height / 2
	}
	dev := math.Max(-maxDev, math.Min(maxDev, value-mean))
	ratio := (dev + maxDev) / (2 * maxDev)
	return (1 - ratio) * height
}

// ToScreen maps every point of the series into pixel space.
func ToScreen(series []schema.SeriesPoint, mean, maxDev, width, height float64) []schema.ScreenPoint {
	points := make([]schema.ScreenPoint, len(series))
	for i, p := range series {
		points[i] = schema.ScreenPoint{
			X: MapXToPixel(i, len(series), width),
			Y: MapYToPixel(p.Y, mean, maxDev, height),
		}
	}
	return points
}
