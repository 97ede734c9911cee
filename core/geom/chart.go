package geom

import (
	"math"

	"github.com/viratco/klord/schema"
)

// barFill is the share of a bar slot covered by the bar.
const barFill = 0.6

// Build assembles the chart variant named by kind. maxValue only applies to bar charts.
func Build(kind schema.ChartKind, series []schema.SeriesPoint, maxValue, width, height float64) schema.ChartGeometry {
	switch kind {
	case schema.ProgressChart:
		return ProgressChart(series, width, height)
	case schema.BarChart:
		return BarChart(series, maxValue, width, height)
	case schema.CompactChart:
		return CompactChart(series, width, height)
	default:
		return LineChart(series, width, height)
	}
}

// LineChart builds a smoothed line scaled by MaxAbsDeviation.
func LineChart(series []schema.SeriesPoint, width, height float64) schema.ChartGeometry {
	mean := Mean(series)
	return lineGeometry(schema.LineChart, series, mean, MaxAbsDeviation(series, mean), width, height)
}

// ProgressChart builds a smoothed line scaled by RoundedMaxAbsDeviation, with an
// area fill closed at the bottom edge.
func ProgressChart(series []schema.SeriesPoint, width, height float64) schema.ChartGeometry {
	mean := Mean(series)
	g := lineGeometry(schema.ProgressChart, series, mean, RoundedMaxAbsDeviation(series, mean), width, height)
	if n := len(g.Points); n > 0 {
		g.AreaPath = AreaPath(g.LinePath, g.Points[0].X, g.Points[n-1].X, height)
	}
	return g
}

// CompactChart builds a line chart over the Thirds of a monthly series.
func CompactChart(series []schema.SeriesPoint, width, height float64) schema.ChartGeometry {
	g := LineChart(Thirds(series), width, height)
	g.Kind = schema.CompactChart
	return g
}

// BarChart builds one bottom-anchored bar per point, scaled against maxValue.
func BarChart(series []schema.SeriesPoint, maxValue, width, height float64) schema.ChartGeometry {
	g := schema.ChartGeometry{
		Kind:   schema.BarChart,
		Width:  width,
		Height: height,
		Mean:   Mean(series),
		Series: cloneSeries(series),
	}
	if len(series) == 0 {
		return g
	}

	scale := math.Max(maxValue, 1)
	slot := width / float64(len(series))
	barWidth := slot * barFill
	g.Bars = make([]schema.Bar, len(series))
	for i, p := range series {
		h := math.Max(0, math.Min(height, p.Y/scale*height))
		g.Bars[i] = schema.Bar{
			X:      float64(i)*slot + (slot-barWidth)/2,
			Y:      height - h,
			Width:  barWidth,
			Height: h,
			Value:  p.Y,
			Label:  p.Label,
		}
	}
	return g
}

func lineGeometry(kind schema.ChartKind, series []schema.SeriesPoint, mean, maxDev, width, height float64) schema.ChartGeometry {
	points := ToScreen(series, mean, maxDev, width, height)
	return schema.ChartGeometry{
		Kind:         kind,
		Width:        width,
		Height:       height,
		Mean:         mean,
		MaxDeviation: maxDev,
		Series:       cloneSeries(series),
		Points:       points,
		LinePath:     BuildSmoothPath(points),
		Ticks:        AxisTicks(mean, maxDev, DefaultTickCount),
	}
}

func cloneSeries(series []schema.SeriesPoint) []schema.SeriesPoint {
	out := make([]schema.SeriesPoint, len(series))
	copy(out, series)
	return out
}
