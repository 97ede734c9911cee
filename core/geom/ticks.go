package geom

// DefaultTickCount is the number of axis ticks when none is requested.
const DefaultTickCount = 5

// AxisTicks returns count evenly spaced values from mean+maxDev down to mean-maxDev.
// A count below 2 uses DefaultTickCount. A non-positive maxDev yields only the mean.
func AxisTicks(mean, maxDev float64, count int) []float64 {
	if maxDev <= 0 {
		return []float64{mean}
	}
	if count < 2 {
		count = DefaultTickCount
	}
	step := 2 * maxDev / float64(count-1)
	ticks := make([]float64, count)
	for i := range ticks {
		ticks[i] = mean + maxDev - float64(i)*step
	}
	ticks[count-1] = mean - maxDev
	return ticks
}
