package geom

import (
	"strconv"
	"strings"

	"github.com/viratco/klord/schema"
)

// Tension is the Catmull-Rom tension used for smoothed paths.
const Tension = 0.18

// BuildSmoothPath converts points into an SVG path of cubic bezier segments
// passing through every point. No points yield "" and one point yields a bare move.
func BuildSmoothPath(points []schema.ScreenPoint) string {
	if len(points) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("M")
	writePair(&sb, points[0].X, points[0].Y)

	for i := 0; i < len(points)-1; i++ {
		p0 := points[max(i-1, 0)]
		p1 := points[i]
		p2 := points[i+1]
		p3 := points[min(i+2, len(points)-1)]

		c1x := p1.X + (p2.X-p0.X)*Tension
		c1y := p1.Y + (p2.Y-p0.Y)*Tension
		c2x := p2.X - (p3.X-p1.X)*Tension
		c2y := p2.Y - (p3.Y-p1.Y)*Tension

		sb.WriteString(" C")
		writePair(&sb, c1x, c1y)
		sb.WriteString(",")
		writePair(&sb, c2x, c2y)
		sb.WriteString(",")
		writePair(&sb, p2.X, p2.Y)
	}
	return sb.String()
}

// AreaPath closes a line path down to baselineY, for filled charts.
func AreaPath(linePath string, startX, endX, baselineY float64) string {
	if linePath == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(linePath)
	sb.WriteString(" L")
	writePair(&sb, endX, baselineY)
	sb.WriteString(" L")
	writePair(&sb, startX, baselineY)
	sb.WriteString(" Z")
	return sb.String()
}

func writePair(sb *strings.Builder, x, y float64) {
	sb.WriteString(FormatNumber(x))
	sb.WriteString(",")
	sb.WriteString(FormatNumber(y))
}

// FormatNumber renders v in its shortest decimal form. Negative zero prints as 0.
func FormatNumber(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
