package outwriter

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/viratco/klord/core/geom"
	"github.com/viratco/klord/schema"
)

// pointRadius is the radius of the dots drawn on line charts.
const pointRadius = 3

// WriteSVG renders chart geometry as a standalone SVG document.
// Only geometry is emitted; color follows currentColor.
func WriteSVG(w io.Writer, chart schema.ChartGeometry) error {
	bw := bufio.NewWriter(w)
	n := geom.FormatNumber

	_, _ = fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		n(chart.Width), n(chart.Height), n(chart.Width), n(chart.Height))

	if chart.Kind == schema.BarChart {
		for _, b := range chart.Bars {
			_, _ = fmt.Fprintf(bw, `  <rect x="%s" y="%s" width="%s" height="%s" fill="currentColor">`,
				n(b.X), n(b.Y), n(b.Width), n(b.Height))
			if b.Label != "" {
				_, _ = bw.WriteString("<title>")
				if err := xml.EscapeText(bw, []byte(b.Label)); err != nil {
					return err
				}
				_, _ = bw.WriteString("</title>")
			}
			_, _ = bw.WriteString("</rect>\n")
		}
	} else {
		if chart.AreaPath != "" {
			_, _ = fmt.Fprintf(bw, `  <path d="%s" fill="currentColor" fill-opacity="0.15" stroke="none"/>`+"\n", chart.AreaPath)
		}
		if chart.LinePath != "" {
			_, _ = fmt.Fprintf(bw, `  <path d="%s" fill="none" stroke="currentColor" stroke-width="2"/>`+"\n", chart.LinePath)
		}
		for _, p := range chart.Points {
			_, _ = fmt.Fprintf(bw, `  <circle cx="%s" cy="%s" r="%d" fill="currentColor"/>`+"\n", n(p.X), n(p.Y), pointRadius)
		}
	}

	_, _ = bw.WriteString("</svg>\n")
	return bw.Flush()
}
