package schema

// ScreenPoint is a point in pixel space. Y grows downward.
type ScreenPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bar is one rectangle of a bar chart, anchored at the chart bottom.
type Bar struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Value  float64 `json:"value"`
	Label  string  `json:"label,omitempty"`
}

// ChartGeometry is the renderable output of a chart variant.
type ChartGeometry struct {
	Kind         ChartKind     `json:"kind"`
	Width        float64       `json:"width"`
	Height       float64       `json:"height"`
	Mean         float64       `json:"mean"`
	MaxDeviation float64       `json:"max_deviation"`
	Series       []SeriesPoint `json:"series"`
	Points       []ScreenPoint `json:"points,omitempty"`
	LinePath     string        `json:"line_path,omitempty"`
	AreaPath     string        `json:"area_path,omitempty"`
	Ticks        []float64     `json:"ticks,omitempty"`
	Bars         []Bar         `json:"bars,omitempty"`
}

// ChartResult pairs a chart with the aggregation it was built from.
type ChartResult struct {
	Mode   TimeFrame     `json:"mode"`
	Series SeriesName    `json:"series"`
	Chart  ChartGeometry `json:"chart"`
}
