package schema

// Custom string types for type safety.
type (
	// TimeFrame represents the calendar window used for bucketing.
	TimeFrame string

	// OutputMode represents the format of the output.
	OutputMode string

	// ChartKind represents a chart variant built from a series.
	ChartKind string

	// SeriesName selects which aggregated series a chart is built from.
	SeriesName string

	// SourceKind represents where records are loaded from.
	SourceKind string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string
)

// All time frames supported.
const (
	MonthlyFrame TimeFrame = "monthly" // default
	YearlyFrame  TimeFrame = "yearly"
	WeeklyFrame  TimeFrame = "weekly"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	SVGOut     OutputMode = "svg"
	ParquetOut OutputMode = "parquet"
)

// All chart kinds supported.
const (
	LineChart     ChartKind = "line" // default
	ProgressChart ChartKind = "progress"
	BarChart      ChartKind = "bar"
	CompactChart  ChartKind = "compact"
)

// All series names supported.
const (
	StepsSeries     SeriesName = "steps" // default
	CompletedSeries SeriesName = "completed"
	LeadsSeries     SeriesName = "leads"
)

// All record sources supported.
const (
	HTTPSource SourceKind = "http" // default
	FileSource SourceKind = "file"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Bucket counts per time frame.
const (
	MonthlyBuckets = 31
	YearlyBuckets  = 12
	WeeklyBuckets  = 7
)

// MinMaxSteps is the floor applied to the reported maximum step count.
const MinMaxSteps = 8

// ValidTimeFrames lists all valid time frames.
var ValidTimeFrames = map[TimeFrame]struct{}{
	MonthlyFrame: {},
	YearlyFrame:  {},
	WeeklyFrame:  {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	SVGOut:     {},
	ParquetOut: {},
}

// ValidChartKinds lists all valid chart kinds.
var ValidChartKinds = map[ChartKind]struct{}{
	LineChart:     {},
	ProgressChart: {},
	BarChart:      {},
	CompactChart:  {},
}

// ValidSeriesNames lists all valid series names.
var ValidSeriesNames = map[SeriesName]struct{}{
	StepsSeries:     {},
	CompletedSeries: {},
	LeadsSeries:     {},
}

// ValidSourceKinds lists all valid record sources.
var ValidSourceKinds = map[SourceKind]struct{}{
	HTTPSource: {},
	FileSource: {},
}

// ValidDatabaseBackends lists all valid cache backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// BucketCount returns the fixed number of buckets for a time frame.
func BucketCount(frame TimeFrame) int {
	switch frame {
	case YearlyFrame:
		return YearlyBuckets
	case WeeklyFrame:
		return WeeklyBuckets
	default:
		return MonthlyBuckets
	}
}
