package contract

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/viratco/klord/schema"
)

// Default values for configuration.
const (
	DefaultAPIPath     = "/api/leads"
	DefaultAPITimeout  = 15 * time.Second
	DefaultChartWidth  = 300
	DefaultChartHeight = 120
	MaxChartDimension  = 10000
	DefaultWindow      = 1
	MaxWindow          = 31
	DefaultPrecision   = 1
	DefaultAddr        = ":8080"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration.
// This struct is the "final, validated" config.
type Config struct {
	Source     schema.SourceKind
	APIURL     string
	APIPath    string
	APIToken   string // Please use env var as this is plaintext
	APITimeout time.Duration
	InputFile  string

	Mode      schema.TimeFrame
	Now       time.Time
	NowPinned bool // Whether Now came from --now rather than the clock

	Kind   schema.ChartKind
	Series schema.SeriesName
	Width  float64 // Chart width in pixels
	Height float64 // Chart height in pixels
	Window int     // Rolling average window, 1 disables smoothing

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	TableWidth int // Terminal width override (0 = auto-detect)
	UseColors  bool

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	RunsBackend   schema.DatabaseBackend
	RunsDBConnect string // Please use env var as this is plaintext

	Addr string
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Record source ---
	Source     string `mapstructure:"source"`
	APIURL     string `mapstructure:"api-url"`
	APIPath    string `mapstructure:"api-path"`
	APIToken   string `mapstructure:"api-token"`
	APITimeout string `mapstructure:"api-timeout"`
	Input      string `mapstructure:"input"`

	// --- Aggregation and charts ---
	Mode   string `mapstructure:"mode"`
	Now    string `mapstructure:"now"`
	Kind   string `mapstructure:"kind"`
	Series string `mapstructure:"series"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Window int    `mapstructure:"window"`

	// --- Output ---
	Precision  int    `mapstructure:"precision"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	TableWidth int    `mapstructure:"table-width"`
	Color      string `mapstructure:"color"`

	// --- Persistence ---
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
	RunsBackend    string `mapstructure:"runs-backend"`
	RunsDBConnect  string `mapstructure:"runs-db-connect"`

	// --- Server ---
	Addr string `mapstructure:"addr"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// CloneWithQuery returns a copy of the Config with the per-request chart settings replaced.
// Zero values keep the current setting.
func (c *Config) CloneWithQuery(mode schema.TimeFrame, kind schema.ChartKind, series schema.SeriesName, width, height float64) *Config {
	clone := c.Clone()
	if mode != "" {
		clone.Mode = mode
	}
	if kind != "" {
		clone.Kind = kind
	}
	if series != "" {
		clone.Series = series
	}
	if width > 0 {
		clone.Width = width
	}
	if height > 0 {
		clone.Height = height
	}
	return clone
}

// NowBucket returns the reference time truncated to the hour on the wall clock
// of its own location. Two runs within the same local hour share cached series.
func (c *Config) NowBucket() time.Time {
	y, m, d := c.Now.Date()
	return time.Date(y, m, d, c.Now.Hour(), 0, 0, 0, c.Now.Location())
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateSourceConfig(cfg, input); err != nil {
		return err
	}
	if err := validateChartConfig(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return processNow(cfg, input, time.Now())
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates the output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.TableWidth = input.TableWidth
	cfg.Addr = input.Addr
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	// Parse color flag
	colorStr := input.Color
	if colorStr == "" {
		colorStr = "yes"
	}
	colors, err := ParseBoolString(colorStr)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Precision and Output Validation ---
	if input.Precision == 0 {
		input.Precision = DefaultPrecision
	}
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, svg, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	if input.TableWidth < 0 {
		return fmt.Errorf("table-width cannot be negative (received %d)", input.TableWidth)
	}
	return nil
}

// validateSourceConfig validates where records are loaded from.
func validateSourceConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.Source = schema.SourceKind(strings.ToLower(input.Source))
	if cfg.Source == "" {
		cfg.Source = schema.HTTPSource
	}
	if _, ok := schema.ValidSourceKinds[cfg.Source]; !ok {
		return fmt.Errorf("invalid source '%s'. must be http, file", input.Source)
	}

	cfg.APIToken = input.APIToken
	cfg.InputFile = strings.TrimSpace(input.Input)

	cfg.APIPath = input.APIPath
	if cfg.APIPath == "" {
		cfg.APIPath = DefaultAPIPath
	}
	if !strings.HasPrefix(cfg.APIPath, "/") {
		cfg.APIPath = "/" + cfg.APIPath
	}

	cfg.APITimeout = DefaultAPITimeout
	if input.APITimeout != "" {
		d, err := ParseTimeout(input.APITimeout)
		if err != nil {
			return fmt.Errorf("invalid --api-timeout value: %w", err)
		}
		cfg.APITimeout = d
	}

	switch cfg.Source {
	case schema.FileSource:
		if cfg.InputFile == "" {
			return fmt.Errorf("--input is required when using the file source (use '-' for stdin)")
		}
	case schema.HTTPSource:
		cfg.APIURL = strings.TrimRight(strings.TrimSpace(input.APIURL), "/")
		if cfg.APIURL == "" {
			return fmt.Errorf("--api-url is required when using the http source")
		}
		u, err := url.Parse(cfg.APIURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid --api-url '%s'. must be an absolute http(s) URL", input.APIURL)
		}
	}
	return nil
}

// validateChartConfig validates the aggregation and chart settings.
func validateChartConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.Mode = schema.TimeFrame(strings.ToLower(input.Mode))
	if cfg.Mode == "" {
		cfg.Mode = schema.MonthlyFrame
	}
	if _, ok := schema.ValidTimeFrames[cfg.Mode]; !ok {
		return fmt.Errorf("invalid mode '%s'. must be monthly, yearly, weekly", input.Mode)
	}

	cfg.Kind = schema.ChartKind(strings.ToLower(input.Kind))
	if cfg.Kind == "" {
		cfg.Kind = schema.LineChart
	}
	if _, ok := schema.ValidChartKinds[cfg.Kind]; !ok {
		return fmt.Errorf("invalid chart kind '%s'. must be line, progress, bar, compact", input.Kind)
	}
	if err := ValidateKindForMode(cfg.Kind, cfg.Mode); err != nil {
		return err
	}

	cfg.Series = schema.SeriesName(strings.ToLower(input.Series))
	if cfg.Series == "" {
		cfg.Series = schema.StepsSeries
	}
	if _, ok := schema.ValidSeriesNames[cfg.Series]; !ok {
		return fmt.Errorf("invalid series '%s'. must be steps, completed, leads", input.Series)
	}

	width, height := input.Width, input.Height
	if width == 0 {
		width = DefaultChartWidth
	}
	if height == 0 {
		height = DefaultChartHeight
	}
	if width < 0 || width > MaxChartDimension || height < 0 || height > MaxChartDimension {
		return fmt.Errorf("chart dimensions must be between 1 and %d (received %dx%d)", MaxChartDimension, width, height)
	}
	cfg.Width = float64(width)
	cfg.Height = float64(height)

	cfg.Window = input.Window
	if cfg.Window == 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.Window < 1 || cfg.Window > MaxWindow {
		return fmt.Errorf("window must be between 1 and %d (received %d)", MaxWindow, input.Window)
	}
	return nil
}

// ValidateKindForMode rejects chart kinds that only make sense for one time frame.
func ValidateKindForMode(kind schema.ChartKind, mode schema.TimeFrame) error {
	if kind == schema.CompactChart && mode != schema.MonthlyFrame {
		return fmt.Errorf("compact charts require monthly mode (received %s)", mode)
	}
	return nil
}

// validateBackendConfigs validates cache and run history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("cache backend: %w", err)
	}

	// --- Runs Backend Validation ---
	cfg.RunsBackend = schema.DatabaseBackend(strings.ToLower(input.RunsBackend))
	if cfg.RunsBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.RunsBackend]; !ok {
		return fmt.Errorf("invalid runs backend '%s'. must be sqlite, mysql, postgresql, none", input.RunsBackend)
	}
	cfg.RunsDBConnect = input.RunsDBConnect
	if err := ValidateDatabaseConnectionString(cfg.RunsBackend, cfg.RunsDBConnect); err != nil {
		return fmt.Errorf("runs backend: %w", err)
	}

	// Cache and runs must not share a SQLite file, since ClearCache removes the file
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.RunsBackend == schema.SQLiteBackend {
		cachePath := cfg.CacheDBConnect
		if cachePath == "" {
			cachePath = GetCacheDBFilePath()
		}
		runsPath := cfg.RunsDBConnect
		if runsPath == "" {
			runsPath = GetRunsDBFilePath()
		}
		if cachePath == runsPath {
			return fmt.Errorf("cache and runs storage must use different SQLite database files. Both resolve to %q", cachePath)
		}
	}
	return nil
}

// processNow resolves the reference time for aggregation.
func processNow(cfg *Config, input *ConfigRawInput, clock time.Time) error {
	now, err := ParseNow(input.Now, clock)
	if err != nil {
		return err
	}
	cfg.Now = now
	cfg.NowPinned = strings.TrimSpace(input.Now) != "" && !strings.EqualFold(strings.TrimSpace(input.Now), "now")
	return nil
}

// ProcessProfilingConfig enables profiling when a file prefix is given.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) {
	profilePrefix = strings.TrimSpace(profilePrefix)
	profile.Enabled = profilePrefix != ""
	profile.Prefix = profilePrefix
}
