package contract

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viratco/klord/schema"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Source:       "http",
		APIURL:       "https://api.example.com/",
		Mode:         "monthly",
		Output:       "text",
		Precision:    1,
		Color:        "yes",
		CacheBackend: "none",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError string
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "file source", mutate: func(in *ConfigRawInput) { in.Source = "file"; in.Input = "leads.json"; in.APIURL = "" }},
		{name: "file source without input", mutate: func(in *ConfigRawInput) { in.Source = "file" }, expectError: "--input is required"},
		{name: "http source without url", mutate: func(in *ConfigRawInput) { in.APIURL = "" }, expectError: "--api-url is required"},
		{name: "relative url", mutate: func(in *ConfigRawInput) { in.APIURL = "api.example.com" }, expectError: "invalid --api-url"},
		{name: "unknown source", mutate: func(in *ConfigRawInput) { in.Source = "ftp" }, expectError: "invalid source"},
		{name: "invalid mode", mutate: func(in *ConfigRawInput) { in.Mode = "daily" }, expectError: "invalid mode"},
		{name: "invalid kind", mutate: func(in *ConfigRawInput) { in.Kind = "pie" }, expectError: "invalid chart kind"},
		{name: "compact needs monthly", mutate: func(in *ConfigRawInput) { in.Kind = "compact"; in.Mode = "yearly" }, expectError: "compact charts require monthly"},
		{name: "invalid series", mutate: func(in *ConfigRawInput) { in.Series = "revenue" }, expectError: "invalid series"},
		{name: "negative width", mutate: func(in *ConfigRawInput) { in.Width = -1 }, expectError: "chart dimensions"},
		{name: "huge height", mutate: func(in *ConfigRawInput) { in.Height = MaxChartDimension + 1 }, expectError: "chart dimensions"},
		{name: "window too wide", mutate: func(in *ConfigRawInput) { in.Window = 40 }, expectError: "window must be"},
		{name: "invalid precision", mutate: func(in *ConfigRawInput) { in.Precision = 3 }, expectError: "precision must be"},
		{name: "invalid output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: "invalid output format"},
		{name: "parquet needs file", mutate: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: "requires --output-file"},
		{name: "invalid color", mutate: func(in *ConfigRawInput) { in.Color = "maybe" }, expectError: "invalid --color"},
		{name: "invalid timeout", mutate: func(in *ConfigRawInput) { in.APITimeout = "-5s" }, expectError: "invalid --api-timeout"},
		{name: "invalid now", mutate: func(in *ConfigRawInput) { in.Now = "yesterday-ish" }, expectError: "invalid --now"},
		{name: "invalid cache backend", mutate: func(in *ConfigRawInput) { in.CacheBackend = "redis" }, expectError: "invalid cache backend"},
		{name: "mysql without dsn", mutate: func(in *ConfigRawInput) { in.CacheBackend = "mysql" }, expectError: "connection string is required"},
		{name: "invalid runs backend", mutate: func(in *ConfigRawInput) { in.RunsBackend = "mongo" }, expectError: "invalid runs backend"},
		{
			name: "shared sqlite file",
			mutate: func(in *ConfigRawInput) {
				in.CacheBackend, in.RunsBackend = "sqlite", "sqlite"
				in.CacheDBConnect, in.RunsDBConnect = "/tmp/klord.db", "/tmp/klord.db"
			},
			expectError: "different SQLite database files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	input := &ConfigRawInput{APIURL: "http://localhost:3000"}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, schema.HTTPSource, cfg.Source)
	assert.Equal(t, "http://localhost:3000", cfg.APIURL)
	assert.Equal(t, DefaultAPIPath, cfg.APIPath)
	assert.Equal(t, DefaultAPITimeout, cfg.APITimeout)
	assert.Equal(t, schema.MonthlyFrame, cfg.Mode)
	assert.Equal(t, schema.LineChart, cfg.Kind)
	assert.Equal(t, schema.StepsSeries, cfg.Series)
	assert.Equal(t, float64(DefaultChartWidth), cfg.Width)
	assert.Equal(t, float64(DefaultChartHeight), cfg.Height)
	assert.Equal(t, DefaultWindow, cfg.Window)
	assert.Equal(t, DefaultPrecision, cfg.Precision)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.SQLiteBackend, cfg.CacheBackend)
	assert.Empty(t, cfg.RunsBackend)
	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.True(t, cfg.UseColors)
	assert.False(t, cfg.NowPinned)
	assert.WithinDuration(t, time.Now(), cfg.Now, time.Minute)
}

func TestProcessAndValidateNormalizes(t *testing.T) {
	cfg := &Config{}
	input := validInput()
	input.Mode = "YEARLY"
	input.APIPath = "v2/bookings"
	input.APITimeout = "3s"
	input.Now = "2024-03-15T12:00:00Z"
	input.Output = "JSON"
	input.RunsBackend = "sqlite"
	input.RunsDBConnect = filepath.Join(t.TempDir(), "runs.db")
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, "https://api.example.com", cfg.APIURL)
	assert.Equal(t, "/v2/bookings", cfg.APIPath)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, schema.YearlyFrame, cfg.Mode)
	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.True(t, cfg.NowPinned)
	assert.True(t, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC).Equal(cfg.Now))
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	assert.NoError(t, ValidateDatabaseConnectionString(schema.SQLiteBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.NoneBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@tcp(localhost:3306)/klord"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@localhost"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@tcp(localhost:3306)"))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost dbname=klord"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "dbname=klord"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost"))
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Mode: schema.MonthlyFrame, Kind: schema.LineChart, Series: schema.StepsSeries, Width: 300, Height: 120}

	clone := cfg.CloneWithQuery(schema.YearlyFrame, "", schema.LeadsSeries, 0, 60)
	assert.Equal(t, schema.YearlyFrame, clone.Mode)
	assert.Equal(t, schema.LineChart, clone.Kind)
	assert.Equal(t, schema.LeadsSeries, clone.Series)
	assert.Equal(t, 300.0, clone.Width)
	assert.Equal(t, 60.0, clone.Height)

	// Original untouched
	assert.Equal(t, schema.MonthlyFrame, cfg.Mode)
	assert.Equal(t, 120.0, cfg.Height)
}

func TestNowBucket(t *testing.T) {
	cfg := &Config{Now: time.Date(2024, 3, 15, 12, 34, 56, 0, time.UTC)}
	assert.Equal(t, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC), cfg.NowBucket())

	// Half-hour zones truncate on their own wall clock
	ist := time.FixedZone("IST", 5*3600+1800)
	cfg = &Config{Now: time.Date(2024, 11, 1, 0, 15, 0, 0, ist)}
	assert.Equal(t, time.Date(2024, 11, 1, 0, 0, 0, 0, ist), cfg.NowBucket())
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	ProcessProfilingConfig(profile, "")
	assert.False(t, profile.Enabled)

	ProcessProfilingConfig(profile, " out/klord ")
	assert.True(t, profile.Enabled)
	assert.Equal(t, "out/klord", profile.Prefix)
}
