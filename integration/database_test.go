//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestKlordWithMySQL tests the klord CLI with MySQL cache and run history backends.
func TestKlordWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "klord",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/klord", host, port.Port())
	exerciseBackend(t, "mysql", connStr)
}

// TestKlordWithPostgres tests the klord CLI with PostgreSQL cache and run history backends.
func TestKlordWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	exerciseBackend(t, "postgresql", connStr)
}

// exerciseBackend runs the store lifecycle commands against one database backend.
func exerciseBackend(t *testing.T, backend, connStr string) {
	t.Helper()
	t.Setenv("KLORD_CACHE_BACKEND", backend)
	t.Setenv("KLORD_CACHE_DB_CONNECT", connStr)
	t.Setenv("KLORD_RUNS_BACKEND", backend)
	t.Setenv("KLORD_RUNS_DB_CONNECT", connStr)

	run := func(args ...string) string {
		t.Helper()
		out, err := runKlord(t, args...)
		require.NoError(t, err)
		return out
	}

	// Start from a clean slate
	run("cache", "clear")
	run("runs", "clear")

	// Schema migrations up, down and up again
	assert.Contains(t, run("runs", "migrate"), "Successfully migrated")
	assert.Contains(t, run("runs", "migrate", "--target-version", "0"), "rolled back")
	assert.Contains(t, run("runs", "migrate"), "Successfully migrated")

	// Two identical runs: the second is served from cache, both are tracked
	first := run(fileSourceArgs("series", "--output", "json")...)
	second := run(fileSourceArgs("series", "--output", "json")...)
	assert.JSONEq(t, first, second)
	run(fileSourceArgs("chart", "--kind", "bar", "--series", "leads", "--output", "json")...)

	cacheStatus := run("cache", "status")
	assert.Contains(t, cacheStatus, backend)

	runStatus := run("runs", "status")
	assert.Contains(t, runStatus, "Total Runs: 3")

	exportBase := filepath.Join(t.TempDir(), "klord")
	run("runs", "export", "--output-file", exportBase)
	for _, suffix := range []string{".runs.parquet", ".run_buckets.parquet"} {
		info, err := os.Stat(exportBase + suffix)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}
