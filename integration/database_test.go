//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestBuildpulseWithMySQL tests the buildpulse CLI with a MySQL backend.
func TestBuildpulseWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "buildpulse",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/buildpulse?parseTime=true", host, port.Port())
	runBackendScenario(t, "mysql", connStr)
}

// TestBuildpulseWithPostgres tests the buildpulse CLI with a PostgreSQL backend.
func TestBuildpulseWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runBackendScenario(t, "postgresql", connStr)
}

// runBackendScenario exercises analyze plus the history subcommands
// against the given backend.
func runBackendScenario(t *testing.T, backend, connStr string) {
	t.Helper()

	workDir := t.TempDir()
	dataDir := t.TempDir()
	reportPath, err := writeSampleReport(workDir)
	require.NoError(t, err)

	// Set environment variables
	_ = os.Setenv("BUILDPULSE_HISTORY_BACKEND", backend)
	_ = os.Setenv("BUILDPULSE_HISTORY_DB_CONNECT", connStr)
	_ = os.Setenv("XDG_DATA_HOME", dataDir)
	defer func() { _ = os.Unsetenv("BUILDPULSE_HISTORY_BACKEND") }()
	defer func() { _ = os.Unsetenv("BUILDPULSE_HISTORY_DB_CONNECT") }()
	defer func() { _ = os.Unsetenv("XDG_DATA_HOME") }()

	// Start from a clean store
	err = runBuildpulseCommand(t, "history", "clear")
	require.NoError(t, err)

	// Analyze a report, which records one run
	err = runBuildpulseCommand(t, "analyze", reportPath, "cargo build --timings")
	require.NoError(t, err)

	// Re-analyzing the same report must stay a single run (upsert)
	err = runBuildpulseCommand(t, "analyze", reportPath, "cargo build --timings")
	require.NoError(t, err)

	// Inspect the store
	err = runBuildpulseCommand(t, "history", "list")
	require.NoError(t, err)

	err = runBuildpulseCommand(t, "history", "status")
	require.NoError(t, err)

	// Clean up
	err = runBuildpulseCommand(t, "history", "clear")
	require.NoError(t, err)
}

func runBuildpulseCommand(t *testing.T, args ...string) error {
	binaryPath := getBuildpulseBinary()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = "../" // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
