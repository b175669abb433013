//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestShiftlineWithMySQL tests the shiftline CLI with a MySQL history backend.
func TestShiftlineWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "shiftline",
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

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/shiftline?parseTime=true", host, port.Port())

	// Set environment variables
	_ = os.Setenv("SHIFTLINE_STORE_BACKEND", "mysql")
	_ = os.Setenv("SHIFTLINE_STORE_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("SHIFTLINE_STORE_BACKEND") }()
	defer func() { _ = os.Unsetenv("SHIFTLINE_STORE_DB_CONNECT") }()

	runSaveAndQueryFlow(t)
}

// TestShiftlineWithPostgres tests the shiftline CLI with a PostgreSQL history backend.
func TestShiftlineWithPostgres(t *testing.T) {
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

	// Set environment variables
	_ = os.Setenv("SHIFTLINE_STORE_BACKEND", "postgresql")
	_ = os.Setenv("SHIFTLINE_STORE_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("SHIFTLINE_STORE_BACKEND") }()
	defer func() { _ = os.Unsetenv("SHIFTLINE_STORE_DB_CONNECT") }()

	runSaveAndQueryFlow(t)
}

// runSaveAndQueryFlow exercises ingest --save-history and the history
// queries against whatever backend the environment selects.
func runSaveAndQueryFlow(t *testing.T) {
	workDir := t.TempDir()

	// The default shift date is yesterday; sheets are named by day of month.
	yesterday := time.Now().AddDate(0, 0, -1)
	sheetName := strconv.Itoa(yesterday.Day())

	workbook := filepath.Join(workDir, "line1.xlsx")
	writeShiftWorkbook(t, workbook, sheetName)

	// Run shiftline store clear
	err := runShiftlineCommand(t, workDir, "store", "clear")
	require.NoError(t, err)

	// Run shiftline ingest with history save
	err = runShiftlineCommand(t, workDir, "ingest", workbook, "--save-history")
	require.NoError(t, err)

	// Run shiftline history day
	err = runShiftlineCommand(t, workDir, "history", "day")
	require.NoError(t, err)

	// Run shiftline history month
	err = runShiftlineCommand(t, workDir, "history", "month")
	require.NoError(t, err)

	// Run shiftline store status
	err = runShiftlineCommand(t, workDir, "store", "status")
	require.NoError(t, err)
}
