//go:build database

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/oncolens/tumorscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// seedSamples creates a biopsies table with three rows.
func seedSamples(t *testing.T, driverName, connStr string) {
	t.Helper()
	db, err := sql.Open(driverName, connStr)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	stmts := []string{
		`DROP TABLE IF EXISTS biopsies`,
		`CREATE TABLE biopsies (id VARCHAR(32), worst_area DOUBLE PRECISION, worst_perimeter DOUBLE PRECISION, mean_radius DOUBLE PRECISION)`,
		`INSERT INTO biopsies VALUES ('small', 400, 80, 11)`,
		`INSERT INTO biopsies VALUES ('large', 3000, 220, 25)`,
		`INSERT INTO biopsies VALUES ('partial', 900, NULL, NULL)`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}
}

// exerciseBackend runs the ledger and source commands against one database.
func exerciseBackend(t *testing.T, backend, driverName, connStr string) {
	env := map[string]string{
		"TUMORSCORE_RUN_BACKEND":    backend,
		"TUMORSCORE_RUN_DB_CONNECT": connStr,
	}

	_, err := runTumorscore(t, env, "history", "clear")
	require.NoError(t, err)

	_, err = runTumorscore(t, env, "history", "migrate")
	require.NoError(t, err)

	_, err = runTumorscore(t, env, "predict", "--defaults")
	require.NoError(t, err)

	seedSamples(t, driverName, connStr)
	out, err := runTumorscore(t, env, "batch",
		"--source-backend", backend,
		"--source-db-connect", connStr,
		"--source-table", "biopsies",
		"--defaults", "--rank", "--output", "json")
	require.NoError(t, err)

	var report schema.BatchReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Results, 3)
	assert.Equal(t, "large", report.Results[0].ID)

	out, err = runTumorscore(t, env, "history", "list", "--output", "json")
	require.NoError(t, err)
	var runs []schema.RunRecord
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 2)
	assert.Equal(t, "batch", runs[1].Command)
	assert.Equal(t, int32(3), runs[1].SampleCount)

	out, err = runTumorscore(t, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Runs: 2")
}

// TestTumorscoreWithMySQL tests the tumorscore CLI with a MySQL backend.
func TestTumorscoreWithMySQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "tumorscore",
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

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/tumorscore?parseTime=true", host, port.Port())
	exerciseBackend(t, string(schema.MySQLBackend), "mysql", connStr)
}

// TestTumorscoreWithPostgres tests the tumorscore CLI with a PostgreSQL backend.
func TestTumorscoreWithPostgres(t *testing.T) {
	ctx := context.Background()

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

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	exerciseBackend(t, string(schema.PostgreSQLBackend), "pgx", connStr)
}
