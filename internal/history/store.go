// Package history persists build-timing run summaries across
// invocations, so past builds can be listed, compared, and exported.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/huangsam/buildpulse/internal/contract"
	"github.com/huangsam/buildpulse/schema"

	// Database drivers for the supported backends.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// runsTable is the table holding one row per analyzed report.
const runsTable = "buildpulse_runs"

// recordedAtLayout stores timestamps as text on every backend, which
// keeps the scan paths identical across sqlite, mysql and postgresql.
const recordedAtLayout = time.RFC3339Nano

// StoreImpl implements the contract.HistoryStore interface.
type StoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.HistoryStore = &StoreImpl{} // Compile-time check

// NewStore creates a HistoryStore with the specified backend.
func NewStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetHistoryDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=... dbname=...", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled tracking
		return &StoreImpl{
			db:         nil,
			backend:    backend,
			driverName: "",
		}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Verify the database server is running and accessible", backend, err)
	}

	// The table DDL is dialect-neutral across all three backends.
	if _, err := db.Exec(createRunsTableQuery()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create runs table: %w", err)
	}

	return &StoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// createRunsTableQuery returns the CREATE TABLE statement for the runs table.
func createRunsTableQuery() string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			started_at VARCHAR(32) PRIMARY KEY,
			duration_ms BIGINT NOT NULL,
			first_crate VARCHAR(256) NOT NULL,
			target VARCHAR(256) NOT NULL,
			blocked_ms BIGINT NOT NULL,
			command TEXT,
			report_path TEXT,
			recorded_at VARCHAR(40) NOT NULL
		);
	`, runsTable)
}

// RecordRun upserts one run record keyed by started_at. Re-analyzing
// the same report overwrites the existing row, matching the idempotent
// overwrite behavior of the on-disk summary files.
func (s *StoreImpl) RecordRun(rec schema.RunRecord) error {
	// Skip for NoneBackend
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}

	recordedAt := rec.RecordedAt.Format(recordedAtLayout)

	var query string
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (started_at, duration_ms, first_crate, target, blocked_ms, command, report_path, recorded_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (started_at) DO UPDATE SET
				duration_ms = EXCLUDED.duration_ms,
				first_crate = EXCLUDED.first_crate,
				target = EXCLUDED.target,
				blocked_ms = EXCLUDED.blocked_ms,
				command = EXCLUDED.command,
				report_path = EXCLUDED.report_path,
				recorded_at = EXCLUDED.recorded_at
		`, runsTable)
	case schema.MySQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (started_at, duration_ms, first_crate, target, blocked_ms, command, report_path, recorded_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE
				duration_ms = VALUES(duration_ms),
				first_crate = VALUES(first_crate),
				target = VALUES(target),
				blocked_ms = VALUES(blocked_ms),
				command = VALUES(command),
				report_path = VALUES(report_path),
				recorded_at = VALUES(recorded_at)
		`, runsTable)
	default: // SQLite
		query = fmt.Sprintf(`
			INSERT INTO %s (started_at, duration_ms, first_crate, target, blocked_ms, command, report_path, recorded_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (started_at) DO UPDATE SET
				duration_ms = excluded.duration_ms,
				first_crate = excluded.first_crate,
				target = excluded.target,
				blocked_ms = excluded.blocked_ms,
				command = excluded.command,
				report_path = excluded.report_path,
				recorded_at = excluded.recorded_at
		`, runsTable)
	}

	args := []any{rec.StartedAt, rec.DurationMs, rec.FirstCrate, rec.Target, rec.BlockedMs, rec.Command, rec.ReportPath, recordedAt}
	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to upsert run record: %w", err)
	}
	return nil
}

// ListRuns retrieves all recorded runs ordered by started_at.
func (s *StoreImpl) ListRuns() ([]schema.RunRecord, error) {
	// Skip for NoneBackend
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT started_at, duration_ms, first_crate, target, blocked_ms, command, report_path, recorded_at
		FROM %s ORDER BY started_at
	`, runsTable)

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var rec schema.RunRecord
		var recordedAtStr string
		if err := rows.Scan(&rec.StartedAt, &rec.DurationMs, &rec.FirstCrate, &rec.Target,
			&rec.BlockedMs, &rec.Command, &rec.ReportPath, &recordedAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w", err)
		}
		recordedAt, err := time.Parse(recordedAtLayout, recordedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse recorded_at: %w", err)
		}
		rec.RecordedAt = recordedAt
		results = append(results, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetStatus returns status information about the history store.
func (s *StoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:   string(s.backend),
		Connected: s.db != nil,
	}

	if s.backend == schema.NoneBackend || s.db == nil {
		return status, nil
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable)
	if err := s.db.QueryRow(countQuery).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		lastQuery := fmt.Sprintf("SELECT started_at, recorded_at FROM %s ORDER BY started_at DESC LIMIT 1", runsTable)
		var recordedAtStr string
		if err := s.db.QueryRow(lastQuery).Scan(&status.LastStartedAt, &recordedAtStr); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		recordedAt, err := time.Parse(recordedAtLayout, recordedAtStr)
		if err != nil {
			return status, fmt.Errorf("failed to parse recorded_at: %w", err)
		}
		status.LastRecorded = recordedAt
	}

	return status, nil
}

// Clear removes all recorded runs.
func (s *StoreImpl) Clear() error {
	// Skip for NoneBackend
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}
	if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", runsTable)); err != nil {
		return fmt.Errorf("failed to clear runs: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *StoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
