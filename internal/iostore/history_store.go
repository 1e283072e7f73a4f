package iostore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/gitbloat/internal/contract"
	"github.com/huangsam/gitbloat/schema"
)

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// No-op store for disabled history
		return &HistoryStoreImpl{backend: backend}, nil
	}

	driverName, dsn, err := driverFor(backend, connStr)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if backend == schema.SQLiteBackend {
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Check that the directory is writable."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// createHistoryTables creates the scan history tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{scanRunsTable, getCreateScanRunsQuery(backend)},
		{scanObjectsTable, getCreateScanObjectsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateScanRunsQuery returns the CREATE TABLE query for gitbloat_scan_runs.
func getCreateScanRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(scanRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				scan_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms BIGINT,
				repo_path VARCHAR(1024) NOT NULL,
				manifest_digest CHAR(64),
				total_objects BIGINT,
				resolved_objects BIGINT,
				skipped_objects BIGINT,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				scan_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms BIGINT,
				repo_path TEXT NOT NULL,
				manifest_digest TEXT,
				total_objects BIGINT,
				resolved_objects BIGINT,
				skipped_objects BIGINT,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				scan_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				repo_path TEXT NOT NULL,
				manifest_digest TEXT,
				total_objects INTEGER,
				resolved_objects INTEGER,
				skipped_objects INTEGER,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateScanObjectsQuery returns the CREATE TABLE query for gitbloat_scan_objects.
func getCreateScanObjectsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(scanObjectsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				scan_id BIGINT NOT NULL,
				object_rank INT NOT NULL,
				object_hash VARCHAR(64) NOT NULL,
				object_path TEXT NOT NULL,
				size_bytes BIGINT NOT NULL,
				PRIMARY KEY (scan_id, object_rank)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				scan_id BIGINT NOT NULL,
				object_rank INT NOT NULL,
				object_hash TEXT NOT NULL,
				object_path TEXT NOT NULL,
				size_bytes BIGINT NOT NULL,
				PRIMARY KEY (scan_id, object_rank)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				scan_id INTEGER NOT NULL,
				object_rank INTEGER NOT NULL,
				object_hash TEXT NOT NULL,
				object_path TEXT NOT NULL,
				size_bytes INTEGER NOT NULL,
				PRIMARY KEY (scan_id, object_rank)
			);
		`, quotedTableName)
	}
}

// enabled reports whether the store writes anything.
func (hs *HistoryStoreImpl) enabled() bool {
	return hs.backend != schema.NoneBackend && hs.db != nil
}

// BeginScan creates a new scan run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginScan(startTime time.Time, repoPath string, configParams map[string]any) (int64, error) {
	if !hs.enabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(scanRunsTable, hs.backend)
	args := []any{formatTime(startTime, hs.backend), repoPath, string(configJSON)}

	var scanID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, repo_path, config_params) VALUES ($1, $2, $3) RETURNING scan_id`, quotedTableName)
		err = hs.db.QueryRow(query, args...).Scan(&scanID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, repo_path, config_params) VALUES (?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = hs.db.Exec(query, args...)
		if err == nil {
			scanID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert scan run: %w", err)
	}

	return scanID, nil
}

// RecordObject stores one ranked object of a scan.
func (hs *HistoryStoreImpl) RecordObject(scanID int64, rank int, object schema.ObjectRecord) error {
	if !hs.enabled() {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (scan_id, object_rank, object_hash, object_path, size_bytes) VALUES (%s)`,
		quoteTableName(scanObjectsTable, hs.backend), placeholders(hs.backend, 5))
	if _, err := hs.db.Exec(query, scanID, rank, object.Hash, object.Path, object.Size); err != nil {
		return fmt.Errorf("failed to insert scan object: %w", err)
	}
	return nil
}

// EndScan updates the scan run with completion data.
func (hs *HistoryStoreImpl) EndScan(scanID int64, result *schema.ScanResult) error {
	if !hs.enabled() {
		return nil
	}

	b := hs.backend
	query := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, manifest_digest = %s,
		total_objects = %s, resolved_objects = %s, skipped_objects = %s WHERE scan_id = %s`,
		quoteTableName(scanRunsTable, b),
		placeholder(b, 1), placeholder(b, 2), placeholder(b, 3),
		placeholder(b, 4), placeholder(b, 5), placeholder(b, 6), placeholder(b, 7))

	_, err := hs.db.Exec(query,
		formatTime(result.EndTime, b),
		result.Duration().Milliseconds(),
		result.ManifestDigest,
		result.TotalObjects,
		result.ResolvedObjects,
		result.SkippedObjects,
		scanID,
	)
	if err != nil {
		return fmt.Errorf("failed to update scan run: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if !hs.enabled() {
		return status, nil
	}

	runsTable := quoteTableName(scanRunsTable, hs.backend)
	if err := hs.db.QueryRow("SELECT COUNT(*) FROM " + runsTable).Scan(&status.TotalScans); err != nil {
		return status, fmt.Errorf("failed to get total scans: %w", err)
	}

	if status.TotalScans > 0 {
		row := hs.db.QueryRow(fmt.Sprintf("SELECT scan_id, start_time FROM %s ORDER BY scan_id DESC LIMIT 1", runsTable))
		lastTime, err := hs.scanTime(row, &status.LastScanID)
		if err != nil {
			return status, fmt.Errorf("failed to get last scan info: %w", err)
		}
		status.LastScanTime = lastTime

		var oldestID int64
		row = hs.db.QueryRow(fmt.Sprintf("SELECT scan_id, start_time FROM %s ORDER BY scan_id ASC LIMIT 1", runsTable))
		oldestTime, err := hs.scanTime(row, &oldestID)
		if err != nil {
			return status, fmt.Errorf("failed to get oldest scan time: %w", err)
		}
		status.OldestScanTime = oldestTime

		if err := hs.db.QueryRow("SELECT COALESCE(SUM(total_objects), 0) FROM " + runsTable).Scan(&status.TotalObjects); err != nil {
			return status, fmt.Errorf("failed to get total objects: %w", err)
		}
	}

	for _, table := range []string{scanRunsTable, scanObjectsTable} {
		var count int64
		if err := hs.db.QueryRow("SELECT COUNT(*) FROM " + quoteTableName(table, hs.backend)).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// scanTime scans an (id, start_time) row, handling the SQLite text encoding.
func (hs *HistoryStoreImpl) scanTime(row *sql.Row, id *int64) (time.Time, error) {
	if hs.backend == schema.SQLiteBackend {
		var s string
		if err := row.Scan(id, &s); err != nil {
			return time.Time{}, err
		}
		return parseTime(s)
	}
	var t time.Time
	if err := row.Scan(id, &t); err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// GetAllScanRuns retrieves all scan runs from the store.
func (hs *HistoryStoreImpl) GetAllScanRuns() ([]schema.ScanRunRecord, error) {
	if !hs.enabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT scan_id, start_time, end_time, run_duration_ms, repo_path, manifest_digest,
		total_objects, resolved_objects, skipped_objects, config_params FROM %s ORDER BY scan_id`,
		quoteTableName(scanRunsTable, hs.backend))

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query scan runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ScanRunRecord
	for rows.Next() {
		var record schema.ScanRunRecord

		switch hs.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.ScanID, &startTimeStr, &endTimeStr, &record.RunDurationMs, &record.RepoPath,
				&record.ManifestDigest, &record.TotalObjects, &record.ResolvedObjects, &record.SkippedObjects,
				&record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan scan run: %w", err)
			}
			if record.StartTime, err = parseTime(startTimeStr); err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			if endTimeStr != nil {
				endTime, err := parseTime(*endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.ScanID, &record.StartTime, &record.EndTime, &record.RunDurationMs, &record.RepoPath,
				&record.ManifestDigest, &record.TotalObjects, &record.ResolvedObjects, &record.SkippedObjects,
				&record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan scan run: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scan runs: %w", err)
	}
	return results, nil
}

// GetAllScanObjects retrieves all recorded objects from the store.
func (hs *HistoryStoreImpl) GetAllScanObjects() ([]schema.ScanObjectRecord, error) {
	if !hs.enabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT scan_id, object_rank, object_hash, object_path, size_bytes FROM %s ORDER BY scan_id, object_rank`,
		quoteTableName(scanObjectsTable, hs.backend))

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query scan objects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ScanObjectRecord
	for rows.Next() {
		var record schema.ScanObjectRecord
		if err := rows.Scan(&record.ScanID, &record.ObjectRank, &record.ObjectHash, &record.ObjectPath, &record.SizeBytes); err != nil {
			return nil, fmt.Errorf("failed to scan scan object: %w", err)
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scan objects: %w", err)
	}
	return results, nil
}
