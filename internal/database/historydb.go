package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/jieyouxu/modio-modcheck/internal/model"
)

// HistoryDB provides SQLite-based storage for reconciliation runs and the
// last observed name of each mod reference.
//
// Design decision: We store the full report as JSON in a single column
// rather than normalizing entries into rows. Reports are only ever read
// back whole (for history display and diffing), and JSON keeps the schema
// stable as the report type evolves.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in the specified directory.
// If CreateIfNotExists is false and the database doesn't exist, an error
// is returned; the history subcommand uses this so that it never creates
// an empty database just to report it has no history.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "modcheck.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("history database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Runs store complete reconciliation reports as JSON
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		mod_list TEXT NOT NULL,
		game_id INTEGER NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		report_json TEXT NOT NULL,
		summary TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_mod_list ON runs(mod_list);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);

	-- Mod names retain the last display name observed per reference,
	-- which is what makes rename detection across runs possible
	CREATE TABLE IF NOT EXISTS mod_names (
		reference TEXT PRIMARY KEY,
		mod_id INTEGER,
		name TEXT NOT NULL,
		name_id TEXT,
		updated DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_mod_names_mod_id ON mod_names(mod_id);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun stores a completed report and returns its run ID.
func (hdb *HistoryDB) SaveRun(ctx context.Context, report *model.Report) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	summary := map[string]int{
		"ok":            report.OkCount,
		"hidden":        report.HiddenCount,
		"renamed":       report.RenamedCount,
		"deleted":       report.DeletedCount,
		"lookup_failed": report.LookupFailedCount,
	}
	summaryJSON, _ := json.Marshal(summary) //nolint:errcheck // simple map; Marshal won't fail

	query := `
	INSERT INTO runs (mod_list, game_id, report_json, summary)
	VALUES (?, ?, ?, ?)
	`

	result, err := hdb.db.ExecContext(ctx, query,
		report.ModList,
		report.GameID,
		string(reportJSON),
		string(summaryJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}

	return result.LastInsertId()
}

// GetRun retrieves a stored report by run ID.
// Returns nil without error when the run does not exist.
func (hdb *HistoryDB) GetRun(ctx context.Context, id int64) (*model.Report, error) {
	query := `SELECT report_json FROM runs WHERE id = ?`

	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	var report model.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &report, nil
}

// LatestRuns retrieves the most recent stored reports, newest first.
func (hdb *HistoryDB) LatestRuns(ctx context.Context, limit int) ([]*model.Report, error) {
	query := `
	SELECT report_json FROM runs
	ORDER BY timestamp DESC, id DESC
	LIMIT ?
	`

	rows, err := hdb.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get runs: %w", err)
	}
	defer rows.Close()

	var reports []*model.Report
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		var report model.Report
		if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
			continue // Skip malformed reports
		}
		reports = append(reports, &report)
	}

	return reports, rows.Err()
}

// RunMetadata contains summary information about a stored run.
// This is used for displaying run history without loading full reports.
type RunMetadata struct {
	// ID is the unique identifier of the run in the database.
	ID int64

	// ModList is the path of the checked mod list.
	ModList string

	// GameID is the mod.io game ID of the run.
	GameID int64

	// Timestamp is when the check was performed.
	Timestamp time.Time

	// Summary contains per-classification entry counts.
	Summary map[string]int
}

// ListRuns retrieves metadata for all stored runs, newest first.
func (hdb *HistoryDB) ListRuns(ctx context.Context) ([]RunMetadata, error) {
	query := `
	SELECT id, mod_list, game_id, timestamp, summary
	FROM runs
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := hdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var results []RunMetadata
	for rows.Next() {
		var meta RunMetadata
		var timestamp string
		var summaryJSON sql.NullString

		if err := rows.Scan(&meta.ID, &meta.ModList, &meta.GameID, &timestamp, &summaryJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run metadata: %w", err)
		}

		meta.Timestamp = parseTimestamp(timestamp)

		if summaryJSON.Valid && summaryJSON.String != "" {
			if err := json.Unmarshal([]byte(summaryJSON.String), &meta.Summary); err != nil {
				meta.Summary = make(map[string]int)
			}
		} else {
			meta.Summary = make(map[string]int)
		}

		results = append(results, meta)
	}

	return results, rows.Err()
}

// PriorName returns the display name last observed for a reference.
// Returns "" without error when the reference has never been recorded.
func (hdb *HistoryDB) PriorName(ctx context.Context, reference string) (string, error) {
	query := `SELECT name FROM mod_names WHERE reference = ?`

	var name string
	err := hdb.db.QueryRowContext(ctx, query, reference).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get prior name: %w", err)
	}
	return name, nil
}

// RecordName stores the display name observed for a reference.
// Uses UPSERT so the row always reflects the most recent observation.
func (hdb *HistoryDB) RecordName(ctx context.Context, reference string, modID int64, name, nameID string) error {
	query := `
	INSERT INTO mod_names (reference, mod_id, name, name_id)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(reference) DO UPDATE SET
		mod_id = excluded.mod_id,
		name = excluded.name,
		name_id = excluded.name_id,
		updated = CURRENT_TIMESTAMP
	`

	if _, err := hdb.db.ExecContext(ctx, query, reference, modID, name, nameID); err != nil {
		return fmt.Errorf("failed to record name: %w", err)
	}
	return nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple
// formats. SQLite may return timestamps in different formats depending on
// configuration. If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
