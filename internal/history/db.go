package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Run statuses stored in diff_history.
const (
	StatusStarted   = "STARTED"
	StatusIdentical = "IDENTICAL"
	StatusDifferent = "DIFFERENT"
	StatusFailed    = "FAILED"
)

// DB wraps the SQL database connection and provides methods for interacting with diff run history.
type DB struct {
	db     *sql.DB
	logger zerolog.Logger
}

// RunEntry represents a record in the diff_history table.
type RunEntry struct {
	ID              int64
	RunID           string
	StartTime       time.Time
	EndTime         sql.NullTime
	Status          string
	Video1Path      string
	Video2Path      string
	Video1Frames    int
	Video2Frames    int
	DifferingFrames int
	ChunkCount      int
	ReportFilePath  sql.NullString
	LogSummary      sql.NullString
}

// NewDB initializes a new DB connection and ensures the schema is set up.
func NewDB(dataSourceName string, logger zerolog.Logger) (*DB, error) {
	logger.Info().Str("db_path", dataSourceName).Msg("Initializing history database connection")

	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error().Err(err).Str("directory", dbDir).Msg("Failed to create history database directory")
		return nil, fmt.Errorf("failed to create history database directory %s: %w", dbDir, err)
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		logger.Error().Err(err).Str("db_path", dataSourceName).Msg("Failed to open history database")
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dataSourceName, err)
	}

	db := &DB{
		db:     dbInstance,
		logger: logger,
	}

	if err := db.InitSchema(); err != nil {
		db.Close()
		logger.Error().Err(err).Msg("Failed to initialize database schema")
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	logger.Info().Str("path", dataSourceName).Msg("Database initialized and schema verified.")
	return db, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// InitSchema creates the diff_history table if it doesn't already exist.
func (d *DB) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS diff_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT UNIQUE,
		start_time DATETIME NOT NULL,
		end_time DATETIME,
		status TEXT NOT NULL,
		video1_path TEXT NOT NULL,
		video2_path TEXT NOT NULL,
		video1_frames INTEGER DEFAULT 0,
		video2_frames INTEGER DEFAULT 0,
		differing_frames INTEGER DEFAULT 0,
		chunk_count INTEGER DEFAULT 0,
		report_file_path TEXT,
		log_summary TEXT
	);
	`
	_, err := d.db.Exec(query)
	if err != nil {
		d.logger.Error().Err(err).Msg("DB: Failed to initialize schema")
		return err
	}
	d.logger.Info().Msg("DB: Schema initialized successfully (diff_history table ensured).")
	return nil
}

// RecordRunStart inserts a new record into diff_history with status "STARTED"
// and returns the ID of the newly inserted row.
func (d *DB) RecordRunStart(runID, video1Path, video2Path string, startTime time.Time) (int64, error) {
	query := `INSERT INTO diff_history (run_id, video1_path, video2_path, start_time, status) VALUES (?, ?, ?, ?, ?)`
	result, err := d.db.Exec(query, runID, video1Path, video2Path, startTime, StatusStarted)
	if err != nil {
		d.logger.Error().Err(err).Str("query", query).Msg("Failed to record run start")
		return 0, fmt.Errorf("failed to insert run start record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		d.logger.Error().Err(err).Msg("Failed to get last insert ID for run start")
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	d.logger.Info().Int64("db_id", id).Str("run_id", runID).Msg("Recorded run start in DB")
	return id, nil
}

// RunCompletion carries the completion details for an existing diff_history record.
type RunCompletion struct {
	Status          string
	Video1Frames    int
	Video2Frames    int
	DifferingFrames int
	ChunkCount      int
	ReportPath      string
	LogSummary      string
}

// UpdateRunCompletion updates an existing diff_history record with completion details.
func (d *DB) UpdateRunCompletion(dbRunID int64, endTime time.Time, completion RunCompletion) error {
	query := `UPDATE diff_history SET end_time = ?, status = ?, video1_frames = ?, video2_frames = ?, differing_frames = ?, chunk_count = ?, report_file_path = ?, log_summary = ? WHERE id = ?`
	_, err := d.db.Exec(query,
		endTime,
		completion.Status,
		completion.Video1Frames,
		completion.Video2Frames,
		completion.DifferingFrames,
		completion.ChunkCount,
		sql.NullString{String: completion.ReportPath, Valid: completion.ReportPath != ""},
		sql.NullString{String: completion.LogSummary, Valid: completion.LogSummary != ""},
		dbRunID,
	)
	if err != nil {
		d.logger.Error().Err(err).Int64("db_id", dbRunID).Str("query", query).Msg("Failed to update run completion")
		return fmt.Errorf("failed to update run completion for ID %d: %w", dbRunID, err)
	}
	d.logger.Info().Int64("db_id", dbRunID).Str("status", completion.Status).Msg("Updated run completion in DB")
	return nil
}

// GetLastRunTime retrieves the start_time of the most recent finished run.
func (d *DB) GetLastRunTime() (*time.Time, error) {
	query := `SELECT start_time FROM diff_history WHERE status IN (?, ?) ORDER BY start_time DESC LIMIT 1`
	var startTime time.Time
	err := d.db.QueryRow(query, StatusIdentical, StatusDifferent).Scan(&startTime)
	if err != nil {
		if err == sql.ErrNoRows {
			d.logger.Info().Msg("No finished run found in history.")
			return nil, err
		}
		d.logger.Error().Err(err).Str("query", query).Msg("Failed to query last run start time")
		return nil, fmt.Errorf("failed to query last run start time: %w", err)
	}

	d.logger.Debug().Time("last_run_start_time", startTime).Msg("Found last run start time.")
	return &startTime, nil
}

// GetRecentRuns returns the most recent runs, newest first.
func (d *DB) GetRecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT id, run_id, start_time, end_time, status, video1_path, video2_path,
		video1_frames, video2_frames, differing_frames, chunk_count, report_file_path, log_summary
		FROM diff_history ORDER BY start_time DESC LIMIT ?`

	rows, err := d.db.Query(query, limit)
	if err != nil {
		d.logger.Error().Err(err).Str("query", query).Msg("Failed to query recent runs")
		return nil, fmt.Errorf("failed to query recent runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		if err := rows.Scan(
			&e.ID, &e.RunID, &e.StartTime, &e.EndTime, &e.Status,
			&e.Video1Path, &e.Video2Path,
			&e.Video1Frames, &e.Video2Frames, &e.DifferingFrames, &e.ChunkCount,
			&e.ReportFilePath, &e.LogSummary,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
