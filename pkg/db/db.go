// Package db stores analysis history in SQLite.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// ErrNotFound is returned when an analysis does not exist
var ErrNotFound = errors.New("analysis not found")

// DB wraps the SQL database connection
type DB struct {
	conn *sql.DB
	path string
}

// Open creates or opens a SQLite database
func Open(path string) (*DB, error) {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{
		conn: conn,
		path: path,
	}

	if err := db.Migrate(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// Migrate creates or updates the database schema
func (db *DB) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS analyses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		taken_at DATETIME NOT NULL,
		hostname TEXT,
		cpu_model TEXT NOT NULL,
		cpu_usage REAL DEFAULT -1,
		ram_model TEXT NOT NULL,
		ram_usage REAL DEFAULT -1,
		gpu_model TEXT NOT NULL,
		disk_model TEXT NOT NULL,
		disk_kind TEXT,
		disk_usage REAL DEFAULT -1,
		score_mode TEXT NOT NULL,
		cpu_score REAL DEFAULT 0,
		gpu_score REAL DEFAULT 0,
		ram_score REAL DEFAULT 0,
		ssd_score REAL DEFAULT 0,
		bottleneck TEXT NOT NULL,
		label TEXT,
		details TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS recommendations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		analysis_id INTEGER NOT NULL,
		component TEXT NOT NULL,
		current_model TEXT,
		current_score REAL DEFAULT 0,
		candidate_model TEXT,
		candidate_score REAL DEFAULT 0,
		improvement REAL,
		top_tier BOOLEAN DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (analysis_id) REFERENCES analyses(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_taken_at ON analyses(taken_at);
	CREATE INDEX IF NOT EXISTS idx_analyses_bottleneck ON analyses(bottleneck);
	CREATE INDEX IF NOT EXISTS idx_recommendations_analysis_id ON recommendations(analysis_id);
	`

	_, err := db.conn.Exec(schema)
	return err
}

const analysisColumns = `id, taken_at, hostname, cpu_model, cpu_usage, ram_model, ram_usage,
	gpu_model, disk_model, disk_kind, disk_usage, score_mode,
	cpu_score, gpu_score, ram_score, ssd_score, bottleneck, label, details, created_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAnalysis(s scanner) (*Analysis, error) {
	a := &Analysis{}
	var hostname, diskKind, label sql.NullString
	err := s.Scan(
		&a.ID, &a.TakenAt, &hostname, &a.CPUModel, &a.CPUUsage, &a.RAMModel, &a.RAMUsage,
		&a.GPUModel, &a.DiskModel, &diskKind, &a.DiskUsage, &a.ScoreMode,
		&a.CPUScore, &a.GPUScore, &a.RAMScore, &a.SSDScore, &a.Bottleneck, &label, &a.Details, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Hostname = hostname.String
	a.DiskKind = diskKind.String
	a.Label = label.String
	return a, nil
}

// SaveAnalysis stores an analysis and its recommendations in one
// transaction. The generated IDs are written back.
func (db *DB) SaveAnalysis(a *Analysis, recs []*Recommendation) error {
	if a == nil {
		return errors.New("analysis is nil")
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// Only rollback if we haven't committed
		_ = tx.Rollback()
	}()

	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	result, err := tx.Exec(
		`INSERT INTO analyses (taken_at, hostname, cpu_model, cpu_usage, ram_model, ram_usage,
		 gpu_model, disk_model, disk_kind, disk_usage, score_mode,
		 cpu_score, gpu_score, ram_score, ssd_score, bottleneck, label, details, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.TakenAt, a.Hostname, a.CPUModel, a.CPUUsage, a.RAMModel, a.RAMUsage,
		a.GPUModel, a.DiskModel, a.DiskKind, a.DiskUsage, a.ScoreMode,
		a.CPUScore, a.GPUScore, a.RAMScore, a.SSDScore, a.Bottleneck, a.Label, a.Details, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO recommendations (analysis_id, component, current_model, current_score,
		 candidate_model, candidate_score, improvement, top_tier, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range recs {
		r.AnalysisID = id
		if r.CreatedAt.IsZero() {
			r.CreatedAt = a.CreatedAt
		}
		res, err := stmt.Exec(r.AnalysisID, r.Component, r.CurrentModel, r.CurrentScore,
			r.CandidateModel, r.CandidateScore, r.Improvement, r.TopTier, r.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert recommendation %s: %w", r.Component, err)
		}
		if r.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	a.ID = id
	return nil
}

// GetAnalysis retrieves an analysis by ID
func (db *DB) GetAnalysis(id int64) (*Analysis, error) {
	a, err := scanAnalysis(db.conn.QueryRow(
		`SELECT `+analysisColumns+` FROM analyses WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return a, nil
}

// LatestAnalysis retrieves the most recent analysis
func (db *DB) LatestAnalysis() (*Analysis, error) {
	a, err := scanAnalysis(db.conn.QueryRow(
		`SELECT ` + analysisColumns + ` FROM analyses ORDER BY taken_at DESC, id DESC LIMIT 1`,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest analysis: %w", err)
	}
	return a, nil
}

// ListAnalyses retrieves analyses based on filters, newest first
func (db *DB) ListAnalyses(filter AnalysisFilter) ([]*Analysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM analyses WHERE 1=1`
	args := []interface{}{}

	if filter.Bottleneck != "" {
		query += " AND bottleneck = ? COLLATE NOCASE"
		args = append(args, filter.Bottleneck)
	}

	if filter.ScoreMode != "" {
		query += " AND score_mode = ?"
		args = append(args, filter.ScoreMode)
	}

	if filter.Since != nil {
		query += " AND taken_at >= ?"
		args = append(args, *filter.Since)
	}

	if filter.Until != nil {
		query += " AND taken_at <= ?"
		args = append(args, *filter.Until)
	}

	query += " ORDER BY taken_at DESC, id DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)

		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var analyses []*Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		analyses = append(analyses, a)
	}

	return analyses, rows.Err()
}

// GetRecommendations retrieves the recommendations stored with an analysis
func (db *DB) GetRecommendations(analysisID int64) ([]*Recommendation, error) {
	rows, err := db.conn.Query(
		`SELECT id, analysis_id, component, current_model, current_score,
		 candidate_model, candidate_score, improvement, top_tier, created_at
		 FROM recommendations WHERE analysis_id = ? ORDER BY id`,
		analysisID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var recs []*Recommendation
	for rows.Next() {
		r := &Recommendation{}
		var current, candidate sql.NullString
		var improvement sql.NullFloat64
		err := rows.Scan(
			&r.ID, &r.AnalysisID, &r.Component, &current, &r.CurrentScore,
			&candidate, &r.CandidateScore, &improvement, &r.TopTier, &r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		r.CurrentModel = current.String
		r.CandidateModel = candidate.String
		if improvement.Valid {
			v := improvement.Float64
			r.Improvement = &v
		}
		recs = append(recs, r)
	}

	return recs, rows.Err()
}

// DeleteAnalysis removes an analysis and its recommendations
func (db *DB) DeleteAnalysis(id int64) error {
	res, err := db.conn.Exec(`DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}
