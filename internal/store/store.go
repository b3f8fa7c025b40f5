// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists completed scan runs to SQLite so past batches
// can be reviewed. Persistence is strictly optional: the core pipeline
// never depends on it.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/softscan/internal/report"
	"github.com/pdiddy/softscan/pkg/types"
)

// Store manages the scan-history SQLite database.
type Store struct {
	db *sql.DB
}

// RunInfo summarizes one saved run for listing.
type RunInfo struct {
	ID           int64
	CreatedAt    time.Time
	Total        int
	Accessible   int
	WithSoftware int
	TotalSeconds float64
}

// Open opens or creates the history database, creating the schema if
// it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			total INTEGER NOT NULL,
			accessible INTEGER NOT NULL,
			with_software INTEGER NOT NULL,
			total_seconds REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			position INTEGER NOT NULL,
			input_id TEXT NOT NULL,
			pmcid TEXT,
			text_accessible INTEGER NOT NULL,
			error_message TEXT,
			seconds REAL NOT NULL,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS detections (
			run_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			software_key TEXT NOT NULL,
			display_name TEXT NOT NULL,
			version TEXT,
			FOREIGN KEY (run_id, position) REFERENCES records(run_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_detections_key ON detections(software_key)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun persists a batch result and its summary in one transaction,
// returning the new run ID.
func (s *Store) SaveRun(br types.BatchResult) (int64, error) {
	sum := report.Summarize(br)

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (created_at, total, accessible, with_software, total_seconds)
		 VALUES (?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339),
		sum.Total, sum.Accessible, sum.WithSoftware, sum.TotalSeconds,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run ID: %w", err)
	}

	for i, rec := range br.Records {
		if _, err := tx.Exec(
			`INSERT INTO records (run_id, position, input_id, pmcid, text_accessible, error_message, seconds)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, i, rec.InputID, rec.PMCID, rec.TextAccessible, rec.ErrorMessage, rec.Seconds,
		); err != nil {
			return 0, fmt.Errorf("inserting record %d: %w", i, err)
		}
		for _, d := range rec.Detections {
			if _, err := tx.Exec(
				`INSERT INTO detections (run_id, position, software_key, display_name, version)
				 VALUES (?, ?, ?, ?, ?)`,
				runID, i, d.SoftwareKey, d.DisplayName, d.Version,
			); err != nil {
				return 0, fmt.Errorf("inserting detection for record %d: %w", i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// ListRuns returns saved runs, most recent first.
func (s *Store) ListRuns() ([]RunInfo, error) {
	rows, err := s.db.Query(
		`SELECT id, created_at, total, accessible, with_software, total_seconds
		 FROM runs ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var r RunInfo
		var created string
		if err := rows.Scan(&r.ID, &created, &r.Total, &r.Accessible, &r.WithSoftware, &r.TotalSeconds); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, created); parseErr == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Records returns the saved records of one run in their original batch
// order, with detections reattached.
func (s *Store) Records(runID int64) ([]types.ArticleRecord, error) {
	rows, err := s.db.Query(
		`SELECT position, input_id, pmcid, text_accessible, error_message, seconds
		 FROM records WHERE run_id = ? ORDER BY position`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var recs []types.ArticleRecord
	var positions []int
	for rows.Next() {
		var rec types.ArticleRecord
		var pos int
		if err := rows.Scan(&pos, &rec.InputID, &rec.PMCID, &rec.TextAccessible, &rec.ErrorMessage, &rec.Seconds); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		recs = append(recs, rec)
		positions = append(positions, pos)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, pos := range positions {
		drows, err := s.db.Query(
			`SELECT software_key, display_name, version
			 FROM detections WHERE run_id = ? AND position = ?`, runID, pos,
		)
		if err != nil {
			return nil, fmt.Errorf("querying detections: %w", err)
		}
		for drows.Next() {
			var d types.Detection
			if err := drows.Scan(&d.SoftwareKey, &d.DisplayName, &d.Version); err != nil {
				drows.Close()
				return nil, fmt.Errorf("scanning detection: %w", err)
			}
			recs[i].Detections = append(recs[i].Detections, d)
		}
		if err := drows.Err(); err != nil {
			drows.Close()
			return nil, err
		}
		drows.Close()
	}
	return recs, nil
}
