package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists report runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets ad-hoc queries read while a scheduled run writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS report_runs (
			id             TEXT PRIMARY KEY,
			timestamp      INTEGER NOT NULL,
			source         TEXT,
			reports        TEXT,
			days           INTEGER,
			lowest_c       REAL,
			lowest_date    TEXT,
			highest_c      REAL,
			highest_date   TEXT,
			average_low_c  REAL,
			average_high_c REAL,
			mean_low_f     REAL,
			mean_high_f    REAL,
			error          TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON report_runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(evt *RunEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ov := evt.Overview
	_, err := r.db.Exec(`INSERT INTO report_runs
		(id, timestamp, source, reports, days,
		 lowest_c, lowest_date, highest_c, highest_date,
		 average_low_c, average_high_c, mean_low_f, mean_high_f, error)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		evt.ID.String(), evt.StartedAt.Unix(), evt.Source, strings.Join(evt.Reports, ","), ov.Days,
		ov.LowestC, ov.LowestDate, ov.HighestC, ov.HighestDate,
		ov.AverageLowC, ov.AverageHighC, evt.MeanLowF, evt.MeanHighF, evt.Err,
	)
	return err
}

// ListRuns returns up to limit runs, newest first.
func (r *SQLiteRecorder) ListRuns(limit int) ([]RunEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT
		id, timestamp, source, reports, days,
		lowest_c, lowest_date, highest_c, highest_date,
		average_low_c, average_high_c, mean_low_f, mean_high_f, error
		FROM report_runs ORDER BY timestamp DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunEvent
	for rows.Next() {
		var (
			evt     RunEvent
			id      string
			ts      int64
			reports string
		)
		ov := &evt.Overview
		if err := rows.Scan(&id, &ts, &evt.Source, &reports, &ov.Days,
			&ov.LowestC, &ov.LowestDate, &ov.HighestC, &ov.HighestDate,
			&ov.AverageLowC, &ov.AverageHighC, &evt.MeanLowF, &evt.MeanHighF, &evt.Err); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if evt.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse run id %q: %w", id, err)
		}
		evt.StartedAt = time.Unix(ts, 0).UTC()
		if reports != "" {
			evt.Reports = strings.Split(reports, ",")
		}
		runs = append(runs, evt)
	}
	return runs, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
