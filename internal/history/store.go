package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one recorded pipeline run.
type Run struct {
	ID         string
	MeetingID  string
	Status     string
	Converter  string
	LLMEngine  string
	Error      string
	Successful int
	Failed     int
	Skipped    int
	Aborted    bool
	StartedAt  time.Time
	FinishedAt time.Time
}

// Run status values.
const (
	StatusCompleted = "completed"
	StatusPartial   = "partial"
	StatusFailed    = "failed"
)

// OutputRecord is one output outcome within a run.
type OutputRecord struct {
	RunID    string
	Format   string
	Status   string
	Artifact string
	Error    string
	Reason   string
}

// Output status values.
const (
	OutputSuccess = "success"
	OutputFailed  = "failed"
	OutputSkipped = "skipped"
)

// Store manages run history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    meeting_id TEXT NOT NULL,
    status TEXT NOT NULL,
    converter TEXT NOT NULL DEFAULT '',
    llm_engine TEXT NOT NULL DEFAULT '',
    error TEXT NOT NULL DEFAULT '',
    successful INTEGER NOT NULL DEFAULT 0,
    failed INTEGER NOT NULL DEFAULT 0,
    skipped INTEGER NOT NULL DEFAULT 0,
    aborted INTEGER NOT NULL DEFAULT 0,
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS run_outputs (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    format TEXT NOT NULL,
    status TEXT NOT NULL,
    artifact TEXT NOT NULL DEFAULT '',
    error TEXT NOT NULL DEFAULT '',
    reason TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_runs_meeting ON runs(meeting_id);
CREATE INDEX IF NOT EXISTS idx_run_outputs_run ON run_outputs(run_id);
`

// Open initializes or connects to the history database.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordRun inserts a run and its output outcomes in one transaction.
func (s *Store) RecordRun(ctx context.Context, run Run, outputs []OutputRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (
            id, meeting_id, status, converter, llm_engine, error,
            successful, failed, skipped, aborted, started_at, finished_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.MeetingID,
		run.Status,
		run.Converter,
		run.LLMEngine,
		run.Error,
		run.Successful,
		run.Failed,
		run.Skipped,
		boolToInt(run.Aborted),
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, output := range outputs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_outputs (run_id, format, status, artifact, error, reason)
             VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, output.Format, output.Status, output.Artifact, output.Error, output.Reason,
		)
		if err != nil {
			return fmt.Errorf("insert run output %s: %w", output.Format, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history tx: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, meeting_id, status, converter, llm_engine, error,
                successful, failed, skipped, aborted, started_at, finished_at
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Outputs returns the recorded output outcomes for one run.
func (s *Store) Outputs(ctx context.Context, runID string) ([]OutputRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, format, status, artifact, error, reason
         FROM run_outputs WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("list run outputs: %w", err)
	}
	defer rows.Close()

	var outputs []OutputRecord
	for rows.Next() {
		var record OutputRecord
		if err := rows.Scan(&record.RunID, &record.Format, &record.Status,
			&record.Artifact, &record.Error, &record.Reason); err != nil {
			return nil, fmt.Errorf("scan run output: %w", err)
		}
		outputs = append(outputs, record)
	}
	return outputs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var aborted int
	var startedAt, finishedAt string
	err := row.Scan(&run.ID, &run.MeetingID, &run.Status, &run.Converter,
		&run.LLMEngine, &run.Error, &run.Successful, &run.Failed, &run.Skipped,
		&aborted, &startedAt, &finishedAt)
	if err != nil {
		return run, fmt.Errorf("scan run: %w", err)
	}
	run.Aborted = aborted != 0
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return run, fmt.Errorf("parse started_at: %w", err)
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt); err != nil {
		return run, fmt.Errorf("parse finished_at: %w", err)
	}
	return run, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
