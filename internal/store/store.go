// Package store persists report runs in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"predstats/internal/report"
)

// ErrRunNotFound is returned when the requested run does not exist.
var ErrRunNotFound = errors.New("report run not found")

// Run is one persisted report execution.
type Run struct {
	ID        string          `json:"id"`
	Source    string          `json:"source"`
	Team      string          `json:"team,omitempty"`
	Season    int             `json:"season,omitempty"`
	Status    string          `json:"status"`
	Summary   *report.Summary `json:"summary,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Run statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Store wraps the SQLite database holding report runs.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if necessary) the database at path and ensures the
// schema exists.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS report_runs (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		team TEXT,
		season INTEGER,
		status TEXT NOT NULL,
		summary TEXT,
		error TEXT,
		created_at DATETIME NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger.With(slog.String("component", "store")),
	}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun inserts a run record.
func (s *Store) SaveRun(ctx context.Context, run Run) error {
	var summaryJSON []byte
	if run.Summary != nil {
		var err error
		summaryJSON, err = json.Marshal(run.Summary)
		if err != nil {
			return fmt.Errorf("marshal summary: %w", err)
		}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO report_runs (id, source, team, season, status, summary, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.Team, run.Season, run.Status,
		string(summaryJSON), run.Error, run.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	s.logger.InfoContext(ctx, "saved report run",
		slog.String("run_id", run.ID),
		slog.String("status", run.Status))
	return nil
}

// GetRun fetches a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, team, season, status, summary, error, created_at
		 FROM report_runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	return run, nil
}

// ListRuns returns up to limit runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, team, season, status, summary, error, created_at
		 FROM report_runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(sc scanner) (*Run, error) {
	var run Run
	var summaryJSON, errMsg sql.NullString
	var team sql.NullString
	var season sql.NullInt64

	if err := sc.Scan(&run.ID, &run.Source, &team, &season, &run.Status,
		&summaryJSON, &errMsg, &run.CreatedAt); err != nil {
		return nil, err
	}

	run.Team = team.String
	run.Season = int(season.Int64)
	run.Error = errMsg.String

	if summaryJSON.Valid && summaryJSON.String != "" {
		var summary report.Summary
		if err := json.Unmarshal([]byte(summaryJSON.String), &summary); err != nil {
			return nil, fmt.Errorf("unmarshal summary: %w", err)
		}
		run.Summary = &summary
	}
	return &run, nil
}
