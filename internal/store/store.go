// Package store handles SQLite persistence of analysis runs.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/uxlog/interlog/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for analysis history.
type Store struct {
	db *sql.DB
}

// Run is one recorded analysis of a session events file.
type Run struct {
	ID         int64
	SourcePath string
	AnalyzedAt time.Time
	Summary    model.SummaryStatistics
}

// Open opens or creates the history database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	// WAL avoids lock errors when a record session and an analyze run
	// overlap.
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id INTEGER PRIMARY KEY,
			source_path TEXT NOT NULL,
			analyzed_at TEXT NOT NULL,
			session_duration_seconds REAL NOT NULL,
			session_duration_formatted TEXT NOT NULL,
			total_events INTEGER NOT NULL,
			total_interactions INTEGER NOT NULL,
			total_mouse_moves INTEGER NOT NULL,
			total_clicks INTEGER NOT NULL,
			total_scrolls INTEGER NOT NULL,
			total_keypresses INTEGER NOT NULL,
			total_drags INTEGER NOT NULL,
			clicks_per_minute REAL NOT NULL,
			actions_per_minute REAL NOT NULL,
			keypresses_per_minute REAL NOT NULL,
			rage_clicks_detected INTEGER NOT NULL,
			longest_pause_seconds REAL NOT NULL,
			average_pause_seconds REAL NOT NULL,
			total_scroll_distance INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_runs_analyzed_at ON analysis_runs(analyzed_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a completed analysis run.
func (s *Store) InsertRun(ctx context.Context, sourcePath string, analyzedAt time.Time, stats model.SummaryStatistics) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO analysis_runs (
			source_path, analyzed_at,
			session_duration_seconds, session_duration_formatted,
			total_events, total_interactions, total_mouse_moves,
			total_clicks, total_scrolls, total_keypresses, total_drags,
			clicks_per_minute, actions_per_minute, keypresses_per_minute,
			rage_clicks_detected, longest_pause_seconds,
			average_pause_seconds, total_scroll_distance)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sourcePath,
		analyzedAt.Format(time.RFC3339Nano),
		stats.SessionDurationSeconds,
		stats.SessionDurationFormatted,
		stats.TotalEvents,
		stats.TotalInteractions,
		stats.TotalMouseMoves,
		stats.TotalClicks,
		stats.TotalScrolls,
		stats.TotalKeypresses,
		stats.TotalDrags,
		stats.ClicksPerMinute,
		stats.ActionsPerMinute,
		stats.KeypressesPerMinute,
		stats.RageClicksDetected,
		stats.LongestPauseSeconds,
		stats.AveragePauseSeconds,
		stats.TotalScrollDistance,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRuns returns the most recent runs, newest first. A non-positive
// limit returns everything.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, source_path, analyzed_at,
			session_duration_seconds, session_duration_formatted,
			total_events, total_interactions, total_mouse_moves,
			total_clicks, total_scrolls, total_keypresses, total_drags,
			clicks_per_minute, actions_per_minute, keypresses_per_minute,
			rage_clicks_detected, longest_pause_seconds,
			average_pause_seconds, total_scroll_distance
		FROM analysis_runs
		ORDER BY analyzed_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []Run
	for rows.Next() {
		var run Run
		var analyzedAt string
		if err := rows.Scan(
			&run.ID, &run.SourcePath, &analyzedAt,
			&run.Summary.SessionDurationSeconds,
			&run.Summary.SessionDurationFormatted,
			&run.Summary.TotalEvents,
			&run.Summary.TotalInteractions,
			&run.Summary.TotalMouseMoves,
			&run.Summary.TotalClicks,
			&run.Summary.TotalScrolls,
			&run.Summary.TotalKeypresses,
			&run.Summary.TotalDrags,
			&run.Summary.ClicksPerMinute,
			&run.Summary.ActionsPerMinute,
			&run.Summary.KeypressesPerMinute,
			&run.Summary.RageClicksDetected,
			&run.Summary.LongestPauseSeconds,
			&run.Summary.AveragePauseSeconds,
			&run.Summary.TotalScrollDistance,
		); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, analyzedAt)
		if err != nil {
			return nil, err
		}
		run.AnalyzedAt = parsed
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}
