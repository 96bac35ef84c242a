// Package runstore tracks analysis runs in a local SQLite database.
package runstore

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/huangsam/repolens/schema"
)

const runsTable = "repolens_analysis_runs"

// Store records one row per analysis run. A disabled store (empty path)
// turns every method into a no-op so callers never branch on tracking.
type Store struct {
	db *sql.DB
}

// RunRecord is one tracked analysis run.
type RunRecord struct {
	RunID        int64      // Autoincrement run identifier
	RepoURL      string     // Repository URL or local path
	StartTime    time.Time  // When the run began
	EndTime      *time.Time // Nil while the run is in flight
	TotalFiles   int        // Files walked, filled at completion
	TotalCommits int        // Commits visited, filled at completion
	Status       string     // running, completed or failed
}

// NewStore opens (or creates) the run database at dbPath. An empty path
// disables tracking.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		return &Store{}, nil
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
	}
	// Limit SQLite to a single open connection to avoid "database is locked" errors
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to run database: %w", err)
	}

	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			run_id INTEGER PRIMARY KEY AUTOINCREMENT,
			repo_url TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT,
			total_files INTEGER NOT NULL DEFAULT 0,
			total_commits INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL
		);
	`, runsTable)
	if _, err := db.Exec(query); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", runsTable, err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// BeginRun inserts a new in-flight run and returns its ID.
func (s *Store) BeginRun(startTime time.Time, repoURL string) (int64, error) {
	if s.db == nil {
		return 0, nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (repo_url, start_time, status) VALUES (?, ?, ?)`, runsTable)
	result, err := s.db.Exec(query, repoURL, formatTime(startTime), "running")
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// EndRun finalizes a run with its outcome. The analysis argument may be
// nil on failure.
func (s *Store) EndRun(runID int64, endTime time.Time, analysis *schema.RepositoryAnalysis, runErr error) error {
	if s.db == nil || runID == 0 {
		return nil
	}

	status := "completed"
	totalFiles := 0
	totalCommits := 0
	if runErr != nil {
		status = "failed"
	}
	if analysis != nil {
		totalFiles = analysis.CodeMetrics.TotalFiles
		totalCommits = analysis.GitAnalysis.TotalCommits
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET end_time = ?, total_files = ?, total_commits = ?, status = ?
		WHERE run_id = ?
	`, runsTable)
	_, err := s.db.Exec(query, formatTime(endTime), totalFiles, totalCommits, status, runID)
	return err
}

// ListRuns returns up to limit runs, newest first. A disabled store
// returns an empty list.
func (s *Store) ListRuns(limit int) ([]RunRecord, error) {
	if s.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT run_id, repo_url, start_time, end_time, total_files, total_commits, status
		FROM %s
		ORDER BY run_id DESC
		LIMIT ?
	`, runsTable)
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []RunRecord
	for rows.Next() {
		var record RunRecord
		var start string
		var end sql.NullString
		if err := rows.Scan(&record.RunID, &record.RepoURL, &start, &end, &record.TotalFiles, &record.TotalCommits, &record.Status); err != nil {
			return nil, err
		}
		record.StartTime, err = parseTime(start)
		if err != nil {
			return nil, err
		}
		if end.Valid {
			parsed, err := parseTime(end.String)
			if err != nil {
				return nil, err
			}
			record.EndTime = &parsed
		}
		runs = append(runs, record)
	}
	return runs, rows.Err()
}

// SQLite has no native timestamp type; times are stored as RFC3339 text.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
