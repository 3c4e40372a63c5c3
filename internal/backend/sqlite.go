package backend

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	_ "modernc.org/sqlite"

	"farmwatch/internal/jobs"
)

const jobColumns = "user, name, status, submitted_at, completed_units, total_units, remaining"

// SQLiteSource reads the jobs table of a SQLite mirror of the queue. The
// database is opened read-only; a missing file surfaces as a per-poll error.
type SQLiteSource struct {
	db       *sql.DB
	path     string
	location *time.Location
}

// OpenSQLite prepares a read-only connection pool for the mirror at path.
func OpenSQLite(path string) (*SQLiteSource, error) {
	if path == "" {
		return nil, errors.New("sqlite source requires a database path")
	}
	dsn := (&url.URL{
		Scheme:   "file",
		Opaque:   path,
		RawQuery: "mode=ro&_pragma=busy_timeout(5000)",
	}).String()
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	return &SQLiteSource{db: db, path: path, location: time.Local}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteSource) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ListJobs implements Source. Rows come back in insertion order.
func (s *SQLiteSource) ListJobs(ctx context.Context) (jobs.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	var snapshot jobs.Snapshot
	for rows.Next() {
		rec, err := s.scanJob(rows)
		if err != nil {
			return nil, err
		}
		snapshot = append(snapshot, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return snapshot, nil
}

func (s *SQLiteSource) scanJob(scanner interface{ Scan(dest ...any) error }) (jobs.Record, error) {
	var (
		user      sql.NullString
		name      sql.NullString
		status    sql.NullString
		submitted sql.NullString
		completed sql.NullInt64
		total     sql.NullInt64
		remaining sql.NullString
	)
	if err := scanner.Scan(&user, &name, &status, &submitted, &completed, &total, &remaining); err != nil {
		return jobs.Record{}, fmt.Errorf("scan job: %w", err)
	}
	job := exportJob{
		User:      user.String,
		Name:      name.String,
		Status:    status.String,
		Submitted: submitted.String,
		Completed: int(completed.Int64),
		Tasks:     int(total.Int64),
	}
	if remaining.Valid {
		job.Remaining = &remaining.String
	}
	rec, err := job.record(s.location)
	if err != nil {
		return jobs.Record{}, fmt.Errorf("job %q: %w", job.Name, err)
	}
	return rec, nil
}
