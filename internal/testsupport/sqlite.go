package testsupport

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

const jobsSchema = `CREATE TABLE IF NOT EXISTS jobs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user TEXT NOT NULL,
	name TEXT NOT NULL,
	status TEXT NOT NULL,
	submitted_at TEXT NOT NULL,
	completed_units INTEGER NOT NULL DEFAULT 0,
	total_units INTEGER NOT NULL DEFAULT 0,
	remaining TEXT
)`

// SeedSQLite creates a queue mirror at path and inserts jobs in order.
func SeedSQLite(t testing.TB, path string, jobs []ExportJob) {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(jobsSchema); err != nil {
		t.Fatalf("create jobs table: %v", err)
	}
	for _, job := range jobs {
		var remaining any
		if job.Remaining != nil {
			remaining = *job.Remaining
		}
		if _, err := db.Exec(
			`INSERT INTO jobs (user, name, status, submitted_at, completed_units, total_units, remaining) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			job.User, job.Name, job.Status, job.Submitted, job.Completed, job.Tasks, remaining,
		); err != nil {
			t.Fatalf("insert job %q: %v", job.Name, err)
		}
	}
}
