package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// ExportJob is one entry of a job export as the farm writes it.
type ExportJob struct {
	User      string  `json:"JobUserName"`
	Name      string  `json:"JobName"`
	Status    string  `json:"JobStatus"`
	Submitted string  `json:"JobSubmitDateTime"`
	Completed int     `json:"CompletedChunks"`
	Tasks     int     `json:"JobTaskCount"`
	Remaining *string `json:"JobEstimatedWallClockTimeRemaining"`
}

// Span returns a pointer to a remaining-time literal.
func Span(value string) *string {
	return &value
}

// MarshalExport encodes jobs as an export document.
func MarshalExport(t testing.TB, jobs []ExportJob) []byte {
	t.Helper()

	if jobs == nil {
		jobs = []ExportJob{}
	}
	data, err := json.Marshal(jobs)
	if err != nil {
		t.Fatalf("marshal export: %v", err)
	}
	return data
}

// WriteExport writes jobs as a JSON export at path, creating parent dirs.
func WriteExport(t testing.TB, path string, jobs []ExportJob) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, MarshalExport(t, jobs), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
