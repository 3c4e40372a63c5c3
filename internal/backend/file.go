package backend

import (
	"context"
	"fmt"
	"os"
	"time"

	"farmwatch/internal/jobs"
)

// FileSource reads a job export that another process drops on disk.
type FileSource struct {
	path     string
	location *time.Location
}

// NewFileSource constructs a file-backed source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path, location: time.Local}
}

// ListJobs implements Source. The file is reopened on every call.
func (s *FileSource) ListJobs(ctx context.Context) (jobs.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open job export: %w", err)
	}
	defer file.Close()
	return decodeExport(file, s.location)
}
