package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"farmwatch/internal/jobs"
)

// maxExportBytes caps how much of an export response is read.
const maxExportBytes = 32 << 20

// HTTPDoer describes the HTTP client used by the export source.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPSource fetches the job export from an HTTP endpoint.
type HTTPSource struct {
	url      string
	token    string
	client   HTTPDoer
	location *time.Location
}

// NewHTTPSource constructs an HTTP-backed source. A nil client falls back to
// http.DefaultClient; callers normally pass one with a timeout.
func NewHTTPSource(url, token string, client HTTPDoer) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{
		url:      strings.TrimSpace(url),
		token:    strings.TrimSpace(token),
		client:   client,
		location: time.Local,
	}
}

// ListJobs implements Source.
func (s *HTTPSource) ListJobs(ctx context.Context) (jobs.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build job export request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch job export: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("job export returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return decodeExport(io.LimitReader(resp.Body, maxExportBytes), s.location)
}
