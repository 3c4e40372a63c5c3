package backend_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"farmwatch/internal/backend"
	"farmwatch/internal/jobs"
	"farmwatch/internal/testsupport"
)

func TestHTTPSourceListJobs(t *testing.T) {
	var gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(testsupport.MarshalExport(t, []testsupport.ExportJob{
			{
				User:      "alice",
				Name:      "shot_010",
				Status:    "Rendering",
				Submitted: "2026-10-19T09:30:00Z",
				Completed: 40,
				Tasks:     100,
				Remaining: testsupport.Span("00:15:30.450000"),
			},
			{
				User:      "bob",
				Name:      "shot_020",
				Status:    "Queued",
				Submitted: "2026-10-19 08:00:00",
				Tasks:     50,
			},
		}))
	}))
	defer srv.Close()

	src := backend.NewHTTPSource(srv.URL, "secret", srv.Client())
	snapshot, err := src.ListJobs(context.Background())
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q", gotAccept)
	}
	if len(snapshot) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(snapshot))
	}

	first := snapshot[0]
	if first.User != "alice" || first.Name != "shot_010" || first.Status != "Rendering" {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if !first.Submitted.Equal(time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)) {
		t.Fatalf("submitted = %v", first.Submitted)
	}
	if first.Percent() != 40 {
		t.Fatalf("percent = %d, want 40", first.Percent())
	}
	if first.ETA() != "00:15:30" {
		t.Fatalf("eta = %q", first.ETA())
	}

	second := snapshot[1]
	if second.Remaining.Kind() != jobs.RemainingUnknown {
		t.Fatalf("missing remaining should decode as unknown, got %v", second.Remaining.Kind())
	}
	want := time.Date(2026, 10, 19, 8, 0, 0, 0, time.Local)
	if !second.Submitted.Equal(want) {
		t.Fatalf("zone-less submit time = %v, want %v", second.Submitted, want)
	}
}

func TestHTTPSourceOmitsEmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Errorf("unexpected Authorization header %q", auth)
		}
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	snapshot, err := backend.NewHTTPSource(srv.URL, "", nil).ListJobs(context.Background())
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(snapshot) != 0 {
		t.Fatalf("expected empty snapshot, got %d", len(snapshot))
	}
}

func TestHTTPSourceErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "server error", status: http.StatusServiceUnavailable, body: "maintenance", wantErr: "503"},
		{name: "malformed json", status: http.StatusOK, body: "{not json", wantErr: "decode job export"},
		{name: "bad submit time", status: http.StatusOK, body: `[{"JobName":"a","JobSubmitDateTime":"yesterday"}]`, wantErr: "submit time"},
		{name: "negative counts", status: http.StatusOK, body: `[{"JobName":"a","JobSubmitDateTime":"2026-10-19T10:00:00Z","CompletedChunks":-1}]`, wantErr: "negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := backend.NewHTTPSource(srv.URL, "", srv.Client()).ListJobs(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestHTTPSourceHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := backend.NewHTTPSource(srv.URL, "", srv.Client()).ListJobs(ctx); err == nil {
		t.Fatal("expected context error")
	}
}
