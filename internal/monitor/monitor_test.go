package monitor_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"farmwatch/internal/backend"
	"farmwatch/internal/jobs"
	"farmwatch/internal/monitor"
	"farmwatch/internal/testsupport"
)

var pollTime = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

type scriptedSource struct {
	mu    sync.Mutex
	calls int
	steps []func() (jobs.Snapshot, error)
}

func (s *scriptedSource) ListJobs(context.Context) (jobs.Snapshot, error) {
	s.mu.Lock()
	idx := s.calls
	s.calls++
	s.mu.Unlock()
	if idx >= len(s.steps) {
		idx = len(s.steps) - 1
	}
	return s.steps[idx]()
}

func (s *scriptedSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type recordingLauncher struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (l *recordingLauncher) Open(_ context.Context, path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.paths = append(l.paths, path)
	return l.err
}

func (l *recordingLauncher) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.paths)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func snapshot() (jobs.Snapshot, error) {
	return jobs.Snapshot{
		{User: "alice", Name: "shot_010", Status: "Rendering", Submitted: pollTime.Add(-time.Hour), CompletedUnits: 5, TotalUnits: 10, Remaining: jobs.KnownRemaining(90 * time.Second)},
		{User: "bob", Name: "shot_020", Status: "Queued", Submitted: pollTime.Add(-2 * time.Hour), TotalUnits: 10},
	}, nil
}

func failing() (jobs.Snapshot, error) {
	return nil, errors.New("backend unreachable")
}

func panicking() (jobs.Snapshot, error) {
	panic("corrupt record")
}

func newMonitor(t *testing.T, src backend.Source, launcher *recordingLauncher, opts ...monitor.Option) (*monitor.Monitor, string) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	cfg.Monitor.OpenViewer = true
	base := []monitor.Option{
		monitor.WithClock(func() time.Time { return pollTime }),
		monitor.WithLauncher(launcher),
	}
	m, err := monitor.New(cfg, src, nil, append(base, opts...)...)
	if err != nil {
		t.Fatalf("monitor.New: %v", err)
	}
	return m, cfg.Monitor.OutputPath
}

func TestRunCycleWritesDashboardAndOpensViewerOnce(t *testing.T) {
	launcher := &recordingLauncher{}
	m, output := newMonitor(t, &scriptedSource{steps: []func() (jobs.Snapshot, error){snapshot}}, launcher)

	for i := 0; i < 3; i++ {
		if err := m.RunCycle(context.Background()); err != nil {
			t.Fatalf("RunCycle %d: %v", i, err)
		}
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read dashboard: %v", err)
	}
	doc := string(data)
	for _, want := range []string{"shot_010", "shot_020", "00:01:30", "50%", "Updated: 2026-10-19 12:00:00"} {
		if !strings.Contains(doc, want) {
			t.Fatalf("dashboard missing %q", want)
		}
	}
	if launcher.Count() != 1 {
		t.Fatalf("viewer opened %d times, want 1", launcher.Count())
	}
	if launcher.paths[0] != output {
		t.Fatalf("viewer opened %q, want %q", launcher.paths[0], output)
	}
}

func TestRunCycleOverwritesPreviousDocument(t *testing.T) {
	empty := func() (jobs.Snapshot, error) { return nil, nil }
	src := &scriptedSource{steps: []func() (jobs.Snapshot, error){snapshot, empty}}
	m, output := newMonitor(t, src, &recordingLauncher{})

	if err := m.RunCycle(context.Background()); err != nil {
		t.Fatalf("first cycle: %v", err)
	}
	if err := m.RunCycle(context.Background()); err != nil {
		t.Fatalf("second cycle: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read dashboard: %v", err)
	}
	if strings.Contains(string(data), "shot_010") {
		t.Fatal("stale job survived overwrite")
	}
	if !strings.Contains(string(data), "The farm is completely empty!") {
		t.Fatal("expected empty placeholder")
	}
}

func TestRunCycleFetchFailureLeavesViewerClosed(t *testing.T) {
	launcher := &recordingLauncher{}
	src := &scriptedSource{steps: []func() (jobs.Snapshot, error){failing, snapshot}}
	m, output := newMonitor(t, src, launcher)

	if err := m.RunCycle(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}
	if m.ViewerOpened() || launcher.Count() != 0 {
		t.Fatal("viewer opened after failed cycle")
	}
	if _, err := os.Stat(output); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("dashboard should not exist yet, stat err = %v", err)
	}

	if err := m.RunCycle(context.Background()); err != nil {
		t.Fatalf("recovery cycle: %v", err)
	}
	if launcher.Count() != 1 {
		t.Fatalf("viewer opened %d times, want 1", launcher.Count())
	}
}

func TestRunCyclePersistFailureLeavesViewerClosed(t *testing.T) {
	launcher := &recordingLauncher{}
	cfg := testsupport.NewConfig(t)
	cfg.Monitor.OpenViewer = true
	blocker := filepath.Join(testsupport.BaseDir(cfg), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	cfg.Monitor.OutputPath = filepath.Join(blocker, "LiveStatus.html")

	m, err := monitor.New(cfg, &scriptedSource{steps: []func() (jobs.Snapshot, error){snapshot}}, nil,
		monitor.WithLauncher(launcher))
	if err != nil {
		t.Fatalf("monitor.New: %v", err)
	}
	if err := m.RunCycle(context.Background()); err == nil {
		t.Fatal("expected persist error")
	}
	if m.ViewerOpened() || launcher.Count() != 0 {
		t.Fatal("viewer flag advanced without a persisted document")
	}
}

func TestRunCycleRecoversPanic(t *testing.T) {
	m, _ := newMonitor(t, &scriptedSource{steps: []func() (jobs.Snapshot, error){panicking}}, &recordingLauncher{})
	err := m.RunCycle(context.Background())
	if err == nil || !strings.Contains(err.Error(), "panic") {
		t.Fatalf("expected recovered panic error, got %v", err)
	}
}

func TestViewerFailureIsNotRetried(t *testing.T) {
	launcher := &recordingLauncher{err: errors.New("no display")}
	m, _ := newMonitor(t, &scriptedSource{steps: []func() (jobs.Snapshot, error){snapshot}}, launcher)

	for i := 0; i < 2; i++ {
		if err := m.RunCycle(context.Background()); err != nil {
			t.Fatalf("RunCycle %d: %v", i, err)
		}
	}
	if !m.ViewerOpened() {
		t.Fatal("viewer flag should be set after launch attempt")
	}
	if launcher.Count() != 1 {
		t.Fatalf("viewer launched %d times, want 1", launcher.Count())
	}
}

func TestViewerDisabledByConfig(t *testing.T) {
	launcher := &recordingLauncher{}
	cfg := testsupport.NewConfig(t)
	m, err := monitor.New(cfg, &scriptedSource{steps: []func() (jobs.Snapshot, error){snapshot}}, nil,
		monitor.WithLauncher(launcher))
	if err != nil {
		t.Fatalf("monitor.New: %v", err)
	}
	if err := m.RunCycle(context.Background()); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	if launcher.Count() != 0 {
		t.Fatal("viewer opened while disabled")
	}
}

func TestRunKeepsPollingAfterFailures(t *testing.T) {
	launcher := &recordingLauncher{}
	src := &scriptedSource{steps: []func() (jobs.Snapshot, error){failing, panicking, snapshot}}
	logs := &syncBuffer{}
	cfg := testsupport.NewConfig(t)
	cfg.Monitor.OpenViewer = true
	logger := slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m, err := monitor.New(cfg, src, logger,
		monitor.WithClock(func() time.Time { return pollTime }),
		monitor.WithLauncher(launcher),
		monitor.WithPollInterval(time.Millisecond),
	)
	if err != nil {
		t.Fatalf("monitor.New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	deadline := time.After(5 * time.Second)
	for src.Calls() < 5 {
		select {
		case <-deadline:
			cancel()
			t.Fatalf("loop stalled after %d cycles", src.Calls())
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}

	if launcher.Count() != 1 {
		t.Fatalf("viewer opened %d times, want 1", launcher.Count())
	}
	if _, err := os.Stat(cfg.Monitor.OutputPath); err != nil {
		t.Fatalf("dashboard not written: %v", err)
	}
	out := logs.String()
	for _, want := range []string{`"event_type":"poll_cycle_failed"`, "backend unreachable", "corrupt record", `"correlation_id":`} {
		if !strings.Contains(out, want) {
			t.Fatalf("logs missing %q:\n%s", want, out)
		}
	}
}

func TestSecondMonitorCannotAcquireLock(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	src := &scriptedSource{steps: []func() (jobs.Snapshot, error){snapshot}}
	first, err := monitor.New(cfg, src, nil)
	if err != nil {
		t.Fatalf("monitor.New: %v", err)
	}
	second, err := monitor.New(cfg, src, nil)
	if err != nil {
		t.Fatalf("monitor.New: %v", err)
	}

	if err := first.Acquire(); err != nil {
		t.Fatalf("first Acquire: %v", err)
	}
	defer first.Release()

	if err := second.Acquire(); !errors.Is(err, monitor.ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
	if err := second.Run(context.Background()); !errors.Is(err, monitor.ErrAlreadyRunning) {
		t.Fatalf("Run should refuse to start, got %v", err)
	}
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := monitor.New(testsupport.NewConfig(t), nil, nil); err == nil {
		t.Fatal("expected error without source")
	}
	if _, err := monitor.New(nil, &scriptedSource{}, nil); err == nil {
		t.Fatal("expected error without config")
	}
}
