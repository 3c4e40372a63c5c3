package monitor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"farmwatch/internal/backend"
	"farmwatch/internal/config"
	"farmwatch/internal/dashboard"
	"farmwatch/internal/jobs"
	"farmwatch/internal/logging"
	"farmwatch/internal/viewer"
)

// ErrAlreadyRunning reports that another monitor holds the output lock.
var ErrAlreadyRunning = errors.New("another farmwatch monitor is already writing this dashboard")

// Option customizes a Monitor.
type Option func(*Monitor)

// WithClock overrides the time source used for each cycle.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLauncher replaces the viewer launcher. A nil launcher disables the viewer.
func WithLauncher(launcher viewer.Launcher) Option {
	return func(m *Monitor) {
		m.launcher = launcher
		m.launcherSet = true
	}
}

// WithPollInterval overrides the configured delay between cycles.
func WithPollInterval(interval time.Duration) Option {
	return func(m *Monitor) {
		if interval > 0 {
			m.pollInterval = interval
		}
	}
}

// Monitor owns the poll loop state. It is not safe for concurrent cycles.
type Monitor struct {
	cfg          *config.Config
	source       backend.Source
	logger       *slog.Logger
	now          func() time.Time
	pollInterval time.Duration
	outputPath   string

	launcher    viewer.Launcher
	launcherSet bool
	viewerOpen  bool

	lockPath string
	lock     *flock.Flock
}

// New constructs a monitor for cfg reading from source.
func New(cfg *config.Config, source backend.Source, logger *slog.Logger, opts ...Option) (*Monitor, error) {
	if cfg == nil || source == nil {
		return nil, errors.New("monitor requires config and job source")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	m := &Monitor{
		cfg:          cfg,
		source:       source,
		logger:       logging.NewComponentLogger(logger, "monitor"),
		now:          time.Now,
		pollInterval: cfg.PollInterval(),
		outputPath:   cfg.Monitor.OutputPath,
		lockPath:     cfg.LockPath(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.pollInterval <= 0 {
		m.pollInterval = time.Duration(config.Default().Monitor.PollInterval) * time.Second
	}
	if !cfg.Monitor.OpenViewer {
		m.launcher = nil
	} else if !m.launcherSet {
		launcher, err := viewer.NewLauncher(cfg.Monitor.ViewerCommand)
		if err != nil {
			logging.WarnWithContext(m.logger, "viewer unavailable; dashboard will not open automatically", "viewer_unavailable",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "set monitor.viewer_command"),
				logging.String(logging.FieldImpact, "open the dashboard manually"),
			)
		}
		m.launcher = launcher
	}
	m.lock = flock.New(m.lockPath)
	return m, nil
}

// Acquire takes the single-instance lock for the output document.
func (m *Monitor) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(m.lockPath), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	ok, err := m.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w (lock %s)", ErrAlreadyRunning, m.lockPath)
	}
	return nil
}

// Release drops the single-instance lock.
func (m *Monitor) Release() {
	if err := m.lock.Unlock(); err != nil {
		m.logger.Warn("failed to release monitor lock",
			logging.Error(err),
			logging.String(logging.FieldEventType, "lock_release_failed"),
			logging.String("lock", m.lockPath),
		)
	}
}

// Run acquires the lock and polls until ctx is canceled. Cycle failures are
// logged and retried; the only returned error is a lock failure.
func (m *Monitor) Run(ctx context.Context) error {
	if err := m.Acquire(); err != nil {
		return err
	}
	defer m.Release()

	m.logger.Info("monitor started",
		logging.String("output", m.outputPath),
		logging.Duration("poll_interval", m.pollInterval),
		logging.String("operator", m.cfg.Operator.User),
		logging.String("backend", m.cfg.Backend.Kind),
	)
	for {
		if ctx.Err() != nil {
			break
		}
		cycleCtx := logging.WithCorrelationID(ctx, uuid.NewString())
		if err := m.RunCycle(cycleCtx); err != nil && ctx.Err() == nil {
			m.handleCycleError(cycleCtx, err)
		}
		if !m.wait(ctx) {
			break
		}
	}
	m.logger.Info("monitor stopped", logging.String(logging.FieldEventType, "monitor_stopped"))
	return nil
}

// RunCycle performs one fetch, classify, render, persist pass and opens the
// viewer after the first successful persist. Panics are returned as errors.
// A correlation id is attached to ctx unless one is already present.
func (m *Monitor) RunCycle(ctx context.Context) (err error) {
	if _, ok := logging.CorrelationIDFromContext(ctx); !ok {
		ctx = logging.WithCorrelationID(ctx, uuid.NewString())
	}
	logger := logging.WithContext(ctx, m.logger)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("poll cycle panic: %v", r)
		}
	}()

	now := m.now()
	snapshot, err := m.source.ListJobs(ctx)
	if err != nil {
		return fmt.Errorf("fetch jobs: %w", err)
	}
	cls := jobs.Classify(snapshot, m.cfg.Operator.User, now)
	page := dashboard.NewPage(cls, dashboard.Options{
		Operator:       m.cfg.Operator.User,
		GeneratedAt:    now,
		RefreshSeconds: m.cfg.Monitor.PageRefresh,
	})

	var buf bytes.Buffer
	if err := dashboard.Render(&buf, page); err != nil {
		return err
	}
	if err := m.persist(buf.Bytes()); err != nil {
		return err
	}
	logger.Debug("dashboard updated",
		logging.String(logging.FieldEventType, "dashboard_updated"),
		logging.Int("jobs", len(snapshot)),
		logging.Int("active", len(cls.Active)),
		logging.Int("mine_today", len(cls.MineToday)),
	)

	if !m.viewerOpen && m.launcher != nil {
		m.viewerOpen = true
		if err := m.launcher.Open(ctx, m.outputPath); err != nil {
			logging.WarnWithContext(logger, "failed to open dashboard viewer", "viewer_open_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check monitor.viewer_command or the desktop opener"),
				logging.String(logging.FieldImpact, "open the dashboard manually"),
				logging.String("output", m.outputPath),
			)
		} else {
			logger.Info("dashboard viewer opened", logging.String("output", m.outputPath))
		}
	}
	return nil
}

// ViewerOpened reports whether the viewer launch has been attempted.
func (m *Monitor) ViewerOpened() bool {
	return m.viewerOpen
}

func (m *Monitor) persist(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(m.outputPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(m.outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write dashboard: %w", err)
	}
	return nil
}

func (m *Monitor) handleCycleError(ctx context.Context, err error) {
	logging.ErrorWithContext(logging.WithContext(ctx, m.logger), "poll cycle failed; retrying", "poll_cycle_failed",
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check backend connectivity and output path permissions"),
		logging.Duration("retry_in", m.pollInterval),
	)
}

// wait sleeps for the poll interval and reports false once ctx is done.
func (m *Monitor) wait(ctx context.Context) bool {
	timer := time.NewTimer(m.pollInterval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
