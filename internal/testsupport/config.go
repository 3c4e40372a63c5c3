package testsupport

import (
	"path/filepath"
	"testing"

	"farmwatch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The backend reads a JSON export from the temp directory and the viewer is
// disabled.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Operator.User = "alice"
	cfgVal.Monitor.OutputPath = filepath.Join(base, "www", "LiveStatus.html")
	cfgVal.Monitor.OpenViewer = false
	cfgVal.Backend.Kind = config.BackendFile
	cfgVal.Backend.Path = filepath.Join(base, "export.json")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithOperator overrides the operator user on the test config.
func WithOperator(user string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Operator.User = user
	}
}

// WithSQLiteBackend points the backend at a SQLite mirror inside the temp dir.
func WithSQLiteBackend() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Backend.Kind = config.BackendSQLite
		b.cfg.Backend.Path = filepath.Join(b.baseDir, "queue.db")
	}
}

// WithHTTPBackend points the backend at the given export URL.
func WithHTTPBackend(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Backend.Kind = config.BackendHTTP
		b.cfg.Backend.URL = url
		b.cfg.Backend.Path = ""
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
