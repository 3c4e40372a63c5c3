package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"farmwatch/internal/config"
	"farmwatch/internal/jobs"
)

// ErrUnknownKind reports a backend kind the factory cannot build.
var ErrUnknownKind = errors.New("unknown backend kind")

// Source lists every job currently known to the queue backend.
type Source interface {
	ListJobs(ctx context.Context) (jobs.Snapshot, error)
}

// Open builds the source selected by cfg.Backend.Kind.
func Open(cfg *config.Config) (Source, error) {
	if cfg == nil {
		return nil, errors.New("backend requires configuration")
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Backend.Kind)) {
	case config.BackendHTTP:
		client := &http.Client{Timeout: cfg.BackendTimeout()}
		return NewHTTPSource(cfg.Backend.URL, cfg.Backend.Token, client), nil
	case config.BackendFile:
		return NewFileSource(cfg.Backend.Path), nil
	case config.BackendSQLite:
		return OpenSQLite(cfg.Backend.Path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Backend.Kind)
	}
}

// Close releases resources held by sources that own them.
func Close(src Source) error {
	if closer, ok := src.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
