package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeOperator()
	if err := c.normalizeMonitor(); err != nil {
		return err
	}
	if err := c.normalizeBackend(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeOperator() {
	c.Operator.User = strings.TrimSpace(c.Operator.User)
	if c.Operator.User != "" {
		return
	}
	if value, ok := os.LookupEnv("FARMWATCH_OPERATOR"); ok && strings.TrimSpace(value) != "" {
		c.Operator.User = strings.TrimSpace(value)
	} else if value, ok := os.LookupEnv("USER"); ok {
		c.Operator.User = strings.TrimSpace(value)
	} else if value, ok := os.LookupEnv("USERNAME"); ok {
		c.Operator.User = strings.TrimSpace(value)
	}
}

func (c *Config) normalizeMonitor() error {
	var err error
	if strings.TrimSpace(c.Monitor.OutputPath) == "" {
		c.Monitor.OutputPath = defaultOutputPath
	}
	if c.Monitor.OutputPath, err = expandPath(strings.TrimSpace(c.Monitor.OutputPath)); err != nil {
		return fmt.Errorf("monitor.output_path: %w", err)
	}
	c.Monitor.ViewerCommand = strings.TrimSpace(c.Monitor.ViewerCommand)
	return nil
}

func (c *Config) normalizeBackend() error {
	c.Backend.Kind = strings.ToLower(strings.TrimSpace(c.Backend.Kind))
	if c.Backend.Kind == "" {
		c.Backend.Kind = defaultBackendKind
	}
	c.Backend.URL = strings.TrimSpace(c.Backend.URL)
	c.Backend.Token = strings.TrimSpace(c.Backend.Token)
	if c.Backend.Token == "" {
		if value, ok := os.LookupEnv("FARMWATCH_BACKEND_TOKEN"); ok {
			c.Backend.Token = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.Backend.Path) != "" {
		var err error
		if c.Backend.Path, err = expandPath(strings.TrimSpace(c.Backend.Path)); err != nil {
			return fmt.Errorf("backend.path: %w", err)
		}
	}
	if c.Backend.Timeout <= 0 {
		c.Backend.Timeout = defaultBackendTimeout
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
