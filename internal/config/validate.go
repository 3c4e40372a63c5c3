package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOperator(); err != nil {
		return err
	}
	if err := c.validateMonitor(); err != nil {
		return err
	}
	if err := c.validateBackend(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateOperator() error {
	if strings.TrimSpace(c.Operator.User) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("operator.user is required. Set FARMWATCH_OPERATOR or edit %s (create with 'farmwatch config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateMonitor() error {
	if err := ensurePositiveMap(map[string]int{
		"monitor.poll_interval": c.Monitor.PollInterval,
		"monitor.page_refresh":  c.Monitor.PageRefresh,
	}); err != nil {
		return err
	}
	if strings.TrimSpace(c.Monitor.OutputPath) == "" {
		return errors.New("monitor.output_path must be set")
	}
	return nil
}

func (c *Config) validateBackend() error {
	switch c.Backend.Kind {
	case BackendHTTP:
		if c.Backend.URL == "" {
			return errors.New("backend.url must be set when backend.kind is \"http\"")
		}
		if !strings.HasPrefix(c.Backend.URL, "http://") && !strings.HasPrefix(c.Backend.URL, "https://") {
			return fmt.Errorf("backend.url must be an http(s) URL, got %q", c.Backend.URL)
		}
	case BackendFile, BackendSQLite:
		if c.Backend.Path == "" {
			return fmt.Errorf("backend.path must be set when backend.kind is %q", c.Backend.Kind)
		}
	default:
		return fmt.Errorf("backend.kind: unsupported value %q (want http, file, or sqlite)", c.Backend.Kind)
	}
	if c.Backend.Timeout <= 0 {
		return errors.New("backend.timeout must be positive (seconds)")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
