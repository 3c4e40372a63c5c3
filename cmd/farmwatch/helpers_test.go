package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"farmwatch/internal/config"
	"farmwatch/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

func setupCLITestEnv(t *testing.T, exported []testsupport.ExportJob) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	home := filepath.Join(testsupport.BaseDir(cfg), "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("FARMWATCH_BACKEND_TOKEN", "")

	testsupport.WriteExport(t, cfg.Backend.Path, exported)

	encoded, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	configPath := filepath.Join(testsupport.BaseDir(cfg), "farmwatch.toml")
	if err := os.WriteFile(configPath, []byte(encoded), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return &cliTestEnv{cfg: cfg, configPath: configPath}
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q in output:\n%s", needle, haystack)
	}
}

// todayAt returns an RFC 3339 timestamp for the given wall clock time today.
func todayAt(hour, minute int) string {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.Local).Format(time.RFC3339)
}

func sampleExport() []testsupport.ExportJob {
	return []testsupport.ExportJob{
		{User: "alice", Name: "shot_010", Status: "Rendering", Submitted: todayAt(0, 30), Completed: 40, Tasks: 100, Remaining: testsupport.Span("00:15:30.450000")},
		{User: "bob", Name: "shot_020", Status: "Queued", Submitted: todayAt(0, 10), Tasks: 20},
		{User: "alice", Name: "shot_005", Status: "Completed", Submitted: todayAt(0, 5), Completed: 8, Tasks: 8},
	}
}
