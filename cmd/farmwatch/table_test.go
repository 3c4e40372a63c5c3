package main

import (
	"strings"
	"testing"

	"farmwatch/internal/jobs"
)

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable("Jobs", []string{"User", "Job Name", "Progress"}, [][]string{
		{"alice", "shot_010", "40%"},
		{"bob"},
	}, []columnAlignment{alignLeft, alignLeft, alignRight})

	for _, want := range []string{"Jobs", "USER", "JOB NAME", "alice", "shot_010", "40%", "bob"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table:\n%s", want, out)
		}
	}
	if lines := strings.Count(out, "\n"); lines < 6 {
		t.Fatalf("unexpected table height %d:\n%s", lines, out)
	}
}

func TestRenderTableWithoutHeaders(t *testing.T) {
	if out := renderTable("", nil, [][]string{{"x"}}, nil); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestColorizeStatus(t *testing.T) {
	if got := colorizeStatus("Rendering", jobs.CategoryRendering, false); got != "Rendering" {
		t.Fatalf("plain status altered: %q", got)
	}
	got := colorizeStatus("Failed", jobs.CategoryFailed, true)
	if !strings.HasPrefix(got, ansiRed) || !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected red status, got %q", got)
	}
	if shouldColorize(&strings.Builder{}) {
		t.Fatal("non-file writers must not be colourized")
	}
}
