package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"farmwatch/internal/jobs"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiGray   = "\x1b[90m"
)

func categoryColor(category jobs.Category) string {
	switch category {
	case jobs.CategoryRendering:
		return ansiGreen
	case jobs.CategoryQueued:
		return ansiYellow
	case jobs.CategoryFailed:
		return ansiRed
	case jobs.CategoryCompleted:
		return ansiGray
	default:
		return ""
	}
}

// colorizeStatus wraps a status cell in its category colour.
func colorizeStatus(status string, category jobs.Category, colorize bool) string {
	if !colorize {
		return status
	}
	if color := categoryColor(category); color != "" {
		return color + status + ansiReset
	}
	return status
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
