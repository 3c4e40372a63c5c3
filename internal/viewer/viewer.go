// Package viewer opens the rendered status document in the desktop's default
// viewer.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Launcher opens a document for the user.
type Launcher interface {
	Open(ctx context.Context, path string) error
}

type commandLauncher struct {
	name string
	args []string
}

// NewLauncher returns a launcher for command, or the platform opener when
// command is empty. command is split on whitespace and the document path is
// appended as the final argument.
func NewLauncher(command string) (Launcher, error) {
	if fields := strings.Fields(command); len(fields) > 0 {
		return commandLauncher{name: fields[0], args: fields[1:]}, nil
	}
	return platformLauncher(runtime.GOOS)
}

func platformLauncher(goos string) (Launcher, error) {
	switch goos {
	case "darwin":
		return commandLauncher{name: "open"}, nil
	case "windows":
		return commandLauncher{name: "rundll32", args: []string{"url.dll,FileProtocolHandler"}}, nil
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return commandLauncher{name: "xdg-open"}, nil
	default:
		return nil, fmt.Errorf("no default viewer for %s; set monitor.viewer_command", goos)
	}
}

// Open starts the viewer and returns once the process is running. The viewer
// is not tied to ctx so it outlives the monitor.
func (l commandLauncher) Open(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if path == "" {
		return errors.New("viewer requires a document path")
	}
	args := append(append([]string(nil), l.args...), path)
	cmd := exec.Command(l.name, args...) //nolint:gosec
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start viewer %s: %w", l.name, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// Open launches command (or the platform opener) on path.
func Open(ctx context.Context, path, command string) error {
	launcher, err := NewLauncher(command)
	if err != nil {
		return err
	}
	return launcher.Open(ctx, path)
}
