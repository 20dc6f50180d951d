// Package exec implements huaci.Shell by running the platform's file
// manager and opener commands.
package exec

import (
	"context"
	"errors"
	"os/exec"
	"path"
	"runtime"
	"strings"

	"github.com/fwojciec/huaci"
)

// Ensure Shell implements huaci.Shell at compile time.
var _ huaci.Shell = (*Shell)(nil)

// Runner runs a command and waits for it to exit.
type Runner func(ctx context.Context, name string, args ...string) error

// Shell runs platform commands for huaci.Shell operations.
type Shell struct {
	goos string
	run  Runner
}

// Option configures a Shell.
type Option func(*Shell)

// WithGOOS overrides the target platform. Defaults to runtime.GOOS.
func WithGOOS(goos string) Option {
	return func(s *Shell) {
		s.goos = goos
	}
}

// WithRunner overrides how commands are run.
func WithRunner(run Runner) Option {
	return func(s *Shell) {
		s.run = run
	}
}

// NewShell creates a new Shell for the running platform.
func NewShell(opts ...Option) *Shell {
	s := &Shell{
		goos: runtime.GOOS,
		run:  Run,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reveal shows path in the file manager. On Linux the parent directory is
// opened.
func (s *Shell) Reveal(ctx context.Context, p string) error {
	p = s.normalize(p)
	switch s.goos {
	case "windows":
		return s.exec(ctx, "reveal", "explorer", "/select,", p)
	case "darwin":
		return s.exec(ctx, "reveal", "open", "-R", p)
	case "linux":
		return s.exec(ctx, "reveal", "xdg-open", path.Dir(p))
	}
	return s.unsupported("reveal")
}

// OpenFile opens path with its default application.
func (s *Shell) OpenFile(ctx context.Context, p string) error {
	return s.open(ctx, "open", s.normalize(p))
}

// OpenURL opens url in the default browser.
func (s *Shell) OpenURL(ctx context.Context, url string) error {
	return s.open(ctx, "browse", url)
}

func (s *Shell) open(ctx context.Context, op, target string) error {
	switch s.goos {
	case "windows":
		// Targets never pass through cmd.exe, which would interpret & | ^.
		return s.exec(ctx, op, "rundll32", "url.dll,FileProtocolHandler", target)
	case "darwin", "linux":
		name := "open"
		if s.goos == "linux" {
			name = "xdg-open"
		}
		return s.exec(ctx, op, name, target)
	}
	return s.unsupported(op)
}

func (s *Shell) exec(ctx context.Context, op, name string, args ...string) error {
	if err := s.run(ctx, name, args...); err != nil {
		return huaci.Errorf(huaci.EIO, "%s: failed to run %s: %v", op, name, err)
	}
	return nil
}

func (s *Shell) unsupported(op string) error {
	return huaci.Errorf(huaci.ENOTIMPLEMENTED, "%s is not implemented on this platform: %s", op, s.goos)
}

// normalize converts path separators to the target platform's.
func (s *Shell) normalize(p string) string {
	if s.goos == "windows" {
		return strings.ReplaceAll(p, "/", `\`)
	}
	return strings.ReplaceAll(p, `\`, "/")
}

// Run starts name and waits for it. Exit statuses are ignored; only failures
// to start are errors.
func Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	hideWindow(cmd)
	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}
