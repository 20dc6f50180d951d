package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/huaci"
)

// Ensure LoggingShell implements huaci.Shell.
var _ huaci.Shell = (*LoggingShell)(nil)

// LoggingShell wraps a Shell with logging.
type LoggingShell struct {
	next   huaci.Shell
	logger *slog.Logger
}

// NewLoggingShell creates a new LoggingShell.
func NewLoggingShell(next huaci.Shell, logger *slog.Logger) *LoggingShell {
	return &LoggingShell{next: next, logger: logger}
}

// Reveal delegates to the wrapped shell and logs the call.
func (s *LoggingShell) Reveal(ctx context.Context, path string) (err error) {
	defer s.log(ctx, "reveal", path, time.Now(), &err)
	return s.next.Reveal(ctx, path)
}

// OpenFile delegates to the wrapped shell and logs the call.
func (s *LoggingShell) OpenFile(ctx context.Context, path string) (err error) {
	defer s.log(ctx, "open file", path, time.Now(), &err)
	return s.next.OpenFile(ctx, path)
}

// OpenURL delegates to the wrapped shell and logs the call.
func (s *LoggingShell) OpenURL(ctx context.Context, url string) (err error) {
	defer s.log(ctx, "open url", url, time.Now(), &err)
	return s.next.OpenURL(ctx, url)
}

func (s *LoggingShell) log(ctx context.Context, msg, target string, begin time.Time, err *error) {
	s.logger.Log(ctx, levelFor(*err), msg,
		"target", target,
		"duration", time.Since(begin),
		"err", *err,
	)
}
