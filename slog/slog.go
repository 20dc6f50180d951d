// Package slog provides logging decorators for huaci services.
package slog

import "log/slog"

// levelFor logs successful operations at debug level and failures at warn.
func levelFor(err error) slog.Level {
	if err != nil {
		return slog.LevelWarn
	}
	return slog.LevelDebug
}
