package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/huaci"
)

// Ensure LoggingConfigService implements huaci.ConfigService.
var _ huaci.ConfigService = (*LoggingConfigService)(nil)

// LoggingConfigService wraps a ConfigService with logging.
type LoggingConfigService struct {
	next   huaci.ConfigService
	logger *slog.Logger
}

// NewLoggingConfigService creates a new LoggingConfigService.
func NewLoggingConfigService(next huaci.ConfigService, logger *slog.Logger) *LoggingConfigService {
	return &LoggingConfigService{next: next, logger: logger}
}

// ReadConfig delegates to the wrapped service and logs the read.
func (s *LoggingConfigService) ReadConfig(ctx context.Context) (cfg *huaci.Config, err error) {
	defer func(begin time.Time) {
		s.logger.Log(ctx, levelFor(err), "read config",
			"path", s.next.ConfigPath(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReadConfig(ctx)
}

// CommitConfig delegates to the wrapped service and logs the updated keys.
func (s *LoggingConfigService) CommitConfig(ctx context.Context, upd huaci.ConfigUpdate) (err error) {
	defer func(begin time.Time) {
		s.logger.Log(ctx, levelFor(err), "commit config",
			"path", s.next.ConfigPath(),
			"keys", updatedKeys(upd),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CommitConfig(ctx, upd)
}

// ConfigPath delegates to the wrapped service.
func (s *LoggingConfigService) ConfigPath() string {
	return s.next.ConfigPath()
}

// IsPortable delegates to the wrapped service.
func (s *LoggingConfigService) IsPortable() bool {
	return s.next.IsPortable()
}

func updatedKeys(upd huaci.ConfigUpdate) []string {
	keys := []string{}
	if upd.AnkiConnectURL != nil {
		keys = append(keys, huaci.KeyAnkiConnectURL)
	}
	if upd.DeckName != nil {
		keys = append(keys, huaci.KeyDeckName)
	}
	if upd.ModelName != nil {
		keys = append(keys, huaci.KeyModelName)
	}
	return keys
}
