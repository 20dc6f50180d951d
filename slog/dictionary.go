package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/huaci"
)

// Ensure LoggingDictionaryService implements huaci.DictionaryService.
var _ huaci.DictionaryService = (*LoggingDictionaryService)(nil)

// LoggingDictionaryService wraps a DictionaryService with logging.
type LoggingDictionaryService struct {
	next   huaci.DictionaryService
	logger *slog.Logger
}

// NewLoggingDictionaryService creates a new LoggingDictionaryService.
func NewLoggingDictionaryService(next huaci.DictionaryService, logger *slog.Logger) *LoggingDictionaryService {
	return &LoggingDictionaryService{next: next, logger: logger}
}

// SearchCollins delegates to the wrapped service and logs the lookup.
func (s *LoggingDictionaryService) SearchCollins(ctx context.Context, word string) (entries []*huaci.CollinsEntry, err error) {
	defer func(begin time.Time) {
		s.logger.Log(ctx, levelFor(err), "search collins",
			"word", word,
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchCollins(ctx, word)
}

// SearchOxford delegates to the wrapped service and logs the lookup.
func (s *LoggingDictionaryService) SearchOxford(ctx context.Context, word string) (entries []*huaci.OxfordEntry, err error) {
	defer func(begin time.Time) {
		s.logger.Log(ctx, levelFor(err), "search oxford",
			"word", word,
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchOxford(ctx, word)
}

// FindWordBase delegates to the wrapped service and logs the lookup.
func (s *LoggingDictionaryService) FindWordBase(ctx context.Context, word string) (base string, ok bool, err error) {
	defer func(begin time.Time) {
		s.logger.Log(ctx, levelFor(err), "find word base",
			"word", word,
			"base", base,
			"found", ok,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindWordBase(ctx, word)
}
