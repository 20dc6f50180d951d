package mock

import (
	"context"

	"github.com/fwojciec/huaci"
)

var _ huaci.AnkiService = (*AnkiService)(nil)

// AnkiService is a mock implementation of huaci.AnkiService.
type AnkiService struct {
	VersionFn    func(ctx context.Context) (int, error)
	DeckNamesFn  func(ctx context.Context) ([]string, error)
	ModelNamesFn func(ctx context.Context) ([]string, error)
}

func (s *AnkiService) Version(ctx context.Context) (int, error) {
	return s.VersionFn(ctx)
}

func (s *AnkiService) DeckNames(ctx context.Context) ([]string, error) {
	return s.DeckNamesFn(ctx)
}

func (s *AnkiService) ModelNames(ctx context.Context) ([]string, error) {
	return s.ModelNamesFn(ctx)
}
