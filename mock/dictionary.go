package mock

import (
	"context"

	"github.com/fwojciec/huaci"
)

var (
	_ huaci.DictionaryService = (*DictionaryService)(nil)
	_ huaci.HeadwordIterator  = (*DictionaryService)(nil)
)

// DictionaryService is a mock implementation of huaci.DictionaryService.
type DictionaryService struct {
	SearchCollinsFn func(ctx context.Context, word string) ([]*huaci.CollinsEntry, error)
	SearchOxfordFn  func(ctx context.Context, word string) ([]*huaci.OxfordEntry, error)
	FindWordBaseFn  func(ctx context.Context, word string) (string, bool, error)
	EachHeadwordFn  func(ctx context.Context, fn func(word string) error) error
}

func (s *DictionaryService) SearchCollins(ctx context.Context, word string) ([]*huaci.CollinsEntry, error) {
	return s.SearchCollinsFn(ctx, word)
}

func (s *DictionaryService) SearchOxford(ctx context.Context, word string) ([]*huaci.OxfordEntry, error) {
	return s.SearchOxfordFn(ctx, word)
}

func (s *DictionaryService) FindWordBase(ctx context.Context, word string) (string, bool, error) {
	return s.FindWordBaseFn(ctx, word)
}

func (s *DictionaryService) EachHeadword(ctx context.Context, fn func(word string) error) error {
	return s.EachHeadwordFn(ctx, fn)
}

var _ huaci.LookupService = (*LookupService)(nil)

// LookupService is a mock implementation of huaci.LookupService.
type LookupService struct {
	LookupFn func(ctx context.Context, word string) (*huaci.LookupResult, error)
}

func (s *LookupService) Lookup(ctx context.Context, word string) (*huaci.LookupResult, error) {
	return s.LookupFn(ctx, word)
}
