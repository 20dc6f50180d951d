package bloom

import (
	"context"
	"sync"

	"github.com/fwojciec/huaci"
	"golang.org/x/text/cases"
)

// DefaultFalsePositiveRate is the filter's target false positive rate.
const DefaultFalsePositiveRate = 0.001

// Dictionary is a huaci.DictionaryService backed by both a lookup service
// and a way to enumerate its headwords.
type Dictionary interface {
	huaci.DictionaryService
	huaci.HeadwordIterator
}

// Ensure DictionaryService implements huaci.DictionaryService at compile time.
var _ huaci.DictionaryService = (*DictionaryService)(nil)

// DictionaryService answers lookups of words that are definitely absent
// without querying the wrapped service. Results are otherwise unchanged.
type DictionaryService struct {
	next   Dictionary
	fpRate float64

	mu     sync.Mutex
	filter *Filter
}

// NewDictionaryService creates a new DictionaryService. The filter is built
// from every headword on first use.
func NewDictionaryService(next Dictionary, fpRate float64) *DictionaryService {
	return &DictionaryService{next: next, fpRate: fpRate}
}

// SearchCollins returns no entries for words absent from the filter.
func (s *DictionaryService) SearchCollins(ctx context.Context, word string) ([]*huaci.CollinsEntry, error) {
	known, err := s.known(ctx, word)
	if err != nil {
		return nil, err
	}
	if !known {
		return []*huaci.CollinsEntry{}, nil
	}
	return s.next.SearchCollins(ctx, word)
}

// SearchOxford returns no entries for words absent from the filter.
func (s *DictionaryService) SearchOxford(ctx context.Context, word string) ([]*huaci.OxfordEntry, error) {
	known, err := s.known(ctx, word)
	if err != nil {
		return nil, err
	}
	if !known {
		return []*huaci.OxfordEntry{}, nil
	}
	return s.next.SearchOxford(ctx, word)
}

// FindWordBase reports no base form for words absent from the filter.
func (s *DictionaryService) FindWordBase(ctx context.Context, word string) (string, bool, error) {
	known, err := s.known(ctx, word)
	if err != nil {
		return "", false, err
	}
	if !known {
		return "", false, nil
	}
	return s.next.FindWordBase(ctx, word)
}

// Len returns the approximate number of headwords in the filter, or 0 if
// it has not been built yet.
func (s *DictionaryService) Len() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filter == nil {
		return 0
	}
	return s.filter.EstimatedCount()
}

func (s *DictionaryService) known(ctx context.Context, word string) (bool, error) {
	f, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	return f.Test(fold(word)), nil
}

// load builds the filter once. A failed build is retried on the next call.
func (s *DictionaryService) load(ctx context.Context) (*Filter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filter != nil {
		return s.filter, nil
	}

	seen := make(map[string]struct{})
	err := s.next.EachHeadword(ctx, func(word string) error {
		seen[fold(word)] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}

	f := NewFilter(uint(len(seen)), s.fpRate)
	for w := range seen {
		f.Add(w)
	}
	s.filter = f
	return f, nil
}

// fold matches the case-insensitive comparison of the dictionary: words
// that compare equal ignoring case fold to the same key.
func fold(s string) string {
	return cases.Fold().String(s)
}
