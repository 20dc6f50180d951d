// Package lemma implements lemma-aware dictionary search: a word is looked
// up together with its base form.
package lemma

import (
	"context"
	"strings"

	"github.com/fwojciec/huaci"
	"golang.org/x/sync/errgroup"
)

// Ensure Searcher implements huaci.LookupService at compile time.
var _ huaci.LookupService = (*Searcher)(nil)

// Searcher searches a dictionary for a word and its base form. A base form
// equal to the word ignoring case is not searched a second time, so callers
// get each entry once.
type Searcher struct {
	dict huaci.DictionaryService
}

// NewSearcher creates a new Searcher.
func NewSearcher(dict huaci.DictionaryService) *Searcher {
	return &Searcher{dict: dict}
}

// Words returns the words to search for word: the word itself followed by
// its base form when one exists and differs.
func (s *Searcher) Words(ctx context.Context, word string) ([]string, error) {
	base, ok, err := s.dict.FindWordBase(ctx, word)
	if err != nil {
		return nil, err
	}
	if !ok || strings.EqualFold(base, word) {
		return []string{word}, nil
	}
	return []string{word, base}, nil
}

// SearchCollins returns the Collins entries of word, followed by those of
// its base form when autoConvert is set.
func (s *Searcher) SearchCollins(ctx context.Context, word string, autoConvert bool) ([]*huaci.CollinsEntry, error) {
	words := []string{word}
	if autoConvert {
		var err error
		if words, err = s.Words(ctx, word); err != nil {
			return nil, err
		}
	}
	return search(ctx, words, s.dict.SearchCollins)
}

// SearchOxford returns the Oxford entries of word, followed by those of its
// base form when autoConvert is set.
func (s *Searcher) SearchOxford(ctx context.Context, word string, autoConvert bool) ([]*huaci.OxfordEntry, error) {
	words := []string{word}
	if autoConvert {
		var err error
		if words, err = s.Words(ctx, word); err != nil {
			return nil, err
		}
	}
	return search(ctx, words, s.dict.SearchOxford)
}

// Lookup resolves the base form of word and searches both tables.
func (s *Searcher) Lookup(ctx context.Context, word string) (*huaci.LookupResult, error) {
	words, err := s.Words(ctx, word)
	if err != nil {
		return nil, err
	}

	res := &huaci.LookupResult{Word: word}
	if len(words) > 1 {
		res.Base = &words[1]
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		res.Collins, err = search(ctx, words, s.dict.SearchCollins)
		return err
	})
	g.Go(func() error {
		var err error
		res.Oxford, err = search(ctx, words, s.dict.SearchOxford)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// search runs fn for each word concurrently and concatenates the results in
// word order.
func search[T any](ctx context.Context, words []string, fn func(context.Context, string) ([]T, error)) ([]T, error) {
	results := make([][]T, len(words))
	g, ctx := errgroup.WithContext(ctx)
	for i, w := range words {
		g.Go(func() error {
			items, err := fn(ctx, w)
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := []T{}
	for _, items := range results {
		out = append(out, items...)
	}
	return out, nil
}
