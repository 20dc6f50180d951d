package huaci

import "context"

// CollinsEntry is one sense of a headword in the Collins table.
type CollinsEntry struct {
	Word              string  `json:"word"`
	Phonetic          *string `json:"phonetic"`
	Sense             *string `json:"sense"`
	EnglishDefinition *string `json:"enDef"`
	ChineseDefinition *string `json:"cnDef"`
}

// OxfordEntry is one sense of a headword in the Oxford table.
type OxfordEntry struct {
	Word              string  `json:"word"`
	Phrase            *string `json:"phrase"`
	Phonetic          *string `json:"phonetic"`
	Sense             *string `json:"sense"`
	Extension         *string `json:"ext"`
	EnglishDefinition *string `json:"enDef"`
	ChineseDefinition *string `json:"cnDef"`
}

// DictionaryService provides case-insensitive lookups against the bundled
// dictionary. Words absent from a table yield empty results, not errors.
type DictionaryService interface {
	// SearchCollins returns every Collins entry whose word matches,
	// in insertion order.
	SearchCollins(ctx context.Context, word string) ([]*CollinsEntry, error)

	// SearchOxford returns every Oxford entry whose word matches,
	// in insertion order.
	SearchOxford(ctx context.Context, word string) ([]*OxfordEntry, error)

	// FindWordBase returns the base form of an inflected word.
	// The boolean is false when the word has no recorded base form.
	FindWordBase(ctx context.Context, word string) (string, bool, error)
}

// HeadwordIterator streams every distinct word known to a dictionary.
type HeadwordIterator interface {
	EachHeadword(ctx context.Context, fn func(word string) error) error
}

// LookupResult is the lemma-aware result of looking a word up in both tables.
type LookupResult struct {
	Word    string          `json:"word"`
	Base    *string         `json:"base"`
	Collins []*CollinsEntry `json:"collins"`
	Oxford  []*OxfordEntry  `json:"oxford"`
}

// LookupService searches both tables for a word together with its base form.
type LookupService interface {
	Lookup(ctx context.Context, word string) (*LookupResult, error)
}
