package huaci

import "context"

// AnkiService talks to a running AnkiConnect add-on.
type AnkiService interface {
	// Version returns the AnkiConnect API version.
	Version(ctx context.Context) (int, error)

	// DeckNames returns the names of all decks.
	DeckNames(ctx context.Context) ([]string, error)

	// ModelNames returns the names of all note types.
	ModelNames(ctx context.Context) ([]string, error)
}
