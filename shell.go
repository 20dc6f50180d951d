package huaci

import "context"

// Shell delegates to the platform's file manager, file opener, and browser.
// Unsupported platforms return ENOTIMPLEMENTED.
type Shell interface {
	// Reveal shows path in the platform file manager.
	Reveal(ctx context.Context, path string) error

	// OpenFile opens path with its default application.
	OpenFile(ctx context.Context, path string) error

	// OpenURL opens url in the default browser.
	OpenURL(ctx context.Context, url string) error
}
