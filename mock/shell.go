package mock

import (
	"context"

	"github.com/fwojciec/huaci"
)

var _ huaci.Shell = (*Shell)(nil)

// Shell is a mock implementation of huaci.Shell.
type Shell struct {
	RevealFn   func(ctx context.Context, path string) error
	OpenFileFn func(ctx context.Context, path string) error
	OpenURLFn  func(ctx context.Context, url string) error
}

func (s *Shell) Reveal(ctx context.Context, path string) error {
	return s.RevealFn(ctx, path)
}

func (s *Shell) OpenFile(ctx context.Context, path string) error {
	return s.OpenFileFn(ctx, path)
}

func (s *Shell) OpenURL(ctx context.Context, url string) error {
	return s.OpenURLFn(ctx, url)
}
