package mock

import (
	"context"

	"github.com/fwojciec/huaci"
)

var _ huaci.ConfigService = (*ConfigService)(nil)

// ConfigService is a mock implementation of huaci.ConfigService.
type ConfigService struct {
	ReadConfigFn   func(ctx context.Context) (*huaci.Config, error)
	CommitConfigFn func(ctx context.Context, upd huaci.ConfigUpdate) error
	ConfigPathFn   func() string
	IsPortableFn   func() bool
}

func (s *ConfigService) ReadConfig(ctx context.Context) (*huaci.Config, error) {
	return s.ReadConfigFn(ctx)
}

func (s *ConfigService) CommitConfig(ctx context.Context, upd huaci.ConfigUpdate) error {
	return s.CommitConfigFn(ctx, upd)
}

func (s *ConfigService) ConfigPath() string {
	return s.ConfigPathFn()
}

func (s *ConfigService) IsPortable() bool {
	return s.IsPortableFn()
}

var _ huaci.ConfigWatcher = (*ConfigWatcher)(nil)

// ConfigWatcher is a mock implementation of huaci.ConfigWatcher.
type ConfigWatcher struct {
	StartFn   func(ctx context.Context) (bool, error)
	ChangesFn func() <-chan struct{}
	ErrorsFn  func() <-chan error
	CloseFn   func() error
}

func (w *ConfigWatcher) Start(ctx context.Context) (bool, error) {
	return w.StartFn(ctx)
}

func (w *ConfigWatcher) Changes() <-chan struct{} {
	return w.ChangesFn()
}

func (w *ConfigWatcher) Errors() <-chan error {
	return w.ErrorsFn()
}

func (w *ConfigWatcher) Close() error {
	return w.CloseFn()
}
