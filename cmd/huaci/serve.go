package main

import (
	"fmt"

	"github.com/fwojciec/huaci"
	huacihttp "github.com/fwojciec/huaci/http"
	"github.com/fwojciec/huaci/lemma"
	"golang.org/x/sync/errgroup"
)

// Run executes the serve command. It serves until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := huacihttp.NewServer()
	s.Addr = c.Addr
	s.AllowedOrigins = c.AllowOrigin
	s.Dictionary = deps.Dictionary
	s.Lookup = lemma.NewSearcher(deps.Dictionary)
	s.Config = deps.Config
	s.Watcher = deps.Watcher
	s.Shell = deps.Shell
	if deps.Logger != nil {
		s.Logger = deps.Logger
	}

	if err := s.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", huaci.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", s.URL())

	if c.Watch {
		if _, err := deps.Watcher.Start(deps.Ctx); err != nil {
			s.Close()
			fmt.Fprintf(deps.Stderr, "error: %s\n", huaci.ErrorMessage(err))
			return err
		}
	}

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.Go(func() error {
		return s.Relay(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		return s.Close()
	})
	return g.Wait()
}
