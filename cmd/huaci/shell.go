package main

import (
	"fmt"

	"github.com/fwojciec/huaci"
)

// Run executes the reveal command.
func (c *RevealCmd) Run(deps *Dependencies) error {
	if err := deps.Shell.Reveal(deps.Ctx, c.Path); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", huaci.ErrorMessage(err))
		return err
	}
	return nil
}

// Run executes the open command.
func (c *OpenCmd) Run(deps *Dependencies) error {
	if err := deps.Shell.OpenFile(deps.Ctx, c.Path); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", huaci.ErrorMessage(err))
		return err
	}
	return nil
}

// Run executes the browse command.
func (c *BrowseCmd) Run(deps *Dependencies) error {
	if err := deps.Shell.OpenURL(deps.Ctx, c.URL); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", huaci.ErrorMessage(err))
		return err
	}
	return nil
}
