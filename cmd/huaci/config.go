package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/huaci"
	"github.com/rodaine/table"
	"golang.org/x/time/rate"
)

// Run executes the config show command.
func (c *ConfigShowCmd) Run(deps *Dependencies) error {
	cfg, err := deps.Config.ReadConfig(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", huaci.ErrorMessage(err))
		if huaci.IsSchemaError(err) {
			fmt.Fprintf(deps.Stderr, "Hint: Fix or delete %s\n", deps.Config.ConfigPath())
		}
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, cfg)
	}

	tbl := table.New("Key", "Value").WithWriter(deps.Stdout)
	tbl.AddRow(huaci.KeyAnkiConnectURL, cfg.AnkiConnectURL)
	tbl.AddRow(huaci.KeyDeckName, cfg.DeckName)
	tbl.AddRow(huaci.KeyModelName, cfg.ModelName)
	tbl.Print()
	return nil
}

// Run executes the config set command.
func (c *ConfigSetCmd) Run(deps *Dependencies) error {
	var upd huaci.ConfigUpdate
	switch c.Key {
	case huaci.KeyAnkiConnectURL:
		upd.AnkiConnectURL = &c.Value
	case huaci.KeyDeckName:
		upd.DeckName = &c.Value
	case huaci.KeyModelName:
		upd.ModelName = &c.Value
	default:
		err := huaci.Errorf(huaci.EINVALID, "unknown config key %q", c.Key)
		fmt.Fprintf(deps.Stderr, "error: %s\n", huaci.ErrorMessage(err))
		return err
	}

	if err := deps.Config.CommitConfig(deps.Ctx, upd); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", huaci.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Set %s = %q\n", c.Key, c.Value)
	return nil
}

// Run executes the config path command.
func (c *ConfigPathCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, deps.Config.ConfigPath())
	return nil
}

// Run executes the portable command.
func (c *PortableCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, deps.Config.IsPortable())
	return nil
}

// Run executes the watch command. It prints one line per change until the
// context is canceled.
func (c *WatchCmd) Run(deps *Dependencies) error {
	started, err := deps.Watcher.Start(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", huaci.ErrorMessage(err))
		return err
	}
	if !started {
		fmt.Fprintln(deps.Stderr, "Watcher is already running.")
	}
	fmt.Fprintf(deps.Stdout, "Watching %s\n", deps.Config.ConfigPath())

	logErr := rate.Sometimes{First: 3, Interval: 10 * time.Second}
	for {
		select {
		case <-deps.Ctx.Done():
			return nil
		case <-deps.Watcher.Changes():
			fmt.Fprintf(deps.Stdout, "%s config changed\n", time.Now().Format(time.TimeOnly))
		case err := <-deps.Watcher.Errors():
			logErr.Do(func() {
				deps.Logger.Warn("config watcher error", "err", err)
			})
		}
	}
}
