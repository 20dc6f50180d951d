package main

import (
	"fmt"
	"slices"

	"github.com/fwojciec/huaci"
	"github.com/rodaine/table"
)

// Run executes the check command. It fails when AnkiConnect is unreachable
// or the configured deck or note type does not exist.
func (c *CheckCmd) Run(deps *Dependencies) error {
	cfg, err := deps.Config.ReadConfig(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", huaci.ErrorMessage(err))
		return err
	}

	anki := deps.Anki(cfg.AnkiConnectURL)
	version, err := anki.Version(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", huaci.ErrorMessage(err))
		fmt.Fprintln(deps.Stderr, "Hint: Start Anki with the AnkiConnect add-on installed")
		return err
	}
	decks, err := anki.DeckNames(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", huaci.ErrorMessage(err))
		return err
	}
	models, err := anki.ModelNames(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", huaci.ErrorMessage(err))
		return err
	}

	deckOK := slices.Contains(decks, cfg.DeckName)
	modelOK := slices.Contains(models, cfg.ModelName)

	tbl := table.New("Check", "Value", "Status").WithWriter(deps.Stdout)
	tbl.AddRow("AnkiConnect", cfg.AnkiConnectURL, fmt.Sprintf("ok (version %d)", version))
	tbl.AddRow(huaci.KeyDeckName, cfg.DeckName, status(deckOK))
	tbl.AddRow(huaci.KeyModelName, cfg.ModelName, status(modelOK))
	tbl.Print()

	switch {
	case !deckOK:
		err = huaci.Errorf(huaci.ENOTFOUND, "deck %q does not exist", cfg.DeckName)
	case !modelOK:
		err = huaci.Errorf(huaci.ENOTFOUND, "note type %q does not exist", cfg.ModelName)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", huaci.ErrorMessage(err))
		return err
	}
	return nil
}

func status(ok bool) string {
	if ok {
		return "ok"
	}
	return "missing"
}
