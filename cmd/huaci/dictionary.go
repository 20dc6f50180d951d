package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/huaci"
	"github.com/fwojciec/huaci/lemma"
	"github.com/rodaine/table"
)

// Run executes the collins command.
func (c *CollinsCmd) Run(deps *Dependencies) error {
	entries, err := lemma.NewSearcher(deps.Dictionary).SearchCollins(deps.Ctx, c.Word, !c.Exact)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", huaci.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintf(deps.Stdout, "No Collins entries for %q.\n", c.Word)
		return nil
	}

	tbl := table.New("Word", "Phonetic", "Sense", "English", "Chinese").WithWriter(deps.Stdout)
	for _, e := range entries {
		tbl.AddRow(e.Word, text(e.Phonetic), text(e.Sense), text(e.EnglishDefinition), text(e.ChineseDefinition))
	}
	tbl.Print()
	return nil
}

// Run executes the oxford command.
func (c *OxfordCmd) Run(deps *Dependencies) error {
	entries, err := lemma.NewSearcher(deps.Dictionary).SearchOxford(deps.Ctx, c.Word, !c.Exact)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", huaci.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintf(deps.Stdout, "No Oxford entries for %q.\n", c.Word)
		return nil
	}

	tbl := table.New("Word", "Phrase", "Phonetic", "Sense", "Ext", "English", "Chinese").WithWriter(deps.Stdout)
	for _, e := range entries {
		tbl.AddRow(e.Word, text(e.Phrase), text(e.Phonetic), text(e.Sense), text(e.Extension), text(e.EnglishDefinition), text(e.ChineseDefinition))
	}
	tbl.Print()
	return nil
}

// Run executes the base command.
func (c *BaseCmd) Run(deps *Dependencies) error {
	base, ok, err := deps.Dictionary.FindWordBase(deps.Ctx, c.Word)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", huaci.ErrorMessage(err))
		return err
	}
	if !ok {
		fmt.Fprintf(deps.Stdout, "No base form for %q.\n", c.Word)
		return nil
	}
	fmt.Fprintln(deps.Stdout, base)
	return nil
}

// Run executes the lookup command.
func (c *LookupCmd) Run(deps *Dependencies) error {
	res, err := lemma.NewSearcher(deps.Dictionary).Lookup(deps.Ctx, c.Word)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", huaci.ErrorMessage(err))
		return err
	}
	return writeJSON(deps.Stdout, res)
}

// Run executes the sanitize command.
func (c *SanitizeCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, huaci.SanitizeFilename(c.Name))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// text renders a nullable column.
func text(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
