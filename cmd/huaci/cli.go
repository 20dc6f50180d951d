package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/huaci"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Dictionary huaci.DictionaryService
	Config     huaci.ConfigService
	Watcher    huaci.ConfigWatcher
	Shell      huaci.Shell

	// Anki returns a client for the AnkiConnect endpoint at url.
	Anki func(url string) huaci.AnkiService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Dict      string `help:"Dictionary database path" env:"HUACI_DICT" type:"path"`
	Config    string `help:"Config file path" env:"HUACI_CONFIG" type:"path"`
	Resources string `help:"Bundled resources directory" env:"HUACI_RESOURCES" type:"path"`
	Verbose   bool   `short:"v" help:"Log debug output"`
	Bloom     bool   `help:"Skip database queries for unknown words using a Bloom filter"`

	ConfigCmd ConfigCmd   `cmd:"" name:"config" help:"Show or change the configuration"`
	Portable  PortableCmd `cmd:"" help:"Report whether the config lives beside the executable"`
	Watch     WatchCmd    `cmd:"" help:"Print a line whenever the config file changes"`
	Collins   CollinsCmd  `cmd:"" help:"Look a word up in the Collins dictionary"`
	Oxford    OxfordCmd   `cmd:"" help:"Look a word up in the Oxford dictionary"`
	Base      BaseCmd     `cmd:"" help:"Print the base form of an inflected word"`
	Lookup    LookupCmd   `cmd:"" help:"Look a word and its base form up in both dictionaries"`
	Reveal    RevealCmd   `cmd:"" help:"Show a file in the file manager"`
	Open      OpenCmd     `cmd:"" help:"Open a file with its default application"`
	Browse    BrowseCmd   `cmd:"" help:"Open a URL in the default browser"`
	Sanitize  SanitizeCmd `cmd:"" help:"Make a string safe to use as a file name"`
	Check     CheckCmd    `cmd:"" help:"Check the configured deck and note type against AnkiConnect"`
	Serve     ServeCmd    `cmd:"" help:"Serve the local JSON API"`
}

// ConfigCmd is the "config" command group.
type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" default:"1" help:"Print the configuration"`
	Set  ConfigSetCmd  `cmd:"" help:"Change one configuration key"`
	Path ConfigPathCmd `cmd:"" help:"Print the config file path"`
}

// ConfigShowCmd is the "config show" subcommand.
type ConfigShowCmd struct {
	JSON bool `help:"Print as JSON"`
}

// ConfigSetCmd is the "config set" subcommand.
type ConfigSetCmd struct {
	Key   string `arg:"" enum:"anki-connect-url,deck-name,model-name" help:"Key to change (anki-connect-url, deck-name, model-name)"`
	Value string `arg:"" help:"New value"`
}

// ConfigPathCmd is the "config path" subcommand.
type ConfigPathCmd struct{}

// PortableCmd is the "portable" subcommand.
type PortableCmd struct{}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct{}

// CollinsCmd is the "collins" subcommand.
type CollinsCmd struct {
	Word  string `arg:"" help:"Word to look up"`
	Exact bool   `help:"Do not include entries of the base form"`
	JSON  bool   `help:"Print as JSON"`
}

// OxfordCmd is the "oxford" subcommand.
type OxfordCmd struct {
	Word  string `arg:"" help:"Word to look up"`
	Exact bool   `help:"Do not include entries of the base form"`
	JSON  bool   `help:"Print as JSON"`
}

// BaseCmd is the "base" subcommand.
type BaseCmd struct {
	Word string `arg:"" help:"Inflected word"`
}

// LookupCmd is the "lookup" subcommand.
type LookupCmd struct {
	Word string `arg:"" help:"Word to look up"`
}

// RevealCmd is the "reveal" subcommand.
type RevealCmd struct {
	Path string `arg:"" help:"File to show"`
}

// OpenCmd is the "open" subcommand.
type OpenCmd struct {
	Path string `arg:"" help:"File to open"`
}

// BrowseCmd is the "browse" subcommand.
type BrowseCmd struct {
	URL string `arg:"" help:"URL to open"`
}

// SanitizeCmd is the "sanitize" subcommand.
type SanitizeCmd struct {
	Name string `arg:"" help:"Proposed file name"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct{}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr  string `default:"127.0.0.1:8766" help:"Listen address"`
	Watch bool   `help:"Start the config watcher immediately"`

	AllowOrigin []string `name:"allow-origin" help:"Browser origin allowed to call the API (repeatable)"`
}
