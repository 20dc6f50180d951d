package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/huaci"
	"github.com/fwojciec/huaci/bloom"
	"github.com/fwojciec/huaci/exec"
	"github.com/fwojciec/huaci/fs"
	"github.com/fwojciec/huaci/fsnotify"
	huacihttp "github.com/fwojciec/huaci/http"
	huacislog "github.com/fwojciec/huaci/slog"
	"github.com/fwojciec/huaci/sqlite"
	"github.com/fwojciec/huaci/toml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Directories paths are resolved from. Resolved from the running
	// executable when ExeDir is empty.
	Layout fs.Layout

	// Shell used by the reveal, open, and browse commands.
	Shell huaci.Shell

	// Dictionary database and config watcher owned by the program.
	DB      *sqlite.DB
	Watcher *fsnotify.Watcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Shell: exec.NewShell(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Watcher != nil {
		m.Watcher.Close()
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("huaci"),
		kong.Description("Dictionary lookups and Anki settings for the word-lookup assistant."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'huaci --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	paths, err := m.resolvePaths(cli)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", huaci.ErrorMessage(err))
		fmt.Fprintln(stderr, "Hint: Set HUACI_CONFIG to use an explicit config file")
		return err
	}
	logger.Debug("resolved paths",
		"config", paths.Config,
		"portable", paths.Portable,
		"dict", paths.Dict,
		"template", paths.Template,
	)

	m.DB = sqlite.NewDB(paths.Dict)
	defer m.Close()

	dict := sqlite.NewDictionaryService(m.DB)
	var dictionary huaci.DictionaryService = dict
	if cli.Bloom {
		dictionary = bloom.NewDictionaryService(dict, bloom.DefaultFalsePositiveRate)
	}
	deps.Dictionary = huacislog.NewLoggingDictionaryService(dictionary, logger)

	config := toml.NewConfigService(paths.Config, paths.Portable)
	config.Bootstrap = fs.NewBootstrapper(paths.Template, []byte(toml.DefaultTemplate)).Bootstrap
	config.WriteFile = fs.WriteFile
	deps.Config = huacislog.NewLoggingConfigService(config, logger)

	m.Watcher = fsnotify.NewWatcher(paths.Config)
	deps.Watcher = m.Watcher

	if m.Shell != nil {
		deps.Shell = huacislog.NewLoggingShell(m.Shell, logger)
	}
	deps.Anki = func(url string) huaci.AnkiService {
		return huacihttp.NewAnkiClient(url)
	}
	deps.Logger = logger

	return kongCtx.Run(deps)
}

// resolvePaths applies the command-line overrides to the resolved layout.
func (m *Main) resolvePaths(cli *CLI) (*fs.Paths, error) {
	layout := m.Layout
	if layout.ExeDir == "" {
		var err error
		if layout, err = fs.DefaultLayout(); err != nil {
			return nil, err
		}
	}
	if cli.Resources != "" {
		layout.ResourcesDir = cli.Resources
	}

	var paths *fs.Paths
	if cli.Config != "" {
		resources := layout.Resources()
		paths = &fs.Paths{
			Config:   cli.Config,
			Portable: sameDir(cli.Config, layout.ExeDir),
			Template: filepath.Join(resources, fs.TemplateFileName),
			Dict:     filepath.Join(resources, fs.DictFileName),
		}
	} else {
		var err error
		if paths, err = fs.ResolvePaths(layout); err != nil {
			return nil, err
		}
	}

	if cli.Dict != "" {
		paths.Dict = cli.Dict
	}
	return paths, nil
}

// sameDir reports whether file sits directly in dir.
func sameDir(file, dir string) bool {
	a, err := filepath.Abs(filepath.Dir(file))
	if err != nil {
		return false
	}
	b, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	return a == b
}
