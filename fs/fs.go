// Package fs resolves where huaci keeps its files and writes them safely.
package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/huaci"
)

// File names inside the executable and resource directories.
const (
	ConfigFileName   = "config.toml"
	TemplateFileName = "config-template.toml"
	DictFileName     = "dict.db"
	AppDirName       = "huaci"
)

// Layout describes the directories huaci resolves its paths from.
type Layout struct {
	// ExeDir is the directory containing the running executable.
	ExeDir string
	// UserConfigDir is the per-user configuration root, as returned by
	// os.UserConfigDir.
	UserConfigDir string
	// ResourcesDir holds bundled read-only resources. Defaults to ExeDir.
	ResourcesDir string
}

// Resources returns the resource directory, defaulting to ExeDir.
func (l Layout) Resources() string {
	if l.ResourcesDir != "" {
		return l.ResourcesDir
	}
	return l.ExeDir
}

// Paths holds the resolved file locations. They are fixed for the lifetime
// of the process.
type Paths struct {
	Config   string
	Portable bool
	Template string
	Dict     string
}

// ResolvePaths decides between portable and installed mode. The app is
// portable when a config file sits beside the executable.
func ResolvePaths(l Layout) (*Paths, error) {
	if l.ExeDir == "" {
		return nil, huaci.Errorf(huaci.EINVALID, "executable directory required")
	}
	resources := l.Resources()
	p := &Paths{
		Template: filepath.Join(resources, TemplateFileName),
		Dict:     filepath.Join(resources, DictFileName),
	}

	portable := filepath.Join(l.ExeDir, ConfigFileName)
	ok, err := Exists(portable)
	if err != nil {
		return nil, huaci.Errorf(huaci.EIO, "failed to detect if %s exists: %v", portable, err)
	}
	if ok {
		p.Config = portable
		p.Portable = true
		return p, nil
	}

	if l.UserConfigDir == "" {
		return nil, huaci.Errorf(huaci.EIO, "user config directory is unknown")
	}
	p.Config = filepath.Join(l.UserConfigDir, AppDirName, ConfigFileName)
	return p, nil
}

// DefaultLayout builds a Layout from the running executable and the OS
// user config directory.
func DefaultLayout() (Layout, error) {
	exe, err := os.Executable()
	if err != nil {
		return Layout{}, huaci.Errorf(huaci.EIO, "failed to locate executable: %v", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	// An unknown user config dir only matters in installed mode.
	userDir, _ := os.UserConfigDir()
	return Layout{ExeDir: filepath.Dir(exe), UserConfigDir: userDir}, nil
}

// Exists reports whether path exists. Errors other than not-exist are
// returned.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, iofs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
