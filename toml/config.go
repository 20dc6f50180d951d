// Package toml provides the TOML-file implementation of huaci.ConfigService.
package toml

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/huaci"
)

// DefaultTemplate is the configuration written on first run when no bundled
// template is available.
const DefaultTemplate = `# AnkiConnect endpoint
anki-connect-url = "` + huaci.DefaultAnkiConnectURL + `"

# Deck that new notes are added to
deck-name = "` + huaci.DefaultDeckName + `"

# Note type used for new notes
model-name = "` + huaci.DefaultModelName + `"
`

// Ensure ConfigService implements huaci.ConfigService at compile time.
var _ huaci.ConfigService = (*ConfigService)(nil)

// ConfigService implements huaci.ConfigService on a TOML file.
type ConfigService struct {
	path     string
	portable bool

	// Bootstrap creates the file at path when it is missing in installed
	// mode. It is never called in portable mode.
	Bootstrap func(path string) error

	// WriteFile replaces the file contents on commit. Defaults to os.WriteFile.
	WriteFile func(path string, data []byte, perm os.FileMode) error
}

// NewConfigService creates a new ConfigService for the file at path.
func NewConfigService(path string, portable bool) *ConfigService {
	return &ConfigService{path: path, portable: portable}
}

// ConfigPath returns the configuration file path.
func (s *ConfigService) ConfigPath() string {
	return s.path
}

// IsPortable reports whether the configuration lives beside the executable.
func (s *ConfigService) IsPortable() bool {
	return s.portable
}

// ReadConfig parses the configuration file, bootstrapping it first when it
// is absent in installed mode.
func (s *ConfigService) ReadConfig(ctx context.Context) (*huaci.Config, error) {
	exists, err := fileExists(s.path)
	if err != nil {
		return nil, huaci.Errorf(huaci.EIO, "failed to detect if %s exists: %v", s.path, err)
	}
	if !exists {
		if s.portable {
			return nil, huaci.Errorf(huaci.EIO, "config file %s does not exist", s.path)
		}
		if s.Bootstrap == nil {
			return nil, huaci.Errorf(huaci.EIO, "config file %s does not exist and no template is configured", s.path)
		}
		if err := s.Bootstrap(s.path); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, huaci.Errorf(huaci.EIO, "failed to read config file %s: %v", s.path, err)
	}
	return Parse(data)
}

// CommitConfig rewrites the keys present in upd and leaves the rest of the
// document untouched.
func (s *ConfigService) CommitConfig(ctx context.Context, upd huaci.ConfigUpdate) error {
	if upd.IsEmpty() {
		return nil
	}

	info, err := os.Stat(s.path)
	if err != nil {
		return huaci.Errorf(huaci.EIO, "failed to read config file %s: %v", s.path, err)
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return huaci.Errorf(huaci.EIO, "failed to read config file %s: %v", s.path, err)
	}

	out, err := Merge(data, upd)
	if err != nil {
		return err
	}

	write := s.WriteFile
	if write == nil {
		write = os.WriteFile
	}
	if err := write(s.path, out, info.Mode().Perm()); err != nil {
		return huaci.Errorf(huaci.EIO, "failed to write config file %s: %v", s.path, err)
	}
	return nil
}

// Parse decodes a configuration document and checks the required keys.
func Parse(data []byte) (*huaci.Config, error) {
	var doc map[string]any
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, huaci.Errorf(huaci.EPARSE, "failed to parse config: %v", err)
	}

	var cfg huaci.Config
	for _, f := range []struct {
		key string
		dst *string
	}{
		{huaci.KeyAnkiConnectURL, &cfg.AnkiConnectURL},
		{huaci.KeyDeckName, &cfg.DeckName},
		{huaci.KeyModelName, &cfg.ModelName},
	} {
		v, ok := doc[f.key]
		if !ok {
			return nil, huaci.Errorf(huaci.EMISSINGKEY, "toml key %q does not exist", f.key)
		}
		s, ok := v.(string)
		if !ok {
			return nil, huaci.Errorf(huaci.EKEYTYPE, "the value of %q is not a string", f.key)
		}
		*f.dst = s
	}
	return &cfg, nil
}

// Merge applies upd to a configuration document, preserving comments,
// formatting, and unrecognized keys.
func Merge(data []byte, upd huaci.ConfigUpdate) ([]byte, error) {
	var doc map[string]any
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, huaci.Errorf(huaci.EPARSE, "failed to parse config: %v", err)
	}

	var kvs []keyValue
	set := func(key string, v *string) {
		if v == nil {
			return
		}
		_, defined := doc[key]
		kvs = append(kvs, keyValue{key: key, value: *v, defined: defined})
	}
	set(huaci.KeyAnkiConnectURL, upd.AnkiConnectURL)
	set(huaci.KeyDeckName, upd.DeckName)
	set(huaci.KeyModelName, upd.ModelName)

	out, err := setKeys(data, kvs)
	if err != nil {
		return nil, huaci.Errorf(huaci.EPARSE, "failed to edit config: %v", err)
	}
	var check map[string]any
	if _, err := toml.Decode(string(out), &check); err != nil {
		return nil, huaci.Errorf(huaci.EPARSE, "edited config is not valid TOML: %v", err)
	}
	return out, nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
