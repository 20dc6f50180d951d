package fs

import (
	"os"
	"path/filepath"

	"github.com/fwojciec/huaci"
)

// Bootstrapper creates a missing configuration file from a template.
type Bootstrapper struct {
	// Template is the bundled template file. When it does not exist,
	// Fallback is written instead.
	Template string
	Fallback []byte
}

// NewBootstrapper creates a new Bootstrapper.
func NewBootstrapper(template string, fallback []byte) *Bootstrapper {
	return &Bootstrapper{Template: template, Fallback: fallback}
}

// Bootstrap copies the template to path, creating parent directories.
func (b *Bootstrapper) Bootstrap(path string) error {
	data, err := b.template()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return huaci.Errorf(huaci.EIO, "failed to create config directory: %v", err)
	}
	if err := WriteFile(path, data, 0644); err != nil {
		return huaci.Errorf(huaci.EIO, "failed to copy template to %s: %v", path, err)
	}
	return nil
}

func (b *Bootstrapper) template() ([]byte, error) {
	if b.Template != "" {
		data, err := os.ReadFile(b.Template)
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, huaci.Errorf(huaci.EIO, "failed to read template %s: %v", b.Template, err)
		}
	}
	if b.Fallback == nil {
		return nil, huaci.Errorf(huaci.EIO, "config template %s does not exist", b.Template)
	}
	return b.Fallback, nil
}
