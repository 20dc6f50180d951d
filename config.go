package huaci

import "context"

// Keys of the configuration file.
const (
	KeyAnkiConnectURL = "anki-connect-url"
	KeyDeckName       = "deck-name"
	KeyModelName      = "model-name"
)

// Default configuration values used by the built-in template.
const (
	DefaultAnkiConnectURL = "http://localhost:8765"
	DefaultDeckName       = "划词助手默认牌组"
	DefaultModelName      = "划词助手默认单词模板"
)

// Config represents the persisted application settings.
type Config struct {
	AnkiConnectURL string `json:"ankiConnectURL"`
	DeckName       string `json:"deckName"`
	ModelName      string `json:"modelName"`
}

// ConfigUpdate represents fields that can be updated on a Config.
// Nil fields are left untouched.
type ConfigUpdate struct {
	AnkiConnectURL *string `json:"ankiConnectURL"`
	DeckName       *string `json:"deckName"`
	ModelName      *string `json:"modelName"`
}

// IsEmpty reports whether the update carries no fields.
func (u ConfigUpdate) IsEmpty() bool {
	return u.AnkiConnectURL == nil && u.DeckName == nil && u.ModelName == nil
}

// Apply returns a copy of cfg with the update's fields applied.
func (u ConfigUpdate) Apply(cfg Config) Config {
	if u.AnkiConnectURL != nil {
		cfg.AnkiConnectURL = *u.AnkiConnectURL
	}
	if u.DeckName != nil {
		cfg.DeckName = *u.DeckName
	}
	if u.ModelName != nil {
		cfg.ModelName = *u.ModelName
	}
	return cfg
}

// ConfigService represents a service for reading and updating the
// configuration file.
type ConfigService interface {
	// ReadConfig parses the configuration file.
	// Returns EIO if the file is absent in portable mode or unreadable,
	// EPARSE if it is malformed, and EMISSINGKEY or EKEYTYPE if a required
	// key is missing or not a string.
	ReadConfig(ctx context.Context) (*Config, error)

	// CommitConfig overwrites only the keys present in upd and preserves
	// the rest of the document.
	CommitConfig(ctx context.Context, upd ConfigUpdate) error

	// ConfigPath returns the resolved configuration file path.
	ConfigPath() string

	// IsPortable reports whether the configuration lives beside the executable.
	IsPortable() bool
}

// ConfigWatcher reports external edits of the configuration file.
type ConfigWatcher interface {
	// Start begins watching. It returns true when the watcher was started
	// and false when it was already watching.
	Start(ctx context.Context) (bool, error)

	// Changes signals that the file changed and still exists.
	Changes() <-chan struct{}

	// Errors reports errors from the underlying file watcher.
	Errors() <-chan error

	// Close stops the watcher.
	Close() error
}
