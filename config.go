package posts

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config aggregates the runtime options for the post store and its tooling.
type Config struct {
	Store   StoreConfig
	Parser  ParserConfig
	Index   IndexConfig
	Logging LoggingConfig
}

// StoreConfig controls how post files are discovered on disk.
type StoreConfig struct {
	// BasePath is the content root, e.g. the _posts directory of a blog.
	BasePath string
	// Pattern limits discovery to matching files. Defaults to "*.md".
	Pattern string
	// Recursive toggles traversal of sub-directories.
	Recursive bool
}

// ParserConfig carries the default preview rendering options.
type ParserConfig struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// IndexConfig controls the optional SQLite-backed post index.
type IndexConfig struct {
	Enabled bool
	// Path is the SQLite database file. Ignored when a DB is injected.
	Path string
}

// LoggingConfig mirrors the go-logger adapter options.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns the configuration used when the host supplies none.
func DefaultConfig() Config {
	return Config{
		Store: StoreConfig{
			BasePath:  "_posts",
			Pattern:   "*.md",
			Recursive: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks cross-field constraints before the store is constructed.
func (c Config) Validate() error {
	if err := validation.ValidateStruct(&c.Logging,
		validation.Field(&c.Logging.Level, validation.In("", "trace", "debug", "info", "warn", "warning", "error", "fatal")),
		validation.Field(&c.Logging.Format, validation.In("", "json", "console", "pretty")),
	); err != nil {
		return err
	}

	if c.Index.Enabled {
		if err := validation.ValidateStruct(&c.Index,
			validation.Field(&c.Index.Path, validation.Required.Error("index path is required when the index is enabled")),
		); err != nil {
			return err
		}
	}

	return nil
}
