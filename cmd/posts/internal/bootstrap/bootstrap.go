package bootstrap

import (
	"fmt"
	"strings"

	posts "github.com/goliatone/go-posts"
	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/internal/logging/gologger"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

// Options captures configuration shared by the post store CLIs.
type Options struct {
	PostsDir       string
	Pattern        string
	Recursive      bool
	IndexPath      string
	LogLevel       string
	LogFormat      string
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the configured store and the logger the CLIs report through.
type Module struct {
	Store  *posts.Store
	Logger interfaces.Logger
}

// Close releases resources held by the store.
func (m *Module) Close() error {
	if m == nil || m.Store == nil {
		return nil
	}
	return m.Store.Close()
}

// BuildModule constructs a post store configured for CLI use.
func BuildModule(opts Options) (*Module, error) {
	cfg := posts.DefaultConfig()

	if dir := strings.TrimSpace(opts.PostsDir); dir != "" {
		cfg.Store.BasePath = dir
	}
	if pattern := strings.TrimSpace(opts.Pattern); pattern != "" {
		cfg.Store.Pattern = pattern
	}
	cfg.Store.Recursive = opts.Recursive

	if path := strings.TrimSpace(opts.IndexPath); path != "" {
		cfg.Index.Enabled = true
		cfg.Index.Path = path
	}

	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if format := strings.TrimSpace(opts.LogFormat); format != "" {
		cfg.Logging.Format = format
	}

	provider := opts.LoggerProvider
	if provider == nil {
		built, err := gologger.NewProvider(gologger.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			return nil, fmt.Errorf("initialise logger: %w", err)
		}
		provider = built
	}

	store, err := posts.New(cfg, posts.WithLoggerProvider(provider))
	if err != nil {
		return nil, fmt.Errorf("initialise post store: %w", err)
	}

	return &Module{
		Store:  store,
		Logger: logging.CommandsLogger(provider),
	}, nil
}

// SplitExtensions parses a comma separated extension list into a trimmed slice.
func SplitExtensions(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	extensions := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			extensions = append(extensions, trimmed)
		}
	}
	return extensions
}
