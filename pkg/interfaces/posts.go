package interfaces

import (
	"context"
	"time"
)

// PostStore exposes the file-centric workflows of the post store: discover
// markdown posts on disk, split them into front matter and body, and render
// author previews. Implementations live under internal/markdown.
type PostStore interface {
	// Load reads and parses a single post relative to the configured base path.
	Load(ctx context.Context, path string, opts LoadOptions) (*Post, error)
	// LoadDirectory reads every post within the supplied directory.
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Post, error)
	// Lint parses every post within dir and reports invalid files without
	// aborting on the first failure.
	Lint(ctx context.Context, dir string, opts LoadOptions) (*LintReport, error)
	// Render converts markdown bytes into preview HTML.
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
}

// MarkdownParser defines how raw markdown bytes are converted into HTML for
// author previews. The published site is rendered by an external generator;
// this contract only backs local tooling.
type MarkdownParser interface {
	// Parse converts markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises preview rendering behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// Post represents a single content file with parsed metadata and body. The
// struct is shared between the interfaces package and internal
// implementations so consumers can depend on a stable contract.
type Post struct {
	// Path is the file path relative to the store's base directory.
	Path        string
	FrontMatter FrontMatter
	// Body is the raw markdown body. The store never interprets or executes
	// embedded code blocks.
	Body         []byte
	LastModified time.Time
	// Checksum stores a SHA-256 digest of the original file content so sync
	// workflows can detect changes without re-reading unchanged files.
	Checksum []byte
}

// FrontMatter models the metadata block at the top of a post file. Layout and
// Title are required; the remaining fields are optional. Custom carries any
// keys outside the known schema, Raw the full decoded mapping.
type FrontMatter struct {
	Layout     string         `yaml:"layout" json:"layout"`
	Title      string         `yaml:"title" json:"title"`
	Author     string         `yaml:"author" json:"author,omitempty"`
	Categories []string       `yaml:"categories" json:"categories,omitempty"`
	Image      string         `yaml:"image" json:"image,omitempty"`
	Featured   bool           `yaml:"featured" json:"featured"`
	Hidden     bool           `yaml:"hidden" json:"hidden"`
	Custom     map[string]any `yaml:",inline" json:"custom,omitempty"`
	Raw        map[string]any `yaml:"-" json:"raw,omitempty"`
}

// LoadOptions fine-tunes how posts are discovered on disk.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
}

// LintReport summarises a directory lint run. Valid and Invalid partition the
// discovered files; a malformed post never aborts processing of its siblings.
type LintReport struct {
	Valid   []*Post
	Invalid []LintIssue
}

// LintIssue records why a single file was excluded from the published set.
type LintIssue struct {
	Path string
	Err  error
}

// SyncOptions controls how parsed posts are reconciled with the local index.
type SyncOptions struct {
	// DryRun collects the would-be changes without touching the index.
	DryRun bool
	// DeleteOrphaned removes index records whose source file disappeared.
	DeleteOrphaned bool
}

// SyncResult summarises a bulk sync run across many files.
type SyncResult struct {
	Created int
	Updated int
	Deleted int
	Skipped int
	Errors  []error
}
