// Package posts implements the content contract of a Jekyll-style static
// blog: a directory of markdown files, each split into front matter and body.
// The external site generator stays the sole consumer of the parsed posts;
// this package owns discovery, validation, and author-side tooling.
package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/mattn/go-sqlite3"

	"github.com/goliatone/go-posts/internal/index"
	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/internal/logging/gologger"
	"github.com/goliatone/go-posts/internal/markdown"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

// Shared types re-exported so hosts only import this package.
type (
	Post         = interfaces.Post
	FrontMatter  = interfaces.FrontMatter
	LoadOptions  = interfaces.LoadOptions
	ParseOptions = interfaces.ParseOptions
	LintReport   = interfaces.LintReport
	LintIssue    = interfaces.LintIssue
	SyncOptions  = interfaces.SyncOptions
	SyncResult   = interfaces.SyncResult

	MalformedFrontMatterError = markdown.MalformedFrontMatterError
	MissingRequiredFieldError = markdown.MissingRequiredFieldError
	TypeMismatchError         = markdown.TypeMismatchError
)

// Parse-time error taxonomy, re-exported for errors.Is checks.
var (
	ErrMalformedFrontMatter = markdown.ErrMalformedFrontMatter
	ErrMissingRequiredField = markdown.ErrMissingRequiredField
	ErrTypeMismatch         = markdown.ErrTypeMismatch
)

// ErrIndexDisabled is returned by sync operations when no index is configured.
var ErrIndexDisabled = errors.New("posts: index is disabled")

// ParseFrontMatter splits raw post bytes into validated front matter and body.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	return markdown.ParseFrontMatter(source)
}

// EncodeFrontMatter re-serializes front matter into a delimited block.
func EncodeFrontMatter(meta FrontMatter) ([]byte, error) {
	return markdown.EncodeFrontMatter(meta)
}

// Option customises Store construction.
type Option func(*Store)

// WithLoggerProvider injects the logging provider used for module loggers.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(s *Store) {
		s.loggers = provider
	}
}

// WithParser overrides the preview markdown parser.
func WithParser(parser interfaces.MarkdownParser) Option {
	return func(s *Store) {
		s.parser = parser
	}
}

// WithDB injects an existing bun.DB for the index, bypassing Index.Path.
func WithDB(db *bun.DB) Option {
	return func(s *Store) {
		s.db = db
	}
}

// Store is the facade over the filesystem post store and the optional index.
type Store struct {
	config  Config
	loggers interfaces.LoggerProvider
	parser  interfaces.MarkdownParser
	service *markdown.Service
	db      *bun.DB
	ownsDB  bool
	syncer  *index.Syncer
	repo    *index.BunRepository
}

// New constructs a Store from the supplied configuration.
func New(cfg Config, opts ...Option) (*Store, error) {
	s := &Store{config: cfg}
	for _, opt := range opts {
		opt(s)
	}

	if cfg.Index.Enabled && s.db != nil && cfg.Index.Path == "" {
		// An injected DB stands in for the configured file path.
		s.config.Index.Path = ":memory:"
		cfg = s.config
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("posts: invalid configuration: %w", err)
	}

	if s.loggers == nil {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return nil, err
		}
		s.loggers = provider
	}

	service, err := markdown.NewService(markdown.Config{
		BasePath:  cfg.Store.BasePath,
		Pattern:   cfg.Store.Pattern,
		Recursive: cfg.Store.Recursive,
		Parser: interfaces.ParseOptions{
			Extensions: cfg.Parser.Extensions,
			HardWraps:  cfg.Parser.HardWraps,
			SafeMode:   cfg.Parser.SafeMode,
		},
	}, s.parser, logging.StoreLogger(s.loggers))
	if err != nil {
		return nil, err
	}
	s.service = service

	if cfg.Index.Enabled {
		if err := s.initIndex(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Store) initIndex() error {
	if s.db == nil {
		sqlDB, err := sql.Open("sqlite3", s.config.Index.Path)
		if err != nil {
			return fmt.Errorf("posts: open index database: %w", err)
		}
		s.db = bun.NewDB(sqlDB, sqlitedialect.New())
		s.ownsDB = true
	}

	if err := index.EnsureSchema(context.Background(), s.db); err != nil {
		return err
	}

	s.repo = index.NewBunRepository(s.db)
	syncer, err := index.NewSyncer(s.repo, index.WithLogger(logging.IndexLogger(s.loggers)))
	if err != nil {
		return err
	}
	s.syncer = syncer
	return nil
}

// Close releases the index database when the store opened it.
func (s *Store) Close() error {
	if s.db != nil && s.ownsDB {
		return s.db.Close()
	}
	return nil
}

// Load reads and parses a single post relative to the content root.
func (s *Store) Load(ctx context.Context, path string, opts LoadOptions) (*Post, error) {
	return s.service.Load(ctx, path, opts)
}

// LoadDirectory reads every post within the supplied directory.
func (s *Store) LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Post, error) {
	return s.service.LoadDirectory(ctx, dir, opts)
}

// Lint parses every post under dir and reports invalid files without
// aborting on the first failure.
func (s *Store) Lint(ctx context.Context, dir string, opts LoadOptions) (*LintReport, error) {
	return s.service.Lint(ctx, dir, opts)
}

// Render converts markdown bytes into preview HTML.
func (s *Store) Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error) {
	return s.service.Render(ctx, markdown, opts)
}

// RenderPost converts a post's body into preview HTML.
func (s *Store) RenderPost(ctx context.Context, post *Post, opts ParseOptions) ([]byte, error) {
	return s.service.RenderPost(ctx, post, opts)
}

// SyncPosts reconciles already-parsed posts with the index.
func (s *Store) SyncPosts(ctx context.Context, items []*Post, opts SyncOptions) (*SyncResult, error) {
	if s.syncer == nil {
		return nil, ErrIndexDisabled
	}
	return s.syncer.SyncPosts(ctx, items, opts)
}

// Sync lints dir and reconciles the valid posts with the index. Invalid
// files are carried into the result's error list so a malformed post is
// reported without blocking its siblings.
func (s *Store) Sync(ctx context.Context, dir string, opts SyncOptions) (*SyncResult, error) {
	if s.syncer == nil {
		return nil, ErrIndexDisabled
	}

	report, err := s.Lint(ctx, dir, LoadOptions{})
	if err != nil {
		return nil, err
	}

	result, err := s.syncer.SyncPosts(ctx, report.Valid, opts)
	if err != nil {
		return nil, err
	}
	for _, issue := range report.Invalid {
		result.Errors = append(result.Errors, fmt.Errorf("%s: %w", issue.Path, issue.Err))
	}
	return result, nil
}

var _ interfaces.PostStore = (*Store)(nil)
