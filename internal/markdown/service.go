package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

// Config controls how the post store discovers and parses files.
type Config struct {
	BasePath  string
	Pattern   string
	Recursive bool
	Parser    interfaces.ParseOptions
}

// Service implements interfaces.PostStore for filesystem-backed posts.
type Service struct {
	cfg    Config
	parser interfaces.MarkdownParser
	loader *Loader
	logger interfaces.Logger
}

// NewService constructs a post store service over the configured base path.
// When parser is nil, a goldmark parser with the provided default options is
// created.
func NewService(cfg Config, parser interfaces.MarkdownParser, logger interfaces.Logger) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	return NewServiceWithFS(filesystem, cfg, parser, logger), nil
}

// NewServiceWithFS constructs a post store service over an explicit fs.FS,
// which keeps tests hermetic via fstest.MapFS.
func NewServiceWithFS(filesystem fs.FS, cfg Config, parser interfaces.MarkdownParser, logger interfaces.Logger) *Service {
	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser)
	}
	if logger == nil {
		logger = logging.NoOp()
	}

	loader := NewLoader(filesystem, LoaderConfig{
		BasePath:  cfg.BasePath,
		Pattern:   cfg.Pattern,
		Recursive: cfg.Recursive,
	})

	return &Service{
		cfg:    cfg,
		parser: parser,
		loader: loader,
		logger: logger,
	}
}

// Load reads a single post relative to the configured base path.
func (s *Service) Load(ctx context.Context, path string, opts interfaces.LoadOptions) (*interfaces.Post, error) {
	result, err := s.loader.LoadFile(ctx, s.normalisePath(path), toLoaderParams(opts))
	if err != nil {
		return nil, err
	}
	return result.Post, nil
}

// LoadDirectory reads every post within the supplied directory. The first
// malformed file fails the call; use Lint to collect per-file failures.
func (s *Service) LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Post, error) {
	results, err := s.loader.LoadDirectory(ctx, s.normalisePath(dir), toLoaderParams(opts))
	if err != nil {
		return nil, err
	}

	posts := make([]*interfaces.Post, 0, len(results))
	for _, result := range results {
		posts = append(posts, result.Post)
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].Path < posts[j].Path
	})
	return posts, nil
}

// Lint parses every post under dir independently. Posts that fail parsing or
// validation are reported and excluded; they never abort their siblings.
func (s *Service) Lint(ctx context.Context, dir string, opts interfaces.LoadOptions) (*interfaces.LintReport, error) {
	report := &interfaces.LintReport{}

	err := s.loader.WalkFiles(ctx, s.normalisePath(dir), toLoaderParams(opts), func(path string) error {
		result, err := s.loader.LoadFile(ctx, path, toLoaderParams(opts))
		if err != nil {
			if isPostError(err) {
				logging.WithFields(s.logger, map[string]any{
					"path": path,
				}).Warn("posts.lint.invalid", "error", err)
				report.Invalid = append(report.Invalid, interfaces.LintIssue{Path: path, Err: err})
				return nil
			}
			return err
		}
		report.Valid = append(report.Valid, result.Post)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(report.Valid, func(i, j int) bool {
		return report.Valid[i].Path < report.Valid[j].Path
	})
	sort.Slice(report.Invalid, func(i, j int) bool {
		return report.Invalid[i].Path < report.Invalid[j].Path
	})

	return report, nil
}

// Render parses markdown bytes into preview HTML using the configured parser.
func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return s.parser.ParseWithOptions(markdown, mergeParseOptions(s.cfg.Parser, opts))
}

// RenderPost converts the post's markdown body into preview HTML.
func (s *Service) RenderPost(ctx context.Context, post *interfaces.Post, opts interfaces.ParseOptions) ([]byte, error) {
	if post == nil {
		return nil, errors.New("post store: post is nil")
	}
	html, err := s.Render(ctx, post.Body, opts)
	if err != nil {
		return nil, fmt.Errorf("post store render %s: %w", post.Path, err)
	}
	return html, nil
}

// isPostError reports whether err belongs to the parse-time taxonomy, i.e. a
// file-local authoring problem rather than an infrastructure failure.
func isPostError(err error) bool {
	return errors.Is(err, ErrMalformedFrontMatter) ||
		errors.Is(err, ErrMissingRequiredField) ||
		errors.Is(err, ErrTypeMismatch)
}

func (s *Service) normalisePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) && strings.TrimSpace(s.cfg.BasePath) != "" {
		if rel, err := filepath.Rel(s.cfg.BasePath, clean); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(clean)
}

func mergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	result := base
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.HardWraps {
		result.HardWraps = true
	}
	if override.SafeMode {
		result.SafeMode = true
	}
	return result
}

func toLoaderParams(opts interfaces.LoadOptions) LoadParams {
	return LoadParams{
		Pattern:   opts.Pattern,
		Recursive: opts.Recursive,
	}
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("post store: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
