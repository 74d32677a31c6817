package index

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/internal/markdown"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

// ErrRepositoryRequired is returned when a Syncer is built without storage.
var ErrRepositoryRequired = errors.New("index syncer: repository is required")

// Repository is the storage surface the syncer needs; BunRepository satisfies it.
type Repository interface {
	Create(ctx context.Context, record *Record) (*Record, error)
	Update(ctx context.Context, record *Record) (*Record, error)
	GetByPath(ctx context.Context, path string) (*Record, error)
	List(ctx context.Context) ([]*Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// IDGenerator produces IDs for newly indexed records.
type IDGenerator func() uuid.UUID

// SyncerOption configures a Syncer.
type SyncerOption func(*Syncer)

// WithIDGenerator overrides how record IDs are minted, mainly for tests.
func WithIDGenerator(gen IDGenerator) SyncerOption {
	return func(s *Syncer) {
		if gen != nil {
			s.idgen = gen
		}
	}
}

// WithNow overrides the clock used for created/updated stamps.
func WithNow(now func() time.Time) SyncerOption {
	return func(s *Syncer) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger attaches a logger to the syncer.
func WithLogger(logger interfaces.Logger) SyncerOption {
	return func(s *Syncer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Syncer reconciles parsed posts with the index. Each post is applied
// independently; a failing file is recorded and never aborts its siblings.
type Syncer struct {
	repo   Repository
	logger interfaces.Logger
	idgen  IDGenerator
	now    func() time.Time
}

// NewSyncer builds a Syncer over the supplied repository.
func NewSyncer(repo Repository, opts ...SyncerOption) (*Syncer, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	s := &Syncer{
		repo:   repo,
		logger: logging.NoOp(),
		idgen:  uuid.New,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SyncPosts applies the supplied posts to the index and optionally removes
// records whose source file disappeared.
func (s *Syncer) SyncPosts(ctx context.Context, posts []*interfaces.Post, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	result := &interfaces.SyncResult{}
	seen := make(map[string]struct{}, len(posts))

	for _, post := range posts {
		if post == nil {
			continue
		}
		seen[post.Path] = struct{}{}
		if err := s.applyPost(ctx, post, opts, result); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("index sync %s: %w", post.Path, err))
		}
	}

	if opts.DeleteOrphaned {
		if err := s.deleteOrphaned(ctx, seen, opts, result); err != nil {
			result.Errors = append(result.Errors, err)
		}
	}

	logging.WithFields(s.logger, map[string]any{
		"created": result.Created,
		"updated": result.Updated,
		"deleted": result.Deleted,
		"skipped": result.Skipped,
		"errors":  len(result.Errors),
		"dry_run": opts.DryRun,
	}).Info("posts.index.sync.completed")

	return result, nil
}

func (s *Syncer) applyPost(ctx context.Context, post *interfaces.Post, opts interfaces.SyncOptions, result *interfaces.SyncResult) error {
	record, err := s.buildRecord(post)
	if err != nil {
		return err
	}

	existing, err := s.repo.GetByPath(ctx, post.Path)
	if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return err
		}

		if opts.DryRun {
			result.Created++
			return nil
		}

		record.ID = s.idgen()
		record.CreatedAt = s.now().UTC()
		record.UpdatedAt = record.CreatedAt
		if _, err := s.repo.Create(ctx, record); err != nil {
			return err
		}
		result.Created++
		return nil
	}

	if existing.Checksum == record.Checksum {
		result.Skipped++
		return nil
	}

	if opts.DryRun {
		result.Updated++
		return nil
	}

	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = s.now().UTC()
	if _, err := s.repo.Update(ctx, record); err != nil {
		return err
	}
	result.Updated++
	return nil
}

func (s *Syncer) deleteOrphaned(ctx context.Context, seen map[string]struct{}, opts interfaces.SyncOptions, result *interfaces.SyncResult) error {
	records, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("index sync list records: %w", err)
	}

	for _, record := range records {
		if _, ok := seen[record.Path]; ok {
			continue
		}
		if opts.DryRun {
			result.Deleted++
			continue
		}
		if err := s.repo.Delete(ctx, record.ID); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("index sync delete %s: %w", record.Path, err))
			continue
		}
		result.Deleted++
	}
	return nil
}

func (s *Syncer) buildRecord(post *interfaces.Post) (*Record, error) {
	info, err := markdown.ParseFileName(post.Path)
	if err != nil {
		return nil, err
	}

	return &Record{
		Path:        post.Path,
		Slug:        info.Slug,
		Layout:      post.FrontMatter.Layout,
		Title:       post.FrontMatter.Title,
		Author:      post.FrontMatter.Author,
		Categories:  append([]string(nil), post.FrontMatter.Categories...),
		Image:       post.FrontMatter.Image,
		Featured:    post.FrontMatter.Featured,
		Hidden:      post.FrontMatter.Hidden,
		PublishedAt: info.Date,
		Checksum:    hex.EncodeToString(post.Checksum),
	}, nil
}
