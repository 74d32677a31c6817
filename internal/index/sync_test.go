package index_test

import (
	"context"
	"testing"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-posts/internal/index"
	"github.com/goliatone/go-posts/internal/markdown"
	"github.com/goliatone/go-posts/pkg/interfaces"
	"github.com/goliatone/go-posts/pkg/testsupport"
)

func newIndexDB(t *testing.T) *bun.DB {
	t.Helper()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)

	if err := index.EnsureSchema(context.Background(), bunDB); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return bunDB
}

func newTestRepository(t *testing.T, db *bun.DB) *index.BunRepository {
	t.Helper()

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheSvc, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("cache service: %v", err)
	}
	return index.NewBunRepositoryWithCache(db, cacheSvc, repocache.NewDefaultKeySerializer())
}

func parsePost(t *testing.T, path, source string) *interfaces.Post {
	t.Helper()

	post, err := markdown.BuildPost(path, []byte(source), time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("build post %s: %v", path, err)
	}
	return post
}

func sequentialUUIDs(values ...string) index.IDGenerator {
	ids := make([]uuid.UUID, len(values))
	for i, value := range values {
		ids[i] = uuid.MustParse(value)
	}
	var idx int
	return func() uuid.UUID {
		id := ids[idx%len(ids)]
		idx++
		return id
	}
}

func TestSyncer_CreateUpdateSkip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, newIndexDB(t))

	now := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	syncer, err := index.NewSyncer(repo,
		index.WithIDGenerator(sequentialUUIDs(
			"00000000-0000-0000-0000-000000000001",
			"00000000-0000-0000-0000-000000000002",
		)),
		index.WithNow(func() time.Time { return now }),
	)
	if err != nil {
		t.Fatalf("new syncer: %v", err)
	}

	first := parsePost(t, "2024-03-18-compositional-data.md",
		"---\nlayout: post\ntitle: CLR Transforms\nauthor: ap\ncategories: [r, microbiome]\n---\nbody\n")
	second := parsePost(t, "2024-04-01-permanova.md",
		"---\nlayout: post\ntitle: PERMANOVA\nhidden: true\n---\nbody\n")

	result, err := syncer.SyncPosts(ctx, []*interfaces.Post{first, second}, interfaces.SyncOptions{})
	if err != nil {
		t.Fatalf("SyncPosts: %v", err)
	}
	if result.Created != 2 || result.Updated != 0 || result.Skipped != 0 {
		t.Fatalf("unexpected initial sync result: %+v", result)
	}

	record, err := repo.GetByPath(ctx, "2024-03-18-compositional-data.md")
	if err != nil {
		t.Fatalf("GetByPath: %v", err)
	}
	if record.Slug != "compositional-data" {
		t.Fatalf("unexpected slug %q", record.Slug)
	}
	if !record.PublishedAt.Equal(time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected published_at %v", record.PublishedAt)
	}
	if len(record.Categories) != 2 || record.Categories[0] != "r" {
		t.Fatalf("unexpected categories %#v", record.Categories)
	}

	// Unchanged files are skipped, edited files are updated.
	edited := parsePost(t, "2024-04-01-permanova.md",
		"---\nlayout: post\ntitle: PERMANOVA Revisited\nhidden: true\n---\nnew body\n")

	result, err = syncer.SyncPosts(ctx, []*interfaces.Post{first, edited}, interfaces.SyncOptions{})
	if err != nil {
		t.Fatalf("SyncPosts second run: %v", err)
	}
	if result.Created != 0 || result.Updated != 1 || result.Skipped != 1 {
		t.Fatalf("unexpected second sync result: %+v", result)
	}

	updated, err := repo.GetByPath(ctx, "2024-04-01-permanova.md")
	if err != nil {
		t.Fatalf("GetByPath updated: %v", err)
	}
	if updated.Title != "PERMANOVA Revisited" {
		t.Fatalf("expected title to be updated, got %q", updated.Title)
	}
}

func TestSyncer_DryRun(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, newIndexDB(t))

	syncer, err := index.NewSyncer(repo)
	if err != nil {
		t.Fatalf("new syncer: %v", err)
	}

	post := parsePost(t, "2024-03-18-compositional-data.md",
		"---\nlayout: post\ntitle: CLR Transforms\n---\nbody\n")

	result, err := syncer.SyncPosts(ctx, []*interfaces.Post{post}, interfaces.SyncOptions{DryRun: true})
	if err != nil {
		t.Fatalf("SyncPosts: %v", err)
	}
	if result.Created != 1 {
		t.Fatalf("dry run should report the would-be create: %+v", result)
	}

	if _, err := repo.GetByPath(ctx, "2024-03-18-compositional-data.md"); err == nil {
		t.Fatalf("dry run must not persist records")
	}
}

func TestSyncer_DeleteOrphaned(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, newIndexDB(t))

	syncer, err := index.NewSyncer(repo)
	if err != nil {
		t.Fatalf("new syncer: %v", err)
	}

	keep := parsePost(t, "2024-03-18-keep.md", "---\nlayout: post\ntitle: Keep\n---\nbody\n")
	gone := parsePost(t, "2024-03-19-gone.md", "---\nlayout: post\ntitle: Gone\n---\nbody\n")

	if _, err := syncer.SyncPosts(ctx, []*interfaces.Post{keep, gone}, interfaces.SyncOptions{}); err != nil {
		t.Fatalf("seed sync: %v", err)
	}

	result, err := syncer.SyncPosts(ctx, []*interfaces.Post{keep}, interfaces.SyncOptions{DeleteOrphaned: true})
	if err != nil {
		t.Fatalf("SyncPosts with DeleteOrphaned: %v", err)
	}
	if result.Deleted != 1 || result.Skipped != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 || records[0].Path != "2024-03-18-keep.md" {
		t.Fatalf("orphan not removed: %#v", records)
	}
}

func TestRepository_Queries(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, newIndexDB(t))

	syncer, err := index.NewSyncer(repo)
	if err != nil {
		t.Fatalf("new syncer: %v", err)
	}

	posts := []*interfaces.Post{
		parsePost(t, "2024-01-01-visible.md", "---\nlayout: post\ntitle: Visible\n---\nbody\n"),
		parsePost(t, "2024-01-02-featured.md", "---\nlayout: post\ntitle: Featured\nfeatured: true\n---\nbody\n"),
		parsePost(t, "2024-01-03-hidden.md", "---\nlayout: post\ntitle: Hidden\nhidden: true\n---\nbody\n"),
	}
	if _, err := syncer.SyncPosts(ctx, posts, interfaces.SyncOptions{}); err != nil {
		t.Fatalf("seed sync: %v", err)
	}

	visible, err := repo.ListVisible(ctx)
	if err != nil {
		t.Fatalf("ListVisible: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("expected 2 visible records, got %d", len(visible))
	}

	featured, err := repo.ListFeatured(ctx)
	if err != nil {
		t.Fatalf("ListFeatured: %v", err)
	}
	if len(featured) != 1 || featured[0].Slug != "featured" {
		t.Fatalf("unexpected featured set: %#v", featured)
	}
}
