package markdown

import (
	"context"
	"testing"
	"testing/fstest"
)

func postFS() fstest.MapFS {
	return fstest.MapFS{
		"2024-01-02-first.md": &fstest.MapFile{
			Data: []byte("---\nlayout: post\ntitle: First\n---\nfirst body\n"),
		},
		"2024-02-03-second.md": &fstest.MapFile{
			Data: []byte("---\nlayout: post\ntitle: Second\nauthor: ap\n---\nsecond body\n"),
		},
		"drafts/2024-03-04-draft.md": &fstest.MapFile{
			Data: []byte("---\nlayout: post\ntitle: Draft\nhidden: true\n---\ndraft body\n"),
		},
		"notes.txt": &fstest.MapFile{
			Data: []byte("not a post"),
		},
	}
}

func TestLoader_LoadFile(t *testing.T) {
	loader := NewLoader(postFS(), LoaderConfig{})

	result, err := loader.LoadFile(context.Background(), "2024-01-02-first.md", LoadParams{})
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if result.Post.FrontMatter.Title != "First" {
		t.Fatalf("unexpected title %q", result.Post.FrontMatter.Title)
	}
	if len(result.Source) == 0 {
		t.Fatalf("expected raw source to be retained")
	}
}

func TestLoader_LoadDirectory(t *testing.T) {
	loader := NewLoader(postFS(), LoaderConfig{Recursive: true})

	results, err := loader.LoadDirectory(context.Background(), ".", LoadParams{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(results))
	}
	// Results are sorted by path; the top-level posts come before drafts/.
	if results[0].Post.Path != "2024-01-02-first.md" {
		t.Fatalf("unexpected first path %q", results[0].Post.Path)
	}
	if results[2].Post.Path != "drafts/2024-03-04-draft.md" {
		t.Fatalf("unexpected last path %q", results[2].Post.Path)
	}
}

func TestLoader_LoadDirectoryNonRecursive(t *testing.T) {
	loader := NewLoader(postFS(), LoaderConfig{Recursive: false})

	results, err := loader.LoadDirectory(context.Background(), ".", LoadParams{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected sub-directories to be skipped, got %d posts", len(results))
	}
	for _, result := range results {
		if result.Post.Path == "drafts/2024-03-04-draft.md" {
			t.Fatalf("draft should not be discovered without recursion")
		}
	}
}

func TestLoader_PatternOverride(t *testing.T) {
	loader := NewLoader(postFS(), LoaderConfig{Recursive: true})

	results, err := loader.LoadDirectory(context.Background(), ".", LoadParams{Pattern: "2024-02-*.md"})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(results) != 1 || results[0].Post.Path != "2024-02-03-second.md" {
		t.Fatalf("pattern override not applied: %#v", results)
	}
}

func TestLoader_ContextCancelled(t *testing.T) {
	loader := NewLoader(postFS(), LoaderConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := loader.LoadDirectory(ctx, ".", LoadParams{}); err == nil {
		t.Fatalf("expected cancellation error")
	}
}
