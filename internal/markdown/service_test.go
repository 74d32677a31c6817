package markdown

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

func newTestService(tb testing.TB, filesystem fstest.MapFS) *Service {
	tb.Helper()
	return NewServiceWithFS(filesystem, Config{Recursive: true}, nil, nil)
}

func TestService_Load(t *testing.T) {
	svc := newTestService(t, postFS())

	post, err := svc.Load(context.Background(), "2024-02-03-second.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if post.FrontMatter.Author != "ap" {
		t.Fatalf("unexpected author %q", post.FrontMatter.Author)
	}
}

func TestService_LoadDirectory(t *testing.T) {
	svc := newTestService(t, postFS())

	posts, err := svc.LoadDirectory(context.Background(), ".", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}
}

func TestService_Lint(t *testing.T) {
	filesystem := postFS()
	filesystem["2024-04-05-broken.md"] = &fstest.MapFile{
		Data: []byte("---\nlayout: post\ntitle: Broken\ncategories: r\n---\nbody\n"),
	}
	filesystem["2024-04-06-untitled.md"] = &fstest.MapFile{
		Data: []byte("---\nlayout: post\n---\nbody\n"),
	}

	svc := newTestService(t, filesystem)

	report, err := svc.Lint(context.Background(), ".", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Lint: %v", err)
	}

	if len(report.Valid) != 3 {
		t.Fatalf("expected 3 valid posts, got %d", len(report.Valid))
	}
	if len(report.Invalid) != 2 {
		t.Fatalf("expected 2 invalid posts, got %d", len(report.Invalid))
	}

	issues := map[string]error{}
	for _, issue := range report.Invalid {
		issues[issue.Path] = issue.Err
	}
	if !errors.Is(issues["2024-04-05-broken.md"], ErrTypeMismatch) {
		t.Fatalf("expected type mismatch for broken post, got %v", issues["2024-04-05-broken.md"])
	}
	if !errors.Is(issues["2024-04-06-untitled.md"], ErrMissingRequiredField) {
		t.Fatalf("expected missing field for untitled post, got %v", issues["2024-04-06-untitled.md"])
	}
}

func TestService_Render(t *testing.T) {
	svc := newTestService(t, postFS())

	html, err := svc.Render(context.Background(), []byte("# Preview"), interfaces.ParseOptions{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(html), "Preview</h1>") {
		t.Fatalf("unexpected preview output %q", string(html))
	}
}

func TestService_RenderPost(t *testing.T) {
	svc := newTestService(t, postFS())

	post, err := svc.Load(context.Background(), "2024-01-02-first.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	html, err := svc.RenderPost(context.Background(), post, interfaces.ParseOptions{})
	if err != nil {
		t.Fatalf("RenderPost: %v", err)
	}
	if !strings.Contains(string(html), "first body") {
		t.Fatalf("unexpected rendered body %q", string(html))
	}
}

var _ interfaces.PostStore = (*Service)(nil)
