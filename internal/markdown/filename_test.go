package markdown

import (
	"testing"
	"time"
)

func TestParseFileName(t *testing.T) {
	info, err := ParseFileName("_posts/2024-03-18-compositional-data.md")
	if err != nil {
		t.Fatalf("ParseFileName: %v", err)
	}

	want := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
	if !info.Date.Equal(want) {
		t.Fatalf("unexpected date %v", info.Date)
	}
	if info.Slug != "compositional-data" {
		t.Fatalf("unexpected slug %q", info.Slug)
	}
}

func TestParseFileName_NoDatePrefix(t *testing.T) {
	info, err := ParseFileName("About Me.md")
	if err != nil {
		t.Fatalf("ParseFileName: %v", err)
	}

	if !info.Date.IsZero() {
		t.Fatalf("expected zero date for unconventional name, got %v", info.Date)
	}
	if info.Slug != "about-me" {
		t.Fatalf("unexpected slug %q", info.Slug)
	}
}

func TestParseFileName_NormalisesSlug(t *testing.T) {
	info, err := ParseFileName("2024-06-01-Mixed Case Title.md")
	if err != nil {
		t.Fatalf("ParseFileName: %v", err)
	}

	if info.Slug != "mixed-case-title" {
		t.Fatalf("unexpected slug %q", info.Slug)
	}
}
