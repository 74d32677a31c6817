package markdown

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
)

// Jekyll-style post filenames encode the intended publish date and a slug.
// The store never enforces the convention; these helpers feed the index,
// which wants a stable slug and date without reading file contents.
var filenamePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(.+)$`)

// FileNameInfo carries the parts derived from a YYYY-MM-DD-slug.md filename.
type FileNameInfo struct {
	Date time.Time
	Slug string
}

// ParseFileName splits a post filename into publish date and slug. Files that
// do not follow the convention yield a zero date and a slug normalised from
// the whole base name.
func ParseFileName(path string) (FileNameInfo, error) {
	base := filepath.Base(filepath.ToSlash(path))
	ext := filepath.Ext(base)
	base = strings.TrimSuffix(base, ext)

	matches := filenamePattern.FindStringSubmatch(base)
	if matches == nil {
		normalized, err := slug.Normalize(base)
		if err != nil {
			return FileNameInfo{}, fmt.Errorf("post filename: normalise slug %q: %w", base, err)
		}
		return FileNameInfo{Slug: normalized}, nil
	}

	date, err := time.Parse("2006-01-02", matches[1])
	if err != nil {
		return FileNameInfo{}, fmt.Errorf("post filename: parse date %q: %w", matches[1], err)
	}

	normalized := matches[2]
	if !slug.IsValid(normalized) {
		normalized, err = slug.Normalize(normalized)
		if err != nil {
			return FileNameInfo{}, fmt.Errorf("post filename: normalise slug %q: %w", matches[2], err)
		}
	}

	return FileNameInfo{Date: date, Slug: normalized}, nil
}
