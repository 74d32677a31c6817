package markdown

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedFrontMatter marks files whose leading delimiter is
	// unterminated or whose front matter is not a valid key-value mapping.
	ErrMalformedFrontMatter = errors.New("posts: malformed front matter")
	// ErrMissingRequiredField marks posts that parsed cleanly but lack a
	// required front matter field.
	ErrMissingRequiredField = errors.New("posts: missing required field")
	// ErrTypeMismatch marks front matter values whose shape does not match
	// the per-field schema. Values are never coerced silently.
	ErrTypeMismatch = errors.New("posts: front matter type mismatch")
)

// MalformedFrontMatterError captures the underlying decode failure for a file.
type MalformedFrontMatterError struct {
	Path string
	Err  error
}

func (e *MalformedFrontMatterError) Error() string {
	if e == nil {
		return ErrMalformedFrontMatter.Error()
	}
	msg := ErrMalformedFrontMatter.Error()
	if path := strings.TrimSpace(e.Path); path != "" {
		msg = fmt.Sprintf("%s: file=%s", msg, path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *MalformedFrontMatterError) Unwrap() error {
	return ErrMalformedFrontMatter
}

// MissingRequiredFieldError names the absent field so tooling can surface it.
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	if e == nil {
		return ErrMissingRequiredField.Error()
	}
	return fmt.Sprintf("%s: field=%s", ErrMissingRequiredField.Error(), e.Field)
}

func (e *MissingRequiredFieldError) Unwrap() error {
	return ErrMissingRequiredField
}

// TypeMismatchError names the offending field along with the expected and
// observed value shapes.
type TypeMismatchError struct {
	Field string
	Want  string
	Got   string
}

func (e *TypeMismatchError) Error() string {
	if e == nil {
		return ErrTypeMismatch.Error()
	}
	return fmt.Sprintf("%s: field=%s want=%s got=%s", ErrTypeMismatch.Error(), e.Field, e.Want, e.Got)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}
