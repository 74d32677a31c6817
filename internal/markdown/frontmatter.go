package markdown

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

const frontMatterDelimiter = "---"

const (
	fieldLayout     = "layout"
	fieldTitle      = "title"
	fieldAuthor     = "author"
	fieldCategories = "categories"
	fieldImage      = "image"
	fieldFeatured   = "featured"
	fieldHidden     = "hidden"
)

// requiredFields lists the keys a post must carry to be publishable, in the
// order they are reported when absent.
var requiredFields = []string{fieldLayout, fieldTitle}

// ParseFrontMatter extracts metadata and markdown body content from the
// provided source bytes. The front matter is decoded into a generic mapping
// first and then validated against the per-field schema, so wrong value
// shapes surface as TypeMismatchError instead of being coerced.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var raw map[string]any

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &raw)
	if err != nil {
		return interfaces.FrontMatter{}, nil, &MalformedFrontMatterError{Err: err}
	}

	meta, err := decodeFrontMatter(raw)
	if err != nil {
		return interfaces.FrontMatter{}, nil, err
	}

	return meta, body, nil
}

// BuildPost assembles an interfaces.Post from the supplied file path, raw
// content, and modification time. The checksum covers the original bytes so
// sync workflows can detect edits cheaply.
func BuildPost(path string, source []byte, modified time.Time) (*interfaces.Post, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(source)

	return &interfaces.Post{
		Path:         path,
		FrontMatter:  meta,
		Body:         body,
		LastModified: modified,
		Checksum:     sum[:],
	}, nil
}

// EncodeFrontMatter re-serializes front matter into a delimited block. Known
// fields keep a stable order; custom keys follow inline. Optional fields are
// omitted when they hold their zero value so a parse/encode round trip
// preserves the original required fields without inventing new ones.
func EncodeFrontMatter(meta interfaces.FrontMatter) ([]byte, error) {
	envelope := encodeEnvelope{
		Layout:     meta.Layout,
		Title:      meta.Title,
		Author:     meta.Author,
		Categories: meta.Categories,
		Image:      meta.Image,
		Featured:   meta.Featured,
		Hidden:     meta.Hidden,
		Custom:     meta.Custom,
	}

	encoded, err := yaml.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(frontMatterDelimiter)
	buf.WriteByte('\n')
	buf.Write(encoded)
	buf.WriteString(frontMatterDelimiter)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

type encodeEnvelope struct {
	Layout     string         `yaml:"layout"`
	Title      string         `yaml:"title"`
	Author     string         `yaml:"author,omitempty"`
	Categories []string       `yaml:"categories,omitempty,flow"`
	Image      string         `yaml:"image,omitempty"`
	Featured   bool           `yaml:"featured,omitempty"`
	Hidden     bool           `yaml:"hidden,omitempty"`
	Custom     map[string]any `yaml:",inline"`
}

func decodeFrontMatter(raw map[string]any) (interfaces.FrontMatter, error) {
	meta := interfaces.FrontMatter{
		Custom: map[string]any{},
		Raw:    cloneMap(raw),
	}

	// Presence is checked before value shapes so a post missing layout or
	// title always reports the absent field, whatever else is wrong with it.
	for _, field := range requiredFields {
		if _, ok := raw[field]; !ok {
			return interfaces.FrontMatter{}, &MissingRequiredFieldError{Field: field}
		}
	}

	var err error
	if meta.Layout, err = stringField(raw, fieldLayout); err != nil {
		return interfaces.FrontMatter{}, err
	}
	if meta.Title, err = stringField(raw, fieldTitle); err != nil {
		return interfaces.FrontMatter{}, err
	}
	if meta.Author, err = stringField(raw, fieldAuthor); err != nil {
		return interfaces.FrontMatter{}, err
	}
	if meta.Categories, err = stringSliceField(raw, fieldCategories); err != nil {
		return interfaces.FrontMatter{}, err
	}
	if meta.Image, err = stringField(raw, fieldImage); err != nil {
		return interfaces.FrontMatter{}, err
	}
	if meta.Featured, err = boolField(raw, fieldFeatured); err != nil {
		return interfaces.FrontMatter{}, err
	}
	if meta.Hidden, err = boolField(raw, fieldHidden); err != nil {
		return interfaces.FrontMatter{}, err
	}

	for key, value := range raw {
		switch key {
		case fieldLayout, fieldTitle, fieldAuthor, fieldCategories, fieldImage, fieldFeatured, fieldHidden:
		default:
			meta.Custom[key] = value
		}
	}

	return meta, nil
}

func stringField(raw map[string]any, field string) (string, error) {
	value, ok := raw[field]
	if !ok || value == nil {
		return "", nil
	}
	str, ok := value.(string)
	if !ok {
		return "", &TypeMismatchError{Field: field, Want: "string", Got: shapeOf(value)}
	}
	return str, nil
}

func stringSliceField(raw map[string]any, field string) ([]string, error) {
	value, ok := raw[field]
	if !ok || value == nil {
		return nil, nil
	}
	seq, ok := value.([]any)
	if !ok {
		return nil, &TypeMismatchError{Field: field, Want: "sequence of strings", Got: shapeOf(value)}
	}
	out := make([]string, 0, len(seq))
	for _, item := range seq {
		str, ok := item.(string)
		if !ok {
			return nil, &TypeMismatchError{Field: field, Want: "sequence of strings", Got: "sequence containing " + shapeOf(item)}
		}
		out = append(out, str)
	}
	return out, nil
}

func boolField(raw map[string]any, field string) (bool, error) {
	value, ok := raw[field]
	if !ok || value == nil {
		return false, nil
	}
	flag, ok := value.(bool)
	if !ok {
		return false, &TypeMismatchError{Field: field, Want: "boolean", Got: shapeOf(value)}
	}
	return flag, nil
}

// shapeOf reports a YAML-flavoured description of the decoded value so
// mismatch errors read in the author's vocabulary rather than Go's.
func shapeOf(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, uint64:
		return "integer"
	case float64:
		return "float"
	case []any:
		return "sequence"
	case map[string]any, map[any]any:
		return "mapping"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
