// Package markdown implements the filesystem post store: discovery of
// markdown content files, front matter extraction and schema validation, and
// goldmark-backed preview rendering.
package markdown
