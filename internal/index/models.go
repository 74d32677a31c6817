// Package index maintains a local SQLite catalogue of parsed posts so
// authoring tools can query the blog without re-reading every file. The
// filesystem stays the source of truth; sync reconciles the two.
package index

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record is the persisted projection of a parsed post.
type Record struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID         uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Path       string    `bun:"path,notnull,unique" json:"path"`
	Slug       string    `bun:"slug,notnull" json:"slug"`
	Layout     string    `bun:"layout,notnull" json:"layout"`
	Title      string    `bun:"title,notnull" json:"title"`
	Author     string    `bun:"author" json:"author,omitempty"`
	// Categories are stored JSON-encoded, SQLite has no array type.
	Categories []string  `bun:"categories,type:text" json:"categories,omitempty"`
	Image      string    `bun:"image" json:"image,omitempty"`
	Featured   bool      `bun:"featured,notnull,default:false" json:"featured"`
	Hidden     bool      `bun:"hidden,notnull,default:false" json:"hidden"`
	// PublishedAt is derived from the YYYY-MM-DD filename prefix when present.
	PublishedAt time.Time `bun:"published_at,nullzero" json:"published_at,omitempty"`
	// Checksum is the hex SHA-256 of the source file used for change detection.
	Checksum  string    `bun:"checksum,notnull" json:"checksum"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
