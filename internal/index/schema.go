package index

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// EnsureSchema creates the posts table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().
		Model((*Record)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("index: ensure schema: %w", err)
	}
	return nil
}
