// Package postscmd exposes the post store workflows as go-command messages
// so hosts can dispatch lint and sync runs through a command bus.
package postscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	lintDirectoryMessageType = "posts.lint_directory"
	syncDirectoryMessageType = "posts.sync_directory"
)

// LintDirectoryCommand triggers a filesystem walk that parses every post
// under Directory and reports the invalid ones without persisting anything.
type LintDirectoryCommand struct {
	// Directory selects the path (relative to the content root) to lint.
	Directory string `json:"directory"`
	// Pattern overrides the glob applied when discovering post files.
	Pattern string `json:"pattern,omitempty"`
	// Recursive toggles traversal of sub-directories.
	Recursive *bool `json:"recursive,omitempty"`
}

// Type implements command.Message.
func (LintDirectoryCommand) Type() string { return lintDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd LintDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("posts.lint_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

// SyncDirectoryCommand parses every post under Directory and reconciles the
// results with the local index.
type SyncDirectoryCommand struct {
	// Directory selects the path (relative to the content root) to sync.
	Directory string `json:"directory"`
	// Pattern overrides the glob applied when discovering post files.
	Pattern string `json:"pattern,omitempty"`
	// Recursive toggles traversal of sub-directories.
	Recursive *bool `json:"recursive,omitempty"`
	// DryRun collects the would-be changes without touching the index.
	DryRun bool `json:"dry_run,omitempty"`
	// DeleteOrphaned removes index records without matching files when true.
	DeleteOrphaned bool `json:"delete_orphaned,omitempty"`
}

// Type implements command.Message.
func (SyncDirectoryCommand) Type() string { return syncDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd SyncDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("posts.sync_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
