package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-posts/cmd/posts/internal/bootstrap"
	postscmd "github.com/goliatone/go-posts/internal/commands/posts"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runSync(os.Args[1:]); err != nil {
		log.Fatalf("posts sync: %v", err)
	}
}

func runSync(args []string) error {
	fs := flag.NewFlagSet("posts-sync", flag.ExitOnError)
	postsDir := fs.String("posts-dir", "_posts", "Path to the posts content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering post files")
	recursive := fs.Bool("recursive", true, "Descend into sub-directories of the content root")
	directory := fs.String("directory", ".", "Directory to sync, relative to the content root")
	indexPath := fs.String("index", "posts.db", "Path to the SQLite index database")
	dryRun := fs.Bool("dry-run", false, "Preview changes without touching the index")
	deleteOrphaned := fs.Bool("delete-orphaned", false, "Remove index records whose source file disappeared")
	logLevel := fs.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	logFormat := fs.String("log-format", "console", "Log format (json, console, pretty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		PostsDir:  *postsDir,
		Pattern:   *pattern,
		Recursive: *recursive,
		IndexPath: *indexPath,
		LogLevel:  *logLevel,
		LogFormat: *logFormat,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	handler := postscmd.NewSyncDirectoryHandler(module.Store, module.Store, module.Logger)
	cmd := postscmd.SyncDirectoryCommand{
		Directory:      *directory,
		Recursive:      recursive,
		DryRun:         *dryRun,
		DeleteOrphaned: *deleteOrphaned,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute sync command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "posts sync command executed successfully")

	return nil
}
