package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	posts "github.com/goliatone/go-posts"
	"github.com/goliatone/go-posts/cmd/posts/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runLint(os.Args[1:]); err != nil {
		log.Fatalf("posts lint: %v", err)
	}
}

func runLint(args []string) error {
	fs := flag.NewFlagSet("posts-lint", flag.ExitOnError)
	postsDir := fs.String("posts-dir", "_posts", "Path to the posts content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering post files")
	recursive := fs.Bool("recursive", true, "Descend into sub-directories of the content root")
	directory := fs.String("directory", ".", "Directory to lint, relative to the content root")
	logLevel := fs.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	logFormat := fs.String("log-format", "console", "Log format (json, console, pretty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		PostsDir:  *postsDir,
		Pattern:   *pattern,
		Recursive: *recursive,
		LogLevel:  *logLevel,
		LogFormat: *logFormat,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	report, err := module.Store.Lint(context.Background(), *directory, posts.LoadOptions{})
	if err != nil {
		return fmt.Errorf("lint posts: %w", err)
	}

	for _, issue := range report.Invalid {
		fmt.Fprintf(os.Stderr, "%s: %v\n", issue.Path, issue.Err)
	}
	fmt.Fprintf(os.Stdout, "%d valid, %d invalid\n", len(report.Valid), len(report.Invalid))

	if len(report.Invalid) > 0 {
		return fmt.Errorf("%d posts failed validation", len(report.Invalid))
	}
	return nil
}
