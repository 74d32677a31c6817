package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	posts "github.com/goliatone/go-posts"
	"github.com/goliatone/go-posts/cmd/posts/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	var (
		postsDir   = flag.String("posts-dir", "_posts", "Path to the posts content root")
		pattern    = flag.String("pattern", "*.md", "Glob pattern applied when discovering post files")
		filePath   = flag.String("file", "", "Post file to preview (relative to the content root)")
		extensions = flag.String("extensions", "", "Comma separated markdown extensions (gfm, linkify, tasklist)")
		hardWraps  = flag.Bool("hard-wraps", false, "Render single newlines as <br> elements")
		safeMode   = flag.Bool("safe", false, "Strip raw HTML from the rendered preview")
		renderHTML = flag.Bool("render-html", true, "Render the markdown body into HTML")
	)

	flag.Parse()

	if *filePath == "" {
		log.Fatalf("--file is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		PostsDir:  *postsDir,
		Pattern:   *pattern,
		Recursive: true,
		LogLevel:  "warn",
	})
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}
	defer module.Close()

	ctx := context.Background()

	post, err := module.Store.Load(ctx, *filePath, posts.LoadOptions{})
	if err != nil {
		log.Fatalf("load post: %v", err)
	}

	fmt.Fprintf(os.Stdout, "Path: %s\nTitle: %s\nChecksum: %x\n\n", post.Path, post.FrontMatter.Title, post.Checksum)

	if post.FrontMatter.Raw != nil {
		meta, err := json.MarshalIndent(post.FrontMatter.Raw, "", "  ")
		if err == nil {
			fmt.Fprintf(os.Stdout, "Front matter:\n%s\n\n", meta)
		}
	}

	if !*renderHTML {
		fmt.Fprintf(os.Stdout, "Markdown body:\n%s\n", post.Body)
		return
	}

	html, err := module.Store.RenderPost(ctx, post, posts.ParseOptions{
		Extensions: bootstrap.SplitExtensions(*extensions),
		HardWraps:  *hardWraps,
		SafeMode:   *safeMode,
	})
	if err != nil {
		log.Fatalf("render post: %v", err)
	}
	fmt.Fprintf(os.Stdout, "Rendered HTML:\n%s\n", html)
}
