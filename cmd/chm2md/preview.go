package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-chm2md"
	"github.com/alnah/go-chm2md/internal/fileutil"
)

// previewFlags holds flags of the preview command.
type previewFlags struct {
	output    string
	title     string
	assetPath string
}

// runPreviewCmd renders one chapter to a standalone HTML page.
func runPreviewCmd(ctx context.Context, args []string, env *Environment) error {
	f := &previewFlags{}
	fs := newFlagSet("preview")
	fs.StringVarP(&f.output, "output", "o", "", "HTML file (default: next to the chapter)")
	fs.StringVar(&f.title, "title", "", "page title (default: first heading)")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding embedded templates and styles")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printPreviewUsage(env.Stdout)
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: preview takes exactly one chapter file", ErrUsage)
	}

	chapter := fs.Arg(0)
	out := f.output
	if out == "" {
		out = strings.TrimSuffix(chapter, filepath.Ext(chapter)) + ".html"
	}

	data, err := os.ReadFile(chapter) // #nosec G304 -- user-provided chapter path
	if err != nil {
		return fmt.Errorf("%w: %v", chm2md.ErrReadSource, err)
	}

	p, err := chm2md.NewPreviewer(f.assetPath)
	if err != nil {
		return err
	}
	page, err := p.Render(ctx, string(data), f.title, imageBase(chapter, out))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(out), fileutil.DirPerm); err != nil {
		return fmt.Errorf("%w: %v", chm2md.ErrWriteOutput, err)
	}
	if err := os.WriteFile(out, []byte(page), fileutil.FilePerm); err != nil { // #nosec G306 -- preview is meant to be opened
		return fmt.Errorf("%w: %v", chm2md.ErrWriteOutput, err)
	}
	fmt.Fprintf(env.Stdout, "preview: %s\n", out)
	return nil
}

// imageBase returns the slash-separated path from the page's directory to
// the chapter's, "" when both are the same or no relative path exists.
func imageBase(chapter, page string) string {
	from, err := filepath.Abs(filepath.Dir(page))
	if err != nil {
		return ""
	}
	to, err := filepath.Abs(filepath.Dir(chapter))
	if err != nil {
		return ""
	}
	rel, err := filepath.Rel(from, to)
	if err != nil || rel == "." {
		return ""
	}
	return filepath.ToSlash(rel)
}
