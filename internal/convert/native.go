package convert

import (
	"context"
	"fmt"
	"os"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"

	"github.com/alnah/go-chm2md/internal/fileutil"
)

// NativeConverter converts HTML to GitHub-flavored Markdown in process.
type NativeConverter struct {
	conv *md.Converter
}

// NewNativeConverter creates a NativeConverter with the GitHub-flavored
// plugin set (tables, strikethrough, task lists).
func NewNativeConverter() *NativeConverter {
	conv := md.NewConverter("", true, nil)
	conv.Use(plugin.GitHubFlavored())
	return &NativeConverter{conv: conv}
}

// Name implements Converter.
func (c *NativeConverter) Name() string { return EngineNative }

// Convert writes the Markdown rendition of html to outPath.
func (c *NativeConverter) Convert(ctx context.Context, html, outPath string) error {
	if outPath == "" {
		return ErrEmptyOutputPath
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	markdown, err := c.conv.ConvertString(html)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConversion, err)
	}
	if markdown != "" {
		markdown += "\n"
	}

	if err := os.WriteFile(outPath, []byte(markdown), fileutil.FilePerm); err != nil { // #nosec G306 -- chapters are meant to be shared
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}
