package chm2md

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/alnah/go-chm2md/internal/assets"
	"github.com/alnah/go-chm2md/internal/pipeline"
)

var _ pipeline.HTMLRenderer = (*pipeline.GoldmarkRenderer)(nil)

// Previewer renders a chapter to a standalone HTML page, the way a
// GitHub-flavored viewer would show it.
type Previewer struct {
	renderer pipeline.HTMLRenderer
	assets   assets.AssetLoader
	style    string
}

// NewPreviewer creates a Previewer. A non-empty assetPath overrides the
// embedded preview template and stylesheet.
func NewPreviewer(assetPath string) (*Previewer, error) {
	resolver, err := assets.NewAssetResolver(assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	return &Previewer{
		renderer: pipeline.NewGoldmarkRenderer(),
		assets:   resolver,
		style:    assets.DefaultStyleName,
	}, nil
}

// Render returns the HTML page for markdown. An empty title uses the
// first heading. Relative image sources are prefixed with imageBase, the
// slash-separated path from the page to the chapter's directory, so the
// page may be written elsewhere; "" keeps them as they are.
func (p *Previewer) Render(ctx context.Context, markdown, title, imageBase string) (string, error) {
	body, err := p.renderer.Render(ctx, markdown)
	if err != nil {
		return "", err
	}
	body, err = pipeline.RebaseImages(body, imageBase)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPreviewRender, err)
	}

	css, err := p.assets.LoadStyle(p.style)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPreviewRender, err)
	}
	src, err := p.assets.LoadTemplate(assets.PreviewTemplateName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPreviewRender, err)
	}
	tmpl, err := template.New(assets.PreviewTemplateName).Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPreviewRender, err)
	}

	if title == "" {
		title = pipeline.MarkdownTitle(markdown)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, struct {
		Title string
		CSS   template.CSS
		Body  template.HTML
	}{
		Title: title,
		CSS:   template.CSS(css),   // #nosec G203 -- stylesheet from embedded or operator assets
		Body:  template.HTML(body), // #nosec G203 -- chapter produced by this tool
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPreviewRender, err)
	}
	return buf.String(), nil
}
