package chm2md

import (
	"context"
	"strings"
	"testing"
)

func TestPreviewer_Render(t *testing.T) {
	t.Parallel()

	p, err := NewPreviewer("")
	if err != nil {
		t.Fatalf("NewPreviewer() error = %v", err)
	}

	got, err := p.Render(context.Background(), "# Setup & Go\n\n![d](02-Pictures/d.png)\n", "", "")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Setup &amp; Go</title>",
		`<img src="02-Pictures/d.png" alt="d"`,
		"<style>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() missing %q:\n%s", want, got)
		}
	}
}

func TestPreviewer_Render_ExplicitTitle(t *testing.T) {
	t.Parallel()

	p, _ := NewPreviewer("")
	got, err := p.Render(context.Background(), "text only\n", "03-notes.md", "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "<title>03-notes.md</title>") {
		t.Errorf("Render() title not used:\n%s", got)
	}
}

func TestPreviewer_Render_ImageBase(t *testing.T) {
	t.Parallel()

	p, _ := NewPreviewer("")
	got, err := p.Render(context.Background(), "# Setup\n\n![d](02-Pictures/d.png)\n[next](03-run.md)\n", "", "../book")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `src="../book/02-Pictures/d.png"`) {
		t.Errorf("Render() image not rebased:\n%s", got)
	}
	if !strings.Contains(got, `href="03-run.md"`) {
		t.Errorf("Render() rewrote a link:\n%s", got)
	}
}
