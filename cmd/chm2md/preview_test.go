package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunMain_Preview - Chapter to HTML page
// ---------------------------------------------------------------------------

func TestRunMain_Preview(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	chapter := filepath.Join(dir, "02-setup.md")
	if err := os.WriteFile(chapter, []byte("# Setup\n\n![Wizard](02-Pictures/wizard.png)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	env, stdout, stderr := testEnv()

	code := runMain([]string{"chm2md", "preview", chapter}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, want 0 (stderr: %s)", code, stderr)
	}

	page, err := os.ReadFile(filepath.Join(dir, "02-setup.html"))
	if err != nil {
		t.Fatalf("reading preview: %v", err)
	}
	for _, want := range []string{"<title>Setup</title>", `src="02-Pictures/wizard.png"`} {
		if !strings.Contains(string(page), want) {
			t.Errorf("preview missing %q", want)
		}
	}
	if !strings.Contains(stdout.String(), "02-setup.html") {
		t.Errorf("stdout = %q, want output path", stdout)
	}
}

func TestRunMain_Preview_Output(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	chapter := filepath.Join(dir, "01-intro.md")
	if err := os.WriteFile(chapter, []byte("Plain text\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "page.html")
	env, _, stderr := testEnv()

	code := runMain([]string{"chm2md", "preview", chapter, "-o", out, "--title", "Intro"}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, want 0 (stderr: %s)", code, stderr)
	}
	page, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page), "<title>Intro</title>") {
		t.Errorf("preview title not applied:\n%s", page)
	}
}

func TestRunMain_Preview_OtherDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	chapter := filepath.Join(dir, "book", "02-setup.md")
	if err := os.MkdirAll(filepath.Dir(chapter), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(chapter, []byte("# Setup\n\n![Wizard](02-Pictures/wizard.png)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "site", "x.html")
	env, _, stderr := testEnv()

	code := runMain([]string{"chm2md", "preview", chapter, "-o", out}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, want 0 (stderr: %s)", code, stderr)
	}
	page, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page), `src="../book/02-Pictures/wizard.png"`) {
		t.Errorf("image not resolved against the chapter directory:\n%s", page)
	}
}

func TestImageBase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		chapter, page, want string
	}{
		{"book/01-a.md", "book/01-a.html", ""},
		{"book/01-a.md", "site/01-a.html", "../book"},
		{"01-a.md", "out/deep/a.html", "../.."},
		{"book/ch/01-a.md", "book/a.html", "ch"},
	}
	for _, tt := range tests {
		if got := imageBase(tt.chapter, tt.page); got != tt.want {
			t.Errorf("imageBase(%q, %q) = %q, want %q", tt.chapter, tt.page, got, tt.want)
		}
	}
}

func TestRunMain_Preview_MissingChapter(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv()
	code := runMain([]string{"chm2md", "preview", filepath.Join(t.TempDir(), "nope.md")}, env)
	if code != ExitIO {
		t.Errorf("runMain() = %d, want %d", code, ExitIO)
	}
}
