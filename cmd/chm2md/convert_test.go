package main

// Notes:
// - Runs use the native engine so they do not depend on a pandoc install.
//   The pandoc path is exercised only for the missing-binary error.
// - Logging output is checked loosely: logrus formatting belongs to logrus.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - CHM export fixture
// ---------------------------------------------------------------------------

func writeFixture(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// chmExport creates html/ and Pictures/ under a temp dir and returns flags
// pointing the html command at them.
func chmExport(t *testing.T) (root string, args []string) {
	t.Helper()
	root = t.TempDir()
	writeFixture(t, root, map[string]string{
		"html/intro.htm":            `<html><head><title>Introduction</title></head><body><p>Welcome.</p></body></html>`,
		"html/setup.htm":            `<html><head><title>Setup</title></head><body><p><img src="../Pictures/setup/wizard.png" alt="Wizard"></p></body></html>`,
		"Pictures/setup/wizard.png": "PNG",
		"Pictures/unused.png":       "PNG",
	})
	return root, []string{
		"--input", filepath.Join(root, "html"),
		"--images", filepath.Join(root, "Pictures"),
		"--output", filepath.Join(root, "out"),
		"--engine", "native",
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_HTML - End to end with the native engine
// ---------------------------------------------------------------------------

func TestRunMain_HTML(t *testing.T) {
	t.Parallel()

	root, flags := chmExport(t)
	env, stdout, stderr := testEnv()

	code := runMain(append([]string{"chm2md", "html"}, flags...), env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, want 0 (stderr: %s)", code, stderr)
	}

	out := filepath.Join(root, "out")
	chapter, err := os.ReadFile(filepath.Join(out, "02-setup.md"))
	if err != nil {
		t.Fatalf("reading chapter: %v", err)
	}
	if !strings.Contains(string(chapter), "02-Pictures/setup/wizard.png") {
		t.Errorf("chapter = %q, want link into 02-Pictures", chapter)
	}
	if _, err := os.Stat(filepath.Join(out, "02-Pictures", "setup", "wizard.png")); err != nil {
		t.Errorf("scoped image missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "01-Pictures")); !os.IsNotExist(err) {
		t.Errorf("01-Pictures should not exist for a chapter without images")
	}

	report, err := os.ReadFile(filepath.Join(out, "README.md"))
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if !strings.Contains(string(report), "01-intro.md") || !strings.Contains(string(report), "Introduction") {
		t.Errorf("report does not list the first chapter:\n%s", report)
	}

	if !strings.Contains(stdout.String(), "wrote 2 chapters") {
		t.Errorf("stdout = %q, want summary", stdout)
	}
	if !strings.Contains(stdout.String(), "1 images used") {
		t.Errorf("stdout = %q, want image count", stdout)
	}
}

func TestRunMain_HTML_Quiet(t *testing.T) {
	t.Parallel()

	_, flags := chmExport(t)
	env, stdout, stderr := testEnv()

	code := runMain(append([]string{"chm2md", "html", "-q"}, flags...), env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, want 0 (stderr: %s)", code, stderr)
	}
	if stdout.Len() != 0 || stderr.Len() != 0 {
		t.Errorf("quiet run printed stdout=%q stderr=%q", stdout, stderr)
	}
}

func TestRunMain_HTML_DryRun(t *testing.T) {
	t.Parallel()

	root, flags := chmExport(t)
	env, stdout, stderr := testEnv()

	code := runMain(append([]string{"chm2md", "html", "--dry-run"}, flags...), env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, want 0 (stderr: %s)", code, stderr)
	}
	for _, want := range []string{"01-intro.md  <- intro.htm", "02-setup.md  <- setup.htm", "2 images in pool"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("stdout = %q, want substring %q", stdout, want)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "out")); !os.IsNotExist(err) {
		t.Error("dry run created the output directory")
	}
}

func TestRunMain_HTML_MissingImages(t *testing.T) {
	t.Parallel()

	root, flags := chmExport(t)
	writeFixture(t, root, map[string]string{
		"html/zz.htm": `<p><img src="../Pictures/gone.png"></p>`,
	})
	env, _, stderr := testEnv()

	code := runMain(append([]string{"chm2md", "html"}, flags...), env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, want 0 (missing images are not fatal)", code)
	}
	if !strings.Contains(stderr.String(), "1 image reference(s) not found") {
		t.Errorf("stderr = %q, want missing image hint", stderr)
	}
}

func TestRunMain_HTML_EmptyInput(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	env, _, stderr := testEnv()

	code := runMain([]string{
		"chm2md", "html", filepath.Join(root, "nothing"),
		"--images", filepath.Join(root, "Pictures"),
		"-o", filepath.Join(root, "out"),
		"--engine", "native",
	}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, want 0", code)
	}
	if !strings.Contains(stderr.String(), "nothing to convert") {
		t.Errorf("stderr = %q, want empty input warning", stderr)
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Markdown - Markdown pipeline in place
// ---------------------------------------------------------------------------

func TestRunMain_Markdown(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFixture(t, root, map[string]string{
		"md/Intro.md":          "# Intro\n\n![a](Pictures/a.png)\n",
		"md/Pictures/a.png":    "PNG",
		"md/Pictures/skip.png": "PNG",
	})
	md := filepath.Join(root, "md")
	env, stdout, stderr := testEnv()

	code := runMain([]string{
		"chm2md", "markdown", md,
		"--images", filepath.Join(md, "Pictures"),
		"-o", md,
		"--report-date", "auto:iso",
	}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, want 0 (stderr: %s)", code, stderr)
	}

	if _, err := os.Stat(filepath.Join(md, "Intro.md")); !os.IsNotExist(err) {
		t.Error("source should be renamed in place")
	}
	chapter, err := os.ReadFile(filepath.Join(md, "01-intro.md"))
	if err != nil {
		t.Fatalf("reading chapter: %v", err)
	}
	if !strings.Contains(string(chapter), "(01-Pictures/a.png)") {
		t.Errorf("chapter = %q, want rewritten link", chapter)
	}

	report, err := os.ReadFile(filepath.Join(md, "README.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(report), "2025-03-09") {
		t.Errorf("report does not carry the resolved date:\n%s", report)
	}
	if !strings.Contains(stdout.String(), "wrote 1 chapter ") {
		t.Errorf("stdout = %q, want singular summary", stdout)
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Errors - Exit codes of failing runs
// ---------------------------------------------------------------------------

func TestRunMain_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		extra      []string
		wantCode   int
		wantStderr string
	}{
		{
			name:       "pandoc not installed",
			extra:      []string{"--engine", "pandoc", "--pandoc", "/nonexistent/bin/pandoc"},
			wantCode:   ExitConverter,
			wantStderr: "install pandoc",
		},
		{
			name:       "invalid engine",
			extra:      []string{"--engine", "word"},
			wantCode:   ExitUsage,
			wantStderr: "converter.engine",
		},
		{
			name:       "invalid report date",
			extra:      []string{"--report-date", "auto:[YYYY"},
			wantCode:   ExitUsage,
			wantStderr: "invalid date format",
		},
		{
			name:       "marker with separator",
			extra:      []string{"--marker", "a/b"},
			wantCode:   ExitUsage,
			wantStderr: "images.marker",
		},
		{
			name:       "config not found",
			extra:      []string{"--config", "no-such-config-name"},
			wantCode:   ExitUsage,
			wantStderr: "hint: use --config",
		},
		{
			name:       "quiet and verbose",
			extra:      []string{"-q", "-v"},
			wantCode:   ExitUsage,
			wantStderr: "mutually exclusive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, flags := chmExport(t)
			env, _, stderr := testEnv()

			args := append([]string{"chm2md", "html"}, flags...)
			code := runMain(append(args, tt.extra...), env)
			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want substring %q", stderr, tt.wantStderr)
			}
		})
	}
}

func TestRunMain_KeepGoing(t *testing.T) {
	t.Parallel()

	root, flags := chmExport(t)
	writeFixture(t, root, map[string]string{"html/broken.htm": "<p>Broken</p>"})
	// A directory in place of the chapter makes the converter write fail.
	if err := os.MkdirAll(filepath.Join(root, "out", "01-broken.md"), 0o755); err != nil {
		t.Fatal(err)
	}
	env, stdout, stderr := testEnv()

	code := runMain(append([]string{"chm2md", "html", "--keep-going"}, flags...), env)
	if code != ExitGeneral {
		t.Fatalf("runMain() = %d, want %d (stderr: %s)", code, ExitGeneral, stderr)
	}
	if !strings.Contains(stdout.String(), "failed: 1 chapter") {
		t.Errorf("stdout = %q, want failure count", stdout)
	}
	if _, err := os.Stat(filepath.Join(root, "out", "README.md")); err != nil {
		t.Errorf("report should be written with --keep-going: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestPluralize
// ---------------------------------------------------------------------------

func TestPluralize(t *testing.T) {
	t.Parallel()

	if got := pluralize(1, "chapter"); got != "chapter" {
		t.Errorf("pluralize(1) = %q", got)
	}
	if got := pluralize(0, "chapter"); got != "chapters" {
		t.Errorf("pluralize(0) = %q", got)
	}
}
