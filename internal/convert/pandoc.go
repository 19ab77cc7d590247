package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"

	"github.com/alnah/go-chm2md/internal/fileutil"
	"github.com/alnah/go-chm2md/internal/process"
)

// Default pandoc invocation.
const (
	DefaultPandocPath = "pandoc"
	DefaultFrom       = "html"
	DefaultTo         = "markdown"
)

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
// The child runs in its own process group, which is killed when ctx is canceled.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- converter binary is operator-configured
	process.Isolate(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// PandocConverter converts HTML to Markdown by invoking the pandoc CLI.
type PandocConverter struct {
	Runner CommandRunner
	Path   string // Binary name or path
	From   string // Input format
	To     string // Output format
}

// NewPandocConverter creates a PandocConverter with a real command runner.
// Empty arguments take the defaults: "pandoc", "html", "markdown".
func NewPandocConverter(path, from, to string) *PandocConverter {
	return &PandocConverter{
		Runner: &ExecRunner{},
		Path:   orDefault(path, DefaultPandocPath),
		From:   orDefault(from, DefaultFrom),
		To:     orDefault(to, DefaultTo),
	}
}

// Name implements Converter.
func (c *PandocConverter) Name() string { return EnginePandoc }

// Convert writes html to a temp file and runs
//
//	pandoc <tmp> -f html -t markdown --wrap=none -o <outPath>
//
// The temp file is removed whether or not pandoc succeeds.
func (c *PandocConverter) Convert(ctx context.Context, html, outPath string) error {
	if outPath == "" {
		return ErrEmptyOutputPath
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(html, "html")
	if err != nil {
		return err
	}
	defer cleanup()

	args := []string{tmpPath, "-f", c.From, "-t", c.To, "--wrap=none", "-o", outPath}
	_, stderr, err := c.Runner.Run(ctx, c.Path, args...)
	if err != nil {
		return c.classify(ctx, err, stderr)
	}
	return nil
}

// Version runs "pandoc --version" and returns its first line.
func (c *PandocConverter) Version(ctx context.Context) (string, error) {
	stdout, stderr, err := c.Runner.Run(ctx, c.Path, "--version")
	if err != nil {
		return "", c.classify(ctx, err, stderr)
	}
	first, _, _ := strings.Cut(stdout, "\n")
	return strings.TrimSpace(first), nil
}

// classify maps a runner error to a sentinel.
func (c *PandocConverter) classify(ctx context.Context, err error, stderr string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s interrupted: %w", c.Path, ctxErr)
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrConverterNotFound, c.Path)
	}
	if msg := strings.TrimSpace(stderr); msg != "" {
		return fmt.Errorf("%w: %s: %s: %v", ErrConversion, c.Path, msg, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrConversion, c.Path, err)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
