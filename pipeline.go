package chm2md

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-chm2md/internal/assets"
	"github.com/alnah/go-chm2md/internal/convert"
	"github.com/alnah/go-chm2md/internal/fileutil"
	"github.com/alnah/go-chm2md/internal/pipeline"
)

// Pipeline runs one batch conversion pass over a Layout.
// Units are processed one at a time in discovery order.
type Pipeline struct {
	mode      Mode
	layout    Layout
	converter convert.Converter
	logger    logrus.FieldLogger
	assets    assets.AssetLoader
	assetPath string
	keepGoing bool
	dryRun    bool
	report    reportOptions
}

type reportOptions struct {
	title    string
	date     string
	template string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithConverter sets the HTML to Markdown converter (HTML mode only).
// Default: pandoc from PATH.
func WithConverter(c convert.Converter) Option {
	return func(p *Pipeline) { p.converter = c }
}

// WithLogger sets the progress logger. Default: discard.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithKeepGoing isolates unit failures instead of aborting the run.
func WithKeepGoing(enabled bool) Option {
	return func(p *Pipeline) { p.keepGoing = enabled }
}

// WithDryRun plans units without reading or writing chapter files.
func WithDryRun(enabled bool) Option {
	return func(p *Pipeline) { p.dryRun = enabled }
}

// WithAssetPath sets a directory holding templates/ and styles/ that take
// precedence over the embedded assets.
func WithAssetPath(path string) Option {
	return func(p *Pipeline) { p.assetPath = path }
}

// WithReportTitle sets the report heading.
func WithReportTitle(title string) Option {
	return func(p *Pipeline) { p.report.title = title }
}

// WithReportDate sets the date line of the report. Empty omits it.
func WithReportDate(date string) Option {
	return func(p *Pipeline) { p.report.date = date }
}

// WithReportTemplate selects the report template by name.
func WithReportTemplate(name string) Option {
	return func(p *Pipeline) { p.report.template = name }
}

// NewPipeline creates a Pipeline for mode over layout.
func NewPipeline(mode Mode, layout Layout, opts ...Option) (*Pipeline, error) {
	if err := layout.validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		mode:   mode,
		layout: layout,
		report: reportOptions{
			title:    "Chapters",
			template: assets.ReportTemplateName,
		},
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		p.logger = discard
	}
	if p.mode == ModeHTML && p.converter == nil {
		p.converter = convert.NewPandocConverter("", "", "")
	}

	resolver, err := assets.NewAssetResolver(p.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	p.assets = resolver

	return p, nil
}

func (l Layout) validate() error {
	switch {
	case l.InputDir == "":
		return fmt.Errorf("%w: input directory is required", ErrInvalidLayout)
	case l.OutputDir == "":
		return fmt.Errorf("%w: output directory is required", ErrInvalidLayout)
	case l.ImageDir == "":
		return fmt.Errorf("%w: image directory is required", ErrInvalidLayout)
	case len(l.Patterns) == 0:
		return fmt.Errorf("%w: at least one file pattern is required", ErrInvalidLayout)
	case l.Marker == "":
		return fmt.Errorf("%w: image marker is required", ErrInvalidLayout)
	case l.ReportName == "" || filepath.Base(l.ReportName) != l.ReportName:
		return fmt.Errorf("%w: report name %q", ErrInvalidLayout, l.ReportName)
	}
	return nil
}

// inPlace reports whether Markdown chapters are rewritten in their own directory.
func (p *Pipeline) inPlace() bool {
	return p.mode == ModeMarkdown && filepath.Clean(p.layout.InputDir) == filepath.Clean(p.layout.OutputDir)
}

// Run processes every discovered unit and writes the report.
//
// The first unit error aborts the run unless keep-going is enabled; then
// Run finishes the batch and returns the report with ErrUnitsFailed.
// A missing converter and context cancellation always abort.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	log := p.logger.WithField("mode", p.mode.String())

	names, err := Discover(p.layout.InputDir, p.layout.Patterns, p.layout.ReportName)
	if err != nil {
		return nil, err
	}
	units := planUnits(p.layout.InputDir, p.layout.OutputDir, names)
	report := &Report{Mode: p.mode, Layout: p.layout, DryRun: p.dryRun, Units: units}

	if p.inPlace() {
		if err := checkRenames(units); err != nil {
			return report, err
		}
	}

	log.WithFields(logrus.Fields{"dir": p.layout.InputDir, "units": len(units)}).Info("discovered sources")

	if p.dryRun {
		report.PoolImages = p.countPool(log)
		return report, nil
	}

	if err := os.MkdirAll(p.layout.OutputDir, fileutil.DirPerm); err != nil {
		return report, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	for _, u := range units {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		ulog := log.WithFields(logrus.Fields{"unit": u.Prefix, "file": u.SourceName()})
		if err := p.processUnit(ctx, u, ulog); err != nil {
			u.State = StateFailed
			u.Err = err
			if !p.keepGoing || isFatal(ctx, err) {
				return report, fmt.Errorf("%s: %w", u.SourceName(), err)
			}
			ulog.WithError(err).Error("chapter failed")
			continue
		}

		ulog.WithFields(logrus.Fields{
			"chapter": u.Name(),
			"images":  len(u.Images()),
			"missing": len(u.Missing),
		}).Info("chapter written")
	}

	p.tally(report, log)

	path, err := p.writeReport(report)
	if err != nil {
		return report, err
	}
	report.Path = path
	log.WithField("report", path).Info("report written")

	if failed := len(report.Failed()); failed > 0 {
		return report, fmt.Errorf("%w: %d of %d", ErrUnitsFailed, failed, len(units))
	}
	return report, nil
}

// isFatal reports errors that would fail every remaining unit too.
func isFatal(ctx context.Context, err error) bool {
	return ctx.Err() != nil ||
		errors.Is(err, ErrConverterNotFound) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// processUnit moves u through convert, partition and rewrite.
func (p *Pipeline) processUnit(ctx context.Context, u *Unit, log logrus.FieldLogger) error {
	text, err := p.transform(ctx, u)
	if err != nil {
		return err
	}
	u.State = StateConverted
	if u.Title == "" {
		u.Title = u.Slug
	}

	u.Refs = pipeline.ExtractImageRefs(text, p.layout.Marker)
	u.Scoped = pipeline.ExtractImageRefs(text, u.ImageDirName(p.layout.Marker))
	if err := p.partition(u, log); err != nil {
		return err
	}
	u.State = StateImagesPartitioned

	rewritten := len(u.Refs) > 0
	if rewritten {
		text, _ = pipeline.RewriteLinks(text, p.layout.Marker, u.Prefix)
	}

	// The converter already wrote an untouched HTML-mode chapter.
	if rewritten || p.mode == ModeMarkdown {
		if err := os.WriteFile(u.Output, []byte(text), fileutil.FilePerm); err != nil { // #nosec G306 -- chapters are meant to be shared
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}
	u.Size = int64(len(text))
	u.State = StateLinksRewritten

	if p.inPlace() && filepath.Clean(u.Source) != filepath.Clean(u.Output) {
		if err := os.Remove(u.Source); err != nil {
			return fmt.Errorf("%w: removing renamed source: %v", ErrWriteOutput, err)
		}
		log.WithField("chapter", u.Name()).Debug("renamed in place")
	}
	return nil
}

// transform returns the chapter text with pool references flattened.
// In HTML mode it also runs the converter, which writes u.Output.
func (p *Pipeline) transform(ctx context.Context, u *Unit) (string, error) {
	raw, err := os.ReadFile(u.Source) // #nosec G304 -- discovered in the input directory
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadSource, err)
	}

	flat := p.layout.Marker + "/"

	if p.mode == ModeMarkdown {
		text := string(raw)
		u.Title = pipeline.MarkdownTitle(text)
		return pipeline.FlattenPaths(text, p.layout.ParentPrefix, flat), nil
	}

	html, err := pipeline.DecodeHTML(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadSource, err)
	}
	u.Title = pipeline.HTMLTitle(html)
	html = pipeline.FlattenPaths(html, p.layout.ParentPrefix, flat)

	if err := p.converter.Convert(ctx, html, u.Output); err != nil {
		return "", err
	}

	out, err := os.ReadFile(u.Output) // #nosec G304 -- written by the converter
	if err != nil {
		return "", fmt.Errorf("%w: reading converter output: %v", ErrConversion, err)
	}
	return string(out), nil
}

// tally fills the run totals from the completed units.
func (p *Pipeline) tally(r *Report, log logrus.FieldLogger) {
	used := make(map[string]struct{})
	for _, u := range r.Chapters() {
		if u.HasImages() {
			r.ImageDirs = append(r.ImageDirs, ImageDir{
				Name:   u.ImageDirName(p.layout.Marker),
				Images: len(u.Images()),
			})
		}
		for _, ref := range u.Images() {
			used[ref] = struct{}{}
		}
		r.Missing += len(u.Missing)
	}
	r.ImagesUsed = len(used)
	r.PoolImages = p.countPool(log)
}

func (p *Pipeline) countPool(log logrus.FieldLogger) int {
	n, err := fileutil.CountFiles(p.layout.ImageDir)
	if err != nil {
		log.WithError(err).Warn("counting image pool")
	}
	return n
}
