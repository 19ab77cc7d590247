package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-chm2md/internal/config"
)

// ErrUsage wraps flag and argument errors.
var ErrUsage = errors.New("usage error")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// layoutFlags holds directory and image flags.
type layoutFlags struct {
	input  string
	images string
	output string
	marker string
	prefix string
}

// converterFlags holds HTML converter flags.
type converterFlags struct {
	engine string
	pandoc string
}

// reportFlags holds summary report flags.
type reportFlags struct {
	name     string
	title    string
	date     string
	template string
}

// convertFlags holds every flag of the html and markdown commands.
type convertFlags struct {
	common    commonFlags
	layout    layoutFlags
	converter converterFlags
	report    reportFlags
	assetPath string
	keepGoing bool
	dryRun    bool
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only print errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "print every copied image")
}

func addLayoutFlags(fs *flag.FlagSet, f *layoutFlags) {
	fs.StringVarP(&f.input, "input", "i", "", "directory scanned for sources")
	fs.StringVar(&f.images, "images", "", "shared image pool directory")
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVar(&f.marker, "marker", "", "image directory segment in links")
	fs.StringVar(&f.prefix, "parent-prefix", "", "parent-relative pool prefix flattened before conversion")
}

func addConverterFlags(fs *flag.FlagSet, f *converterFlags) {
	fs.StringVar(&f.engine, "engine", "", "HTML converter: pandoc or native")
	fs.StringVar(&f.pandoc, "pandoc", "", "pandoc binary name or path")
}

func addReportFlags(fs *flag.FlagSet, f *reportFlags) {
	fs.StringVar(&f.name, "report", "", "report file name")
	fs.StringVar(&f.title, "report-title", "", "report heading")
	fs.StringVar(&f.date, "report-date", "", "report date: auto, auto:FORMAT, or literal")
	fs.StringVar(&f.template, "report-template", "", "report template name")
}

// registerConvertFlags registers the flags of the html or markdown command.
// The converter flags only exist for html.
func registerConvertFlags(fs *flag.FlagSet, name string, f *convertFlags) {
	addCommonFlags(fs, &f.common)
	addLayoutFlags(fs, &f.layout)
	if name == "html" {
		addConverterFlags(fs, &f.converter)
	}
	addReportFlags(fs, &f.report)
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding embedded templates and styles")
	fs.BoolVarP(&f.keepGoing, "keep-going", "k", false, "continue after a chapter fails")
	fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "print the plan without writing")
}

// newFlagSet returns a FlagSet that reports errors instead of exiting.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	return fs
}

// parseConvertFlags parses html/markdown command flags.
// Returns flag.ErrHelp untouched so callers can print usage.
func parseConvertFlags(name string, args []string) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newFlagSet(name)
	registerConvertFlags(fs, name, f)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 1 {
		return nil, nil, fmt.Errorf("%w: expected at most one input directory, got %d", ErrUsage, fs.NArg())
	}
	if f.common.quiet && f.common.verbose {
		return nil, nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}
	return f, fs.Args(), nil
}

// mergeFlags applies set flag values on top of cfg and src.
// A positional input directory wins over --input.
func mergeFlags(f *convertFlags, positional []string, cfg *config.Config, src *config.SourceConfig) {
	setString(&src.InputDir, f.layout.input)
	if len(positional) == 1 {
		setString(&src.InputDir, positional[0])
	}
	setString(&src.ImageDir, f.layout.images)
	setString(&src.OutputDir, f.layout.output)
	setString(&cfg.Images.Marker, f.layout.marker)
	setString(&cfg.Images.ParentPrefix, f.layout.prefix)

	setString(&cfg.Converter.Engine, f.converter.engine)
	setString(&cfg.Converter.PandocPath, f.converter.pandoc)

	setString(&cfg.Report.Name, f.report.name)
	setString(&cfg.Report.Title, f.report.title)
	setString(&cfg.Report.Date, f.report.date)
	setString(&cfg.Report.Template, f.report.template)

	setString(&cfg.Assets.BasePath, f.assetPath)
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
