package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-chm2md"
	"github.com/alnah/go-chm2md/internal/config"
	"github.com/alnah/go-chm2md/internal/convert"
	"github.com/alnah/go-chm2md/internal/dateutil"
	"github.com/alnah/go-chm2md/internal/hints"
)

// runConvertCmd parses flags for the html or markdown command and runs it.
func runConvertCmd(ctx context.Context, name string, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(name, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printConvertUsage(env.Stdout, name)
			return nil
		}
		return err
	}
	return runConvert(ctx, modeFor(name), positional, flags, env)
}

func modeFor(name string) chm2md.Mode {
	if name == "markdown" {
		return chm2md.ModeMarkdown
	}
	return chm2md.ModeHTML
}

// sourceFor returns the config section a mode reads.
func sourceFor(cfg *config.Config, mode chm2md.Mode) *config.SourceConfig {
	if mode == chm2md.ModeMarkdown {
		return &cfg.Markdown
	}
	return &cfg.HTML
}

// resolveConfig builds the effective configuration:
// defaults < config file < environment < flags.
func resolveConfig(configFlag string, envCfg *envConfig) (*config.Config, error) {
	name := configFlag
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
	}
	return cfg, err
}

// runConvert orchestrates one pipeline run.
func runConvert(ctx context.Context, mode chm2md.Mode, positional []string, flags *convertFlags, env *Environment) error {
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := resolveConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	src := sourceFor(cfg, mode)
	applyEnvConfig(envCfg, cfg, src)
	mergeFlags(flags, positional, cfg, src)
	if err := cfg.Validate(); err != nil {
		return err
	}

	date, err := dateutil.Resolve(cfg.Report.Date, env.Now())
	if err != nil {
		return err
	}

	layout := chm2md.Layout{
		InputDir:     src.InputDir,
		ImageDir:     src.ImageDir,
		OutputDir:    src.OutputDir,
		Patterns:     src.Patterns,
		Marker:       cfg.Images.Marker,
		ParentPrefix: cfg.Images.ParentPrefix,
		ReportName:   cfg.Report.Name,
	}

	logger := env.newLogger(flags.common.quiet, flags.common.verbose)
	opts := []chm2md.Option{
		chm2md.WithLogger(logger),
		chm2md.WithKeepGoing(flags.keepGoing),
		chm2md.WithDryRun(flags.dryRun),
		chm2md.WithAssetPath(cfg.Assets.BasePath),
		chm2md.WithReportTitle(cfg.Report.Title),
		chm2md.WithReportDate(date),
		chm2md.WithReportTemplate(cfg.Report.Template),
	}
	if mode == chm2md.ModeHTML {
		conv, err := convert.New(cfg.Converter.Engine, cfg.Converter.PandocPath, cfg.Converter.From, cfg.Converter.To)
		if err != nil {
			return err
		}
		opts = append(opts, chm2md.WithConverter(conv))
		logger.WithField("engine", conv.Name()).Debug("converter selected")
	}

	p, err := chm2md.NewPipeline(mode, layout, opts...)
	if err != nil {
		return err
	}

	report, runErr := p.Run(ctx)
	if report != nil && !flags.common.quiet {
		if report.DryRun {
			printPlan(env.Stdout, report)
		} else {
			printSummary(env.Stdout, report)
		}
		printWarnings(env.Stderr, report)
	}
	return runErr
}

// printPlan lists the chapter each source would become.
func printPlan(w io.Writer, r *chm2md.Report) {
	width := 0
	for _, u := range r.Units {
		width = max(width, runewidth.StringWidth(u.Name()))
	}
	for _, u := range r.Units {
		fmt.Fprintf(w, "%s  <- %s\n", runewidth.FillRight(u.Name(), width), u.SourceName())
	}
	fmt.Fprintf(w, "%d %s planned in %s, %d images in pool (dry run)\n",
		len(r.Units), pluralize(len(r.Units), "chapter"), r.Layout.OutputDir, r.PoolImages)
}

// printSummary prints the outcome of a completed run.
func printSummary(w io.Writer, r *chm2md.Report) {
	chapters := len(r.Chapters())
	fmt.Fprintf(w, "wrote %d %s to %s (%d with images, %d images used, %d missing)\n",
		chapters, pluralize(chapters, "chapter"), r.Layout.OutputDir,
		r.DocumentsWithImages(), r.ImagesUsed, r.Missing)
	if failed := len(r.Failed()); failed > 0 {
		fmt.Fprintf(w, "failed: %d %s\n", failed, pluralize(failed, "chapter"))
	}
	if r.Path != "" {
		fmt.Fprintf(w, "report: %s\n", r.Path)
	}
}

// printWarnings prints hints for runs that completed with gaps.
func printWarnings(w io.Writer, r *chm2md.Report) {
	if len(r.Units) == 0 {
		fmt.Fprintf(w, "warning: nothing to convert%s\n", hints.ForEmptyInput(r.Layout.InputDir, r.Layout.Patterns))
	}
	if r.Missing > 0 {
		fmt.Fprintf(w, "warning: missing images%s\n", hints.ForMissingImages(r.Missing, r.Layout.ImageDir))
	}
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}

// hintFor returns actionable hints for well-known errors.
func hintFor(err error) string {
	switch {
	case errors.Is(err, chm2md.ErrConverterNotFound):
		return hints.ForConverterNotFound()
	case errors.Is(err, chm2md.ErrWriteOutput):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}
