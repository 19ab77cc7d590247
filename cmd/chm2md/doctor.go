package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-chm2md"
	"github.com/alnah/go-chm2md/internal/config"
	"github.com/alnah/go-chm2md/internal/convert"
	"github.com/alnah/go-chm2md/internal/fileutil"
	"github.com/alnah/go-chm2md/internal/yamlutil"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string         `json:"status"` // "ready", "warnings", "errors"
	Converter converterInfo  `json:"converter"`
	Sources   []sourceInfo   `json:"sources"`
	System    systemInfo     `json:"system"`
	Config    *config.Config `json:"config"`
	Warnings  []string       `json:"warnings,omitempty"`
	Errors    []string       `json:"errors,omitempty"`
}

// converterInfo holds HTML converter detection results.
type converterInfo struct {
	Engine  string `json:"engine"`
	Path    string `json:"path,omitempty"`
	Found   bool   `json:"found"`
	Version string `json:"version,omitempty"`
}

// sourceInfo describes one pipeline's directories.
type sourceInfo struct {
	Command    string `json:"command"`
	InputDir   string `json:"input_dir"`
	InputFound bool   `json:"input_found"`
	Sources    int    `json:"sources"`
	ImageDir   string `json:"image_dir"`
	PoolFound  bool   `json:"pool_found"`
	PoolImages int    `json:"pool_images"`
}

// systemInfo holds system check results.
type systemInfo struct {
	OS           string `json:"os"`
	Arch         string `json:"arch"`
	TempWritable bool   `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	var configName string
	var jsonOutput bool
	fs := newFlagSet("doctor")
	fs.StringVarP(&configName, "config", "c", "", "config file name or path")
	fs.BoolVar(&jsonOutput, "json", false, "print results as JSON")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printDoctorUsage(env.Stdout)
			return ExitSuccess
		}
		return reportError(env, fmt.Errorf("%w: %v", ErrUsage, err))
	}

	result := runDoctor(ctx, configName)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks against the effective config.
func runDoctor(ctx context.Context, configName string) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		System: systemInfo{OS: runtime.GOOS, Arch: runtime.GOARCH},
	}

	envCfg := loadEnvConfig()
	cfg, err := resolveConfig(configName, envCfg)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
		cfg = config.DefaultConfig()
	}
	applyEnvConfig(envCfg, cfg, nil)
	result.Config = cfg

	checkConverter(ctx, result, cfg)
	checkSource(result, "html", cfg.HTML, cfg.Report.Name)
	checkSource(result, "markdown", cfg.Markdown, cfg.Report.Name)
	checkSystem(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkConverter verifies the configured HTML converter can run.
func checkConverter(ctx context.Context, result *doctorResult, cfg *config.Config) {
	result.Converter.Engine = cfg.Converter.Engine

	switch cfg.Converter.Engine {
	case convert.EngineNative:
		result.Converter.Found = true
		result.Converter.Version = "built in"
	case convert.EnginePandoc:
		result.Converter.Path = cfg.Converter.PandocPath
		version, err := convert.NewPandocConverter(cfg.Converter.PandocPath, "", "").Version(ctx)
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("pandoc not usable at %q: %v. Install pandoc, set CHM2MD_PANDOC, or use --engine native", cfg.Converter.PandocPath, err))
			return
		}
		result.Converter.Found = true
		result.Converter.Version = version
	default:
		result.Errors = append(result.Errors, fmt.Sprintf("Unknown converter engine %q", cfg.Converter.Engine))
	}
}

// checkSource reports what a pipeline would find. Missing directories are
// warnings: only one of the two pipelines is usually in use.
func checkSource(result *doctorResult, command string, src config.SourceConfig, reportName string) {
	info := sourceInfo{Command: command, InputDir: src.InputDir, ImageDir: src.ImageDir}

	if fileutil.DirExists(src.InputDir) {
		info.InputFound = true
		names, err := chm2md.Discover(src.InputDir, src.Patterns, reportName)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", command, err))
		}
		info.Sources = len(names)
		if err == nil && info.Sources == 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: no sources in %s", command, src.InputDir))
		}
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s: input directory %s not found", command, src.InputDir))
	}

	if fileutil.DirExists(src.ImageDir) {
		info.PoolFound = true
		n, err := fileutil.CountFiles(src.ImageDir)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: counting pool: %v", command, err))
		}
		info.PoolImages = n
	} else if info.InputFound {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s: image pool %s not found", command, src.ImageDir))
	}

	result.Sources = append(result.Sources, info)
}

// checkSystem verifies the temp directory used by the pandoc engine.
func checkSystem(result *doctorResult) {
	_, cleanup, err := fileutil.WriteTempFile("test", "html")
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Temp directory not writable: %v", err))
		return
	}
	cleanup()
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "chm2md doctor")
	fmt.Fprintln(w)

	// Converter section
	fmt.Fprintln(w, "Converter")
	if r.Converter.Found {
		fmt.Fprintf(w, "  [OK] Engine: %s\n", r.Converter.Engine)
		if r.Converter.Path != "" {
			fmt.Fprintf(w, "  [OK] Binary: %s\n", r.Converter.Path)
		}
		fmt.Fprintf(w, "  [OK] Version: %s\n", r.Converter.Version)
	} else {
		fmt.Fprintf(w, "  [ERROR] Engine %s not usable\n", r.Converter.Engine)
	}
	fmt.Fprintln(w)

	// Sources section
	fmt.Fprintln(w, "Sources")
	for _, s := range r.Sources {
		if s.InputFound {
			fmt.Fprintf(w, "  [OK] %s: %d in %s\n", s.Command, s.Sources, s.InputDir)
		} else {
			fmt.Fprintf(w, "  [--] %s: %s not found\n", s.Command, s.InputDir)
		}
		if s.PoolFound {
			fmt.Fprintf(w, "  [OK] %s pool: %d images in %s\n", s.Command, s.PoolImages, s.ImageDir)
		}
	}
	fmt.Fprintln(w)

	// System section
	fmt.Fprintln(w, "System")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.System.OS, r.System.Arch)
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	// Effective configuration
	if r.Config != nil {
		if data, err := yamlutil.Encode(r.Config); err == nil {
			fmt.Fprintln(w, "Configuration")
			fmt.Fprintln(w, indent(string(data), "  "))
		}
	}

	// Warnings
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	// Errors
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	// Final status
	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

// indent prefixes every non-empty line of s.
func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
