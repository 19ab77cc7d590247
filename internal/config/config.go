package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/alnah/go-chm2md/internal/fileutil"
	"github.com/alnah/go-chm2md/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength    = 4096
	MaxMarkerLength  = 64
	MaxPatternLength = 64
	MaxTitleLength   = 200
	MaxDateLength    = 50
	MaxPatterns      = 16
)

// Supported conversion engines.
const (
	EnginePandoc = "pandoc"
	EngineNative = "native"
)

// Config holds all configuration for a conversion run.
// DefaultConfig carries the built-in layout; a config file only needs the
// fields it changes.
type Config struct {
	HTML      SourceConfig    `yaml:"html"`
	Markdown  SourceConfig    `yaml:"markdown"`
	Images    ImagesConfig    `yaml:"images"`
	Converter ConverterConfig `yaml:"converter"`
	Report    ReportConfig    `yaml:"report"`
	Assets    AssetsConfig    `yaml:"assets"`
}

// SourceConfig describes where one pipeline reads from and writes to.
type SourceConfig struct {
	InputDir  string   `yaml:"inputDir"`  // Directory scanned for chapters (non-recursive)
	ImageDir  string   `yaml:"imageDir"`  // Shared image pool
	OutputDir string   `yaml:"outputDir"` // Chapters, image dirs and report land here
	Patterns  []string `yaml:"patterns"`  // Filename globs, matched case-insensitively
}

// ImagesConfig defines how image references are recognized and rewritten.
type ImagesConfig struct {
	Marker       string `yaml:"marker"`       // Pool directory segment, e.g. "Pictures"
	ParentPrefix string `yaml:"parentPrefix"` // Parent-relative form flattened before conversion
}

// ConverterConfig selects the HTML to Markdown engine.
type ConverterConfig struct {
	Engine     string `yaml:"engine"`     // "pandoc" or "native"
	PandocPath string `yaml:"pandocPath"` // Binary name or path
	From       string `yaml:"from"`       // Pandoc input format
	To         string `yaml:"to"`         // Pandoc output format
}

// ReportConfig defines the summary document.
type ReportConfig struct {
	Name     string `yaml:"name"`     // Base name, excluded from Markdown discovery
	Title    string `yaml:"title"`    // Heading of the report
	Date     string `yaml:"date"`     // "", literal, "auto" or "auto:FORMAT"
	Template string `yaml:"template"` // Template name (see internal/assets)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// DefaultConfig returns the built-in layout of a CHM export:
// pages in chm/html referencing ../Pictures/, images in chm/Pictures.
func DefaultConfig() *Config {
	return &Config{
		HTML: SourceConfig{
			InputDir:  "chm/html",
			ImageDir:  "chm/Pictures",
			OutputDir: "markdown",
			Patterns:  []string{"*.htm", "*.html"},
		},
		Markdown: SourceConfig{
			InputDir:  "markdown",
			ImageDir:  "markdown/Pictures",
			OutputDir: "chapters",
			Patterns:  []string{"*.md"},
		},
		Images: ImagesConfig{
			Marker:       "Pictures",
			ParentPrefix: "../Pictures/",
		},
		Converter: ConverterConfig{
			Engine:     EnginePandoc,
			PandocPath: "pandoc",
			From:       "html",
			To:         "markdown",
		},
		Report: ReportConfig{
			Name:     "README.md",
			Title:    "Chapters",
			Template: "report",
		},
	}
}

// Validate checks field values and lengths.
// Called automatically by LoadConfig, and by the CLI after flags are merged.
func (c *Config) Validate() error {
	for _, src := range []struct {
		name string
		cfg  SourceConfig
	}{{"html", c.HTML}, {"markdown", c.Markdown}} {
		if err := src.cfg.validate(src.name); err != nil {
			return err
		}
	}

	if err := validateSegment("images.marker", c.Images.Marker); err != nil {
		return err
	}
	if err := validateFieldLength("images.parentPrefix", c.Images.ParentPrefix, MaxPathLength); err != nil {
		return err
	}

	switch c.Converter.Engine {
	case EnginePandoc, EngineNative:
	default:
		return fmt.Errorf("%w: converter.engine %q (must be %s or %s)", ErrInvalidField, c.Converter.Engine, EnginePandoc, EngineNative)
	}
	if c.Converter.Engine == EnginePandoc {
		if c.Converter.PandocPath == "" {
			return fmt.Errorf("%w: converter.pandocPath is required for the pandoc engine", ErrInvalidField)
		}
		if err := validateFieldLength("converter.pandocPath", c.Converter.PandocPath, MaxPathLength); err != nil {
			return err
		}
	}

	if c.Report.Name == "" || c.Report.Name != filepath.Base(c.Report.Name) || !strings.HasSuffix(c.Report.Name, ".md") {
		return fmt.Errorf("%w: report.name %q (must be a file name ending in .md)", ErrInvalidField, c.Report.Name)
	}
	if err := validateFieldLength("report.title", c.Report.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("report.date", c.Report.Date, MaxDateLength); err != nil {
		return err
	}
	if c.Report.Template != "" && strings.ContainsAny(c.Report.Template, "/\\.") {
		return fmt.Errorf("%w: report.template %q (must be a template name)", ErrInvalidField, c.Report.Template)
	}

	return validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength)
}

func (s SourceConfig) validate(section string) error {
	for _, f := range [...]struct{ field, value string }{
		{"inputDir", s.InputDir},
		{"imageDir", s.ImageDir},
		{"outputDir", s.OutputDir},
	} {
		name, value := section+"."+f.field, f.value
		if value == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidField, name)
		}
		if err := validateFieldLength(name, value, MaxPathLength); err != nil {
			return err
		}
	}

	if len(s.Patterns) == 0 || len(s.Patterns) > MaxPatterns {
		return fmt.Errorf("%w: %s.patterns must list 1 to %d globs", ErrInvalidField, section, MaxPatterns)
	}
	for i, p := range s.Patterns {
		name := fmt.Sprintf("%s.patterns[%d]", section, i)
		if err := validateFieldLength(name, p, MaxPatternLength); err != nil {
			return err
		}
		if strings.ContainsAny(p, "/\\") || !doublestar.ValidatePattern(p) {
			return fmt.Errorf("%w: %s %q (must be a file name glob)", ErrInvalidField, name, p)
		}
	}
	return nil
}

// validateSegment checks a value usable as a single path segment.
func validateSegment(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidField, name)
	}
	if err := validateFieldLength(name, value, MaxMarkerLength); err != nil {
		return err
	}
	if strings.ContainsAny(value, "/\\\x00") || value == "." || value == ".." {
		return fmt.Errorf("%w: %s %q (must be a single directory name)", ErrInvalidField, name, value)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name on top of
// DefaultConfig.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files tried for a config name, in order:
// current directory, then ~/.config/go-chm2md/, each with .yaml then .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-chm2md", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
