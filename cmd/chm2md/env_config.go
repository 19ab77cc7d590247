package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-chm2md/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // CHM2MD_CONFIG: config file name or path
	Engine     string // CHM2MD_ENGINE: pandoc or native
	PandocPath string // CHM2MD_PANDOC: pandoc binary

	// Apply to the section of the running command.
	InputDir  string // CHM2MD_INPUT_DIR
	OutputDir string // CHM2MD_OUTPUT_DIR
	ImageDir  string // CHM2MD_IMAGE_DIR

	ReportDate string // CHM2MD_REPORT_DATE
}

// knownEnvVars lists valid CHM2MD_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"CHM2MD_CONFIG":      true,
	"CHM2MD_ENGINE":      true,
	"CHM2MD_PANDOC":      true,
	"CHM2MD_INPUT_DIR":   true,
	"CHM2MD_OUTPUT_DIR":  true,
	"CHM2MD_IMAGE_DIR":   true,
	"CHM2MD_REPORT_DATE": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath: os.Getenv("CHM2MD_CONFIG"),
		Engine:     os.Getenv("CHM2MD_ENGINE"),
		PandocPath: os.Getenv("CHM2MD_PANDOC"),
		InputDir:   os.Getenv("CHM2MD_INPUT_DIR"),
		OutputDir:  os.Getenv("CHM2MD_OUTPUT_DIR"),
		ImageDir:   os.Getenv("CHM2MD_IMAGE_DIR"),
		ReportDate: os.Getenv("CHM2MD_REPORT_DATE"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized CHM2MD_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "CHM2MD_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies set environment values on top of the loaded config.
// The config always carries defaults, so a set variable wins over the file:
// CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config, src *config.SourceConfig) {
	if env.Engine != "" {
		cfg.Converter.Engine = env.Engine
	}
	if env.PandocPath != "" {
		cfg.Converter.PandocPath = env.PandocPath
	}
	if env.ReportDate != "" {
		cfg.Report.Date = env.ReportDate
	}

	if src == nil {
		return
	}
	if env.InputDir != "" {
		src.InputDir = env.InputDir
	}
	if env.OutputDir != "" {
		src.OutputDir = env.OutputDir
	}
	if env.ImageDir != "" {
		src.ImageDir = env.ImageDir
	}
}
