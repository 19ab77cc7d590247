package main

import (
	"errors"
	"os"

	"github.com/alnah/go-chm2md"
	"github.com/alnah/go-chm2md/internal/config"
	"github.com/alnah/go-chm2md/internal/dateutil"
)

// Exit codes for the chm2md CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess   = 0 // Every chapter written
	ExitGeneral   = 1 // Unexpected error, interruption, or failed chapters with --keep-going
	ExitUsage     = 2 // Invalid flags, config, or templates
	ExitIO        = 3 // Source unreadable, output not writable
	ExitConverter = 4 // Converter missing or failing
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Converter errors (exit 4)
	if errors.Is(err, chm2md.ErrConverterNotFound) ||
		errors.Is(err, chm2md.ErrConversion) {
		return ExitConverter
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, chm2md.ErrReadSource) ||
		errors.Is(err, chm2md.ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, chm2md.ErrInvalidLayout) ||
		errors.Is(err, chm2md.ErrReportRender) ||
		errors.Is(err, chm2md.ErrPreviewRender) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
