package chm2md

import (
	"errors"

	"github.com/alnah/go-chm2md/internal/convert"
)

// Sentinel errors for pipeline operations.
var (
	// ErrConversion indicates the converter failed on one unit.
	ErrConversion = convert.ErrConversion

	// ErrConverterNotFound indicates the converter binary could not be started.
	ErrConverterNotFound = convert.ErrConverterNotFound

	ErrInvalidLayout = errors.New("invalid layout")
	ErrReadSource    = errors.New("cannot read source")
	ErrWriteOutput   = errors.New("cannot write output")
	ErrReportRender  = errors.New("report rendering failed")
	ErrPreviewRender = errors.New("preview rendering failed")

	// ErrUnitsFailed is returned by Run in keep-going mode when at least one
	// unit failed. The report is still written.
	ErrUnitsFailed = errors.New("some chapters failed")
)
