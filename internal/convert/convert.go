package convert

import (
	"context"
	"errors"
)

// Sentinel errors for conversion failures.
var (
	ErrConversion        = errors.New("conversion failed")
	ErrConverterNotFound = errors.New("converter not found")
	ErrEmptyOutputPath   = errors.New("output path cannot be empty")
)

// Engine names.
const (
	EnginePandoc = "pandoc"
	EngineNative = "native"
)

// Converter writes the Markdown rendition of html to outPath.
// The parent directory of outPath must exist.
type Converter interface {
	Convert(ctx context.Context, html, outPath string) error
	Name() string
}
