package assets

import (
	"errors"
	"fmt"
	"strings"
)

// Built-in asset names.
const (
	ReportTemplateName  = "report"
	PreviewTemplateName = "preview"
	DefaultStyleName    = "default"
)

var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid base path")
	ErrAssetRead        = errors.New("failed to read asset")

	// ErrPathTraversal is returned when a resolved asset, symlinks
	// included, lands outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")
)

// AssetLoader loads the report and preview templates and the preview
// stylesheet by bare name.
type AssetLoader interface {
	LoadStyle(name string) (string, error)    // styles/{name}.css
	LoadTemplate(name string) (string, error) // templates/{name}.tmpl
}

// ValidateAssetName checks that an asset name is a bare file stem.
// Separators, dots and NUL are rejected so a name cannot select another
// directory or extension.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
