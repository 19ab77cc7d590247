package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name     string
		input    string
		contains string
		wantErr  error
	}{
		{name: "report template", input: ReportTemplateName, contains: "documents with images"},
		{name: "preview template", input: PreviewTemplateName, contains: "<!DOCTYPE html>"},
		{name: "unknown template", input: "nonexistent", wantErr: ErrTemplateNotFound},
		{name: "traversal rejected", input: "../report", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadTemplate(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadTemplate(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadTemplate(%q) unexpected error: %v", tt.input, err)
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("LoadTemplate(%q) should contain %q", tt.input, tt.contains)
			}
		})
	}
}

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	css, err := loader.LoadStyle(DefaultStyleName)
	if err != nil {
		t.Fatalf("LoadStyle(default) error = %v", err)
	}
	if !strings.Contains(css, "img") {
		t.Error("default style should style images")
	}

	if _, err := loader.LoadStyle("technical"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(technical) error = %v, want ErrStyleNotFound", err)
	}
}
