package dateutil

import (
	"errors"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestLayout - Token format conversion
// ---------------------------------------------------------------------------

func TestLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format  string
		want    string
		wantErr bool
	}{
		{"YYYY-MM-DD", "2006-01-02", false},
		{"DD/MM/YY", "02/01/06", false},
		{"MMMM D, YYYY", "January 2, 2006", false},
		{"MMM D", "Jan 2", false},
		{"[Built] YYYY", "Built 2006", false},
		{"[YYYY]", "YYYY", false},
		{"", "", true},
		{"[unclosed YYYY", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			got, err := Layout(tt.format)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDateFormat) {
					t.Fatalf("Layout(%q) error = %v, want ErrInvalidDateFormat", tt.format, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Layout(%q) unexpected error: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("Layout(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestLayout_TooLong(t *testing.T) {
	t.Parallel()

	long := make([]byte, MaxFormatLength+1)
	for i := range long {
		long[i] = 'Y'
	}
	if _, err := Layout(string(long)); !errors.Is(err, ErrInvalidDateFormat) {
		t.Errorf("expected ErrInvalidDateFormat, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestResolve - auto date values
// ---------------------------------------------------------------------------

func TestResolve(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		value   string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"2024-01-01", "2024-01-01", false},
		{"auto", "2026-03-07", false},
		{"AUTO", "2026-03-07", false},
		{"auto:DD/MM/YYYY", "07/03/2026", false},
		{"auto:long", "March 7, 2026", false},
		{"auto:US", "03/07/2026", false},
		{"auto:", "", true},
		{"automatic", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()

			got, err := Resolve(tt.value, now)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Resolve(%q) expected error", tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
