// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"os"
	"strings"
)

// ForConverterNotFound returns hints for a missing pandoc binary.
// Mentions CHM2MD_PANDOC only when it is not already set.
func ForConverterNotFound() string {
	hints := []string{"install pandoc (https://pandoc.org/installing.html)"}

	if os.Getenv("CHM2MD_PANDOC") == "" {
		hints = append(hints, "set CHM2MD_PANDOC to a pandoc binary outside PATH")
	}
	hints = append(hints, "or use --engine native")

	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-chm2md/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-chm2md") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForEmptyInput returns a hint when discovery found nothing to process.
func ForEmptyInput(dir string, patterns []string) string {
	return format(fmt.Sprintf("no files matching %s in %s; use --input to point at the pages",
		strings.Join(patterns, ", "), dir))
}

// ForMissingImages returns a hint when references could not be resolved.
func ForMissingImages(count int, poolDir string) string {
	if count == 0 {
		return ""
	}
	return format(fmt.Sprintf("%d image reference(s) not found in %s; check --images or the marker", count, poolDir))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
