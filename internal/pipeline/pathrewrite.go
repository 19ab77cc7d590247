package pipeline

import (
	"regexp"
	"strings"
)

// FlattenPaths replaces every literal occurrence of parentPrefix (for example
// "../Pictures/") with flat (for example "Pictures/").
// It is a plain substring substitution: markup is neither parsed nor validated.
func FlattenPaths(text, parentPrefix, flat string) string {
	if parentPrefix == "" || parentPrefix == flat {
		return text
	}
	return strings.ReplaceAll(text, parentPrefix, flat)
}

// ScopedDir returns the chapter-scoped directory name, "03-Pictures".
func ScopedDir(prefix, marker string) string {
	return prefix + "-" + marker
}

// markerBoundary is the set of characters that may not precede a marker.
// It keeps "03-Pictures/" and "MyPictures/" from counting as pool references.
const markerBoundary = `(^|[^A-Za-z0-9_-])`

// markerRegexp matches a bare marker directory at a boundary.
func markerRegexp(marker string) *regexp.Regexp {
	return regexp.MustCompile(markerBoundary + regexp.QuoteMeta(marker) + `/`)
}

// RewriteLinks points every pool reference at the chapter-scoped directory:
// "Pictures/a.png" becomes "03-Pictures/a.png" for prefix "03".
// Returns the rewritten text and the number of replacements.
func RewriteLinks(text, marker, prefix string) (string, int) {
	re := markerRegexp(marker)
	n := len(re.FindAllStringIndex(text, -1))
	if n == 0 {
		return text, 0
	}
	return re.ReplaceAllString(text, "${1}"+ScopedDir(prefix, marker)+"/"), n
}
