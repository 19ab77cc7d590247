package pipeline

import (
	"regexp"
	"sort"
	"strings"
)

// refTail captures the pool-relative path after "<marker>/". It stops at
// whitespace, quotes, brackets and angle brackets, which covers Markdown
// image syntax, reference definitions and raw <img src="..."> tags.
const refTail = `([^\s"'()<>\[\]]+)`

// RefPattern returns the regular expression that recognizes pool references
// for marker. Group 2 holds the relative path.
//
// The contract is textual: a reference is the literal marker directory at a
// boundary followed by a path. References spelled with another directory
// name, absolute paths or URLs are not recognized, so a converter that emits
// a different relative style yields zero references.
func RefPattern(marker string) *regexp.Regexp {
	return regexp.MustCompile(markerBoundary + regexp.QuoteMeta(marker) + `/` + refTail)
}

// ExtractImageRefs returns the distinct pool-relative paths referenced in
// text, sorted. Trailing sentence punctuation is not part of a path.
func ExtractImageRefs(text, marker string) []string {
	matches := RefPattern(marker).FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		ref := strings.TrimRight(m[2], ".,;:")
		if ref == "" {
			continue
		}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		refs = append(refs, ref)
	}

	sort.Strings(refs)
	return refs
}
