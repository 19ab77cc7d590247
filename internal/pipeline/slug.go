package pipeline

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FallbackSlug names a chapter whose file name has no usable characters.
const FallbackSlug = "chapter"

var (
	// numberPrefixRe matches an existing sequence prefix: "01-", "2_", "03. ".
	numberPrefixRe = regexp.MustCompile(`^\d+[-_. ]+`)
	nonWordRe      = regexp.MustCompile(`[^\p{L}\p{N}]+`)
)

// Slug derives the chapter name from a source file name.
//
//	"Getting Started.htm"   -> "getting-started"
//	"02_Réglages avancés.md" -> "reglages-avances"
//	"03-chapter.md"          -> "chapter"
//
// Letters outside Latin are kept (lowercased) so CJK titles stay readable.
func Slug(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = numberPrefixRe.ReplaceAllString(base, "")

	folded, _, err := transform.String(foldDiacritics(), base)
	if err != nil {
		folded = base
	}

	slug := nonWordRe.ReplaceAllString(strings.ToLower(folded), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return FallbackSlug
	}
	return slug
}

// foldDiacritics strips combining marks after canonical decomposition.
// A transformer carries state, so a new chain is built per call.
func foldDiacritics() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// OutputName returns "NN-slug.md" for the given two-digit prefix.
func OutputName(prefix, slug string) string {
	return prefix + "-" + slug + ".md"
}
