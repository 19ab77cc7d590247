// Package pipeline implements the text stages of a chapter conversion.
//
// The stages are plain string transforms with no filesystem access:
//   - path preprocessing (parent-relative pool prefix flattened)
//   - image reference extraction (regex contract over the marker)
//   - link rewrite (pool marker replaced by the chapter-scoped marker)
//   - chapter naming (slug) and title extraction
//   - character set decoding of source pages
//   - Markdown to HTML rendering for previews
//
// Reading, converting, copying and writing are sequenced by the root
// chm2md package.
package pipeline
