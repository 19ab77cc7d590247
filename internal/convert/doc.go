// Package convert turns one HTML page into one Markdown file.
//
// Two engines implement Converter:
//   - PandocConverter runs the pandoc CLI on a scoped temp file.
//   - NativeConverter uses html-to-markdown in process, for hosts without pandoc.
//
// Both write the Markdown to the requested output path and leave nothing
// else behind.
package convert
