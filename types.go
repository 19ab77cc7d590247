package chm2md

import (
	"path/filepath"
	"sort"

	"github.com/alnah/go-chm2md/internal/pipeline"
)

// Mode selects the pipeline.
type Mode int

const (
	// ModeHTML converts HTML pages to Markdown chapters.
	ModeHTML Mode = iota
	// ModeMarkdown partitions images of existing Markdown chapters.
	ModeMarkdown
)

func (m Mode) String() string {
	if m == ModeMarkdown {
		return "markdown"
	}
	return "html"
}

// UnitState tracks how far a unit got. States only move forward.
type UnitState int

const (
	StateDiscovered UnitState = iota
	StateConverted
	StateImagesPartitioned
	StateLinksRewritten
	StateFailed
)

func (s UnitState) String() string {
	switch s {
	case StateDiscovered:
		return "discovered"
	case StateConverted:
		return "converted"
	case StateImagesPartitioned:
		return "images partitioned"
	case StateLinksRewritten:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Layout describes where a pipeline reads and writes.
type Layout struct {
	InputDir     string   // Scanned for chapters, non-recursive
	ImageDir     string   // Shared image pool
	OutputDir    string   // Chapters, image folders and report
	Patterns     []string // Case-insensitive file name globs
	Marker       string   // Pool directory segment in links, e.g. "Pictures"
	ParentPrefix string   // Parent-relative pool prefix, e.g. "../Pictures/"
	ReportName   string   // Summary file name, excluded from discovery
}

// DefaultLayout returns the layout of a typical CHM export.
func DefaultLayout(mode Mode) Layout {
	l := Layout{
		InputDir:     filepath.Join("chm", "html"),
		ImageDir:     filepath.Join("chm", "Pictures"),
		OutputDir:    "markdown",
		Patterns:     []string{"*.htm", "*.html"},
		Marker:       "Pictures",
		ParentPrefix: "../Pictures/",
		ReportName:   "README.md",
	}
	if mode == ModeMarkdown {
		l.InputDir = "markdown"
		l.ImageDir = filepath.Join("markdown", "Pictures")
		l.OutputDir = "chapters"
		l.Patterns = []string{"*.md"}
	}
	return l
}

// Unit is one source document on its way to one Markdown chapter.
type Unit struct {
	Seq    int    // 1-based position in discovery order
	Prefix string // Two-digit sequence prefix, "03"
	Source string // Source file path
	Slug   string
	Output string // Chapter file path, "<out>/03-slug.md"
	Title  string

	Refs    []string // Distinct pool-relative image paths, sorted
	Scoped  []string // Links already pointing into the unit's image folder
	Copied  []string // Images found and placed in the image folder
	Missing []string // Images found neither in the pool nor the folder

	Size  int64 // Final chapter size in bytes
	State UnitState
	Err   error
}

// Name returns the chapter file name.
func (u *Unit) Name() string { return filepath.Base(u.Output) }

// SourceName returns the source file name.
func (u *Unit) SourceName() string { return filepath.Base(u.Source) }

// HasImages reports whether the chapter shows any image, through the pool
// or through its own image folder.
func (u *Unit) HasImages() bool { return len(u.Refs) > 0 || len(u.Scoped) > 0 }

// Images returns the distinct image paths the chapter shows, relative to
// the pool, sorted. Missing images are included.
func (u *Unit) Images() []string {
	if len(u.Scoped) == 0 {
		return u.Refs
	}
	seen := make(map[string]struct{}, len(u.Refs)+len(u.Scoped))
	var all []string
	for _, group := range [][]string{u.Refs, u.Scoped} {
		for _, ref := range group {
			if _, ok := seen[ref]; !ok {
				seen[ref] = struct{}{}
				all = append(all, ref)
			}
		}
	}
	sort.Strings(all)
	return all
}

// ImageDirName returns the scoped folder name, "03-Pictures".
func (u *Unit) ImageDirName(marker string) string {
	return pipeline.ScopedDir(u.Prefix, marker)
}

// ImageDir is one scoped image folder in the report.
type ImageDir struct {
	Name   string
	Images int // Distinct references, missing included
}

// Report summarizes a run.
type Report struct {
	Mode   Mode
	Layout Layout
	DryRun bool
	Units  []*Unit

	ImageDirs  []ImageDir
	ImagesUsed int // Distinct image paths shown across all units, missing included
	PoolImages int // Files in the pool, recursive
	Missing    int // Distinct missing references, summed per unit

	Path string // Written report, "" on dry runs
}

// Chapters returns the units that completed.
func (r *Report) Chapters() []*Unit {
	var done []*Unit
	for _, u := range r.Units {
		if u.State != StateFailed {
			done = append(done, u)
		}
	}
	return done
}

// Failed returns the units that failed.
func (r *Report) Failed() []*Unit {
	var failed []*Unit
	for _, u := range r.Units {
		if u.State == StateFailed {
			failed = append(failed, u)
		}
	}
	return failed
}

// DocumentsWithImages counts completed units with at least one reference.
func (r *Report) DocumentsWithImages() int {
	n := 0
	for _, u := range r.Chapters() {
		if u.HasImages() {
			n++
		}
	}
	return n
}
