package chm2md

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestAlignColumns - Display-width alignment
// ---------------------------------------------------------------------------

func TestAlignColumns(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"01-a.md", "第一章", "1.0 KB", "no images"},
		{"02-bb.md", "Intro", "12.0 KB", "1 image"},
	}
	got := alignColumns(rows, []bool{false, false, true, false})
	want := []string{
		"01-a.md   第一章   1.0 KB  no images",
		"02-bb.md  Intro   12.0 KB  1 image",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("alignColumns() =\n%q\nwant\n%q", got, want)
	}

	if alignColumns(nil, nil) != nil {
		t.Error("alignColumns(nil) should be nil")
	}
}

func TestImageSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		unit *Unit
		want string
	}{
		{&Unit{}, "no images"},
		{&Unit{Refs: []string{"a"}, Copied: []string{"a"}}, "1 image"},
		{&Unit{Refs: []string{"a", "b", "c"}, Copied: []string{"a", "b"}, Missing: []string{"c"}}, "3 images, 1 missing"},
		{&Unit{Refs: []string{"a"}, Missing: []string{"a"}}, "1 image, 1 missing"},
		{&Unit{Refs: []string{"a"}, Scoped: []string{"a", "b"}, Copied: []string{"a"}}, "2 images"},
	}

	for _, tt := range tests {
		if got := imageSummary(tt.unit); got != tt.want {
			t.Errorf("imageSummary(%v) = %q, want %q", tt.unit.Refs, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRenderReport - Template output
// ---------------------------------------------------------------------------

func TestRenderReport(t *testing.T) {
	t.Parallel()

	p, err := NewPipeline(ModeMarkdown, DefaultLayout(ModeMarkdown),
		WithReportTitle("Admin Guide"), WithReportDate("2026-10-19"))
	if err != nil {
		t.Fatal(err)
	}

	r := &Report{
		Mode: ModeMarkdown,
		Units: []*Unit{
			{Prefix: "01", Output: "chapters/01-intro.md", Title: "Intro", Size: 2048, State: StateLinksRewritten},
			{Prefix: "02", Output: "chapters/02-setup.md", Title: "Setup", Size: 100, State: StateLinksRewritten,
				Refs: []string{"a.png"}, Copied: []string{"a.png"}},
			{Prefix: "03", Source: "markdown/bad.md", Output: "chapters/03-bad.md", State: StateFailed, Err: errors.New("boom")},
		},
		ImageDirs:  []ImageDir{{Name: "02-Pictures", Images: 1}},
		ImagesUsed: 1,
		PoolImages: 5,
	}

	got, err := p.RenderReport(r)
	if err != nil {
		t.Fatalf("RenderReport() error = %v", err)
	}

	for _, want := range []string{
		"# Admin Guide",
		"_Generated 2026-10-19._",
		"the Markdown files in `markdown`",
		"- 01-intro.md  Intro  2.0 KB  no images",
		"- 02-setup.md  Setup   100 B  1 image",
		"- 02-Pictures/  1 image",
		"- bad.md: boom",
		"- chapters: 2",
		"- documents with images: 1",
		"- total images used: 1",
		"- images in pool: 5",
		"- missing images: 0",
		"- failed chapters: 1",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}
}

func TestRenderReport_NoDateNoFailures(t *testing.T) {
	t.Parallel()

	p, _ := NewPipeline(ModeHTML, DefaultLayout(ModeHTML))
	got, err := p.RenderReport(&Report{Mode: ModeHTML})
	if err != nil {
		t.Fatal(err)
	}
	for _, unwanted := range []string{"Generated", "failed chapters", "## Image folders"} {
		if strings.Contains(got, unwanted) {
			t.Errorf("report should not contain %q:\n%s", unwanted, got)
		}
	}
	if !strings.Contains(got, "_No chapters were found._") {
		t.Errorf("empty report:\n%s", got)
	}
}

func TestRenderReport_UnknownTemplate(t *testing.T) {
	t.Parallel()

	p, _ := NewPipeline(ModeHTML, DefaultLayout(ModeHTML), WithReportTemplate("nope"))
	if _, err := p.RenderReport(&Report{}); !errors.Is(err, ErrReportRender) {
		t.Errorf("RenderReport() error = %v, want ErrReportRender", err)
	}
}
