package chm2md

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/mattn/go-runewidth"

	"github.com/alnah/go-chm2md/internal/fileutil"
)

// reportData is the view handed to the report template.
type reportData struct {
	Title  string
	Date   string
	Source string
	Kind   string
	Marker string

	Chapters  []string // Aligned chapter lines
	ImageDirs []string // Aligned image folder lines
	Failed    []string

	ChapterCount        int
	DocumentsWithImages int
	ImagesUsed          int
	PoolImages          int
	Missing             int
	FailedCount         int
}

// writeReport renders the summary and writes it to the output directory.
func (p *Pipeline) writeReport(r *Report) (string, error) {
	content, err := p.RenderReport(r)
	if err != nil {
		return "", err
	}

	path := filepath.Join(p.layout.OutputDir, p.layout.ReportName)
	if err := os.WriteFile(path, []byte(content), fileutil.FilePerm); err != nil { // #nosec G306 -- report is meant to be shared
		return "", fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return path, nil
}

// RenderReport renders r with the configured report template.
func (p *Pipeline) RenderReport(r *Report) (string, error) {
	src, err := p.assets.LoadTemplate(p.report.template)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReportRender, err)
	}

	tmpl, err := template.New(p.report.template).Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReportRender, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, p.reportView(r)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrReportRender, err)
	}
	return buf.String(), nil
}

func (p *Pipeline) reportView(r *Report) reportData {
	chapters := r.Chapters()
	failed := r.Failed()

	data := reportData{
		Title:               p.report.title,
		Date:                p.report.date,
		Marker:              p.layout.Marker,
		Chapters:            chapterLines(chapters),
		ImageDirs:           imageDirLines(r.ImageDirs),
		ChapterCount:        len(chapters),
		DocumentsWithImages: r.DocumentsWithImages(),
		ImagesUsed:          r.ImagesUsed,
		PoolImages:          r.PoolImages,
		Missing:             r.Missing,
		FailedCount:         len(failed),
	}

	if r.Mode == ModeMarkdown {
		data.Source = fmt.Sprintf("the Markdown files in `%s`", filepath.ToSlash(p.layout.InputDir))
		data.Kind = "source chapter"
	} else {
		data.Source = fmt.Sprintf("the HTML pages in `%s`", filepath.ToSlash(p.layout.InputDir))
		data.Kind = "page"
	}

	for _, u := range failed {
		data.Failed = append(data.Failed, fmt.Sprintf("%s: %v", u.SourceName(), u.Err))
	}
	return data
}

// chapterLines formats one line per chapter with columns aligned by
// display width, so CJK titles line up in a terminal.
func chapterLines(units []*Unit) []string {
	rows := make([][]string, len(units))
	for i, u := range units {
		rows[i] = []string{u.Name(), u.Title, fileutil.HumanSize(u.Size), imageSummary(u)}
	}
	return alignColumns(rows, []bool{false, false, true, false})
}

func imageDirLines(dirs []ImageDir) []string {
	rows := make([][]string, len(dirs))
	for i, d := range dirs {
		rows[i] = []string{d.Name + "/", plural(d.Images, "image")}
	}
	return alignColumns(rows, []bool{false, false})
}

func imageSummary(u *Unit) string {
	if !u.HasImages() {
		return "no images"
	}
	s := plural(len(u.Images()), "image")
	if n := len(u.Missing); n > 0 {
		s += fmt.Sprintf(", %d missing", n)
	}
	return s
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// alignColumns pads each cell to its column's widest display width.
// right marks right-aligned columns. Trailing padding is trimmed.
func alignColumns(rows [][]string, right []bool) []string {
	if len(rows) == 0 {
		return nil
	}

	widths := make([]int, len(right))
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, len(rows))
	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if right[i] {
				cells[i] = runewidth.FillLeft(cell, widths[i])
			} else {
				cells[i] = runewidth.FillRight(cell, widths[i])
			}
		}
		lines[r] = strings.TrimRight(strings.Join(cells, "  "), " ")
	}
	return lines
}
