package pipeline

import (
	"reflect"
	"testing"
)

// ---------------------------------------------------------------------------
// TestExtractImageRefs - Regex contract over output text
// ---------------------------------------------------------------------------

func TestExtractImageRefs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		marker string
		want   []string
	}{
		{
			name:   "duplicates collapse and result is sorted",
			text:   "![z](Pictures/z.png)\n![a](Pictures/a.png)\n![again](Pictures/z.png)",
			marker: "Pictures",
			want:   []string{"a.png", "z.png"},
		},
		{
			name:   "nested path",
			text:   "![w](Pictures/icons/warn.gif)",
			marker: "Pictures",
			want:   []string{"icons/warn.gif"},
		},
		{
			name:   "raw html kept by the converter",
			text:   `<img src="Pictures/table.png" width="300" />`,
			marker: "Pictures",
			want:   []string{"table.png"},
		},
		{
			name:   "reference definition with title",
			text:   `[1]: Pictures/ref.png "Figure 1"`,
			marker: "Pictures",
			want:   []string{"ref.png"},
		},
		{
			name:   "image with title",
			text:   `![x](Pictures/t.png "title")`,
			marker: "Pictures",
			want:   []string{"t.png"},
		},
		{
			name:   "trailing sentence punctuation",
			text:   "See Pictures/plain.png. Then Pictures/other.png;",
			marker: "Pictures",
			want:   []string{"other.png", "plain.png"},
		},
		{
			name:   "start of text",
			text:   "Pictures/first.png",
			marker: "Pictures",
			want:   []string{"first.png"},
		},
		{
			name:   "scoped references are not pool references",
			text:   "![a](03-Pictures/a.png)",
			marker: "Pictures",
		},
		{
			name:   "longer directory names do not match",
			text:   "![a](MyPictures/a.png) ![b](Pictures2/b.png)",
			marker: "Pictures",
		},
		{
			name:   "other marker is a known miss",
			text:   "![a](images/a.png) ![b](/abs/Pics/b.png)",
			marker: "Pictures",
		},
		{
			name:   "custom marker",
			text:   "![a](Images/a.png) ![b](Pictures/b.png)",
			marker: "Images",
			want:   []string{"a.png"},
		},
		{
			name:   "marker with regex metacharacters",
			text:   "![a](Pics+/a.png) ![b](Picss/b.png)",
			marker: "Pics+",
			want:   []string{"a.png"},
		},
		{
			name:   "no references",
			text:   "# Title\n\nJust text.",
			marker: "Pictures",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ExtractImageRefs(tt.text, tt.marker)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractImageRefs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestRefPattern_Group(t *testing.T) {
	t.Parallel()

	m := RefPattern("Pictures").FindStringSubmatch("(Pictures/x.png)")
	if len(m) != 3 || m[2] != "x.png" {
		t.Fatalf("FindStringSubmatch() = %#v, want path in group 2", m)
	}
}
