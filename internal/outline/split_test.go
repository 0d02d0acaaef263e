package outline

import (
	"testing"

	"github.com/dgallion1/mdanki/internal/doctree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_Boundaries(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		level int
		want  []doctree.Segment
	}{
		{
			name:  "two decks",
			text:  "# A\nbody a\n## sub\n# B\nbody b\n",
			level: 1,
			want: []doctree.Segment{
				{Title: "A", Body: "body a\n## sub"},
				{Title: "B", Body: "body b"},
			},
		},
		{
			name:  "deeper headings stay in body",
			text:  "## X\n### Y\ny\n## Z",
			level: 2,
			want: []doctree.Segment{
				{Title: "X", Body: "### Y\ny"},
				{Title: "Z", Body: ""},
			},
		},
		{
			name:  "preamble dropped",
			text:  "intro text\n\n### Card\nbody",
			level: 3,
			want:  []doctree.Segment{{Title: "Card", Body: "body"}},
		},
		{
			name:  "marker without space",
			text:  "#NoSpace\nbody",
			level: 1,
			want:  []doctree.Segment{{Title: "NoSpace", Body: "body"}},
		},
		{
			name:  "heading at end of text",
			text:  "# Only",
			level: 1,
			want:  []doctree.Segment{{Title: "Only", Body: ""}},
		},
		{
			name:  "bare marker line",
			text:  "#\n# b",
			level: 1,
			want: []doctree.Segment{
				{Title: "", Body: ""},
				{Title: "b", Body: ""},
			},
		},
		{
			name:  "indented marker is not a heading",
			text:  "# A\n  # not a boundary\n",
			level: 1,
			want:  []doctree.Segment{{Title: "A", Body: "# not a boundary"}},
		},
		{
			name:  "surrounding whitespace trimmed",
			text:  "####   Answer  \n\n  4  \n\n",
			level: 4,
			want:  []doctree.Segment{{Title: "Answer", Body: "4"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.text, tt.level))
		})
	}
}

func TestSplit_DeeperHeadingIsNotBoundary(t *testing.T) {
	for level := 1; level <= 5; level++ {
		deeper := "##########"[:level+1] + " Deeper\nbody\n"
		assert.Empty(t, Split(deeper, level), "level %d must ignore a depth-%d heading", level, level+1)
	}
}

func TestSplit_NoHeadings(t *testing.T) {
	assert.Empty(t, Split("plain text\nwith lines", 1))
	assert.Empty(t, Split("", 2))
	assert.Nil(t, Split("# A\nbody", 0))
}

func TestSplit_ResplitBodyYieldsNothing(t *testing.T) {
	text := "### One\n#### Question\nq1\n### Two\n#### Answer\na2\n"
	segs := Split(text, 3)
	require.Len(t, segs, 2)
	assert.Equal(t, "One", segs[0].Title)
	assert.Equal(t, "Two", segs[1].Title)
	for _, seg := range segs {
		assert.Empty(t, Split(seg.Body, 3), "re-splitting %q body", seg.Title)
	}
}

func TestSplit_BeyondPrecompiledLevels(t *testing.T) {
	got := Split("####### Seven\nbody\n######## Eight", 7)
	assert.Equal(t, []doctree.Segment{{Title: "Seven", Body: "body\n######## Eight"}}, got)
}
