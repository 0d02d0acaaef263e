// Package outline rebuilds the deck/card/field hierarchy of a flashcard
// document from its markdown heading levels.
package outline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/mdanki/internal/doctree"
)

// Heading depths of the document convention.
const (
	DeckLevel    = 1
	SectionLevel = 2
	CardLevel    = 3
	FieldLevel   = 4
)

const maxHeadingLevel = 6

// boundaries holds precompiled patterns for the markdown heading depths.
var boundaries = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, maxHeadingLevel+1)
	for level := 1; level <= maxHeadingLevel; level++ {
		out[level] = compileBoundary(level)
	}
	return out
}()

// compileBoundary matches a line that starts with exactly level '#'
// characters. The character after the run must not be another '#'.
func compileBoundary(level int) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`(?m)^#{%d}(?:[^#]|$)`, level))
}

func boundary(level int) *regexp.Regexp {
	if level < len(boundaries) {
		return boundaries[level]
	}
	return compileBoundary(level)
}

// Split partitions text into segments at every heading of exactly the given
// depth. Text before the first such heading is dropped. Shallower and deeper
// headings stay inside the bodies untouched.
func Split(text string, level int) []doctree.Segment {
	if level <= 0 {
		return nil
	}

	locs := boundary(level).FindAllStringIndex(text, -1)
	segments := make([]doctree.Segment, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		segments = append(segments, newSegment(text[loc[0]+level:end]))
	}
	return segments
}

// newSegment splits a part into its title line and the remaining body.
func newSegment(part string) doctree.Segment {
	part = strings.TrimSpace(part)
	title, body, _ := strings.Cut(part, "\n")
	return doctree.Segment{
		Title: strings.TrimSpace(title),
		Body:  strings.TrimSpace(body),
	}
}
