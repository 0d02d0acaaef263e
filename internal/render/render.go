// Package render converts card fields from markdown into HTML markup.
package render

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// LineBreak replaces every newline in a field before it is rendered.
const LineBreak = "<br/>"

// Renderer turns raw field text into display markup.
type Renderer interface {
	Render(text string) (string, error)
}

var lineBreaks = strings.NewReplacer("\r\n", LineBreak, "\n", LineBreak, "\r", LineBreak)

// PrepareText substitutes the explicit line-break marker for every line break.
func PrepareText(text string) string {
	return lineBreaks.Replace(text)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

// DefaultExtensions covers tables, strikethrough, task lists and autolinks.
var DefaultExtensions = []string{"gfm"}

// KnownExtension reports whether name maps to a goldmark extension.
func KnownExtension(name string) bool {
	_, ok := extensionRegistry[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Extensions lists the accepted extension names, sorted.
func Extensions() []string {
	names := make([]string, 0, len(extensionRegistry))
	for name := range extensionRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Goldmark renders fields with a goldmark engine. Raw HTML is passed through
// so the line-break marker survives. A Goldmark is safe for concurrent use.
type Goldmark struct {
	engine goldmark.Markdown
}

// NewGoldmark builds a renderer with the named extensions. Unknown names are
// ignored; an empty list selects DefaultExtensions.
func NewGoldmark(extensions ...string) *Goldmark {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &Goldmark{
		engine: goldmark.New(
			goldmark.WithExtensions(collectExtensions(extensions)...),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

func collectExtensions(names []string) []goldmark.Extender {
	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, ok := seen[key]; ok {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}
	return extenders
}

// Render replaces line breaks with LineBreak and converts the result to HTML.
// Trailing whitespace emitted after the last block is dropped.
func (g *Goldmark) Render(text string) (string, error) {
	var buf bytes.Buffer
	if err := g.engine.Convert([]byte(PrepareText(text)), &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return strings.TrimRight(buf.String(), " \t\r\n"), nil
}
