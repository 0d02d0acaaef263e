package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Source loads a document and returns it as markdown text following the
// deck/card heading convention.
type Source interface {
	Load(r io.Reader, filename string) (string, error)
}

// SupportedExtensions lists file extensions this tool can read.
var SupportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
	".html":     true,
	".htm":      true,
	".docx":     true,
}

// ForFile returns the appropriate source for a filename.
func ForFile(filename string) (Source, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".markdown", ".txt":
		return &MarkdownSource{}, nil
	case ".html", ".htm":
		return &HTMLSource{}, nil
	case ".docx":
		return &DOCXSource{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %q", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// outlineWriter assembles markdown from structured documents.
type outlineWriter struct {
	buf strings.Builder
}

func (w *outlineWriter) heading(level int, title string) {
	title = strings.Join(strings.Fields(title), " ")
	if level <= 0 || title == "" {
		return
	}
	w.separate()
	w.buf.WriteString(strings.Repeat("#", level))
	w.buf.WriteString(" ")
	w.buf.WriteString(title)
	w.buf.WriteString("\n")
}

// paragraph writes block text. Lines starting with '#' are escaped so they
// are not taken for headings.
func (w *outlineWriter) paragraph(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	w.separate()
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "#") {
			w.buf.WriteString(`\`)
		}
		w.buf.WriteString(line)
		w.buf.WriteString("\n")
	}
}

func (w *outlineWriter) separate() {
	if w.buf.Len() > 0 {
		w.buf.WriteString("\n")
	}
}

func (w *outlineWriter) String() string {
	return w.buf.String()
}

// Detect is ForFile with a markdown fallback for unknown or missing extensions.
func Detect(filename string) Source {
	src, err := ForFile(filename)
	if err != nil {
		return &MarkdownSource{}
	}
	return src
}
