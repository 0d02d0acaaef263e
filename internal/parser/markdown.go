package parser

import (
	"fmt"
	"io"
)

// MarkdownSource reads markdown (or plain text) as-is.
type MarkdownSource struct{}

func (s *MarkdownSource) Load(r io.Reader, filename string) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filename, err)
	}
	return string(src), nil
}
