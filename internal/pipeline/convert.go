package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dgallion1/mdanki/internal/doctree"
	"github.com/dgallion1/mdanki/internal/export"
	"github.com/dgallion1/mdanki/internal/parser"
	"github.com/spf13/afero"
)

// Stats summarises one conversion.
type Stats struct {
	Decks int
	Cards int
}

// Converter runs the file-level pipeline: read, process, export.
type Converter struct {
	fs   afero.Fs
	proc *Processor
	log  *slog.Logger
}

// NewConverter creates a converter working on fs.
func NewConverter(fs afero.Fs, proc *Processor, log *slog.Logger) *Converter {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Converter{fs: fs, proc: proc, log: log}
}

// LoadDecks reads a source document and processes it into decks.
func (c *Converter) LoadDecks(input string) ([]doctree.Deck, error) {
	f, err := c.fs.Open(input)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	return c.Decode(f, input)
}

// Decode processes a document read from r; filename selects the source format.
func (c *Converter) Decode(r io.Reader, filename string) ([]doctree.Deck, error) {
	text, err := parser.Detect(filename).Load(r, filename)
	if err != nil {
		return nil, err
	}
	return c.proc.Process(text)
}

// Convert exports every card of input as a row of output. Nothing is
// written unless the whole document converts.
func (c *Converter) Convert(input, output string) (Stats, error) {
	start := time.Now()

	decks, err := c.LoadDecks(input)
	if err != nil {
		return Stats{}, err
	}
	if err := export.WriteFile(c.fs, decks, output); err != nil {
		return Stats{}, err
	}

	stats := Stats{Decks: len(decks), Cards: doctree.CardCount(decks)}
	c.log.Info("converted",
		"input", input,
		"output", output,
		"decks", stats.Decks,
		"cards", stats.Cards,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return stats, nil
}
