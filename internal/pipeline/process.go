package pipeline

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dgallion1/mdanki/internal/doctree"
	"github.com/dgallion1/mdanki/internal/outline"
	"github.com/dgallion1/mdanki/internal/render"
)

// Processor turns a markdown document into decks of rendered cards.
type Processor struct {
	renderer render.Renderer
	log      *slog.Logger
}

// NewProcessor creates a processor rendering card fields with r.
func NewProcessor(r render.Renderer, log *slog.Logger) *Processor {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Processor{renderer: r, log: log}
}

// Process splits text into decks, parses their cards and renders each card's
// question and answer. A deck without a questions section aborts the run and
// no decks are returned.
func (p *Processor) Process(text string) ([]doctree.Deck, error) {
	decks, err := outline.ParseDocument(text)
	if err != nil {
		return nil, err
	}

	for d := range decks {
		deck := &decks[d]
		for i := range deck.Cards {
			if err := p.renderCard(&deck.Cards[i]); err != nil {
				return nil, fmt.Errorf("deck %q: %w", deck.Heading, err)
			}
		}
		p.log.Debug("deck parsed", "deck", deck.Heading, "cards", len(deck.Cards))
	}
	return decks, nil
}

// renderCard replaces the card's question and answer with rendered markup.
// No other field is rendered.
func (p *Processor) renderCard(card *doctree.Card) error {
	question, err := p.renderer.Render(card.Question)
	if err != nil {
		return fmt.Errorf("card %q question: %w", card.Heading, err)
	}
	answer, err := p.renderer.Render(card.Answer)
	if err != nil {
		return fmt.Errorf("card %q answer: %w", card.Heading, err)
	}
	card.Question = question
	card.Answer = answer
	return nil
}
