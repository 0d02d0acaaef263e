package outline

import (
	"fmt"

	"github.com/dgallion1/mdanki/internal/doctree"
)

// MissingSectionError reports a deck without a required depth-2 section.
type MissingSectionError struct {
	Deck    string
	Section string
}

func (e *MissingSectionError) Error() string {
	return fmt.Sprintf("deck %q: missing %q section", e.Deck, e.Section)
}

// ParseDeck builds a deck from a depth-1 heading and its body. The body must
// hold a depth-2 "questions" section (matched case-insensitively); its depth-3
// headings are parsed as cards in source order.
func ParseDeck(title, body string) (doctree.Deck, error) {
	// Section bodies are stored as split, without an extra trim.
	sections := make(map[string]string)
	for _, seg := range Split(body, SectionLevel) {
		sections[fieldKey(seg.Title)] = seg.Body
	}

	questions, ok := sections[SectionQuestions]
	if !ok {
		return doctree.Deck{}, &MissingSectionError{Deck: title, Section: SectionQuestions}
	}
	delete(sections, SectionQuestions)
	delete(sections, FieldHeading)

	cardSegs := Split(questions, CardLevel)
	deck := doctree.Deck{
		Heading: title,
		Cards:   make([]doctree.Card, 0, len(cardSegs)),
	}
	if len(sections) > 0 {
		deck.Sections = sections
	}
	for _, seg := range cardSegs {
		deck.Cards = append(deck.Cards, ParseCard(seg.Title, seg.Body))
	}
	return deck, nil
}

// ParseDocument splits text into decks at depth 1 and parses each one.
// The first malformed deck aborts the whole document.
func ParseDocument(text string) ([]doctree.Deck, error) {
	segs := Split(text, DeckLevel)
	decks := make([]doctree.Deck, 0, len(segs))
	for _, seg := range segs {
		deck, err := ParseDeck(seg.Title, seg.Body)
		if err != nil {
			return nil, err
		}
		decks = append(decks, deck)
	}
	return decks, nil
}
