package outline

import (
	"strings"

	"github.com/dgallion1/mdanki/internal/doctree"
)

// ParseCard builds a card from a depth-3 heading and its body. Depth-4
// subsections become fields; later duplicates win. It never fails: missing
// fields fall back to the card heading (question, uuid) or empty text (answer).
func ParseCard(title, body string) doctree.Card {
	fields := make(map[string]string)
	for _, seg := range Split(body, FieldLevel) {
		fields[fieldKey(seg.Title)] = strings.TrimSpace(seg.Body)
	}
	// The card's own title always wins over a subsection named "heading".
	delete(fields, FieldHeading)

	card := doctree.Card{Heading: title}

	var ok bool
	if card.Question, ok = fields[FieldQuestion]; !ok {
		card.Question = card.Heading
	}
	if card.UUID, ok = fields[FieldUUID]; !ok {
		card.UUID = card.Heading
	}
	if card.Answer, ok = fields[FieldAnswer]; !ok {
		card.Answer = ""
	}

	delete(fields, FieldQuestion)
	delete(fields, FieldUUID)
	delete(fields, FieldAnswer)
	if len(fields) > 0 {
		card.Extra = fields
	}
	return card
}
