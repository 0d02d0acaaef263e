package outline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeck_Cards(t *testing.T) {
	body := "## Questions\n### Card A\n#### Answer\na\n### Card B\n#### Uuid\nb-id\n"
	deck, err := ParseDeck("Deck1", body)
	require.NoError(t, err)

	assert.Equal(t, "Deck1", deck.Heading)
	require.Len(t, deck.Cards, 2)
	assert.Equal(t, "Card A", deck.Cards[0].Heading)
	assert.Equal(t, "a", deck.Cards[0].Answer)
	assert.Equal(t, "Card B", deck.Cards[1].Heading)
	assert.Equal(t, "b-id", deck.Cards[1].UUID)
	assert.Nil(t, deck.Sections)
}

func TestParseDeck_SectionNameCaseInsensitive(t *testing.T) {
	deck, err := ParseDeck("D", "## QUESTIONS\n### Q\n")
	require.NoError(t, err)
	require.Len(t, deck.Cards, 1)
	assert.Equal(t, "Q", deck.Cards[0].Question)
}

func TestParseDeck_MissingQuestions(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"other sections only", "## Notes\nsome notes\n"},
		{"cards without section", "### Card\n#### Answer\nx"},
		{"deeper questions heading", "### Questions\n### Card"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDeck("Broken", tt.body)
			require.Error(t, err)

			var missing *MissingSectionError
			require.True(t, errors.As(err, &missing), "expected MissingSectionError, got %T", err)
			assert.Equal(t, "Broken", missing.Deck)
			assert.Equal(t, SectionQuestions, missing.Section)
			assert.Contains(t, err.Error(), `"Broken"`)
		})
	}
}

func TestParseDeck_ZeroCards(t *testing.T) {
	deck, err := ParseDeck("Empty", "## Questions\n\nnothing here yet\n")
	require.NoError(t, err)
	assert.NotNil(t, deck.Cards)
	assert.Len(t, deck.Cards, 0)
}

func TestParseDeck_OtherSectionsKept(t *testing.T) {
	body := "## Description\nAbout this deck.\n## Questions\n### Q1\n## Heading\nignored"
	deck, err := ParseDeck("D", body)
	require.NoError(t, err)
	assert.Equal(t, "D", deck.Heading)
	assert.Equal(t, map[string]string{"description": "About this deck."}, deck.Sections)
	require.Len(t, deck.Cards, 1)
}

func TestParseDocument_Order(t *testing.T) {
	text := "preamble\n# First\n## Questions\n### A\n### B\n# Second\n## Questions\n### C\n# First\n## Questions\n### D\n"
	decks, err := ParseDocument(text)
	require.NoError(t, err)
	require.Len(t, decks, 3)

	var got []string
	for _, d := range decks {
		for _, c := range d.Cards {
			got = append(got, d.Heading+"/"+c.Heading)
		}
	}
	assert.Equal(t, []string{"First/A", "First/B", "Second/C", "First/D"}, got)
}

func TestParseDocument_FirstFailureAborts(t *testing.T) {
	text := "# Good\n## Questions\n### A\n# Bad\n## Notes\n"
	decks, err := ParseDocument(text)
	require.Error(t, err)
	assert.Nil(t, decks)

	var missing *MissingSectionError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Bad", missing.Deck)
}

func TestParseDocument_Empty(t *testing.T) {
	decks, err := ParseDocument("no headings at all")
	require.NoError(t, err)
	assert.Empty(t, decks)
}
