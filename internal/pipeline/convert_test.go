package pipeline

import (
	"bytes"
	"encoding/csv"
	"os"
	"strings"
	"testing"

	"github.com/dgallion1/mdanki/internal/render"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConverter(fs afero.Fs) *Converter {
	return NewConverter(fs, NewProcessor(render.NewGoldmark(), nil), nil)
}

func readCSV(t *testing.T, fs afero.Fs, path string) [][]string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = ';'
	r.FieldsPerRecord = 3
	records, err := r.ReadAll()
	require.NoError(t, err)
	return records
}

func TestConvert_SingleCard(t *testing.T) {
	fs := afero.NewMemMapFs()
	input := "# Deck1\n## Questions\n### Card A\n#### Question\nWhat is 2+2?\n#### Answer\n4\n#### Uuid\ncard-a\n"
	require.NoError(t, afero.WriteFile(fs, "deck.md", []byte(input), 0o644))

	stats, err := newTestConverter(fs).Convert("deck.md", "deck.csv")
	require.NoError(t, err)
	assert.Equal(t, Stats{Decks: 1, Cards: 1}, stats)

	data, err := afero.ReadFile(fs, "deck.csv")
	require.NoError(t, err)
	assert.Equal(t, "card-a;<p>What is 2+2?</p>;<p>4</p>", strings.TrimRight(string(data), "\r\n"))
}

func TestConvert_DefaultedCard(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "deck.md", []byte("# D\n## Questions\n### Lonely card\n"), 0o644))

	_, err := newTestConverter(fs).Convert("deck.md", "deck.csv")
	require.NoError(t, err)

	records := readCSV(t, fs, "deck.csv")
	assert.Equal(t, [][]string{{"Lonely card", "<p>Lonely card</p>", ""}}, records)
}

func TestConvert_ExampleFixture(t *testing.T) {
	src, err := os.ReadFile("testdata/example.md")
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "example.md", src, 0o644))

	stats, err := newTestConverter(fs).Convert("example.md", "example.csv")
	require.NoError(t, err)
	assert.Equal(t, Stats{Decks: 2, Cards: 5}, stats)

	records := readCSV(t, fs, "example.csv")
	require.Len(t, records, 5)

	var ids []string
	for _, rec := range records {
		ids = append(ids, rec[0])
	}
	assert.Equal(t, []string{"Hello", "es-goodbye", "Thanks; formally", "math-sum", "Strike"}, ids)

	assert.Equal(t, []string{"Hello", "<p>Hello</p>", "<p>Hola</p>"}, records[0])
	assert.Equal(t, "<p>How do you say <em>goodbye</em>?</p>", records[1][1])
	assert.Equal(t, "<p>Muchas gracias;<br/>muy amable</p>", records[2][2])
	assert.Equal(t, "<p><del>five</del> four</p>", records[4][2])
}

func TestConvert_MissingSectionWritesNothing(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "deck.md", []byte("# D\n## Notes\n### Card\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "deck.csv", []byte("previous export\n"), 0o644))

	_, err := newTestConverter(fs).Convert("deck.md", "deck.csv")
	require.Error(t, err)

	data, readErr := afero.ReadFile(fs, "deck.csv")
	require.NoError(t, readErr)
	assert.Equal(t, "previous export\n", string(data))
}

func TestConvert_MissingInput(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := newTestConverter(fs).Convert("nope.md", "out.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open input")

	exists, _ := afero.Exists(fs, "out.csv")
	assert.False(t, exists)
}

func TestConvert_HTMLSource(t *testing.T) {
	fs := afero.NewMemMapFs()
	page := "<body><h1>Deck</h1><h2>Questions</h2><h3>Capital of France</h3><h4>Answer</h4><p>Paris</p></body>"
	require.NoError(t, afero.WriteFile(fs, "deck.html", []byte(page), 0o644))

	_, err := newTestConverter(fs).Convert("deck.html", "deck.csv")
	require.NoError(t, err)

	records := readCSV(t, fs, "deck.csv")
	assert.Equal(t, [][]string{{"Capital of France", "<p>Capital of France</p>", "<p>Paris</p>"}}, records)
}
