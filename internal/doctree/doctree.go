package doctree

// Segment is one (heading, body) pair cut from markdown at a fixed heading depth.
type Segment struct {
	Title string // Heading text, trimmed
	Body  string // Text up to the next heading of the same depth, trimmed
}

// Card is a single flashcard parsed from a depth-3 heading.
type Card struct {
	Heading  string            `json:"heading" yaml:"heading"`
	Question string            `json:"question" yaml:"question"`
	Answer   string            `json:"answer" yaml:"answer"`
	UUID     string            `json:"uuid" yaml:"uuid"`
	Extra    map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"` // Other depth-4 fields, not exported
}

// Deck is a collection of cards parsed from a depth-1 heading.
type Deck struct {
	Heading  string            `json:"heading" yaml:"heading"`
	Sections map[string]string `json:"sections,omitempty" yaml:"sections,omitempty"` // Depth-2 sections other than "questions", raw
	Cards    []Card            `json:"questions" yaml:"questions"`
}

// Row is one exported line: identifier, prompt, answer.
type Row struct {
	UUID     string
	Question string
	Answer   string
}

// Record returns the row in column order.
func (r Row) Record() []string {
	return []string{r.UUID, r.Question, r.Answer}
}

// CardCount returns the total number of cards across decks.
func CardCount(decks []Deck) int {
	n := 0
	for _, d := range decks {
		n += len(d.Cards)
	}
	return n
}
