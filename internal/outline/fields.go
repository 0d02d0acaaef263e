package outline

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Field and section names recognised in the document.
const (
	FieldHeading     = "heading"
	FieldQuestion    = "question"
	FieldAnswer      = "answer"
	FieldUUID        = "uuid"
	SectionQuestions = "questions"
)

// fieldKey normalises a subsection title into a lookup key.
// A Caser is stateful, so one is built per call.
func fieldKey(title string) string {
	return cases.Lower(language.Und).String(norm.NFC.String(strings.TrimSpace(title)))
}
