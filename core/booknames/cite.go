package booknames

import (
	"fmt"

	"github.com/FocuswithJustin/CedarFabric/core/errors"
)

// enDash separates verse ranges in SBL style ("Ezek 1:1–3").
const enDash = "–"

func checkPositive(field string, value int) error {
	if value < 1 {
		return &errors.ReferenceError{Field: field, Value: value, Message: "must be >= 1"}
	}
	return nil
}

// Cite resolves label and formats "{abbrev} {chapter}:{verse}",
// e.g. Cite("Reges II", 2, 1) == "2 Kgs 2:1".
// Chapter and verse must both be >= 1; an unknown label propagates the
// *errors.UnknownBookError from Resolve unchanged.
func Cite(label string, chapter, verse int) (string, error) {
	b, err := Resolve(label)
	if err != nil {
		return "", err
	}
	if err := checkPositive("chapter", chapter); err != nil {
		return "", err
	}
	if err := checkPositive("verse", verse); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %d:%d", b.Abbrev(), chapter, verse), nil
}

// CiteRange formats a verse range with an en dash,
// e.g. CiteRange("Ezekiel", 1, 1, 3) == "Ezek 1:1–3".
// Requires chapter >= 1 and end >= start >= 1.
func CiteRange(label string, chapter, start, end int) (string, error) {
	b, err := Resolve(label)
	if err != nil {
		return "", err
	}
	if err := checkPositive("chapter", chapter); err != nil {
		return "", err
	}
	if err := checkPositive("verse", start); err != nil {
		return "", err
	}
	if end < start {
		return "", &errors.ReferenceError{Field: "end-verse", Value: end, Message: "must be >= start verse"}
	}
	return fmt.Sprintf("%s %d:%d%s%d", b.Abbrev(), chapter, start, enDash, end), nil
}

// CiteChapter formats a chapter-only citation, e.g. "1 Kgs 3".
func CiteChapter(label string, chapter int) (string, error) {
	b, err := Resolve(label)
	if err != nil {
		return "", err
	}
	if err := checkPositive("chapter", chapter); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %d", b.Abbrev(), chapter), nil
}
