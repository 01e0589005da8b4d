package corpus

import (
	"fmt"

	"github.com/FocuswithJustin/CedarFabric/core/booknames"
)

// defaultWordFeatures is the fallback order used when a caller asks for
// the "default" word feature: BHSA consonantal text, then the general
// surface-text features used by the Greek corpora.
var defaultWordFeatures = []string{"g_cons_utf8", "g_word_utf8", "text"}

// DefaultFeature is the feature-name placeholder that selects the first
// word feature the corpus actually carries.
const DefaultFeature = "default"

// FirstFeature returns the first of the named features that exists on f,
// or false if none do.
func FirstFeature(f Features, names ...string) (string, bool) {
	for _, n := range names {
		if f.Has(n) {
			return n, true
		}
	}
	return "", false
}

// RefDataset renders a reference using the dataset's native book label
// (e.g., "Jesaia 1:1"). Safe for any node type; nodes outside the section
// hierarchy render as "?".
func RefDataset(t Text, n Node) string {
	sec, ok := t.SectionFromNode(n)
	if !ok {
		return "?"
	}
	return formatSection(sec.Book, sec.Chapter, sec.Verse)
}

// RefSBL renders a reference in SBL notation (e.g., "Isa 1:1") regardless
// of the dataset's own labels. Labels that resolve to no canonical book
// are rendered as-is rather than dropped.
func RefSBL(t Text, n Node) string {
	sec, ok := t.SectionFromNode(n)
	if !ok {
		return "?"
	}
	label := sec.Book
	if b, err := booknames.Resolve(label); err == nil {
		label = b.Abbrev()
	}
	return formatSection(label, sec.Chapter, sec.Verse)
}

func formatSection(book string, chapter, verse int) string {
	switch {
	case chapter == 0:
		return book
	case verse == 0:
		return fmt.Sprintf("%s %d", book, chapter)
	default:
		return fmt.Sprintf("%s %d:%d", book, chapter, verse)
	}
}

// VerseNode resolves the verse containing n, or false if n does not lie
// inside a verse.
func VerseNode(t Text, n Node) (Node, bool) {
	sec, ok := t.SectionFromNode(n)
	if !ok || sec.Chapter == 0 || sec.Verse == 0 {
		return 0, false
	}
	return t.NodeFromSection(sec)
}

// VerseWords returns word-level feature values for the verse containing n.
// Each row corresponds to one word, with one column per requested feature.
// The DefaultFeature placeholder picks the first word feature the corpus
// carries; a feature the corpus lacks entirely yields empty strings for
// its column. Nodes outside a verse yield no rows.
func VerseWords(api *API, n Node, features ...string) [][]string {
	v, ok := VerseNode(api.T, n)
	if !ok {
		return nil
	}
	if len(features) == 0 {
		features = []string{DefaultFeature}
	}

	fobjs := make([]Feature, len(features))
	for i, name := range features {
		if name == DefaultFeature {
			if found, ok := FirstFeature(api.F, defaultWordFeatures...); ok {
				name = found
			}
		}
		if f, ok := api.F.Feature(name); ok {
			fobjs[i] = f
		}
	}

	words := api.L.Down(v, TypeWord)
	rows := make([][]string, 0, len(words))
	for _, w := range words {
		row := make([]string, len(fobjs))
		for i, f := range fobjs {
			if f != nil {
				row[i] = f.Value(w)
			}
		}
		rows = append(rows, row)
	}
	return rows
}
