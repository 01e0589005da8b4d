package ref

import (
	"github.com/FocuswithJustin/CedarFabric/core/booknames"
	"github.com/FocuswithJustin/CedarFabric/core/corpus"
	"github.com/FocuswithJustin/CedarFabric/core/errors"
)

// FromNode builds the canonical citation for a node, or false when the
// node lies outside the section hierarchy or its book label is not part
// of the shared canon.
func FromNode(t corpus.Text, n corpus.Node) (Citation, bool) {
	sec, ok := t.SectionFromNode(n)
	if !ok {
		return Citation{}, false
	}
	book, err := booknames.Resolve(sec.Book)
	if err != nil {
		return Citation{}, false
	}
	return Citation{Book: book, Chapter: sec.Chapter, Verse: sec.Verse}, true
}

// VerseNodes resolves a reference spec to verse nodes of the given
// dataset, in spec order. Chapter-only segments expand to every verse of
// the chapter; explicit ranges walk start..end. Verses the corpus does
// not contain are skipped silently, since editions differ in
// versification, but a book missing from the dataset entirely is an error.
func VerseNodes(api *corpus.API, spec string) ([]corpus.Node, error) {
	citations, err := ParseSpec(spec)
	if err != nil {
		return nil, err
	}

	_, bookToLabel := corpus.BookMaps(api.T)

	var out []corpus.Node
	for _, c := range citations {
		label, ok := bookToLabel[c.Book]
		if !ok {
			return nil, &errors.NotFoundError{Resource: "book", ID: c.Book.String()}
		}

		if c.IsChapterOnly() {
			out = append(out, api.T.NodesFromSection(label, c.Chapter)...)
			continue
		}

		end := c.Verse
		if c.VerseEnd != 0 {
			end = c.VerseEnd
		}
		for v := c.Verse; v <= end; v++ {
			sec := corpus.Section{Book: label, Chapter: c.Chapter, Verse: v}
			if n, ok := api.T.NodeFromSection(sec); ok {
				out = append(out, n)
			}
		}
	}
	return out, nil
}

// Refs resolves a spec and renders the SBL reference of each matching
// verse, in spec order.
func Refs(api *corpus.API, spec string) ([]string, error) {
	nodes, err := VerseNodes(api, spec)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, corpus.RefSBL(api.T, n))
	}
	return out, nil
}
