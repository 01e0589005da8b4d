package store

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	cerrors "github.com/FocuswithJustin/CedarFabric/core/errors"
)

// XPath expressions for the container-style OSIS hierarchy.
var (
	osisBookExpr    = xpath.MustCompile(`//div[@type='book']`)
	osisChapterExpr = xpath.MustCompile(`.//chapter`)
	osisVerseExpr   = xpath.MustCompile(`.//verse`)
)

// ImportOSIS reads a container-style OSIS XML document and loads it into
// the store. Book labels come from the div osisID; chapter and verse
// numbers from the last osisID segment (falling back to the n attribute).
// Verse text is whitespace-tokenized into word nodes carrying a "text"
// feature. Milestone-style OSIS (self-closing verse markers) is not
// supported.
func (s *Store) ImportOSIS(ctx context.Context, r io.Reader) error {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return &cerrors.ParseError{Format: "OSIS", Message: err.Error(), Err: err}
	}

	books := xmlquery.QuerySelectorAll(doc, osisBookExpr)
	if len(books) == 0 {
		return &cerrors.ParseError{Format: "OSIS", Message: "no book divisions found"}
	}

	b, err := s.NewBuilder()
	if err != nil {
		return err
	}
	defer b.Rollback()

	for _, bookNode := range books {
		if err := ctx.Err(); err != nil {
			return err
		}
		label := bookNode.SelectAttr("osisID")
		if label == "" {
			return &cerrors.ParseError{Format: "OSIS", Message: "book division without osisID"}
		}
		if err := b.AddBook(label); err != nil {
			return err
		}

		for _, chapterNode := range xmlquery.QuerySelectorAll(bookNode, osisChapterExpr) {
			chapter, err := osisNumber(chapterNode)
			if err != nil {
				return err
			}
			if err := b.AddChapter(chapter); err != nil {
				return err
			}

			for _, verseNode := range xmlquery.QuerySelectorAll(chapterNode, osisVerseExpr) {
				verse, err := osisNumber(verseNode)
				if err != nil {
					return err
				}
				if err := b.AddVerse(verse); err != nil {
					return err
				}
				for _, token := range strings.Fields(verseNode.InnerText()) {
					if err := b.AddWord(map[string]string{"text": token}); err != nil {
						return err
					}
				}
			}
		}
	}

	if err := b.SetMeta("source", "osis"); err != nil {
		return err
	}
	return b.Commit()
}

// osisNumber extracts the chapter/verse number from an osisID like
// "Gen.1" or "Gen.1.3", falling back to the n attribute.
func osisNumber(node *xmlquery.Node) (int, error) {
	id := node.SelectAttr("osisID")
	if id != "" {
		parts := strings.Split(id, ".")
		if n, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			return n, nil
		}
	}
	if n, err := strconv.Atoi(node.SelectAttr("n")); err == nil {
		return n, nil
	}
	return 0, &cerrors.ParseError{
		Format: "OSIS", Input: id,
		Message: "element without numeric osisID or n attribute",
	}
}
