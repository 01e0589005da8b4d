// Package ref parses SBL-style scripture reference specs and resolves
// them against a loaded corpus.
//
// A spec is a semicolon- or comma-separated list of segments:
//
//	"Ezek 1:1-3; Ezek 2:1"
//	"Gen 1, Exod 3:14"
//	"Reges II 2:1"
//
// Every segment names its book; there is no carry-over from the
// previous segment.
//
// Book designations go through the booknames alias tables, so dataset
// labels, SBL abbreviations, and historical spellings all work.
package ref

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/CedarFabric/core/booknames"
	"github.com/FocuswithJustin/CedarFabric/core/errors"
)

// Citation is a transient canonical reference value. Chapter 0 addresses
// the whole book, Verse 0 the whole chapter, VerseEnd 0 a single verse.
type Citation struct {
	Book     booknames.Book
	Chapter  int
	Verse    int
	VerseEnd int
}

// String renders the citation in SBL notation with an en dash for ranges.
func (c Citation) String() string {
	var sb strings.Builder
	sb.WriteString(c.Book.Abbrev())
	if c.Chapter == 0 {
		return sb.String()
	}
	fmt.Fprintf(&sb, " %d", c.Chapter)
	if c.Verse == 0 {
		return sb.String()
	}
	fmt.Fprintf(&sb, ":%d", c.Verse)
	if c.VerseEnd != 0 {
		fmt.Fprintf(&sb, "–%d", c.VerseEnd)
	}
	return sb.String()
}

// IsRange reports whether the citation spans multiple verses.
func (c Citation) IsRange() bool { return c.VerseEnd != 0 }

// IsChapterOnly reports whether the citation addresses a full chapter.
func (c Citation) IsChapterOnly() bool { return c.Chapter != 0 && c.Verse == 0 }

// segment is the participle grammar for one spec segment.
//
//nolint:govet // participle grammar tags are not standard struct tags
type segment struct {
	Book     string `parser:"@Book"`
	Chapter  int    `parser:"@Number"`
	Verse    *int   `parser:"( ':' @Number"`
	VerseEnd *int   `parser:"  ( Dash @Number )? )?"`
}

// specLexer tokenizes reference segments. Book names may carry a leading
// ordinal digit and internal connective words ("Song of Solomon").
var specLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Book", Pattern: `(?:[1-3]\s*)?[A-Za-z_]+(?:\s+(?:of\s+)?[A-Za-z_]+)*\.?`},
	{Name: "Number", Pattern: `\d+`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Dash", Pattern: `[-–]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var specParser = participle.MustBuild[segment](
	participle.Lexer(specLexer),
	participle.Elide("Whitespace"),
)

// ParseSpec parses a reference spec into citations, one per segment.
// Segment failures are *errors.ParseError; unknown books are
// *errors.UnknownBookError, propagated unchanged.
func ParseSpec(spec string) ([]Citation, error) {
	var out []Citation
	for _, piece := range splitSegments(spec) {
		c, err := parseSegment(piece)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if out == nil {
		return nil, &errors.ParseError{Format: "reference spec", Input: spec, Message: "empty spec"}
	}
	return out, nil
}

func splitSegments(spec string) []string {
	var out []string
	for _, piece := range strings.FieldsFunc(spec, func(r rune) bool {
		return r == ';' || r == ','
	}) {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			out = append(out, piece)
		}
	}
	return out
}

func parseSegment(piece string) (Citation, error) {
	seg, err := specParser.ParseString("", piece)
	if err != nil {
		return Citation{}, &errors.ParseError{
			Format:  "reference segment",
			Input:   piece,
			Message: "unrecognized form",
			Err:     err,
		}
	}

	book, err := booknames.Resolve(seg.Book)
	if err != nil {
		return Citation{}, err
	}

	c := Citation{Book: book, Chapter: seg.Chapter}
	if seg.Verse != nil {
		c.Verse = *seg.Verse
	}
	if seg.VerseEnd != nil {
		c.VerseEnd = *seg.VerseEnd
		if c.VerseEnd < c.Verse {
			return Citation{}, &errors.ReferenceError{
				Field: "end-verse", Value: c.VerseEnd, Message: "must be >= start verse",
			}
		}
	}
	if c.Chapter < 1 {
		return Citation{}, &errors.ReferenceError{Field: "chapter", Value: c.Chapter, Message: "must be >= 1"}
	}
	return c, nil
}
