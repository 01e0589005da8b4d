package corpus_test

import (
	"context"
	"testing"

	"github.com/FocuswithJustin/CedarFabric/core/booknames"
	"github.com/FocuswithJustin/CedarFabric/core/corpus"
	"github.com/FocuswithJustin/CedarFabric/core/corpus/corpustest"
	"github.com/FocuswithJustin/CedarFabric/core/errors"
)

func testAPI() *corpus.API {
	return corpustest.New("etcbc/bhsa", "2021", "g_cons_utf8", []corpustest.BookSpec{
		{
			Label: "Jesaia",
			Chapters: [][][]string{
				{
					{"XZWN", "JCYHW", "BN", "AMWY"},
					{"CMYW", "CMJM"},
				},
			},
		},
		{
			Label: "Reges_II",
			Chapters: [][][]string{
				{{"WJHJ", "AXRJ"}, {"WJYL", "MWAB"}},
				{{"WJHJ", "BHYLWT"}},
			},
		},
	})
}

func TestRefDataset(t *testing.T) {
	api := testAPI()
	words := api.F.NodesOfType(corpus.TypeWord)
	if len(words) == 0 {
		t.Fatal("no word nodes")
	}
	if got := corpus.RefDataset(api.T, words[0]); got != "Jesaia 1:1" {
		t.Errorf("RefDataset(first word) = %q; want %q", got, "Jesaia 1:1")
	}

	books := api.F.NodesOfType(corpus.TypeBook)
	if got := corpus.RefDataset(api.T, books[1]); got != "Reges_II" {
		t.Errorf("RefDataset(book) = %q; want %q", got, "Reges_II")
	}

	if got := corpus.RefDataset(api.T, corpus.Node(99999)); got != "?" {
		t.Errorf("RefDataset(bogus node) = %q; want ?", got)
	}
}

func TestRefSBL(t *testing.T) {
	api := testAPI()
	words := api.F.NodesOfType(corpus.TypeWord)
	if got := corpus.RefSBL(api.T, words[0]); got != "Isa 1:1" {
		t.Errorf("RefSBL(first word) = %q; want %q", got, "Isa 1:1")
	}

	chapters := api.F.NodesOfType(corpus.TypeChapter)
	// Second book, first chapter.
	if got := corpus.RefSBL(api.T, chapters[1]); got != "2 Kgs 1" {
		t.Errorf("RefSBL(chapter) = %q; want %q", got, "2 Kgs 1")
	}
}

func TestVerseNode(t *testing.T) {
	api := testAPI()
	words := api.F.NodesOfType(corpus.TypeWord)
	verses := api.F.NodesOfType(corpus.TypeVerse)

	v, ok := corpus.VerseNode(api.T, words[0])
	if !ok {
		t.Fatal("VerseNode(word) not found")
	}
	if v != verses[0] {
		t.Errorf("VerseNode(first word) = %v; want %v", v, verses[0])
	}

	// A book node lies above the verse level.
	books := api.F.NodesOfType(corpus.TypeBook)
	if _, ok := corpus.VerseNode(api.T, books[0]); ok {
		t.Error("VerseNode(book) should report false")
	}
}

func TestVerseWords(t *testing.T) {
	api := testAPI()
	words := api.F.NodesOfType(corpus.TypeWord)

	rows := corpus.VerseWords(api, words[0])
	if len(rows) != 4 {
		t.Fatalf("VerseWords returned %d rows; want 4", len(rows))
	}
	if rows[0][0] != "XZWN" || rows[3][0] != "AMWY" {
		t.Errorf("VerseWords rows = %v; want verse 1 words in order", rows)
	}

	// Explicit feature name plus a missing feature: the missing column is
	// empty, the known column still filled.
	rows = corpus.VerseWords(api, words[0], "g_cons_utf8", "lex")
	if rows[0][0] != "XZWN" || rows[0][1] != "" {
		t.Errorf("VerseWords with missing feature = %v; want value and empty", rows[0])
	}
}

func TestFirstFeature(t *testing.T) {
	api := testAPI()
	name, ok := corpus.FirstFeature(api.F, "g_word_utf8", "g_cons_utf8", "text")
	if !ok || name != "g_cons_utf8" {
		t.Errorf("FirstFeature = %q, %v; want g_cons_utf8, true", name, ok)
	}
	if _, ok := corpus.FirstFeature(api.F, "nope"); ok {
		t.Error("FirstFeature(nope) should report false")
	}
}

func TestBookMaps(t *testing.T) {
	api := testAPI()
	labelToBook, bookToLabel := corpus.BookMaps(api.T)

	if got := labelToBook["Jesaia"]; got != booknames.Isaiah {
		t.Errorf("labelToBook[Jesaia] = %v; want Isaiah", got)
	}
	if got := labelToBook["Reges_II"]; got != booknames.SecondKings {
		t.Errorf("labelToBook[Reges_II] = %v; want SecondKings", got)
	}
	if got := bookToLabel[booknames.SecondKings]; got != "Reges_II" {
		t.Errorf("bookToLabel[SecondKings] = %q; want Reges_II", got)
	}
}

func TestDatasetBook(t *testing.T) {
	api := testAPI()

	tests := []struct {
		designation string
		want        string
	}{
		{"Ezek", ""},        // recognized book, absent from dataset
		{"Isa", "Jesaia"},   // SBL abbreviation
		{"Isaiah", "Jesaia"},
		{"2 Kgs", "Reges_II"},
		{"reges_ii", "Reges_II"}, // dataset label, case-insensitive
	}
	for _, tt := range tests {
		got, err := corpus.DatasetBook(api.T, tt.designation)
		if tt.want == "" {
			if !errors.Is(err, errors.ErrNotFound) {
				t.Errorf("DatasetBook(%q) error = %v; want ErrNotFound", tt.designation, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("DatasetBook(%q) error: %v", tt.designation, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DatasetBook(%q) = %q; want %q", tt.designation, got, tt.want)
		}
	}

	if _, err := corpus.DatasetBook(api.T, "Not A Book"); err == nil {
		t.Error("DatasetBook(Not A Book) should fail")
	}
}

func TestSearchWords(t *testing.T) {
	api := testAPI()
	nodes, err := api.S.Words(context.Background(), "g_cons_utf8", "^WJHJ$")
	if err != nil {
		t.Fatalf("Words error: %v", err)
	}
	if len(nodes) != 2 {
		t.Errorf("Words(^WJHJ$) returned %d nodes; want 2", len(nodes))
	}
}
