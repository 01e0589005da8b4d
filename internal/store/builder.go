package store

import (
	"database/sql"

	cerrors "github.com/FocuswithJustin/CedarFabric/core/errors"
)

// Builder inserts corpus content in document order inside one
// transaction. Node ids are handed out sequentially, so document order
// and id order agree.
type Builder struct {
	s        *Store
	tx       *sql.Tx
	nextNode int
	bookPos  int

	curBook    int
	curChapter int
	curVerse   int
	wordPos    int
}

// NewBuilder starts an import transaction. Call Commit to finish or
// Rollback to discard.
func (s *Store) NewBuilder() (*Builder, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, &cerrors.IOError{Operation: "begin import", Path: s.path, Err: err}
	}
	b := &Builder{s: s, tx: tx, nextNode: 1}
	var maxNode sql.NullInt64
	err = tx.QueryRow(
		`SELECT MAX(n) FROM (
			SELECT MAX(node) AS n FROM books
			UNION ALL SELECT MAX(node) FROM chapters
			UNION ALL SELECT MAX(node) FROM verses
			UNION ALL SELECT MAX(node) FROM words)`).Scan(&maxNode)
	if err == nil && maxNode.Valid {
		b.nextNode = int(maxNode.Int64) + 1
	}
	var books int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM books`).Scan(&books); err == nil {
		b.bookPos = books
	}
	return b, nil
}

func (b *Builder) alloc() int {
	n := b.nextNode
	b.nextNode++
	return n
}

// AddBook opens a new book with the dataset's native label.
func (b *Builder) AddBook(label string) error {
	n := b.alloc()
	_, err := b.tx.Exec(`INSERT INTO books (node, label, position) VALUES (?, ?, ?)`,
		n, label, b.bookPos)
	if err != nil {
		return &cerrors.IOError{Operation: "insert book", Path: b.s.path, Err: err}
	}
	b.bookPos++
	b.curBook = n
	b.curChapter = 0
	b.curVerse = 0
	return nil
}

// AddChapter opens chapter number within the current book.
func (b *Builder) AddChapter(number int) error {
	if b.curBook == 0 {
		return &cerrors.ParseError{Format: "corpus import", Message: "chapter before any book"}
	}
	n := b.alloc()
	_, err := b.tx.Exec(`INSERT INTO chapters (node, book_node, chapter) VALUES (?, ?, ?)`,
		n, b.curBook, number)
	if err != nil {
		return &cerrors.IOError{Operation: "insert chapter", Path: b.s.path, Err: err}
	}
	b.curChapter = n
	b.curVerse = 0
	return nil
}

// AddVerse opens verse number within the current chapter.
func (b *Builder) AddVerse(number int) error {
	if b.curChapter == 0 {
		return &cerrors.ParseError{Format: "corpus import", Message: "verse before any chapter"}
	}
	n := b.alloc()
	_, err := b.tx.Exec(`INSERT INTO verses (node, chapter_node, verse) VALUES (?, ?, ?)`,
		n, b.curChapter, number)
	if err != nil {
		return &cerrors.IOError{Operation: "insert verse", Path: b.s.path, Err: err}
	}
	b.curVerse = n
	b.wordPos = 0
	return nil
}

// AddWord appends a word to the current verse with its feature values.
func (b *Builder) AddWord(features map[string]string) error {
	if b.curVerse == 0 {
		return &cerrors.ParseError{Format: "corpus import", Message: "word before any verse"}
	}
	n := b.alloc()
	_, err := b.tx.Exec(`INSERT INTO words (node, verse_node, position) VALUES (?, ?, ?)`,
		n, b.curVerse, b.wordPos)
	if err != nil {
		return &cerrors.IOError{Operation: "insert word", Path: b.s.path, Err: err}
	}
	b.wordPos++
	for name, value := range features {
		_, err := b.tx.Exec(`INSERT INTO features (node, name, value) VALUES (?, ?, ?)`,
			n, name, value)
		if err != nil {
			return &cerrors.IOError{Operation: "insert feature", Path: b.s.path, Err: err}
		}
	}
	return nil
}

// SetMeta records a metadata key for the corpus.
func (b *Builder) SetMeta(key, value string) error {
	_, err := b.tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value)
	if err != nil {
		return &cerrors.IOError{Operation: "insert meta", Path: b.s.path, Err: err}
	}
	return nil
}

// Commit finishes the import and refreshes the store's feature inventory.
func (b *Builder) Commit() error {
	if err := b.tx.Commit(); err != nil {
		return &cerrors.IOError{Operation: "commit import", Path: b.s.path, Err: err}
	}
	return b.s.loadFeatureNames()
}

// Rollback discards the import.
func (b *Builder) Rollback() error {
	return b.tx.Rollback()
}
