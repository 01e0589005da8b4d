// Package store implements the corpus capability contracts on top of a
// local SQLite database. One database file holds one corpus: its
// book/chapter/verse/word hierarchy and node-level features.
//
// Node ids are assigned densely in document order at import time, so
// ordering comparisons on ids match text order for nodes of one type.
package store

import (
	"context"
	"database/sql"
	"regexp"

	"github.com/FocuswithJustin/CedarFabric/core/corpus"
	cerrors "github.com/FocuswithJustin/CedarFabric/core/errors"
	"github.com/FocuswithJustin/CedarFabric/core/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS books (
	node     INTEGER PRIMARY KEY,
	label    TEXT NOT NULL UNIQUE,
	position INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS chapters (
	node      INTEGER PRIMARY KEY,
	book_node INTEGER NOT NULL REFERENCES books(node),
	chapter   INTEGER NOT NULL,
	UNIQUE (book_node, chapter)
);
CREATE TABLE IF NOT EXISTS verses (
	node         INTEGER PRIMARY KEY,
	chapter_node INTEGER NOT NULL REFERENCES chapters(node),
	verse        INTEGER NOT NULL,
	UNIQUE (chapter_node, verse)
);
CREATE TABLE IF NOT EXISTS words (
	node       INTEGER PRIMARY KEY,
	verse_node INTEGER NOT NULL REFERENCES verses(node),
	position   INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS features (
	node  INTEGER NOT NULL,
	name  TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (node, name)
);
CREATE INDEX IF NOT EXISTS idx_features_name ON features(name);
CREATE INDEX IF NOT EXISTS idx_words_verse ON words(verse_node);
`

// Store is a SQLite-backed corpus. It implements corpus.Features,
// corpus.Locality, corpus.Text, and corpus.Search. Read methods are safe
// for concurrent use.
type Store struct {
	db       *sql.DB
	path     string
	features map[string]bool
}

// Create creates a new, empty corpus database at path.
func Create(path string) (*Store, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, &cerrors.IOError{Operation: "create", Path: path, Err: err}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, &cerrors.IOError{Operation: "initialize", Path: path, Err: err}
	}
	return &Store{db: db, path: path, features: map[string]bool{}}, nil
}

// Open opens an existing corpus database read-write and loads its feature
// inventory.
func Open(path string) (*Store, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, &cerrors.IOError{Operation: "open", Path: path, Err: err}
	}
	s := &Store{db: db, path: path}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, &cerrors.IOError{Operation: "initialize", Path: path, Err: err}
	}
	if err := s.loadFeatureNames(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// API bundles this store as the four corpus capabilities under the given
// dataset identity.
func (s *Store) API(name, version string) *corpus.API {
	return &corpus.API{Name: name, Version: version, F: s, L: s, T: s, S: s}
}

// Meta returns a metadata value recorded at import time ("" if unset).
func (s *Store) Meta(key string) string {
	var v string
	if err := s.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&v); err != nil {
		return ""
	}
	return v
}

func (s *Store) loadFeatureNames() error {
	rows, err := s.db.Query(`SELECT DISTINCT name FROM features`)
	if err != nil {
		return &cerrors.IOError{Operation: "read", Path: s.path, Err: err}
	}
	defer rows.Close()
	s.features = make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return &cerrors.IOError{Operation: "read", Path: s.path, Err: err}
		}
		s.features[name] = true
	}
	return rows.Err()
}

func (s *Store) queryNodes(query string, args ...any) []corpus.Node {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil
	}
	defer rows.Close()
	var out []corpus.Node
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return out
		}
		out = append(out, corpus.Node(n))
	}
	return out
}

// feature reads one feature column.
type feature struct {
	s    *Store
	name string
}

// Value implements corpus.Feature. An unset feature reads as "".
func (f feature) Value(n corpus.Node) string {
	var v string
	err := f.s.db.QueryRow(
		`SELECT value FROM features WHERE node = ? AND name = ?`, int(n), f.name,
	).Scan(&v)
	if err != nil {
		return ""
	}
	return v
}

// Feature implements corpus.Features.
func (s *Store) Feature(name string) (corpus.Feature, bool) {
	if !s.features[name] {
		return nil, false
	}
	return feature{s: s, name: name}, true
}

// Has implements corpus.Features.
func (s *Store) Has(name string) bool { return s.features[name] }

// NodesOfType implements corpus.Features.
func (s *Store) NodesOfType(otype string) []corpus.Node {
	switch otype {
	case corpus.TypeBook:
		return s.queryNodes(`SELECT node FROM books ORDER BY position`)
	case corpus.TypeChapter:
		return s.queryNodes(`SELECT node FROM chapters ORDER BY node`)
	case corpus.TypeVerse:
		return s.queryNodes(`SELECT node FROM verses ORDER BY node`)
	case corpus.TypeWord:
		return s.queryNodes(`SELECT node FROM words ORDER BY node`)
	default:
		return nil
	}
}

// nodeType reports which structural table holds n.
func (s *Store) nodeType(n corpus.Node) string {
	var one int
	if err := s.db.QueryRow(`SELECT 1 FROM words WHERE node = ?`, int(n)).Scan(&one); err == nil {
		return corpus.TypeWord
	}
	if err := s.db.QueryRow(`SELECT 1 FROM verses WHERE node = ?`, int(n)).Scan(&one); err == nil {
		return corpus.TypeVerse
	}
	if err := s.db.QueryRow(`SELECT 1 FROM chapters WHERE node = ?`, int(n)).Scan(&one); err == nil {
		return corpus.TypeChapter
	}
	if err := s.db.QueryRow(`SELECT 1 FROM books WHERE node = ?`, int(n)).Scan(&one); err == nil {
		return corpus.TypeBook
	}
	return ""
}

// Down implements corpus.Locality.
func (s *Store) Down(n corpus.Node, otype string) []corpus.Node {
	switch s.nodeType(n) {
	case corpus.TypeBook:
		switch otype {
		case corpus.TypeChapter:
			return s.queryNodes(`SELECT node FROM chapters WHERE book_node = ? ORDER BY chapter`, int(n))
		case corpus.TypeVerse:
			return s.queryNodes(
				`SELECT v.node FROM verses v JOIN chapters c ON v.chapter_node = c.node
				 WHERE c.book_node = ? ORDER BY v.node`, int(n))
		case corpus.TypeWord:
			return s.queryNodes(
				`SELECT w.node FROM words w
				 JOIN verses v ON w.verse_node = v.node
				 JOIN chapters c ON v.chapter_node = c.node
				 WHERE c.book_node = ? ORDER BY w.node`, int(n))
		}
	case corpus.TypeChapter:
		switch otype {
		case corpus.TypeVerse:
			return s.queryNodes(`SELECT node FROM verses WHERE chapter_node = ? ORDER BY verse`, int(n))
		case corpus.TypeWord:
			return s.queryNodes(
				`SELECT w.node FROM words w JOIN verses v ON w.verse_node = v.node
				 WHERE v.chapter_node = ? ORDER BY w.node`, int(n))
		}
	case corpus.TypeVerse:
		if otype == corpus.TypeWord {
			return s.queryNodes(`SELECT node FROM words WHERE verse_node = ? ORDER BY position`, int(n))
		}
	}
	return nil
}

// Up implements corpus.Locality.
func (s *Store) Up(n corpus.Node, otype string) (corpus.Node, bool) {
	var q string
	switch s.nodeType(n) {
	case corpus.TypeWord:
		switch otype {
		case corpus.TypeVerse:
			q = `SELECT verse_node FROM words WHERE node = ?`
		case corpus.TypeChapter:
			q = `SELECT v.chapter_node FROM words w JOIN verses v ON w.verse_node = v.node WHERE w.node = ?`
		case corpus.TypeBook:
			q = `SELECT c.book_node FROM words w
			     JOIN verses v ON w.verse_node = v.node
			     JOIN chapters c ON v.chapter_node = c.node WHERE w.node = ?`
		}
	case corpus.TypeVerse:
		switch otype {
		case corpus.TypeChapter:
			q = `SELECT chapter_node FROM verses WHERE node = ?`
		case corpus.TypeBook:
			q = `SELECT c.book_node FROM verses v JOIN chapters c ON v.chapter_node = c.node WHERE v.node = ?`
		}
	case corpus.TypeChapter:
		if otype == corpus.TypeBook {
			q = `SELECT book_node FROM chapters WHERE node = ?`
		}
	}
	if q == "" {
		return 0, false
	}
	var parent int
	if err := s.db.QueryRow(q, int(n)).Scan(&parent); err != nil {
		return 0, false
	}
	return corpus.Node(parent), true
}

// SectionFromNode implements corpus.Text.
func (s *Store) SectionFromNode(n corpus.Node) (corpus.Section, bool) {
	switch s.nodeType(n) {
	case corpus.TypeBook:
		var label string
		if err := s.db.QueryRow(`SELECT label FROM books WHERE node = ?`, int(n)).Scan(&label); err != nil {
			return corpus.Section{}, false
		}
		return corpus.Section{Book: label}, true
	case corpus.TypeChapter:
		var label string
		var chapter int
		err := s.db.QueryRow(
			`SELECT b.label, c.chapter FROM chapters c JOIN books b ON c.book_node = b.node
			 WHERE c.node = ?`, int(n)).Scan(&label, &chapter)
		if err != nil {
			return corpus.Section{}, false
		}
		return corpus.Section{Book: label, Chapter: chapter}, true
	case corpus.TypeVerse:
		return s.verseSection(`v.node = ?`, int(n))
	case corpus.TypeWord:
		return s.verseSection(`v.node = (SELECT verse_node FROM words WHERE node = ?)`, int(n))
	}
	return corpus.Section{}, false
}

func (s *Store) verseSection(cond string, arg int) (corpus.Section, bool) {
	var label string
	var chapter, verse int
	err := s.db.QueryRow(
		`SELECT b.label, c.chapter, v.verse FROM verses v
		 JOIN chapters c ON v.chapter_node = c.node
		 JOIN books b ON c.book_node = b.node
		 WHERE `+cond, arg).Scan(&label, &chapter, &verse)
	if err != nil {
		return corpus.Section{}, false
	}
	return corpus.Section{Book: label, Chapter: chapter, Verse: verse}, true
}

// NodeFromSection implements corpus.Text.
func (s *Store) NodeFromSection(sec corpus.Section) (corpus.Node, bool) {
	var n int
	var err error
	switch {
	case sec.Chapter == 0:
		err = s.db.QueryRow(`SELECT node FROM books WHERE label = ?`, sec.Book).Scan(&n)
	case sec.Verse == 0:
		err = s.db.QueryRow(
			`SELECT c.node FROM chapters c JOIN books b ON c.book_node = b.node
			 WHERE b.label = ? AND c.chapter = ?`, sec.Book, sec.Chapter).Scan(&n)
	default:
		err = s.db.QueryRow(
			`SELECT v.node FROM verses v
			 JOIN chapters c ON v.chapter_node = c.node
			 JOIN books b ON c.book_node = b.node
			 WHERE b.label = ? AND c.chapter = ? AND v.verse = ?`,
			sec.Book, sec.Chapter, sec.Verse).Scan(&n)
	}
	if err != nil {
		return 0, false
	}
	return corpus.Node(n), true
}

// NodesFromSection implements corpus.Text.
func (s *Store) NodesFromSection(book string, chapter int) []corpus.Node {
	return s.queryNodes(
		`SELECT v.node FROM verses v
		 JOIN chapters c ON v.chapter_node = c.node
		 JOIN books b ON c.book_node = b.node
		 WHERE b.label = ? AND c.chapter = ? ORDER BY v.verse`, book, chapter)
}

// BookLabels implements corpus.Text.
func (s *Store) BookLabels() []string {
	rows, err := s.db.Query(`SELECT label FROM books ORDER BY position`)
	if err != nil {
		return nil
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return out
		}
		out = append(out, label)
	}
	return out
}

// Words implements corpus.Search. The pattern is a Go regular expression
// matched against the feature value of every word node; matching runs in
// the process, not in SQLite.
func (s *Store) Words(ctx context.Context, featureName, pattern string) ([]corpus.Node, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &cerrors.ParseError{Format: "search pattern", Input: pattern, Message: err.Error(), Err: err}
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT f.node, f.value FROM features f
		 JOIN words w ON f.node = w.node
		 WHERE f.name = ? ORDER BY f.node`, featureName)
	if err != nil {
		return nil, &cerrors.IOError{Operation: "search", Path: s.path, Err: err}
	}
	defer rows.Close()

	var out []corpus.Node
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var n int
		var v string
		if err := rows.Scan(&n, &v); err != nil {
			return nil, &cerrors.IOError{Operation: "search", Path: s.path, Err: err}
		}
		if re.MatchString(v) {
			out = append(out, corpus.Node(n))
		}
	}
	return out, rows.Err()
}
