// Package corpus defines the capability contracts a loaded linguistic
// corpus exposes: feature access, locality, text rendering, and search.
//
// Each supported dataset provides concrete implementations of these four
// interfaces; consumers receive them bundled in an API value and never
// depend on how a particular corpus stores its nodes.
package corpus

import "context"

// Node identifies a structural node (book, chapter, verse, word) within a
// corpus. Node ids are dense and follow document order: for two nodes of
// the same type, a smaller id means an earlier position in the text.
type Node int

// Structural node types shared by all supported corpora.
const (
	TypeBook    = "book"
	TypeChapter = "chapter"
	TypeVerse   = "verse"
	TypeWord    = "word"
)

// Section locates a node within the book/chapter/verse hierarchy using the
// dataset's native book label. Chapter and Verse are zero for nodes above
// that level (a book node has Chapter 0 and Verse 0).
type Section struct {
	Book    string
	Chapter int
	Verse   int
}

// Feature gives read access to one node-level feature.
type Feature interface {
	// Value returns the feature value for a node, empty if unset.
	Value(n Node) string
}

// Features is the feature-access capability.
type Features interface {
	// Feature returns the named feature, or false if the corpus lacks it.
	Feature(name string) (Feature, bool)

	// Has reports whether the corpus carries the named feature.
	Has(name string) bool

	// NodesOfType returns all nodes of the given structural type in
	// document order.
	NodesOfType(otype string) []Node
}

// Locality is the containment/ordering capability between nodes.
type Locality interface {
	// Down returns the nodes of the given type contained in n, in
	// document order.
	Down(n Node, otype string) []Node

	// Up returns the enclosing node of the given type, or false if n has
	// no ancestor of that type.
	Up(n Node, otype string) (Node, bool)
}

// Text is the text-rendering capability: resolution between nodes and
// sections.
type Text interface {
	// SectionFromNode returns the section containing n, or false if the
	// node is outside the section hierarchy.
	SectionFromNode(n Node) (Section, bool)

	// NodeFromSection returns the node addressed by a section, or false
	// if the corpus has no such section. A section with Verse 0 addresses
	// the chapter node; Chapter 0 addresses the book node.
	NodeFromSection(sec Section) (Node, bool)

	// NodesFromSection returns all verse nodes of a chapter in document
	// order, empty if the chapter does not exist.
	NodesFromSection(book string, chapter int) []Node

	// BookLabels returns the dataset's native book labels in canon order.
	BookLabels() []string
}

// Search is the search capability over word-level features.
type Search interface {
	// Words returns word nodes whose feature value matches the regular
	// expression pattern, in document order.
	Words(ctx context.Context, feature, pattern string) ([]Node, error)
}

// API bundles the four capabilities of one loaded dataset together with
// its identity. It is the explicit handle returned by loaders; callers
// decide how to bind its fields.
type API struct {
	// Name is the dataset identifier (e.g., "etcbc/bhsa").
	Name string

	// Version is the dataset version string (e.g., "2021").
	Version string

	F Features
	L Locality
	T Text
	S Search
}
