// Package corpustest provides a small in-memory corpus implementing all
// four capability contracts, for use in tests.
package corpustest

import (
	"context"
	"regexp"

	"github.com/FocuswithJustin/CedarFabric/core/corpus"
)

// BookSpec describes one book of a test corpus: a native label and its
// chapters, each chapter being a list of verses, each verse a list of
// word values.
type BookSpec struct {
	Label    string
	Chapters [][][]string
}

// Corpus is an in-memory corpus. It implements corpus.Features,
// corpus.Locality, corpus.Text, and corpus.Search.
type Corpus struct {
	feature    string
	bookLabels []string

	nodesByType map[string][]corpus.Node
	sectionOf   map[corpus.Node]corpus.Section
	nodeOf      map[corpus.Section]corpus.Node
	children    map[corpus.Node]map[string][]corpus.Node
	parents     map[corpus.Node]map[string]corpus.Node
	values      map[corpus.Node]string
}

// New builds a corpus from the given books and returns its API bundle.
// Word values are exposed under the named feature. Node ids are assigned
// densely in document order, matching the dense-id contract.
func New(name, version, feature string, books []BookSpec) *corpus.API {
	c := &Corpus{
		feature:     feature,
		nodesByType: make(map[string][]corpus.Node),
		sectionOf:   make(map[corpus.Node]corpus.Section),
		nodeOf:      make(map[corpus.Section]corpus.Node),
		children:    make(map[corpus.Node]map[string][]corpus.Node),
		parents:     make(map[corpus.Node]map[string]corpus.Node),
		values:      make(map[corpus.Node]string),
	}

	next := corpus.Node(1)
	alloc := func(otype string) corpus.Node {
		n := next
		next++
		c.nodesByType[otype] = append(c.nodesByType[otype], n)
		return n
	}
	link := func(parent corpus.Node, ptype string, child corpus.Node) {
		if c.children[parent] == nil {
			c.children[parent] = make(map[string][]corpus.Node)
		}
		childType := c.typeOfLast(child)
		c.children[parent][childType] = append(c.children[parent][childType], child)
		if c.parents[child] == nil {
			c.parents[child] = make(map[string]corpus.Node)
		}
		c.parents[child][ptype] = parent
	}

	for _, bs := range books {
		c.bookLabels = append(c.bookLabels, bs.Label)
		bnode := alloc(corpus.TypeBook)
		bsec := corpus.Section{Book: bs.Label}
		c.sectionOf[bnode] = bsec
		c.nodeOf[bsec] = bnode

		for ci, chapter := range bs.Chapters {
			cnode := alloc(corpus.TypeChapter)
			csec := corpus.Section{Book: bs.Label, Chapter: ci + 1}
			c.sectionOf[cnode] = csec
			c.nodeOf[csec] = cnode
			link(bnode, corpus.TypeBook, cnode)

			for vi, verse := range chapter {
				vnode := alloc(corpus.TypeVerse)
				vsec := corpus.Section{Book: bs.Label, Chapter: ci + 1, Verse: vi + 1}
				c.sectionOf[vnode] = vsec
				c.nodeOf[vsec] = vnode
				link(bnode, corpus.TypeBook, vnode)
				link(cnode, corpus.TypeChapter, vnode)

				for _, word := range verse {
					wnode := alloc(corpus.TypeWord)
					c.sectionOf[wnode] = vsec
					c.values[wnode] = word
					link(bnode, corpus.TypeBook, wnode)
					link(cnode, corpus.TypeChapter, wnode)
					link(vnode, corpus.TypeVerse, wnode)
				}
			}
		}
	}

	return &corpus.API{Name: name, Version: version, F: c, L: c, T: c, S: c}
}

func (c *Corpus) typeOfLast(n corpus.Node) string {
	for otype, nodes := range c.nodesByType {
		for _, m := range nodes {
			if m == n {
				return otype
			}
		}
	}
	return ""
}

type feat struct{ c *Corpus }

func (f feat) Value(n corpus.Node) string { return f.c.values[n] }

// Feature implements corpus.Features.
func (c *Corpus) Feature(name string) (corpus.Feature, bool) {
	if name != c.feature {
		return nil, false
	}
	return feat{c}, true
}

// Has implements corpus.Features.
func (c *Corpus) Has(name string) bool { return name == c.feature }

// NodesOfType implements corpus.Features.
func (c *Corpus) NodesOfType(otype string) []corpus.Node {
	return append([]corpus.Node(nil), c.nodesByType[otype]...)
}

// Down implements corpus.Locality.
func (c *Corpus) Down(n corpus.Node, otype string) []corpus.Node {
	return append([]corpus.Node(nil), c.children[n][otype]...)
}

// Up implements corpus.Locality.
func (c *Corpus) Up(n corpus.Node, otype string) (corpus.Node, bool) {
	p, ok := c.parents[n][otype]
	return p, ok
}

// SectionFromNode implements corpus.Text.
func (c *Corpus) SectionFromNode(n corpus.Node) (corpus.Section, bool) {
	sec, ok := c.sectionOf[n]
	return sec, ok
}

// NodeFromSection implements corpus.Text.
func (c *Corpus) NodeFromSection(sec corpus.Section) (corpus.Node, bool) {
	n, ok := c.nodeOf[sec]
	return n, ok
}

// NodesFromSection implements corpus.Text.
func (c *Corpus) NodesFromSection(book string, chapter int) []corpus.Node {
	cnode, ok := c.nodeOf[corpus.Section{Book: book, Chapter: chapter}]
	if !ok {
		return nil
	}
	return c.Down(cnode, corpus.TypeVerse)
}

// BookLabels implements corpus.Text.
func (c *Corpus) BookLabels() []string {
	return append([]string(nil), c.bookLabels...)
}

// Words implements corpus.Search.
func (c *Corpus) Words(ctx context.Context, feature, pattern string) ([]corpus.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if feature != c.feature {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	var out []corpus.Node
	for _, w := range c.nodesByType[corpus.TypeWord] {
		if re.MatchString(c.values[w]) {
			out = append(out, w)
		}
	}
	return out, nil
}
