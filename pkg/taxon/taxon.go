// Package taxon implements the nested-set taxonomy model used by the
// checklist service.
//
// Every taxon row carries a (Left, Right) interval. A taxon A is a
// descendant of B iff B.Left <= A.Left and A.Right <= B.Right, so subtree
// membership reduces to interval comparison over a loaded table; no tree
// pointer structure is needed.
package taxon

import (
	"slices"
	"strings"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
)

// Level is the taxonomic rank of a node.
type Level string

const (
	LevelFamily  Level = "family"
	LevelGenus   Level = "genus"
	LevelSpecies Level = "species"
	LevelOrder   Level = "order"
	LevelHigher  Level = "higher"
)

// Node is one row of the taxonomy table.
type Node struct {
	// ID is the stable taxon identifier from the data service.
	ID int `json:"taxon_ID"`

	// Name is the scientific name as stored by the service.
	Name string `json:"taxon_name"`

	// Author is the name authorship string.
	Author string `json:"taxon_author"`

	// Level is the taxonomic rank.
	Level Level `json:"taxon_lvl"`

	// Left and Right are the nested-set bounds.
	Left  int `json:"lft"`
	Right int `json:"rgt"`
}

// Span returns the width of the node's nested-set interval.
func (n Node) Span() int {
	return n.Right - n.Left
}

// Contains reports whether other is nested inside n's interval,
// n itself included.
func (n Node) Contains(other Node) bool {
	return n.Left <= other.Left && other.Right <= n.Right
}

// Taxonomy is a read-only taxonomy table with name and ID indices.
// It is owned by the caller and never mutated after construction.
type Taxonomy struct {
	nodes       []Node
	byID        map[int]int
	byName      map[string]int
	byCanonical map[string]int
}

// NewTaxonomy indexes the given nodes. Besides verbatim names it indexes
// canonical forms produced by gnparser with the botanical code, so that
// "Poa annua L." still finds the row stored as "Poa annua".
func NewTaxonomy(nodes []Node) *Taxonomy {
	t := &Taxonomy{
		nodes:       nodes,
		byID:        make(map[int]int, len(nodes)),
		byName:      make(map[string]int, len(nodes)),
		byCanonical: make(map[string]int, len(nodes)),
	}

	pCfg := gnparser.NewConfig(gnparser.OptCode(nomcode.Botanical))
	parser := gnparser.New(pCfg)

	for i, n := range nodes {
		t.byID[n.ID] = i
		if _, ok := t.byName[n.Name]; !ok {
			t.byName[n.Name] = i
		}

		parsed := parser.ParseName(n.Name)
		if parsed.Parsed {
			can := parsed.Canonical.Simple
			if _, ok := t.byCanonical[can]; !ok {
				t.byCanonical[can] = i
			}
		}
	}

	return t
}

// Len returns the number of taxa in the table.
func (t *Taxonomy) Len() int {
	return len(t.nodes)
}

// Get returns the node with the given taxon ID.
func (t *Taxonomy) Get(id int) (Node, bool) {
	i, ok := t.byID[id]
	if !ok {
		return Node{}, false
	}
	return t.nodes[i], true
}

// ByName finds a taxon by its name. Exact match wins; otherwise the
// canonical form of the query is tried against canonical forms of the
// stored names. Returns TaxonNotFoundError when nothing matches.
func (t *Taxonomy) ByName(name string) (Node, error) {
	if len(t.nodes) == 0 {
		return Node{}, EmptyTaxonomyError()
	}

	name = strings.TrimSpace(name)
	if i, ok := t.byName[name]; ok {
		return t.nodes[i], nil
	}

	pCfg := gnparser.NewConfig(gnparser.OptCode(nomcode.Botanical))
	parser := gnparser.New(pCfg)
	parsed := parser.ParseName(name)
	if parsed.Parsed {
		if i, ok := t.byCanonical[parsed.Canonical.Simple]; ok {
			return t.nodes[i], nil
		}
	}

	return Node{}, NotFoundError(name)
}

// Subtree returns the IDs of all taxa relevant to the target: true
// descendants (target included) plus strict ancestors. Ancestors are
// included because a checklist tagged at an ancestor level still has to be
// considered when coverage of the target group is checked.
// The result is sorted by ID.
func (t *Taxonomy) Subtree(name string) ([]int, error) {
	target, err := t.ByName(name)
	if err != nil {
		return nil, err
	}

	var ids []int
	for _, n := range t.nodes {
		below := target.Contains(n)
		above := n.Left < target.Left && target.Right < n.Right
		if below || above {
			ids = append(ids, n.ID)
		}
	}
	slices.Sort(ids)

	return ids, nil
}

// Span returns the nested-set interval width of the named taxon. It is the
// "full coverage" reference width used by the complete-coverage checklist
// filter.
func (t *Taxonomy) Span(name string) (int, error) {
	target, err := t.ByName(name)
	if err != nil {
		return 0, err
	}
	return target.Span(), nil
}
