// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"slices"
	"strings"
)

// A Pair is a pair of terminal taxa
// used to identify an internal node.
type Pair struct {
	Left  string
	Right string
}

// Canon returns the pair in lexicographic order.
func (p Pair) Canon() Pair {
	if p.Right < p.Left {
		return Pair{Left: p.Right, Right: p.Left}
	}
	return p
}

// IDMap stores the identifying pair
// of the internal nodes of a tree.
type IDMap map[int]Pair

// Identifiers returns the identifying pair
// of each internal node of a tree.
//
// The pair of a node is made of the first taxon
// of its first child,
// and the first taxon of its second child.
// Any other children are ignored.
//
// If there are internal nodes
// with less than two children,
// it returns a *TopologyError,
// and the map with the identifiers
// of all other internal nodes.
func Identifiers(t *Tree) (IDMap, error) {
	d, err := Depths(t)
	if err != nil {
		return nil, err
	}
	tm, err := DescendantTaxa(t, d, false)
	if err != nil {
		return nil, err
	}
	return identifiers(t, tm)
}

func identifiers(t *Tree, tm *TaxaMap) (IDMap, error) {
	ids := make(IDMap)
	var bad []int
	for id, n := range t.nodes {
		if n.taxon != "" {
			continue
		}
		if len(n.children) < 2 {
			bad = append(bad, id)
			continue
		}
		ids[id] = Pair{
			Left:  tm.First(n.children[0]),
			Right: tm.First(n.children[1]),
		}
	}
	if len(bad) > 0 {
		return ids, &TopologyError{Tree: t.name, Nodes: bad}
	}
	return ids, nil
}

// Identifier returns the identifying pair
// of a single internal node.
func Identifier(t *Tree, tm *TaxaMap, id int) (Pair, error) {
	if err := t.check(); err != nil {
		return Pair{}, err
	}
	if !t.valid(id) || tm == nil || tm.Nodes() != len(t.nodes) {
		return Pair{}, errInput(t, "node %d not found", id)
	}
	children := t.nodes[id].children
	if len(children) < 2 {
		return Pair{}, &TopologyError{Tree: t.name, Nodes: []int{id}}
	}
	return Pair{
		Left:  tm.First(children[0]),
		Right: tm.First(children[1]),
	}, nil
}

// MRCA returns the ID of the most recent common ancestor
// of two taxa.
func (t *Tree) MRCA(a, b string) (int, error) {
	if err := t.check(); err != nil {
		return -1, err
	}
	x, ok := t.taxa[a]
	if !ok {
		return -1, errInput(t, "taxon %q not found", a)
	}
	y, ok := t.taxa[b]
	if !ok {
		return -1, errInput(t, "taxon %q not found", b)
	}

	dx, dy := t.depth(x), t.depth(y)
	for ; dx > dy; dx-- {
		x = t.nodes[x].parent
	}
	for ; dy > dx; dy-- {
		y = t.nodes[y].parent
	}
	for x != y {
		x = t.nodes[x].parent
		y = t.nodes[y].parent
	}
	return x, nil
}

// Locate returns the node identified by a pair.
func (t *Tree) Locate(p Pair) (int, error) {
	return t.MRCA(p.Left, p.Right)
}

func (t *Tree) depth(id int) int {
	var d int
	for p := t.nodes[id].parent; p >= 0; p = t.nodes[p].parent {
		d++
	}
	return d
}

// Unique checks that no two nodes
// share the same unordered pair of taxa.
// If there are shared pairs,
// it returns a *DuplicateError.
func Unique(ids IDMap) error {
	seen := make(map[Pair][]int, len(ids))
	for id, p := range ids {
		c := p.Canon()
		seen[c] = append(seen[c], id)
	}

	dup := make(map[Pair][]int)
	for p, nodes := range seen {
		if len(nodes) < 2 {
			continue
		}
		slices.Sort(nodes)
		dup[p] = nodes
	}
	if len(dup) > 0 {
		return &DuplicateError{Pairs: dup}
	}
	return nil
}

func sortedPairs(m map[Pair][]int) []Pair {
	pairs := make([]Pair, 0, len(m))
	for p := range m {
		pairs = append(pairs, p)
	}
	slices.SortFunc(pairs, func(a, b Pair) int {
		if c := strings.Compare(a.Left, b.Left); c != 0 {
			return c
		}
		return strings.Compare(a.Right, b.Right)
	})
	return pairs
}

// String returns the pair as a tab-delimited string.
func (p Pair) String() string {
	return fmt.Sprintf("%s\t%s", p.Left, p.Right)
}
