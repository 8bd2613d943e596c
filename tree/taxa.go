// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"slices"
)

// A TaxaMap stores the descendant taxa
// of each node in a tree.
//
// The terminals of the tree are laid out
// in pre-order,
// so the descendants of any node
// are a contiguous segment of that layout.
type TaxaMap struct {
	terms []string
	pos   map[string][]int
	spans []span
}

type span struct {
	start, end int
}

// DescendantTaxa returns the taxa descendant
// of each node of a tree.
// The depth map must be the one calculated
// for the same tree.
//
// Nodes are processed in decreasing depth,
// so the descendants of all children
// are known before their parent is processed.
//
// If strict is true,
// the descendants of the root must be equal
// to the namespace of the tree,
// and terminal taxa must be unique.
func DescendantTaxa(t *Tree, d DepthMap, strict bool) (*TaxaMap, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	if _, err := d.index(t); err != nil {
		return nil, err
	}

	tm := &TaxaMap{
		terms: make([]string, 0, len(t.taxa)),
		pos:   make(map[string][]int, len(t.taxa)),
		spans: make([]span, len(t.nodes)),
	}

	// terminal layout
	stack := []int{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.nodes[id]
		if n.taxon != "" {
			tm.spans[id] = span{start: len(tm.terms), end: len(tm.terms) + 1}
			tm.pos[n.taxon] = append(tm.pos[n.taxon], len(tm.terms))
			tm.terms = append(tm.terms, n.taxon)
			continue
		}
		if len(n.children) == 0 {
			return nil, errInput(t, "node %d: leaf without taxon", id)
		}
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, n.children[i])
		}
	}

	// bottom-up
	for depth := d.Max(); depth >= 0; depth-- {
		for _, id := range d[depth] {
			n := t.nodes[id]
			if n.taxon != "" {
				continue
			}
			first := tm.spans[n.children[0]]
			last := tm.spans[n.children[len(n.children)-1]]
			tm.spans[id] = span{start: first.start, end: last.end}
		}
	}

	if strict {
		if err := tm.checkNamespace(t); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

// First returns the first terminal taxon of a node,
// i.e., the taxon reached
// by always descending into the first child.
func (tm *TaxaMap) First(id int) string {
	if !tm.valid(id) {
		return ""
	}
	return tm.terms[tm.spans[id].start]
}

// Has returns true if taxon is a descendant
// of the indicated node.
func (tm *TaxaMap) Has(id int, taxon string) bool {
	if !tm.valid(id) {
		return false
	}
	s := tm.spans[id]
	for _, p := range tm.pos[taxon] {
		if p >= s.start && p < s.end {
			return true
		}
	}
	return false
}

// Len returns the number of descendant terminals
// of a node.
func (tm *TaxaMap) Len(id int) int {
	if !tm.valid(id) {
		return 0
	}
	s := tm.spans[id]
	return s.end - s.start
}

// Nodes returns the number of nodes in the map.
func (tm *TaxaMap) Nodes() int {
	return len(tm.spans)
}

// Set returns the descendant taxa of a node
// as a set.
func (tm *TaxaMap) Set(id int) map[string]bool {
	taxa := tm.Taxa(id)
	set := make(map[string]bool, len(taxa))
	for _, tax := range taxa {
		set[tax] = true
	}
	return set
}

// Taxa returns the descendant taxa of a node
// in the order of the tree.
// The returned slice is shared
// and must not be modified.
func (tm *TaxaMap) Taxa(id int) []string {
	if !tm.valid(id) {
		return nil
	}
	s := tm.spans[id]
	return tm.terms[s.start:s.end:s.end]
}

func (tm *TaxaMap) valid(id int) bool {
	return id >= 0 && id < len(tm.spans)
}

func (tm *TaxaMap) checkNamespace(t *Tree) error {
	var dup []string
	for tax, p := range tm.pos {
		if len(p) > 1 {
			dup = append(dup, tax)
		}
	}
	if len(dup) > 0 {
		slices.Sort(dup)
		return fmt.Errorf("%w: tree %q: repeated taxa %v", ErrNamespace, t.name, dup)
	}

	var missing []string
	for tax := range t.namespace {
		if !tm.Has(t.root, tax) {
			missing = append(missing, tax)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("%w: tree %q: taxa without terminal %v", ErrNamespace, t.name, missing)
	}
	return nil
}
