// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tree implements rooted phylogenetic trees of genomes
// and the analyses used to locate their nodes:
// node depths,
// descendant taxa,
// and the pair of taxa that identifies each internal node.
//
// A tree is an arena of nodes.
// Node IDs are indices into the arena,
// and parent and children links are node IDs.
package tree

import (
	"errors"
	"fmt"
	"slices"
)

// Errors returned by the analysis functions.
var (
	// ErrInvalidInput is returned when a tree,
	// or the data derived from it,
	// is malformed or does not match the tree.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidTopology is returned when an internal node
	// has less than two children.
	ErrInvalidTopology = errors.New("invalid topology")

	// ErrNamespace is returned in strict mode
	// when the taxa of the tree do not match its namespace.
	ErrNamespace = errors.New("taxon namespace mismatch")
)

// A Tree is a rooted phylogenetic tree.
type Tree struct {
	name  string
	root  int
	nodes []node

	namespace map[string]bool
	taxa      map[string]int
}

type node struct {
	parent   int
	children []int
	taxon    string
}

// New creates a new empty tree.
func New(name string) *Tree {
	return &Tree{
		name:      name,
		root:      -1,
		namespace: make(map[string]bool),
		taxa:      make(map[string]int),
	}
}

// Add adds a new node to the tree
// and returns its ID.
//
// Use -1 as parent to add the root.
// If taxon is not empty,
// the node will be a terminal
// and the taxon will be added to the namespace of the tree.
func (t *Tree) Add(parent int, taxon string) (int, error) {
	id := len(t.nodes)
	if parent < 0 {
		if t.root >= 0 {
			return -1, fmt.Errorf("%w: tree %q: root already defined", ErrInvalidInput, t.name)
		}
		t.root = id
	} else {
		if parent >= len(t.nodes) {
			return -1, fmt.Errorf("%w: tree %q: parent node %d not found", ErrInvalidInput, t.name, parent)
		}
		if t.nodes[parent].taxon != "" {
			return -1, fmt.Errorf("%w: tree %q: parent node %d is a terminal", ErrInvalidInput, t.name, parent)
		}
		t.nodes[parent].children = append(t.nodes[parent].children, id)
	}

	if parent < 0 {
		parent = -1
	}
	t.nodes = append(t.nodes, node{
		parent: parent,
		taxon:  taxon,
	})
	if taxon != "" {
		t.namespace[taxon] = true
		if _, ok := t.taxa[taxon]; !ok {
			t.taxa[taxon] = id
		}
	}
	return id, nil
}

// AddTaxon adds one or more taxa to the namespace of the tree,
// without adding nodes.
func (t *Tree) AddTaxon(taxa ...string) {
	for _, tax := range taxa {
		if tax == "" {
			continue
		}
		t.namespace[tax] = true
	}
}

// Children returns the IDs of the children of a node,
// in the order in which they were added.
func (t *Tree) Children(id int) []int {
	if !t.valid(id) {
		return nil
	}
	return slices.Clone(t.nodes[id].children)
}

// IsTerm returns true if the node is a terminal.
func (t *Tree) IsTerm(id int) bool {
	if !t.valid(id) {
		return false
	}
	return t.nodes[id].taxon != ""
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// Name returns the name of the tree.
// A nil tree has no name.
func (t *Tree) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// Namespace returns the taxon namespace of the tree.
func (t *Tree) Namespace() []string {
	ns := make([]string, 0, len(t.namespace))
	for tax := range t.namespace {
		ns = append(ns, tax)
	}
	slices.Sort(ns)
	return ns
}

// Parent returns the ID of the parent of a node.
// The root has no parent,
// so it returns -1.
func (t *Tree) Parent(id int) int {
	if !t.valid(id) {
		return -1
	}
	return t.nodes[id].parent
}

// Root returns the ID of the root node.
// If the tree is empty,
// it returns -1.
func (t *Tree) Root() int {
	return t.root
}

// TaxNode returns the ID of the node
// of a given taxon.
// If a taxon is repeated,
// it returns the first node added.
func (t *Tree) TaxNode(taxon string) (int, bool) {
	id, ok := t.taxa[taxon]
	return id, ok
}

// Taxon returns the taxon of a node.
// Internal nodes have no taxon.
func (t *Tree) Taxon(id int) string {
	if !t.valid(id) {
		return ""
	}
	return t.nodes[id].taxon
}

// Terms returns the taxa of the terminals of the tree.
func (t *Tree) Terms() []string {
	terms := make([]string, 0, len(t.taxa))
	for tax := range t.taxa {
		terms = append(terms, tax)
	}
	slices.Sort(terms)
	return terms
}

func (t *Tree) valid(id int) bool {
	return id >= 0 && id < len(t.nodes)
}

// check returns an error
// if the tree cannot be analyzed.
func (t *Tree) check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidInput)
	}
	if !t.valid(t.root) {
		return fmt.Errorf("%w: tree %q: undefined root", ErrInvalidInput, t.name)
	}
	return nil
}
