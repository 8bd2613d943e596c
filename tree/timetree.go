// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

import (
	"fmt"

	"github.com/js-arias/timetree"
)

// FromTimeTree creates a new tree
// by copying a time calibrated tree.
//
// Nodes are copied in pre-order,
// with the children in the order returned by timetree.
// Timetree sorts the children of each node
// when a tree is read,
// and stores terminal names capitalized
// (e.g. "Rs gcf 005435135.1"),
// so the file order and labels are not kept.
// Use package treeio to read trees in the order of the file.
//
// If label is not nil,
// it will be used to rename the terminals.
func FromTimeTree(src *timetree.Tree, label func(string) string) (*Tree, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source tree", ErrInvalidInput)
	}

	t := New(src.Name())
	type pair struct {
		src    int
		parent int
	}
	stack := []pair{{src: src.Root(), parent: -1}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var tax string
		if src.IsTerm(p.src) {
			tax = src.Taxon(p.src)
			if label != nil {
				tax = label(tax)
			}
			if tax == "" {
				return nil, fmt.Errorf("%w: tree %q: terminal node %d without taxon", ErrInvalidInput, t.name, p.src)
			}
		}
		id, err := t.Add(p.parent, tax)
		if err != nil {
			return nil, err
		}

		// push in reverse,
		// so the first child is visited first
		children := src.Children(p.src)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, pair{src: children[i], parent: id})
		}
	}
	return t, nil
}
