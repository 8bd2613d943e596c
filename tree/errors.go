// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"strings"
)

func errInput(t *Tree, format string, a ...any) error {
	return fmt.Errorf("%w: tree %q: %s", ErrInvalidInput, t.name, fmt.Sprintf(format, a...))
}

// A TopologyError is returned when one or more internal nodes
// of a tree cannot be identified.
type TopologyError struct {
	Tree  string
	Nodes []int
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("%v: tree %q: nodes with less than two children: %v", ErrInvalidTopology, e.Tree, e.Nodes)
}

// Unwrap returns ErrInvalidTopology,
// so the error can be tested with errors.Is.
func (e *TopologyError) Unwrap() error {
	return ErrInvalidTopology
}

// A DuplicateError is returned when two or more nodes
// share the same identifying pair of taxa.
type DuplicateError struct {
	// Nodes sharing each pair,
	// indexed by the pair in its canonical order.
	Pairs map[Pair][]int
}

func (e *DuplicateError) Error() string {
	var b strings.Builder
	b.WriteString("duplicated node identifiers:")
	for _, p := range sortedPairs(e.Pairs) {
		fmt.Fprintf(&b, " (%s, %s) %v", p.Left, p.Right, e.Pairs[p])
	}
	return b.String()
}
