// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package treeio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/js-arias/gtdblib/tree"
)

var header = []string{
	"tree",
	"node",
	"parent",
	"taxon",
}

// ReadTSV reads trees from a tab-delimited file.
//
// The file must contain the following fields:
//
//   - tree, for the name of the tree
//   - node, for the ID of the node
//   - parent, for the ID of the parent node (-1 for the root)
//   - taxon, for the name of a terminal
//
// Any other field
// (for example the age of the nodes)
// is ignored.
// A parent must be defined before its children,
// and the children of a node
// are added in the order of the rows.
//
// Here is an example file:
//
//	# gtdblib trees
//	tree	node	parent	taxon
//	bac120	0	-1
//	bac120	1	0	G005435135
//	bac120	2	0
//	bac120	3	2	G000010565
//	bac120	4	2	G000006945
//
// Trees are returned in the order
// in which they are found in the file.
func ReadTSV(r io.Reader, label func(string) string) ([]*tree.Tree, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'
	tsv.FieldsPerRecord = -1

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrSyntax, err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("%w: expecting field %q", ErrSyntax, h)
		}
	}

	var trees []*tree.Tree
	byName := make(map[string]*tree.Tree)
	// node IDs in the file
	// to node IDs in the tree
	ids := make(map[string]map[int]int)
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("%w: on row %d: %v", ErrSyntax, ln, err)
		}
		get := func(f string) string {
			i := fields[f]
			if i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		f := "tree"
		name := get(f)
		if name == "" {
			return nil, fmt.Errorf("%w: on row %d: field %q: empty tree name", ErrSyntax, ln, f)
		}
		t, ok := byName[name]
		if !ok {
			t = tree.New(name)
			byName[name] = t
			ids[name] = make(map[int]int)
			trees = append(trees, t)
		}

		f = "node"
		node, err := strconv.Atoi(get(f))
		if err != nil {
			return nil, fmt.Errorf("%w: on row %d: field %q: %v", ErrSyntax, ln, f, err)
		}
		if _, dup := ids[name][node]; dup {
			return nil, fmt.Errorf("%w: on row %d: tree %q: node %d already defined", ErrSyntax, ln, name, node)
		}

		f = "parent"
		pv, err := strconv.Atoi(get(f))
		if err != nil {
			return nil, fmt.Errorf("%w: on row %d: field %q: %v", ErrSyntax, ln, f, err)
		}
		parent := -1
		if pv >= 0 {
			p, ok := ids[name][pv]
			if !ok {
				return nil, fmt.Errorf("%w: on row %d: tree %q: parent node %d not defined", ErrSyntax, ln, name, pv)
			}
			parent = p
		}

		tax := get("taxon")
		if tax != "" && label != nil {
			tax = label(tax)
			if tax == "" {
				return nil, fmt.Errorf("%w: on row %d: tree %q: node %d: empty label", ErrSyntax, ln, name, node)
			}
		}
		id, err := t.Add(parent, tax)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %w", ln, err)
		}
		ids[name][node] = id
	}
	return trees, nil
}

// WriteTSV writes one or more trees
// as a tab-delimited file.
// Nodes are written in the order of their IDs,
// so reading the file
// produces the same trees.
func WriteTSV(w io.Writer, trees ...*tree.Tree) error {
	fmt.Fprintf(w, "# gtdblib trees\n")
	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}
	for _, t := range trees {
		for id := 0; id < t.Len(); id++ {
			row := []string{
				t.Name(),
				strconv.Itoa(id),
				strconv.Itoa(t.Parent(id)),
				t.Taxon(id),
			}
			if err := tsv.Write(row); err != nil {
				return fmt.Errorf("tree %q: %v", t.Name(), err)
			}
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}
