// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package treeio implements reading and writing
// of phylogenetic trees.
//
// Trees are built in the order of the input text,
// so the order of the children of each node
// is the order in which they are found in the file,
// and node labels are kept as written.
//
// A label function can be given to the readers
// to rename the terminals when they are read
// (for example accession.Canonical).
package treeio

import (
	"errors"
)

// ErrSyntax is returned when a tree file is malformed.
var ErrSyntax = errors.New("tree syntax error")
