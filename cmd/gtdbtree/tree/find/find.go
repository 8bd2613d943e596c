// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package find implements a command to find
// the most recent common ancestor of two taxa.
package find

import (
	"fmt"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/gtdblib/cmd/gtdbtree/internal/cmdutil"
	"github.com/js-arias/gtdblib/tree"
)

var Command = &command.Command{
	Usage: "find [--taxa] <project-file> <tree-name> <taxon> <taxon>",
	Short: "find the most recent common ancestor of two taxa",
	Long: `
Command find reads a tree from a project and prints the most recent common
ancestor of two terminal taxa.

The first argument of the command is the name of the project file. The second
argument is the name of the tree. The last two arguments are the names of the
taxa. Use quotes if a taxon name contains spaces.

The output contains the ID of the node, its depth, the number of descendant
terminals, and the pair of taxa that identifies the node. If the flag --taxa
is defined, the descendant taxa of the node will also be printed.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var taxaFlag bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&taxaFlag, "taxa", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 4 {
		return c.UsageError("expecting project file, tree name, and two taxa")
	}

	trees, err := cmdutil.ReadTrees(args[0], args[1])
	if err != nil {
		return err
	}
	t := trees[0]

	id, err := t.MRCA(args[2], args[3])
	if err != nil {
		return err
	}

	d, err := tree.Depths(t)
	if err != nil {
		return err
	}
	tm, err := tree.DescendantTaxa(t, d, false)
	if err != nil {
		return err
	}

	var depth int
	for dp := 0; dp <= d.Max(); dp++ {
		for _, n := range d[dp] {
			if n == id {
				depth = dp
			}
		}
	}

	fmt.Fprintf(c.Stdout(), "tree:\t%s\n", t.Name())
	fmt.Fprintf(c.Stdout(), "node:\t%d\n", id)
	fmt.Fprintf(c.Stdout(), "depth:\t%d\n", depth)
	fmt.Fprintf(c.Stdout(), "terms:\t%d\n", tm.Len(id))
	if !t.IsTerm(id) {
		p, err := tree.Identifier(t, tm, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.Stdout(), "pair:\t%s\n", p)
	}
	if taxaFlag {
		fmt.Fprintf(c.Stdout(), "taxa:\t%s\n", strings.Join(tm.Taxa(id), ", "))
	}
	return nil
}
