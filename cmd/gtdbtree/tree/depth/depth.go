// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package depth implements a command to print
// the depth of the nodes of the trees in a project.
package depth

import (
	"strconv"

	"github.com/js-arias/command"
	"github.com/js-arias/gtdblib/cmd/gtdbtree/internal/cmdutil"
	"github.com/js-arias/gtdblib/tree"
)

var Command = &command.Command{
	Usage: "depth [--tree <tree-name>] [--terms] <project-file>",
	Short: "print the depth of tree nodes",
	Long: `
Command depth reads the trees from a project and prints the depth of each
node, i.e., the number of edges between the node and the root. The output is
a tab-delimited table with the following columns:

	-tree   the name of the tree.
	-node   the ID of the node.
	-depth  the depth of the node.

Nodes are printed from the root to the deepest nodes.

The argument of the command is the name of the project file.

By default all trees will be printed. If the flag --tree is set, only the
indicated tree will be printed.

If the flag --terms is defined, only the terminals will be printed, and a
column with the name of the taxon will be added.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var termsFlag bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().BoolVar(&termsFlag, "terms", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	trees, err := cmdutil.ReadTrees(args[0], treeName)
	if err != nil {
		return err
	}

	tsv := cmdutil.NewTSV(c.Stdout())
	header := []string{"tree", "node", "depth"}
	if termsFlag {
		header = append(header, "taxon")
	}
	if err := tsv.Write(header); err != nil {
		return err
	}

	for _, t := range trees {
		d, err := tree.Depths(t)
		if err != nil {
			return err
		}
		for dp := 0; dp <= d.Max(); dp++ {
			for _, id := range d[dp] {
				row := []string{
					t.Name(),
					strconv.Itoa(id),
					strconv.Itoa(dp),
				}
				if termsFlag {
					if !t.IsTerm(id) {
						continue
					}
					row = append(row, t.Taxon(id))
				}
				if err := tsv.Write(row); err != nil {
					return err
				}
			}
		}
	}
	return cmdutil.Flush(tsv)
}
