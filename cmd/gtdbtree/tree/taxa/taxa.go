// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package taxa implements a command to print
// the descendant taxa of the nodes of the trees in a project.
package taxa

import (
	"slices"
	"strconv"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/gtdblib/cmd/gtdbtree/internal/cmdutil"
	"github.com/js-arias/gtdblib/tree"
)

var Command = &command.Command{
	Usage: "taxa [--tree <tree-name>] [--strict] [--sort] <project-file>",
	Short: "print the descendant taxa of tree nodes",
	Long: `
Command taxa reads the trees from a project and prints the terminal taxa
descendant of each internal node. The output is a tab-delimited table with the
following columns:

	-tree   the name of the tree.
	-node   the ID of the node.
	-count  the number of descendant terminals.
	-taxa   a comma separated list of the descendant taxa.

By default, taxa are listed in the order of the tree. Use the flag --sort to
list them in lexicographic order.

The argument of the command is the name of the project file.

By default all trees will be printed. If the flag --tree is set, only the
indicated tree will be printed.

If the flag --strict is defined, the terminals of each tree must be unique,
and all taxa in the project namespace must be terminals of the tree.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var strictFlag bool
var sortFlag bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().BoolVar(&strictFlag, "strict", false, "")
	c.Flags().BoolVar(&sortFlag, "sort", false, "")
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
	if err := tsv.Write([]string{"tree", "node", "count", "taxa"}); err != nil {
		return err
	}

	for _, t := range trees {
		d, err := tree.Depths(t)
		if err != nil {
			return err
		}
		tm, err := tree.DescendantTaxa(t, d, strictFlag)
		if err != nil {
			return err
		}
		for id := 0; id < t.Len(); id++ {
			if t.IsTerm(id) {
				continue
			}
			taxa := tm.Taxa(id)
			if sortFlag {
				taxa = slices.Clone(taxa)
				slices.Sort(taxa)
			}
			row := []string{
				t.Name(),
				strconv.Itoa(id),
				strconv.Itoa(len(taxa)),
				strings.Join(taxa, ","),
			}
			if err := tsv.Write(row); err != nil {
				return err
			}
		}
	}
	return cmdutil.Flush(tsv)
}
