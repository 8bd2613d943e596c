// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package stats implements a command to print
// a summary of the shape of the trees in a project.
package stats

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/js-arias/command"
	"github.com/js-arias/gtdblib/cmd/gtdbtree/internal/cmdutil"
	"github.com/js-arias/gtdblib/tree"
)

var Command = &command.Command{
	Usage: "stats [--tree <tree-name>] <project-file>",
	Short: "print a summary of the trees",
	Long: `
Command stats reads the trees from a project and prints a summary of each
tree. The output is a tab-delimited table with the following columns:

	-tree     the name of the tree.
	-nodes    the number of nodes.
	-terms    the number of terminals.
	-depth    the maximum depth of the tree.
	-mean     the mean depth of the terminals.
	-stdev    the standard deviation of the depth of the terminals.
	-invalid  the number of internal nodes with less than two children.

The argument of the command is the name of the project file.

By default all trees will be printed. If the flag --tree is set, only the
indicated tree will be printed.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
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
	header := []string{"tree", "nodes", "terms", "depth", "mean", "stdev", "invalid"}
	if err := tsv.Write(header); err != nil {
		return err
	}
	for _, t := range trees {
		a, err := tree.Analyze(t, false)
		var invalid int
		var topErr *tree.TopologyError
		if errors.As(err, &topErr) {
			invalid = len(topErr.Nodes)
		} else if err != nil {
			return err
		}

		s := a.Summary()
		row := []string{
			t.Name(),
			strconv.Itoa(s.Nodes),
			strconv.Itoa(s.Terms),
			strconv.Itoa(s.MaxDepth),
			fmt.Sprintf("%.3f", s.Mean),
			fmt.Sprintf("%.3f", s.StdDev),
			strconv.Itoa(invalid),
		}
		if err := tsv.Write(row); err != nil {
			return err
		}
	}
	return cmdutil.Flush(tsv)
}
