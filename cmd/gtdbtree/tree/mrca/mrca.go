// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package mrca implements a command to print
// the pair of taxa that identifies each internal node
// of the trees in a project.
package mrca

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"slices"
	"strconv"

	"github.com/js-arias/command"
	"github.com/js-arias/gtdblib/batch"
	"github.com/js-arias/gtdblib/cmd/gtdbtree/internal/cmdutil"
	"github.com/js-arias/gtdblib/tree"
)

var Command = &command.Command{
	Usage: `mrca [--tree <tree-name>] [--cpu <number>]
	[--skip] [--unique] [-v|--verbose] <project-file>`,
	Short: "print the identifiers of internal nodes",
	Long: `
Command mrca reads the trees from a project and prints, for each internal
node, the pair of terminal taxa that identifies the node. The node is the most
recent common ancestor of the two taxa. The pair is made of the first taxon of
the first child of the node, and the first taxon of its second child, where
the first taxon of a node is the taxon reached by always descending into the
first child.

The output is a tab-delimited table with the following columns:

	-tree   the name of the tree.
	-node   the ID of the node.
	-left   the first taxon of the identifying pair.
	-right  the second taxon of the identifying pair.

The argument of the command is the name of the project file.

By default all trees will be analyzed. If the flag --tree is set, only the
indicated tree will be analyzed. Trees are analyzed in parallel; by default
all available CPUs will be used. Use the flag --cpu to set a different number
of CPUs.

By default, if a tree has an internal node with less than two children, the
command fails. If the flag --skip is defined, the nodes that cannot be
identified will be skipped, and the identifiers of the other nodes will be
printed.

If the flag --unique is defined, the command checks that no two nodes of a
tree share the same pair of taxa.

Use the flag --verbose, or -v, to print the progress of the analysis.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var numCPU int
var skipFlag bool
var uniqueFlag bool
var verbose bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().IntVar(&numCPU, "cpu", runtime.GOMAXPROCS(0), "")
	c.Flags().BoolVar(&skipFlag, "skip", false, "")
	c.Flags().BoolVar(&uniqueFlag, "unique", false, "")
	c.Flags().BoolVar(&verbose, "verbose", false, "")
	c.Flags().BoolVar(&verbose, "v", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	trees, err := cmdutil.ReadTrees(args[0], treeName)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := cmdutil.Logger(c.Stderr(), verbose)
	results := batch.Run(ctx, trees, batch.Options{
		CPU:    numCPU,
		Logger: logger,
	})

	tsv := cmdutil.NewTSV(c.Stdout())
	if err := tsv.Write([]string{"tree", "node", "left", "right"}); err != nil {
		return err
	}
	for _, r := range results {
		if r.Err != nil {
			var topErr *tree.TopologyError
			if !skipFlag || !errors.As(r.Err, &topErr) {
				return r.Err
			}
			logger.Warn("skipping nodes", "tree", r.Name, "nodes", topErr.Nodes)
		}
		if uniqueFlag {
			if err := tree.Unique(r.Analysis.IDs); err != nil {
				return fmt.Errorf("tree %q: %w", r.Name, err)
			}
		}

		nodes := make([]int, 0, len(r.Analysis.IDs))
		for id := range r.Analysis.IDs {
			nodes = append(nodes, id)
		}
		slices.Sort(nodes)
		for _, id := range nodes {
			p := r.Analysis.IDs[id]
			row := []string{
				r.Name,
				strconv.Itoa(id),
				p.Left,
				p.Right,
			}
			if err := tsv.Write(row); err != nil {
				return err
			}
		}
	}
	return cmdutil.Flush(tsv)
}
