// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package terms implements a command to print
// the list of the terminals in the trees of a project.
package terms

import (
	"fmt"
	"slices"

	"github.com/js-arias/command"
	"github.com/js-arias/gtdblib/cmd/gtdbtree/internal/cmdutil"
)

var Command = &command.Command{
	Usage: "terms [--tree <tree-name>] [--missing] <project-file>",
	Short: "print a list of tree terminals",
	Long: `
Command terms reads the trees from a project and prints the name of the
terminals in the standard output.

The argument of the command is the name of the project file.

By default all terminals will be printed. If the flag --tree is set, only the
terminals of the indicated tree will be printed.

If the flag --missing is defined, it will print the taxa of the project
namespace that are not terminals of the trees.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var missingFlag bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().BoolVar(&missingFlag, "missing", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	trees, err := cmdutil.ReadTrees(args[0], treeName)
	if err != nil {
		return err
	}

	terms := make(map[string]bool)
	for _, t := range trees {
		for _, tax := range t.Terms() {
			terms[tax] = true
		}
	}

	var ls []string
	if missingFlag {
		for _, t := range trees {
			for _, tax := range t.Namespace() {
				if !terms[tax] && !slices.Contains(ls, tax) {
					ls = append(ls, tax)
				}
			}
		}
	} else {
		for tax := range terms {
			ls = append(ls, tax)
		}
	}
	slices.Sort(ls)

	for _, tax := range ls {
		fmt.Fprintf(c.Stdout(), "%s\n", tax)
	}
	return nil
}
