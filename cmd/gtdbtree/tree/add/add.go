// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add trees
// to a gtdbtree project.
package add

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/gtdblib/accession"
	"github.com/js-arias/gtdblib/project"
	"github.com/js-arias/gtdblib/tree"
	"github.com/js-arias/gtdblib/treeio"
	"github.com/js-arias/timetree"
)

var Command = &command.Command{
	Usage: `add [-f|--file <tree-file>] [--namespace <file>]
	[--newick <name>] [--timetree] [--canon]
	<project-file> [<tree-file>...]`,
	Short: "add phylogenetic trees to a project",
	Long: `
Command add reads one or more trees from one or more tree files, and adds the
trees to a gtdbtree project.

The first argument of the command is the name of the project file. If no
project file exists, a new project will be created.

One or more tree files can be given as arguments. If no file is given the
trees will be read from the standard input.

By default, the input is expected to be in the form of tab-delimited tree
files. To import newick trees (i.e., trees in parenthetical format), use the
flag --newick with a name to be defined for the trees found in the input
files. If more than one file is given, or a file has more than one tree, the
trees will be named with the given name and a numeric suffix. In both
formats, the order of the children of each node is the order in the file, and
terminal names are kept as written (in newick files, underscores are not
replaced by spaces). Branch lengths and internal node labels are ignored.

To import trees from a PhyGeo tree file, use the flag --timetree. Such trees
are read with the timetree package, which sorts the children of each node
and capitalizes the names of the terminals, so node identifiers will follow
that order.

If the flag --canon is defined, the names of the terminals will be replaced by
their canonical genome accession (for example, "RS_GCF_005435135.1" will be
stored as "G005435135"). Terminal names that are not genome accessions will
be kept without changes.

By default the trees will be stored in the tree file currently defined for the
project. If the project does not have a tree file, a new one will be created
with the name 'trees.tab'. A different tree file name can be defined using the
flag --file, or -f.

The flag --namespace sets the file with the taxon namespace of the project.
The namespace file is a list of taxon names, one per line. It is used by
commands that check that the terminals of a tree are equal to the namespace.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeFile string
var nsFile string
var newickName string
var timetreeFlag bool
var canonFlag bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeFile, "file", "", "")
	c.Flags().StringVar(&treeFile, "f", "", "")
	c.Flags().StringVar(&nsFile, "namespace", "", "")
	c.Flags().StringVar(&newickName, "newick", "", "")
	c.Flags().BoolVar(&timetreeFlag, "timetree", false, "")
	c.Flags().BoolVar(&canonFlag, "canon", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if newickName != "" && timetreeFlag {
		return c.UsageError("flags --newick and --timetree are incompatible")
	}
	pFile := args[0]
	p, err := openProject(pFile)
	if err != nil {
		return err
	}

	var trees []*tree.Tree
	if p.Path(project.Trees) != "" {
		trees, err = p.Trees()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("on project %q: %v", pFile, err)
		}
	}
	names := make(map[string]bool, len(trees))
	for _, t := range trees {
		names[t.Name()] = true
	}

	args = args[1:]
	if len(args) == 0 && nsFile == "" {
		args = append(args, "-")
	}
	for i, a := range args {
		fn := a
		if fn == "-" {
			fn = ""
			a = "stdin"
		}
		nt, err := readTrees(c.Stdin(), fn, i)
		if err != nil {
			return err
		}

		for _, t := range nt {
			if names[t.Name()] {
				return fmt.Errorf("when adding trees from %q: tree %q already in project", a, t.Name())
			}
			names[t.Name()] = true
			trees = append(trees, t)
		}
	}

	if nsFile != "" {
		p.Add(project.Namespace, nsFile)
	}
	if len(args) == 0 {
		return p.Write()
	}

	if treeFile == "" {
		treeFile = p.Path(project.Trees)
		if treeFile == "" {
			treeFile = "trees.tab"
		}
	}

	if err := writeTrees(trees); err != nil {
		return err
	}
	p.Add(project.Trees, treeFile)
	if err := p.Write(); err != nil {
		return err
	}

	return nil
}

func openProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p := project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}

// readTrees reads the trees of the i-th input file.
// If name is empty,
// the trees are read from r.
func readTrees(r io.Reader, name string, i int) ([]*tree.Tree, error) {
	if name != "" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		name = "stdin"
	}

	var label func(string) string
	if canonFlag {
		label = accession.Canonical
	}

	var trees []*tree.Tree
	var err error
	switch {
	case newickName != "":
		tn := newickName
		if i > 0 {
			tn = fmt.Sprintf("%s.%d", newickName, i)
		}
		trees, err = treeio.ReadNewick(r, tn, label)
	case timetreeFlag:
		if canonFlag {
			label = timetreeLabel
		}
		trees, err = readTimeTree(r, label)
	default:
		trees, err = treeio.ReadTSV(r, label)
	}
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return trees, nil
}

func readTimeTree(r io.Reader, label func(string) string) ([]*tree.Tree, error) {
	tc, err := timetree.ReadTSV(r)
	if err != nil {
		return nil, err
	}

	var trees []*tree.Tree
	for _, tn := range tc.Names() {
		t, err := tree.FromTimeTree(tc.Tree(tn), label)
		if err != nil {
			return nil, err
		}
		trees = append(trees, t)
	}
	return trees, nil
}

// timetreeLabel returns the canonical accession
// of a terminal name stored by timetree.
// Timetree capitalizes the names
// and replaces underscores with spaces
// (e.g. "Rs gcf 005435135.1"),
// so the name is restored before matching the accession.
func timetreeLabel(name string) string {
	u := strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
	if c := accession.Canonical(u); c != u {
		return c
	}
	return name
}

func writeTrees(trees []*tree.Tree) (err error) {
	f, err := os.Create(treeFile)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := treeio.WriteTSV(f, trees...); err != nil {
		return fmt.Errorf("while writing to %q: %v", treeFile, err)
	}
	return nil
}
