// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(configGuide)
	app.Add(namespaceGuide)
	app.Add(projectsGuide)
	app.Add(treeFilesGuide)
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
Gtdbtree uses a single project file to hold the reference of the files used
in an analysis. This guide explains the structure of the file, but most of the
time, the best way to edit or view this file is by using gtdbtree commands.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# gtdblib project files
	dataset	path
	namespace	taxa.txt
	trees	trees.tab

The valid file types are:

- Phylogenetic trees. Defined by the dataset keyword "trees". This file
  contains one or more trees in the form of a tab-delimited file. The
  recommended way to add a tree file is by using the command
  'gtdbtree tree add'.
- Taxon namespace. Defined by the dataset keyword "namespace". This file
  contains the list of taxa expected in the trees. The recommended way to add
  a namespace file is by using the command 'gtdbtree tree add --namespace'.
	`,
}

var treeFilesGuide = &command.Command{
	Usage: "tree-files",
	Short: "about tree files",
	Long: `
In gtdbtree, phylogenetic trees are stored in a tab-delimited file. The
advantage of using a tab-delimited file is that it would be easier to
manipulate trees than in traditional newick files; for example, it would be
easier for commands in gtdbtree, as well as for third-party applications, to
understand the node IDs.

A tree file is a tab-delimited file with the following columns:

	-tree    for the name of the tree.
	-node    for the ID of the node.
	-parent  for of ID of the parent node (-1 is used for the root).
	-taxon   the name of the terminal taxon.

Any other column (for example, the node ages of a PhyGeo tree file) is
ignored. A node must be defined after its parent, and the children of a node
are kept in the order of the rows. This order is used to define the pair of
taxa that identifies each internal node, so it is never changed by gtdbtree.

Here is an example file:

	# gtdblib trees
	tree	node	parent	taxon
	bac120	0	-1
	bac120	1	0	G005435135
	bac120	2	0
	bac120	3	2	G000010565
	bac120	4	2	G000006945

Trees in newick format can be imported with 'gtdbtree tree add --newick'.

In a gtdbtree project, the file that contains the trees is indicated with the
"trees" keyword.
	`,
}

var namespaceGuide = &command.Command{
	Usage: "namespace-files",
	Short: "about taxon namespace files",
	Long: `
A taxon namespace file is the list of taxa expected to be terminals of the
trees of a project. The file contains one taxon name per line. Empty lines
and lines starting with '#' are ignored.

Here is an example file:

	# taxon namespace
	G005435135
	G000010565
	G000006945

Commands with a --strict flag check that all taxa in the namespace are
terminals of each analyzed tree, and that no terminal is repeated.

In a gtdbtree project, the namespace file is indicated with the "namespace"
keyword.
	`,
}

var configGuide = &command.Command{
	Usage: "config",
	Short: "about the configuration file",
	Long: `
Commands that connect to a database, or to a Redis server, read the
connection parameters from a YAML file. The path of the file is given by the
GTDBLIB_CONFIG environment variable.

Here is an example file:

	db:
	  host: localhost
	  user: gtdb
	  pass: secret
	redis:
	  host: localhost:6379
	  pass: secret

The database section is required to store tree analyses in a PostgreSQL
database. The redis section is only required if the identifiers are also
stored in a Redis server. If the Redis host does not include a port, the
port 6379 will be used.
	`,
}
