// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tree is a metapackage for commands
// that deal with phylogenetic trees.
package tree

import (
	"github.com/js-arias/command"
	"github.com/js-arias/gtdblib/cmd/gtdbtree/tree/add"
	"github.com/js-arias/gtdblib/cmd/gtdbtree/tree/depth"
	"github.com/js-arias/gtdblib/cmd/gtdbtree/tree/find"
	"github.com/js-arias/gtdblib/cmd/gtdbtree/tree/list"
	"github.com/js-arias/gtdblib/cmd/gtdbtree/tree/mrca"
	"github.com/js-arias/gtdblib/cmd/gtdbtree/tree/save"
	"github.com/js-arias/gtdblib/cmd/gtdbtree/tree/stats"
	"github.com/js-arias/gtdblib/cmd/gtdbtree/tree/taxa"
	"github.com/js-arias/gtdblib/cmd/gtdbtree/tree/terms"
)

var Command = &command.Command{
	Usage: "tree <command> [<argument>...]",
	Short: "commands for phylogenetic trees",
}

func init() {
	Command.Add(add.Command)
	Command.Add(depth.Command)
	Command.Add(find.Command)
	Command.Add(list.Command)
	Command.Add(mrca.Command)
	Command.Add(save.Command)
	Command.Add(stats.Command)
	Command.Add(taxa.Command)
	Command.Add(terms.Command)
}
