// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Gtdbtree is a tool to analyze GTDB phylogenetic trees.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/gtdblib/cmd/gtdbtree/acc"
	"github.com/js-arias/gtdblib/cmd/gtdbtree/tree"
)

var app = &command.Command{
	Usage: "gtdbtree <command> [<argument>...]",
	Short: "a tool to analyze GTDB phylogenetic trees",
}

func init() {
	app.Add(acc.Command)
	app.Add(tree.Command)
}

func main() {
	app.Main()
}
