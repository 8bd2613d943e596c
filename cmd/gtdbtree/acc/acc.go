// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package acc is a metapackage for commands
// that deal with genome accessions.
package acc

import (
	"github.com/js-arias/command"
	"github.com/js-arias/gtdblib/cmd/gtdbtree/acc/canon"
	"github.com/js-arias/gtdblib/cmd/gtdbtree/acc/same"
)

var Command = &command.Command{
	Usage: "acc <command> [<argument>...]",
	Short: "commands for genome accessions",
}

func init() {
	Command.Add(canon.Command)
	Command.Add(same.Command)
}
