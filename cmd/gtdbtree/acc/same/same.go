// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package same implements a command to compare
// the versions of two genome accessions.
package same

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/gtdblib/accession"
)

var Command = &command.Command{
	Usage: "same <accession> <accession>",
	Short: "compare the version of two accessions",
	Long: `
Command same compares the version of two genome accessions. The version is
the number after the last dot of the accession. For example, the version of
"GCF_005435135.1" is 1.

If both accessions have the same version, it prints "true"; otherwise it
prints "false". It is an error if any of the accessions does not have a
version.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 2 {
		return c.UsageError("expecting two accessions")
	}

	ok, err := accession.SameVersion(args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout(), "%v\n", ok)
	return nil
}
