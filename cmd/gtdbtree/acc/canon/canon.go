// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package canon implements a command to print
// the canonical form of genome accessions.
package canon

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/gtdblib/accession"
)

var Command = &command.Command{
	Usage: "canon [--pair] [<accession>...]",
	Short: "print canonical genome accessions",
	Long: `
Command canon prints the canonical form of one or more genome accessions. The
canonical form is the letter "G" followed by the nine digits of the accession
number. For example, "RS_GCF_005435135.1" and "GCA_005435135.2" are both
printed as "G005435135". Values that are not accessions are printed without
changes.

The accessions can be given as arguments. If no argument is given, the
accessions will be read from the standard input, one per line.

If the flag --pair is defined, the input value is printed before its
canonical form, separated by a tab.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var pairFlag bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&pairFlag, "pair", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) > 0 {
		for _, a := range args {
			writeCanon(c, a)
		}
		return nil
	}

	sc := bufio.NewScanner(c.Stdin())
	for sc.Scan() {
		a := strings.TrimSpace(sc.Text())
		if a == "" {
			continue
		}
		writeCanon(c, a)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("while reading stdin: %v", err)
	}
	return nil
}

func writeCanon(c *command.Command, a string) {
	if pairFlag {
		fmt.Fprintf(c.Stdout(), "%s\t%s\n", a, accession.Canonical(a))
		return
	}
	fmt.Fprintf(c.Stdout(), "%s\n", accession.Canonical(a))
}
