// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package cmdutil implements functions shared
// by the commands of gtdbtree.
package cmdutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/js-arias/gtdblib/project"
	"github.com/js-arias/gtdblib/tree"
)

// Logger returns a logger that writes to w.
// If verbose is true,
// debug messages will be also written.
func Logger(w io.Writer, verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	h := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
	return slog.New(h)
}

// ReadTrees reads the trees of a project.
// If name is not empty,
// only the tree with that name will be returned.
//
// Taxa in the project namespace
// are added to the namespace of each tree.
func ReadTrees(projectFile, name string) ([]*tree.Tree, error) {
	p, err := project.Read(projectFile)
	if err != nil {
		return nil, err
	}
	all, err := p.Trees()
	if err != nil {
		return nil, err
	}
	ns, err := p.Namespace()
	if err != nil {
		return nil, err
	}

	var trees []*tree.Tree
	for _, t := range all {
		if name != "" && t.Name() != name {
			continue
		}
		t.AddTaxon(ns...)
		trees = append(trees, t)
	}
	if name != "" && len(trees) == 0 {
		return nil, fmt.Errorf("tree %q not found in project %q", name, projectFile)
	}
	return trees, nil
}

// NewTSV returns a tab-delimited writer.
func NewTSV(w io.Writer) *csv.Writer {
	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'
	tsv.UseCRLF = true
	return tsv
}

// Flush flushes a tab-delimited writer.
func Flush(tsv *csv.Writer) error {
	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}
