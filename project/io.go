// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/js-arias/gtdblib/tree"
	"github.com/js-arias/gtdblib/treeio"
)

// Namespace reads the taxon namespace file
// as defined in a project.
// If no namespace is defined,
// it returns nil.
func (p *Project) Namespace() ([]string, error) {
	name := p.Path(Namespace)
	if name == "" {
		return nil, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ns, err := ReadNamespace(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return ns, nil
}

// ReadNamespace reads a list of taxa,
// one taxon per line.
// Empty lines and lines starting with '#'
// are ignored.
//
// Here is an example file:
//
//	# taxon namespace
//	G005435135
//	G000010565
//	G000006945
func ReadNamespace(r io.Reader) ([]string, error) {
	var ns []string
	seen := make(map[string]bool)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		ln := strings.TrimSpace(sc.Text())
		if ln == "" || strings.HasPrefix(ln, "#") {
			continue
		}
		if seen[ln] {
			continue
		}
		seen[ln] = true
		ns = append(ns, ln)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ns, nil
}

// Trees reads the trees file
// as defined in a project.
// Trees are returned in the order of the file.
func (p *Project) Trees() ([]*tree.Tree, error) {
	name := p.Path(Trees)
	if name == "" {
		return nil, fmt.Errorf("trees not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	trees, err := treeio.ReadTSV(f, nil)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %w", name, err)
	}
	return trees, nil
}
