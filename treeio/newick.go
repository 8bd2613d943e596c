// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package treeio

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/js-arias/gtdblib/tree"
)

// ReadNewick reads one or more trees in Newick
// (parenthetical) format.
//
// If the input has a single tree,
// the tree will be named with name.
// If there are more trees,
// each tree is named with name
// and a suffix with the number of the tree
// (e.g. "bac120.1", "bac120.2").
//
// Branch lengths,
// labels of internal nodes
// (as GTDB support and taxonomy labels),
// and comments in square brackets are ignored.
// Labels can be quoted with single quotes.
// Underscores in unquoted labels are kept.
func ReadNewick(r io.Reader, name string, label func(string) string) ([]*tree.Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	p := &newickParser{data: data, line: 1, label: label}
	var trees []*tree.Tree
	for {
		p.skip()
		if p.eof() {
			break
		}
		t, err := p.tree(name)
		if err != nil {
			return nil, err
		}
		trees = append(trees, t)
	}
	if len(trees) == 0 {
		return nil, fmt.Errorf("%w: newick: no trees found", ErrSyntax)
	}
	if len(trees) == 1 {
		return trees, nil
	}

	for i, t := range trees {
		nt, err := rename(t, fmt.Sprintf("%s.%d", name, i+1))
		if err != nil {
			return nil, err
		}
		trees[i] = nt
	}
	return trees, nil
}

type newickParser struct {
	data  []byte
	pos   int
	line  int
	label func(string) string
}

func (p *newickParser) eof() bool {
	return p.pos >= len(p.data)
}

func (p *newickParser) errorf(format string, a ...any) error {
	return fmt.Errorf("%w: newick: line %d: %s", ErrSyntax, p.line, fmt.Sprintf(format, a...))
}

// skip skips spaces and comments.
func (p *newickParser) skip() {
	for !p.eof() {
		c := p.data[p.pos]
		switch {
		case c == '\n':
			p.line++
			p.pos++
		case c == ' ' || c == '\t' || c == '\r':
			p.pos++
		case c == '[':
			for !p.eof() && p.data[p.pos] != ']' {
				if p.data[p.pos] == '\n' {
					p.line++
				}
				p.pos++
			}
			p.pos++
		default:
			return
		}
	}
}

// tree reads a single tree,
// up to its closing semicolon.
func (p *newickParser) tree(name string) (*tree.Tree, error) {
	t := tree.New(name)

	// open internal nodes
	var stack []int
	parent := func() int {
		if len(stack) == 0 {
			return -1
		}
		return stack[len(stack)-1]
	}

	// after a node is read,
	// only a comma, a closing parenthesis,
	// or the end of the tree are valid.
	closed := false
	for {
		p.skip()
		if p.eof() {
			return nil, p.errorf("tree %q: unexpected end of input", name)
		}

		c := p.data[p.pos]
		switch c {
		case '(':
			if closed {
				return nil, p.errorf("tree %q: unexpected '('", name)
			}
			if len(stack) == 0 && t.Len() > 0 {
				return nil, p.errorf("tree %q: more than one root", name)
			}
			p.pos++
			id, err := t.Add(parent(), "")
			if err != nil {
				return nil, err
			}
			stack = append(stack, id)
		case ',':
			if len(stack) == 0 {
				return nil, p.errorf("tree %q: unexpected ','", name)
			}
			if !closed {
				return nil, p.errorf("tree %q: empty node", name)
			}
			p.pos++
			closed = false
		case ')':
			if len(stack) == 0 {
				return nil, p.errorf("tree %q: unbalanced ')'", name)
			}
			if !closed {
				return nil, p.errorf("tree %q: empty node", name)
			}
			p.pos++
			stack = stack[:len(stack)-1]

			// internal node labels are ignored
			if _, err := p.name(); err != nil {
				return nil, err
			}
			if err := p.length(); err != nil {
				return nil, err
			}
		case ';':
			if len(stack) > 0 {
				return nil, p.errorf("tree %q: unbalanced '('", name)
			}
			if t.Len() == 0 {
				return nil, p.errorf("tree %q: empty tree", name)
			}
			p.pos++
			return t, nil
		default:
			if closed {
				return nil, p.errorf("tree %q: unexpected %q", name, c)
			}
			if len(stack) == 0 && t.Len() > 0 {
				return nil, p.errorf("tree %q: more than one root", name)
			}
			tax, err := p.name()
			if err != nil {
				return nil, err
			}
			if p.label != nil {
				tax = p.label(tax)
			}
			if tax == "" {
				return nil, p.errorf("tree %q: terminal without name", name)
			}
			if _, err := t.Add(parent(), tax); err != nil {
				return nil, err
			}
			if err := p.length(); err != nil {
				return nil, err
			}
		}
		closed = c != '(' && c != ','
	}
}

const stopChars = "():,;[ \t\r\n"

// name reads a (possibly empty) node name.
func (p *newickParser) name() (string, error) {
	p.skip()
	if p.eof() {
		return "", nil
	}
	if p.data[p.pos] != '\'' {
		start := p.pos
		for !p.eof() && !strings.ContainsRune(stopChars, rune(p.data[p.pos])) {
			p.pos++
		}
		return string(p.data[start:p.pos]), nil
	}

	// quoted label,
	// a doubled quote is a literal quote
	var b strings.Builder
	p.pos++
	for {
		if p.eof() {
			return "", p.errorf("unclosed quoted label")
		}
		c := p.data[p.pos]
		p.pos++
		if c == '\'' {
			if !p.eof() && p.data[p.pos] == '\'' {
				b.WriteByte('\'')
				p.pos++
				continue
			}
			return b.String(), nil
		}
		if c == '\n' {
			p.line++
		}
		b.WriteByte(c)
	}
}

// length reads an optional branch length.
func (p *newickParser) length() error {
	p.skip()
	if p.eof() || p.data[p.pos] != ':' {
		return nil
	}
	p.pos++
	p.skip()
	start := p.pos
	for !p.eof() && !strings.ContainsRune(stopChars, rune(p.data[p.pos])) {
		p.pos++
	}
	v := string(p.data[start:p.pos])
	if _, err := strconv.ParseFloat(v, 64); err != nil {
		return p.errorf("invalid branch length %q", v)
	}
	return nil
}

// rename returns a copy of a tree with a new name.
func rename(t *tree.Tree, name string) (*tree.Tree, error) {
	nt := tree.New(name)
	for id := 0; id < t.Len(); id++ {
		if _, err := nt.Add(t.Parent(id), t.Taxon(id)); err != nil {
			return nil, err
		}
	}
	return nt, nil
}
