// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree_test

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/js-arias/gtdblib/tree"
	"github.com/js-arias/timetree"
)

// newQuartet returns the tree ((A,B),(C,D)).
func newQuartet(t testing.TB) (tt *tree.Tree, root, left, right int) {
	t.Helper()

	tt = tree.New("quartet")
	root = mustAdd(t, tt, -1, "")
	left = mustAdd(t, tt, root, "")
	mustAdd(t, tt, left, "A")
	mustAdd(t, tt, left, "B")
	right = mustAdd(t, tt, root, "")
	mustAdd(t, tt, right, "C")
	mustAdd(t, tt, right, "D")
	return tt, root, left, right
}

func mustAdd(t testing.TB, tt *tree.Tree, parent int, taxon string) int {
	t.Helper()

	id, err := tt.Add(parent, taxon)
	if err != nil {
		t.Fatalf("unable to add node: %v", err)
	}
	return id
}

// randTree returns a random tree with n terminals.
// If poly is true,
// internal nodes might have more than two children.
func randTree(t testing.TB, r *rand.Rand, n int, poly bool) *tree.Tree {
	t.Helper()

	taxa := make([]string, n)
	for i := range taxa {
		taxa[i] = fmt.Sprintf("G%09d", i)
	}
	r.Shuffle(len(taxa), func(i, j int) { taxa[i], taxa[j] = taxa[j], taxa[i] })

	tt := tree.New("random")
	var build func(parent int, taxa []string)
	build = func(parent int, taxa []string) {
		if len(taxa) == 1 {
			mustAdd(t, tt, parent, taxa[0])
			return
		}
		id := mustAdd(t, tt, parent, "")
		parts := 2
		if poly && len(taxa) > 2 {
			parts = 2 + r.IntN(min(len(taxa)-1, 4))
		}
		cuts := r.Perm(len(taxa) - 1)[:parts-1]
		slices.Sort(cuts)
		prev := 0
		for _, c := range cuts {
			build(id, taxa[prev:c+1])
			prev = c + 1
		}
		build(id, taxa[prev:])
	}
	build(-1, taxa)
	return tt
}

func TestAdd(t *testing.T) {
	tt, root, left, _ := newQuartet(t)

	if tt.Len() != 7 {
		t.Errorf("len: got %d, want %d", tt.Len(), 7)
	}
	if tt.Root() != root {
		t.Errorf("root: got %d, want %d", tt.Root(), root)
	}
	if p := tt.Parent(root); p != -1 {
		t.Errorf("root parent: got %d, want %d", p, -1)
	}
	want := []string{"A", "B", "C", "D"}
	if terms := tt.Terms(); !reflect.DeepEqual(terms, want) {
		t.Errorf("terms: got %v, want %v", terms, want)
	}
	if ns := tt.Namespace(); !reflect.DeepEqual(ns, want) {
		t.Errorf("namespace: got %v, want %v", ns, want)
	}
	id, ok := tt.TaxNode("A")
	if !ok || tt.Parent(id) != left || !tt.IsTerm(id) || tt.Taxon(id) != "A" {
		t.Errorf("taxon %q: got node %d [parent %d]", "A", id, tt.Parent(id))
	}

	if _, err := tt.Add(-1, ""); !errors.Is(err, tree.ErrInvalidInput) {
		t.Errorf("second root: got error %v, want %v", err, tree.ErrInvalidInput)
	}
	if _, err := tt.Add(100, "E"); !errors.Is(err, tree.ErrInvalidInput) {
		t.Errorf("unknown parent: got error %v, want %v", err, tree.ErrInvalidInput)
	}
	if _, err := tt.Add(id, "E"); !errors.Is(err, tree.ErrInvalidInput) {
		t.Errorf("terminal parent: got error %v, want %v", err, tree.ErrInvalidInput)
	}
}

func TestQuartet(t *testing.T) {
	tt, root, left, right := newQuartet(t)
	node := func(tax string) int {
		id, _ := tt.TaxNode(tax)
		return id
	}

	d, err := tree.Depths(tt)
	if err != nil {
		t.Fatalf("depths: %v", err)
	}
	wantDepth := tree.DepthMap{
		0: {root},
		1: {left, right},
		2: {node("A"), node("B"), node("C"), node("D")},
	}
	if !reflect.DeepEqual(d, wantDepth) {
		t.Errorf("depths: got %v, want %v", d, wantDepth)
	}

	tm, err := tree.DescendantTaxa(tt, d, true)
	if err != nil {
		t.Fatalf("descendant taxa: %v", err)
	}
	wantTaxa := map[int][]string{
		root:  {"A", "B", "C", "D"},
		left:  {"A", "B"},
		right: {"C", "D"},
	}
	for id, want := range wantTaxa {
		if got := sorted(tm.Taxa(id)); !reflect.DeepEqual(got, want) {
			t.Errorf("taxa of node %d: got %v, want %v", id, got, want)
		}
	}

	ids, err := tree.Identifiers(tt)
	if err != nil {
		t.Fatalf("identifiers: %v", err)
	}
	wantIDs := tree.IDMap{
		root:  {Left: "A", Right: "C"},
		left:  {Left: "A", Right: "B"},
		right: {Left: "C", Right: "D"},
	}
	if !reflect.DeepEqual(ids, wantIDs) {
		t.Errorf("identifiers: got %v, want %v", ids, wantIDs)
	}

	for id, p := range ids {
		got, err := tt.Locate(p)
		if err != nil {
			t.Errorf("locate %v: %v", p, err)
			continue
		}
		if got != id {
			t.Errorf("locate %v: got node %d, want %d", p, got, id)
		}
	}
}

func TestDepths(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 20; i++ {
		tt := randTree(t, r, 2+r.IntN(200), i%2 == 0)
		d, err := tree.Depths(tt)
		if err != nil {
			t.Fatalf("depths: %v", err)
		}
		testDepths(t, tt, d)
	}
}

func testDepths(t testing.TB, tt *tree.Tree, d tree.DepthMap) {
	t.Helper()

	depth := make(map[int]int, tt.Len())
	for dp, ids := range d {
		for _, id := range ids {
			if prev, ok := depth[id]; ok {
				t.Errorf("node %d: found at depths %d and %d", id, prev, dp)
			}
			depth[id] = dp
		}
	}
	if len(depth) != tt.Len() {
		t.Errorf("partition: got %d nodes, want %d", len(depth), tt.Len())
	}
	if d.Len() != tt.Len() {
		t.Errorf("len: got %d, want %d", d.Len(), tt.Len())
	}
	if depth[tt.Root()] != 0 {
		t.Errorf("root depth: got %d, want %d", depth[tt.Root()], 0)
	}
	for id := 0; id < tt.Len(); id++ {
		p := tt.Parent(id)
		if p < 0 {
			continue
		}
		if depth[id] != depth[p]+1 {
			t.Errorf("node %d: depth %d, parent %d depth %d", id, depth[id], p, depth[p])
		}
	}
}

func TestDescendantTaxa(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 20; i++ {
		tt := randTree(t, r, 2+r.IntN(200), i%2 == 1)
		d, err := tree.Depths(tt)
		if err != nil {
			t.Fatalf("depths: %v", err)
		}
		tm, err := tree.DescendantTaxa(tt, d, true)
		if err != nil {
			t.Fatalf("descendant taxa: %v", err)
		}
		testDescendantTaxa(t, tt, tm)
	}
}

func testDescendantTaxa(t testing.TB, tt *tree.Tree, tm *tree.TaxaMap) {
	t.Helper()

	if got := sorted(tm.Taxa(tt.Root())); !reflect.DeepEqual(got, tt.Namespace()) {
		t.Errorf("root: got %v, want %v", got, tt.Namespace())
	}

	for id := 0; id < tt.Len(); id++ {
		if tt.IsTerm(id) {
			want := []string{tt.Taxon(id)}
			if got := tm.Taxa(id); !reflect.DeepEqual(got, want) {
				t.Errorf("terminal %d: got %v, want %v", id, got, want)
			}
			continue
		}

		var union []string
		for _, c := range tt.Children(id) {
			union = append(union, tm.Taxa(c)...)
		}
		if got := sorted(tm.Taxa(id)); !reflect.DeepEqual(got, sorted(union)) {
			t.Errorf("node %d: got %v, want %v", id, got, sorted(union))
		}
		if tm.Len(id) != len(union) {
			t.Errorf("node %d: len %d, want %d", id, tm.Len(id), len(union))
		}
		set := tm.Set(id)
		for _, tax := range union {
			if !set[tax] || !tm.Has(id, tax) {
				t.Errorf("node %d: taxon %q not found", id, tax)
			}
		}

		// first leaf by descent
		first := id
		for !tt.IsTerm(first) {
			first = tt.Children(first)[0]
		}
		if f := tm.First(id); f != tt.Taxon(first) {
			t.Errorf("node %d: first taxon %q, want %q", id, f, tt.Taxon(first))
		}
	}
}

func TestDescendantTaxaStrict(t *testing.T) {
	tt, _, _, _ := newQuartet(t)
	tt.AddTaxon("E")
	d, err := tree.Depths(tt)
	if err != nil {
		t.Fatalf("depths: %v", err)
	}
	if _, err := tree.DescendantTaxa(tt, d, true); !errors.Is(err, tree.ErrNamespace) {
		t.Errorf("missing taxon: got error %v, want %v", err, tree.ErrNamespace)
	}
	tm, err := tree.DescendantTaxa(tt, d, false)
	if err != nil {
		t.Fatalf("non-strict: %v", err)
	}
	if tm.Has(tt.Root(), "E") {
		t.Errorf("non-strict: taxon %q found at root", "E")
	}

	dup := tree.New("dup")
	root := mustAdd(t, dup, -1, "")
	mustAdd(t, dup, root, "A")
	mustAdd(t, dup, root, "A")
	d, err = tree.Depths(dup)
	if err != nil {
		t.Fatalf("depths: %v", err)
	}
	if _, err := tree.DescendantTaxa(dup, d, true); !errors.Is(err, tree.ErrNamespace) {
		t.Errorf("repeated taxon: got error %v, want %v", err, tree.ErrNamespace)
	}
}

func TestInvalidInput(t *testing.T) {
	if _, err := tree.Depths(nil); !errors.Is(err, tree.ErrInvalidInput) {
		t.Errorf("nil tree: got error %v, want %v", err, tree.ErrInvalidInput)
	}
	if _, err := tree.Depths(tree.New("empty")); !errors.Is(err, tree.ErrInvalidInput) {
		t.Errorf("empty tree: got error %v, want %v", err, tree.ErrInvalidInput)
	}
	if _, err := tree.Identifiers(nil); !errors.Is(err, tree.ErrInvalidInput) {
		t.Errorf("identifiers: got error %v, want %v", err, tree.ErrInvalidInput)
	}

	tt, root, left, right := newQuartet(t)
	var terms []int
	for _, tax := range tt.Terms() {
		id, _ := tt.TaxNode(tax)
		terms = append(terms, id)
	}
	tests := map[string]tree.DepthMap{
		"missing node": {0: {root}, 1: {left, right}},
		"repeated":     {0: {root}, 1: {left, right, left}, 2: terms},
		"unknown node": {0: {root, 100}},
		"wrong depth":  {0: {root}, 1: {left, right}, 3: terms},
	}
	for name, d := range tests {
		tm, err := tree.DescendantTaxa(tt, d, false)
		if !errors.Is(err, tree.ErrInvalidInput) {
			t.Errorf("%s: got error %v, want %v", name, err, tree.ErrInvalidInput)
		}
		if tm != nil {
			t.Errorf("%s: got a partial result", name)
		}
	}

	// an internal node without children
	leaf := tree.New("unlabeled")
	r := mustAdd(t, leaf, -1, "")
	mustAdd(t, leaf, r, "A")
	mustAdd(t, leaf, r, "")
	if _, err := tree.Identifiers(leaf); !errors.Is(err, tree.ErrInvalidInput) {
		t.Errorf("unlabeled leaf: got error %v, want %v", err, tree.ErrInvalidInput)
	}
}

func TestInvalidTopology(t *testing.T) {
	// (((A),B),C)
	tt := tree.New("unary")
	root := mustAdd(t, tt, -1, "")
	n := mustAdd(t, tt, root, "")
	unary := mustAdd(t, tt, n, "")
	mustAdd(t, tt, unary, "A")
	mustAdd(t, tt, n, "B")
	mustAdd(t, tt, root, "C")

	ids, err := tree.Identifiers(tt)
	if !errors.Is(err, tree.ErrInvalidTopology) {
		t.Fatalf("got error %v, want %v", err, tree.ErrInvalidTopology)
	}
	var te *tree.TopologyError
	if !errors.As(err, &te) {
		t.Fatalf("got error type %T, want %T", err, te)
	}
	if !reflect.DeepEqual(te.Nodes, []int{unary}) {
		t.Errorf("bad nodes: got %v, want %v", te.Nodes, []int{unary})
	}
	want := tree.IDMap{
		root: {Left: "A", Right: "C"},
		n:    {Left: "A", Right: "B"},
	}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("identifiers: got %v, want %v", ids, want)
	}

	a, err := tree.Analyze(tt, true)
	if !errors.Is(err, tree.ErrInvalidTopology) {
		t.Errorf("analyze: got error %v, want %v", err, tree.ErrInvalidTopology)
	}
	if a == nil {
		t.Fatalf("analyze: expecting analysis")
	}
	if _, err := tree.Identifier(tt, a.Taxa, unary); !errors.Is(err, tree.ErrInvalidTopology) {
		t.Errorf("identifier: got error %v, want %v", err, tree.ErrInvalidTopology)
	}
	if p, err := tree.Identifier(tt, a.Taxa, root); err != nil || p != want[root] {
		t.Errorf("identifier: got %v [%v], want %v", p, err, want[root])
	}
}

func TestPolytomy(t *testing.T) {
	// (A,B,C)
	tt := tree.New("polytomy")
	root := mustAdd(t, tt, -1, "")
	mustAdd(t, tt, root, "A")
	mustAdd(t, tt, root, "B")
	mustAdd(t, tt, root, "C")

	ids, err := tree.Identifiers(tt)
	if err != nil {
		t.Fatalf("identifiers: %v", err)
	}
	want := tree.IDMap{root: {Left: "A", Right: "B"}}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("identifiers: got %v, want %v", ids, want)
	}
}

func TestIdentifiers(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	for i := 0; i < 20; i++ {
		tt := randTree(t, r, 2+r.IntN(300), false)
		ids, err := tree.Identifiers(tt)
		if err != nil {
			t.Fatalf("identifiers: %v", err)
		}
		if len(ids) != tt.Len()-len(tt.Terms()) {
			t.Errorf("identifiers: got %d, want %d", len(ids), tt.Len()-len(tt.Terms()))
		}
		if err := tree.Unique(ids); err != nil {
			t.Errorf("unique: %v", err)
		}
		for id, p := range ids {
			got, err := tt.Locate(p)
			if err != nil {
				t.Fatalf("locate %v: %v", p, err)
			}
			if got != id {
				t.Errorf("locate %v: got node %d, want %d", p, got, id)
			}
		}
	}
}

func TestUnique(t *testing.T) {
	ids := tree.IDMap{
		1: {Left: "A", Right: "B"},
		2: {Left: "B", Right: "A"},
		3: {Left: "C", Right: "D"},
	}
	err := tree.Unique(ids)
	var de *tree.DuplicateError
	if !errors.As(err, &de) {
		t.Fatalf("got error %v, want %T", err, de)
	}
	want := map[tree.Pair][]int{{Left: "A", Right: "B"}: {1, 2}}
	if !reflect.DeepEqual(de.Pairs, want) {
		t.Errorf("duplicates: got %v, want %v", de.Pairs, want)
	}
}

func TestMRCA(t *testing.T) {
	tt, root, left, _ := newQuartet(t)
	tests := []struct {
		a, b string
		want int
	}{
		{"A", "B", left},
		{"B", "A", left},
		{"A", "D", root},
		{"C", "B", root},
	}
	for _, test := range tests {
		got, err := tt.MRCA(test.a, test.b)
		if err != nil {
			t.Errorf("mrca %s-%s: %v", test.a, test.b, err)
			continue
		}
		if got != test.want {
			t.Errorf("mrca %s-%s: got %d, want %d", test.a, test.b, got, test.want)
		}
	}
	if _, err := tt.MRCA("A", "Z"); !errors.Is(err, tree.ErrInvalidInput) {
		t.Errorf("unknown taxon: got error %v, want %v", err, tree.ErrInvalidInput)
	}
}

func TestIdempotence(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 8))
	tt := randTree(t, r, 150, true)

	a1, err := tree.Analyze(tt, true)
	if err != nil && !errors.Is(err, tree.ErrInvalidTopology) {
		t.Fatalf("analyze: %v", err)
	}
	a2, err := tree.Analyze(tt, true)
	if err != nil && !errors.Is(err, tree.ErrInvalidTopology) {
		t.Fatalf("analyze: %v", err)
	}
	if !reflect.DeepEqual(a1.Depths, a2.Depths) {
		t.Errorf("depths: maps are different")
	}
	if !reflect.DeepEqual(a1.Taxa, a2.Taxa) {
		t.Errorf("taxa: maps are different")
	}
	if !reflect.DeepEqual(a1.IDs, a2.IDs) {
		t.Errorf("identifiers: maps are different")
	}
}

func TestSummary(t *testing.T) {
	tt, _, _, _ := newQuartet(t)
	a, err := tree.Analyze(tt, true)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	want := tree.Summary{
		Nodes:    7,
		Terms:    4,
		MaxDepth: 2,
		Mean:     2,
		StdDev:   0,
	}
	if s := a.Summary(); s != want {
		t.Errorf("summary: got %+v, want %+v", s, want)
	}
}

var timeTreeTSV = `# time calibrated phylogenetic tree
tree	node	parent	age	taxon
bacteria	0	-1	3000000000
bacteria	1	0	2000000000
bacteria	2	1	0	Rs_gcf_005435135.1
bacteria	3	1	0	Gb_gca_000010565.1
bacteria	4	0	1000000000
bacteria	5	4	0	Rs_gcf_000006945.2
bacteria	6	4	0	Rs_gcf_000195955.2
`

func TestFromTimeTree(t *testing.T) {
	c, err := timetree.ReadTSV(strings.NewReader(timeTreeTSV))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	src := c.Tree("bacteria")
	if src == nil {
		t.Fatalf("tree %q not found", "bacteria")
	}

	label := func(s string) string {
		return strings.ToUpper(strings.ReplaceAll(s, " ", "_"))
	}
	tt, err := tree.FromTimeTree(src, label)
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if tt.Name() != "bacteria" {
		t.Errorf("name: got %q, want %q", tt.Name(), "bacteria")
	}
	if tt.Len() != 7 {
		t.Errorf("len: got %d, want %d", tt.Len(), 7)
	}
	want := []string{"GB_GCA_000010565.1", "RS_GCF_000006945.2", "RS_GCF_000195955.2", "RS_GCF_005435135.1"}
	if terms := tt.Terms(); !reflect.DeepEqual(terms, want) {
		t.Errorf("terms: got %v, want %v", terms, want)
	}

	a, err := tree.Analyze(tt, true)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	testDepths(t, tt, a.Depths)
	testDescendantTaxa(t, tt, a.Taxa)
	if len(a.IDs) != 3 {
		t.Errorf("identifiers: got %d, want %d", len(a.IDs), 3)
	}

	if _, err := tree.FromTimeTree(nil, nil); !errors.Is(err, tree.ErrInvalidInput) {
		t.Errorf("nil tree: got error %v, want %v", err, tree.ErrInvalidInput)
	}
}

func sorted(s []string) []string {
	s = slices.Clone(s)
	slices.Sort(s)
	return s
}
