// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package add

import (
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/gtdblib/tree"
)

func setInput(t *testing.T, newick string, canon, tt bool) {
	t.Helper()
	newickName, canonFlag, timetreeFlag = newick, canon, tt
	t.Cleanup(func() {
		newickName, canonFlag, timetreeFlag = "", false, false
	})
}

func testRootPair(t testing.TB, tr *tree.Tree, want tree.Pair) {
	t.Helper()

	ids, err := tree.Identifiers(tr)
	if err != nil {
		t.Fatalf("tree %q: identifiers: %v", tr.Name(), err)
	}
	if got := ids[tr.Root()]; got != want {
		t.Errorf("tree %q: root identifier: got %v, want %v", tr.Name(), got, want)
	}
}

func TestReadNewickCanon(t *testing.T) {
	setInput(t, "bac120", true, false)

	in := "((RS_GCF_005435135.1:0.1,GB_GCA_000010565.2:0.2)'0.95:p__Firmicutes':0.1,RS_GCF_000006945.2:0.3);\n"
	trees, err := readTrees(strings.NewReader(in), "", 0)
	if err != nil {
		t.Fatalf("readTrees: unexpected error: %v", err)
	}
	if len(trees) != 1 {
		t.Fatalf("trees: got %d, want 1", len(trees))
	}
	tr := trees[0]
	if tr.Name() != "bac120" {
		t.Errorf("name: got %q, want %q", tr.Name(), "bac120")
	}

	want := []string{"G000006945", "G000010565", "G005435135"}
	if got := tr.Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("terms: got %v, want %v", got, want)
	}
	testRootPair(t, tr, tree.Pair{Left: "G005435135", Right: "G000006945"})

	id, err := tr.MRCA("G005435135", "G000010565")
	if err != nil {
		t.Fatalf("MRCA: %v", err)
	}
	if id != tr.Children(tr.Root())[0] {
		t.Errorf("MRCA: got node %d, want %d", id, tr.Children(tr.Root())[0])
	}
}

func TestReadNewickRaw(t *testing.T) {
	setInput(t, "bac120", false, false)

	in := "((D:1,C:1):1,(B:1,A:1):1);"
	trees, err := readTrees(strings.NewReader(in), "", 2)
	if err != nil {
		t.Fatalf("readTrees: unexpected error: %v", err)
	}
	tr := trees[0]
	if tr.Name() != "bac120.2" {
		t.Errorf("name: got %q, want %q", tr.Name(), "bac120.2")
	}
	testRootPair(t, tr, tree.Pair{Left: "D", Right: "B"})

	setInput(t, "bac120", false, false)
	trees, err = readTrees(strings.NewReader("((RS_GCF_005435135.1,B),C);"), "", 0)
	if err != nil {
		t.Fatalf("readTrees: unexpected error: %v", err)
	}
	if got := trees[0].Taxon(2); got != "RS_GCF_005435135.1" {
		t.Errorf("label: got %q, want %q", got, "RS_GCF_005435135.1")
	}
}

func TestReadTSVCanon(t *testing.T) {
	setInput(t, "", true, false)

	in := `# gtdblib trees
tree	node	parent	taxon
bac120	0	-1
bac120	1	0
bac120	2	1	RS_GCF_000006945.2
bac120	3	1	GB_GCA_000010565.2
bac120	4	0	RS_GCF_005435135.1
`
	trees, err := readTrees(strings.NewReader(in), "", 0)
	if err != nil {
		t.Fatalf("readTrees: unexpected error: %v", err)
	}
	tr := trees[0]
	testRootPair(t, tr, tree.Pair{Left: "G000006945", Right: "G005435135"})
}

func TestReadTimeTree(t *testing.T) {
	setInput(t, "", true, true)

	in := `# time calibrated phylogenetic tree
tree	node	parent	age	taxon
bac120	0	-1	10
bac120	1	0	0	RS_GCF_005435135.1
bac120	2	0	5
bac120	3	2	0	GB_GCA_000010565.2
bac120	4	2	0	G000006945
`
	trees, err := readTrees(strings.NewReader(in), "", 0)
	if err != nil {
		t.Fatalf("readTrees: unexpected error: %v", err)
	}
	want := []string{"G000006945", "G000010565", "G005435135"}
	if got := trees[0].Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("terms: got %v, want %v", got, want)
	}
}

func TestTimetreeLabel(t *testing.T) {
	tests := map[string]string{
		"Rs gcf 005435135.1": "G005435135",
		"Gb gca 000010565.2": "G000010565",
		"G005435135":         "G005435135",
		"Escherichia coli":   "Escherichia coli",
	}
	for name, want := range tests {
		if got := timetreeLabel(name); got != want {
			t.Errorf("name %q: got %q, want %q", name, got, want)
		}
	}
}
