// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

import (
	"gonum.org/v1/gonum/stat"
)

// An Analysis stores the results
// of the analysis of a tree.
type Analysis struct {
	Tree   *Tree
	Depths DepthMap
	Taxa   *TaxaMap
	IDs    IDMap
}

// Analyze calculates the depths,
// the descendant taxa,
// and the node identifiers of a tree.
//
// If there are internal nodes that cannot be identified,
// it returns the analysis and a *TopologyError.
func Analyze(t *Tree, strict bool) (*Analysis, error) {
	d, err := Depths(t)
	if err != nil {
		return nil, err
	}
	tm, err := DescendantTaxa(t, d, strict)
	if err != nil {
		return nil, err
	}
	ids, err := identifiers(t, tm)
	a := &Analysis{
		Tree:   t,
		Depths: d,
		Taxa:   tm,
		IDs:    ids,
	}
	return a, err
}

// Summary is a summary of the shape of a tree.
type Summary struct {
	Nodes    int
	Terms    int
	MaxDepth int

	// Mean and standard deviation
	// of the depth of the terminals.
	Mean   float64
	StdDev float64
}

// Summary returns a summary of the analyzed tree.
func (a *Analysis) Summary() Summary {
	var depths []float64
	for dp := 0; dp <= a.Depths.Max(); dp++ {
		for _, id := range a.Depths[dp] {
			if a.Tree.IsTerm(id) {
				depths = append(depths, float64(dp))
			}
		}
	}

	s := Summary{
		Nodes:    a.Depths.Len(),
		Terms:    len(depths),
		MaxDepth: a.Depths.Max(),
	}
	switch len(depths) {
	case 0:
	case 1:
		s.Mean = depths[0]
	default:
		s.Mean, s.StdDev = stat.MeanStdDev(depths, nil)
	}
	return s
}
