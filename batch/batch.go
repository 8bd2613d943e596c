// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package batch implements the analysis
// of a collection of trees.
//
// Each tree is analyzed by a single goroutine,
// so there is no shared state between analyses.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/js-arias/gtdblib/tree"
	"golang.org/x/sync/errgroup"
)

// Options are the options of a batch analysis.
type Options struct {
	// Number of trees analyzed at the same time.
	// The default (zero) uses all available CPU.
	CPU int

	// If true,
	// descendant taxa are checked
	// against the namespace of each tree.
	Strict bool

	Logger *slog.Logger
}

// Result is the result of the analysis of a tree.
type Result struct {
	Name     string
	Analysis *tree.Analysis
	Err      error
}

// Run analyzes a collection of trees
// and returns the results
// in the same order of the input trees.
//
// An error in a tree does not stop the analysis
// of the other trees.
// If the context is canceled,
// trees not yet analyzed will have the context error.
func Run(ctx context.Context, trees []*tree.Tree, opts Options) []Result {
	cpu := opts.CPU
	if cpu <= 0 {
		cpu = runtime.NumCPU()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	results := make([]Result, len(trees))
	var g errgroup.Group
	g.SetLimit(cpu)
	for i, t := range trees {
		if t == nil {
			results[i].Err = fmt.Errorf("%w: nil tree at position %d", tree.ErrInvalidInput, i)
			continue
		}
		results[i].Name = t.Name()
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			start := time.Now()
			a, err := tree.Analyze(t, opts.Strict)
			results[i].Analysis = a
			results[i].Err = err
			if err != nil {
				logger.Warn("tree analysis failed", "tree", t.Name(), "err", err)
				return nil
			}
			logger.Debug("tree analyzed", "tree", t.Name(), "nodes", t.Len(), "duration", time.Since(start))
			return nil
		})
	}
	g.Wait()
	return results
}
