// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package idcache implements caches
// for the node identifiers of analyzed trees.
package idcache

import (
	"context"

	"github.com/js-arias/gtdblib/tree"
)

// A Cache stores the node identifiers of trees
// by the name of the tree.
type Cache interface {
	// Get returns the identifiers of a tree.
	// If the tree is not in the cache,
	// it returns a nil map.
	Get(ctx context.Context, name string) (tree.IDMap, error)

	// Set stores the identifiers of a tree.
	Set(ctx context.Context, name string, ids tree.IDMap) error

	// Purge removes a tree from the cache.
	Purge(ctx context.Context, name string) error
}

func cacheKey(name string) string {
	return "mrca/" + name
}
