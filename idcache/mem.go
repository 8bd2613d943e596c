// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package idcache

import (
	"context"
	"maps"
	"sync"

	"github.com/js-arias/gtdblib/tree"
)

// Mem is an in-process cache.
type Mem struct {
	mu  sync.Mutex
	ids map[string]tree.IDMap
}

var _ Cache = (*Mem)(nil)

// NewMem returns a new empty in-process cache.
func NewMem() *Mem {
	return &Mem{
		ids: make(map[string]tree.IDMap),
	}
}

func (m *Mem) Get(ctx context.Context, name string) (tree.IDMap, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids, ok := m.ids[cacheKey(name)]
	if !ok {
		return nil, nil
	}
	return maps.Clone(ids), nil
}

func (m *Mem) Set(ctx context.Context, name string, ids tree.IDMap) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ids[cacheKey(name)] = maps.Clone(ids)
	return nil
}

func (m *Mem) Purge(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.ids, cacheKey(name))
	return nil
}
