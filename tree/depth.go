// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

// DepthMap is a partition of the nodes of a tree
// by their depth
// (the number of edges from the root).
// Nodes at each depth are stored
// in breadth-first order.
type DepthMap map[int][]int

// Depths returns the depth of each node of a tree,
// using a breadth-first traversal.
func Depths(t *Tree) (DepthMap, error) {
	if err := t.check(); err != nil {
		return nil, err
	}

	d := make(DepthMap)
	queue := make([]int, 0, len(t.nodes))
	depth := make([]int, len(t.nodes))
	queue = append(queue, t.root)
	for i := 0; i < len(queue); i++ {
		id := queue[i]
		d[depth[id]] = append(d[depth[id]], id)
		for _, c := range t.nodes[id].children {
			depth[c] = depth[id] + 1
			queue = append(queue, c)
		}
	}
	return d, nil
}

// Len returns the number of nodes in the map.
func (d DepthMap) Len() int {
	var n int
	for _, ids := range d {
		n += len(ids)
	}
	return n
}

// Max returns the largest depth in the map.
// An empty map returns -1.
func (d DepthMap) Max() int {
	max := -1
	for depth := range d {
		if depth > max {
			max = depth
		}
	}
	return max
}

// index returns the depth of each node of t,
// validating that each node is present exactly once.
func (d DepthMap) index(t *Tree) ([]int, error) {
	depth := make([]int, len(t.nodes))
	for i := range depth {
		depth[i] = -1
	}
	for dp, ids := range d {
		for _, id := range ids {
			if !t.valid(id) {
				return nil, errInput(t, "depth map: unknown node %d", id)
			}
			if depth[id] >= 0 {
				return nil, errInput(t, "depth map: node %d found at depths %d and %d", id, depth[id], dp)
			}
			depth[id] = dp
		}
	}
	for id, dp := range depth {
		if dp < 0 {
			return nil, errInput(t, "depth map: node %d not found", id)
		}
		p := t.nodes[id].parent
		if p < 0 {
			if dp != 0 {
				return nil, errInput(t, "depth map: root at depth %d", dp)
			}
			continue
		}
		if depth[p] >= 0 && dp != depth[p]+1 {
			return nil, errInput(t, "depth map: node %d at depth %d, parent %d at depth %d", id, dp, p, depth[p])
		}
	}
	return depth, nil
}
