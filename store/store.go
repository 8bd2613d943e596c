// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package store implements the persistence
// of tree analyses
// in a relational database.
package store

import (
	"fmt"

	"github.com/js-arias/gtdblib/tree"
	"gorm.io/gorm"
)

// NodeDepth is the depth of a node.
type NodeDepth struct {
	Tree  string `gorm:"primaryKey"`
	Node  int    `gorm:"primaryKey;autoIncrement:false"`
	Depth int    `gorm:"index"`

	// position of the node
	// in breadth-first order
	// at its depth
	Rank int
}

// NodeIdentifier is the pair of taxa
// that identifies an internal node.
type NodeIdentifier struct {
	Tree  string `gorm:"primaryKey"`
	Node  int    `gorm:"primaryKey;autoIncrement:false"`
	Left  string `gorm:"column:left_taxon;index:idx_pair"`
	Right string `gorm:"column:right_taxon;index:idx_pair"`
}

// Migrate creates or updates the tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&NodeDepth{}, &NodeIdentifier{}); err != nil {
		return fmt.Errorf("while migrating tables: %v", err)
	}
	return nil
}

const batchSize = 1000

// Save stores the analysis of a tree
// replacing any previous data of the tree.
// It should be called inside a transaction.
func Save(tx *gorm.DB, name string, a *tree.Analysis) error {
	if err := Delete(tx, name); err != nil {
		return err
	}

	depths := make([]NodeDepth, 0, a.Depths.Len())
	for dp := 0; dp <= a.Depths.Max(); dp++ {
		for i, id := range a.Depths[dp] {
			depths = append(depths, NodeDepth{
				Tree:  name,
				Node:  id,
				Depth: dp,
				Rank:  i,
			})
		}
	}
	if len(depths) > 0 {
		if err := tx.CreateInBatches(depths, batchSize).Error; err != nil {
			return fmt.Errorf("tree %q: while storing depths: %v", name, err)
		}
	}

	ids := make([]NodeIdentifier, 0, len(a.IDs))
	for id := 0; id < a.Tree.Len(); id++ {
		p, ok := a.IDs[id]
		if !ok {
			continue
		}
		ids = append(ids, NodeIdentifier{
			Tree:  name,
			Node:  id,
			Left:  p.Left,
			Right: p.Right,
		})
	}
	if len(ids) > 0 {
		if err := tx.CreateInBatches(ids, batchSize).Error; err != nil {
			return fmt.Errorf("tree %q: while storing identifiers: %v", name, err)
		}
	}
	return nil
}

// Delete removes the data of a tree.
func Delete(tx *gorm.DB, name string) error {
	if err := tx.Where("tree = ?", name).Delete(&NodeDepth{}).Error; err != nil {
		return fmt.Errorf("tree %q: while deleting depths: %v", name, err)
	}
	if err := tx.Where("tree = ?", name).Delete(&NodeIdentifier{}).Error; err != nil {
		return fmt.Errorf("tree %q: while deleting identifiers: %v", name, err)
	}
	return nil
}

// Depths returns the stored depths of a tree.
func Depths(tx *gorm.DB, name string) (tree.DepthMap, error) {
	var rows []NodeDepth
	if err := tx.Where("tree = ?", name).Order("depth, rank").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("tree %q: while reading depths: %v", name, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	d := make(tree.DepthMap)
	for _, r := range rows {
		d[r.Depth] = append(d[r.Depth], r.Node)
	}
	return d, nil
}

// Identifiers returns the stored node identifiers
// of a tree.
func Identifiers(tx *gorm.DB, name string) (tree.IDMap, error) {
	var rows []NodeIdentifier
	if err := tx.Where("tree = ?", name).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("tree %q: while reading identifiers: %v", name, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	ids := make(tree.IDMap, len(rows))
	for _, r := range rows {
		ids[r.Node] = tree.Pair{Left: r.Left, Right: r.Right}
	}
	return ids, nil
}

// Find returns the node identified by a pair of taxa
// in a stored tree.
// The order of the taxa is not relevant.
func Find(tx *gorm.DB, name string, p tree.Pair) (int, bool, error) {
	var rows []NodeIdentifier
	err := tx.Where("tree = ? AND ((left_taxon = ? AND right_taxon = ?) OR (left_taxon = ? AND right_taxon = ?))", name, p.Left, p.Right, p.Right, p.Left).
		Order("node").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return -1, false, fmt.Errorf("tree %q: while searching %v: %v", name, p, err)
	}
	if len(rows) == 0 {
		return -1, false, nil
	}
	return rows[0].Node, true, nil
}
