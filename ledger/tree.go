// Copyright 2018 The go-klaytn Authors
// This file is part of the go-klaytn library.
//
// The go-klaytn library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-klaytn library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-klaytn library. If not, see <http://www.gnu.org/licenses/>.

package ledger

import "github.com/pkg/errors"

var errUnknownParent = errors.New("ledger: parent block not present in tree")
var errDuplicateBlock = errors.New("ledger: block id already present in tree")

// Tree is one peer's local view of the block DAG, an arena of blocks keyed
// by id rather than a pointer tree, so lookups and the longest-chain update
// are O(1) instead of a linear scan over every block the peer has ever
// seen.
type Tree struct {
	blocks   map[int64]Block
	children map[int64][]int64
	tipID    int64
	maxDepth int
}

func NewTree(genesis Block) *Tree {
	t := &Tree{
		blocks:   make(map[int64]Block),
		children: make(map[int64][]int64),
		tipID:    genesis.ID,
		maxDepth: genesis.Depth,
	}
	t.blocks[genesis.ID] = genesis
	return t
}

func (t *Tree) Contains(id int64) bool {
	_, ok := t.blocks[id]
	return ok
}

func (t *Tree) GetBlock(id int64) (Block, bool) {
	b, ok := t.blocks[id]
	return b, ok
}

func (t *Tree) Children(id int64) []int64 {
	return t.children[id]
}

func (t *Tree) LongestChainTipID() int64 {
	return t.tipID
}

func (t *Tree) MaxDepth() int {
	return t.maxDepth
}

// AllBlocks returns every block in the tree, in no particular order.
func (t *Tree) AllBlocks() []Block {
	out := make([]Block, 0, len(t.blocks))
	for _, b := range t.blocks {
		out = append(out, b)
	}
	return out
}

// AddBlock inserts b, which must already carry a validated balance vector,
// as a child of its (already-present) parent. It returns the stored copy
// (with Depth filled in from the parent, since the caller's own copy never
// carries one) and moved == true if this insertion strictly extended the
// longest chain.
func (t *Tree) AddBlock(b Block) (stored Block, moved bool, err error) {
	if t.Contains(b.ID) {
		return Block{}, false, errDuplicateBlock
	}
	parent, ok := t.blocks[b.ParentID]
	if !ok {
		return Block{}, false, errUnknownParent
	}
	b.Depth = parent.Depth + 1
	t.blocks[b.ID] = b
	t.children[b.ParentID] = append(t.children[b.ParentID], b.ID)

	if b.Depth > t.maxDepth {
		t.maxDepth = b.Depth
		t.tipID = b.ID
		return b, true, nil
	}
	return b, false, nil
}
