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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeAddBlockExtendsTip(t *testing.T) {
	genesis := NewGenesisBlock(3)
	tree := NewTree(genesis)

	b1 := Block{ID: 1, ParentID: 0, Miner: 0, Balances: []int64{150, 100, 100}}
	stored, moved, err := tree.AddBlock(b1)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 1, stored.Depth)
	assert.Equal(t, int64(1), tree.LongestChainTipID())

	got, ok := tree.GetBlock(1)
	require.True(t, ok)
	assert.Equal(t, 1, got.Depth)
}

func TestTreeAddBlockUnknownParentErrors(t *testing.T) {
	tree := NewTree(NewGenesisBlock(3))
	_, _, err := tree.AddBlock(Block{ID: 7, ParentID: 99})
	assert.Error(t, err)
}

func TestTreeAddBlockDuplicateErrors(t *testing.T) {
	tree := NewTree(NewGenesisBlock(3))
	b := Block{ID: 1, ParentID: 0, Balances: []int64{100, 100, 100}}
	_, _, err := tree.AddBlock(b)
	require.NoError(t, err)
	_, _, err = tree.AddBlock(b)
	assert.Error(t, err)
}

func TestTreeSideBranchDoesNotMoveTip(t *testing.T) {
	tree := NewTree(NewGenesisBlock(2))
	b1 := Block{ID: 1, ParentID: 0, Balances: []int64{100, 100}}
	b2 := Block{ID: 2, ParentID: 1, Balances: []int64{100, 100}}
	b3 := Block{ID: 3, ParentID: 0, Balances: []int64{100, 100}} // sibling of b1

	_, _, err := tree.AddBlock(b1)
	require.NoError(t, err)
	_, _, err = tree.AddBlock(b2)
	require.NoError(t, err)
	_, moved, err := tree.AddBlock(b3)
	require.NoError(t, err)
	assert.False(t, moved, "a shallower sibling must not move the tip")
	assert.Equal(t, int64(2), tree.LongestChainTipID())
}

func TestOrphanBufferFixedPointRescan(t *testing.T) {
	// S6: buffer blocks out of parent order (depths 3, 2) before depth 1
	// is in the tree; once depth 1 attaches, both orphans must attach in
	// one rescan pass rather than requiring a separate receive event per
	// generation.
	tree := NewTree(NewGenesisBlock(2))
	orphans := NewOrphanBuffer()

	d3 := Block{ID: 3, ParentID: 2, Miner: 0, Txs: nil}
	d2 := Block{ID: 2, ParentID: 1, Miner: 0, Txs: nil}
	d1 := Block{ID: 1, ParentID: 0, Miner: 0, Txs: nil}

	orphans.Add(d3)
	orphans.Add(d2)

	var attached []int64
	orphans.Reattach(tree, 0, func(b Block, moved bool) { attached = append(attached, b.ID) })
	assert.Empty(t, attached, "nothing should attach before depth 1 arrives")

	_, moved, err := tree.AddBlock(d1)
	require.NoError(t, err)
	assert.True(t, moved)

	orphans.Reattach(tree, d1.ID, func(b Block, moved bool) { attached = append(attached, b.ID) })

	assert.ElementsMatch(t, []int64{2, 3}, attached)
	assert.Equal(t, 0, orphans.Len())

	b2, ok := tree.GetBlock(2)
	require.True(t, ok)
	assert.Equal(t, 2, b2.Depth)
	b3, ok := tree.GetBlock(3)
	require.True(t, ok)
	assert.Equal(t, 3, b3.Depth)
	assert.Equal(t, int64(3), tree.LongestChainTipID())
}

func TestOrphanBufferNeverAttachesPermanentlyInvalidBlock(t *testing.T) {
	// S5: an invalid (balance-underflow) block against a known parent
	// must stay buffered forever, never land in the tree.
	tree := NewTree(NewGenesisBlock(2))
	orphans := NewOrphanBuffer()

	bad := Block{
		ID:       1,
		ParentID: 0,
		Miner:    0,
		Txs:      []Transaction{{ID: 0, Sender: 0, Receiver: 1, Amount: 1000}},
	}
	orphans.Add(bad)

	orphans.Reattach(tree, 0, func(Block, bool) { t.Fatal("invalid block must not attach") })
	assert.False(t, tree.Contains(1))
	assert.Equal(t, 1, orphans.Len())
}
