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

// OrphanBuffer holds blocks a peer received but could not (yet, or ever)
// attach: either the parent hadn't arrived, or the block failed balance
// validation against an already-known parent. Both cases are keyed the
// same way, by the missing/rejecting parent id, so a single rescan walks
// both.
type OrphanBuffer struct {
	byParent map[int64][]Block
}

func NewOrphanBuffer() *OrphanBuffer {
	return &OrphanBuffer{byParent: make(map[int64][]Block)}
}

func (o *OrphanBuffer) Add(b Block) {
	o.byParent[b.ParentID] = append(o.byParent[b.ParentID], b)
}

// Take removes and returns every block buffered under parentID.
func (o *OrphanBuffer) Take(parentID int64) []Block {
	blocks := o.byParent[parentID]
	delete(o.byParent, parentID)
	return blocks
}

func (o *OrphanBuffer) Len() int {
	n := 0
	for _, v := range o.byParent {
		n += len(v)
	}
	return n
}

// Reattach repeatedly takes every block buffered on a newly-attached id,
// re-validates it against the tree, and inserts it if still valid,
// continuing until no further orphan becomes attachable (a fixed-point
// rescan, rather than the one-level rescan that leaves a multi-generation
// chain of orphans stuck after its root reattaches). onAttach is called for
// every block Reattach successfully inserts, in insertion order, with moved
// reporting whether the insertion extended the tree's longest chain, so the
// caller can schedule follow-up events (e.g. a fresh CREATE_BLOCK) exactly
// as it would for a directly-received block.
func (o *OrphanBuffer) Reattach(tree *Tree, rootID int64, onAttach func(b Block, moved bool)) {
	frontier := []int64{rootID}
	for len(frontier) > 0 {
		id := frontier[0]
		frontier = frontier[1:]

		for _, cand := range o.Take(id) {
			parent, ok := tree.GetBlock(cand.ParentID)
			if !ok {
				// parent still missing: re-buffer and move on.
				o.Add(cand)
				continue
			}
			balances, valid := Validate(parent.Balances, cand.Txs, cand.Miner)
			if !valid {
				o.Add(cand)
				continue
			}
			cand.Balances = balances
			stored, moved, err := tree.AddBlock(cand)
			if err != nil {
				continue
			}
			onAttach(stored, moved)
			frontier = append(frontier, stored.ID)
		}
	}
}
