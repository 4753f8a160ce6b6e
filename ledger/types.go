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

// Package ledger holds the simulator's value types (Transaction, Block),
// the per-peer block tree arena, and the balance-vector validator.
package ledger

import "sync/atomic"

// Coinbase is the sentinel sender id for a block's mining-fee transaction.
const Coinbase = -1

// GenesisID is the block id every peer's tree is seeded with.
const GenesisID int64 = 0

const (
	MiningFee     = 50
	TxSizeKbits   = 8
	MaxTxPerBlock = 998
	// GenesisBalance seeds every peer's balance in the genesis block.
	GenesisBalance = 100
)

type Transaction struct {
	ID       int64
	Sender   int
	Receiver int
	Amount   int64
	Time     float64
}

type Block struct {
	ID        int64
	ParentID  int64
	Miner     int
	Time      float64
	Txs       []Transaction
	Balances  []int64
	Depth     int
	SizeKbits int64
}

// BlockSize returns the wire size of a block carrying n transactions, in
// kilobits: one unit for the header plus one per transaction.
func BlockSize(numTxs int) int64 {
	return TxSizeKbits * int64(1+numTxs)
}

// IdAllocator centralizes transaction/block id assignment so ids stay
// globally unique and monotonic without reaching for package-level
// globals, per the design note calling for an explicit allocator.
type IdAllocator struct {
	nextTx    int64
	nextBlock int64
}

func NewIdAllocator() *IdAllocator {
	return &IdAllocator{nextBlock: 1} // id 0 reserved for genesis
}

func (a *IdAllocator) NextTxID() int64 {
	return atomic.AddInt64(&a.nextTx, 1) - 1
}

func (a *IdAllocator) NextBlockID() int64 {
	return atomic.AddInt64(&a.nextBlock, 1) - 1
}

// NewGenesisBlock builds the block every peer's tree starts from: no
// parent, no miner, every peer funded with GenesisBalance.
func NewGenesisBlock(numPeers int) Block {
	balances := make([]int64, numPeers)
	for i := range balances {
		balances[i] = GenesisBalance
	}
	return Block{
		ID:       GenesisID,
		ParentID: -1,
		Miner:    -1,
		Balances: balances,
		Depth:    0,
	}
}
