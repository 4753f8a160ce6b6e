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

package peer

import (
	"github.com/selfminesim/netsim/ledger"
	"github.com/selfminesim/netsim/queue"
)

// MeanBlockTime is shared across all peers; each miner's own expected
// block interval is MeanBlockTime / HashPower.
var MeanBlockTime float64 = 600

// CreateBlock assembles a candidate block on top of the peer's current
// tip and schedules the PoW result as a SUCCESSFUL_MINING event after an
// exponentially distributed hashing delay. Selfish miners assemble
// coinbase-only blocks (§4.5); honest miners pull from the mempool.
func (p *Peer) CreateBlock(q *queue.Queue, t float64) {
	if p.HashPower <= 0 {
		return
	}

	parentID := p.Tree.LongestChainTipID()
	parent, ok := p.Tree.GetBlock(parentID)
	if !ok {
		logger.Error("create block: tip missing from tree", "peer", p.ID, "tip", parentID)
		return
	}

	coinbase := ledger.Transaction{ID: p.ids.NextTxID(), Sender: ledger.Coinbase, Receiver: p.ID, Amount: ledger.MiningFee, Time: t}

	var txs []ledger.Transaction
	if p.Selfish {
		txs = []ledger.Transaction{coinbase}
	} else {
		txs = append(p.selectTransactions(parentID), coinbase)
	}
	kept, balances := ledger.ApplyFiltering(parent.Balances, txs, p.ID)

	hashingTime := p.rng.ExpFloat64() * (MeanBlockTime / p.HashPower)
	blk := ledger.Block{
		ID:        p.ids.NextBlockID(),
		ParentID:  parentID,
		Miner:     p.ID,
		Time:      t + hashingTime,
		Txs:       kept,
		Balances:  balances,
		SizeKbits: ledger.BlockSize(len(kept)),
	}
	q.Push(&queue.Event{Time: t + hashingTime, Sender: p.ID, Type: queue.SuccessfulMining, Block: &blk, AssembledTipID: parentID})
}

// SuccessfulMining finalizes a PoW result. If the tip moved on since the
// block was assembled, the result is stale and discarded rather than
// inserted (§4.4/§7): it was mined against a parent that is no longer the
// chain this peer is extending.
func (p *Peer) SuccessfulMining(q *queue.Queue, blk ledger.Block, t float64, assembledTip int64) {
	if p.Tree.LongestChainTipID() != assembledTip {
		p.metrics.StaleMining.Inc(1)
		return
	}
	p.metrics.BlocksMined.Inc(1)

	stored, moved, err := p.Tree.AddBlock(blk)
	if err != nil {
		logger.Error("mined block failed to attach", "peer", p.ID, "block", blk.ID, "err", err)
		return
	}
	if moved {
		q.Push(&queue.Event{Time: t, Sender: p.ID, Type: queue.CreateBlock})
	}

	if p.Selfish && p.Policy != nil {
		p.Policy.OnMined(stored)
		return
	}
	p.gossipBlock(q, stored, -1, t)
}

// ForwardBlock models the wire transfer of an already-queued block across
// a single link.
func (p *Peer) ForwardBlock(q *queue.Queue, blk ledger.Block, to int, t float64) {
	latency := p.net.PropagationLatency(p.ID, to, blk.SizeKbits)
	q.Push(&queue.Event{Time: t + latency, Sender: p.ID, Receiver: to, Block: &blk, Type: queue.ReceiveBlock})
}

// ReceiveBlock dedups, buffers an orphan (unknown parent or failed
// validation) or accepts and attaches a valid block, gossiping or
// consulting the selfish release policy depending on the peer's role.
func (p *Peer) ReceiveBlock(q *queue.Queue, blk ledger.Block, from int, t float64) {
	if p.seenBlock.Contains(blk.ID) {
		return
	}
	p.seenBlock.Add(blk.ID, struct{}{})

	parent, ok := p.Tree.GetBlock(blk.ParentID)
	if !ok {
		p.Orphans.Add(blk)
		p.metrics.OrphansSeen.Inc(1)
		p.gossipBlock(q, blk, from, t)
		return
	}

	balances, valid := ledger.Validate(parent.Balances, blk.Txs, blk.Miner)
	if !valid {
		p.Orphans.Add(blk)
		p.metrics.BlocksOrphan.Inc(1)
		p.gossipBlock(q, blk, from, t)
		return
	}
	blk.Balances = balances

	publicDepthBefore := p.honestTipDepth()

	stored, moved, err := p.Tree.AddBlock(blk)
	if err != nil {
		logger.Error("receive block: attach failed", "peer", p.ID, "block", blk.ID, "err", err)
		return
	}
	if moved {
		q.Push(&queue.Event{Time: t, Sender: p.ID, Type: queue.CreateBlock})
	}

	if p.Selfish && p.Policy != nil {
		p.Policy.OnHonestBlockAccepted(q, stored, publicDepthBefore, t)
	} else {
		p.gossipBlock(q, stored, from, t)
	}

	p.Orphans.Reattach(p.Tree, stored.ID, func(reattached ledger.Block, moved bool) {
		if moved {
			q.Push(&queue.Event{Time: t, Sender: p.ID, Type: queue.CreateBlock})
		}
	})
}

// honestTipDepth returns the deepest block in the tree that isn't one of
// the peer's own held-back private blocks, i.e. the depth of the chain as
// the rest of the network can see it.
func (p *Peer) honestTipDepth() int {
	var private map[int64]bool
	if p.Policy != nil {
		private = p.Policy.PrivateBlockIDs()
	}
	max := 0
	for _, b := range p.Tree.AllBlocks() {
		if private != nil && private[b.ID] {
			continue
		}
		if b.Depth > max {
			max = b.Depth
		}
	}
	return max
}
