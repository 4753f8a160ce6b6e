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

// Package peer implements the seven event handlers each simulated node
// runs: transaction creation/forwarding/receipt and block
// creation/mining/forwarding/receipt.
package peer

import (
	"math/rand"

	"github.com/selfminesim/netsim/internal/cache"
	"github.com/selfminesim/netsim/internal/simlog"
	"github.com/selfminesim/netsim/internal/simmetrics"
	"github.com/selfminesim/netsim/ledger"
	"github.com/selfminesim/netsim/queue"
	"github.com/selfminesim/netsim/topology"
)

var logger = simlog.NewModuleLogger(simlog.Peer)

const seenCacheSize = 1 << 14

// SelfishPolicy abstracts the release-policy controller a selfish peer
// consults, so neither this package nor "selfish" imports the other; the
// sim driver assigns a selfish.Controller to Peer.Policy.
type SelfishPolicy interface {
	// OnMined records a block the peer itself produced, to be released
	// later according to the lead-diff policy instead of gossiped
	// immediately.
	OnMined(blk ledger.Block)
	// OnHonestBlockAccepted is called right after an externally-received
	// block has been validated and attached to the tree, with the public
	// honest-chain depth as it stood immediately before that attach.
	OnHonestBlockAccepted(q *queue.Queue, blk ledger.Block, publicDepthBefore int, t float64)
	// PrivateBlockIDs reports the ids currently held back, so the peer
	// can exclude them when computing the public honest tip depth.
	PrivateBlockIDs() map[int64]bool
}

type Peer struct {
	ID        int
	IsSlow    bool
	HashPower float64
	Selfish   bool

	Tree    *ledger.Tree
	Orphans *ledger.OrphanBuffer
	Mempool []ledger.Transaction

	ids   *ledger.IdAllocator
	net   *topology.Network
	rng   *rand.Rand
	tMean float64

	seenTx    cache.Cache
	seenBlock cache.Cache

	Policy  SelfishPolicy
	metrics *simmetrics.Registry
}

func New(id int, isSlow bool, hashPower float64, selfish bool, genesis ledger.Block, ids *ledger.IdAllocator, net *topology.Network, rng *rand.Rand, metrics *simmetrics.Registry, tMean float64) *Peer {
	seenTx, _ := cache.New(cache.LRUConfig{CacheSize: seenCacheSize})
	// Blocks re-arrive far more than transactions do: every orphan re-gossip
	// and every honest-peer forward re-delivers the same id to the same
	// peer's neighbors. ARC's split recency/frequency tracking keeps those
	// repeat arrivals resident instead of letting a plain LRU churn them out.
	seenBlock, _ := cache.New(cache.ARCConfig{CacheSize: seenCacheSize})
	return &Peer{
		ID:        id,
		IsSlow:    isSlow,
		HashPower: hashPower,
		Selfish:   selfish,
		Tree:      ledger.NewTree(genesis),
		Orphans:   ledger.NewOrphanBuffer(),
		ids:       ids,
		net:       net,
		rng:       rng,
		tMean:     tMean,
		seenTx:    seenTx,
		seenBlock: seenBlock,
		metrics:   metrics,
	}
}

func (p *Peer) gossipTxn(q *queue.Queue, txn ledger.Transaction, from int, t float64) {
	for _, n := range p.net.Neighbors(p.ID) {
		if n == from {
			continue
		}
		qd := p.net.QueuingDelay(p.ID, n, p.rng)
		txCopy := txn
		q.Push(&queue.Event{Time: t + qd, Sender: p.ID, Receiver: n, Txn: &txCopy, Type: queue.ForwardTxn})
	}
}

func (p *Peer) gossipBlock(q *queue.Queue, blk ledger.Block, from int, t float64) {
	for _, n := range p.net.Neighbors(p.ID) {
		if n == from {
			continue
		}
		qd := p.net.QueuingDelay(p.ID, n, p.rng)
		blkCopy := blk
		q.Push(&queue.Event{Time: t + qd, Sender: p.ID, Receiver: n, Block: &blkCopy, Type: queue.ForwardBlock})
	}
}
