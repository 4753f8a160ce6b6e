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

// Package selfish implements the selfish-mining release-policy controller:
// a private block FIFO, a lead counter, and the lead-diff release table.
package selfish

import (
	"math/rand"

	set "gopkg.in/fatih/set.v0"

	"github.com/selfminesim/netsim/internal/simlog"
	"github.com/selfminesim/netsim/internal/simmetrics"
	"github.com/selfminesim/netsim/ledger"
	"github.com/selfminesim/netsim/queue"
	"github.com/selfminesim/netsim/topology"
)

var logger = simlog.NewModuleLogger(simlog.Selfish)

// Controller holds one selfish miner's withheld-block state. It implements
// peer.SelfishPolicy.
type Controller struct {
	peerID  int
	net     *topology.Network
	rng     *rand.Rand
	metrics *simmetrics.Registry

	blocks []ledger.Block // FIFO, oldest first
	lead   int
}

// New constructs a Controller for peerID, consulting net for gossip fan-out
// when blocks are released.
func New(peerID int, net *topology.Network, rng *rand.Rand, metrics *simmetrics.Registry) *Controller {
	return &Controller{peerID: peerID, net: net, rng: rng, metrics: metrics}
}

func (c *Controller) OnMined(blk ledger.Block) {
	c.blocks = append(c.blocks, blk)
	c.lead++
	logger.Debug("withholding mined block", "peer", c.peerID, "block", blk.ID, "lead", c.lead)
}

func (c *Controller) PrivateBlockIDs() map[int64]bool {
	ids := make(map[int64]bool, len(c.blocks))
	for _, b := range c.blocks {
		ids[b.ID] = true
	}
	return ids
}

// OnHonestBlockAccepted runs the lead-diff release policy (§4.5) whenever an
// externally-received block b deepens the public chain past the depth it
// held immediately before b was attached. Let P be the depth of the
// newest withheld block if any are held, else 0; lead_diff = P - depth(b).
// lead_diff < 2 releases every withheld block; lead_diff >= 2 releases
// only the oldest.
func (c *Controller) OnHonestBlockAccepted(q *queue.Queue, b ledger.Block, publicDepthBefore int, t float64) {
	if b.Depth <= publicDepthBefore {
		return
	}

	p := 0
	if len(c.blocks) > 0 {
		p = c.blocks[len(c.blocks)-1].Depth
	}
	leadDiff := p - b.Depth

	if leadDiff < 2 {
		c.releaseAll(q, t)
	} else {
		c.releaseOldest(q, t)
	}
}

func (c *Controller) releaseAll(q *queue.Queue, t float64) {
	for _, blk := range c.blocks {
		c.forward(q, blk, t)
		c.metrics.SelfishReleased.Inc(1)
	}
	logger.Info("releasing all withheld blocks", "peer", c.peerID, "count", len(c.blocks))
	c.blocks = nil
	c.lead = 0
}

func (c *Controller) releaseOldest(q *queue.Queue, t float64) {
	if len(c.blocks) == 0 {
		return
	}
	blk := c.blocks[0]
	c.blocks = c.blocks[1:]
	c.lead--
	c.forward(q, blk, t)
	c.metrics.SelfishReleased.Inc(1)
	logger.Info("releasing oldest withheld block", "peer", c.peerID, "block", blk.ID, "remaining", len(c.blocks))
}

func (c *Controller) forward(q *queue.Queue, blk ledger.Block, t float64) {
	for _, n := range c.net.Neighbors(c.peerID) {
		qd := c.net.QueuingDelay(c.peerID, n, c.rng)
		blkCopy := blk
		q.Push(&queue.Event{Time: t + qd, Sender: c.peerID, Receiver: n, Block: &blkCopy, Type: queue.ForwardBlock})
	}
}

// Flush releases every remaining withheld block at the end of a run, so a
// selfish miner's hidden work isn't simply discarded when the simulation
// stops.
func (c *Controller) Flush(q *queue.Queue, t float64) {
	if len(c.blocks) == 0 {
		return
	}
	c.releaseAll(q, t)
}

// PrivateChainSet returns the withheld blocks' ids as a fatih/set, the same
// membership-set idiom work/worker.go's agent bookkeeping uses, for callers
// that want set algebra (union/intersection) against another id set rather
// than a plain map.
func (c *Controller) PrivateChainSet() *set.Set {
	s := set.New()
	for _, b := range c.blocks {
		s.Add(b.ID)
	}
	return s
}
