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

// Package sim drives the discrete-event simulation loop: pull the earliest
// event, dispatch it to the owning peer's handler, repeat until the queue
// drains or the iteration cap is hit, then flush.
package sim

import (
	"math/rand"

	"github.com/selfminesim/netsim/config"
	"github.com/selfminesim/netsim/internal/simlog"
	"github.com/selfminesim/netsim/internal/simmetrics"
	"github.com/selfminesim/netsim/ledger"
	"github.com/selfminesim/netsim/peer"
	"github.com/selfminesim/netsim/queue"
	"github.com/selfminesim/netsim/selfish"
	"github.com/selfminesim/netsim/topology"
)

var logger = simlog.NewModuleLogger(simlog.Sim)

// Driver owns every peer, the shared event queue, and the virtual clock.
type Driver struct {
	Scenario config.Scenario
	Network  *topology.Network
	Peers    []*peer.Peer
	Metrics  *simmetrics.Registry

	queue *queue.Queue
	clock float64
	ids   *ledger.IdAllocator
	rng   *rand.Rand

	selfishCtls map[int]*selfish.Controller
}

// New builds the peer set over net, wiring the two adversary peers
// (net.Adversary1/Adversary2) as selfish miners with their own release
// controllers.
func New(s config.Scenario, net *topology.Network, rng *rand.Rand) *Driver {
	ids := ledger.NewIdAllocator()
	metrics := simmetrics.New()
	genesis := ledger.NewGenesisBlock(s.N)

	d := &Driver{
		Scenario:    s,
		Network:     net,
		Metrics:     metrics,
		queue:       queue.New(),
		ids:         ids,
		rng:         rng,
		selfishCtls: make(map[int]*selfish.Controller),
	}

	peer.MeanBlockTime = s.MeanBlockTime

	d.Peers = make([]*peer.Peer, s.N)
	for i := 0; i < s.N; i++ {
		isSelfish := i == net.Adversary1 || i == net.Adversary2
		p := peer.New(i, net.IsSlow[i], net.HashPower[i], isSelfish, genesis, ids, net, rng, metrics, s.TMean)
		if isSelfish {
			ctl := selfish.New(i, net, rng, metrics)
			p.Policy = ctl
			d.selfishCtls[i] = ctl
		}
		d.Peers[i] = p
	}
	return d
}

// Seed schedules the initial CREATE_TXN event for every peer, and the
// initial CREATE_BLOCK event for every peer with non-zero hashing power, at
// time zero.
func (d *Driver) Seed() {
	for i, p := range d.Peers {
		recv := topology.RandomOtherPeer(i, d.Scenario.N, d.rng)
		txn := ledger.Transaction{ID: d.ids.NextTxID(), Sender: i, Receiver: recv, Amount: 1, Time: 0}
		d.queue.Push(&queue.Event{Time: 0, Sender: i, Type: queue.CreateTxn, Txn: &txn})

		if p.HashPower > 0 {
			d.queue.Push(&queue.Event{Time: 0, Sender: i, Type: queue.CreateBlock})
		}
	}
}

// Run pulls events until the queue empties or MaxIterations fires, then
// flushes every selfish miner's remaining withheld blocks and drains the
// resulting propagation-only tail.
func (d *Driver) Run() {
	iterations := 0
	for iterations < d.Scenario.MaxIterations {
		e, ok := d.queue.Pop()
		if !ok {
			break
		}
		d.clock = e.Time
		d.dispatch(e)
		d.Metrics.EventsTotal.Inc(1)
		iterations++
	}

	logger.Info("main loop complete", "iterations", iterations, "clock", d.clock)
	d.flush()
}

// flush releases every selfish miner's withheld blocks, then drains the
// queue processing only propagation events (RECEIVE_TXN, RECEIVE_BLOCK,
// FORWARD_TXN, FORWARD_BLOCK) so in-flight gossip finishes landing without
// spawning new CREATE_TXN/CREATE_BLOCK/mining activity.
func (d *Driver) flush() {
	for _, ctl := range d.selfishCtls {
		ctl.Flush(d.queue, d.clock)
	}

	for {
		e, ok := d.queue.Pop()
		if !ok {
			return
		}
		switch e.Type {
		case queue.ReceiveTxn, queue.ReceiveBlock, queue.ForwardTxn, queue.ForwardBlock:
			d.clock = e.Time
			d.dispatch(e)
		default:
			// drop CREATE_TXN/CREATE_BLOCK/SUCCESSFUL_MINING: no new work
			// is originated during the flush tail.
		}
	}
}

func (d *Driver) dispatch(e *queue.Event) {
	switch e.Type {
	case queue.CreateTxn:
		d.Peers[e.Sender].CreateTxn(d.queue, *e.Txn, e.Time)
	case queue.ForwardTxn:
		d.Peers[e.Sender].ForwardTxn(d.queue, *e.Txn, e.Receiver, e.Time)
	case queue.ReceiveTxn:
		d.Peers[e.Receiver].ReceiveTxn(d.queue, *e.Txn, e.Sender, e.Time)
	case queue.CreateBlock:
		d.Peers[e.Sender].CreateBlock(d.queue, e.Time)
	case queue.SuccessfulMining:
		d.Peers[e.Sender].SuccessfulMining(d.queue, *e.Block, e.Time, e.AssembledTipID)
	case queue.ForwardBlock:
		d.Peers[e.Sender].ForwardBlock(d.queue, *e.Block, e.Receiver, e.Time)
	case queue.ReceiveBlock:
		d.Peers[e.Receiver].ReceiveBlock(d.queue, *e.Block, e.Sender, e.Time)
	default:
		logger.Error("unknown event type dispatched", "type", e.Type)
	}
}

// Clock returns the current virtual time.
func (d *Driver) Clock() float64 { return d.clock }
