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
	"github.com/selfminesim/netsim/topology"
)

// txnAmounts mirrors the source's fixed transfer-amount choices.
var txnAmounts = [...]int64{1, 2, 3}

// CreateTxn originates a transaction addressed to a random other peer,
// gossips it to every neighbor, and schedules the next CREATE_TXN for
// itself after an exponentially distributed interval.
func (p *Peer) CreateTxn(q *queue.Queue, txn ledger.Transaction, t float64) {
	p.gossipTxn(q, txn, -1, t)

	nextT := t + p.rng.ExpFloat64()*p.tMean
	recv := topology.RandomOtherPeer(p.ID, p.net.N, p.rng)
	next := ledger.Transaction{
		ID:       p.ids.NextTxID(),
		Sender:   p.ID,
		Receiver: recv,
		Amount:   txnAmounts[p.rng.Intn(len(txnAmounts))],
		Time:     nextT,
	}
	q.Push(&queue.Event{Time: nextT, Sender: p.ID, Type: queue.CreateTxn, Txn: &next})
}

// ForwardTxn models the wire transfer of an already-queued transaction
// across a single link: propagation delay plus transmission time, landing
// as a RECEIVE_TXN at the destination.
func (p *Peer) ForwardTxn(q *queue.Queue, txn ledger.Transaction, to int, t float64) {
	latency := p.net.PropagationLatency(p.ID, to, ledger.TxSizeKbits)
	q.Push(&queue.Event{Time: t + latency, Sender: p.ID, Receiver: to, Txn: &txn, Type: queue.ReceiveTxn})
}

// ReceiveTxn dedups against the seen-transaction cache, appends to the
// mempool, and relays to every other neighbor.
func (p *Peer) ReceiveTxn(q *queue.Queue, txn ledger.Transaction, from int, t float64) {
	if p.seenTx.Contains(txn.ID) {
		return
	}
	p.seenTx.Add(txn.ID, struct{}{})
	p.Mempool = append(p.Mempool, txn)
	p.gossipTxn(q, txn, from, t)
}
