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

// Package queue is the simulator's event list: a min-heap over virtual
// time, tie-broken by insertion order so two events scheduled for the same
// instant always dispatch in a deterministic, reproducible sequence.
package queue

import "github.com/selfminesim/netsim/ledger"

type Type int

const (
	CreateTxn Type = iota
	ForwardTxn
	ReceiveTxn
	CreateBlock
	SuccessfulMining
	ForwardBlock
	ReceiveBlock
)

func (t Type) String() string {
	switch t {
	case CreateTxn:
		return "CREATE_TXN"
	case ForwardTxn:
		return "FORWARD_TXN"
	case ReceiveTxn:
		return "RECEIVE_TXN"
	case CreateBlock:
		return "CREATE_BLOCK"
	case SuccessfulMining:
		return "SUCCESSFUL_MINING"
	case ForwardBlock:
		return "FORWARD_BLOCK"
	case ReceiveBlock:
		return "RECEIVE_BLOCK"
	default:
		return "UNKNOWN"
	}
}

// Event is the tagged union dispatched by the driver loop. Sender/Receiver
// are peer ids; which one "owns" the handler invocation depends on Type
// (see sim.Driver.dispatch). Txn/Block carry the payload for the Types that
// need one; AssembledTipID is auxiliary data SUCCESSFUL_MINING uses to
// detect a stale mining result.
type Event struct {
	Time           float64
	Sender         int
	Receiver       int
	Type           Type
	Txn            *ledger.Transaction
	Block          *ledger.Block
	AssembledTipID int64

	seq uint64
}

func (e *Event) Seq() uint64 { return e.seq }
