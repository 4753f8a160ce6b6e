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
	set "gopkg.in/fatih/set.v0"

	"github.com/selfminesim/netsim/ledger"
)

// onChainTxIDs walks the chain from tipID back to genesis and returns the
// set of transaction ids already included somewhere along it, so block
// assembly never double-spends a transaction onto the same chain twice.
func (p *Peer) onChainTxIDs(tipID int64) *set.Set {
	included := set.New()
	id := tipID
	for {
		b, ok := p.Tree.GetBlock(id)
		if !ok {
			break
		}
		for _, tx := range b.Txs {
			included.Add(tx.ID)
		}
		if id == ledger.GenesisID {
			break
		}
		id = b.ParentID
	}
	return included
}

// selectTransactions picks mempool transactions not yet included on the
// chain rooted at tipID, capped at ledger.MaxTxPerBlock.
func (p *Peer) selectTransactions(tipID int64) []ledger.Transaction {
	onChain := p.onChainTxIDs(tipID)
	out := make([]ledger.Transaction, 0, len(p.Mempool))
	for _, tx := range p.Mempool {
		if onChain.Has(tx.ID) {
			continue
		}
		out = append(out, tx)
		if len(out) >= ledger.MaxTxPerBlock {
			break
		}
	}
	return out
}
