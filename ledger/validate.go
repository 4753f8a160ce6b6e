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

// Validate applies txs on top of parentBalances and returns the resulting
// balance vector. A coinbase transaction (Sender == Coinbase) credits the
// miner the fixed mining fee; every other transaction debits its sender and
// credits its receiver. The whole block is rejected (ok == false) if any
// balance would go negative at any point during application.
func Validate(parentBalances []int64, txs []Transaction, miner int) (balances []int64, ok bool) {
	bal := make([]int64, len(parentBalances))
	copy(bal, parentBalances)

	for _, tx := range txs {
		if tx.Sender == Coinbase {
			bal[miner] += tx.Amount
			continue
		}
		bal[tx.Sender] -= tx.Amount
		bal[tx.Receiver] += tx.Amount
		if bal[tx.Sender] < 0 {
			return nil, false
		}
	}
	for _, b := range bal {
		if b < 0 {
			return nil, false
		}
	}
	return bal, true
}

// ApplyFiltering applies txs in order on top of parentBalances, dropping any
// non-coinbase transaction whose sender can't afford it rather than
// rejecting the whole set. Used only when a miner assembles its own block,
// where silently omitting an unaffordable transaction is preferable to
// refusing to mine.
func ApplyFiltering(parentBalances []int64, txs []Transaction, miner int) (kept []Transaction, balances []int64) {
	bal := make([]int64, len(parentBalances))
	copy(bal, parentBalances)

	for _, tx := range txs {
		if tx.Sender == Coinbase {
			bal[miner] += tx.Amount
			kept = append(kept, tx)
			continue
		}
		if bal[tx.Sender] < tx.Amount {
			continue
		}
		bal[tx.Sender] -= tx.Amount
		bal[tx.Receiver] += tx.Amount
		kept = append(kept, tx)
	}
	return kept, bal
}
