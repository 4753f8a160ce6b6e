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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCoinbaseOnly(t *testing.T) {
	parent := []int64{100, 100}
	txs := []Transaction{{Sender: Coinbase, Receiver: 0, Amount: MiningFee}}
	bal, ok := Validate(parent, txs, 0)
	assert := assert.New(t)
	assert.True(ok)
	assert.Equal(int64(150), bal[0])
	assert.Equal(int64(100), bal[1])
}

func TestValidateRejectsNegativeBalance(t *testing.T) {
	parent := []int64{10, 100}
	txs := []Transaction{{Sender: 0, Receiver: 1, Amount: 1000}}
	_, ok := Validate(parent, txs, 0)
	assert.False(t, ok)
}

func TestValidateDoesNotMutateParent(t *testing.T) {
	parent := []int64{100, 100}
	txs := []Transaction{{Sender: 0, Receiver: 1, Amount: 10}}
	bal, ok := Validate(parent, txs, 0)
	require := assert.New(t)
	require.True(ok)
	require.Equal(int64(100), parent[0], "Validate must not mutate its input slice")
	require.Equal(int64(90), bal[0])
	require.Equal(int64(110), bal[1])
}

func TestApplyFilteringDropsUnaffordableTx(t *testing.T) {
	parent := []int64{5, 100, 0}
	txs := []Transaction{
		{Sender: 0, Receiver: 1, Amount: 1000}, // unaffordable, dropped
		{Sender: Coinbase, Receiver: 2, Amount: MiningFee},
	}
	kept, bal := ApplyFiltering(parent, txs, 2)
	assert := assert.New(t)
	assert.Len(kept, 1)
	assert.Equal(Coinbase, kept[0].Sender)
	assert.Equal(int64(5), bal[0])
	assert.Equal(int64(50), bal[2])
}

func TestEmptyMempoolBlockIsCoinbaseOnly(t *testing.T) {
	coinbase := Transaction{ID: 0, Sender: Coinbase, Receiver: 0, Amount: MiningFee}
	kept, _ := ApplyFiltering([]int64{100}, []Transaction{coinbase}, 0)
	assert := assert.New(t)
	assert.Len(kept, 1)
	assert.Equal(BlockSize(1), int64(16))
}
