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

package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueuePopsInTimeOrder(t *testing.T) {
	q := New()
	q.Push(&Event{Time: 3, Type: CreateTxn})
	q.Push(&Event{Time: 1, Type: CreateTxn})
	q.Push(&Event{Time: 2, Type: CreateTxn})

	var times []float64
	for {
		e, ok := q.Pop()
		if !ok {
			break
		}
		times = append(times, e.Time)
	}
	assert.Equal(t, []float64{1, 2, 3}, times)
}

func TestQueueTieBreaksByInsertionOrder(t *testing.T) {
	q := New()
	q.Push(&Event{Time: 5, Sender: 1})
	q.Push(&Event{Time: 5, Sender: 2})
	q.Push(&Event{Time: 5, Sender: 3})

	e1, ok := q.Pop()
	require.True(t, ok)
	e2, ok := q.Pop()
	require.True(t, ok)
	e3, ok := q.Pop()
	require.True(t, ok)

	assert.Equal(t, []int{1, 2, 3}, []int{e1.Sender, e2.Sender, e3.Sender})
}

func TestQueuePopEmpty(t *testing.T) {
	q := New()
	_, ok := q.Pop()
	assert.False(t, ok)
}

func TestEventTypeStrings(t *testing.T) {
	assert.Equal(t, "CREATE_TXN", CreateTxn.String())
	assert.Equal(t, "RECEIVE_BLOCK", ReceiveBlock.String())
}
