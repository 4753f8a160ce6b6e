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

import "container/heap"

type eventHeap []*Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(*Event))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// Queue is the simulator's event list, built on container/heap the same
// way the teacher's codebase reaches for stdlib containers when no
// third-party dependency models the data structure.
type Queue struct {
	h       eventHeap
	nextSeq uint64
}

func New() *Queue {
	q := &Queue{}
	heap.Init(&q.h)
	return q
}

// Push schedules e, stamping it with the next insertion sequence number for
// stable tie-breaking against other events sharing the same Time.
func (q *Queue) Push(e *Event) {
	e.seq = q.nextSeq
	q.nextSeq++
	heap.Push(&q.h, e)
}

func (q *Queue) Pop() (*Event, bool) {
	if q.h.Len() == 0 {
		return nil, false
	}
	return heap.Pop(&q.h).(*Event), true
}

func (q *Queue) Len() int { return q.h.Len() }
