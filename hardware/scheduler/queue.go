// This file is part of GopherMSX.
//
// GopherMSX is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherMSX is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherMSX.  If not, see <https://www.gnu.org/licenses/>.

package scheduler

import (
	"container/heap"

	"github.com/jetsetilly/gophermsx/hardware/clocks"
)

// SyncPoint is a request from a Schedulable to be notified at the specified
// time. The Tag distinguishes between different reasons for notification from
// the same Schedulable.
type SyncPoint struct {
	Time  clocks.Time
	Owner Schedulable
	Tag   int

	// insertion sequence used to order sync points with the same time
	seq uint64

	// position in the heap. maintained by the queue
	index int
}

// before returns true if sp should be dispatched before o.
func (sp *SyncPoint) before(o *SyncPoint) bool {
	if sp.Time == o.Time {
		return sp.seq < o.seq
	}
	return sp.Time.Before(o.Time)
}

type key struct {
	owner Schedulable
	tag   int
}

// queue implements heap.Interface. the zeroth entry is always the next sync
// point to be dispatched.
type queue []*SyncPoint

func (q queue) Len() int {
	return len(q)
}

func (q queue) Less(i, j int) bool {
	return q[i].before(q[j])
}

func (q queue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *queue) Push(x any) {
	sp := x.(*SyncPoint)
	sp.index = len(*q)
	*q = append(*q, sp)
}

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	sp := old[n-1]
	old[n-1] = nil
	sp.index = -1
	*q = old[:n-1]
	return sp
}

// peek returns the next sync point without removing it.
func (q queue) peek() *SyncPoint {
	if len(q) == 0 {
		return nil
	}
	return q[0]
}

func (q *queue) remove(sp *SyncPoint) {
	heap.Remove(q, sp.index)
}
