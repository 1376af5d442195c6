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

// State is a copy of the Scheduler's current time and pending sync points. The
// owners of the sync points are not copied. Restoring the state is only
// meaningful if the state of each owner is restored at the same time.
type State struct {
	current clocks.Time
	seq     uint64
	points  []SyncPoint
}

// CurrentTime returns the current time at the moment of the snapshot.
func (st *State) CurrentTime() clocks.Time {
	return st.current
}

// Snapshot creates a copy of the Scheduler state.
func (s *Scheduler) Snapshot() *State {
	st := &State{
		current: s.current,
		seq:     s.seq,
		points:  make([]SyncPoint, 0, len(s.queue)),
	}
	for _, sp := range s.sorted() {
		st.points = append(st.points, *sp)
	}
	return st
}

// Restore the Scheduler to the snapshotted state. All pending sync points are
// replaced with the sync points in the snapshot, including the order in which
// sync points with the same time will be dispatched. The list of registered
// Schedulables is not changed.
func (s *Scheduler) Restore(st *State) {
	s.current = st.current
	s.seq = st.seq
	s.queue = make(queue, 0, len(st.points))
	s.pending = make(map[key]*SyncPoint, len(st.points))
	for i := range st.points {
		sp := st.points[i]
		s.pending[key{owner: sp.Owner, tag: sp.Tag}] = &sp
		heap.Push(&s.queue, &sp)
	}
}
