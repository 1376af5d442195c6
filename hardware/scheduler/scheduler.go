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
	"fmt"
	"sort"
	"strings"

	"github.com/jetsetilly/gophermsx/assert"
	"github.com/jetsetilly/gophermsx/curated"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/logger"
)

// Sentinal error patterns returned by the scheduler.
const (
	// a sync point was requested for a time earlier than the current time or
	// AdvanceTo() was asked to move time backwards
	OrderingViolation = "scheduler: ordering violation: %s requested %v but current time is %v"

	// a Schedulable still had pending sync points when the scheduler was
	// torn down
	UnregisteredAtTeardown = "scheduler: unregistered at teardown: %s"

	// AdvanceTo() was called from inside a dispatch callback
	NestedAdvance = "scheduler: nested advance to %v"

	// the error returned by a dispatch callback is wrapped in this pattern
	DispatchError = "scheduler: %s: %v"
)

// Scheduler maintains the queue of pending sync points and the current time of
// the emulation.
type Scheduler struct {
	perm logger.Permission

	current clocks.Time

	// the sequence number given to the next sync point
	seq uint64

	queue   queue
	pending map[key]*SyncPoint

	// registered schedulables in order of registration
	registered []Schedulable

	dispatching bool

	// the scheduler must only ever be advanced from one goroutine
	goroutine assert.Goroutine
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type. The Permission is used when logging diagnostics.
func NewScheduler(perm logger.Permission) *Scheduler {
	return &Scheduler{
		perm:    perm,
		pending: make(map[key]*SyncPoint),
	}
}

func (s *Scheduler) log(tag string, detail any) {
	logger.Log(s.perm, tag, detail)
}

func (s *Scheduler) String() string {
	b := strings.Builder{}
	b.WriteString(fmt.Sprintf("now=%v", s.current))
	for _, sp := range s.sorted() {
		b.WriteString(fmt.Sprintf(" [%v %s:%d]", sp.Time, sp.Owner.SchedName(), sp.Tag))
	}
	return b.String()
}

// sorted returns the pending sync points in dispatch order.
func (s *Scheduler) sorted() []*SyncPoint {
	l := make([]*SyncPoint, len(s.queue))
	copy(l, s.queue)
	sort.Slice(l, func(i, j int) bool {
		return l[i].before(l[j])
	})
	return l
}

// CurrentTime returns the current time of the emulation.
func (s *Scheduler) CurrentTime() clocks.Time {
	return s.current
}

// NextSyncPoint returns the time of the next sync point to be dispatched.
// Returns clocks.Infinity if there are no pending sync points.
func (s *Scheduler) NextSyncPoint() clocks.Time {
	if sp := s.queue.peek(); sp != nil {
		return sp.Time
	}
	return clocks.Infinity
}

// Len returns the number of pending sync points.
func (s *Scheduler) Len() int {
	return len(s.queue)
}

// Register adds the Schedulable to the list of Schedulables that will be
// notified when the Scheduler is torn down. It is not necessary to register a
// Schedulable in order to set a sync point. Registering more than once has no
// effect.
func (s *Scheduler) Register(owner Schedulable) {
	for _, r := range s.registered {
		if r == owner {
			return
		}
	}
	s.registered = append(s.registered, owner)
}

// Unregister removes the Schedulable from the list of registered
// Schedulables. Pending sync points for the Schedulable are not removed.
func (s *Scheduler) Unregister(owner Schedulable) {
	for i, r := range s.registered {
		if r == owner {
			s.registered = append(s.registered[:i], s.registered[i+1:]...)
			return
		}
	}
}

// SetSyncPoint requests that the owner be notified at the specified time with
// the specified tag. Any pending sync point for the same owner and tag is
// replaced.
//
// Returns an OrderingViolation error if the time is earlier than the current
// time. In that case the pending sync points are unchanged.
func (s *Scheduler) SetSyncPoint(time clocks.Time, owner Schedulable, tag int) error {
	if time.Before(s.current) {
		return curated.Errorf(OrderingViolation, owner.SchedName(), time, s.current)
	}

	k := key{owner: owner, tag: tag}
	seq := s.seq
	s.seq++

	if sp, ok := s.pending[k]; ok {
		sp.Time = time
		sp.seq = seq
		heap.Fix(&s.queue, sp.index)
		return nil
	}

	sp := &SyncPoint{
		Time:  time,
		Owner: owner,
		Tag:   tag,
		seq:   seq,
	}
	s.pending[k] = sp
	heap.Push(&s.queue, sp)

	return nil
}

// RemoveSyncPoint removes the pending sync point for the owner and tag. It is
// not an error to remove a sync point that isn't pending.
func (s *Scheduler) RemoveSyncPoint(owner Schedulable, tag int) {
	k := key{owner: owner, tag: tag}
	if sp, ok := s.pending[k]; ok {
		delete(s.pending, k)
		s.queue.remove(sp)
	}
}

// RemoveSyncPoints removes all pending sync points for the owner.
func (s *Scheduler) RemoveSyncPoints(owner Schedulable) {
	for k, sp := range s.pending {
		if k.owner == owner {
			delete(s.pending, k)
			s.queue.remove(sp)
		}
	}
}

// PendingSyncPoint returns true if there is a sync point pending for the
// owner and tag.
func (s *Scheduler) PendingSyncPoint(owner Schedulable, tag int) bool {
	_, ok := s.pending[key{owner: owner, tag: tag}]
	return ok
}

// PendingTime returns the time of the pending sync point for the owner and
// tag. The boolean return value is false if no such sync point is pending.
func (s *Scheduler) PendingTime(owner Schedulable, tag int) (clocks.Time, bool) {
	if sp, ok := s.pending[key{owner: owner, tag: tag}]; ok {
		return sp.Time, true
	}
	return clocks.Zero, false
}

// AdvanceTo dispatches every pending sync point with a time earlier than or
// equal to the target time, in time order. The current time is set to the time
// of each sync point before it is dispatched and is set to the target time
// once there are no more sync points to dispatch.
//
// If a dispatch callback returns an error then AdvanceTo() returns
// immediately with the error wrapped in the DispatchError pattern. The current
// time will be the time of the failed sync point.
func (s *Scheduler) AdvanceTo(time clocks.Time) error {
	s.goroutine.Check("scheduler")

	if s.dispatching {
		return curated.Errorf(NestedAdvance, time)
	}
	if time.Before(s.current) {
		return curated.Errorf(OrderingViolation, "advance", time, s.current)
	}

	s.dispatching = true
	defer func() {
		s.dispatching = false
	}()

	// the queue is consulted afresh every iteration because the dispatch
	// callback may have changed it
	for {
		sp := s.queue.peek()
		if sp == nil || sp.Time.After(time) {
			break
		}

		heap.Pop(&s.queue)
		delete(s.pending, key{owner: sp.Owner, tag: sp.Tag})
		s.current = sp.Time

		if err := sp.Owner.ExecuteUntil(sp.Time, sp.Tag); err != nil {
			return curated.Errorf(DispatchError, sp.Owner.SchedName(), err)
		}
	}

	s.current = time

	return nil
}

// Teardown notifies every registered Schedulable that the Scheduler is going
// away. Any sync points that are still pending are removed and reported with
// an UnregisteredAtTeardown error, which is also logged.
//
// The Scheduler should not be used after Teardown().
func (s *Scheduler) Teardown() error {
	var leftover []Schedulable
	var names []string
	seen := make(map[Schedulable]bool)
	for _, sp := range s.sorted() {
		if !seen[sp.Owner] {
			seen[sp.Owner] = true
			leftover = append(leftover, sp.Owner)
			names = append(names, sp.Owner.SchedName())
		}
	}

	// notify registered schedulables in order of registration. the list is
	// copied because a schedulable may detach itself in response
	registered := make([]Schedulable, len(s.registered))
	copy(registered, s.registered)
	for _, r := range registered {
		r.SchedulerDeleted()
		delete(seen, r)
	}

	// schedulables that were never registered but which left sync points
	// behind are also notified
	for _, o := range leftover {
		if seen[o] {
			o.SchedulerDeleted()
		}
	}

	s.queue = s.queue[:0]
	s.pending = make(map[key]*SyncPoint)
	s.registered = s.registered[:0]

	if len(names) > 0 {
		err := curated.Errorf(UnregisteredAtTeardown, strings.Join(names, ", "))
		s.log("scheduler", err)
		return err
	}

	return nil
}
