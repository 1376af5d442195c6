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
	"github.com/jetsetilly/gophermsx/hardware/clocks"
)

// Schedulable is implemented by any component that wants to be notified when
// a point in virtual time is reached.
//
// Implementations must be comparable and will in practice always be pointer
// types. The Schedulable value is used as part of the key for pending sync
// points.
type Schedulable interface {
	// ExecuteUntil is called by the Scheduler when the time of a sync point
	// has been reached. The time argument is authoritative and is equal to the
	// current time of the scheduler.
	//
	// The implementation may set or remove sync points. A returned error will
	// stop the Scheduler from dispatching any more sync points during the
	// current AdvanceTo().
	ExecuteUntil(time clocks.Time, tag int) error

	// SchedulerDeleted is called when the Scheduler is torn down and the
	// Schedulable is still registered.
	SchedulerDeleted()

	// SchedName returns a name suitable for diagnostics.
	SchedName() string
}

// Base can be embedded in a type to help it implement the Schedulable
// interface. The embedding type must implement ExecuteUntil() and SchedName().
//
// The default implementation of SchedulerDeleted() logs a diagnostic because a
// Schedulable should have detached itself before the Scheduler is torn down.
// Schedulables that are intentionally attached for the lifetime of the
// Scheduler should override it.
type Base struct {
	sched *Scheduler
	self  Schedulable
}

// Attach the Schedulable to the Scheduler. The self argument should be the
// value embedding the Base instance.
func (b *Base) Attach(sched *Scheduler, self Schedulable) {
	b.sched = sched
	b.self = self
	sched.Register(self)
}

// Detach removes all pending sync points for the Schedulable and unregisters
// it from the Scheduler.
func (b *Base) Detach() {
	if b.sched == nil {
		return
	}
	b.sched.RemoveSyncPoints(b.self)
	b.sched.Unregister(b.self)
}

// Scheduler returns the Scheduler the Schedulable is attached to.
func (b *Base) Scheduler() *Scheduler {
	return b.sched
}

// CurrentTime returns the current time of the Scheduler.
func (b *Base) CurrentTime() clocks.Time {
	return b.sched.CurrentTime()
}

// SetSyncPoint is a convenience function for Scheduler.SetSyncPoint().
func (b *Base) SetSyncPoint(time clocks.Time, tag int) error {
	return b.sched.SetSyncPoint(time, b.self, tag)
}

// RemoveSyncPoint is a convenience function for Scheduler.RemoveSyncPoint().
func (b *Base) RemoveSyncPoint(tag int) {
	b.sched.RemoveSyncPoint(b.self, tag)
}

// RemoveSyncPoints is a convenience function for Scheduler.RemoveSyncPoints().
func (b *Base) RemoveSyncPoints() {
	b.sched.RemoveSyncPoints(b.self)
}

// PendingSyncPoint is a convenience function for Scheduler.PendingSyncPoint().
func (b *Base) PendingSyncPoint(tag int) bool {
	return b.sched.PendingSyncPoint(b.self, tag)
}

// SchedulerDeleted implements the Schedulable interface.
func (b *Base) SchedulerDeleted() {
	b.sched.log(b.self.SchedName(), "still attached at scheduler teardown")
}
