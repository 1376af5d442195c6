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

// Package scheduler is the single source of truth for the current time of the
// emulation. Components that need to do something at a future point in virtual
// time implement the Schedulable interface and register a sync point with the
// Scheduler. When the emulation is advanced with AdvanceTo(), the sync points
// are dispatched in time order.
//
// Sync points with the same time are dispatched in the order they were set.
// Replacing a sync point (setting a sync point for an owner and tag that is
// already pending) counts as setting a new sync point for the purposes of the
// ordering. This order is preserved by Snapshot() and Restore() so that
// replaying from a restored state dispatches identically.
//
// Dispatch callbacks can set and remove sync points, including those of other
// Schedulables. A sync point set during dispatch with a time before or equal
// to the AdvanceTo() target will be dispatched during the same call.
//
// The Scheduler is not safe for concurrent use. All Schedulables are expected
// to run in the emulation goroutine.
package scheduler
