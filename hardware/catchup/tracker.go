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

package catchup

import (
	"fmt"

	"github.com/jetsetilly/gophermsx/assert"
	"github.com/jetsetilly/gophermsx/curated"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/logger"
)

// StaleReplayDetected is the pattern for the error returned by Sync() when the
// requested time is earlier than the time the cached state is valid up to.
//
// When built with the "assertions" tag this condition panics.
const StaleReplayDetected = "catchup: stale replay: %s requested %v but valid up to %v"

// Replay brings cached state up to date. The from argument is the time the
// cached state is currently valid up to. The function should return the time
// the cached state is valid up to after the replay, which must be between
// from and to inclusive.
type Replay func(from clocks.Time, to clocks.Time) clocks.Time

// Tracker records the time up to which a component's cached state is valid.
type Tracker struct {
	name string
	perm logger.Permission

	validUpTo clocks.Time
	syncing   bool
}

// NewTracker is the preferred method of initialisation for the Tracker type.
// The name is used in diagnostics.
func NewTracker(name string, perm logger.Permission) Tracker {
	return Tracker{
		name: name,
		perm: perm,
	}
}

func (t *Tracker) String() string {
	return fmt.Sprintf("%s valid up to %v", t.name, t.validUpTo)
}

// ValidUpTo returns the time up to which the cached state is valid.
func (t *Tracker) ValidUpTo() clocks.Time {
	return t.validUpTo
}

// Syncing returns true if the Tracker is currently inside a replay.
func (t *Tracker) Syncing() bool {
	return t.syncing
}

// Reset the valid up to time. Should be used when the cached state is reset
// or restored from a snapshot.
func (t *Tracker) Reset(validUpTo clocks.Time) {
	t.validUpTo = validUpTo
}

// Sync brings the cached state up to the requested time by calling the replay
// function. Nothing happens if the requested time is the same as the time the
// cached state is already valid up to or if Sync() is called from inside the
// replay function.
//
// Returns a StaleReplayDetected error if the requested time is earlier than
// the valid up to time. The cached state is not changed in that case.
func (t *Tracker) Sync(to clocks.Time, replay Replay) error {
	if t.syncing {
		return nil
	}

	switch clocks.Compare(to, t.validUpTo) {
	case clocks.Equal:
		return nil
	case clocks.Before:
		err := curated.Errorf(StaleReplayDetected, t.name, to, t.validUpTo)
		logger.Log(t.perm, t.name, err)
		return assert.Fail(err)
	}

	t.syncing = true
	defer func() {
		t.syncing = false
	}()

	mark := replay(t.validUpTo, to)
	if mark.Before(t.validUpTo) || mark.After(to) {
		panic(fmt.Sprintf("catchup: %s replayed to %v outside of range %v to %v", t.name, mark, t.validUpTo, to))
	}
	t.validUpTo = mark

	return nil
}
