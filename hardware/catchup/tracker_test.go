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

package catchup_test

import (
	"testing"

	"github.com/jetsetilly/gophermsx/assert"
	"github.com/jetsetilly/gophermsx/curated"
	"github.com/jetsetilly/gophermsx/hardware/catchup"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/logger"
	"github.com/jetsetilly/gophermsx/test"
)

const unit = 100

// units is a component that caches a count of whole units of time
type units struct {
	tracker catchup.Tracker
	count   int
	replays int

	// if true the replay function will call sync
	reenter bool
}

func newUnits() *units {
	return &units{
		tracker: catchup.NewTracker("units", logger.Allow),
	}
}

func (u *units) sync(to clocks.Time) error {
	return u.tracker.Sync(to, u.replay)
}

func (u *units) replay(from clocks.Time, to clocks.Time) clocks.Time {
	u.replays++
	if u.reenter {
		_ = u.sync(to)
	}
	n := (to.Ticks() - from.Ticks()) / unit
	u.count += int(n)
	return from.Add(clocks.Duration(n * unit))
}

func TestRoundDown(t *testing.T) {
	u := newUnits()

	test.ExpectSuccess(t, u.sync(clocks.FromTicks(250)))
	test.ExpectEquality(t, u.count, 2)
	test.ExpectEquality(t, u.tracker.ValidUpTo(), clocks.FromTicks(200))

	// the partial unit is picked up on a later sync
	test.ExpectSuccess(t, u.sync(clocks.FromTicks(320)))
	test.ExpectEquality(t, u.count, 3)
	test.ExpectEquality(t, u.tracker.ValidUpTo(), clocks.FromTicks(300))
}

func TestIdempotence(t *testing.T) {
	u := newUnits()

	test.ExpectSuccess(t, u.sync(clocks.FromTicks(400)))
	test.ExpectEquality(t, u.count, 4)
	test.ExpectEquality(t, u.replays, 1)

	// syncing to the same time does not call the replay function
	test.ExpectSuccess(t, u.sync(clocks.FromTicks(400)))
	test.ExpectEquality(t, u.count, 4)
	test.ExpectEquality(t, u.replays, 1)
	test.ExpectEquality(t, u.tracker.ValidUpTo(), clocks.FromTicks(400))

	// syncing to a time in the middle of a unit twice has no more effect
	// than syncing once
	test.ExpectSuccess(t, u.sync(clocks.FromTicks(450)))
	test.ExpectSuccess(t, u.sync(clocks.FromTicks(450)))
	test.ExpectEquality(t, u.count, 4)
	test.ExpectEquality(t, u.tracker.ValidUpTo(), clocks.FromTicks(400))
}

func TestReentrancy(t *testing.T) {
	u := newUnits()
	u.reenter = true

	test.ExpectSuccess(t, u.sync(clocks.FromTicks(500)))
	test.ExpectEquality(t, u.count, 5)
	test.ExpectEquality(t, u.replays, 1)
	test.ExpectFailure(t, u.tracker.Syncing())
}

func TestStaleReplay(t *testing.T) {
	if assert.Enabled {
		t.Skip("stale replay panics when assertions are enabled")
	}

	u := newUnits()
	test.ExpectSuccess(t, u.sync(clocks.FromTicks(300)))

	err := u.sync(clocks.FromTicks(299))
	test.ExpectSuccess(t, curated.Is(err, catchup.StaleReplayDetected))
	test.ExpectEquality(t, u.count, 3)
	test.ExpectEquality(t, u.tracker.ValidUpTo(), clocks.FromTicks(300))
}

func TestReset(t *testing.T) {
	u := newUnits()
	test.ExpectSuccess(t, u.sync(clocks.FromTicks(300)))
	u.tracker.Reset(clocks.FromTicks(100))
	u.count = 1
	test.ExpectSuccess(t, u.sync(clocks.FromTicks(300)))
	test.ExpectEquality(t, u.count, 3)
}

func TestReplayOutOfRange(t *testing.T) {
	tr := catchup.NewTracker("bad", logger.Deny)
	defer func() {
		test.ExpectInequality(t, recover(), nil)
	}()
	_ = tr.Sync(clocks.FromTicks(100), func(from clocks.Time, to clocks.Time) clocks.Time {
		return to.Add(1)
	})
}
