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

package shadow_test

import (
	"testing"

	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/memory"
	"github.com/jetsetilly/gophermsx/hardware/memory/ram"
	"github.com/jetsetilly/gophermsx/hardware/memory/shadow"
	"github.com/jetsetilly/gophermsx/hardware/scheduler"
	"github.com/jetsetilly/gophermsx/logger"
	"github.com/jetsetilly/gophermsx/test"
)

func TestOverlaySwitchOff(t *testing.T) {
	sched := scheduler.NewScheduler(logger.Allow)
	mem := memory.NewMemory("test")

	r := ram.NewRAM(nil, "ram", 0x0000, 0x8000)
	r.Reset(clocks.Zero)

	boot := make([]uint8, 0x180)
	for i := range boot {
		boot[i] = 0xb0
	}

	sh, err := shadow.NewShadow(sched, mem, logger.Allow, boot, r, 1000)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, mem.Add(sh, 0x0000, 0x8000))
	sh.Reset(sched.CurrentTime())

	// boot rom is visible. the line that is part boot and part ram can not be
	// cached but is still read correctly
	v, _ := mem.Read(0x0000, sched.CurrentTime())
	test.ExpectEquality(t, v, uint8(0xb0))
	v, _ = mem.Read(0x017f, sched.CurrentTime())
	test.ExpectEquality(t, v, uint8(0xb0))
	v, _ = mem.Read(0x0180, sched.CurrentTime())
	test.ExpectEquality(t, v, uint8(0x00))

	// writes go to ram even when the boot rom is visible
	test.ExpectSuccess(t, mem.Write(0x0000, 0x55, sched.CurrentTime()))
	v, _ = mem.Read(0x0000, sched.CurrentTime())
	test.ExpectEquality(t, v, uint8(0xb0))

	test.ExpectSuccess(t, sched.AdvanceTo(clocks.FromTicks(999)))
	test.ExpectSuccess(t, sh.Overlay())

	// the sync point switches the overlay off and the cached lines are
	// invalidated
	test.ExpectSuccess(t, sched.AdvanceTo(clocks.FromTicks(1000)))
	test.ExpectFailure(t, sh.Overlay())
	v, _ = mem.Read(0x0000, sched.CurrentTime())
	test.ExpectEquality(t, v, uint8(0x55))

	test.ExpectSuccess(t, sh.Close())
	test.ExpectSuccess(t, sched.Teardown())
}

func TestBootLargerThanRAM(t *testing.T) {
	sched := scheduler.NewScheduler(logger.Allow)
	r := ram.NewRAM(nil, "ram", 0x0000, 0x100)
	_, err := shadow.NewShadow(sched, memory.NewMemory("test"), logger.Allow, make([]uint8, 0x200), r, 1000)
	test.ExpectFailure(t, err)
}
