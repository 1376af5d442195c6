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

package multimem_test

import (
	"testing"

	"github.com/jetsetilly/gophermsx/curated"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/memory/bus"
	"github.com/jetsetilly/gophermsx/hardware/memory/multimem"
	"github.com/jetsetilly/gophermsx/test"
)

// dev is a minimal bus.Device that returns the same value for every address
// and records the time of the most recent sync
type dev struct {
	label  string
	value  uint8
	line   [bus.CacheLineSize]uint8
	synced clocks.Time
	syncs  int
}

func newDev(label string, value uint8) *dev {
	d := &dev{label: label, value: value}
	for i := range d.line {
		d.line[i] = value
	}
	return d
}

func (d *dev) Label() string {
	return d.label
}

func (d *dev) Read(_ uint16, time clocks.Time) (uint8, error) {
	// reading without being synchronised first is a failure
	if d.synced != time {
		return 0, curated.Errorf("not synced")
	}
	return d.value, nil
}

func (d *dev) Write(_ uint16, data uint8, _ clocks.Time) error {
	d.value = data
	return nil
}

func (d *dev) Peek(_ uint16, _ clocks.Time) (uint8, error) {
	return d.value, nil
}

func (d *dev) ReadCacheLine(_ uint16) []uint8 {
	return d.line[:]
}

func (d *dev) WriteCacheLine(_ uint16) []uint8 {
	return nil
}

func (d *dev) SyncTo(time clocks.Time) error {
	d.synced = time
	d.syncs++
	return nil
}

func TestOverlapRejection(t *testing.T) {
	m := multimem.NewMultiMem("slot")
	x := newDev("x", 0x11)
	y := newDev("y", 0x22)

	test.ExpectSuccess(t, m.Add(x, 0x4000, 0x2000))

	test.ExpectFailure(t, m.CanAdd(0x5000, 0x2000))
	err := m.Add(y, 0x5000, 0x2000)
	test.ExpectSuccess(t, curated.Is(err, multimem.OverlapViolation))

	// the failed add has not changed anything
	test.ExpectEquality(t, m.Resolve(0x5000), bus.Device(x))
	test.ExpectEquality(t, m.Resolve(0x6500), bus.Unmapped)

	test.ExpectSuccess(t, m.CanAdd(0x6000, 0x2000))
	test.ExpectSuccess(t, m.Add(y, 0x6000, 0x2000))
	test.ExpectEquality(t, m.Resolve(0x5fff), bus.Device(x))
	test.ExpectEquality(t, m.Resolve(0x6000), bus.Device(y))
	test.ExpectEquality(t, m.Resolve(0x7fff), bus.Device(y))
	test.ExpectEquality(t, m.Resolve(0x8000), bus.Unmapped)

	test.ExpectEquality(t, m.Label(), "slot (y, x)")
	test.ExpectEquality(t, len(m.Devices()), 2)
}

func TestInvalidRange(t *testing.T) {
	m := multimem.NewMultiMem("slot")
	x := newDev("x", 0x11)
	test.ExpectSuccess(t, curated.Is(m.Add(x, 0xf000, 0x2000), multimem.InvalidRange))
	test.ExpectSuccess(t, curated.Is(m.Add(x, 0x0000, 0), multimem.InvalidRange))
	test.ExpectSuccess(t, m.Empty())
}

func TestRemove(t *testing.T) {
	m := multimem.NewMultiMem("slot")
	x := newDev("x", 0x11)
	y := newDev("y", 0x22)

	test.ExpectSuccess(t, m.Add(x, 0x4000, 0x2000))

	// removal must match exactly
	test.ExpectSuccess(t, curated.Is(m.Remove(x, 0x4000, 0x1000), multimem.NotFound))
	test.ExpectSuccess(t, curated.Is(m.Remove(y, 0x4000, 0x2000), multimem.NotFound))

	test.ExpectSuccess(t, m.Remove(x, 0x4000, 0x2000))
	test.ExpectSuccess(t, m.Empty())
	test.ExpectEquality(t, m.Resolve(0x4000), bus.Unmapped)

	// removing twice is an error
	test.ExpectSuccess(t, curated.Is(m.Remove(x, 0x4000, 0x2000), multimem.NotFound))

	// the region can be reused after removal
	test.ExpectSuccess(t, m.Add(y, 0x5000, 0x2000))
}

func TestSyncBeforeAccess(t *testing.T) {
	m := multimem.NewMultiMem("slot")
	x := newDev("x", 0x11)
	test.ExpectSuccess(t, m.Add(x, 0x4000, 0x2000))

	v, err := m.Read(0x4000, clocks.FromTicks(100))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x11))
	test.ExpectEquality(t, x.synced, clocks.FromTicks(100))

	test.ExpectSuccess(t, m.Write(0x4000, 0x33, clocks.FromTicks(200)))
	test.ExpectEquality(t, x.synced, clocks.FromTicks(200))

	v, err = m.Peek(0x4000, clocks.FromTicks(300))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x33))
	test.ExpectEquality(t, x.syncs, 3)

	// unmapped addresses do not touch the device
	v, err = m.Read(0x0000, clocks.FromTicks(400))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(bus.UnmappedValue))
	test.ExpectEquality(t, x.syncs, 3)
}

func TestPartialCacheLines(t *testing.T) {
	m := multimem.NewMultiMem("slot")
	x := newDev("x", 0x11)
	y := newDev("y", 0x22)

	// x ends in the middle of a cache line and y begins in the middle of a
	// cache line
	test.ExpectSuccess(t, m.Add(x, 0x4000, 0x0180))
	test.ExpectSuccess(t, m.Add(y, 0x4280, 0x0100))

	test.ExpectInequality(t, len(m.ReadCacheLine(0x4000)), 0)
	test.ExpectEquality(t, m.ReadCacheLine(0x4000)[0], uint8(0x11))
	test.ExpectEquality(t, len(m.ReadCacheLine(0x4100)), 0)
	test.ExpectEquality(t, len(m.ReadCacheLine(0x4200)), 0)
	test.ExpectEquality(t, len(m.ReadCacheLine(0x4300)), 0)

	// unmapped lines are cacheable
	test.ExpectEquality(t, m.ReadCacheLine(0x8000)[0], uint8(bus.UnmappedValue))

	// the device decides whether a line it owns is writable
	test.ExpectEquality(t, len(m.WriteCacheLine(0x4000)), 0)
}
