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

package memory_test

import (
	"testing"

	"github.com/jetsetilly/gophermsx/curated"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/memory"
	"github.com/jetsetilly/gophermsx/hardware/memory/bus"
	"github.com/jetsetilly/gophermsx/hardware/memory/multimem"
	"github.com/jetsetilly/gophermsx/test"
)

// banked is a 16k device with two banks. writing to the last address of the
// device switches bank. the device is cacheable
type banked struct {
	inv   bus.Invalidator
	banks [2][0x4000]uint8
	bank  int
	base  uint16
}

func newBanked(inv bus.Invalidator, base uint16) *banked {
	b := &banked{inv: inv, base: base}
	for i := range b.banks[1] {
		b.banks[0][i] = 0xaa
		b.banks[1][i] = 0xbb
	}
	return b
}

func (b *banked) Label() string {
	return "banked"
}

func (b *banked) Read(address uint16, _ clocks.Time) (uint8, error) {
	return b.banks[b.bank][address-b.base], nil
}

func (b *banked) Write(address uint16, data uint8, _ clocks.Time) error {
	if address-b.base == 0x3fff {
		b.bank = int(data & 0x01)
		b.inv.InvalidateCache(b.base, 0x4000)
		return nil
	}
	b.banks[b.bank][address-b.base] = data
	return nil
}

func (b *banked) Peek(address uint16, t clocks.Time) (uint8, error) {
	return b.Read(address, t)
}

func (b *banked) ReadCacheLine(start uint16) []uint8 {
	o := start - b.base
	return b.banks[b.bank][o : o+bus.CacheLineSize]
}

func (b *banked) WriteCacheLine(start uint16) []uint8 {
	// the last line contains the bank switching register
	if start-b.base == 0x3f00 {
		return nil
	}
	o := start - b.base
	return b.banks[b.bank][o : o+bus.CacheLineSize]
}

// counter is not cacheable and must be synchronised before being read
type counter struct {
	synced clocks.Time
	syncs  int
}

func (c *counter) Label() string {
	return "counter"
}

func (c *counter) SyncTo(t clocks.Time) error {
	c.synced = t
	c.syncs++
	return nil
}

func (c *counter) Read(_ uint16, t clocks.Time) (uint8, error) {
	if t != c.synced {
		return 0, curated.Errorf("counter not synced")
	}
	return uint8(t.Ticks()), nil
}

func (c *counter) Write(_ uint16, _ uint8, _ clocks.Time) error {
	return nil
}

func (c *counter) Peek(address uint16, t clocks.Time) (uint8, error) {
	return c.Read(address, t)
}

func (c *counter) ReadCacheLine(_ uint16) []uint8 {
	return nil
}

func (c *counter) WriteCacheLine(_ uint16) []uint8 {
	return nil
}

func TestCacheHits(t *testing.T) {
	mem := memory.NewMemory("test")
	b := newBanked(mem, 0x4000)
	test.ExpectSuccess(t, mem.Add(b, 0x4000, 0x4000))

	v, err := mem.Read(0x4000, clocks.Zero)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0xaa))
	v, err = mem.Read(0x4001, clocks.Zero)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0xaa))
	test.ExpectEquality(t, mem.Stats.Hits, uint64(2))
	test.ExpectEquality(t, mem.Stats.Misses, uint64(0))

	// writing through the cache reaches the device
	test.ExpectSuccess(t, mem.Write(0x4010, 0x12, clocks.Zero))
	test.ExpectEquality(t, b.banks[0][0x10], uint8(0x12))
	v, _ = mem.Read(0x4010, clocks.Zero)
	test.ExpectEquality(t, v, uint8(0x12))
}

func TestInvalidationOnDeviceStateChange(t *testing.T) {
	mem := memory.NewMemory("test")
	b := newBanked(mem, 0x4000)
	test.ExpectSuccess(t, mem.Add(b, 0x4000, 0x4000))

	v, _ := mem.Read(0x4100, clocks.Zero)
	test.ExpectEquality(t, v, uint8(0xaa))

	// the bank switch register is not cached
	test.ExpectSuccess(t, mem.Write(0x7fff, 0x01, clocks.Zero))
	test.ExpectEquality(t, mem.Stats.Misses, uint64(1))

	// the cached line for bank zero has been invalidated
	v, _ = mem.Read(0x4100, clocks.Zero)
	test.ExpectEquality(t, v, uint8(0xbb))
}

func TestInvalidationOnAddRemove(t *testing.T) {
	mem := memory.NewMemory("test")

	// cache the unmapped line
	v, _ := mem.Read(0x4000, clocks.Zero)
	test.ExpectEquality(t, v, uint8(bus.UnmappedValue))

	b := newBanked(mem, 0x4000)
	test.ExpectSuccess(t, mem.Add(b, 0x4000, 0x4000))
	v, _ = mem.Read(0x4000, clocks.Zero)
	test.ExpectEquality(t, v, uint8(0xaa))

	test.ExpectSuccess(t, mem.Remove(b, 0x4000, 0x4000))
	v, _ = mem.Read(0x4000, clocks.Zero)
	test.ExpectEquality(t, v, uint8(bus.UnmappedValue))

	// failed operations do not invalidate
	n := mem.Stats.Invalidations
	test.ExpectSuccess(t, curated.Is(mem.Remove(b, 0x4000, 0x4000), multimem.NotFound))
	test.ExpectEquality(t, mem.Stats.Invalidations, n)
}

func TestUncacheableDeviceIsSynced(t *testing.T) {
	mem := memory.NewMemory("test")
	c := &counter{}
	test.ExpectSuccess(t, mem.Add(c, 0x0000, 0x100))

	for i := uint64(1); i <= 3; i++ {
		v, err := mem.Read(0x0010, clocks.FromTicks(i*10))
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, v, uint8(i*10))
	}
	test.ExpectEquality(t, c.syncs, 3)
	test.ExpectEquality(t, mem.Stats.Hits, uint64(0))

	// peek is synchronised too
	v, err := mem.Peek(0x0010, clocks.FromTicks(99))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(99))
}
