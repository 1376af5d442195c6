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

package memory

import (
	"fmt"

	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/memory/bus"
	"github.com/jetsetilly/gophermsx/hardware/memory/multimem"
)

// Stats records how effective the cache is.
type Stats struct {
	Hits          uint64
	Misses        uint64
	Invalidations uint64
}

func (s Stats) String() string {
	t := s.Hits + s.Misses
	if t == 0 {
		return "no accesses"
	}
	return fmt.Sprintf("hits %d misses %d (%.1f%%) invalidations %d",
		s.Hits, s.Misses, float64(s.Hits)*100/float64(t), s.Invalidations)
}

// cache entry for one line. the line is nil if the line can not be accessed
// directly. the entry is only valid if the version matches the current version
type entry struct {
	line    []uint8
	version uint64
}

// Memory is the bus dispatcher for the machine.
type Memory struct {
	multi *multimem.MultiMem

	// the current cache version. starts at one so that the zero value of
	// the cache entries are invalid
	version uint64

	read  [bus.NumCacheLines]entry
	write [bus.NumCacheLines]entry

	Stats Stats
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory(label string) *Memory {
	return &Memory{
		multi:   multimem.NewMultiMem(label),
		version: 1,
	}
}

func (mem *Memory) String() string {
	return mem.multi.String()
}

// Label implements the bus.Device interface.
func (mem *Memory) Label() string {
	return mem.multi.Label()
}

// MultiMem returns the underlying address map.
func (mem *Memory) MultiMem() *multimem.MultiMem {
	return mem.multi
}

// Add a device to the address space. See multimem.Add() for details.
func (mem *Memory) Add(dev bus.Device, base int, size int) error {
	if err := mem.multi.Add(dev, base, size); err != nil {
		return err
	}
	mem.InvalidateCache(uint16(base), size)
	return nil
}

// Remove a device from the address space. See multimem.Remove() for details.
func (mem *Memory) Remove(dev bus.Device, base int, size int) error {
	if err := mem.multi.Remove(dev, base, size); err != nil {
		return err
	}
	mem.InvalidateCache(uint16(base), size)
	return nil
}

// Resolve returns the device responsible for the address.
func (mem *Memory) Resolve(address uint16) bus.Device {
	return mem.multi.Resolve(address)
}

// InvalidateCache implements the bus.Invalidator interface. The entire cache
// is invalidated regardless of the range specified.
func (mem *Memory) InvalidateCache(_ uint16, _ int) {
	mem.version++
	mem.Stats.Invalidations++
}

func (mem *Memory) readLine(address uint16) []uint8 {
	e := &mem.read[address>>bus.CacheLineBits]
	if e.version != mem.version {
		e.line = mem.multi.ReadCacheLine(bus.LineStart(address))
		e.version = mem.version
	}
	return e.line
}

func (mem *Memory) writeLine(address uint16) []uint8 {
	e := &mem.write[address>>bus.CacheLineBits]
	if e.version != mem.version {
		e.line = mem.multi.WriteCacheLine(bus.LineStart(address))
		e.version = mem.version
	}
	return e.line
}

// Read implements the bus.Device interface.
func (mem *Memory) Read(address uint16, time clocks.Time) (uint8, error) {
	if l := mem.readLine(address); l != nil {
		mem.Stats.Hits++
		return l[address&bus.CacheLineMask], nil
	}
	mem.Stats.Misses++
	return mem.multi.Read(address, time)
}

// Write implements the bus.Device interface.
func (mem *Memory) Write(address uint16, data uint8, time clocks.Time) error {
	if l := mem.writeLine(address); l != nil {
		mem.Stats.Hits++
		l[address&bus.CacheLineMask] = data
		return nil
	}
	mem.Stats.Misses++
	return mem.multi.Write(address, data, time)
}

// Peek implements the bus.Device interface. Peek never uses the cache.
func (mem *Memory) Peek(address uint16, time clocks.Time) (uint8, error) {
	return mem.multi.Peek(address, time)
}

// ReadCacheLine implements the bus.Device interface.
func (mem *Memory) ReadCacheLine(start uint16) []uint8 {
	return mem.readLine(start)
}

// WriteCacheLine implements the bus.Device interface.
func (mem *Memory) WriteCacheLine(start uint16) []uint8 {
	return mem.writeLine(start)
}
