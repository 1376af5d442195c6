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

package ram

import (
	"encoding/hex"
	"fmt"

	"github.com/jetsetilly/gophermsx/environment"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/memory/bus"
)

// RAM represents a block of memory mapped into the address space. A RAM
// instance created with NewROM() ignores writes.
type RAM struct {
	env   *environment.Environment
	label string
	base  uint16
	rom   bool

	Data []uint8
}

// NewRAM is the preferred method of initialisation for the RAM type. The
// contents are undefined until Reset() is called.
func NewRAM(env *environment.Environment, label string, base uint16, size int) *RAM {
	return &RAM{
		env:   env,
		label: label,
		base:  base,
		Data:  make([]uint8, size),
	}
}

// NewROM is the preferred method of initialisation for a RAM instance that is
// read-only. The data is copied.
func NewROM(env *environment.Environment, label string, base uint16, data []uint8) *RAM {
	r := &RAM{
		env:   env,
		label: label,
		base:  base,
		rom:   true,
		Data:  make([]uint8, len(data)),
	}
	copy(r.Data, data)
	return r
}

// Snapshot creates a copy of RAM in its current state.
func (ram *RAM) Snapshot() *RAM {
	n := *ram
	n.Data = make([]uint8, len(ram.Data))
	copy(n.Data, ram.Data)
	return &n
}

// Plumb copies the contents of the snapshot into the RAM instance. The
// snapshot must have been taken from the same instance. Cache lines handed out
// by the instance remain valid.
func (ram *RAM) Plumb(snapshot *RAM) {
	copy(ram.Data, snapshot.Data)
}

// Reset implements the bus.Resetter interface. ROM is not affected. RAM is
// filled with random values if the RandomState preference is set, otherwise
// it is cleared.
func (ram *RAM) Reset(_ clocks.Time) {
	if ram.rom {
		return
	}
	if ram.env != nil && ram.env.Prefs.RandomState.Get().(bool) {
		ram.env.Random.Fill(ram.Data)
		return
	}
	clear(ram.Data)
}

func (ram *RAM) String() string {
	return hex.Dump(ram.Data)
}

// Label implements the bus.Device interface.
func (ram *RAM) Label() string {
	return ram.label
}

// Base returns the first address of the RAM in the address space.
func (ram *RAM) Base() uint16 {
	return ram.base
}

// Size returns the number of bytes in the RAM.
func (ram *RAM) Size() int {
	return len(ram.Data)
}

func (ram *RAM) offset(address uint16) (int, error) {
	o := int(address) - int(ram.base)
	if o < 0 || o >= len(ram.Data) {
		return 0, fmt.Errorf("%s: address %#04x out of range", ram.label, address)
	}
	return o, nil
}

// Read implements the bus.Device interface.
func (ram *RAM) Read(address uint16, _ clocks.Time) (uint8, error) {
	o, err := ram.offset(address)
	if err != nil {
		return bus.UnmappedValue, err
	}
	return ram.Data[o], nil
}

// Write implements the bus.Device interface.
func (ram *RAM) Write(address uint16, data uint8, _ clocks.Time) error {
	o, err := ram.offset(address)
	if err != nil {
		return err
	}
	if !ram.rom {
		ram.Data[o] = data
	}
	return nil
}

// Peek implements the bus.Device interface.
func (ram *RAM) Peek(address uint16, t clocks.Time) (uint8, error) {
	return ram.Read(address, t)
}

// Poke writes to the RAM even if it is a ROM.
func (ram *RAM) Poke(address uint16, data uint8) error {
	o, err := ram.offset(address)
	if err != nil {
		return err
	}
	ram.Data[o] = data
	return nil
}

// ReadCacheLine implements the bus.Device interface.
func (ram *RAM) ReadCacheLine(start uint16) []uint8 {
	o := int(start) - int(ram.base)
	if o < 0 || o+bus.CacheLineSize > len(ram.Data) {
		return nil
	}
	return ram.Data[o : o+bus.CacheLineSize]
}

// WriteCacheLine implements the bus.Device interface. Writes to ROM go to the
// shared unmapped write line.
func (ram *RAM) WriteCacheLine(start uint16) []uint8 {
	if ram.rom {
		return bus.UnmappedWriteLine()
	}
	return ram.ReadCacheLine(start)
}
