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

package bus

import (
	"github.com/jetsetilly/gophermsx/hardware/clocks"
)

// The address space is divided into cache lines of CacheLineSize bytes. The
// start address of every cache line is a multiple of CacheLineSize.
const (
	CacheLineBits = 8
	CacheLineSize = 1 << CacheLineBits
	CacheLineMask = CacheLineSize - 1

	AddressSpace  = 0x10000
	NumCacheLines = AddressSpace / CacheLineSize
)

// LineStart returns the start address of the cache line containing the
// address.
func LineStart(address uint16) uint16 {
	return address &^ CacheLineMask
}

// Device is implemented by everything that can be mapped into the address
// space.
type Device interface {
	// Label returns a short name for the device. Used in diagnostics.
	Label() string

	// Read the value at the address. The time argument is the current time
	// of the emulation.
	Read(address uint16, time clocks.Time) (uint8, error)

	// Write the data to the address. The time argument is the current time
	// of the emulation.
	Write(address uint16, data uint8, time clocks.Time) error

	// Peek returns the value that Read() would return but without any side
	// effects.
	Peek(address uint16, time clocks.Time) (uint8, error)

	// ReadCacheLine returns a CacheLineSize slice that can be read directly
	// in place of calling Read() for every address in the cache line that
	// begins at start. Returns nil if the cache line can not be read
	// directly.
	//
	// The slice must remain valid until the device calls InvalidateCache() on
	// the Invalidator it was created with. A device that implements the
	// Syncer interface must return nil for any cache line where reading
	// depends on the device being synchronised.
	ReadCacheLine(start uint16) []uint8

	// WriteCacheLine is the same as ReadCacheLine() but for writing.
	WriteCacheLine(start uint16) []uint8
}

// Syncer is implemented by devices that must be synchronised with the
// current time before being accessed.
type Syncer interface {
	// SyncTo brings the device's internal state up to the specified time.
	SyncTo(time clocks.Time) error
}

// Invalidator is implemented by the memory dispatcher. Devices must call
// InvalidateCache() whenever a change to the device alters the content of the
// slices returned by ReadCacheLine() and WriteCacheLine(), or whether a slice
// should be returned at all.
type Invalidator interface {
	InvalidateCache(start uint16, size int)
}

// Resetter is implemented by devices that have a power-on state.
type Resetter interface {
	Reset(time clocks.Time)
}

// Closer is implemented by devices that have resources to release when the
// machine is shut down.
type Closer interface {
	Close() error
}
