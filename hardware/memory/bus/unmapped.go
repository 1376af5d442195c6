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

// UnmappedValue is the value read from an address that no device responds to.
const UnmappedValue = 0xff

// the line returned by Unmapped.ReadCacheLine(). it is never written to
var unmappedRead [CacheLineSize]uint8

// the line returned by Unmapped.WriteCacheLine(). values written to it are
// never read
var unmappedWrite [CacheLineSize]uint8

func init() {
	for i := range unmappedRead {
		unmappedRead[i] = UnmappedValue
	}
}

type unmapped struct{}

// Unmapped is the device that responds to addresses that are not claimed by
// any other device. Reads return UnmappedValue and writes are ignored.
var Unmapped Device = unmapped{}

func (unmapped) Label() string {
	return "unmapped"
}

func (unmapped) Read(_ uint16, _ clocks.Time) (uint8, error) {
	return UnmappedValue, nil
}

func (unmapped) Write(_ uint16, _ uint8, _ clocks.Time) error {
	return nil
}

func (unmapped) Peek(_ uint16, _ clocks.Time) (uint8, error) {
	return UnmappedValue, nil
}

func (unmapped) ReadCacheLine(_ uint16) []uint8 {
	return unmappedRead[:]
}

func (unmapped) WriteCacheLine(_ uint16) []uint8 {
	return unmappedWrite[:]
}

// UnmappedReadLine returns a read cache line for devices that want to
// present an unmapped region.
func UnmappedReadLine() []uint8 {
	return unmappedRead[:]
}

// UnmappedWriteLine returns a write cache line for devices that want to ignore
// writes to a region.
func UnmappedWriteLine() []uint8 {
	return unmappedWrite[:]
}
