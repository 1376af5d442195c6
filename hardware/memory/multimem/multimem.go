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

package multimem

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gophermsx/curated"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/memory/bus"
)

// Sentinal error patterns returned by MultiMem.
const (
	OverlapViolation = "multimem: overlap: %s at %#04x size %#x overlaps %s"
	NotFound         = "multimem: not found: %s at %#04x size %#x"
	InvalidRange     = "multimem: invalid range: %s at %#04x size %#x"
)

// Range is a region of the address space and the device that responds to it.
type Range struct {
	Device bus.Device
	Base   int
	Size   int
}

func (r Range) String() string {
	return fmt.Sprintf("%s [%#04x, %#04x)", r.Device.Label(), r.Base, r.Base+r.Size)
}

func (r Range) contains(address int) bool {
	return address >= r.Base && address < r.Base+r.Size
}

func (r Range) overlaps(base int, size int) bool {
	return base < r.Base+r.Size && r.Base < base+size
}

// the sentinal range covering the entire address space
var sentinal = Range{Device: bus.Unmapped, Base: 0, Size: bus.AddressSpace}

// MultiMem maps regions of the address space to devices.
type MultiMem struct {
	label string

	// most recently added range first. the last entry is always the
	// sentinal range
	ranges []Range
}

// NewMultiMem is the preferred method of initialisation for the MultiMem type.
func NewMultiMem(label string) *MultiMem {
	return &MultiMem{
		label:  label,
		ranges: []Range{sentinal},
	}
}

// Label implements the bus.Device interface. The label includes the labels
// of all mapped devices.
func (m *MultiMem) Label() string {
	if m.Empty() {
		return m.label
	}
	l := make([]string, 0, len(m.ranges)-1)
	for _, r := range m.ranges[:len(m.ranges)-1] {
		l = append(l, r.Device.Label())
	}
	return fmt.Sprintf("%s (%s)", m.label, strings.Join(l, ", "))
}

func (m *MultiMem) String() string {
	s := strings.Builder{}
	for _, r := range m.ranges {
		s.WriteString(r.String())
		s.WriteString("\n")
	}
	return s.String()
}

// Empty returns true if no devices have been added.
func (m *MultiMem) Empty() bool {
	return len(m.ranges) == 1
}

// Ranges returns a copy of the mapped ranges, most recently added first. The
// sentinal range is not included.
func (m *MultiMem) Ranges() []Range {
	r := make([]Range, len(m.ranges)-1)
	copy(r, m.ranges)
	return r
}

// Devices returns the mapped devices, most recently added first. A device
// mapped to more than one range is listed once.
func (m *MultiMem) Devices() []bus.Device {
	var d []bus.Device
	seen := make(map[bus.Device]bool)
	for _, r := range m.ranges[:len(m.ranges)-1] {
		if !seen[r.Device] {
			seen[r.Device] = true
			d = append(d, r.Device)
		}
	}
	return d
}

func validRange(base int, size int) bool {
	return size > 0 && base >= 0 && base+size <= bus.AddressSpace
}

// CanAdd returns true if the region does not overlap an existing region.
func (m *MultiMem) CanAdd(base int, size int) bool {
	if !validRange(base, size) {
		return false
	}
	for _, r := range m.ranges[:len(m.ranges)-1] {
		if r.overlaps(base, size) {
			return false
		}
	}
	return true
}

// Add a device to the region of the address space. Returns an
// OverlapViolation error if the region overlaps a region that has already
// been added. The existing regions are not changed in the case of an error.
func (m *MultiMem) Add(dev bus.Device, base int, size int) error {
	if !validRange(base, size) {
		return curated.Errorf(InvalidRange, dev.Label(), base, size)
	}
	for _, r := range m.ranges[:len(m.ranges)-1] {
		if r.overlaps(base, size) {
			return curated.Errorf(OverlapViolation, dev.Label(), base, size, r.Device.Label())
		}
	}
	m.ranges = append([]Range{{Device: dev, Base: base, Size: size}}, m.ranges...)
	return nil
}

// Remove the device from the region of the address space. The device, base
// and size must be exactly as they were when the device was added. Returns a
// NotFound error otherwise.
func (m *MultiMem) Remove(dev bus.Device, base int, size int) error {
	for i, r := range m.ranges[:len(m.ranges)-1] {
		if r.Device == dev && r.Base == base && r.Size == size {
			m.ranges = append(m.ranges[:i], m.ranges[i+1:]...)
			return nil
		}
	}
	return curated.Errorf(NotFound, dev.Label(), base, size)
}

// find returns the range containing the address. the sentinal range contains
// every address so the search always succeeds.
func (m *MultiMem) find(address int) *Range {
	for i := range m.ranges {
		if m.ranges[i].contains(address) {
			return &m.ranges[i]
		}
	}
	panic("multimem: sentinal range is missing")
}

// Resolve returns the device responsible for the address.
func (m *MultiMem) Resolve(address uint16) bus.Device {
	return m.find(int(address)).Device
}

func sync(dev bus.Device, time clocks.Time) error {
	if s, ok := dev.(bus.Syncer); ok {
		if err := s.SyncTo(time); err != nil {
			return curated.Errorf("multimem: %s: %v", dev.Label(), err)
		}
	}
	return nil
}

// Read implements the bus.Device interface.
func (m *MultiMem) Read(address uint16, time clocks.Time) (uint8, error) {
	dev := m.Resolve(address)
	if err := sync(dev, time); err != nil {
		return bus.UnmappedValue, err
	}
	return dev.Read(address, time)
}

// Write implements the bus.Device interface.
func (m *MultiMem) Write(address uint16, data uint8, time clocks.Time) error {
	dev := m.Resolve(address)
	if err := sync(dev, time); err != nil {
		return err
	}
	return dev.Write(address, data, time)
}

// Peek implements the bus.Device interface.
func (m *MultiMem) Peek(address uint16, time clocks.Time) (uint8, error) {
	dev := m.Resolve(address)
	if err := sync(dev, time); err != nil {
		return bus.UnmappedValue, err
	}
	return dev.Peek(address, time)
}

// lineRange returns the range that covers the entire cache line beginning at
// start. returns nil if the cache line is split between ranges
func (m *MultiMem) lineRange(start uint16) *Range {
	s := int(bus.LineStart(start))
	r := m.find(s)
	if r.contains(s + bus.CacheLineSize - 1) {
		// a more recently added range might begin inside the cache line
		for i := range m.ranges {
			if &m.ranges[i] == r {
				return r
			}
			if m.ranges[i].overlaps(s, bus.CacheLineSize) {
				return nil
			}
		}
	}
	return nil
}

// ReadCacheLine implements the bus.Device interface. Cache lines that are not
// entirely inside one range can not be cached.
func (m *MultiMem) ReadCacheLine(start uint16) []uint8 {
	if r := m.lineRange(start); r != nil {
		return r.Device.ReadCacheLine(bus.LineStart(start))
	}
	return nil
}

// WriteCacheLine implements the bus.Device interface. Cache lines that are
// not entirely inside one range can not be cached.
func (m *MultiMem) WriteCacheLine(start uint16) []uint8 {
	if r := m.lineRange(start); r != nil {
		return r.Device.WriteCacheLine(bus.LineStart(start))
	}
	return nil
}
