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

package video

import (
	"github.com/jetsetilly/gophermsx/hardware/clocks"
)

// Ports is the I/O interface to the video processor. It occupies two
// addresses.
//
//	base+0	write selects a register. read returns the selected register
//	base+1	write sets the selected register. read returns and clears status
type Ports struct {
	v    *Video
	base uint16
}

// Ports returns a bus.Device for the register interface of the video
// processor, mapped at the specified base address.
func (v *Video) Ports(base uint16) *Ports {
	return &Ports{v: v, base: base}
}

// Label implements the bus.Device interface.
func (p *Ports) Label() string {
	return "vdp ports"
}

// Read implements the bus.Device interface.
func (p *Ports) Read(address uint16, time clocks.Time) (uint8, error) {
	if (address-p.base)&0x01 == 0 {
		return p.v.state.selected, nil
	}
	return p.v.ReadStatus(time)
}

// Write implements the bus.Device interface.
func (p *Ports) Write(address uint16, data uint8, time clocks.Time) error {
	if (address-p.base)&0x01 == 0 {
		p.v.state.selected = data & registerSelect
		return nil
	}
	return p.v.WriteRegister(p.v.state.selected, data, time)
}

// Peek implements the bus.Device interface.
func (p *Ports) Peek(address uint16, _ clocks.Time) (uint8, error) {
	if (address-p.base)&0x01 == 0 {
		return p.v.state.selected, nil
	}
	return p.v.state.status, nil
}

// ReadCacheLine implements the bus.Device interface. Reads have side effects
// and are never cached.
func (p *Ports) ReadCacheLine(_ uint16) []uint8 {
	return nil
}

// WriteCacheLine implements the bus.Device interface.
func (p *Ports) WriteCacheLine(_ uint16) []uint8 {
	return nil
}

// SyncTo implements the bus.Syncer interface.
func (p *Ports) SyncTo(time clocks.Time) error {
	return p.v.SyncTo(time)
}

// VRAMWindow maps video RAM into an address space. Addresses beyond the size
// of video RAM wrap.
type VRAMWindow struct {
	v    *Video
	base uint16
}

// VRAMWindow returns a bus.Device for video RAM, mapped at the specified base
// address.
func (v *Video) VRAMWindow(base uint16) *VRAMWindow {
	return &VRAMWindow{v: v, base: base}
}

// Label implements the bus.Device interface.
func (w *VRAMWindow) Label() string {
	return "vram"
}

// Read implements the bus.Device interface.
func (w *VRAMWindow) Read(address uint16, _ clocks.Time) (uint8, error) {
	return w.v.ReadVRAM(address - w.base), nil
}

// Write implements the bus.Device interface.
func (w *VRAMWindow) Write(address uint16, data uint8, time clocks.Time) error {
	return w.v.WriteVRAM(address-w.base, data, time)
}

// Peek implements the bus.Device interface.
func (w *VRAMWindow) Peek(address uint16, _ clocks.Time) (uint8, error) {
	return w.v.ReadVRAM(address - w.base), nil
}

// ReadCacheLine implements the bus.Device interface. Reads could be cached
// but writes must go through WriteVRAM, so neither is.
func (w *VRAMWindow) ReadCacheLine(_ uint16) []uint8 {
	return nil
}

// WriteCacheLine implements the bus.Device interface.
func (w *VRAMWindow) WriteCacheLine(_ uint16) []uint8 {
	return nil
}

// SyncTo implements the bus.Syncer interface.
func (w *VRAMWindow) SyncTo(time clocks.Time) error {
	return w.v.SyncTo(time)
}
