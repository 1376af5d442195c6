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

// Package hardware is the base package for the emulated machine. The Machine
// type brings together the scheduler, the bus and every device, and drives a
// CPU engine between sync points.
//
// The run loop asks the engine to execute up to the next pending sync point,
// then advances the scheduler to the time the engine reached. Devices are only
// brought up to date when the engine touches them through the bus, or when
// one of their own sync points is dispatched.
//
// The address map of the machine:
//
//	0x0000 - 0x3fff	RAM, with the optional boot ROM overlay
//	0x4000 - 0x7fff	cartridge slot (ROM or PAC)
//	0x8000 - 0xbfff	video RAM window
//	0xff98 - 0xff99	video ports
//	0xffa0 - 0xffa7	tone generators
//	0xffaa          cassette player
package hardware
