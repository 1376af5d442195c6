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

package hardware

import (
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/cpu"
)

// The address map.
const (
	RAMBase      = 0x0000
	MaxRAMSize   = 0x4000
	CartBase     = 0x4000
	CartSize     = 0x4000
	VRAMBase     = 0x8000
	VideoPorts   = 0xff98
	TonePorts    = 0xffa0
	CassettePort = 0xffaa
)

// MaxTones is the maximum number of tone generators in a machine.
const MaxTones = 2

// Layout describes the devices in a Machine.
type Layout struct {
	// size of RAM. must not be more than MaxRAMSize. a size of zero means
	// MaxRAMSize
	RAMSize int

	// the boot ROM is overlaid over RAM until BootDelay has passed. nil for no
	// boot ROM
	Boot      []uint8
	BootDelay clocks.Duration

	// the cartridge ROM. ignored if PAC is true
	ROM []uint8

	// a PAC cartridge with SRAM persisted to PACFile. the file can be empty
	PAC     bool
	PACFile string

	// number of tone generators
	Tones int

	// the tape to insert into the cassette player. can be empty
	Tape string

	// the CPU engine. nil means cpu.Idle
	Engine cpu.Engine
}

// DefaultLayout returns a layout with full RAM, one tone generator and no
// cartridge.
func DefaultLayout() Layout {
	return Layout{
		RAMSize: MaxRAMSize,
		Tones:   1,
	}
}
