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

package pac

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/jetsetilly/gophermsx/curated"
	"github.com/jetsetilly/gophermsx/environment"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/memory/bus"
	"github.com/jetsetilly/gophermsx/logger"
)

// Header is written to the beginning of the SRAM file.
const Header = "PAC2 BACKUP DATA"

// SRAMSize is the number of bytes of SRAM in the cartridge.
const SRAMSize = 0x1ffe

// Size is the size of the address space occupied by the cartridge.
const Size = 0x4000

// the registers and the values they must hold for the SRAM to be enabled
const (
	reg1ffe    = 0x1ffe
	reg1fff    = 0x1fff
	enable1ffe = 0x4d
	enable1fff = 0x69
)

// Sentinal error patterns.
const (
	BadSRAMFile = "pac: bad sram file: %s: %v"
)

// PAC implements the bus.Device interface for the PAC cartridge.
type PAC struct {
	env *environment.Environment
	inv bus.Invalidator

	// the file the sram is persisted to. may be empty
	filename string

	state state
}

type state struct {
	sram    [SRAMSize]uint8
	r1ffe   uint8
	r1fff   uint8
	enabled bool
	dirty   bool
}

// NewPAC is the preferred method of initialisation for the PAC type. The
// filename can be empty, in which case the SRAM is not persisted. If the file
// exists the SRAM is loaded from it.
func NewPAC(env *environment.Environment, inv bus.Invalidator, filename string) (*PAC, error) {
	pac := &PAC{
		env:      env,
		inv:      inv,
		filename: filename,
	}
	pac.Reset(clocks.Zero)

	if filename != "" {
		if err := pac.load(); err != nil {
			return nil, err
		}
	}

	return pac, nil
}

func (pac *PAC) load() error {
	f, err := os.Open(pac.filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return curated.Errorf(BadSRAMFile, pac.filename, err)
	}
	defer f.Close()

	hdr := make([]uint8, len(Header))
	if _, err := io.ReadFull(f, hdr); err != nil {
		return curated.Errorf(BadSRAMFile, pac.filename, err)
	}
	if !bytes.Equal(hdr, []uint8(Header)) {
		return curated.Errorf(BadSRAMFile, pac.filename, "missing header")
	}

	// a short file is not an error. the remainder of the sram is zero
	n, err := io.ReadFull(f, pac.state.sram[:])
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return curated.Errorf(BadSRAMFile, pac.filename, err)
	}
	if n < SRAMSize {
		logger.Logf(pac.env, "pac", "sram file is short (%d bytes)", n)
	}

	return nil
}

// Close implements the bus.Closer interface. The SRAM is saved if it has
// changed.
func (pac *PAC) Close() error {
	if pac.filename == "" || !pac.state.dirty {
		return nil
	}

	f, err := os.Create(pac.filename)
	if err != nil {
		return curated.Errorf("pac: %v", err)
	}

	if _, err := f.Write([]uint8(Header)); err != nil {
		_ = f.Close()
		return curated.Errorf("pac: %v", err)
	}
	if _, err := f.Write(pac.state.sram[:]); err != nil {
		_ = f.Close()
		return curated.Errorf("pac: %v", err)
	}

	pac.state.dirty = false
	logger.Logf(pac.env, "pac", "sram saved to %s", pac.filename)

	return f.Close()
}

// Reset implements the bus.Resetter interface. The SRAM is disabled but its
// contents are preserved.
func (pac *PAC) Reset(_ clocks.Time) {
	pac.state.r1ffe = 0xff
	pac.state.r1fff = 0xff
	pac.checkEnable()
}

// Snapshot returns a copy of the current state of the cartridge.
func (pac *PAC) Snapshot() *PAC {
	n := *pac
	return &n
}

// Plumb restores the state of the cartridge from a snapshot.
func (pac *PAC) Plumb(snapshot *PAC) {
	dirty := pac.state.dirty || snapshot.state.sram != pac.state.sram
	pac.state = snapshot.state
	pac.state.dirty = dirty
	pac.inv.InvalidateCache(0x0000, bus.AddressSpace)
}

// Enabled returns true if the SRAM is visible.
func (pac *PAC) Enabled() bool {
	return pac.state.enabled
}

func (pac *PAC) String() string {
	return fmt.Sprintf("pac: enabled=%v 1ffe=%#02x 1fff=%#02x", pac.state.enabled, pac.state.r1ffe, pac.state.r1fff)
}

func (pac *PAC) checkEnable() {
	enabled := pac.state.r1ffe == enable1ffe && pac.state.r1fff == enable1fff
	if enabled != pac.state.enabled {
		pac.state.enabled = enabled
		pac.inv.InvalidateCache(0x0000, bus.AddressSpace)
	}
}

// Label implements the bus.Device interface.
func (pac *PAC) Label() string {
	return "PAC"
}

// Read implements the bus.Device interface.
func (pac *PAC) Read(address uint16, _ clocks.Time) (uint8, error) {
	if !pac.state.enabled {
		return bus.UnmappedValue, nil
	}
	address &= Size - 1
	switch {
	case address < SRAMSize:
		return pac.state.sram[address], nil
	case address == reg1ffe:
		return pac.state.r1ffe, nil
	case address == reg1fff:
		return pac.state.r1fff, nil
	}
	return bus.UnmappedValue, nil
}

// Write implements the bus.Device interface.
func (pac *PAC) Write(address uint16, data uint8, _ clocks.Time) error {
	address &= Size - 1
	switch address {
	case reg1ffe:
		pac.state.r1ffe = data
		pac.checkEnable()
	case reg1fff:
		pac.state.r1fff = data
		pac.checkEnable()
	default:
		if pac.state.enabled && address < SRAMSize {
			if pac.state.sram[address] != data {
				pac.state.sram[address] = data
				pac.state.dirty = true
			}
		}
	}
	return nil
}

// Peek implements the bus.Device interface.
func (pac *PAC) Peek(address uint16, t clocks.Time) (uint8, error) {
	return pac.Read(address, t)
}

// the cache line containing the registers
const registerLine = reg1ffe &^ bus.CacheLineMask

// ReadCacheLine implements the bus.Device interface.
func (pac *PAC) ReadCacheLine(start uint16) []uint8 {
	if !pac.state.enabled {
		return bus.UnmappedReadLine()
	}
	start &= Size - 1
	switch {
	case start < registerLine:
		return pac.state.sram[start : start+bus.CacheLineSize]
	case start == registerLine:
		return nil
	}
	return bus.UnmappedReadLine()
}

// WriteCacheLine implements the bus.Device interface. Writes to the SRAM are
// never cached so that changes to the SRAM can be detected.
func (pac *PAC) WriteCacheLine(start uint16) []uint8 {
	start &= Size - 1
	if start == registerLine {
		return nil
	}
	if pac.state.enabled && start < SRAMSize {
		return nil
	}
	return bus.UnmappedWriteLine()
}
