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

package ram_test

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gophermsx/environment"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/memory"
	"github.com/jetsetilly/gophermsx/hardware/memory/bus"
	"github.com/jetsetilly/gophermsx/hardware/memory/ram"
	"github.com/jetsetilly/gophermsx/hardware/preferences"
	"github.com/jetsetilly/gophermsx/test"
)

func newEnv(t *testing.T) *environment.Environment {
	t.Helper()
	p, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment(environment.MainEmulation, p)
	test.DemandSuccess(t, err)
	env.Normalise()
	return env
}

func TestRAM(t *testing.T) {
	env := newEnv(t)
	mem := memory.NewMemory("test")
	r := ram.NewRAM(env, "ram", 0xc000, 0x4000)
	r.Reset(clocks.Zero)
	test.ExpectSuccess(t, mem.Add(r, 0xc000, 0x4000))

	test.ExpectSuccess(t, mem.Write(0xc123, 0x42, clocks.Zero))
	v, err := mem.Read(0xc123, clocks.Zero)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x42))
	test.ExpectEquality(t, r.Data[0x123], uint8(0x42))

	// out of range access is an error when the device is accessed directly
	_, err = r.Read(0x0000, clocks.Zero)
	test.ExpectFailure(t, err)
}

func TestROM(t *testing.T) {
	env := newEnv(t)
	mem := memory.NewMemory("test")
	data := make([]uint8, 0x8000)
	data[0x10] = 0x99
	r := ram.NewROM(env, "rom", 0x0000, data)
	test.ExpectSuccess(t, mem.Add(r, 0x0000, 0x8000))

	// writes are ignored, whether they go through the cache or not
	test.ExpectSuccess(t, mem.Write(0x0010, 0x01, clocks.Zero))
	test.ExpectSuccess(t, r.Write(0x0010, 0x02, clocks.Zero))
	v, _ := mem.Read(0x0010, clocks.Zero)
	test.ExpectEquality(t, v, uint8(0x99))

	// the data is copied
	data[0x10] = 0x00
	v, _ = mem.Read(0x0010, clocks.Zero)
	test.ExpectEquality(t, v, uint8(0x99))

	// ROM is not affected by reset
	r.Reset(clocks.Zero)
	v, _ = mem.Read(0x0010, clocks.Zero)
	test.ExpectEquality(t, v, uint8(0x99))
}

func TestRandomState(t *testing.T) {
	env := newEnv(t)
	test.ExpectSuccess(t, env.Prefs.RandomState.Set(true))

	a := ram.NewRAM(env, "a", 0xc000, 0x100)
	b := ram.NewRAM(env, "b", 0xc000, 0x100)
	a.Reset(clocks.Zero)
	b.Reset(clocks.Zero)

	// the random contents are the same for the same virtual time
	test.ExpectEquality(t, a.String(), b.String())

	zero := make([]uint8, 0x100)
	test.ExpectInequality(t, string(a.Data), string(zero))
}

func TestSnapshot(t *testing.T) {
	env := newEnv(t)
	r := ram.NewRAM(env, "ram", 0xc000, 0x100)
	r.Reset(clocks.Zero)
	line := r.ReadCacheLine(0xc000)
	test.ExpectEquality(t, len(line), bus.CacheLineSize)

	test.ExpectSuccess(t, r.Write(0xc000, 0x01, clocks.Zero))
	s := r.Snapshot()
	test.ExpectSuccess(t, r.Write(0xc000, 0x02, clocks.Zero))
	test.ExpectEquality(t, line[0], uint8(0x02))

	// restored contents are visible through previously handed out cache lines
	r.Plumb(s)
	test.ExpectEquality(t, line[0], uint8(0x01))
}
