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

package assert

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
)

// Fail panics with the error if assertions are enabled. Otherwise the error is
// returned unchanged for the caller to deal with.
func Fail(err error) error {
	if Enabled {
		panic(err)
	}
	return err
}

// GetGoRoutineID returns an identify for a goroutine. it returns a result that
// is (a) different between goroutines and (b) consistent for a given
// goroutine. It is undoubtedly useful for but it should only ever be used for
// debugging or testing purposes.
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// Goroutine records the first goroutine to call Check(). Subsequent calls to
// Check() from a different goroutine will panic if assertions are enabled.
//
// The zero value is ready to use.
type Goroutine struct {
	id uint64
}

// Check that the current goroutine is the same as the goroutine that first
// called Check(). Does nothing if assertions are not enabled.
func (g *Goroutine) Check(label string) {
	if !Enabled {
		return
	}
	id := GetGoRoutineID()
	if g.id == 0 {
		g.id = id
		return
	}
	if g.id != id {
		panic(fmt.Sprintf("%s: used from goroutine %d but owned by goroutine %d", label, id, g.id))
	}
}

// Reset forgets the goroutine recorded by Check().
func (g *Goroutine) Reset() {
	g.id = 0
}
