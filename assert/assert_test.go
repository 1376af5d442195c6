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

package assert_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/gophermsx/assert"
	"github.com/jetsetilly/gophermsx/test"
)

func TestGoRoutineID(t *testing.T) {
	id := assert.GetGoRoutineID()
	test.ExpectInequality(t, id, uint64(0))
	test.ExpectEquality(t, assert.GetGoRoutineID(), id)

	ch := make(chan uint64)
	go func() {
		ch <- assert.GetGoRoutineID()
	}()
	test.ExpectInequality(t, <-ch, id)
}

func TestFail(t *testing.T) {
	if assert.Enabled {
		t.Skip("assertions enabled")
	}

	err := errors.New("test")
	test.ExpectEquality(t, assert.Fail(err), err)

	// checking from different goroutines is harmless without assertions
	var g assert.Goroutine
	g.Check("test")
	done := make(chan bool)
	go func() {
		g.Check("test")
		done <- true
	}()
	<-done
}
