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

package govern_test

import (
	"testing"

	"github.com/jetsetilly/gophermsx/govern"
	"github.com/jetsetilly/gophermsx/test"
)

func TestState(t *testing.T) {
	test.ExpectEquality(t, govern.Running.String(), "Running")
	test.ExpectSuccess(t, govern.Running.Continue())
	test.ExpectSuccess(t, govern.Paused.Continue())
	test.ExpectFailure(t, govern.Ending.Continue())
	test.ExpectFailure(t, govern.Initialising.Continue())
}
