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

package environment_test

import (
	"testing"

	"github.com/jetsetilly/gophermsx/environment"
	"github.com/jetsetilly/gophermsx/logger"
	"github.com/jetsetilly/gophermsx/test"
)

func TestPermission(t *testing.T) {
	test.ExpectImplements[logger.Permission](t, &environment.Environment{})

	main := &environment.Environment{Label: environment.MainEmulation}
	test.ExpectSuccess(t, main.IsMainEmulation())
	test.ExpectSuccess(t, main.AllowLogging())

	other := &environment.Environment{Label: "digest"}
	test.ExpectFailure(t, other.IsMainEmulation())
	test.ExpectSuccess(t, other.IsEmulation("digest"))
	test.ExpectFailure(t, other.AllowLogging())

	var none *environment.Environment
	test.ExpectSuccess(t, none.AllowLogging())
}
