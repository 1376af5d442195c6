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

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jetsetilly/gophermsx/curated"
)

// ScriptError is the pattern for errors returned by ParseScript().
const ScriptError = "script: line %d: %v"

// ParseScript reads a list of accesses, one per line, in the form:
//
//	<cycle> R <address>
//	<cycle> W <address> <data>
//
// Numbers can be decimal or prefixed with 0x for hexadecimal. Blank lines and
// anything following a # are ignored. Accesses must be in cycle order.
func ParseScript(r io.Reader) (*Script, error) {
	var accesses []Access

	scanner := bufio.NewScanner(r)
	var line int
	for scanner.Scan() {
		line++

		s, _, _ := strings.Cut(scanner.Text(), "#")
		f := strings.Fields(s)
		if len(f) == 0 {
			continue
		}

		a, err := parseAccess(f)
		if err != nil {
			return nil, curated.Errorf(ScriptError, line, err)
		}
		if len(accesses) > 0 && a.Cycle < accesses[len(accesses)-1].Cycle {
			return nil, curated.Errorf(ScriptError, line, "cycle out of order")
		}
		accesses = append(accesses, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf(ScriptError, line, err)
	}

	return NewScript(accesses), nil
}

func parseAccess(f []string) (Access, error) {
	var a Access

	if len(f) < 3 {
		return a, fmt.Errorf("too few fields")
	}

	cycle, err := strconv.ParseUint(f[0], 0, 64)
	if err != nil {
		return a, err
	}
	a.Cycle = cycle

	address, err := strconv.ParseUint(f[2], 0, 16)
	if err != nil {
		return a, err
	}
	a.Address = uint16(address)

	switch strings.ToUpper(f[1]) {
	case "R":
		if len(f) != 3 {
			return a, fmt.Errorf("too many fields for read")
		}
	case "W":
		if len(f) != 4 {
			return a, fmt.Errorf("write requires a data value")
		}
		data, err := strconv.ParseUint(f[3], 0, 8)
		if err != nil {
			return a, err
		}
		a.Write = true
		a.Data = uint8(data)
	default:
		return a, fmt.Errorf("unknown access type (%s)", f[1])
	}

	return a, nil
}
