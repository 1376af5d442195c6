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
	"fmt"
	"strings"

	"github.com/jetsetilly/gophermsx/hardware/clocks"
)

// Access is a single bus access in a Script.
type Access struct {
	// the CPU cycle of the access, counted from when the script was reset
	Cycle uint64

	Write   bool
	Address uint16
	Data    uint8
}

func (a Access) String() string {
	if a.Write {
		return fmt.Sprintf("%d: write %#04x <- %#02x", a.Cycle, a.Address, a.Data)
	}
	return fmt.Sprintf("%d: read %#04x", a.Cycle, a.Address)
}

// Result records the outcome of an Access.
type Result struct {
	Access
	Time clocks.Time

	// value read from the bus. the same as the Access.Data for writes
	Value uint8
}

func (r Result) String() string {
	return fmt.Sprintf("%v = %#02x @ %v", r.Access, r.Value, r.Time)
}

// Script is an Engine that replays a list of bus accesses. The accesses must be
// in cycle order.
type Script struct {
	accesses []Access
	clock    clocks.Clock
	next     int

	// the outcome of every access made so far
	Results []Result
}

// NewScript is the preferred method of initialisation for the Script type.
func NewScript(accesses []Access) *Script {
	s := &Script{
		accesses: accesses,
		clock:    clocks.NewClock(clocks.CPUFreq),
	}
	return s
}

func (s *Script) String() string {
	b := strings.Builder{}
	for _, r := range s.Results {
		b.WriteString(r.String())
		b.WriteString("\n")
	}
	return b.String()
}

// Done returns true if every access has been made.
func (s *Script) Done() bool {
	return s.next >= len(s.accesses)
}

// Reset implements the Engine interface.
func (s *Script) Reset(time clocks.Time) {
	s.clock.Reset(time)
	s.next = 0
	s.Results = s.Results[:0]
}

// Execute implements the Engine interface.
func (s *Script) Execute(bus Bus, now clocks.Time, limit clocks.Time) (clocks.Time, error) {
	// a late access would otherwise be made at the limit
	if !now.Before(limit) {
		return now, nil
	}

	for ; s.next < len(s.accesses); s.next++ {
		a := s.accesses[s.next]

		t := s.clock.TimeOf(a.Cycle)
		if !t.Before(limit) {
			break
		}

		// an access that is late happens as soon as possible
		if t.Before(now) {
			t = now
		}

		r := Result{Access: a, Time: t, Value: a.Data}
		if a.Write {
			if err := bus.Write(a.Address, a.Data, t); err != nil {
				return t, err
			}
		} else {
			v, err := bus.Read(a.Address, t)
			if err != nil {
				return t, err
			}
			r.Value = v
		}
		s.Results = append(s.Results, r)
	}

	return limit, nil
}

// Snapshot implements the Engine interface.
func (s *Script) Snapshot() Engine {
	n := *s
	n.Results = make([]Result, len(s.Results))
	copy(n.Results, s.Results)
	return &n
}
