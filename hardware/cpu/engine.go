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
	"github.com/jetsetilly/gophermsx/hardware/clocks"
)

// Bus is the view of memory used by an Engine. The memory.Memory type
// implements this interface.
type Bus interface {
	Read(address uint16, time clocks.Time) (uint8, error)
	Write(address uint16, data uint8, time clocks.Time) error
}

// Engine executes CPU work.
type Engine interface {
	// Execute runs the engine from now until the limit. Bus accesses happen
	// at times earlier than the limit. The returned time is the time the
	// engine reached and is never later than the limit.
	Execute(bus Bus, now clocks.Time, limit clocks.Time) (clocks.Time, error)

	// Reset the engine. Execution starts at the specified time.
	Reset(time clocks.Time)

	// Snapshot returns a copy of the engine.
	Snapshot() Engine
}

// Idle is an Engine that does nothing.
type Idle struct{}

// Execute implements the Engine interface.
func (Idle) Execute(_ Bus, _ clocks.Time, limit clocks.Time) (clocks.Time, error) {
	return limit, nil
}

// Reset implements the Engine interface.
func (Idle) Reset(_ clocks.Time) {
}

// Snapshot implements the Engine interface.
func (Idle) Snapshot() Engine {
	return Idle{}
}
