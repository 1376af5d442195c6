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

// Package cpu defines the interface between the machine and a CPU execution
// engine. Instruction decoding is not part of this package. An engine is
// asked to run from the current time up to, but not including, a limit. The
// limit is never later than the next pending sync point so the engine never
// runs past an event that could change what it sees on the bus.
//
// Two engines are provided. Idle does nothing and lets time pass. Script
// replays a list of bus accesses at fixed CPU cycles and is used for testing
// and for driving the hardware without a real CPU.
package cpu
