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

// Package multimem maps regions of the address space to devices. Regions
// are searched in reverse order of being added so that the most recently added
// region takes precedence, although in practice regions are not allowed to
// overlap. Addresses not covered by any region resolve to bus.Unmapped.
//
// MultiMem itself implements the bus.Device interface. Every access is
// resolved to a device and, if the device implements bus.Syncer, the device is
// synchronised to the time of the access before the device's accessor is
// called.
package multimem
