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

// Package memory is the bus dispatcher. It sits between the CPU and the
// devices mapped into the address space.
//
//	                            Memory
//	                              |
//	    CPU ---- Read/Write ----> * ---- cache line hit ----> []uint8
//	                              |
//	                              \---- miss ----> MultiMem ----> Device
//	                                                   |
//	                                                   \-- SyncTo() first
//
// The address space is divided into cache lines (see the bus package). The
// first access to a cache line asks the MultiMem for a slice that can be used
// to access the line directly. If the device responsible for the line provides
// one then subsequent accesses to the line go directly to the slice without
// resolving the device. Devices that can't be accessed directly (because they
// have side effects or because they need to be synchronised with the current
// time) do not provide a slice and every access is resolved by the MultiMem.
//
// Cache entries are stamped with a version number. Calling InvalidateCache()
// increments the current version, which invalidates every entry at once. This
// is a coarse invalidation but it is simple and invalidation is rare compared
// to access. Adding or removing a device invalidates the cache, as does any
// device whose cache lines change as a result of its own internal state
// changing.
package memory
