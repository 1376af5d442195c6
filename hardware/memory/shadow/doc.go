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

// Package shadow implements a boot ROM that overlays RAM for a short time
// after the machine is reset. Writes always go to the RAM. Reads come from the
// boot ROM while the overlay is active and from the RAM afterwards.
//
// The overlay is switched off by a sync point, so the change of ownership of
// the address space is driven by virtual time rather than by an access. The
// memory cache is invalidated when the overlay is switched off.
package shadow
