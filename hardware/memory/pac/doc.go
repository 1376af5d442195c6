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

// Package pac implements the PAC cartridge. The cartridge contains 8k of
// battery backed SRAM. The SRAM is only visible when the two registers at the
// top of the SRAM area contain the enable sequence.
//
// Enabling or disabling the SRAM changes what the cartridge returns for every
// address so the memory cache is invalidated when it happens.
//
// The contents of the SRAM can be persisted to a file. The file begins with
// the header "PAC2 BACKUP DATA" and is followed by the SRAM data.
package pac
