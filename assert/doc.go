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

// Package assert contains consistency checks that are only active when the
// program is built with the "assertions" build tag. In normal builds the checks
// cost nothing and failures are reported as ordinary errors by the caller.
package assert
