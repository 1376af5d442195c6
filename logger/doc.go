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

// Package logger is the central log for the emulation. It is intended to
// capture events of note that would otherwise be lost, for example, a
// component that still had sync points pending when the scheduler was torn
// down, or an audio buffer that could not be handed to the output device in
// time.
//
// Log entries are made with Log() and Logf(). Both require a Permission
// argument. The environment.Environment type implements Permission so that
// only the main emulation creates entries. logger.Allow can be used where
// logging should always happen.
//
// Consecutive identical entries are collapsed into a single entry with a
// repeat count.
package logger
