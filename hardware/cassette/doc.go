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

// Package cassette emulates a cassette player and recorder. A tape image is a
// WAV or MP3 recording which is decoded to mono PCM when it is loaded.
//
// The player is in one of three modes. In Play mode the tape is read, in
// Record mode the cassette-out signal is sampled and sent to a recorder such
// as a wavwriter.WavWriter, and in Stop mode nothing happens. The tape rolls
// when the mode is not Stop and the motor bit is set. Motor control can be
// turned off, in which case the tape rolls regardless of the motor bit.
//
// The player is a catch-up component. The tape position and the recording are
// only brought up to date when the register is read or written, when the mode
// changes or when the sound mixer collects samples. While the tape is rolling
// there is a periodic sync point which keeps the amount of work done in any
// one catch-up small. In Play mode there is also a sync point at the end of
// the tape which puts the player into Stop mode.
//
// The single register of the player:
//
//	bit 0	motor (read/write)
//	bit 1	cassette-out signal (read/write)
//	bit 7	tape input level (read only)
package cassette
