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

// Package sound generates audio at the host output rate. Sound devices are
// catch-up components: samples are generated lazily when a register changes or
// when the Mixer asks for them, and every sample is produced by the register
// values that were current at the time of that sample.
//
// The Mixer is a Schedulable that sets a sync point every AudioBufferLength
// samples. At each sync point it synchronises every Source, mixes the samples
// and hands the buffer to every AudioMixer. Output to real audio devices
// happens on other goroutines, through the Handoff type.
package sound
