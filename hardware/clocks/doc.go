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

// Package clocks defines virtual time for the emulation. Virtual time is
// measured in ticks of a fixed rate master clock, MainFreq. The frequency has
// been chosen so that the periods of all the common clocks in the machine
// (CPU, video, sound) are whole or exactly representable rational numbers of
// ticks, meaning that there is no rounding error accumulation over millions of
// events.
//
// Values of type Time are immutable and can be compared with the == operator.
// The only source of the "current" time is the scheduler; Time values are
// otherwise just data.
//
// The Clock type counts whole periods of a clock running at a rational
// frequency. The time of each period is calculated from the period count and
// the clock origin, never by accumulating period lengths, so the clock never
// drifts.
package clocks
