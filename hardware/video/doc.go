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

// Package video implements a line based video display processor. The
// processor renders one line of pixels at a time from video RAM according to
// the current value of its registers.
//
// Rendering is lazy. Lines are only rendered when something needs them to be
// rendered: a write to a register or to video RAM, the end of a frame, or a
// request for the current frame. When rendering is required, every line that
// has been completed since the last rendering is rendered. A line that is only
// partially complete at the time of rendering is never rendered; it will be
// rendered next time.
//
// This means that a change to a register or video RAM is always applied after
// all the lines that were completed before the change and before all the lines
// that will be completed after the change. The result is the same as if every
// line were rendered the moment it was completed. The LineSync preference
// causes a sync point to be set at the end of every line, which forces exactly
// that behaviour. It is useful for verifying that the results are identical.
//
// The processor is accessed through two bus devices. The Ports device has a
// register select port and a register data/status port. The VRAMWindow device
// maps video RAM directly into the address space.
//
// Registers:
//
//	0  bit 4: line interrupt enable
//	1  bit 6: display enable. bit 5: frame interrupt enable
//	7  backdrop colour (low nibble)
//	8  colour of pixel value 1
//	9  colour of pixel value 2
//	10 colour of pixel value 3
//	19 line interrupt line
//	23 vertical scroll
//
// Pixels are two bits each, four to a byte, most significant bits first. Each
// row of video RAM is 64 bytes. Pixel value zero shows the backdrop colour.
package video
