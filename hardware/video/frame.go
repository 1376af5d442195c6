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

package video

import "github.com/jetsetilly/gophermsx/hardware/clocks"

// Frame is a completed frame. The Pixels slice is a copy and will not be
// changed after the Frame has been sent, so it is safe to hand the Frame to
// another goroutine.
type Frame struct {
	Number int
	Time   clocks.Time
	Width  int
	Height int

	// one palette index per pixel, row by row
	Pixels []uint8
}

// RGB returns the colour of the pixel at x, y.
func (f Frame) RGB(x, y int) (uint8, uint8, uint8) {
	c := Palette[f.Pixels[y*f.Width+x]&0x0f]
	return c[0], c[1], c[2]
}

// FrameTrigger implementations listen for completed frames. For example
// digest.Video.
type FrameTrigger interface {
	NewFrame(frame Frame) error
}

// Palette is the RGB value of each of the sixteen colours.
var Palette = [16][3]uint8{
	{0, 0, 0},
	{0, 0, 0},
	{33, 200, 66},
	{94, 220, 120},
	{84, 85, 237},
	{125, 118, 252},
	{212, 82, 77},
	{66, 235, 245},
	{252, 85, 84},
	{255, 121, 120},
	{212, 193, 84},
	{230, 206, 128},
	{33, 176, 59},
	{201, 91, 186},
	{204, 204, 204},
	{255, 255, 255},
}
