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

import (
	"fmt"

	"github.com/jetsetilly/gophermsx/hardware/clocks"
)

// Width of a line in pixels.
const Width = 256

// number of bytes of video RAM per line
const rowBytes = Width / 4

// VRAMSize is the number of bytes of video RAM.
const VRAMSize = 0x4000

// Timing describes the shape of a video frame.
type Timing struct {
	Name string

	// the duration of one line
	LineTicks clocks.Duration

	// total number of lines in a frame
	Lines int

	// number of lines at the start of the frame that are rendered
	VisibleLines int
}

func (t Timing) String() string {
	return fmt.Sprintf("%s (%d lines)", t.Name, t.Lines)
}

// FrameTicks returns the duration of one frame.
func (t Timing) FrameTicks() clocks.Duration {
	return t.LineTicks * clocks.Duration(t.Lines)
}

// RefreshRate returns the number of frames per second.
func (t Timing) RefreshRate() float64 {
	return float64(clocks.MainFreq) / float64(t.FrameTicks())
}

// one line is 1368 cycles of the video clock
var lineTicks = clocks.DurationOf(1368, clocks.VideoFreq)

// The video standards.
var (
	NTSC = Timing{
		Name:         "NTSC",
		LineTicks:    lineTicks,
		Lines:        262,
		VisibleLines: 192,
	}

	PAL = Timing{
		Name:         "PAL",
		LineTicks:    lineTicks,
		Lines:        313,
		VisibleLines: 192,
	}
)
