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

package rewind

import (
	"github.com/jetsetilly/gophermsx/curated"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
)

// Timeline provides a summary of the frames seen by the rewind system.
//
// Useful for GUIs for example, to present the range of frame numbers that are
// available in the rewind history.
type Timeline struct {
	FrameNum  []int
	FrameTime []clocks.Time

	// the earliest and latest frames that are available in the rewind
	// history. the Timeline arrays can extend beyond these values
	AvailableStart int
	AvailableEnd   int
}

const timelineLength = 1000

func newTimeline() Timeline {
	return Timeline{
		FrameNum:  make([]int, 0),
		FrameTime: make([]clocks.Time, 0),
	}
}

func (tl *Timeline) add(frameNum int, time clocks.Time) {
	// frames seen again after a rewind replace the existing timeline from that
	// point onwards
	tl.splice(frameNum)

	tl.FrameNum = append(tl.FrameNum, frameNum)
	tl.FrameTime = append(tl.FrameTime, time)
	if len(tl.FrameNum) > timelineLength {
		tl.FrameNum = tl.FrameNum[1:]
		tl.FrameTime = tl.FrameTime[1:]
	}
}

func (tl *Timeline) splice(frameNum int) {
	for i := range tl.FrameNum {
		if frameNum <= tl.FrameNum[i] {
			tl.FrameNum = tl.FrameNum[:i]
			tl.FrameTime = tl.FrameTime[:i]
			break // for loop
		}
	}
}

func (tl *Timeline) checkIntegrity() error {
	if len(tl.FrameNum) != len(tl.FrameTime) {
		return curated.Errorf("rewind: timeline arrays are different lengths")
	}

	for i := 1; i < len(tl.FrameNum); i++ {
		if tl.FrameNum[i] != tl.FrameNum[i-1]+1 {
			return curated.Errorf("rewind: frame numbers in timeline are not consecutive")
		}
		if !tl.FrameTime[i].After(tl.FrameTime[i-1]) {
			return curated.Errorf("rewind: frame times in timeline are not increasing")
		}
	}

	return nil
}

// GetTimeline returns a copy of the timeline.
func (r *Rewind) GetTimeline() (Timeline, error) {
	if err := r.timeline.checkIntegrity(); err != nil {
		return Timeline{}, err
	}

	tl := Timeline{
		FrameNum:  append([]int(nil), r.timeline.FrameNum...),
		FrameTime: append([]clocks.Time(nil), r.timeline.FrameTime...),
	}

	f := r.GetFrames()
	tl.AvailableStart = f.Start
	tl.AvailableEnd = f.End

	return tl, nil
}
