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

// Package reflection presents the internal state of the emulated machine in
// forms that are useful when debugging the emulation itself.
package reflection

import (
	"fmt"
	"io"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/gophermsx/hardware"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/video"
)

// Memviz writes a graphviz description of a snapshot of the machine. The
// output can be rendered with the dot tool.
func Memviz(output io.Writer, m *hardware.Machine) {
	memviz.Map(output, m.Snapshot())
}

// FrameInfo summarises the state of the machine at the end of a frame.
type FrameInfo struct {
	Frame int

	// the number of sync points pending at the end of the frame
	Pending int

	// how far ahead of the end of the frame the next sync point is. the
	// value is "none" if nothing is pending
	NextSyncPoint string
}

func (fi FrameInfo) String() string {
	return fmt.Sprintf("frame %d: %d pending, next in %s", fi.Frame, fi.Pending, fi.NextSyncPoint)
}

// Reflector collects a FrameInfo for every frame. It implements the
// video.FrameTrigger interface.
type Reflector struct {
	m      *hardware.Machine
	limit  int
	frames []FrameInfo
}

// NewReflector is the preferred method of initialisation for the Reflector
// type. No more than limit entries are kept.
func NewReflector(m *hardware.Machine, limit int) *Reflector {
	ref := &Reflector{
		m:     m,
		limit: limit,
	}
	m.Video.AddFrameTrigger(ref)
	return ref
}

// NewFrame implements the video.FrameTrigger interface.
func (ref *Reflector) NewFrame(frame video.Frame) error {
	fi := FrameInfo{
		Frame:   frame.Number,
		Pending: ref.m.Scheduler.Len(),
	}
	if next := ref.m.Scheduler.NextSyncPoint(); next == clocks.Infinity {
		fi.NextSyncPoint = "none"
	} else {
		fi.NextSyncPoint = next.Sub(frame.Time).String()
	}

	ref.frames = append(ref.frames, fi)
	if len(ref.frames) > ref.limit {
		ref.frames = ref.frames[1:]
	}
	return nil
}

// Frames returns the collected FrameInfo entries, oldest first.
func (ref *Reflector) Frames() []FrameInfo {
	return ref.frames
}
