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

// Package rewind keeps a history of machine states, one for every few frames,
// and can return the machine to any frame in that history. Frames that fall
// between two snapshots are reached by plumbing in the earlier snapshot and
// running the machine forward.
package rewind

import (
	"fmt"

	"github.com/jetsetilly/gophermsx/curated"
	"github.com/jetsetilly/gophermsx/hardware"
	"github.com/jetsetilly/gophermsx/hardware/video"
)

// Sentinal error patterns.
const (
	BadPreference = "rewind: bad preference value for %s (%v)"
	Empty         = "rewind: no entries in history"
	CatchUp       = "rewind: catch-up: %v"
)

// Rewind contains a history of machine states for the emulation.
type Rewind struct {
	m     *hardware.Machine
	Prefs *Preferences

	// circular array of snapshotted entries. start is the index of the oldest
	// entry and count the number of valid entries
	entries []*hardware.State
	start   int
	count   int

	// the position in the history of the state most recently plumbed in.
	// counted from start
	curr int

	comparison *hardware.State
	timeline   Timeline

	// a new frame has been triggered. resolved by Check()
	newFrame bool

	// frame triggers are ignored while catching up
	catchingUp bool
}

// NewRewind is the preferred method of initialisation for the Rewind type. The
// preferences file path can be empty, in which case the default preferences
// file is used.
func NewRewind(m *hardware.Machine, prefsFile string) (*Rewind, error) {
	r := &Rewind{
		m:        m,
		timeline: newTimeline(),
	}

	var err error
	r.Prefs, err = newPreferences(r, prefsFile)
	if err != nil {
		return nil, err
	}
	r.allocate()

	m.Video.AddFrameTrigger(r)

	return r, nil
}

func (r *Rewind) String() string {
	f := r.GetFrames()
	return fmt.Sprintf("rewind: %d entries [%d to %d] current %d", r.count, f.Start, f.End, f.Current)
}

// allocate the entries array according to the MaxEntries preference. the most
// recent entries are preserved
func (r *Rewind) allocate() {
	n := r.Prefs.MaxEntries.Get().(int)
	if n == len(r.entries) {
		return
	}

	entries := make([]*hardware.State, n)
	keep := min(r.count, n)
	skip := r.count - keep
	for i := range keep {
		entries[i] = r.entry(skip + i)
	}

	r.entries = entries
	r.start = 0
	r.count = keep
	r.curr = max(0, min(r.curr-skip, keep-1))
}

// entry returns the i'th entry counting from the oldest
func (r *Rewind) entry(i int) *hardware.State {
	return r.entries[(r.start+i)%len(r.entries)]
}

// Reset removes all entries and takes a snapshot of the current state of the
// machine. It should be called whenever the machine is reset.
func (r *Rewind) Reset() {
	clear(r.entries)
	r.start = 0
	r.count = 0
	r.curr = 0
	r.newFrame = false
	r.timeline = newTimeline()
	r.append(r.m.Snapshot())
	r.comparison = r.entry(0)
}

// NewFrame implements the video.FrameTrigger interface. The snapshot is not
// taken immediately because frame triggers are called while a sync point is
// being dispatched. The snapshot is taken on the next call to Check().
func (r *Rewind) NewFrame(frame video.Frame) error {
	if r.catchingUp {
		return nil
	}
	r.newFrame = true
	return nil
}

// Check should be called after every call to Machine.Step() to check whether
// a new frame has been triggered since the last call. A snapshot is taken if
// the frame number is a multiple of the Freq preference.
//
// Returns true if a snapshot was taken.
func (r *Rewind) Check() bool {
	if !r.newFrame {
		return false
	}
	r.newFrame = false

	fn := r.m.Video.FrameNum()
	r.timeline.add(fn, r.m.Scheduler.CurrentTime())

	if fn%r.Prefs.Freq.Get().(int) != 0 {
		return false
	}

	r.append(r.m.Snapshot())
	return true
}

// append adds the state after the current position. any entries after the
// current position are forgotten.
func (r *Rewind) append(s *hardware.State) {
	if r.count > 0 {
		r.count = r.curr + 1
	}

	if r.count == len(r.entries) {
		r.entries[r.start] = nil
		r.start = (r.start + 1) % len(r.entries)
		r.count--
	}

	r.entries[(r.start+r.count)%len(r.entries)] = s
	r.curr = r.count
	r.count++
}

// Frames of the current state of the rewind system.
type Frames struct {
	Start   int
	End     int
	Current int
}

// GetFrames returns the earliest and latest frames in the history and the
// current frame of the machine.
func (r *Rewind) GetFrames() Frames {
	f := Frames{Current: r.m.Video.FrameNum()}
	if r.count > 0 {
		f.Start = r.entry(0).Frame
		f.End = r.entry(r.count - 1).Frame
	}
	return f
}

// plumb in the entry and then run the machine forward to the frame. the
// mixer is muted throughout because any audio before the frame has already
// been heard
func (r *Rewind) plumb(idx int, frame int) error {
	s := r.entry(idx)
	r.curr = idx
	r.m.Plumb(s)
	r.newFrame = false

	muted := r.m.Mixer.Muted()
	r.m.Mixer.Mute(true)
	r.catchingUp = true
	defer func() {
		r.m.Mixer.Mute(muted)
		r.catchingUp = false
	}()

	if frame > s.Frame {
		if err := r.m.RunForFrameCount(frame-s.Frame, nil); err != nil {
			return curated.Errorf(CatchUp, err)
		}
	}

	// discard samples generated since the most recent flush
	if err := r.m.Mixer.Flush(r.m.Scheduler.CurrentTime()); err != nil {
		return curated.Errorf(CatchUp, err)
	}

	return nil
}

// GotoLast plumbs in the most recent entry in the history.
func (r *Rewind) GotoLast() error {
	if r.count == 0 {
		return curated.Errorf(Empty)
	}
	idx := r.count - 1
	return r.plumb(idx, r.entry(idx).Frame)
}

// GotoFrame returns the machine to the start of the specified frame. Requests
// for frames outside of the history are clamped to the earliest or latest
// entry. Returns the frame number that was plumbed in.
func (r *Rewind) GotoFrame(frame int) (int, error) {
	if r.count == 0 {
		return 0, curated.Errorf(Empty)
	}

	if fn := r.entry(0).Frame; frame <= fn {
		return fn, r.plumb(0, fn)
	}
	if fn := r.entry(r.count - 1).Frame; frame >= fn {
		return fn, r.plumb(r.count-1, fn)
	}

	// the latest entry that is not after the requested frame
	s := 0
	e := r.count - 1
	for s < e {
		m := (s + e + 1) / 2
		if r.entry(m).Frame <= frame {
			s = m
		} else {
			e = m - 1
		}
	}

	return frame, r.plumb(s, frame)
}
