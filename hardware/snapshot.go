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

package hardware

import (
	"github.com/jetsetilly/gophermsx/hardware/cassette"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/cpu"
	"github.com/jetsetilly/gophermsx/hardware/memory/bus"
	"github.com/jetsetilly/gophermsx/hardware/memory/pac"
	"github.com/jetsetilly/gophermsx/hardware/memory/ram"
	"github.com/jetsetilly/gophermsx/hardware/scheduler"
	"github.com/jetsetilly/gophermsx/hardware/sound"
	"github.com/jetsetilly/gophermsx/hardware/video"
)

// State stores the state of every device in the Machine. It is produced by the
// Snapshot() function and can be restored with the Plumb() function. The
// State can only be plumbed into the Machine it was taken from.
type State struct {
	sched    *scheduler.State
	engine   cpu.Engine
	ram      *ram.RAM
	pac      *pac.PAC
	overlay  bool
	video    *video.State
	mixer    *sound.MixerState
	tones    []*sound.ToneState
	cassette *cassette.State

	// the frame number at the time of the snapshot
	Frame int
}

// Time returns the virtual time of the snapshot.
func (s *State) Time() clocks.Time {
	return s.sched.CurrentTime()
}

// Snapshot the state of the Machine. Snapshots should not be taken while a
// sync point is being dispatched.
func (m *Machine) Snapshot() *State {
	s := &State{
		sched:    m.Scheduler.Snapshot(),
		engine:   m.engine.Snapshot(),
		ram:      m.RAM.Snapshot(),
		video:    m.Video.Snapshot(),
		mixer:    m.Mixer.Snapshot(),
		cassette: m.Cassette.Snapshot(),
		Frame:    m.Video.FrameNum(),
	}
	if m.PAC != nil {
		s.pac = m.PAC.Snapshot()
	}
	if m.Shadow != nil {
		s.overlay = m.Shadow.Snapshot()
	}
	for _, tn := range m.Tones {
		s.tones = append(s.tones, tn.Snapshot())
	}
	return s
}

// Plumb a previously snapshotted State. The State is not changed and can be
// plumbed again.
func (m *Machine) Plumb(s *State) {
	if s == nil {
		panic("machine: cannot plumb in a nil state")
	}

	m.Scheduler.Restore(s.sched)
	m.engine = s.engine.Snapshot()
	m.RAM.Plumb(s.ram)
	if m.PAC != nil {
		m.PAC.Plumb(s.pac)
	}
	if m.Shadow != nil {
		m.Shadow.Plumb(s.overlay)
	}
	m.Video.Plumb(s.video)
	m.Mixer.Plumb(s.mixer)
	for i, tn := range m.Tones {
		tn.Plumb(s.tones[i])
	}
	m.Cassette.Plumb(s.cassette)

	m.Mem.InvalidateCache(0, bus.AddressSpace)
}
