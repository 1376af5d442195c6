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

package sound

import (
	"fmt"

	"github.com/jetsetilly/gophermsx/environment"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/scheduler"
	"github.com/jetsetilly/gophermsx/logger"
)

const tagFlush = 0

// Mixer collects samples from every Source at regular intervals and sends the
// mixed buffer to every AudioMixer. It implements the scheduler.Schedulable
// interface.
type Mixer struct {
	scheduler.Base

	env          *environment.Environment
	clock        clocks.Clock
	sampleRate   int
	bufferLength int

	sources []Source
	mixers  []AudioMixer

	// buffers are not sent to the AudioMixers while muted
	muted bool

	// reused between flushes
	acc []int32
}

// NewMixer is the preferred method of initialisation for the Mixer type.
func NewMixer(env *environment.Environment, sched *scheduler.Scheduler) *Mixer {
	m := &Mixer{
		env: env,
	}
	m.Attach(sched, m)
	m.Reset(sched.CurrentTime())
	return m
}

func (m *Mixer) String() string {
	return fmt.Sprintf("mixer: %dHz, %d samples per buffer", m.sampleRate, m.bufferLength)
}

// SchedName implements the scheduler.Schedulable interface.
func (m *Mixer) SchedName() string {
	return "mixer"
}

// SampleRate returns the number of samples per second sent to each
// AudioMixer.
func (m *Mixer) SampleRate() int {
	return m.sampleRate
}

// BufferLength returns the number of samples in each buffer sent to each
// AudioMixer.
func (m *Mixer) BufferLength() int {
	return m.bufferLength
}

// AddSource adds a sound generating device to the mix.
func (m *Mixer) AddSource(s Source) {
	m.sources = append(m.sources, s)
}

// AddAudioMixer registers an implementation of AudioMixer.
func (m *Mixer) AddAudioMixer(a AudioMixer) {
	m.mixers = append(m.mixers, a)
}

// Mute stops buffers being sent to the AudioMixers. Sources are still
// synchronised and drained while muted so that they remain in step with the
// emulation.
func (m *Mixer) Mute(muted bool) {
	m.muted = muted
}

// Muted returns true if the Mixer is muted.
func (m *Mixer) Muted() bool {
	return m.muted
}

// Reset implements the bus.Resetter interface. The sample rate and buffer
// length are taken from the preferences. The sources should be reset at the
// same time.
func (m *Mixer) Reset(time clocks.Time) {
	m.sampleRate = m.env.Prefs.AudioFreq.Get().(int)
	m.bufferLength = m.env.Prefs.AudioBufferLength.Get().(int)
	m.clock = clocks.NewClock(uint64(m.sampleRate))
	m.clock.Reset(time)
	m.RemoveSyncPoints()
	if err := m.schedule(); err != nil {
		logger.Log(m.env, "mixer", err)
	}
}

func (m *Mixer) schedule() error {
	return m.SetSyncPoint(m.clock.TimeOf(m.clock.Count()+uint64(m.bufferLength)), tagFlush)
}

// ExecuteUntil implements the scheduler.Schedulable interface.
func (m *Mixer) ExecuteUntil(time clocks.Time, _ int) error {
	if err := m.Flush(time); err != nil {
		return err
	}
	return m.schedule()
}

// Flush synchronises every source to the specified time and sends the mixed
// samples to every AudioMixer. Nothing is sent if there are no new samples or
// if the Mixer is muted.
func (m *Mixer) Flush(time clocks.Time) error {
	m.clock.Advance(time)

	m.acc = m.acc[:0]
	for _, s := range m.sources {
		if err := s.SyncTo(time); err != nil {
			return err
		}
		d := s.Drain()
		for len(m.acc) < len(d) {
			m.acc = append(m.acc, 0)
		}
		mix(m.acc, d)
	}

	if len(m.acc) == 0 || m.muted {
		return nil
	}

	buffer := make([]int16, len(m.acc))
	for i, v := range m.acc {
		buffer[i] = clip(v)
	}

	for _, a := range m.mixers {
		if err := a.SetAudio(buffer); err != nil {
			return err
		}
	}

	return nil
}

// Close sends any remaining samples to the AudioMixers and then ends mixing.
// The Mixer is detached from the scheduler.
func (m *Mixer) Close() error {
	err := m.Flush(m.CurrentTime())
	m.Detach()
	for _, a := range m.mixers {
		if e := a.EndMixing(); e != nil && err == nil {
			err = e
		}
	}
	m.mixers = m.mixers[:0]
	return err
}

// MixerState is a copy of the Mixer state.
type MixerState struct {
	clock clocks.Clock
}

// Snapshot creates a copy of the Mixer state. The pending flush is part of the
// scheduler state.
func (m *Mixer) Snapshot() *MixerState {
	return &MixerState{clock: m.clock}
}

// Plumb restores the Mixer state from a snapshot.
func (m *Mixer) Plumb(s *MixerState) {
	m.clock = s.clock
}
